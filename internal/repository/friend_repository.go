package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/training-diary/internal/model"
)

// FriendRepo provides access to the `friends` collection: one document per
// user holding the set of friend ids.
type FriendRepo struct {
	col *mongo.Collection
}

func NewFriendRepo(db *mongo.Database) *FriendRepo {
	return &FriendRepo{col: db.Collection("friends")}
}

// Get returns the user's friendship document, or ErrNotFound when the user
// has never added a friend.
func (r *FriendRepo) Get(ctx context.Context, userID primitive.ObjectID) (model.Friendship, error) {
	var f model.Friendship
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Friendship{}, ErrNotFound
	}
	return f, err
}

// AddEach adds b to a's friend set and a to b's, upserting the documents.
// $addToSet keeps both writes idempotent. The two updates are separate
// operations: a crash in between leaves a one-directional edge, an accepted
// limitation of the current design.
func (r *FriendRepo) AddEach(ctx context.Context, a, b primitive.ObjectID) error {
	if err := r.addOne(ctx, a, b); err != nil {
		return err
	}
	return r.addOne(ctx, b, a)
}

func (r *FriendRepo) addOne(ctx context.Context, owner, friend primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": owner},
		bson.M{"$addToSet": bson.M{"friends": friend}},
		options.Update().SetUpsert(true),
	)
	return err
}

// ListFriendIDs returns the user's friend ids; an absent document means an
// empty list, not an error.
func (r *FriendRepo) ListFriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	f, err := r.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f.Friends, nil
}
