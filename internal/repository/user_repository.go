package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/training-diary/internal/model"
	"github.com/iliyamo/training-diary/internal/utils"
)

// UserRepo provides access to the `users` collection.
type UserRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection("users")}
}

// Create registers a new user with zeroed stats. Username and email
// uniqueness is checked by query before the insert; there is no unique
// index, so two concurrent registrations can still race (accepted).
func (r *UserRepo) Create(ctx context.Context, username, email, password string, age int, gender string, cost int) (primitive.ObjectID, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := r.col.FindOne(ctx, bson.M{"username": username}).Err(); err == nil {
		return primitive.NilObjectID, ErrUsernameExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, err
	}
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Err(); err == nil {
		return primitive.NilObjectID, ErrEmailExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, err
	}

	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return primitive.NilObjectID, err
	}
	u := model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Age:          age,
		Gender:       gender,
		CreatedAt:    time.Now().UTC(),
	}
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return r.findOne(ctx, bson.M{"username": strings.TrimSpace(username)})
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (model.User, error) {
	var u model.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// IncrementStats applies the cumulative stats delta for one logged
// activity. The caller is expected to run this inside the same session
// context as the activity insert so both writes commit or abort together.
func (r *UserRepo) IncrementStats(ctx context.Context, id primitive.ObjectID, calories int, minutes float64) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{
			"stats.total_trainings": 1,
			"stats.total_calories":  calories,
			"stats.total_minutes":   minutes,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("increment stats: %w", ErrNotFound)
	}
	return nil
}

// UsernamesByIDs resolves a set of user ids to usernames in one query.
// Unknown ids are simply absent from the result map.
func (r *UserRepo) UsernamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	out := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var u model.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u.Username
	}
	return out, cur.Err()
}
