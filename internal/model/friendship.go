package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Friendship is the single document per user in the `friends` collection,
// holding the set of friend ids. Membership is symmetric: if A lists B then
// B lists A. Both directions are written by the add-friend operation but not
// atomically, so a crash between the two writes can leave a one-directional
// edge.
type Friendship struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty"`
	UserID  primitive.ObjectID   `bson:"user_id"`
	Friends []primitive.ObjectID `bson:"friends"`
}

// Has reports whether the given user id is already in the friend set.
func (f *Friendship) Has(id primitive.ObjectID) bool {
	for _, fid := range f.Friends {
		if fid == id {
			return true
		}
	}
	return false
}
