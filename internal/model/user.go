package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stats holds the cumulative totals kept on each user document. The values
// are only ever mutated by activity logging, inside the same transaction
// that inserts the activity, so they stay consistent with the activities
// collection.
type Stats struct {
	TotalTrainings int     `bson:"total_trainings" json:"total_trainings"`
	TotalCalories  int     `bson:"total_calories" json:"total_calories"`
	TotalMinutes   float64 `bson:"total_minutes" json:"total_minutes"`
}

// User represents an account in the `users` collection. Username and email
// are unique (checked by query at registration, not by index — a known race
// window). The password is stored only as a bcrypt hash.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Age          int                `bson:"age" json:"age"`
	Gender       string             `bson:"gender" json:"gender"`
	Stats        Stats              `bson:"stats" json:"stats"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
