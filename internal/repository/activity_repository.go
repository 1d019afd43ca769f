package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/training-diary/internal/model"
)

// ActivityRepo provides access to the append-only `activities` collection.
// Documents are written once at logging time and never updated, so every
// read path is a plain query or aggregation.
type ActivityRepo struct {
	col *mongo.Collection
}

func NewActivityRepo(db *mongo.Database) *ActivityRepo {
	return &ActivityRepo{col: db.Collection("activities")}
}

// activityDoc is the stored shape of an activity. Metrics stay raw on the
// way out and are decoded into the right variant from the type tag.
type activityDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Date      string             `bson:"date"`
	Type      model.ActivityType `bson:"type"`
	Note      string             `bson:"note,omitempty"`
	Metrics   bson.Raw           `bson:"metrics"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *activityDoc) toModel() (model.Activity, error) {
	m, err := model.DecodeMetrics(d.Type, d.Metrics)
	if err != nil {
		return model.Activity{}, err
	}
	return model.Activity{
		ID:        d.ID,
		UserID:    d.UserID,
		Date:      d.Date,
		Type:      d.Type,
		Note:      d.Note,
		Metrics:   m,
		CreatedAt: d.CreatedAt,
	}, nil
}

// Insert stores one activity and fills in its generated id. Run it with a
// session context when the insert must commit together with the owner's
// stats update.
func (r *ActivityRepo) Insert(ctx context.Context, a *model.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// ListByUser returns all of a user's activities, oldest first. Date strings
// are YYYY-MM-DD so lexicographic order is chronological.
func (r *ActivityRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeActivities(ctx, cur)
}

// RecentByUser returns up to limit activities, newest first.
func (r *ActivityRepo) RecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]model.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeActivities(ctx, cur)
}

// ListCardioByUser returns the user's running, cycling and swimming
// entries, oldest first, for intensity classification.
func (r *ActivityRepo) ListCardioByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Activity, error) {
	filter := bson.M{
		"user_id": userID,
		"type": bson.M{"$in": []model.ActivityType{
			model.TypeRunning, model.TypeCycling, model.TypeSwimming,
		}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeActivities(ctx, cur)
}

func decodeActivities(ctx context.Context, cur *mongo.Cursor) ([]model.Activity, error) {
	var out []model.Activity
	for cur.Next(ctx) {
		var d activityDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		a, err := d.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, cur.Err()
}

// TrendRow is one row of the duration-trend aggregation: an activity's
// duration next to the duration of the previous entry of the same type.
// Previous is nil on the first entry of a type.
type TrendRow struct {
	Type        model.ActivityType `bson:"type"`
	Date        string             `bson:"date"`
	DurationMin float64            `bson:"duration_min"`
	Previous    *float64           `bson:"previous_duration"`
}

// DurationTrend runs the window aggregation: partition the user's
// activities by type, sort each partition by date, and shift the duration
// back one row so every entry carries its predecessor's duration.
func (r *ActivityRepo) DurationTrend(ctx context.Context, userID primitive.ObjectID) ([]TrendRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$setWindowFields", Value: bson.M{
			"partitionBy": "$type",
			"sortBy":      bson.D{{Key: "date", Value: 1}},
			"output": bson.M{
				"previous_duration": bson.M{
					"$shift": bson.M{
						"output": "$metrics.duration_min",
						"by":     -1,
					},
				},
			},
		}}},
		{{Key: "$project", Value: bson.M{
			"type":              1,
			"date":              1,
			"duration_min":      "$metrics.duration_min",
			"previous_duration": 1,
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("duration trend aggregation: %w", err)
	}
	defer cur.Close(ctx)

	var rows []TrendRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Watch opens a change stream restricted to inserts. The caller owns the
// stream and must close it; the watcher package wraps this with a
// reconnect loop.
func (r *ActivityRepo) Watch(ctx context.Context) (*mongo.ChangeStream, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"operationType": "insert"}}},
	}
	return r.col.Watch(ctx, pipeline)
}
