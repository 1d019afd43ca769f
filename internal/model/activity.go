package model

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType enumerates the supported workout kinds. The metrics payload
// attached to an activity is a variant keyed by this type (see Metrics).
type ActivityType string

const (
	TypeStrength     ActivityType = "strength"
	TypeRunning      ActivityType = "running"
	TypeSwimming     ActivityType = "swimming"
	TypeCycling      ActivityType = "cycling"
	TypeYoga         ActivityType = "yoga"
	TypeCalisthenics ActivityType = "calisthenics"
	TypeFunctional   ActivityType = "functional"
)

// ActivityTypes lists every valid type in menu order.
var ActivityTypes = []ActivityType{
	TypeStrength, TypeRunning, TypeSwimming, TypeCycling,
	TypeYoga, TypeCalisthenics, TypeFunctional,
}

// ErrUnknownActivityType is returned when a type string does not match any
// member of the enumeration.
var ErrUnknownActivityType = errors.New("unknown activity type")

// ParseActivityType validates a raw type string against the enumeration.
func ParseActivityType(s string) (ActivityType, error) {
	for _, t := range ActivityTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownActivityType, s)
}

// DateLayout is the calendar-day format used for activity dates. Activities
// carry day granularity only; there is no time component.
const DateLayout = "2006-01-02"

// ParseDate validates a date string against DateLayout.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Metrics is the variant payload attached to an activity. Each activity
// type has its own concrete struct with disjoint required fields; Validate
// rejects construction with missing required fields at the boundary so that
// queries never have to deal with half-formed documents. DurationMin and
// CaloriesBurned feed the cumulative stats update and are zero when the
// variant does not carry them.
type Metrics interface {
	Type() ActivityType
	Validate() error
	DurationMin() float64
	CaloriesBurned() int
}

// Activity is one immutable logged workout in the `activities` collection.
type Activity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Date      string             `bson:"date"` // YYYY-MM-DD, day granularity
	Type      ActivityType       `bson:"type"`
	Note      string             `bson:"note,omitempty"`
	Metrics   Metrics            `bson:"metrics"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Validate checks the envelope and the metrics variant together.
func (a *Activity) Validate() error {
	if a.UserID.IsZero() {
		return errors.New("activity: missing user id")
	}
	if _, err := ParseDate(a.Date); err != nil {
		return fmt.Errorf("activity: bad date %q: %w", a.Date, err)
	}
	if a.Metrics == nil {
		return errors.New("activity: missing metrics")
	}
	if a.Metrics.Type() != a.Type {
		return fmt.Errorf("activity: metrics variant %s does not match type %s", a.Metrics.Type(), a.Type)
	}
	return a.Metrics.Validate()
}

// DecodeMetrics turns a raw metrics subdocument back into the variant
// struct selected by the activity's type tag.
func DecodeMetrics(t ActivityType, raw bson.Raw) (Metrics, error) {
	var m Metrics
	switch t {
	case TypeStrength:
		m = &StrengthMetrics{}
	case TypeRunning:
		m = &RunningMetrics{}
	case TypeSwimming:
		m = &SwimmingMetrics{}
	case TypeCycling:
		m = &CyclingMetrics{}
	case TypeYoga:
		m = &YogaMetrics{}
	case TypeCalisthenics:
		m = &CalisthenicsMetrics{}
	case TypeFunctional:
		m = &FunctionalMetrics{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivityType, t)
	}
	if err := bson.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("decode %s metrics: %w", t, err)
	}
	return m, nil
}

func missing(t ActivityType, field string) error {
	return fmt.Errorf("%s metrics: missing required field %q", t, field)
}
