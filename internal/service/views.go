package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/training-diary/internal/cache"
	"github.com/iliyamo/training-diary/internal/model"
)

// IntensityRow pairs one cardio entry with its derived pace label.
type IntensityRow struct {
	Type      model.ActivityType
	Date      string
	Intensity model.Intensity
}

// CardioIntensity classifies every running, cycling and swimming entry of
// the user. Entries with incomplete metrics carry the "no data" label; the
// view itself never fails on data quality.
func (d *Diary) CardioIntensity(ctx context.Context, userID primitive.ObjectID) ([]IntensityRow, error) {
	acts, err := d.deps.Activities.ListCardioByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows := make([]IntensityRow, 0, len(acts))
	for _, a := range acts {
		rows = append(rows, IntensityRow{
			Type:      a.Type,
			Date:      a.Date,
			Intensity: model.ClassifyIntensity(a.Type, a.Metrics),
		})
	}
	return rows, nil
}

// RecentComparison is the most recent entry next to up to three preceding
// ones, regardless of type.
type RecentComparison struct {
	Last     model.Activity
	Previous []model.Activity
}

// CompareRecent fetches the last four entries. Fewer than two logged
// entries yields ErrNotEnoughData, a reportable outcome rather than a
// fault.
func (d *Diary) CompareRecent(ctx context.Context, userID primitive.ObjectID) (RecentComparison, error) {
	acts, err := d.deps.Activities.RecentByUser(ctx, userID, 4)
	if err != nil {
		return RecentComparison{}, err
	}
	if len(acts) < 2 {
		return RecentComparison{}, ErrNotEnoughData
	}
	return RecentComparison{Last: acts[0], Previous: acts[1:]}, nil
}

// TrendView reports, for one activity type, the latest entry's duration
// against the immediately preceding entry of the same type. Previous is
// nil when the latest entry is the first of its type.
type TrendView struct {
	Type        model.ActivityType
	Date        string
	DurationMin float64
	Previous    *float64
}

// Delta returns the signed duration change versus the previous entry; ok
// is false when there is no prior entry.
func (v TrendView) Delta() (float64, bool) {
	if v.Previous == nil {
		return 0, false
	}
	return v.DurationMin - *v.Previous, true
}

// DurationTrend reduces the window aggregation to the latest entry per
// type, each row carrying its predecessor's duration from the $shift
// output.
func (d *Diary) DurationTrend(ctx context.Context, userID primitive.ObjectID) ([]TrendView, error) {
	rows, err := d.deps.Activities.DurationTrend(ctx, userID)
	if err != nil {
		return nil, err
	}
	latest := make(map[model.ActivityType]TrendView)
	order := make([]model.ActivityType, 0, len(latest))
	for _, r := range rows {
		v, seen := latest[r.Type]
		if !seen {
			order = append(order, r.Type)
		}
		if !seen || r.Date >= v.Date {
			latest[r.Type] = TrendView{
				Type:        r.Type,
				Date:        r.Date,
				DurationMin: r.DurationMin,
				Previous:    r.Previous,
			}
		}
	}
	out := make([]TrendView, 0, len(order))
	for _, t := range order {
		out = append(out, latest[t])
	}
	return out, nil
}

// BoardRow is one display row of the weekly leaderboard with the member id
// resolved to a username.
type BoardRow struct {
	Position int
	Username string
	Calories int
}

// LeaderboardTop returns the week's top n rows. Cache unavailability reads
// as an empty board with ok=false so the menu can print an informational
// message instead of an error.
func (d *Diary) LeaderboardTop(ctx context.Context, n int) ([]BoardRow, bool, error) {
	entries, err := d.deps.Board.Top(ctx, n, d.deps.Now())
	if err != nil {
		if errors.Is(err, cache.ErrUnavailable) {
			return nil, false, nil
		}
		return nil, false, err
	}
	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, e := range entries {
		if id, err := primitive.ObjectIDFromHex(e.UserID); err == nil {
			ids = append(ids, id)
		}
	}
	names, err := d.deps.Users.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, false, err
	}
	rows := make([]BoardRow, 0, len(entries))
	for _, e := range entries {
		name := "unknown"
		if id, err := primitive.ObjectIDFromHex(e.UserID); err == nil {
			if n, ok := names[id]; ok {
				name = n
			}
		}
		rows = append(rows, BoardRow{Position: e.Position, Username: name, Calories: e.Calories})
	}
	return rows, true, nil
}

// MyRank returns the user's weekly rank; ok is false when the cache is
// unavailable. An available cache with no score for the user yields an
// unranked Rank.
func (d *Diary) MyRank(ctx context.Context, userID primitive.ObjectID) (cache.Rank, bool, error) {
	r, err := d.deps.Board.UserRank(ctx, userID.Hex(), d.deps.Now())
	if err != nil {
		if errors.Is(err, cache.ErrUnavailable) {
			return cache.Rank{}, false, nil
		}
		return cache.Rank{}, false, err
	}
	return r, true, nil
}
