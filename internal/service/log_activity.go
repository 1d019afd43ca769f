package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/training-diary/internal/cache"
	"github.com/iliyamo/training-diary/internal/model"
)

// LogResult reports what happened around a successful log: the streak after
// the entry and the user's leaderboard position, when the cache could
// provide them. StreakKnown/RankKnown are false when Redis is degraded or
// the entry carried no calories.
type LogResult struct {
	Activity    model.Activity
	Streak      cache.StreakState
	StreakKnown bool
	Rank        cache.Rank
	RankKnown   bool
}

// LogActivity validates the entry, commits it atomically together with the
// owner's cumulative stats, and then runs the three best-effort side
// effects: streak update, leaderboard credit (calorie-bearing entries
// only) and reminder. Side-effect failures are logged and never fail the
// logging operation; a transaction failure means neither the entry nor the
// stats change is observable.
func (d *Diary) LogActivity(ctx context.Context, a *model.Activity) (LogResult, error) {
	if err := a.Validate(); err != nil {
		return LogResult{}, err
	}
	calories := a.Metrics.CaloriesBurned()
	minutes := a.Metrics.DurationMin()

	err := d.deps.Txn.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := d.deps.Activities.Insert(txCtx, a); err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
		if err := d.deps.Users.IncrementStats(txCtx, a.UserID, calories, minutes); err != nil {
			return fmt.Errorf("update stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return LogResult{}, err
	}

	res := LogResult{Activity: *a}
	user := a.UserID.Hex()

	if s, err := d.deps.Streaks.Update(ctx, user, a.Date); err != nil {
		d.warnSideEffect("streak update", user, err)
	} else {
		res.Streak = s
		res.StreakKnown = true
	}

	if calories > 0 {
		now := d.deps.Now()
		if err := d.deps.Board.Add(ctx, user, calories, now); err != nil {
			d.warnSideEffect("leaderboard update", user, err)
		} else if rank, err := d.deps.Board.UserRank(ctx, user, now); err != nil {
			d.warnSideEffect("leaderboard rank", user, err)
		} else {
			res.Rank = rank
			res.RankKnown = true
		}
	}

	if err := d.deps.Reminders.Set(ctx, user); err != nil {
		d.warnSideEffect("reminder set", user, err)
	}

	return res, nil
}

func (d *Diary) warnSideEffect(op, user string, err error) {
	if errors.Is(err, cache.ErrUnavailable) {
		d.deps.Log.Info(op+" skipped, cache unavailable", "user", user)
		return
	}
	d.deps.Log.Warn(op+" failed", "user", user, "err", err)
}
