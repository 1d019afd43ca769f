// Package cache implements the derived state kept in Redis: per-user
// training streaks, the weekly calorie leaderboard and training reminders.
// Redis is the sole source of truth for all of it; losing the cache resets
// streaks and leaderboards to empty, which the design accepts. Every type
// here tolerates a nil client and reports ErrUnavailable so callers can
// degrade to defaults instead of failing the foreground operation.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/training-diary/internal/model"
)

// ErrUnavailable is returned by every cache operation when no Redis client
// is configured or the server cannot be reached. Callers degrade: streaks
// read 0/0, the leaderboard is empty, reminders are silently skipped.
var ErrUnavailable = errors.New("cache unavailable")

// StreakState is the per-user consecutive-day training streak.
type StreakState struct {
	Current int
	Best    int
	LastDay string // YYYY-MM-DD of the most recent counted entry
}

// StreakTracker maintains streak state under the keys
// streak:<user>:current, streak:<user>:best and streak:<user>:last_day.
// There is no locking: concurrent updates for the same user are
// last-write-wins, accepted for single-interactive-session usage.
type StreakTracker struct {
	rdb *redis.Client
}

func NewStreakTracker(rdb *redis.Client) *StreakTracker {
	return &StreakTracker{rdb: rdb}
}

// Available reports whether the tracker has a usable Redis client.
func (t *StreakTracker) Available() bool { return t.rdb != nil }

func streakKey(userID, field string) string {
	return fmt.Sprintf("streak:%s:%s", userID, field)
}

// Get reads the user's streak. A user with no keys yet reads as 0/0.
func (t *StreakTracker) Get(ctx context.Context, userID string) (StreakState, error) {
	if t.rdb == nil {
		return StreakState{}, ErrUnavailable
	}
	pipe := t.rdb.Pipeline()
	cur := pipe.Get(ctx, streakKey(userID, "current"))
	best := pipe.Get(ctx, streakKey(userID, "best"))
	last := pipe.Get(ctx, streakKey(userID, "last_day"))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return StreakState{}, fmt.Errorf("streak get: %w", err)
	}
	var s StreakState
	s.Current, _ = cur.Int()
	s.Best, _ = best.Int()
	s.LastDay = last.Val()
	return s, nil
}

// Update applies one logged activity to the streak state machine. The
// transition is driven by the entry's date, not the wall clock:
//
//	date == last_day      same-day repeat, no change
//	date == last_day + 1  streak continues, current+1
//	anything else         gap, backdated entry or first entry: reset to 1
//
// Backdated entries therefore reset an otherwise continuous streak; that is
// retained reference behavior, not a bug to fix here.
func (t *StreakTracker) Update(ctx context.Context, userID, date string) (StreakState, error) {
	if t.rdb == nil {
		return StreakState{}, ErrUnavailable
	}
	s, err := t.Get(ctx, userID)
	if err != nil {
		return StreakState{}, err
	}
	next := nextStreak(s.LastDay, date, s.Current)
	if next == s.Current && s.LastDay == date {
		return s, nil
	}
	s.Current = next
	s.LastDay = date
	if s.Current > s.Best {
		s.Best = s.Current
	}
	pipe := t.rdb.Pipeline()
	pipe.Set(ctx, streakKey(userID, "current"), s.Current, 0)
	pipe.Set(ctx, streakKey(userID, "best"), s.Best, 0)
	pipe.Set(ctx, streakKey(userID, "last_day"), s.LastDay, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return StreakState{}, fmt.Errorf("streak update: %w", err)
	}
	return s, nil
}

// nextStreak is the pure transition function behind Update.
func nextStreak(lastDay, date string, current int) int {
	if lastDay == date && lastDay != "" {
		return current
	}
	if lastDay != "" {
		last, errLast := time.Parse(model.DateLayout, lastDay)
		cur, errCur := time.Parse(model.DateLayout, date)
		if errLast == nil && errCur == nil && cur.Sub(last) == 24*time.Hour {
			return current + 1
		}
	}
	return 1
}
