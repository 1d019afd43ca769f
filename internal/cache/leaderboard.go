package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// leaderboardTTL is how long a week's sorted set survives after its last
// write. An inactive week expires on its own instead of being purged.
const leaderboardTTL = 7 * 24 * time.Hour

// WeekKey buckets a time into the leaderboard's reset cycle using the ISO
// year and week number, e.g. "2025-W23". Around New Year the ISO year can
// differ from the calendar year.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func leaderboardKey(week string) string {
	return "leaderboard:calories:" + week
}

// Entry is one ranked row of the weekly calorie leaderboard.
type Entry struct {
	Position int
	UserID   string
	Calories int
}

// Rank is a single user's position in a week's leaderboard. Position is
// 1-based; a user with no calorie-bearing entry that week is unranked
// (Ranked == false), never rank zero.
type Rank struct {
	Ranked   bool
	Position int
	Calories int
}

// Leaderboard maintains the per-week calorie aggregate in a Redis sorted
// set keyed leaderboard:calories:<week>.
type Leaderboard struct {
	rdb *redis.Client
}

func NewLeaderboard(rdb *redis.Client) *Leaderboard {
	return &Leaderboard{rdb: rdb}
}

// Available reports whether the leaderboard has a usable Redis client.
func (l *Leaderboard) Available() bool { return l.rdb != nil }

// Add credits calories to the user's score for the week containing now and
// pushes the week's expiry out to a full TTL again.
func (l *Leaderboard) Add(ctx context.Context, userID string, calories int, now time.Time) error {
	if l.rdb == nil {
		return ErrUnavailable
	}
	key := leaderboardKey(WeekKey(now))
	pipe := l.rdb.Pipeline()
	pipe.ZIncrBy(ctx, key, float64(calories), userID)
	pipe.Expire(ctx, key, leaderboardTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("leaderboard add: %w", err)
	}
	return nil
}

// Top returns the highest n scores for the week containing now, best
// first. Ties share a score; Redis orders equal scores by member in
// reverse lexicographic order, which is the tie-break this leaderboard
// inherits.
func (l *Leaderboard) Top(ctx context.Context, n int, now time.Time) ([]Entry, error) {
	if l.rdb == nil {
		return nil, ErrUnavailable
	}
	key := leaderboardKey(WeekKey(now))
	zs, err := l.rdb.ZRevRangeWithScores(ctx, key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard top: %w", err)
	}
	out := make([]Entry, 0, len(zs))
	for i, z := range zs {
		out = append(out, Entry{
			Position: i + 1,
			UserID:   z.Member.(string),
			Calories: int(z.Score),
		})
	}
	return out, nil
}

// UserRank returns the user's 1-based position and score for the week
// containing now, or an unranked Rank when the user has no score.
func (l *Leaderboard) UserRank(ctx context.Context, userID string, now time.Time) (Rank, error) {
	if l.rdb == nil {
		return Rank{}, ErrUnavailable
	}
	key := leaderboardKey(WeekKey(now))
	pos, err := l.rdb.ZRevRank(ctx, key, userID).Result()
	if errors.Is(err, redis.Nil) {
		return Rank{}, nil
	}
	if err != nil {
		return Rank{}, fmt.Errorf("leaderboard rank: %w", err)
	}
	score, err := l.rdb.ZScore(ctx, key, userID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Rank{}, fmt.Errorf("leaderboard score: %w", err)
	}
	return Rank{Ranked: true, Position: int(pos) + 1, Calories: int(score)}, nil
}
