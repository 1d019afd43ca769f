package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/training-diary/internal/cache"
	"github.com/iliyamo/training-diary/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type diaryFixture struct {
	diary      *Diary
	users      *stubUsers
	activities *stubActivities
	friends    *stubFriends
	txn        *stubTxn
	redis      *miniredis.Miniredis
	user       model.User
}

// newFixture wires a Diary over stub stores and a miniredis-backed cache.
// withCache=false builds the degraded variant with nil Redis clients.
func newFixture(t *testing.T, withCache bool) *diaryFixture {
	t.Helper()
	user := model.User{ID: primitive.NewObjectID(), Username: "alice", Email: "alice@example.com"}
	users := newStubUsers(user)
	activities := &stubActivities{}
	friends := newStubFriends()
	txn := &stubTxn{activities: activities}

	var rdb *redis.Client
	var mr *miniredis.Miniredis
	if withCache {
		mr = miniredis.RunT(t)
		rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	}

	diary := NewDiary(Deps{
		Txn:        txn,
		Users:      users,
		Activities: activities,
		Friends:    friends,
		Streaks:    cache.NewStreakTracker(rdb),
		Board:      cache.NewLeaderboard(rdb),
		Reminders:  cache.NewReminders(rdb),
		BcryptCost: 4,
		Log:        quietLogger(),
		Now:        func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	})
	return &diaryFixture{
		diary: diary, users: users, activities: activities,
		friends: friends, txn: txn, redis: mr, user: user,
	}
}

func runningEntry(userID primitive.ObjectID, date string, calories int) *model.Activity {
	return &model.Activity{
		UserID: userID,
		Date:   date,
		Type:   model.TypeRunning,
		Metrics: &model.RunningMetrics{
			DistanceKM: 10, Duration: 60, Calories: calories,
		},
	}
}

func TestLogActivityHappyPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	res, err := f.diary.LogActivity(ctx, runningEntry(f.user.ID, "2025-06-01", 500))
	require.NoError(t, err)

	// Entry stored and stats applied in the same scope.
	require.Len(t, f.activities.items, 1)
	stats, err := f.diary.Stats(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{TotalTrainings: 1, TotalCalories: 500, TotalMinutes: 60}, stats)

	// Derived state followed.
	require.True(t, res.StreakKnown)
	assert.Equal(t, 1, res.Streak.Current)
	assert.Equal(t, 1, res.Streak.Best)
	require.True(t, res.RankKnown)
	assert.True(t, res.Rank.Ranked)
	assert.Equal(t, 1, res.Rank.Position)
	assert.Equal(t, 500, res.Rank.Calories)

	_, _, ok := f.diary.Reminder(ctx, f.user.ID)
	assert.True(t, ok)
}

func TestLogActivityConsecutiveDays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	_, err := f.diary.LogActivity(ctx, runningEntry(f.user.ID, "2025-06-01", 500))
	require.NoError(t, err)

	second := &model.Activity{
		UserID:  f.user.ID,
		Date:    "2025-06-02",
		Type:    model.TypeYoga,
		Metrics: &model.YogaMetrics{Duration: 30, Style: "hatha", Calories: 200},
	}
	res, err := f.diary.LogActivity(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Streak.Current)
	assert.Equal(t, 2, res.Streak.Best)
	// Same ISO week: the scores accumulate.
	assert.Equal(t, 700, res.Rank.Calories)
}

func TestLogActivityStatsFailureAbortsInsert(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.users.statsErr = errors.New("stats write refused")

	_, err := f.diary.LogActivity(ctx, runningEntry(f.user.ID, "2025-06-01", 500))
	require.Error(t, err)

	// The aborted transaction leaves no observable entry...
	assert.Empty(t, f.activities.items)
	// ...and no side effects ran.
	_, _, ok := f.diary.Reminder(ctx, f.user.ID)
	assert.False(t, ok)
	s, cacheOK := f.diary.Streak(ctx, f.user.ID)
	assert.True(t, cacheOK)
	assert.Zero(t, s.Current)
}

func TestLogActivityZeroCaloriesSkipsLeaderboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	res, err := f.diary.LogActivity(ctx, runningEntry(f.user.ID, "2025-06-01", 0))
	require.NoError(t, err)

	assert.True(t, res.StreakKnown)
	assert.False(t, res.RankKnown)

	rank, ok, err := f.diary.MyRank(ctx, f.user.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, rank.Ranked)
}

func TestLogActivityCacheDownStillSucceeds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	res, err := f.diary.LogActivity(ctx, runningEntry(f.user.ID, "2025-06-01", 500))
	require.NoError(t, err)

	require.Len(t, f.activities.items, 1)
	assert.False(t, res.StreakKnown)
	assert.False(t, res.RankKnown)

	s, ok := f.diary.Streak(ctx, f.user.ID)
	assert.False(t, ok)
	assert.Zero(t, s.Current)
}

func TestLogActivityRejectsInvalidMetrics(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	bad := &model.Activity{
		UserID:  f.user.ID,
		Date:    "2025-06-01",
		Type:    model.TypeRunning,
		Metrics: &model.RunningMetrics{Duration: 60}, // no distance
	}
	_, err := f.diary.LogActivity(ctx, bad)
	require.Error(t, err)
	assert.Zero(t, f.txn.calls, "invalid entries must not open a transaction")
	assert.Empty(t, f.activities.items)
}
