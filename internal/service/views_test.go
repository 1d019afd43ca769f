package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/training-diary/internal/model"
	"github.com/iliyamo/training-diary/internal/repository"
)

func TestCompareRecentNeedsTwoEntries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, err := f.diary.CompareRecent(ctx, f.user.ID)
	assert.ErrorIs(t, err, ErrNotEnoughData)

	f.activities.recent = []model.Activity{
		{Type: model.TypeRunning, Date: "2025-06-04", Metrics: &model.RunningMetrics{DistanceKM: 10, Duration: 55, Calories: 500}},
	}
	_, err = f.diary.CompareRecent(ctx, f.user.ID)
	assert.ErrorIs(t, err, ErrNotEnoughData)

	f.activities.recent = append(f.activities.recent,
		model.Activity{Type: model.TypeYoga, Date: "2025-06-03", Metrics: &model.YogaMetrics{Duration: 40, Style: "hatha"}},
		model.Activity{Type: model.TypeCycling, Date: "2025-06-02", Metrics: &model.CyclingMetrics{DistanceKM: 25, Duration: 70}},
		model.Activity{Type: model.TypeRunning, Date: "2025-06-01", Metrics: &model.RunningMetrics{DistanceKM: 8, Duration: 50}},
		model.Activity{Type: model.TypeYoga, Date: "2025-05-30", Metrics: &model.YogaMetrics{Duration: 30, Style: "yin"}},
	)
	cmp, err := f.diary.CompareRecent(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TypeRunning, cmp.Last.Type)
	// The comparison window is the previous three, not everything.
	assert.Len(t, cmp.Previous, 3)
}

func TestCardioIntensityView(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	f.activities.items = []model.Activity{
		{UserID: f.user.ID, Type: model.TypeRunning, Date: "2025-06-01", Metrics: &model.RunningMetrics{DistanceKM: 12, Duration: 60}},
		{UserID: f.user.ID, Type: model.TypeYoga, Date: "2025-06-02", Metrics: &model.YogaMetrics{Duration: 40, Style: "hatha"}},
		{UserID: f.user.ID, Type: model.TypeSwimming, Date: "2025-06-03", Metrics: &model.SwimmingMetrics{Laps: 20, PoolLengthM: 25, Stroke: "freestyle"}},
	}

	rows, err := f.diary.CardioIntensity(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2, "yoga is not a cardio type")
	assert.Equal(t, model.IntensityHigh, rows[0].Intensity)
	// Swim without a duration degrades to the sentinel, never an error.
	assert.Equal(t, model.IntensityNoData, rows[1].Intensity)
}

func TestDurationTrendPicksLatestPerType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	prev50 := 50.0
	prev60 := 60.0
	f.activities.trendRows = []repository.TrendRow{
		{Type: model.TypeRunning, Date: "2025-06-01", DurationMin: 50, Previous: nil},
		{Type: model.TypeRunning, Date: "2025-06-03", DurationMin: 65, Previous: &prev50},
		{Type: model.TypeYoga, Date: "2025-06-02", DurationMin: 60, Previous: nil},
		{Type: model.TypeYoga, Date: "2025-06-04", DurationMin: 45, Previous: &prev60},
	}

	views, err := f.diary.DurationTrend(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byType := map[model.ActivityType]TrendView{}
	for _, v := range views {
		byType[v.Type] = v
	}

	run := byType[model.TypeRunning]
	assert.Equal(t, "2025-06-03", run.Date)
	delta, ok := run.Delta()
	require.True(t, ok)
	assert.Equal(t, 15.0, delta)

	yoga := byType[model.TypeYoga]
	delta, ok = yoga.Delta()
	require.True(t, ok)
	assert.Equal(t, -15.0, delta)
}

func TestDurationTrendFirstEntryHasNoPrior(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	f.activities.trendRows = []repository.TrendRow{
		{Type: model.TypeCycling, Date: "2025-06-01", DurationMin: 40, Previous: nil},
	}
	views, err := f.diary.DurationTrend(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	_, ok := views[0].Delta()
	assert.False(t, ok)
}

func TestLeaderboardTopResolvesUsernames(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	_, err := f.diary.LogActivity(ctx, runningEntry(f.user.ID, "2025-06-01", 500))
	require.NoError(t, err)

	rows, ok, err := f.diary.LeaderboardTop(ctx, 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, BoardRow{Position: 1, Username: "alice", Calories: 500}, rows[0])
}

func TestLeaderboardViewsDegradeWithoutCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	rows, ok, err := f.diary.LeaderboardTop(ctx, 10)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, rows)

	_, ok, err = f.diary.MyRank(ctx, f.user.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
