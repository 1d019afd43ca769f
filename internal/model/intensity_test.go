package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntensity(t *testing.T) {
	cases := []struct {
		name    string
		t       ActivityType
		metrics Metrics
		want    Intensity
	}{
		// running pace = distance / (duration/60) km/h
		{"running low", TypeRunning, &RunningMetrics{DistanceKM: 5, Duration: 60}, IntensityLow},
		{"running just under moderate", TypeRunning, &RunningMetrics{DistanceKM: 6.9, Duration: 60}, IntensityLow},
		{"running moderate boundary", TypeRunning, &RunningMetrics{DistanceKM: 7, Duration: 60}, IntensityModerate},
		{"running high boundary", TypeRunning, &RunningMetrics{DistanceKM: 11, Duration: 60}, IntensityHigh},
		{"running missing distance", TypeRunning, &RunningMetrics{Duration: 60}, IntensityNoData},

		// cycling thresholds 15 / 25 km/h
		{"cycling slow", TypeCycling, &CyclingMetrics{DistanceKM: 10, Duration: 60, AvgSpeedKMH: 10}, IntensityLow},
		{"cycling moderate", TypeCycling, &CyclingMetrics{DistanceKM: 10, Duration: 60, AvgSpeedKMH: 20}, IntensityModerate},
		{"cycling fast", TypeCycling, &CyclingMetrics{DistanceKM: 10, Duration: 60, AvgSpeedKMH: 30}, IntensityHigh},
		{"cycling derived speed", TypeCycling, &CyclingMetrics{DistanceKM: 20, Duration: 60}, IntensityModerate},

		// swimming meters per minute, thresholds 15 / 30
		{"swimming calm", TypeSwimming, &SwimmingMetrics{Laps: 10, PoolLengthM: 25, Stroke: "freestyle", Duration: 30}, IntensityLow},
		{"swimming moderate", TypeSwimming, &SwimmingMetrics{Laps: 20, PoolLengthM: 25, Stroke: "freestyle", Duration: 25}, IntensityModerate},
		{"swimming intense", TypeSwimming, &SwimmingMetrics{Laps: 40, PoolLengthM: 25, Stroke: "freestyle", Duration: 30}, IntensityHigh},
		{"swimming no duration", TypeSwimming, &SwimmingMetrics{Laps: 20, PoolLengthM: 25, Stroke: "freestyle"}, IntensityNoData},

		{"non-cardio type", TypeYoga, &YogaMetrics{Duration: 60, Style: "vinyasa"}, IntensityNoData},
		{"nil metrics", TypeRunning, nil, IntensityNoData},
		{"variant mismatch", TypeRunning, &YogaMetrics{Duration: 60, Style: "vinyasa"}, IntensityNoData},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyIntensity(tc.t, tc.metrics))
		})
	}
}
