package model

// Intensity is the qualitative label derived from cardio metrics. The
// thresholds live here, in application code, so they are unit-testable and
// need no database-side scripting.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
	// IntensityNoData is the sentinel for activities whose metrics are
	// missing the inputs a classification needs. Classification never
	// fails: incomplete data degrades to this label.
	IntensityNoData Intensity = "no data"
)

// ClassifyIntensity derives a pace label for running, cycling and swimming
// entries. Other types, and cardio entries lacking the needed fields, get
// the "no data" sentinel.
func ClassifyIntensity(t ActivityType, m Metrics) Intensity {
	if m == nil {
		return IntensityNoData
	}
	switch t {
	case TypeRunning:
		r, ok := m.(*RunningMetrics)
		if !ok || r.DistanceKM <= 0 || r.Duration <= 0 {
			return IntensityNoData
		}
		return gradePace(r.DistanceKM/(r.Duration/60), 7, 11)
	case TypeCycling:
		c, ok := m.(*CyclingMetrics)
		if !ok || c.Speed() <= 0 {
			return IntensityNoData
		}
		return gradePace(c.Speed(), 15, 25)
	case TypeSwimming:
		s, ok := m.(*SwimmingMetrics)
		if !ok || s.Duration <= 0 || s.TotalDistanceM() <= 0 {
			return IntensityNoData
		}
		return gradePace(s.TotalDistanceM()/s.Duration, 15, 30)
	default:
		return IntensityNoData
	}
}

// gradePace maps a speed value onto low/moderate/high using two exclusive
// upper bounds.
func gradePace(v, lowBelow, moderateBelow float64) Intensity {
	switch {
	case v < lowBelow:
		return IntensityLow
	case v < moderateBelow:
		return IntensityModerate
	default:
		return IntensityHigh
	}
}
