package model

// The concrete metrics variants. Field names mirror the document schema:
// duration_min and calories_burned are shared, the rest are per-type.
// Fields marked optional may be zero; Validate only enforces the required
// set for each variant.

// StrengthExercise is one entry in a strength session's exercise list.
type StrengthExercise struct {
	Name     string  `bson:"name" json:"name"`
	Sets     int     `bson:"sets" json:"sets"`
	Reps     int     `bson:"reps" json:"reps"`
	WeightKG float64 `bson:"weight_kg" json:"weight_kg"`
}

// StrengthMetrics requires a non-empty exercise list; every exercise needs
// name, sets, reps and weight.
type StrengthMetrics struct {
	Exercises []StrengthExercise `bson:"exercises" json:"exercises"`
	Duration  float64            `bson:"duration_min,omitempty" json:"duration_min,omitempty"`
	Calories  int                `bson:"calories_burned,omitempty" json:"calories_burned,omitempty"`
}

func (m *StrengthMetrics) Type() ActivityType   { return TypeStrength }
func (m *StrengthMetrics) DurationMin() float64 { return m.Duration }
func (m *StrengthMetrics) CaloriesBurned() int  { return m.Calories }

func (m *StrengthMetrics) Validate() error {
	if len(m.Exercises) == 0 {
		return missing(TypeStrength, "exercises")
	}
	for _, ex := range m.Exercises {
		switch {
		case ex.Name == "":
			return missing(TypeStrength, "exercises.name")
		case ex.Sets <= 0:
			return missing(TypeStrength, "exercises.sets")
		case ex.Reps <= 0:
			return missing(TypeStrength, "exercises.reps")
		case ex.WeightKG <= 0:
			return missing(TypeStrength, "exercises.weight_kg")
		}
	}
	return nil
}

// RunningMetrics requires distance and duration; calories are optional.
type RunningMetrics struct {
	DistanceKM float64 `bson:"distance_km" json:"distance_km"`
	Duration   float64 `bson:"duration_min" json:"duration_min"`
	Calories   int     `bson:"calories_burned,omitempty" json:"calories_burned,omitempty"`
}

func (m *RunningMetrics) Type() ActivityType   { return TypeRunning }
func (m *RunningMetrics) DurationMin() float64 { return m.Duration }
func (m *RunningMetrics) CaloriesBurned() int  { return m.Calories }

func (m *RunningMetrics) Validate() error {
	if m.DistanceKM <= 0 {
		return missing(TypeRunning, "distance_km")
	}
	if m.Duration <= 0 {
		return missing(TypeRunning, "duration_min")
	}
	return nil
}

// SwimmingMetrics requires laps, stroke and one of distance_m or
// pool_length_m. Duration and calories are optional.
type SwimmingMetrics struct {
	Laps        int     `bson:"laps" json:"laps"`
	DistanceM   float64 `bson:"distance_m,omitempty" json:"distance_m,omitempty"`
	PoolLengthM float64 `bson:"pool_length_m,omitempty" json:"pool_length_m,omitempty"`
	Stroke      string  `bson:"stroke" json:"stroke"`
	Duration    float64 `bson:"duration_min,omitempty" json:"duration_min,omitempty"`
	Calories    int     `bson:"calories_burned,omitempty" json:"calories_burned,omitempty"`
}

func (m *SwimmingMetrics) Type() ActivityType   { return TypeSwimming }
func (m *SwimmingMetrics) DurationMin() float64 { return m.Duration }
func (m *SwimmingMetrics) CaloriesBurned() int  { return m.Calories }

func (m *SwimmingMetrics) Validate() error {
	if m.Laps <= 0 {
		return missing(TypeSwimming, "laps")
	}
	if m.Stroke == "" {
		return missing(TypeSwimming, "stroke")
	}
	if m.DistanceM <= 0 && m.PoolLengthM <= 0 {
		return missing(TypeSwimming, "distance_m or pool_length_m")
	}
	return nil
}

// TotalDistanceM resolves the swim distance from whichever fields are
// present: explicit distance wins, otherwise laps times pool length.
func (m *SwimmingMetrics) TotalDistanceM() float64 {
	if m.DistanceM > 0 {
		return m.DistanceM
	}
	return float64(m.Laps) * m.PoolLengthM
}

// CyclingMetrics requires distance and duration; average speed and calories
// are optional.
type CyclingMetrics struct {
	DistanceKM  float64 `bson:"distance_km" json:"distance_km"`
	Duration    float64 `bson:"duration_min" json:"duration_min"`
	AvgSpeedKMH float64 `bson:"avg_speed_kmh,omitempty" json:"avg_speed_kmh,omitempty"`
	Calories    int     `bson:"calories_burned,omitempty" json:"calories_burned,omitempty"`
}

func (m *CyclingMetrics) Type() ActivityType   { return TypeCycling }
func (m *CyclingMetrics) DurationMin() float64 { return m.Duration }
func (m *CyclingMetrics) CaloriesBurned() int  { return m.Calories }

func (m *CyclingMetrics) Validate() error {
	if m.DistanceKM <= 0 {
		return missing(TypeCycling, "distance_km")
	}
	if m.Duration <= 0 {
		return missing(TypeCycling, "duration_min")
	}
	return nil
}

// Speed returns the average speed in km/h, preferring the recorded value
// and falling back to distance over duration.
func (m *CyclingMetrics) Speed() float64 {
	if m.AvgSpeedKMH > 0 {
		return m.AvgSpeedKMH
	}
	if m.Duration <= 0 {
		return 0
	}
	return m.DistanceKM / (m.Duration / 60)
}

// YogaMetrics requires duration and style.
type YogaMetrics struct {
	Duration float64 `bson:"duration_min" json:"duration_min"`
	Style    string  `bson:"style" json:"style"`
	Calories int     `bson:"calories_burned,omitempty" json:"calories_burned,omitempty"`
}

func (m *YogaMetrics) Type() ActivityType   { return TypeYoga }
func (m *YogaMetrics) DurationMin() float64 { return m.Duration }
func (m *YogaMetrics) CaloriesBurned() int  { return m.Calories }

func (m *YogaMetrics) Validate() error {
	if m.Duration <= 0 {
		return missing(TypeYoga, "duration_min")
	}
	if m.Style == "" {
		return missing(TypeYoga, "style")
	}
	return nil
}

// CalisthenicsExercise is one entry in a calisthenics exercise list.
type CalisthenicsExercise struct {
	Name string `bson:"name" json:"name"`
	Sets int    `bson:"sets" json:"sets"`
	Reps int    `bson:"reps" json:"reps"`
}

// CalisthenicsMetrics requires a non-empty exercise list.
type CalisthenicsMetrics struct {
	Exercises []CalisthenicsExercise `bson:"exercises" json:"exercises"`
	Duration  float64                `bson:"duration_min,omitempty" json:"duration_min,omitempty"`
	Calories  int                    `bson:"calories_burned,omitempty" json:"calories_burned,omitempty"`
}

func (m *CalisthenicsMetrics) Type() ActivityType   { return TypeCalisthenics }
func (m *CalisthenicsMetrics) DurationMin() float64 { return m.Duration }
func (m *CalisthenicsMetrics) CaloriesBurned() int  { return m.Calories }

func (m *CalisthenicsMetrics) Validate() error {
	if len(m.Exercises) == 0 {
		return missing(TypeCalisthenics, "exercises")
	}
	for _, ex := range m.Exercises {
		switch {
		case ex.Name == "":
			return missing(TypeCalisthenics, "exercises.name")
		case ex.Sets <= 0:
			return missing(TypeCalisthenics, "exercises.sets")
		case ex.Reps <= 0:
			return missing(TypeCalisthenics, "exercises.reps")
		}
	}
	return nil
}

// FunctionalExercise is one entry in a functional-training round list.
type FunctionalExercise struct {
	Name        string `bson:"name" json:"name"`
	DurationSec int    `bson:"duration_sec" json:"duration_sec"`
	Rounds      int    `bson:"rounds" json:"rounds"`
}

// FunctionalMetrics requires a non-empty exercise list.
type FunctionalMetrics struct {
	Exercises []FunctionalExercise `bson:"exercises" json:"exercises"`
	Duration  float64              `bson:"duration_min,omitempty" json:"duration_min,omitempty"`
	Calories  int                  `bson:"calories_burned,omitempty" json:"calories_burned,omitempty"`
}

func (m *FunctionalMetrics) Type() ActivityType   { return TypeFunctional }
func (m *FunctionalMetrics) DurationMin() float64 { return m.Duration }
func (m *FunctionalMetrics) CaloriesBurned() int  { return m.Calories }

func (m *FunctionalMetrics) Validate() error {
	if len(m.Exercises) == 0 {
		return missing(TypeFunctional, "exercises")
	}
	for _, ex := range m.Exercises {
		switch {
		case ex.Name == "":
			return missing(TypeFunctional, "exercises.name")
		case ex.DurationSec <= 0:
			return missing(TypeFunctional, "exercises.duration_sec")
		case ex.Rounds <= 0:
			return missing(TypeFunctional, "exercises.rounds")
		}
	}
	return nil
}
