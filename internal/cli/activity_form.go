package cli

import (
	"strings"

	"github.com/iliyamo/training-diary/internal/model"
)

// readActivity walks the user through one training entry: envelope first,
// then the metrics variant for the chosen type. ok=false means the input
// ended or the user aborted; nothing was logged.
func (s *Session) readActivity(user model.User) (*model.Activity, bool, error) {
	s.printf("Types: %s\n", typeList())
	rawType, err := s.prompt("Type")
	if err != nil {
		return nil, false, nil
	}
	t, typeErr := model.ParseActivityType(strings.ToLower(rawType))
	if typeErr != nil {
		s.println("Unknown training type.")
		return nil, false, nil
	}
	date, err := s.prompt("Date (YYYY-MM-DD)")
	if err != nil {
		return nil, false, nil
	}
	if _, dateErr := model.ParseDate(date); dateErr != nil {
		s.println("Bad date, expected YYYY-MM-DD.")
		return nil, false, nil
	}
	note, err := s.prompt("Note (optional)")
	if err != nil {
		return nil, false, nil
	}

	metrics, ok, err := s.readMetrics(t)
	if err != nil || !ok {
		return nil, false, err
	}
	return &model.Activity{
		UserID:  user.ID,
		Date:    date,
		Type:    t,
		Note:    note,
		Metrics: metrics,
	}, true, nil
}

func typeList() string {
	names := make([]string, len(model.ActivityTypes))
	for i, t := range model.ActivityTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func (s *Session) readMetrics(t model.ActivityType) (model.Metrics, bool, error) {
	switch t {
	case model.TypeRunning:
		return s.readRunning()
	case model.TypeCycling:
		return s.readCycling()
	case model.TypeSwimming:
		return s.readSwimming()
	case model.TypeYoga:
		return s.readYoga()
	case model.TypeStrength:
		return s.readStrength()
	case model.TypeCalisthenics:
		return s.readCalisthenics()
	case model.TypeFunctional:
		return s.readFunctional()
	}
	return nil, false, nil
}

func (s *Session) readRunning() (model.Metrics, bool, error) {
	distance, err := s.promptFloat("Distance (km)")
	if err != nil {
		return nil, false, nil
	}
	duration, err := s.promptFloat("Duration (min)")
	if err != nil {
		return nil, false, nil
	}
	calories, err := s.promptOptionalInt("Calories")
	if err != nil {
		return nil, false, nil
	}
	return &model.RunningMetrics{DistanceKM: distance, Duration: duration, Calories: calories}, true, nil
}

func (s *Session) readCycling() (model.Metrics, bool, error) {
	distance, err := s.promptFloat("Distance (km)")
	if err != nil {
		return nil, false, nil
	}
	duration, err := s.promptFloat("Duration (min)")
	if err != nil {
		return nil, false, nil
	}
	speed, err := s.promptOptionalFloat("Average speed (km/h)")
	if err != nil {
		return nil, false, nil
	}
	calories, err := s.promptOptionalInt("Calories")
	if err != nil {
		return nil, false, nil
	}
	return &model.CyclingMetrics{DistanceKM: distance, Duration: duration, AvgSpeedKMH: speed, Calories: calories}, true, nil
}

func (s *Session) readSwimming() (model.Metrics, bool, error) {
	laps, err := s.promptInt("Laps")
	if err != nil {
		return nil, false, nil
	}
	stroke, err := s.prompt("Stroke")
	if err != nil {
		return nil, false, nil
	}
	poolLen, err := s.promptOptionalFloat("Pool length (m)")
	if err != nil {
		return nil, false, nil
	}
	var distance float64
	if poolLen <= 0 {
		if distance, err = s.promptFloat("Total distance (m)"); err != nil {
			return nil, false, nil
		}
	}
	duration, err := s.promptOptionalFloat("Duration (min)")
	if err != nil {
		return nil, false, nil
	}
	calories, err := s.promptOptionalInt("Calories")
	if err != nil {
		return nil, false, nil
	}
	return &model.SwimmingMetrics{
		Laps: laps, Stroke: stroke, PoolLengthM: poolLen, DistanceM: distance,
		Duration: duration, Calories: calories,
	}, true, nil
}

func (s *Session) readYoga() (model.Metrics, bool, error) {
	duration, err := s.promptFloat("Duration (min)")
	if err != nil {
		return nil, false, nil
	}
	style, err := s.prompt("Style")
	if err != nil {
		return nil, false, nil
	}
	calories, err := s.promptOptionalInt("Calories")
	if err != nil {
		return nil, false, nil
	}
	return &model.YogaMetrics{Duration: duration, Style: style, Calories: calories}, true, nil
}

func (s *Session) readStrength() (model.Metrics, bool, error) {
	m := &model.StrengthMetrics{}
	s.println("Add exercises; empty name finishes the list.")
	for {
		name, err := s.prompt("Exercise name")
		if err != nil {
			return nil, false, nil
		}
		if name == "" {
			break
		}
		sets, err := s.promptInt("Sets")
		if err != nil {
			return nil, false, nil
		}
		reps, err := s.promptInt("Reps")
		if err != nil {
			return nil, false, nil
		}
		weight, err := s.promptFloat("Weight (kg)")
		if err != nil {
			return nil, false, nil
		}
		m.Exercises = append(m.Exercises, model.StrengthExercise{Name: name, Sets: sets, Reps: reps, WeightKG: weight})
	}
	if err := s.readCommon(&m.Duration, &m.Calories); err != nil {
		return nil, false, nil
	}
	return m, true, nil
}

func (s *Session) readCalisthenics() (model.Metrics, bool, error) {
	m := &model.CalisthenicsMetrics{}
	s.println("Add exercises; empty name finishes the list.")
	for {
		name, err := s.prompt("Exercise name")
		if err != nil {
			return nil, false, nil
		}
		if name == "" {
			break
		}
		sets, err := s.promptInt("Sets")
		if err != nil {
			return nil, false, nil
		}
		reps, err := s.promptInt("Reps")
		if err != nil {
			return nil, false, nil
		}
		m.Exercises = append(m.Exercises, model.CalisthenicsExercise{Name: name, Sets: sets, Reps: reps})
	}
	if err := s.readCommon(&m.Duration, &m.Calories); err != nil {
		return nil, false, nil
	}
	return m, true, nil
}

func (s *Session) readFunctional() (model.Metrics, bool, error) {
	m := &model.FunctionalMetrics{}
	s.println("Add exercises; empty name finishes the list.")
	for {
		name, err := s.prompt("Exercise name")
		if err != nil {
			return nil, false, nil
		}
		if name == "" {
			break
		}
		durSec, err := s.promptInt("Duration (sec)")
		if err != nil {
			return nil, false, nil
		}
		rounds, err := s.promptInt("Rounds")
		if err != nil {
			return nil, false, nil
		}
		m.Exercises = append(m.Exercises, model.FunctionalExercise{Name: name, DurationSec: durSec, Rounds: rounds})
	}
	if err := s.readCommon(&m.Duration, &m.Calories); err != nil {
		return nil, false, nil
	}
	return m, true, nil
}

// readCommon asks for the optional shared duration/calorie fields of the
// list-style variants.
func (s *Session) readCommon(duration *float64, calories *int) error {
	d, err := s.promptOptionalFloat("Total duration (min)")
	if err != nil {
		return err
	}
	c, err := s.promptOptionalInt("Calories")
	if err != nil {
		return err
	}
	*duration = d
	*calories = c
	return nil
}
