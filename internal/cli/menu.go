package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/training-diary/internal/model"
	"github.com/iliyamo/training-diary/internal/repository"
	"github.com/iliyamo/training-diary/internal/service"
)

// mainMenu is the per-user action loop. Returning nil logs the user out;
// only store failures propagate.
func (s *Session) mainMenu(ctx context.Context, user model.User) error {
	for {
		s.println("\n=== TRAINING MENU ===")
		s.println("1. Log a training")
		s.println("2. View trainings")
		s.println("3. Stats")
		s.println("4. Add friend by username")
		s.println("5. List friends")
		s.println("6. Cardio intensity")
		s.println("7. Compare last training with previous three")
		s.println("8. Training streak")
		s.println("9. Calorie leaderboard")
		s.println("10. Reminder")
		s.println("11. Duration trend by type")
		s.println("0. Log out")

		choice, err := s.prompt("Choose")
		if err != nil {
			return nil
		}
		var actErr error
		switch choice {
		case "1":
			actErr = s.logTraining(ctx, user)
		case "2":
			actErr = s.viewTrainings(ctx, user)
		case "3":
			actErr = s.viewStats(ctx, user)
		case "4":
			actErr = s.addFriend(ctx, user)
		case "5":
			actErr = s.listFriends(ctx, user)
		case "6":
			actErr = s.cardioIntensity(ctx, user)
		case "7":
			actErr = s.compareRecent(ctx, user)
		case "8":
			s.showStreak(ctx, user)
		case "9":
			actErr = s.showLeaderboard(ctx)
		case "10":
			s.showReminder(ctx, user)
		case "11":
			actErr = s.durationTrend(ctx, user)
		case "0":
			return nil
		default:
			s.println("Unknown option.")
		}
		if actErr != nil {
			return actErr
		}
	}
}

func (s *Session) logTraining(ctx context.Context, user model.User) error {
	activity, ok, err := s.readActivity(user)
	if err != nil || !ok {
		return err
	}
	res, err := s.diary.LogActivity(ctx, activity)
	if err != nil {
		// Validation problems are user input problems, not store faults.
		s.printf("Could not log training: %v\n", err)
		return nil
	}
	s.println("Training logged.")
	if res.StreakKnown {
		s.printf("Training streak: %d days!\n", res.Streak.Current)
	}
	if res.RankKnown && res.Rank.Ranked {
		s.printf("Calorie ranking: #%d this week (%d kcal)\n", res.Rank.Position, res.Rank.Calories)
	}
	return nil
}

func (s *Session) viewTrainings(ctx context.Context, user model.User) error {
	acts, err := s.diary.Activities(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(acts) == 0 {
		s.println("No trainings yet.")
		return nil
	}
	for _, a := range acts {
		s.printf("- %s | %s | %.0f min | %d kcal", a.Date, a.Type, a.Metrics.DurationMin(), a.Metrics.CaloriesBurned())
		if a.Note != "" {
			s.printf(" | %s", a.Note)
		}
		s.println()
	}
	return nil
}

func (s *Session) viewStats(ctx context.Context, user model.User) error {
	stats, err := s.diary.Stats(ctx, user.ID)
	if err != nil {
		return err
	}
	s.printf("Trainings: %d | Calories: %d kcal | Minutes: %.1f\n",
		stats.TotalTrainings, stats.TotalCalories, stats.TotalMinutes)
	return nil
}

func (s *Session) addFriend(ctx context.Context, user model.User) error {
	name, err := s.prompt("Friend's username")
	if err != nil {
		return nil
	}
	switch err := s.diary.AddFriendByUsername(ctx, user.ID, name); {
	case errors.Is(err, repository.ErrNotFound):
		s.println("No such user.")
	case errors.Is(err, service.ErrSelfFriend):
		s.println("You cannot add yourself.")
	case errors.Is(err, service.ErrAlreadyFriends):
		s.println("You are already friends.")
	case err != nil:
		return err
	default:
		s.println("Friend added!")
	}
	return nil
}

func (s *Session) listFriends(ctx context.Context, user model.User) error {
	names, err := s.diary.ListFriends(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		s.println("No friends yet.")
		return nil
	}
	for _, n := range names {
		s.println("-", n)
	}
	return nil
}

func (s *Session) cardioIntensity(ctx context.Context, user model.User) error {
	rows, err := s.diary.CardioIntensity(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		s.println("No cardio trainings yet.")
		return nil
	}
	for _, r := range rows {
		s.printf("%s | %s - %s\n", r.Date, r.Type, r.Intensity)
	}
	return nil
}

func (s *Session) compareRecent(ctx context.Context, user model.User) error {
	cmp, err := s.diary.CompareRecent(ctx, user.ID)
	if errors.Is(err, service.ErrNotEnoughData) {
		s.println("Not enough data to compare.")
		return nil
	}
	if err != nil {
		return err
	}
	s.printf("\nLast training: %s, %.0f min, %d kcal\n",
		cmp.Last.Type, cmp.Last.Metrics.DurationMin(), cmp.Last.Metrics.CaloriesBurned())
	s.println("Previous trainings:")
	for _, a := range cmp.Previous {
		s.printf("- %s | %s | %.0f min | %d kcal\n", a.Type, a.Date, a.Metrics.DurationMin(), a.Metrics.CaloriesBurned())
	}
	return nil
}

func (s *Session) showStreak(ctx context.Context, user model.User) {
	streak, ok := s.diary.Streak(ctx, user.ID)
	if !ok {
		s.println("Cache unavailable - streaks are disabled.")
		return
	}
	s.println("\nYOUR TRAINING STREAK:")
	s.printf("Current streak: %d days\n", streak.Current)
	s.printf("Best streak: %d days\n", streak.Best)
	switch {
	case streak.Current == 0:
		s.println("Log a training to start a streak!")
	case streak.Current == 1:
		s.println("Great start! Keep going tomorrow!")
	case streak.Current >= 30:
		s.println("LEGEND! A month-long streak!")
	case streak.Current >= 7:
		s.println("AMAZING! A week-long streak!")
	default:
		s.printf("Nice! %d more days to a weekly streak!\n", 7-streak.Current)
	}
}

func (s *Session) showLeaderboard(ctx context.Context) error {
	rows, ok, err := s.diary.LeaderboardTop(ctx, 10)
	if err != nil {
		return err
	}
	if !ok {
		s.println("Cache unavailable - leaderboard is disabled.")
		return nil
	}
	s.println("\nCALORIE LEADERBOARD - THIS WEEK")
	if len(rows) == 0 {
		s.println("No data this week yet.")
		s.println("Log a training with calories to enter the ranking!")
		return nil
	}
	for _, r := range rows {
		s.printf("%d. %s - %d kcal\n", r.Position, r.Username, r.Calories)
	}
	return nil
}

func (s *Session) showReminder(ctx context.Context, user model.User) {
	s.println("\n=== YOUR REMINDER ===")
	msg, left, ok := s.diary.Reminder(ctx, user.ID)
	if !ok {
		s.println("No reminder.")
		s.println("Log a training to set one for tomorrow!")
		return
	}
	s.printf("- %s (%d hours left)\n", msg, int(left.Hours()))
}

func (s *Session) durationTrend(ctx context.Context, user model.User) error {
	views, err := s.diary.DurationTrend(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		s.println("No trainings yet.")
		return nil
	}
	s.println("\n=== Latest training per type vs previous ===")
	for _, v := range views {
		if delta, ok := v.Delta(); ok {
			trend := "no change"
			switch {
			case delta > 0:
				trend = fmt.Sprintf("+%.0f min", delta)
			case delta < 0:
				trend = fmt.Sprintf("%.0f min", delta)
			}
			s.printf("%s: %.0f min, previous %.0f min (%s)\n", v.Type, v.DurationMin, *v.Previous, trend)
		} else {
			s.printf("%s: %.0f min, no earlier training\n", v.Type, v.DurationMin)
		}
	}
	return nil
}
