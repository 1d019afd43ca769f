// Package cli is the console session layer: a numbered menu over the diary
// service, line-oriented prompt/response only. It holds no business logic;
// every action is one or more service calls plus formatting.
package cli

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/iliyamo/training-diary/internal/model"
	"github.com/iliyamo/training-diary/internal/repository"
	"github.com/iliyamo/training-diary/internal/service"
)

// Session drives the interactive console over an injected reader/writer
// pair, so tests can script it.
type Session struct {
	diary   *service.Diary
	in      *bufio.Reader
	out     io.Writer
	cacheUp bool
}

// New builds a session. cacheUp=false makes the session print an
// informational note that streaks, leaderboard and reminders are degraded.
func New(diary *service.Diary, in io.Reader, out io.Writer, cacheUp bool) *Session {
	return &Session{diary: diary, in: bufio.NewReader(in), out: out, cacheUp: cacheUp}
}

// Run is the outer login/register loop. It returns when the user quits or
// input ends.
func (s *Session) Run(ctx context.Context) error {
	s.println("=== Training Diary ===")
	if !s.cacheUp {
		s.println("Note: cache unavailable - streaks, leaderboard and reminders are disabled.")
	}
	for {
		s.println("\n1. Log in")
		s.println("2. Register")
		s.println("0. Quit")
		choice, err := s.prompt("Choose")
		if err != nil {
			return nil
		}
		switch choice {
		case "1":
			user, ok, err := s.login(ctx)
			if err != nil {
				return err
			}
			if ok {
				if err := s.mainMenu(ctx, user); err != nil {
					return err
				}
			}
		case "2":
			if err := s.register(ctx); err != nil {
				return err
			}
		case "0":
			return nil
		default:
			s.println("Unknown option.")
		}
	}
}

func (s *Session) login(ctx context.Context) (model.User, bool, error) {
	email, err := s.prompt("Email")
	if err != nil {
		return model.User{}, false, nil
	}
	password, err := s.prompt("Password")
	if err != nil {
		return model.User{}, false, nil
	}
	user, err := s.diary.Login(ctx, email, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		s.println("Invalid email or password.")
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, err
	}
	s.printf("Welcome back, %s!\n", user.Username)
	return user, true, nil
}

func (s *Session) register(ctx context.Context) error {
	username, err := s.prompt("Username")
	if err != nil {
		return nil
	}
	email, err := s.prompt("Email")
	if err != nil {
		return nil
	}
	password, err := s.prompt("Password")
	if err != nil {
		return nil
	}
	age, err := s.promptInt("Age")
	if err != nil {
		return nil
	}
	gender, err := s.prompt("Gender")
	if err != nil {
		return nil
	}
	_, err = s.diary.Register(ctx, username, email, password, age, gender)
	switch {
	case errors.Is(err, repository.ErrUsernameExists):
		s.println("Username already taken.")
	case errors.Is(err, repository.ErrEmailExists):
		s.println("Email already registered.")
	case err != nil:
		return err
	default:
		s.println("Registered. You can log in now.")
	}
	return nil
}
