// Package service implements the diary's use cases on top of the Mongo
// repositories and the Redis-backed derived state. The console session
// layer calls into it and formats the results; nothing here writes to the
// terminal.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/training-diary/internal/cache"
	"github.com/iliyamo/training-diary/internal/model"
	"github.com/iliyamo/training-diary/internal/repository"
	"github.com/iliyamo/training-diary/internal/utils"
)

// Business-level sentinel errors surfaced to the session layer.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSelfFriend         = errors.New("cannot add yourself as a friend")
	ErrAlreadyFriends     = errors.New("already friends")
	ErrNotEnoughData      = errors.New("not enough data")
)

// UserStore is the profile-store surface the service needs.
type UserStore interface {
	Create(ctx context.Context, username, email, password string, age int, gender string, cost int) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (model.User, error)
	IncrementStats(ctx context.Context, id primitive.ObjectID, calories int, minutes float64) error
	UsernamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}

// ActivityStore is the activity-store surface the service needs.
type ActivityStore interface {
	Insert(ctx context.Context, a *model.Activity) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Activity, error)
	RecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]model.Activity, error)
	ListCardioByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Activity, error)
	DurationTrend(ctx context.Context, userID primitive.ObjectID) ([]repository.TrendRow, error)
}

// FriendStore is the social-graph surface the service needs.
type FriendStore interface {
	Get(ctx context.Context, userID primitive.ObjectID) (model.Friendship, error)
	AddEach(ctx context.Context, a, b primitive.ObjectID) error
	ListFriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// TxnRunner executes fn inside one transaction scope.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Deps bundles the service's injected dependencies. Streaks, Board and
// Reminders always exist; when Redis is down they carry a nil client and
// every call degrades via cache.ErrUnavailable.
type Deps struct {
	Txn        TxnRunner
	Users      UserStore
	Activities ActivityStore
	Friends    FriendStore
	Streaks    *cache.StreakTracker
	Board      *cache.Leaderboard
	Reminders  *cache.Reminders
	BcryptCost int
	Log        *slog.Logger
	Now        func() time.Time
}

// Diary is the application service behind the console menu.
type Diary struct {
	deps Deps
}

func NewDiary(deps Deps) *Diary {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	return &Diary{deps: deps}
}

// Register creates a new account. Duplicate usernames and emails surface as
// repository sentinels.
func (d *Diary) Register(ctx context.Context, username, email, password string, age int, gender string) (primitive.ObjectID, error) {
	return d.deps.Users.Create(ctx, username, email, password, age, gender, d.deps.BcryptCost)
}

// Login authenticates by email and password. Unknown email and wrong
// password both map to ErrInvalidCredentials so the prompt never reveals
// which one was wrong.
func (d *Diary) Login(ctx context.Context, email, password string) (model.User, error) {
	u, err := d.deps.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Stats returns the user's cumulative totals.
func (d *Diary) Stats(ctx context.Context, userID primitive.ObjectID) (model.Stats, error) {
	u, err := d.deps.Users.GetByID(ctx, userID)
	if err != nil {
		return model.Stats{}, err
	}
	return u.Stats, nil
}

// Activities lists the user's logged entries, oldest first.
func (d *Diary) Activities(ctx context.Context, userID primitive.ObjectID) ([]model.Activity, error) {
	return d.deps.Activities.ListByUser(ctx, userID)
}

// AddFriendByUsername resolves the target name and writes the edge in both
// directions. Self-friending and existing edges are rejected with
// sentinels; the already-friends case leaves both sets untouched.
func (d *Diary) AddFriendByUsername(ctx context.Context, userID primitive.ObjectID, username string) error {
	friend, err := d.deps.Users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if friend.ID == userID {
		return ErrSelfFriend
	}
	f, err := d.deps.Friends.Get(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if f.Has(friend.ID) {
		return ErrAlreadyFriends
	}
	return d.deps.Friends.AddEach(ctx, userID, friend.ID)
}

// ListFriends resolves the user's friend set to usernames.
func (d *Diary) ListFriends(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	ids, err := d.deps.Friends.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	names, err := d.deps.Users.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			out = append(out, name)
		}
	}
	return out, nil
}

// Streak reads the user's current streak; when the cache is down it
// returns zeroed state and available=false for an informational message.
func (d *Diary) Streak(ctx context.Context, userID primitive.ObjectID) (cache.StreakState, bool) {
	s, err := d.deps.Streaks.Get(ctx, userID.Hex())
	if err != nil {
		if !errors.Is(err, cache.ErrUnavailable) {
			d.deps.Log.Warn("streak read failed", "user", userID.Hex(), "err", err)
		}
		return cache.StreakState{}, false
	}
	return s, true
}

// Reminder reads the user's pending training reminder, if any.
func (d *Diary) Reminder(ctx context.Context, userID primitive.ObjectID) (msg string, left time.Duration, ok bool) {
	msg, left, ok, err := d.deps.Reminders.Get(ctx, userID.Hex())
	if err != nil {
		if !errors.Is(err, cache.ErrUnavailable) {
			d.deps.Log.Warn("reminder read failed", "user", userID.Hex(), "err", err)
		}
		return "", 0, false
	}
	return msg, left, ok
}
