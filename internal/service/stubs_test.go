package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/training-diary/internal/model"
	"github.com/iliyamo/training-diary/internal/repository"
)

// In-memory store stubs implementing the service's store interfaces.

type stubUsers struct {
	byID       map[primitive.ObjectID]model.User
	createErr  error
	statsErr   error
	statsCalls int
}

func newStubUsers(users ...model.User) *stubUsers {
	s := &stubUsers{byID: make(map[primitive.ObjectID]model.User)}
	for _, u := range users {
		s.byID[u.ID] = u
	}
	return s
}

func (s *stubUsers) Create(_ context.Context, username, email, _ string, age int, gender string, _ int) (primitive.ObjectID, error) {
	if s.createErr != nil {
		return primitive.NilObjectID, s.createErr
	}
	for _, u := range s.byID {
		if u.Username == username {
			return primitive.NilObjectID, repository.ErrUsernameExists
		}
		if u.Email == email {
			return primitive.NilObjectID, repository.ErrEmailExists
		}
	}
	id := primitive.NewObjectID()
	s.byID[id] = model.User{ID: id, Username: username, Email: email, Age: age, Gender: gender}
	return id, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *stubUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range s.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (s *stubUsers) GetByID(_ context.Context, id primitive.ObjectID) (model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) IncrementStats(_ context.Context, id primitive.ObjectID, calories int, minutes float64) error {
	if s.statsErr != nil {
		return s.statsErr
	}
	u, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Stats.TotalTrainings++
	u.Stats.TotalCalories += calories
	u.Stats.TotalMinutes += minutes
	s.byID[id] = u
	s.statsCalls++
	return nil
}

func (s *stubUsers) UsernamesByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	out := make(map[primitive.ObjectID]string)
	for _, id := range ids {
		if u, ok := s.byID[id]; ok {
			out[id] = u.Username
		}
	}
	return out, nil
}

type stubActivities struct {
	items     []model.Activity
	recent    []model.Activity
	trendRows []repository.TrendRow
	insertErr error
}

func (s *stubActivities) Insert(_ context.Context, a *model.Activity) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	a.ID = primitive.NewObjectID()
	s.items = append(s.items, *a)
	return nil
}

func (s *stubActivities) ListByUser(_ context.Context, userID primitive.ObjectID) ([]model.Activity, error) {
	var out []model.Activity
	for _, a := range s.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubActivities) RecentByUser(_ context.Context, _ primitive.ObjectID, limit int) ([]model.Activity, error) {
	if len(s.recent) > limit {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func (s *stubActivities) ListCardioByUser(_ context.Context, userID primitive.ObjectID) ([]model.Activity, error) {
	var out []model.Activity
	for _, a := range s.items {
		if a.UserID != userID {
			continue
		}
		switch a.Type {
		case model.TypeRunning, model.TypeCycling, model.TypeSwimming:
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubActivities) DurationTrend(_ context.Context, _ primitive.ObjectID) ([]repository.TrendRow, error) {
	return s.trendRows, nil
}

type stubFriends struct {
	sets   map[primitive.ObjectID][]primitive.ObjectID
	addErr error
}

func newStubFriends() *stubFriends {
	return &stubFriends{sets: make(map[primitive.ObjectID][]primitive.ObjectID)}
}

func (s *stubFriends) Get(_ context.Context, userID primitive.ObjectID) (model.Friendship, error) {
	ids, ok := s.sets[userID]
	if !ok {
		return model.Friendship{}, repository.ErrNotFound
	}
	return model.Friendship{UserID: userID, Friends: ids}, nil
}

func (s *stubFriends) AddEach(_ context.Context, a, b primitive.ObjectID) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.sets[a] = append(s.sets[a], b)
	s.sets[b] = append(s.sets[b], a)
	return nil
}

func (s *stubFriends) ListFriendIDs(_ context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return s.sets[userID], nil
}

// stubTxn mimics transaction semantics over the activity stub: when fn
// fails, writes made inside the scope are discarded, like an aborted
// transaction.
type stubTxn struct {
	activities *stubActivities
	beginErr   error
	calls      int
}

func (s *stubTxn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.beginErr != nil {
		return s.beginErr
	}
	s.calls++
	before := len(s.activities.items)
	if err := fn(ctx); err != nil {
		s.activities.items = s.activities.items[:before]
		return err
	}
	return nil
}
