package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"edintake/internal/entity"

	"gorm.io/gorm"
)

// fakeRepo is an in-memory model.Repository for workflow tests.
type fakeRepo struct {
	mu           sync.Mutex
	users        []entity.DbUser
	applications []entity.DbApplication

	createApplicationErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{}
}

func (f *fakeRepo) CreateUser(ctx context.Context, user *entity.DbUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = uint(len(f.users) + 1)
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx := range f.users {
		if strings.EqualFold(f.users[idx].Email, email) {
			user := f.users[idx]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx := range f.users {
		if f.users[idx].ID == id {
			user := f.users[idx]
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListUsers(ctx context.Context) ([]entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.DbUser, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeRepo) ApproveUser(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx := range f.users {
		if f.users[idx].ID == id {
			f.users[idx].IsApproved = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) CountUsers(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *fakeRepo) CreateApplication(ctx context.Context, application *entity.DbApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createApplicationErr != nil {
		return f.createApplicationErr
	}
	for _, existing := range f.applications {
		if existing.ID == application.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.applications = append(f.applications, *application)
	return nil
}

func (f *fakeRepo) GetApplication(ctx context.Context, id string) (*entity.DbApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx := range f.applications {
		if f.applications[idx].ID == id {
			application := f.applications[idx]
			return &application, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListApplications(ctx context.Context, params *entity.ApplicationQuery) ([]entity.DbApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.DbApplication
	for _, application := range f.applications {
		if params != nil && params.CollectorEmail != "" && !strings.EqualFold(application.CollectorEmail, params.CollectorEmail) {
			continue
		}
		if params != nil && params.Status != "" && application.Status != params.Status {
			continue
		}
		out = append(out, application)
	}
	return out, nil
}

func (f *fakeRepo) UpdateApplication(ctx context.Context, id string, updates entity.ApplicationUpdates) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for idx := range f.applications {
		if f.applications[idx].ID == id {
			if updates.Status != nil {
				f.applications[idx].Status = *updates.Status
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) CountApplications(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.applications)), nil
}

// recordingSink captures forwarded applications and can be told to fail.
type recordingSink struct {
	mu        sync.Mutex
	forwarded []entity.DbApplication
	fail      bool
	notify    chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{notify: make(chan struct{}, 8)}
}

func (s *recordingSink) Forward(ctx context.Context, application *entity.DbApplication) error {
	s.mu.Lock()
	s.forwarded = append(s.forwarded, *application)
	fail := s.fail
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}

	if fail {
		return errors.New("simulated network failure")
	}
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forwarded)
}
