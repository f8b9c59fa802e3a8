package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, text string) error {
	args := m.Called(ctx, email, text)
	return args.Error(0)
}

func (m *MockRepository) ListSince(ctx context.Context, since time.Time) ([]*RecentActivity, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*RecentActivity), args.Error(1)
}

func TestService_Record_SwallowsErrors(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	mockRepo.On("Create", ctx, "a@b.com", "Placed order #1").Return(errors.New("db down"))

	// Must not panic or surface the failure.
	svc.Record(ctx, "a@b.com", "Placed order #1")
	mockRepo.AssertExpectations(t)
}

func TestService_ListRecent(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	ts := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	mockRepo.On("ListSince", ctx, mock.MatchedBy(func(since time.Time) bool {
		return time.Since(since) < 25*time.Hour && time.Since(since) > 23*time.Hour
	})).Return([]*RecentActivity{
		{ID: 1, Email: "a@b.com", Activity: "Logged in", CreatedAt: ts},
	}, nil)

	lines, err := svc.ListRecent(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"• a@b.com Logged in 2026-08-29 09:30:00"}, lines)
}
