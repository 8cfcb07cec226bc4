package testutil

import (
	"context"
	"time"

	"vibetracker/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetOrCreate(ctx context.Context, telegramID int64, username *string) (*domain.User, bool, error) {
	args := m.Called(ctx, telegramID, username)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) UpdateUsername(ctx context.Context, telegramID int64, username *string) error {
	args := m.Called(ctx, telegramID, username)
	return args.Error(0)
}

// MockMoodLogRepository is a mock for MoodLogRepository
type MockMoodLogRepository struct {
	mock.Mock
}

func (m *MockMoodLogRepository) Insert(ctx context.Context, userID int64, value int, note *string) (*domain.MoodLog, error) {
	args := m.Called(ctx, userID, value, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoodLog), args.Error(1)
}

func (m *MockMoodLogRepository) Summary(ctx context.Context, telegramID int64, since time.Time) (domain.MoodSummary, error) {
	args := m.Called(ctx, telegramID, since)
	return args.Get(0).(domain.MoodSummary), args.Error(1)
}
