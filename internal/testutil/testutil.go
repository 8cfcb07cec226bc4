package testutil

import (
	"time"

	"vibetracker/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(id, telegramID int64, username *string) *domain.User {
	return &domain.User{
		ID:         id,
		TelegramID: telegramID,
		Username:   username,
		CreatedAt:  time.Now(),
	}
}

// NewTestMoodLog creates a test mood log
func NewTestMoodLog(id, userID int64, value int, note *string) *domain.MoodLog {
	return &domain.MoodLog{
		ID:        id,
		UserID:    userID,
		Value:     value,
		Note:      note,
		CreatedAt: time.Now(),
	}
}

// StrPtr returns a pointer to s
func StrPtr(s string) *string {
	return &s
}
