package repository

import (
	"context"
	"time"

	"vibetracker/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	GetOrCreate(ctx context.Context, telegramID int64, username *string) (*domain.User, bool, error)
	UpdateUsername(ctx context.Context, telegramID int64, username *string) error
}

// MoodLogRepository defines mood log data operations
type MoodLogRepository interface {
	Insert(ctx context.Context, userID int64, value int, note *string) (*domain.MoodLog, error)
	Summary(ctx context.Context, telegramID int64, since time.Time) (domain.MoodSummary, error)
}

// UnlockFunc releases a lock taken with StateStore.Lock
type UnlockFunc func(ctx context.Context) error

// StateStore keeps the dialogue state of each user.
// Load returns nil, nil when the user has no flow in progress.
type StateStore interface {
	Load(ctx context.Context, userKey int64) (*domain.DialogueState, error)
	Save(ctx context.Context, state domain.DialogueState) error
	Clear(ctx context.Context, userKey int64) error
	// Lock serializes load/save cycles for one user key.
	Lock(ctx context.Context, userKey int64) (UnlockFunc, error)
}
