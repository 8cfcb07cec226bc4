package domain

import (
	"fmt"
	"time"
)

// Rating bounds for a mood log
const (
	MinRating = 1
	MaxRating = 10
)

// User represents a bot user
type User struct {
	ID         int64
	TelegramID int64
	Username   *string
	CreatedAt  time.Time
}

// MoodLog is a single mood rating left by a user
type MoodLog struct {
	ID        int64
	UserID    int64
	Value     int
	Note      *string
	CreatedAt time.Time
}

// MoodSummary aggregates mood logs over a period
type MoodSummary struct {
	Count   int
	Average float64
	Min     int
	Max     int
}

// ValidateRating checks that value lies in [MinRating, MaxRating]
func ValidateRating(value int) error {
	if value < MinRating || value > MaxRating {
		return fmt.Errorf("%w: rating %d outside %d..%d", ErrValidation, value, MinRating, MaxRating)
	}
	return nil
}

// UsernamePtr converts a Telegram username into a nullable value
func UsernamePtr(username string) *string {
	if username == "" {
		return nil
	}
	return &username
}
