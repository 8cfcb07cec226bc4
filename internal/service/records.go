package service

import (
	"context"
	"fmt"

	"vibetracker/internal/domain"
	"vibetracker/internal/metrics"
	"vibetracker/internal/repository"

	"go.uber.org/zap"
)

// RecordService handles users and their mood logs
type RecordService struct {
	userRepo    repository.UserRepository
	moodLogRepo repository.MoodLogRepository
	logger      *zap.Logger
}

// NewRecordService creates a new record service
func NewRecordService(
	userRepo repository.UserRepository,
	moodLogRepo repository.MoodLogRepository,
	logger *zap.Logger,
) *RecordService {
	return &RecordService{
		userRepo:    userRepo,
		moodLogRepo: moodLogRepo,
		logger:      logger,
	}
}

// EnsureUser returns the user for telegramID, creating it on first contact.
// A non-nil username that differs from the stored one replaces it.
func (s *RecordService) EnsureUser(ctx context.Context, telegramID int64, username *string) (*domain.User, error) {
	user, created, err := s.userRepo.GetOrCreate(ctx, telegramID, username)
	if err != nil {
		return nil, fmt.Errorf("get or create user: %w", err)
	}

	if created {
		s.logger.Info("User created", zap.Int64("telegram_id", telegramID))
		return user, nil
	}

	if username != nil && (user.Username == nil || *user.Username != *username) {
		if err := s.userRepo.UpdateUsername(ctx, telegramID, username); err != nil {
			return nil, fmt.Errorf("update username: %w", err)
		}
		s.logger.Debug("Username updated",
			zap.Int64("telegram_id", telegramID),
			zap.String("username", *username),
		)
		user.Username = username
	}

	return user, nil
}

// SaveMoodLog stores a rating with an optional note for the user
func (s *RecordService) SaveMoodLog(ctx context.Context, telegramID int64, username *string, value int, note *string) (*domain.MoodLog, error) {
	if err := domain.ValidateRating(value); err != nil {
		return nil, err
	}

	user, err := s.EnsureUser(ctx, telegramID, username)
	if err != nil {
		return nil, err
	}

	log, err := s.moodLogRepo.Insert(ctx, user.ID, value, note)
	if err != nil {
		return nil, fmt.Errorf("insert mood log: %w", err)
	}

	metrics.MoodLogsCreated.Inc()
	s.logger.Info("Mood log saved",
		zap.Int64("telegram_id", telegramID),
		zap.Int("value", value),
		zap.Bool("has_note", note != nil),
	)

	return log, nil
}
