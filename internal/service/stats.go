package service

import (
	"context"
	"time"

	"vibetracker/internal/domain"
	"vibetracker/internal/repository"

	"go.uber.org/zap"
)

const statsWindow = 7 * 24 * time.Hour

// StatsService handles mood statistics
type StatsService struct {
	moodLogRepo repository.MoodLogRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(moodLogRepo repository.MoodLogRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		moodLogRepo: moodLogRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// WeeklySummary aggregates the user's mood logs of the last 7 days
func (s *StatsService) WeeklySummary(ctx context.Context, telegramID int64) (domain.MoodSummary, error) {
	since := s.now().Add(-statsWindow)

	summary, err := s.moodLogRepo.Summary(ctx, telegramID, since)
	if err != nil {
		s.logger.Error("Failed to load weekly summary",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err),
		)
		return domain.MoodSummary{}, err
	}

	return summary, nil
}
