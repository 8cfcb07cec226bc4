package postgres

import (
	"context"
	"database/sql"
	"time"

	"vibetracker/internal/domain"
)

// MoodLogRepo implements repository.MoodLogRepository
type MoodLogRepo struct {
	db *sql.DB
}

// NewMoodLogRepo creates a new mood log repository
func NewMoodLogRepo(db *sql.DB) *MoodLogRepo {
	return &MoodLogRepo{db: db}
}

// Insert appends a mood log. Values outside 1..10 are rejected before touching the database.
func (r *MoodLogRepo) Insert(ctx context.Context, userID int64, value int, note *string) (*domain.MoodLog, error) {
	if err := domain.ValidateRating(value); err != nil {
		return nil, err
	}

	log := &domain.MoodLog{
		UserID: userID,
		Value:  value,
		Note:   note,
	}

	query := `
		INSERT INTO mood_logs (user_id, value, note)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, userID, value, note).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return nil, err
	}

	return log, nil
}

// Summary aggregates the user's mood logs created at or after since
func (r *MoodLogRepo) Summary(ctx context.Context, telegramID int64, since time.Time) (domain.MoodSummary, error) {
	var s domain.MoodSummary
	var avg sql.NullFloat64
	var minValue, maxValue sql.NullInt64

	query := `
		SELECT COUNT(m.id), AVG(m.value)::float8, MIN(m.value), MAX(m.value)
		FROM mood_logs m
		JOIN users u ON u.id = m.user_id
		WHERE u.telegram_id = $1 AND m.created_at >= $2
	`
	err := r.db.QueryRowContext(ctx, query, telegramID, since).Scan(&s.Count, &avg, &minValue, &maxValue)
	if err != nil {
		return domain.MoodSummary{}, err
	}

	s.Average = avg.Float64
	s.Min = int(minValue.Int64)
	s.Max = int(maxValue.Int64)

	return s, nil
}
