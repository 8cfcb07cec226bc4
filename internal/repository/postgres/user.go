package postgres

import (
	"context"
	"database/sql"

	"vibetracker/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetOrCreate returns the user with telegramID, inserting it first if needed.
// The bool result reports whether the row was created by this call.
func (r *UserRepo) GetOrCreate(ctx context.Context, telegramID int64, username *string) (*domain.User, bool, error) {
	insert := `
		INSERT INTO users (telegram_id, username)
		VALUES ($1, $2)
		ON CONFLICT (telegram_id) DO NOTHING
		RETURNING id, telegram_id, username, created_at
	`
	u, err := scanUser(r.db.QueryRowContext(ctx, insert, telegramID, username))
	if err == nil {
		return u, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, err
	}

	// Row already existed, ON CONFLICT DO NOTHING returns nothing
	query := `SELECT id, telegram_id, username, created_at FROM users WHERE telegram_id = $1`
	u, err = scanUser(r.db.QueryRowContext(ctx, query, telegramID))
	if err != nil {
		return nil, false, err
	}

	return u, false, nil
}

// UpdateUsername stores a new display name for the user
func (r *UserRepo) UpdateUsername(ctx context.Context, telegramID int64, username *string) error {
	query := `UPDATE users SET username = $2 WHERE telegram_id = $1`
	_, err := r.db.ExecContext(ctx, query, telegramID, username)
	return err
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var username sql.NullString

	if err := row.Scan(&u.ID, &u.TelegramID, &username, &u.CreatedAt); err != nil {
		return nil, err
	}

	if username.Valid {
		u.Username = &username.String
	}

	return &u, nil
}
