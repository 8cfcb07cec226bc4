package middleware

import (
	"context"

	"vibetracker/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// UserEnsurer creates or refreshes the user record of a sender
type UserEnsurer interface {
	EnsureUser(ctx context.Context, telegramID int64, username *string) (*domain.User, error)
}

// UserSyncMiddleware makes sure every sender has a user record with an up-to-date username
func UserSyncMiddleware(users UserEnsurer, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}

			if _, err := users.EnsureUser(context.Background(), sender.ID, domain.UsernamePtr(sender.Username)); err != nil {
				logger.Error("Failed to ensure user exists in middleware",
					zap.Error(err),
					zap.Int64("user_id", sender.ID),
				)
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "Произошла ошибка. Попробуйте позже."})
				}
				return c.Send("Произошла ошибка. Попробуйте позже.")
			}

			return next(c)
		}
	}
}
