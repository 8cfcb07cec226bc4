package middleware

import (
	"fmt"
	"runtime/debug"

	"vibetracker/internal/metrics"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// RecoverMiddleware catches panics in handlers and prevents the bot from crashing
func RecoverMiddleware(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					metrics.Errors.WithLabelValues("panic").Inc()
					logger.Error("Panic recovered",
						zap.Any("panic", r),
						zap.String("stack", string(debug.Stack())),
					)
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return next(c)
		}
	}
}
