package handler

import (
	"context"

	"vibetracker/internal/flow"
	"vibetracker/internal/metrics"
	"vibetracker/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User started bot",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)
	return h.dispatch(c, newEvent(c, service.EventStart, ""))
}

// handleLog handles /log command
func (h *Handler) handleLog(c tele.Context) error {
	return h.dispatch(c, newEvent(c, service.EventLog, ""))
}

// handleStats handles /stats command. It reads records only and leaves dialogue state alone.
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID
	metrics.UpdatesReceived.WithLabelValues("stats").Inc()

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	summary, err := h.statsService.WeeklySummary(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to get weekly stats", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(errorText)
	}

	p := flow.Stats(summary)
	return c.Send(p.Text)
}
