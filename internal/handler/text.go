package handler

import (
	"vibetracker/internal/service"

	tele "gopkg.in/telebot.v3"
)

// handleText passes free text to the engine unchanged; only AwaitingNote accepts it
func (h *Handler) handleText(c tele.Context) error {
	text := c.Text()
	if text == "" {
		return nil
	}
	return h.dispatch(c, newEvent(c, service.EventText, text))
}
