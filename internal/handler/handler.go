package handler

import (
	"context"
	"time"

	"vibetracker/internal/flow"
	"vibetracker/internal/metrics"
	"vibetracker/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const errorText = "Произошла ошибка. Попробуйте позже."

// eventTimeout bounds one event's work. It stays below the redis lock TTL
// so a lock never expires while its holder is still writing.
const eventTimeout = 5 * time.Second

// Handler routes Telegram updates to the dialogue engine
type Handler struct {
	bot          *tele.Bot
	engine       *service.DialogueEngine
	statsService *service.StatsService
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	engine *service.DialogueEngine,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		engine:       engine,
		statsService: statsService,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/log", h.handleLog)
	h.bot.Handle("/stats", h.handleStats)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// All buttons carry raw callback tokens
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// newEvent builds an engine event from the update's sender
func newEvent(c tele.Context, kind service.EventKind, payload string) service.Event {
	ev := service.Event{Kind: kind, Payload: payload}
	if sender := c.Sender(); sender != nil {
		ev.UserKey = sender.ID
		ev.Username = sender.Username
		ev.FirstName = sender.FirstName
	}
	return ev
}

// dispatch runs ev through the engine and delivers the resulting prompts
func (h *Handler) dispatch(c tele.Context, ev service.Event) error {
	metrics.UpdatesReceived.WithLabelValues(string(ev.Kind)).Inc()

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	prompts, err := h.engine.Handle(ctx, ev)
	if err != nil {
		h.logger.Error("Failed to handle event",
			zap.Error(err),
			zap.Int64("user_id", ev.UserKey),
			zap.String("kind", string(ev.Kind)),
		)
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: errorText})
		}
		return c.Send(errorText)
	}

	for i, p := range prompts {
		if err := h.deliver(c, p, i == 0); err != nil {
			metrics.Errors.WithLabelValues("send").Inc()
			h.logger.Error("Failed to send prompt",
				zap.Error(err),
				zap.Int64("user_id", ev.UserKey),
			)
			break
		}
	}

	if c.Callback() != nil {
		return c.Respond()
	}
	return nil
}

// deliver edits the pressed message when asked to, otherwise sends a new one
func (h *Handler) deliver(c tele.Context, p flow.Prompt, first bool) error {
	var opts []interface{}
	if markup := renderMarkup(p); markup != nil {
		opts = append(opts, markup)
	}

	if p.Edit && first && c.Callback() != nil {
		if err := h.handleEditError(c.Edit(p.Text, opts...), c); err == nil {
			return nil
		}
	}

	return c.Send(p.Text, opts...)
}
