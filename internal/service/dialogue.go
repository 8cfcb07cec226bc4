package service

import (
	"context"
	"errors"
	"fmt"

	"vibetracker/internal/domain"
	"vibetracker/internal/flow"
	"vibetracker/internal/metrics"
	"vibetracker/internal/repository"

	"go.uber.org/zap"
)

// MoodLogSaver persists completed ratings
type MoodLogSaver interface {
	SaveMoodLog(ctx context.Context, telegramID int64, username *string, value int, note *string) (*domain.MoodLog, error)
}

// DialogueEngine applies Machine transitions to stored dialogue state
type DialogueEngine struct {
	machine *Machine
	states  repository.StateStore
	records MoodLogSaver
	logger  *zap.Logger
}

// NewDialogueEngine creates a new dialogue engine
func NewDialogueEngine(states repository.StateStore, records MoodLogSaver, logger *zap.Logger) *DialogueEngine {
	return &DialogueEngine{
		machine: NewMachine(),
		states:  states,
		records: records,
		logger:  logger,
	}
}

// Handle runs one event for one user and returns the prompts to send.
// Events that do not apply to the user's state return no prompts and no error.
// On error nothing has been changed, so the same event can be retried.
func (e *DialogueEngine) Handle(ctx context.Context, ev Event) ([]flow.Prompt, error) {
	unlock, err := e.states.Lock(ctx, ev.UserKey)
	if err != nil {
		metrics.Errors.WithLabelValues("state_store").Inc()
		return nil, fmt.Errorf("lock dialogue state: %w", err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			e.logger.Warn("Failed to release dialogue lock",
				zap.Int64("user_id", ev.UserKey),
				zap.Error(err),
			)
		}
	}()

	current, err := e.states.Load(ctx, ev.UserKey)
	if err != nil {
		metrics.Errors.WithLabelValues("state_store").Inc()
		return nil, fmt.Errorf("load dialogue state: %w", err)
	}

	from := domain.TagOf(current)

	out, err := e.machine.Transition(current, ev)
	if err != nil {
		if domain.IsRecoverable(err) {
			metrics.EventsRejected.WithLabelValues(rejectReason(err)).Inc()
			e.logger.Debug("Event ignored",
				zap.Int64("user_id", ev.UserKey),
				zap.String("state", string(from)),
				zap.String("kind", string(ev.Kind)),
				zap.Error(err),
			)
			return nil, nil
		}
		return nil, err
	}

	if out.Effect != nil {
		_, err := e.records.SaveMoodLog(ctx, ev.UserKey, domain.UsernamePtr(ev.Username), out.Effect.Value, out.Effect.Note)
		if err != nil {
			metrics.Errors.WithLabelValues("record_store").Inc()
			return nil, fmt.Errorf("save mood log: %w", err)
		}
	}

	to := from
	switch {
	case out.Clear:
		to = domain.StateIdle
		if current != nil {
			if err := e.states.Clear(ctx, ev.UserKey); err != nil {
				metrics.Errors.WithLabelValues("state_store").Inc()
				return nil, fmt.Errorf("clear dialogue state: %w", err)
			}
		}
	case out.Next != nil:
		to = out.Next.Tag
		if err := e.states.Save(ctx, *out.Next); err != nil {
			metrics.Errors.WithLabelValues("state_store").Inc()
			return nil, fmt.Errorf("save dialogue state: %w", err)
		}
	}

	metrics.Transitions.WithLabelValues(string(from), string(to)).Inc()
	e.logger.Debug("Dialogue transition",
		zap.Int64("user_id", ev.UserKey),
		zap.String("kind", string(ev.Kind)),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	return out.Prompts, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrMalformedEvent):
		return "malformed"
	default:
		return "stale"
	}
}
