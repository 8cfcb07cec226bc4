package service

import (
	"errors"
	"fmt"
	"testing"

	"vibetracker/internal/domain"
	"vibetracker/internal/flow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callback(token string) Event {
	return Event{UserKey: 1, Kind: EventCallback, Payload: token}
}

func onboarding(answers map[int]string) *domain.DialogueState {
	return &domain.DialogueState{
		UserKey: 1,
		Tag:     domain.StateOnboardingInProgress,
		Data:    domain.DataBag{Answers: answers},
	}
}

func awaitingNote(rating int) *domain.DialogueState {
	return &domain.DialogueState{
		UserKey: 1,
		Tag:     domain.StateAwaitingNote,
		Data:    domain.DataBag{Rating: rating},
	}
}

func TestMachine_TransitionsAreEnumerable(t *testing.T) {
	keys := NewMachine().Transitions()

	assert.Len(t, keys, 10)
	assert.Contains(t, keys, TransitionKey{State: domain.StateIdle, Kind: EventCallback, Token: flow.TokenRate})
	assert.Contains(t, keys, TransitionKey{State: domain.StateAwaitingNote, Kind: EventText})
	assert.Contains(t, keys, TransitionKey{State: domain.StateOnboardingInProgress, Kind: EventCallback, Token: flow.TokenOnboardAnswer})
}

func TestMachine_Start(t *testing.T) {
	m := NewMachine()

	for _, current := range []*domain.DialogueState{nil, onboarding(map[int]string{0: "x"}), awaitingNote(3)} {
		out, err := m.Transition(current, Event{UserKey: 1, Kind: EventStart, FirstName: "Аня"})

		require.NoError(t, err)
		assert.Nil(t, out.Next)
		assert.False(t, out.Clear)
		require.Len(t, out.Prompts, 1)
		assert.Contains(t, out.Prompts[0].Text, "Привет, Аня!")
		assert.Equal(t, "onboard:start", out.Prompts[0].Options[0].Token)
		assert.Equal(t, "onboard:skip", out.Prompts[0].Options[1].Token)
	}
}

func TestMachine_OnboardStart(t *testing.T) {
	out, err := NewMachine().Transition(nil, callback("onboard:start"))

	require.NoError(t, err)
	require.NotNil(t, out.Next)
	assert.Equal(t, domain.StateOnboardingInProgress, out.Next.Tag)
	assert.Equal(t, int64(1), out.Next.UserKey)
	assert.NotNil(t, out.Next.Data.Answers)
	assert.Empty(t, out.Next.Data.Answers)
	require.Len(t, out.Prompts, 2)
	assert.True(t, out.Prompts[0].Edit)
	assert.Equal(t, flow.QuestionPrompt(0), out.Prompts[1])
}

func TestMachine_AnswerAdvances(t *testing.T) {
	current := onboarding(map[int]string{0: "Пару раз в неделю"})

	out, err := NewMachine().Transition(current, callback("onboard:q:1:2"))

	require.NoError(t, err)
	require.NotNil(t, out.Next)
	assert.Equal(t, map[int]string{0: "Пару раз в неделю", 1: "Семья / отношения"}, out.Next.Data.Answers)
	require.Len(t, out.Prompts, 1)
	assert.True(t, out.Prompts[0].Edit)
	assert.Contains(t, out.Prompts[0].Text, "Вопрос 3/5")

	// Input state is untouched
	assert.Len(t, current.Data.Answers, 1)
}

func TestMachine_AnswerCompletes(t *testing.T) {
	current := onboarding(map[int]string{0: "a", 1: "b", 2: "Настроение", 3: "Вечерний дайджест"})

	out, err := NewMachine().Transition(current, callback("onboard:q:4:0"))

	require.NoError(t, err)
	assert.True(t, out.Clear)
	assert.Nil(t, out.Next)
	require.Len(t, out.Prompts, 1)
	assert.Contains(t, out.Prompts[0].Text, "🔍 Фокус: Настроение")
	assert.Contains(t, out.Prompts[0].Text, "⏰ Напоминания: Вечерний дайджест")
}

func TestMachine_AnswerRejected(t *testing.T) {
	tests := []struct {
		name     string
		current  *domain.DialogueState
		token    string
		expected error
	}{
		{
			name:     "question ahead of state",
			current:  onboarding(map[int]string{0: "a"}),
			token:    "onboard:q:3:0",
			expected: domain.ErrStaleTransition,
		},
		{
			name:     "question already answered",
			current:  onboarding(map[int]string{0: "a", 1: "b"}),
			token:    "onboard:q:0:1",
			expected: domain.ErrStaleTransition,
		},
		{
			name:     "option out of range",
			current:  onboarding(map[int]string{}),
			token:    "onboard:q:0:3",
			expected: domain.ErrValidation,
		},
		{
			name:     "non-integer index",
			current:  onboarding(map[int]string{}),
			token:    "onboard:q:zero:0",
			expected: domain.ErrMalformedEvent,
		},
		{
			name:     "answer while idle",
			current:  nil,
			token:    "onboard:q:0:0",
			expected: domain.ErrStaleTransition,
		},
		{
			name:     "answer while awaiting note",
			current:  awaitingNote(5),
			token:    "onboard:q:0:0",
			expected: domain.ErrStaleTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewMachine().Transition(tt.current, callback(tt.token))

			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			assert.Equal(t, Outcome{}, out)
		})
	}
}

func TestMachine_Rating(t *testing.T) {
	m := NewMachine()

	for r := 1; r <= 10; r++ {
		out, err := m.Transition(nil, callback(fmt.Sprintf("rate:%d", r)))

		require.NoError(t, err)
		require.NotNil(t, out.Next)
		assert.Equal(t, domain.StateAwaitingNote, out.Next.Tag)
		assert.Equal(t, r, out.Next.Data.Rating)
		assert.Equal(t, "skip_note", out.Prompts[0].Options[0].Token)
	}
}

func TestMachine_RatingRejected(t *testing.T) {
	tests := []struct {
		name     string
		current  *domain.DialogueState
		token    string
		expected error
	}{
		{name: "zero", token: "rate:0", expected: domain.ErrValidation},
		{name: "eleven", token: "rate:11", expected: domain.ErrValidation},
		{name: "not a number", token: "rate:ten", expected: domain.ErrMalformedEvent},
		{name: "already awaiting note", current: awaitingNote(4), token: "rate:6", expected: domain.ErrStaleTransition},
		{name: "during onboarding", current: onboarding(map[int]string{}), token: "rate:6", expected: domain.ErrStaleTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMachine().Transition(tt.current, callback(tt.token))
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}
}

func TestMachine_NoteAndSkip(t *testing.T) {
	m := NewMachine()

	out, err := m.Transition(awaitingNote(7), Event{UserKey: 1, Kind: EventText, Payload: "walked in the park"})
	require.NoError(t, err)
	assert.True(t, out.Clear)
	require.NotNil(t, out.Effect)
	assert.Equal(t, 7, out.Effect.Value)
	require.NotNil(t, out.Effect.Note)
	assert.Equal(t, "walked in the park", *out.Effect.Note)

	out, err = m.Transition(awaitingNote(2), callback("skip_note"))
	require.NoError(t, err)
	assert.True(t, out.Clear)
	require.NotNil(t, out.Effect)
	assert.Equal(t, 2, out.Effect.Value)
	assert.Nil(t, out.Effect.Note)
	assert.Contains(t, out.Prompts[0].Text, "Принято: 2/10.")
}

func TestMachine_UnrecognizedEvents(t *testing.T) {
	tests := []struct {
		name    string
		current *domain.DialogueState
		ev      Event
	}{
		{name: "text while idle", current: nil, ev: Event{Kind: EventText, Payload: "hello"}},
		{name: "text during onboarding", current: onboarding(map[int]string{}), ev: Event{Kind: EventText, Payload: "hello"}},
		{name: "skip note while idle", current: nil, ev: callback("skip_note")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMachine().Transition(tt.current, tt.ev)
			assert.True(t, errors.Is(err, domain.ErrStaleTransition))
		})
	}
}

func TestMachine_OnboardingExits(t *testing.T) {
	m := NewMachine()

	out, err := m.Transition(nil, callback("onboard:skip"))
	require.NoError(t, err)
	assert.False(t, out.Clear)
	assert.Nil(t, out.Next)
	assert.Contains(t, out.Prompts[0].Text, "/log")

	out, err = m.Transition(nil, callback("onboard:log"))
	require.NoError(t, err)
	assert.True(t, out.Clear)
	assert.Len(t, out.Prompts[0].Options, 10)
	assert.True(t, out.Prompts[0].Edit)

	out, err = m.Transition(onboarding(map[int]string{0: "a"}), callback("onboard:finish"))
	require.NoError(t, err)
	assert.True(t, out.Clear)
	assert.Contains(t, out.Prompts[0].Text, "/log")
}

func TestMachine_LogCommandClears(t *testing.T) {
	out, err := NewMachine().Transition(onboarding(map[int]string{0: "a"}), Event{UserKey: 1, Kind: EventLog})

	require.NoError(t, err)
	assert.True(t, out.Clear)
	assert.Equal(t, flow.RatingPrompt(), out.Prompts[0])
}
