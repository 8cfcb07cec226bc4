package service

import (
	"fmt"
	"sort"

	"vibetracker/internal/domain"
	"vibetracker/internal/flow"
)

// EventKind is the shape of an inbound event
type EventKind string

const (
	EventStart    EventKind = "start"
	EventLog      EventKind = "log"
	EventCallback EventKind = "callback"
	EventText     EventKind = "text"
)

// Event is a single inbound update attributed to a user
type Event struct {
	UserKey   int64
	Username  string
	FirstName string
	Kind      EventKind
	// Payload is the callback data or the message text
	Payload string
}

// MoodLogEffect asks the engine to persist a mood log
type MoodLogEffect struct {
	Value int
	Note  *string
}

// Outcome is the result of a transition.
// Next is nil when the state is unchanged or cleared.
type Outcome struct {
	Next    *domain.DialogueState
	Clear   bool
	Prompts []flow.Prompt
	Effect  *MoodLogEffect
}

// AnyState matches every state in the transition table
const AnyState domain.StateTag = "*"

// TransitionKey selects a transition
type TransitionKey struct {
	State domain.StateTag
	Kind  EventKind
	Token flow.TokenKind
}

func (k TransitionKey) String() string {
	if k.Token == "" {
		return fmt.Sprintf("%s/%s", k.State, k.Kind)
	}
	return fmt.Sprintf("%s/%s/%s", k.State, k.Kind, k.Token)
}

type transitionFunc func(current *domain.DialogueState, ev Event, tok flow.Token) (Outcome, error)

// Machine is the dialogue transition table. It has no dependencies and never mutates its input.
type Machine struct {
	transitions map[TransitionKey]transitionFunc
}

// NewMachine builds the transition table for onboarding and mood logging
func NewMachine() *Machine {
	return &Machine{
		transitions: map[TransitionKey]transitionFunc{
			{State: AnyState, Kind: EventStart}:                                    greet,
			{State: AnyState, Kind: EventLog}:                                      askRating,
			{State: AnyState, Kind: EventCallback, Token: flow.TokenOnboardStart}:  startOnboarding,
			{State: AnyState, Kind: EventCallback, Token: flow.TokenOnboardSkip}:   skipOnboarding,
			{State: AnyState, Kind: EventCallback, Token: flow.TokenOnboardLog}:    goToLog,
			{State: AnyState, Kind: EventCallback, Token: flow.TokenOnboardFinish}: finishWithoutLog,

			{State: domain.StateOnboardingInProgress, Kind: EventCallback, Token: flow.TokenOnboardAnswer}: answerQuestion,

			{State: domain.StateIdle, Kind: EventCallback, Token: flow.TokenRate}:             chooseRating,
			{State: domain.StateAwaitingNote, Kind: EventText}:                                saveWithNote,
			{State: domain.StateAwaitingNote, Kind: EventCallback, Token: flow.TokenSkipNote}: saveWithoutNote,
		},
	}
}

// Transitions lists the table keys in a stable order
func (m *Machine) Transitions() []TransitionKey {
	keys := make([]TransitionKey, 0, len(m.transitions))
	for k := range m.transitions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Transition resolves ev against the current state.
// Exact state rules take precedence over AnyState rules.
func (m *Machine) Transition(current *domain.DialogueState, ev Event) (Outcome, error) {
	key := TransitionKey{State: domain.TagOf(current), Kind: ev.Kind}

	var tok flow.Token
	if ev.Kind == EventCallback {
		var err error
		tok, err = flow.ParseToken(ev.Payload)
		if err != nil {
			return Outcome{}, err
		}
		key.Token = tok.Kind
	}

	fn, ok := m.transitions[key]
	if !ok {
		key.State = AnyState
		fn, ok = m.transitions[key]
	}
	if !ok {
		return Outcome{}, fmt.Errorf("%w: no transition for %s in state %s",
			domain.ErrStaleTransition, key, domain.TagOf(current))
	}

	return fn(current, ev, tok)
}

func greet(_ *domain.DialogueState, ev Event, _ flow.Token) (Outcome, error) {
	return Outcome{Prompts: []flow.Prompt{flow.Greeting(ev.FirstName)}}, nil
}

func startOnboarding(_ *domain.DialogueState, ev Event, _ flow.Token) (Outcome, error) {
	return Outcome{
		Next: &domain.DialogueState{
			UserKey: ev.UserKey,
			Tag:     domain.StateOnboardingInProgress,
			Data:    domain.DataBag{Answers: map[int]string{}},
		},
		Prompts: []flow.Prompt{flow.Intro(), flow.QuestionPrompt(0)},
	}, nil
}

func answerQuestion(current *domain.DialogueState, _ Event, tok flow.Token) (Outcome, error) {
	expected := len(current.Data.Answers)
	if tok.Question != expected {
		return Outcome{}, fmt.Errorf("%w: answer for question %d, expecting %d",
			domain.ErrStaleTransition, tok.Question, expected)
	}

	text, ok := flow.Option(tok.Question, tok.Option)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: option %d of question %d",
			domain.ErrValidation, tok.Option, tok.Question)
	}

	next := current.Clone()
	if next.Data.Answers == nil {
		next.Data.Answers = make(map[int]string)
	}
	next.Data.Answers[tok.Question] = text

	if tok.Question+1 >= len(flow.Onboarding) {
		return Outcome{
			Clear:   true,
			Prompts: []flow.Prompt{flow.Summary(next.Data.Answers)},
		}, nil
	}

	prompt := flow.QuestionPrompt(tok.Question + 1)
	prompt.Edit = true

	return Outcome{Next: &next, Prompts: []flow.Prompt{prompt}}, nil
}

func skipOnboarding(_ *domain.DialogueState, _ Event, _ flow.Token) (Outcome, error) {
	return Outcome{Prompts: []flow.Prompt{flow.SkipOverview()}}, nil
}

func goToLog(_ *domain.DialogueState, _ Event, _ flow.Token) (Outcome, error) {
	prompt := flow.RatingPrompt()
	prompt.Edit = true
	return Outcome{Clear: true, Prompts: []flow.Prompt{prompt}}, nil
}

func finishWithoutLog(_ *domain.DialogueState, _ Event, _ flow.Token) (Outcome, error) {
	return Outcome{Clear: true, Prompts: []flow.Prompt{flow.Closing()}}, nil
}

func askRating(_ *domain.DialogueState, _ Event, _ flow.Token) (Outcome, error) {
	return Outcome{Clear: true, Prompts: []flow.Prompt{flow.RatingPrompt()}}, nil
}

func chooseRating(_ *domain.DialogueState, ev Event, tok flow.Token) (Outcome, error) {
	if err := domain.ValidateRating(tok.Rating); err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Next: &domain.DialogueState{
			UserKey: ev.UserKey,
			Tag:     domain.StateAwaitingNote,
			Data:    domain.DataBag{Rating: tok.Rating},
		},
		Prompts: []flow.Prompt{flow.NoteRequest(tok.Rating)},
	}, nil
}

func saveWithNote(current *domain.DialogueState, ev Event, _ flow.Token) (Outcome, error) {
	note := ev.Payload
	return Outcome{
		Clear:   true,
		Effect:  &MoodLogEffect{Value: current.Data.Rating, Note: &note},
		Prompts: []flow.Prompt{flow.Saved()},
	}, nil
}

func saveWithoutNote(current *domain.DialogueState, _ Event, _ flow.Token) (Outcome, error) {
	rating := current.Data.Rating
	return Outcome{
		Clear:   true,
		Effect:  &MoodLogEffect{Value: rating},
		Prompts: []flow.Prompt{flow.SavedWithoutNote(rating)},
	}, nil
}
