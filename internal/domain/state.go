package domain

// StateTag identifies a step of a user's dialogue
type StateTag string

const (
	// StateIdle is reported when no dialogue state is stored for a user.
	StateIdle                 StateTag = "idle"
	StateOnboardingInProgress StateTag = "onboarding_in_progress"
	StateAwaitingNote         StateTag = "awaiting_note"
)

// DataBag holds answers collected during the current flow
type DataBag struct {
	Answers map[int]string `json:"answers,omitempty"`
	Rating  int            `json:"rating,omitempty"`
}

// DialogueState is the conversational cursor of a single user
type DialogueState struct {
	UserKey int64    `json:"user_key"`
	Tag     StateTag `json:"tag"`
	Data    DataBag  `json:"data"`
}

// TagOf returns the tag of s, or StateIdle if s is nil
func TagOf(s *DialogueState) StateTag {
	if s == nil {
		return StateIdle
	}
	return s.Tag
}

// Clone returns a deep copy of the state
func (s DialogueState) Clone() DialogueState {
	out := s
	if s.Data.Answers != nil {
		out.Data.Answers = make(map[int]string, len(s.Data.Answers))
		for k, v := range s.Data.Answers {
			out.Data.Answers[k] = v
		}
	}
	return out
}
