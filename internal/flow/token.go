package flow

import (
	"fmt"
	"strconv"
	"strings"

	"vibetracker/internal/domain"
)

// TokenKind identifies which button produced a callback
type TokenKind string

const (
	TokenOnboardStart  TokenKind = "onboard:start"
	TokenOnboardSkip   TokenKind = "onboard:skip"
	TokenOnboardAnswer TokenKind = "onboard:q"
	TokenOnboardLog    TokenKind = "onboard:log"
	TokenOnboardFinish TokenKind = "onboard:finish"
	TokenRate          TokenKind = "rate"
	TokenSkipNote      TokenKind = "skip_note"
)

// Token is a parsed callback token
type Token struct {
	Kind     TokenKind
	Question int
	Option   int
	Rating   int
}

// AnswerToken builds onboard:q:<question>:<option>
func AnswerToken(question, option int) string {
	return fmt.Sprintf("%s:%d:%d", TokenOnboardAnswer, question, option)
}

// RateToken builds rate:<value>
func RateToken(value int) string {
	return fmt.Sprintf("%s:%d", TokenRate, value)
}

// ParseToken parses raw callback data.
// Range checks against the flow are left to the caller; only the shape is validated here.
func ParseToken(data string) (Token, error) {
	switch TokenKind(data) {
	case TokenOnboardStart, TokenOnboardSkip, TokenOnboardLog, TokenOnboardFinish, TokenSkipNote:
		return Token{Kind: TokenKind(data)}, nil
	}

	parts := strings.Split(data, ":")

	switch {
	case len(parts) == 4 && parts[0] == "onboard" && parts[1] == "q":
		question, err := parseIndex(parts[2])
		if err != nil {
			return Token{}, fmt.Errorf("%w: question index in %q", domain.ErrMalformedEvent, data)
		}
		option, err := parseIndex(parts[3])
		if err != nil {
			return Token{}, fmt.Errorf("%w: option index in %q", domain.ErrMalformedEvent, data)
		}
		return Token{Kind: TokenOnboardAnswer, Question: question, Option: option}, nil

	case len(parts) == 2 && parts[0] == string(TokenRate):
		rating, err := strconv.Atoi(parts[1])
		if err != nil {
			return Token{}, fmt.Errorf("%w: rating in %q", domain.ErrMalformedEvent, data)
		}
		return Token{Kind: TokenRate, Rating: rating}, nil
	}

	return Token{}, fmt.Errorf("%w: unknown token %q", domain.ErrMalformedEvent, data)
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
