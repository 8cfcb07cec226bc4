package flow

import (
	"testing"

	"vibetracker/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestQuestionPrompt(t *testing.T) {
	p := QuestionPrompt(2)

	assert.Equal(t, "Вопрос 3/5\n\nЧто хотите отслеживать в первую очередь?\n💡 Можно менять в любой момент", p.Text)
	assert.Len(t, p.Options, 3)
	for i, opt := range p.Options {
		assert.Equal(t, Onboarding[2].Options[i], opt.Label)
		assert.Equal(t, AnswerToken(2, i), opt.Token)
	}
}

func TestQuestionPrompt_NoHint(t *testing.T) {
	p := QuestionPrompt(0)

	assert.Equal(t, "Вопрос 1/5\n\nКак часто чувствуете упадок энергии?", p.Text)
}

func TestQuestionPromptTokensParseBack(t *testing.T) {
	for q := range Onboarding {
		for o, opt := range QuestionPrompt(q).Options {
			token, err := ParseToken(opt.Token)
			assert.NoError(t, err)
			assert.Equal(t, q, token.Question)
			assert.Equal(t, o, token.Option)
		}
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		answers  map[int]string
		focus    string
		reminder string
	}{
		{
			name:     "both answered",
			answers:  map[int]string{2: "Настроение", 3: "Вечерний дайджест"},
			focus:    "Настроение",
			reminder: "Вечерний дайджест",
		},
		{
			name:     "focus missing",
			answers:  map[int]string{3: "Вечерний дайджест"},
			focus:    DefaultFocus,
			reminder: "Вечерний дайджест",
		},
		{
			name:     "both missing",
			answers:  map[int]string{},
			focus:    DefaultFocus,
			reminder: DefaultReminder,
		},
		{
			name:     "nil answers",
			answers:  nil,
			focus:    DefaultFocus,
			reminder: DefaultReminder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Summary(tt.answers)
			assert.Contains(t, p.Text, "🔍 Фокус: "+tt.focus+"\n")
			assert.Contains(t, p.Text, "⏰ Напоминания: "+tt.reminder+"\n")
			assert.True(t, p.Edit)
			assert.Equal(t, []Option{
				{Label: "📝 Сделать первый лог", Token: "onboard:log"},
				{Label: "Позже", Token: "onboard:finish"},
			}, p.Options)
		})
	}
}

func TestRatingPrompt(t *testing.T) {
	p := RatingPrompt()

	assert.Equal(t, 5, p.Columns)
	assert.Len(t, p.Options, 10)
	assert.Equal(t, Option{Label: "1", Token: "rate:1"}, p.Options[0])
	assert.Equal(t, Option{Label: "10", Token: "rate:10"}, p.Options[9])
}

func TestStats(t *testing.T) {
	empty := Stats(domain.MoodSummary{})
	assert.Contains(t, empty.Text, "записей нет")

	p := Stats(domain.MoodSummary{Count: 3, Average: 6.333, Min: 4, Max: 9})
	assert.Contains(t, p.Text, "Записей: 3")
	assert.Contains(t, p.Text, "Средняя оценка: 6.3/10")
	assert.Contains(t, p.Text, "Минимум: 4, максимум: 9")
}
