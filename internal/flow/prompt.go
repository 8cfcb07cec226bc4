package flow

import (
	"fmt"
	"strings"

	"vibetracker/internal/domain"
)

// Option is a selectable button of a prompt
type Option struct {
	Label string
	Token string
}

// Prompt is an outbound message. Rendering into a keyboard is up to the transport.
type Prompt struct {
	Text    string
	Options []Option
	// Columns is the number of buttons per row; 0 or 1 means one per row.
	Columns int
	// Edit asks the transport to replace the message the user pressed a button on.
	Edit bool
}

// Greeting is shown on /start
func Greeting(firstName string) Prompt {
	return Prompt{
		Text: fmt.Sprintf("Привет, %s! 👋\n\n"+
			"Я Vibe Tracker — помогу собрать персональный трекер настроения."+
			" За минуту подберём флоу и сделаем первый лог.", firstName),
		Options: []Option{
			{Label: "🚀 Пройти квиз", Token: string(TokenOnboardStart)},
			{Label: "Пропустить", Token: string(TokenOnboardSkip)},
		},
	}
}

// Intro replaces the greeting once the quiz starts
func Intro() Prompt {
	return Prompt{
		Text: fmt.Sprintf("Соберу твой персональный трекер за %d вопросов."+
			" Можно остановиться в любой момент.", len(Onboarding)),
		Edit: true,
	}
}

// QuestionPrompt renders question index with its answer buttons
func QuestionPrompt(index int) Prompt {
	q := Onboarding[index]

	var b strings.Builder
	fmt.Fprintf(&b, "Вопрос %d/%d\n\n%s", index+1, len(Onboarding), q.Title)
	if q.Hint != "" {
		fmt.Fprintf(&b, "\n💡 %s", q.Hint)
	}

	options := make([]Option, 0, len(q.Options))
	for i, text := range q.Options {
		options = append(options, Option{Label: text, Token: AnswerToken(index, i)})
	}

	return Prompt{Text: b.String(), Options: options}
}

// Summary closes the quiz. It only looks at the focus and reminder answers.
func Summary(answers map[int]string) Prompt {
	focus, ok := answers[FocusQuestion]
	if !ok {
		focus = DefaultFocus
	}
	reminder, ok := answers[ReminderQuestion]
	if !ok {
		reminder = DefaultReminder
	}

	return Prompt{
		Text: "Готово! Я настроил флоу под тебя.\n\n" +
			fmt.Sprintf("🔍 Фокус: %s\n", focus) +
			fmt.Sprintf("⏰ Напоминания: %s\n\n", reminder) +
			"Первые 7 дней покажу лучшие и худшие часы.",
		Options: []Option{
			{Label: "📝 Сделать первый лог", Token: string(TokenOnboardLog)},
			{Label: "Позже", Token: string(TokenOnboardFinish)},
		},
		Edit: true,
	}
}

// SkipOverview answers onboard:skip
func SkipOverview() Prompt {
	return Prompt{
		Text: "Ок, можно сразу перейти к основным командам:\n" +
			"📝 /log — отметить своё состояние\n" +
			"📊 /stats — статистика за неделю",
		Edit: true,
	}
}

// Closing answers onboard:finish
func Closing() Prompt {
	return Prompt{
		Text: "Без проблем! Когда будешь готов — набери /log, чтобы сделать первую запись.",
		Edit: true,
	}
}

// RatingPrompt asks for a 1..10 rating, laid out as two rows of five
func RatingPrompt() Prompt {
	options := make([]Option, 0, domain.MaxRating)
	for i := domain.MinRating; i <= domain.MaxRating; i++ {
		options = append(options, Option{Label: fmt.Sprint(i), Token: RateToken(i)})
	}
	return Prompt{
		Text:    "Оцени свой уровень энергии/вайба от 1 до 10:",
		Options: options,
		Columns: 5,
	}
}

// NoteRequest follows a chosen rating
func NoteRequest(rating int) Prompt {
	return Prompt{
		Text: fmt.Sprintf("Принято: %d/10.\n\n"+
			"Хочешь добавить заметку? Напиши её или нажми кнопку:", rating),
		Options: []Option{{Label: "Пропустить", Token: string(TokenSkipNote)}},
		Edit:    true,
	}
}

// Saved confirms a mood log with a note
func Saved() Prompt {
	return Prompt{Text: "✅ Запись сохранена!"}
}

// SavedWithoutNote confirms a mood log after skip_note
func SavedWithoutNote(rating int) Prompt {
	return Prompt{
		Text: fmt.Sprintf("Принято: %d/10.\n✅ Запись сохранена (без заметки).", rating),
		Edit: true,
	}
}

// Stats renders a weekly summary
func Stats(s domain.MoodSummary) Prompt {
	if s.Count == 0 {
		return Prompt{Text: "За последние 7 дней записей нет. Набери /log, чтобы сделать первую."}
	}
	return Prompt{
		Text: fmt.Sprintf("📊 Статистика за 7 дней\n\n"+
			"Записей: %d\n"+
			"Средняя оценка: %.1f/10\n"+
			"Минимум: %d, максимум: %d", s.Count, s.Average, s.Min, s.Max),
	}
}
