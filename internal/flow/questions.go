// Package flow holds the static definitions of the bot's conversational
// flows: the onboarding quiz, the rating scale and the callback tokens that
// tie buttons back to transitions.
package flow

// Question is a single onboarding step
type Question struct {
	Title   string
	Options []string
	Hint    string
}

// Onboarding is the ordered quiz shown after onboard:start.
// Question and option indices are embedded into callback tokens.
var Onboarding = []Question{
	{
		Title: "Как часто чувствуете упадок энергии?",
		Options: []string{
			"Редко (1–2 раза в месяц)",
			"Пару раз в неделю",
			"Практически ежедневно",
		},
	},
	{
		Title:   "Что сильнее влияет на ваше состояние?",
		Options: []string{"Работа", "Учёба", "Семья / отношения", "Неопределённо"},
	},
	{
		Title:   "Что хотите отслеживать в первую очередь?",
		Options: []string{"Энергия", "Настроение", "Оба сразу"},
		Hint:    "Можно менять в любой момент",
	},
	{
		Title:   "Как удобнее получать помощь?",
		Options: []string{"2 напоминания в день", "Вечерний дайджест", "Без напоминаний"},
	},
	{
		Title:   "Готовы начать с первого лога?",
		Options: []string{"Да, сейчас", "Напомнить через день", "Посмотреть сначала"},
		Hint:    "80% людей находят триггеры за 7 дней",
	},
}

// Summary reads these answers, falling back to the defaults when absent
const (
	FocusQuestion    = 2
	ReminderQuestion = 3

	DefaultFocus    = "энергия и настроение"
	DefaultReminder = "без напоминаний"
)

// Option returns the text of option o of question q
func Option(q, o int) (string, bool) {
	if q < 0 || q >= len(Onboarding) {
		return "", false
	}
	opts := Onboarding[q].Options
	if o < 0 || o >= len(opts) {
		return "", false
	}
	return opts[o], true
}
