package handler

import (
	"vibetracker/internal/flow"

	tele "gopkg.in/telebot.v3"
)

// renderMarkup lays out prompt options as an inline keyboard, nil if there are none
func renderMarkup(p flow.Prompt) *tele.ReplyMarkup {
	if len(p.Options) == 0 {
		return nil
	}

	cols := p.Columns
	if cols < 1 {
		cols = 1
	}

	rows := make([][]tele.InlineButton, 0, (len(p.Options)+cols-1)/cols)
	for i, opt := range p.Options {
		if i%cols == 0 {
			rows = append(rows, make([]tele.InlineButton, 0, cols))
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], tele.InlineButton{
			Text: opt.Label,
			Data: opt.Token,
		})
	}

	return &tele.ReplyMarkup{InlineKeyboard: rows}
}
