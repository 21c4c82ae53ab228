package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avbelov/countbook/internal/dialog"
)

// inlineKeyboard lays the response options out in rows of the requested
// width.
func inlineKeyboard(options []dialog.Option, columns int) tgbotapi.InlineKeyboardMarkup {
	if columns <= 0 {
		columns = 1
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	row := make([]tgbotapi.InlineKeyboardButton, 0, columns)
	for _, option := range options {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(option.Label, option.Value))
		if len(row) == columns {
			rows = append(rows, row)
			row = make([]tgbotapi.InlineKeyboardButton, 0, columns)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
