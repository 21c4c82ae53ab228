// Package bot adapts Telegram updates to dialog turns and dialog responses
// back to messages, keyboards and photos.
package bot

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avbelov/countbook/internal/dialog"
	"github.com/avbelov/countbook/internal/messages"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	engine *dialog.Engine
	log    *slog.Logger
}

func New(token string, engine *dialog.Engine, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, engine: engine, log: log}, nil
}

// Start runs long polling until the context is canceled. Each update is
// handled in its own goroutine; the dialog store serializes per user.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// HandleWebhook is the entry point for webhook deployments: one raw update
// body per call.
func (b *Bot) HandleWebhook(ctx context.Context, body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}
	b.handleUpdate(ctx, update)
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	turn, chatID, ok := turnFromUpdate(update)
	if !ok {
		return
	}
	if update.CallbackQuery != nil {
		// Stop the loading indicator and retire the tapped keyboard.
		b.api.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, ""))
		if update.CallbackQuery.Message != nil {
			markup := tgbotapi.NewInlineKeyboardMarkup()
			markup.InlineKeyboard = [][]tgbotapi.InlineKeyboardButton{}
			b.api.Request(tgbotapi.NewEditMessageReplyMarkup(
				chatID, update.CallbackQuery.Message.MessageID, markup))
		}
	}

	responses, err := b.engine.Handle(ctx, turn)
	if err != nil {
		b.log.Error("handle update", "user_id", turn.UserID, "error", err)
		b.send(chatID, dialog.Response{Text: messages.Text(messages.InvalidRequest, turn.Language, nil)})
		return
	}
	for _, response := range responses {
		b.send(chatID, response)
	}
}

func (b *Bot) send(chatID int64, response dialog.Response) {
	if response.Photo != nil {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "report.png", Bytes: response.Photo})
		photo.Caption = response.Text
		photo.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Send(photo); err != nil {
			b.log.Error("send photo", "chat_id", chatID, "error", err)
		}
		return
	}
	msg := tgbotapi.NewMessage(chatID, response.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	if len(response.Options) > 0 {
		msg.ReplyMarkup = inlineKeyboard(response.Options, response.Columns)
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func turnFromUpdate(update tgbotapi.Update) (dialog.Turn, int64, bool) {
	switch {
	case update.CallbackQuery != nil:
		callback := update.CallbackQuery
		if callback.Message == nil {
			return dialog.Turn{}, 0, false
		}
		turn := turnFromUser(callback.From)
		turn.Option = callback.Data
		return turn, callback.Message.Chat.ID, true

	case update.Message != nil:
		message := update.Message
		if message.From == nil {
			return dialog.Turn{}, 0, false
		}
		turn := turnFromUser(message.From)
		if message.IsCommand() {
			turn.Command = message.Command()
			turn.Args = message.CommandArguments()
		} else {
			turn.Text = strings.TrimSpace(message.Text)
		}
		return turn, message.Chat.ID, true
	}
	return dialog.Turn{}, 0, false
}

func turnFromUser(from *tgbotapi.User) dialog.Turn {
	return dialog.Turn{
		UserID:   from.ID,
		Username: from.UserName,
		FullName: strings.TrimSpace(strings.TrimSpace(from.FirstName) + " " + strings.TrimSpace(from.LastName)),
		Language: from.LanguageCode,
	}
}
