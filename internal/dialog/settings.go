package dialog

import (
	"context"

	"github.com/avbelov/countbook/internal/messages"
	"github.com/avbelov/countbook/internal/model"
)

func (e *Engine) settingsMenu(ctx context.Context, user *model.User, state *State) ([]Response, error) {
	state.Clear()
	state.Step = stepSettingsMenu
	return []Response{e.settingsScreen(user)}, nil
}

func (e *Engine) settingsScreen(user *model.User) Response {
	return Response{
		Template: messages.SettingsWelcome,
		Params:   map[string]string{"language": messages.LanguageName(user.Language)},
		Options: []Option{
			{Value: optionLanguage, Label: messages.Text(messages.ButtonLanguage, user.Language, nil)},
		},
	}
}

func (e *Engine) settingsOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	switch state.Step {
	case stepSettingsMenu:
		if option != optionLanguage {
			return e.invalid(state)
		}
		state.Step = stepSettingsLanguage
		options := make([]Option, 0, len(messages.Languages))
		for _, language := range messages.Languages {
			options = append(options, Option{Value: language.Code, Label: language.Name})
		}
		return []Response{{
			Template: messages.SettingsSelectLanguage,
			Params:   map[string]string{"language": messages.LanguageName(user.Language)},
			Options:  options,
			Columns:  4,
		}}, nil

	case stepSettingsLanguage:
		if !messages.ValidLanguage(option) {
			return e.invalid(state)
		}
		if err := e.tracker.SetLanguage(ctx, user, option); err != nil {
			return nil, err
		}
		state.Step = stepSettingsMenu
		confirmation := replyParams(messages.SettingsLanguageUpdated,
			map[string]string{"language": messages.LanguageName(option)})
		return []Response{confirmation, e.settingsScreen(user)}, nil
	}
	return e.invalid(state)
}
