package dialog

import (
	"context"
	"errors"
	"strconv"

	"github.com/avbelov/countbook/internal/messages"
	"github.com/avbelov/countbook/internal/model"
	"github.com/avbelov/countbook/internal/service"
)

// startEntry begins the amount-entry flow from a bare-number message.
func (e *Engine) startEntry(ctx context.Context, user *model.User, state *State, text string) ([]Response, error) {
	book, responses, err := e.requireBook(ctx, user, state)
	if responses != nil || err != nil {
		return responses, err
	}
	amount, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, nil
	}
	if amount == 0 {
		return []Response{reply(messages.ExpensesZeroAmount)}, nil
	}

	state.Clear()
	state.Entry = &EntryData{Amount: amount}
	state.Step = stepEntryCategory

	screen, err := e.entryCategoryScreen(ctx, user, book, state.Entry)
	if err != nil {
		return nil, err
	}
	intro := replyParams(messages.ExpensesAddAmount, map[string]string{
		"amount":     formatAmount(amount),
		"currency":   book.Currency,
		"book_title": book.Title,
	})
	return []Response{intro, screen}, nil
}

// entryCategoryScreen renders the selector for the node the user descended
// to. It spans both trees so income categories are reachable from the root.
func (e *Engine) entryCategoryScreen(ctx context.Context, user *model.User, book *model.Book, data *EntryData) (Response, error) {
	template := messages.ExpensesRootSelect
	var params map[string]string
	if data.CategoryID != 0 {
		current, err := e.tracker.Category(ctx, book.ID, "", data.CategoryID)
		if err != nil {
			return Response{}, err
		}
		if current == nil {
			// The node vanished mid-flow; fall back to the root selector.
			data.CategoryID = 0
		} else {
			template = messages.ExpensesCategorySelect
			params = map[string]string{"category_title": current.Title}
		}
	}
	children, err := e.tracker.Subcategories(ctx, book.ID, "", data.CategoryID)
	if err != nil {
		return Response{}, err
	}
	lang := user.Language
	options := make([]Option, 0, len(children)+2)
	for _, child := range children {
		options = append(options, Option{Value: strconv.FormatInt(child.ID, 10), Label: child.Title})
	}
	options = append(options, Option{Value: optionSubmit, Label: messages.Text(messages.ButtonSubmit, lang, nil)})
	if data.CategoryID != 0 {
		options = append(options, backOption(lang))
	}
	return Response{Template: template, Params: params, Options: options, Columns: 3}, nil
}

func (e *Engine) entryOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	if state.Entry == nil {
		return e.invalid(state)
	}
	book, responses, err := e.requireBook(ctx, user, state)
	if responses != nil || err != nil {
		return responses, err
	}
	data := state.Entry

	switch option {
	case optionSubmit:
		return e.submitEntry(ctx, user, state, book, data)

	case optionBack:
		// Back on the root selector re-renders it.
		if data.CategoryID != 0 {
			parentID, err := e.tracker.ParentOf(ctx, book.ID, "", data.CategoryID)
			if err != nil {
				return nil, err
			}
			data.CategoryID = parentID
		}
		screen, err := e.entryCategoryScreen(ctx, user, book, data)
		if err != nil {
			return nil, err
		}
		return []Response{screen}, nil
	}

	id, err := strconv.ParseInt(option, 10, 64)
	if err != nil {
		return e.invalid(state)
	}
	category, err := e.tracker.Category(ctx, book.ID, "", id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return e.invalid(state)
	}
	data.CategoryID = category.ID
	screen, err := e.entryCategoryScreen(ctx, user, book, data)
	if err != nil {
		return nil, err
	}
	return []Response{screen}, nil
}

func (e *Engine) submitEntry(ctx context.Context, user *model.User, state *State, book *model.Book, data *EntryData) ([]Response, error) {
	var categoryTitle string
	if data.CategoryID != 0 {
		category, err := e.tracker.Category(ctx, book.ID, "", data.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			// The category vanished mid-flow; record uncategorized.
			data.CategoryID = 0
		} else {
			categoryTitle = category.Title
		}
	}
	entry, err := e.tracker.AddEntry(ctx, user, book, data.CategoryID, data.Amount)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrZeroAmount) {
			return e.invalid(state)
		}
		return nil, err
	}
	state.Clear()

	params := map[string]string{
		"amount":     formatAmount(entry.Amount),
		"currency":   book.Currency,
		"book_title": book.Title,
	}
	if categoryTitle == "" {
		return []Response{replyParams(messages.ExpensesCreated, params)}, nil
	}
	params["category_title"] = categoryTitle
	return []Response{replyParams(messages.ExpensesCreatedInCategory, params)}, nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
