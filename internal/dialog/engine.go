package dialog

import (
	"context"
	"fmt"
	"regexp"

	"github.com/avbelov/countbook/internal/charts"
	"github.com/avbelov/countbook/internal/messages"
	"github.com/avbelov/countbook/internal/model"
	"github.com/avbelov/countbook/internal/service"
)

// amountPattern is the free-text trigger for recording an entry.
var amountPattern = regexp.MustCompile(`^[+-]?\d+\.?\d*$`)

// Engine turns user actions into responses. All storage access goes through
// the tracker; the engine owns only conversation structure.
type Engine struct {
	tracker *service.Tracker
	store   *Store
	charts  *charts.Generator
}

func NewEngine(tracker *service.Tracker, store *Store, charts *charts.Generator) *Engine {
	return &Engine{tracker: tracker, store: store, charts: charts}
}

// Handle processes one turn under the user's turn lock: load state, dispatch,
// persist whatever state the handler left behind.
func (e *Engine) Handle(ctx context.Context, turn Turn) ([]Response, error) {
	unlock := e.store.Lock(turn.UserID)
	defer unlock()

	user, err := e.tracker.EnsureUser(ctx, turn.UserID, turn.Username, turn.FullName, turn.Language)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	state, err := e.store.Load(ctx, turn.UserID)
	if err != nil {
		return nil, err
	}
	responses, err := e.dispatch(ctx, user, state, turn)
	if err != nil {
		return nil, err
	}
	if err := e.store.Save(ctx, turn.UserID, state); err != nil {
		return nil, err
	}
	for i := range responses {
		responses[i].Text = responses[i].Render(user.Language)
	}
	return responses, nil
}

func (e *Engine) dispatch(ctx context.Context, user *model.User, state *State, turn Turn) ([]Response, error) {
	switch {
	case turn.Command != "":
		// Any command abandons whatever flow was in progress.
		state.Clear()
		return e.handleCommand(ctx, user, state, turn)
	case turn.Option != "":
		return e.handleOption(ctx, user, state, turn)
	default:
		return e.handleText(ctx, user, state, turn)
	}
}

func (e *Engine) handleCommand(ctx context.Context, user *model.User, state *State, turn Turn) ([]Response, error) {
	switch turn.Command {
	case "start":
		return []Response{reply(messages.Start)}, nil
	case "books":
		return e.booksList(ctx, user, state)
	case "join":
		return e.joinBook(ctx, user, turn.Args)
	case "settings":
		return e.settingsMenu(ctx, user, state)
	case "today", "yesterday", "current_month":
		return e.instantReport(ctx, user, state, turn.Command)
	case "year", "month", "day":
		return e.startReport(ctx, user, state, turn.Command)
	default:
		return []Response{reply(messages.InvalidRequest)}, nil
	}
}

func (e *Engine) handleOption(ctx context.Context, user *model.User, state *State, turn Turn) ([]Response, error) {
	switch state.Step {
	case stepBooksList, stepBooksActions, stepBooksSharedActions, stepBooksCurrency,
		stepBooksImport, stepBooksCategoryKind, stepBooksCategory, stepBooksMembers:
		return e.booksOption(ctx, user, state, turn.Option)
	case stepEntryCategory:
		return e.entryOption(ctx, user, state, turn.Option)
	case stepReportsYear, stepReportsMonth, stepReportsDay:
		return e.reportOption(ctx, user, state, turn.Option)
	case stepSettingsMenu, stepSettingsLanguage:
		return e.settingsOption(ctx, user, state, turn.Option)
	default:
		return e.invalid(state)
	}
}

func (e *Engine) handleText(ctx context.Context, user *model.User, state *State, turn Turn) ([]Response, error) {
	switch state.Step {
	case stepBooksTitle:
		return e.booksTitleInput(ctx, user, state, turn.Text)
	case stepBooksCategoryTitle:
		return e.categoryTitleInput(ctx, user, state, turn.Text)
	}
	if amountPattern.MatchString(turn.Text) {
		return e.startEntry(ctx, user, state, turn.Text)
	}
	// Unsolicited text outside any flow is ignored.
	return nil, nil
}

// invalid clears the state and reports an unprocessable action. Used for
// unknown option values and for flow data that no longer resolves.
func (e *Engine) invalid(state *State) ([]Response, error) {
	state.Clear()
	return []Response{reply(messages.InvalidRequest)}, nil
}

// requireBook resolves the active book, or clears state and answers with the
// active-book prompt. Callers stop when responses is non-nil.
func (e *Engine) requireBook(ctx context.Context, user *model.User, state *State) (*model.Book, []Response, error) {
	book, err := e.tracker.ActiveBook(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	if book == nil {
		state.Clear()
		return nil, []Response{reply(messages.ActiveBookRequired)}, nil
	}
	return book, nil, nil
}

func bookParams(title, currency string) map[string]string {
	return map[string]string{
		"title":    title,
		"currency": currency,
	}
}

func backOption(lang string) Option {
	return Option{Value: optionBack, Label: messages.Text(messages.ButtonBack, lang, nil)}
}
