package dialog

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/avbelov/countbook/internal/messages"
	"github.com/avbelov/countbook/internal/model"
	"github.com/avbelov/countbook/internal/service"
)

const (
	ownBookPrefix    = "own:"
	sharedBookPrefix = "shared:"
	activeMark       = "✓ "
	disabledMark     = "✗ "
)

// booksList opens the /books root screen: own books, enabled shared books,
// and the add-book button. The active book is marked.
func (e *Engine) booksList(ctx context.Context, user *model.User, state *State) ([]Response, error) {
	own, err := e.tracker.Books(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	shared, err := e.tracker.SharedBooks(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	options := make([]Option, 0, len(own)+len(shared)+1)
	for _, book := range own {
		label := book.Title
		if book.ID == user.ActiveBookID {
			label = activeMark + label
		}
		options = append(options, Option{Value: ownBookPrefix + strconv.FormatInt(book.ID, 10), Label: label})
	}
	for _, grant := range shared {
		label := grant.Title
		if grant.BookID == user.ActiveBookID {
			label = activeMark + label
		}
		options = append(options, Option{Value: sharedBookPrefix + strconv.FormatInt(grant.ID, 10), Label: label})
	}
	options = append(options, Option{Value: optionAdd, Label: messages.Text(messages.ButtonAddBook, user.Language, nil)})

	state.Clear()
	state.enterBooks(stepBooksList)
	return []Response{{Template: messages.BooksWelcome, Options: options, Columns: 3}}, nil
}

func (e *Engine) booksOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	if state.Books == nil {
		return e.invalid(state)
	}
	switch state.Step {
	case stepBooksList:
		return e.booksListOption(ctx, user, state, option)
	case stepBooksActions:
		return e.bookActionsOption(ctx, user, state, option)
	case stepBooksSharedActions:
		return e.sharedActionsOption(ctx, user, state, option)
	case stepBooksCurrency:
		return e.currencyOption(ctx, user, state, option)
	case stepBooksImport:
		return e.importOption(ctx, user, state, option)
	case stepBooksCategoryKind:
		return e.categoryKindOption(ctx, user, state, option)
	case stepBooksCategory:
		return e.categoryOption(ctx, user, state, option)
	case stepBooksMembers:
		return e.membersOption(ctx, user, state, option)
	}
	return e.invalid(state)
}

func (e *Engine) booksListOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	switch {
	case option == optionAdd:
		data := state.enterBooks(stepBooksTitle)
		data.Creating = true
		return []Response{reply(messages.BooksAddTitle)}, nil

	case strings.HasPrefix(option, ownBookPrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(option, ownBookPrefix), 10, 64)
		if err != nil {
			return e.invalid(state)
		}
		book, err := e.tracker.OwnBook(ctx, user.ID, id)
		if err != nil {
			return nil, err
		}
		if book == nil {
			return e.invalid(state)
		}
		data := state.enterBooks(stepBooksActions)
		data.BookID = book.ID
		return []Response{e.bookActionsScreen(user, book)}, nil

	case strings.HasPrefix(option, sharedBookPrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(option, sharedBookPrefix), 10, 64)
		if err != nil {
			return e.invalid(state)
		}
		grant, err := e.tracker.SharedBook(ctx, user.ID, id)
		if err != nil {
			return nil, err
		}
		if grant == nil {
			return e.invalid(state)
		}
		data := state.enterBooks(stepBooksSharedActions)
		data.SharedID = grant.ID
		data.BookID = grant.BookID
		return []Response{e.sharedActionsScreen(user, grant)}, nil
	}
	return e.invalid(state)
}

func (e *Engine) bookActionsScreen(user *model.User, book *model.Book) Response {
	lang := user.Language
	params := bookParams(book.Title, book.Currency)
	params["book_uid"] = book.UID
	return Response{
		Template: messages.BooksSelected,
		Params:   params,
		Columns:  2,
		Options: []Option{
			{Value: optionJoin, Label: messages.Text(messages.ButtonJoin, lang, nil)},
			{Value: optionTitle, Label: messages.Text(messages.ButtonTitle, lang, nil)},
			{Value: optionCurrency, Label: messages.Text(messages.ButtonCurrency, lang, nil)},
			{Value: optionCategories, Label: messages.Text(messages.ButtonCategories, lang, nil)},
			{Value: optionMembers, Label: messages.Text(messages.ButtonMembers, lang, nil)},
			{Value: optionRemove, Label: messages.Text(messages.ButtonRemove, lang, nil)},
			backOption(lang),
		},
	}
}

func (e *Engine) sharedActionsScreen(user *model.User, grant *model.SharedBook) Response {
	lang := user.Language
	params := bookParams(grant.Title, grant.Currency)
	params["book_uid"] = grant.BookUID
	return Response{
		Template: messages.BooksSelected,
		Params:   params,
		Columns:  2,
		Options: []Option{
			{Value: optionJoin, Label: messages.Text(messages.ButtonJoin, lang, nil)},
			{Value: optionDisconnect, Label: messages.Text(messages.ButtonDisconnect, lang, nil)},
			backOption(lang),
		},
	}
}

// ownBook re-resolves the book the flow operates on. Editing flows never rely
// on the active-book reference: an owner manages any of their books.
func (e *Engine) ownBook(ctx context.Context, user *model.User, state *State) (*model.Book, error) {
	if state.Books == nil || state.Books.BookID == 0 {
		return nil, nil
	}
	return e.tracker.OwnBook(ctx, user.ID, state.Books.BookID)
}

func (e *Engine) bookActionsOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	book, err := e.ownBook(ctx, user, state)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return e.invalid(state)
	}
	switch option {
	case optionJoin:
		if err := e.tracker.SetActiveBook(ctx, user, book.ID); err != nil {
			return nil, err
		}
		state.Clear()
		return []Response{replyParams(messages.BooksConnected, bookParams(book.Title, book.Currency))}, nil

	case optionTitle:
		data := state.enterBooks(stepBooksTitle)
		data.Creating = false
		return []Response{reply(messages.BooksAddTitle)}, nil

	case optionCurrency:
		data := state.enterBooks(stepBooksCurrency)
		data.Creating = false
		return []Response{e.currencyScreen(user, messages.BooksSetCurrency)}, nil

	case optionCategories:
		state.enterBooks(stepBooksCategoryKind)
		return []Response{e.categoryKindScreen(user)}, nil

	case optionMembers:
		state.enterBooks(stepBooksMembers)
		return e.membersScreen(ctx, user, book)

	case optionRemove:
		removed, err := e.tracker.RemoveBook(ctx, user, book.ID)
		if err != nil {
			return nil, err
		}
		state.Clear()
		return []Response{replyParams(messages.BooksDeleted, bookParams(removed.Title, removed.Currency))}, nil

	case optionBack:
		return e.booksList(ctx, user, state)
	}
	return e.invalid(state)
}

func (e *Engine) sharedActionsOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	grant, err := e.tracker.SharedBook(ctx, user.ID, state.Books.SharedID)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return e.invalid(state)
	}
	switch option {
	case optionJoin:
		if err := e.tracker.SetActiveBook(ctx, user, grant.BookID); err != nil {
			return nil, err
		}
		state.Clear()
		return []Response{replyParams(messages.BooksConnected, bookParams(grant.Title, grant.Currency))}, nil

	case optionDisconnect:
		removed, err := e.tracker.Disconnect(ctx, user, grant.ID)
		if err != nil {
			return nil, err
		}
		state.Clear()
		return []Response{replyParams(messages.BooksDisconnected, bookParams(removed.Title, removed.Currency))}, nil

	case optionBack:
		return e.booksList(ctx, user, state)
	}
	return e.invalid(state)
}

func (e *Engine) currencyScreen(user *model.User, template messages.ID) Response {
	options := make([]Option, 0, len(messages.Currencies))
	for _, code := range messages.Currencies {
		options = append(options, Option{Value: code, Label: code})
	}
	return Response{Template: template, Options: options, Columns: 4}
}

// booksTitleInput handles the title text step for both creating a book and
// renaming one. Validation failures keep the step so the user can retry.
func (e *Engine) booksTitleInput(ctx context.Context, user *model.User, state *State, text string) ([]Response, error) {
	if state.Books == nil {
		return e.invalid(state)
	}
	data := state.Books
	if data.Creating {
		if err := e.tracker.ValidateBookTitle(ctx, user.ID, text); err != nil {
			if response, ok := bookTitleError(err); ok {
				return []Response{response}, nil
			}
			return nil, err
		}
		data.Title = service.NormalizeTitle(text)
		state.Step = stepBooksCurrency
		return []Response{e.currencyScreen(user, messages.BooksSetCurrency)}, nil
	}

	book, err := e.tracker.RenameBook(ctx, user.ID, data.BookID, text)
	if err != nil {
		if response, ok := bookTitleError(err); ok {
			return []Response{response}, nil
		}
		if errors.Is(err, service.ErrNotFound) {
			return e.invalid(state)
		}
		return nil, err
	}
	state.Step = stepBooksActions
	return []Response{reply(messages.BooksTitleUpdated), e.bookActionsScreen(user, book)}, nil
}

func bookTitleError(err error) (Response, bool) {
	switch {
	case errors.Is(err, service.ErrTitleTooShort):
		return reply(messages.BooksTitleTooShort), true
	case errors.Is(err, service.ErrTitleTooLong):
		return reply(messages.BooksTitleTooLong), true
	case errors.Is(err, service.ErrTitleReserved):
		return reply(messages.BooksTitleAvoidSlash), true
	case errors.Is(err, service.ErrDuplicateTitle):
		return reply(messages.BooksAlreadyExists), true
	}
	return Response{}, false
}

func (e *Engine) currencyOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	if !messages.ValidCurrency(option) {
		return e.invalid(state)
	}
	data := state.Books
	if data.Creating {
		data.Currency = option
		state.Step = stepBooksImport
		lang := user.Language
		return []Response{{
			Template: messages.BooksCreateDefaultCategories,
			Columns:  2,
			Options: []Option{
				{Value: optionYes, Label: messages.Text(messages.ButtonYes, lang, nil)},
				{Value: optionNo, Label: messages.Text(messages.ButtonNo, lang, nil)},
			},
		}}, nil
	}

	book, err := e.ownBook(ctx, user, state)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return e.invalid(state)
	}
	updated, err := e.tracker.SetBookCurrency(ctx, user.ID, book.ID, option)
	if err != nil {
		return nil, err
	}
	state.Step = stepBooksActions
	return []Response{reply(messages.BooksCurrencyUpdated), e.bookActionsScreen(user, updated)}, nil
}

func (e *Engine) importOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	if option != optionYes && option != optionNo {
		return e.invalid(state)
	}
	data := state.Books
	book, err := e.tracker.CreateBook(ctx, user.ID, data.Title, data.Currency, option == optionYes, user.Language)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateTitle) {
			// Raced with another creation since the title step.
			state.Step = stepBooksTitle
			return []Response{reply(messages.BooksAlreadyExists)}, nil
		}
		return nil, err
	}
	state.Clear()
	params := bookParams(book.Title, book.Currency)
	params["book_uid"] = book.UID
	return []Response{replyParams(messages.BooksSuccessfullyCreated, params)}, nil
}

func (e *Engine) categoryKindScreen(user *model.User) Response {
	lang := user.Language
	return Response{
		Template: messages.CategoriesTypeWelcome,
		Columns:  2,
		Options: []Option{
			{Value: string(model.ExpenseCategory), Label: messages.Text(messages.ButtonExpense, lang, nil)},
			{Value: string(model.IncomeCategory), Label: messages.Text(messages.ButtonIncome, lang, nil)},
			backOption(lang),
		},
	}
}

func (e *Engine) categoryKindOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	book, err := e.ownBook(ctx, user, state)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return e.invalid(state)
	}
	switch option {
	case string(model.ExpenseCategory), string(model.IncomeCategory):
		data := state.Books
		data.Kind = model.CategoryKind(option)
		data.ParentID = 0
		state.Step = stepBooksCategory
		response, err := e.categoryScreen(ctx, user, book, data)
		if err != nil {
			return nil, err
		}
		return []Response{response}, nil
	case optionBack:
		state.Step = stepBooksActions
		return []Response{e.bookActionsScreen(user, book)}, nil
	}
	return e.invalid(state)
}

// categoryScreen renders the tree node the editor currently sits on: its
// children, the add button, and on non-root nodes rename/remove.
func (e *Engine) categoryScreen(ctx context.Context, user *model.User, book *model.Book, data *BooksData) (Response, error) {
	template := messages.CategoriesWelcome
	var params map[string]string
	var current *model.Category
	if data.ParentID != 0 {
		var err error
		current, err = e.tracker.Category(ctx, book.ID, data.Kind, data.ParentID)
		if err != nil {
			return Response{}, err
		}
		if current == nil {
			// Deleted underneath us, fall back to the roots.
			data.ParentID = 0
		} else {
			template = messages.CategoriesWelcomeToCategory
			params = map[string]string{"title": current.Title}
		}
	}
	children, err := e.tracker.Subcategories(ctx, book.ID, data.Kind, data.ParentID)
	if err != nil {
		return Response{}, err
	}
	lang := user.Language
	options := make([]Option, 0, len(children)+4)
	for _, child := range children {
		options = append(options, Option{Value: strconv.FormatInt(child.ID, 10), Label: child.Title})
	}
	options = append(options, Option{Value: optionAdd, Label: messages.Text(messages.ButtonAddCategory, lang, nil)})
	if current != nil {
		options = append(options,
			Option{Value: optionTitle, Label: messages.Text(messages.ButtonTitle, lang, nil)},
			Option{Value: optionRemove, Label: messages.Text(messages.ButtonRemove, lang, nil)},
		)
	}
	options = append(options, backOption(lang))
	return Response{Template: template, Params: params, Options: options, Columns: 3}, nil
}

func (e *Engine) categoryOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	book, err := e.ownBook(ctx, user, state)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return e.invalid(state)
	}
	data := state.Books
	switch option {
	case optionAdd:
		data.CategoryID = 0
		state.Step = stepBooksCategoryTitle
		return []Response{reply(messages.CategoriesAddTitle)}, nil

	case optionTitle:
		if data.ParentID == 0 {
			return e.invalid(state)
		}
		data.CategoryID = data.ParentID
		state.Step = stepBooksCategoryTitle
		return []Response{reply(messages.CategoriesAddTitle)}, nil

	case optionRemove:
		if data.ParentID == 0 {
			return e.invalid(state)
		}
		removed, err := e.tracker.DeleteCategory(ctx, book.ID, data.Kind, data.ParentID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return e.invalid(state)
			}
			return nil, err
		}
		data.ParentID = removed.ParentID
		screen, err := e.categoryScreen(ctx, user, book, data)
		if err != nil {
			return nil, err
		}
		return []Response{replyParams(messages.CategoriesDeleted, map[string]string{"title": removed.Title}), screen}, nil

	case optionBack:
		if data.ParentID == 0 {
			state.Step = stepBooksCategoryKind
			return []Response{e.categoryKindScreen(user)}, nil
		}
		parentID, err := e.tracker.ParentOf(ctx, book.ID, data.Kind, data.ParentID)
		if err != nil {
			return nil, err
		}
		data.ParentID = parentID
		screen, err := e.categoryScreen(ctx, user, book, data)
		if err != nil {
			return nil, err
		}
		return []Response{screen}, nil
	}

	id, err := strconv.ParseInt(option, 10, 64)
	if err != nil {
		return e.invalid(state)
	}
	category, err := e.tracker.Category(ctx, book.ID, data.Kind, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return e.invalid(state)
	}
	data.ParentID = category.ID
	screen, err := e.categoryScreen(ctx, user, book, data)
	if err != nil {
		return nil, err
	}
	return []Response{screen}, nil
}

func (e *Engine) categoryTitleInput(ctx context.Context, user *model.User, state *State, text string) ([]Response, error) {
	if state.Books == nil {
		return e.invalid(state)
	}
	book, err := e.ownBook(ctx, user, state)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return e.invalid(state)
	}
	data := state.Books

	var (
		category *model.Category
		created  bool
	)
	if data.CategoryID == 0 {
		category, err = e.tracker.CreateCategory(ctx, book.ID, data.Kind, data.ParentID, text)
		created = true
	} else {
		category, err = e.tracker.RenameCategory(ctx, book.ID, data.Kind, data.CategoryID, text)
	}
	if err != nil {
		if response, ok := categoryTitleError(err, text); ok {
			return []Response{response}, nil
		}
		if errors.Is(err, service.ErrNotFound) {
			return e.invalid(state)
		}
		return nil, err
	}

	state.Step = stepBooksCategory
	data.CategoryID = 0
	screen, err := e.categoryScreen(ctx, user, book, data)
	if err != nil {
		return nil, err
	}
	confirmation := reply(messages.CategoriesTitleUpdated)
	if created {
		confirmation = replyParams(messages.CategoriesCreated, map[string]string{"title": category.Title})
	}
	return []Response{confirmation, screen}, nil
}

func categoryTitleError(err error, title string) (Response, bool) {
	switch {
	case errors.Is(err, service.ErrTitleTooShort):
		return reply(messages.CategoriesTitleTooShort), true
	case errors.Is(err, service.ErrTitleTooLong):
		return reply(messages.CategoriesTitleTooLong), true
	case errors.Is(err, service.ErrTitleReserved):
		return reply(messages.CategoriesTitleAvoidSlash), true
	case errors.Is(err, service.ErrDuplicateTitle):
		return replyParams(messages.CategoriesAlreadyExists, map[string]string{"title": service.NormalizeTitle(title)}), true
	}
	return Response{}, false
}

func (e *Engine) membersScreen(ctx context.Context, user *model.User, book *model.Book) ([]Response, error) {
	members, err := e.tracker.BookMembers(ctx, user.ID, book.ID)
	if err != nil {
		return nil, err
	}
	lang := user.Language
	if len(members) == 0 {
		return []Response{{
			Template: messages.BooksNoMembers,
			Params:   map[string]string{"title": book.Title},
			Options:  []Option{backOption(lang)},
		}}, nil
	}
	options := make([]Option, 0, len(members)+1)
	for _, member := range members {
		label := member.Name
		if label == "" {
			label = strconv.FormatInt(member.UserID, 10)
		}
		if member.Disabled {
			label = disabledMark + label
		}
		options = append(options, Option{Value: strconv.FormatInt(member.ID, 10), Label: label})
	}
	options = append(options, backOption(lang))
	return []Response{{
		Template: messages.BooksMembers,
		Params:   map[string]string{"title": book.Title},
		Options:  options,
	}}, nil
}

// membersOption toggles the tapped member's access and re-renders the list.
func (e *Engine) membersOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	book, err := e.ownBook(ctx, user, state)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return e.invalid(state)
	}
	if option == optionBack {
		state.Step = stepBooksActions
		return []Response{e.bookActionsScreen(user, book)}, nil
	}
	sharedID, err := strconv.ParseInt(option, 10, 64)
	if err != nil {
		return e.invalid(state)
	}
	members, err := e.tracker.BookMembers(ctx, user.ID, book.ID)
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		if member.ID != sharedID {
			continue
		}
		disabled := !member.Disabled
		if err := e.tracker.SetMemberDisabled(ctx, user.ID, book.ID, member.ID, disabled); err != nil {
			return nil, err
		}
		confirmation := reply(messages.BooksMemberEnabled)
		if disabled {
			confirmation = reply(messages.BooksMemberDisabled)
		}
		screen, err := e.membersScreen(ctx, user, book)
		if err != nil {
			return nil, err
		}
		return append([]Response{confirmation}, screen...), nil
	}
	return e.invalid(state)
}

// joinBook implements /join <token>.
func (e *Engine) joinBook(ctx context.Context, user *model.User, args string) ([]Response, error) {
	token := strings.TrimSpace(args)
	if token == "" {
		return []Response{reply(messages.InvalidRequest)}, nil
	}
	book, err := e.tracker.Join(ctx, user, token)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return []Response{reply(messages.InvalidRequest)}, nil
	case errors.Is(err, service.ErrAccessDisabled):
		return []Response{replyParams(messages.BooksDisabled, bookParams(book.Title, book.Currency))}, nil
	case err != nil:
		return nil, err
	}
	return []Response{replyParams(messages.BooksConnected, bookParams(book.Title, book.Currency))}, nil
}
