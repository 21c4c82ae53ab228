// Package service implements the bookkeeping engine: active-book resolution,
// book and category management, sharing, entry recording and report
// aggregates. It owns every ownership/scoping rule; dialog handlers never
// re-implement them.
package service

import (
	"context"
	"fmt"

	"github.com/avbelov/countbook/internal/model"
	"github.com/avbelov/countbook/internal/repository"
)

type Tracker struct {
	repo repository.Repository
}

func NewTracker(repo repository.Repository) *Tracker {
	return &Tracker{repo: repo}
}

// EnsureUser fetches the user record, creating it on first contact. The
// stored language preference wins over the transport-reported code.
func (t *Tracker) EnsureUser(ctx context.Context, id int64, username, fullName, language string) (*model.User, error) {
	user, err := t.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	if language == "" {
		language = "en"
	}
	user = &model.User{
		ID:       id,
		Username: username,
		FullName: fullName,
		Language: language,
	}
	if err := t.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ActiveBook resolves the user's currently selected book, or nil when the
// reference is unset, the book is gone, or shared access was revoked. All
// three cases are deliberately indistinguishable to the caller.
func (t *Tracker) ActiveBook(ctx context.Context, user *model.User) (*model.Book, error) {
	if user.ActiveBookID == 0 {
		return nil, nil
	}
	book, err := t.repo.GetBookByID(ctx, user.ActiveBookID, true)
	if err != nil {
		return nil, fmt.Errorf("resolve active book: %w", err)
	}
	if book == nil {
		return nil, nil
	}
	if book.UserID == user.ID {
		return book, nil
	}
	disabled := false
	grant, err := t.repo.GetSharedBook(ctx, repository.SharedBookFilter{
		UserID:     &user.ID,
		BookID:     &book.ID,
		Disabled:   &disabled,
		NotDeleted: true,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve shared access: %w", err)
	}
	if grant == nil {
		return nil, nil
	}
	return book, nil
}

// SetActiveBook updates the user's active-book reference (0 clears it).
func (t *Tracker) SetActiveBook(ctx context.Context, user *model.User, bookID int64) error {
	user.ActiveBookID = bookID
	return t.repo.UpdateUser(ctx, user)
}

// SetLanguage persists the user's language preference.
func (t *Tracker) SetLanguage(ctx context.Context, user *model.User, language string) error {
	user.Language = language
	return t.repo.UpdateUser(ctx, user)
}
