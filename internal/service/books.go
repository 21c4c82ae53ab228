package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avbelov/countbook/internal/model"
)

// Books lists the user's own live books, newest first.
func (t *Tracker) Books(ctx context.Context, userID int64) ([]model.Book, error) {
	return t.repo.GetBooks(ctx, userID, true)
}

// OwnBook fetches a live book scoped to its owner; nil when absent or owned
// by somebody else.
func (t *Tracker) OwnBook(ctx context.Context, userID, bookID int64) (*model.Book, error) {
	book, err := t.repo.GetBookByID(ctx, bookID, true)
	if err != nil {
		return nil, err
	}
	if book == nil || book.UserID != userID {
		return nil, nil
	}
	return book, nil
}

// ValidateBookTitle normalizes and validates a prospective book title without
// creating anything, so dialog flows can reject bad input before asking for
// the remaining attributes.
func (t *Tracker) ValidateBookTitle(ctx context.Context, userID int64, title string) error {
	return t.validateBookTitle(ctx, userID, NormalizeTitle(title))
}

func (t *Tracker) validateBookTitle(ctx context.Context, userID int64, title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	existing, err := t.repo.GetBookByTitle(ctx, userID, title, true)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateTitle
	}
	return nil
}

// CreateBook validates the normalized title, inserts the book and optionally
// imports the default category trees for the given language.
func (t *Tracker) CreateBook(ctx context.Context, userID int64, title, currency string, importDefaults bool, lang string) (*model.Book, error) {
	title = NormalizeTitle(title)
	if err := t.validateBookTitle(ctx, userID, title); err != nil {
		return nil, err
	}
	book := &model.Book{
		UserID:   userID,
		Title:    title,
		Currency: currency,
		Created:  time.Now().UTC(),
	}
	if err := t.repo.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	if importDefaults {
		if err := t.importCategories(ctx, book.ID, model.ExpenseCategory, 0, defaultTree(defaultExpenseCategories, lang)); err != nil {
			return nil, err
		}
		if err := t.importCategories(ctx, book.ID, model.IncomeCategory, 0, defaultTree(defaultIncomeCategories, lang)); err != nil {
			return nil, err
		}
	}
	return book, nil
}

func (t *Tracker) importCategories(ctx context.Context, bookID int64, kind model.CategoryKind, parentID int64, tree CategoryTree) error {
	for title, subtree := range tree {
		category := &model.Category{
			BookID:   bookID,
			ParentID: parentID,
			Kind:     kind,
			Title:    title,
		}
		if err := t.repo.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("import category %q: %w", title, err)
		}
		if err := t.importCategories(ctx, bookID, kind, category.ID, subtree); err != nil {
			return err
		}
	}
	return nil
}

// RenameBook updates an owned book's title after validation.
func (t *Tracker) RenameBook(ctx context.Context, userID, bookID int64, title string) (*model.Book, error) {
	title = NormalizeTitle(title)
	if err := t.validateBookTitle(ctx, userID, title); err != nil {
		return nil, err
	}
	book, err := t.OwnBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrNotFound
	}
	book.Title = title
	if err := t.repo.UpdateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// SetBookCurrency updates an owned book's currency.
func (t *Tracker) SetBookCurrency(ctx context.Context, userID, bookID int64, currency string) (*model.Book, error) {
	book, err := t.OwnBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrNotFound
	}
	book.Currency = currency
	if err := t.repo.UpdateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// RemoveBook soft-deletes an owned book. Only the acting owner's active-book
// reference is cleared here; anybody else still pointing at the book is
// lazily invalidated by ActiveBook.
func (t *Tracker) RemoveBook(ctx context.Context, user *model.User, bookID int64) (*model.Book, error) {
	book, err := t.OwnBook(ctx, user.ID, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrNotFound
	}
	book.Deleted = true
	if err := t.repo.UpdateBook(ctx, book); err != nil {
		return nil, err
	}
	if user.ActiveBookID == book.ID {
		if err := t.SetActiveBook(ctx, user, 0); err != nil {
			return nil, err
		}
	}
	return book, nil
}
