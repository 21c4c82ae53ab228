package service

import (
	"context"
	"time"

	"github.com/avbelov/countbook/internal/model"
)

// AddEntry records an amount against the active book. The entry kind follows
// the chosen category; an uncategorized entry is recorded as an expense.
func (t *Tracker) AddEntry(ctx context.Context, user *model.User, book *model.Book, categoryID int64, amount float64) (*model.Entry, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	kind := model.ExpenseCategory
	if categoryID != 0 {
		category, err := t.Category(ctx, book.ID, "", categoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrNotFound
		}
		kind = category.Kind
	}
	entry := model.NewEntry(user.ID, book.ID, categoryID, kind, amount, time.Now())
	if err := t.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
