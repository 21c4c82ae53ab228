package service

import (
	"context"

	"github.com/avbelov/countbook/internal/model"
	"github.com/avbelov/countbook/internal/repository"
)

// TotalsPerCategory aggregates entries of one kind per category, optionally
// narrowed to a year, month and day. Buckets with an empty title belong to
// uncategorized entries or entries whose category was deleted.
func (t *Tracker) TotalsPerCategory(ctx context.Context, bookID int64, kind model.CategoryKind, year, month, day *int) ([]repository.CategoryTotal, error) {
	return t.repo.EntriesPerCategory(ctx, bookID, kind, year, month, day)
}

// TotalsPerDay aggregates one month's entries per day of month.
func (t *Tracker) TotalsPerDay(ctx context.Context, bookID int64, kind model.CategoryKind, year, month int) ([]repository.PeriodTotal, error) {
	return t.repo.EntriesPerDay(ctx, bookID, kind, year, month)
}

// TotalsPerMonth aggregates one year's entries per month.
func (t *Tracker) TotalsPerMonth(ctx context.Context, bookID int64, kind model.CategoryKind, year int) ([]repository.PeriodTotal, error) {
	return t.repo.EntriesPerMonth(ctx, bookID, kind, year)
}

// TotalsPerYear aggregates all of a book's entries per year.
func (t *Tracker) TotalsPerYear(ctx context.Context, bookID int64, kind model.CategoryKind) ([]repository.PeriodTotal, error) {
	return t.repo.EntriesPerYear(ctx, bookID, kind)
}
