package repository

import (
	"context"

	"github.com/avbelov/countbook/internal/model"
)

// CategoryFilter narrows category listings. A nil ParentID means any parent;
// an empty Kind means both trees.
type CategoryFilter struct {
	ParentID   *int64
	Kind       model.CategoryKind
	NotDeleted bool
}

// SharedBookFilter narrows shared-book lookups. NotDeleted filters out both
// deleted grants and grants whose book is deleted.
type SharedBookFilter struct {
	ID         *int64
	UserID     *int64
	BookID     *int64
	Disabled   *bool
	NotDeleted bool
}

// CategoryTotal is one bucket of a per-category aggregate. Title is empty
// when the referenced category is deleted or the entry was uncategorized.
type CategoryTotal struct {
	CategoryID int64
	Title      string
	Amount     float64
}

// PeriodTotal is one bucket of a per-day/month/year aggregate.
type PeriodTotal struct {
	Period int
	Amount float64
}

// Repository is the storage contract consumed by the engine. Single-record
// lookups return (nil, nil) when nothing matches.
type Repository interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error

	GetBookByID(ctx context.Context, id int64, notDeleted bool) (*model.Book, error)
	GetBookByUID(ctx context.Context, uid string, notDeleted bool) (*model.Book, error)
	GetBookByTitle(ctx context.Context, userID int64, title string, notDeleted bool) (*model.Book, error)
	GetBooks(ctx context.Context, userID int64, notDeleted bool) ([]model.Book, error)
	CreateBook(ctx context.Context, book *model.Book) error
	UpdateBook(ctx context.Context, book *model.Book) error

	GetCategories(ctx context.Context, bookID int64, filter CategoryFilter) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, bookID, id int64, kind model.CategoryKind, notDeleted bool) (*model.Category, error)
	GetCategoryByTitle(ctx context.Context, bookID, parentID int64, kind model.CategoryKind, title string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategoryTree(ctx context.Context, id int64) error

	CreateEntry(ctx context.Context, entry *model.Entry) error
	EntriesPerCategory(ctx context.Context, bookID int64, kind model.CategoryKind, year, month, day *int) ([]CategoryTotal, error)
	EntriesPerDay(ctx context.Context, bookID int64, kind model.CategoryKind, year, month int) ([]PeriodTotal, error)
	EntriesPerMonth(ctx context.Context, bookID int64, kind model.CategoryKind, year int) ([]PeriodTotal, error)
	EntriesPerYear(ctx context.Context, bookID int64, kind model.CategoryKind) ([]PeriodTotal, error)

	GetSharedBooks(ctx context.Context, filter SharedBookFilter) ([]model.SharedBook, error)
	GetSharedBook(ctx context.Context, filter SharedBookFilter) (*model.SharedBook, error)
	CreateSharedBook(ctx context.Context, userID, bookID int64) (int64, error)
	UpdateSharedBook(ctx context.Context, id int64, disabled, deleted bool) error

	GetDialogState(ctx context.Context, userID int64) (step string, data []byte, err error)
	PutDialogState(ctx context.Context, userID int64, step string, data []byte) error
	DeleteDialogState(ctx context.Context, userID int64) error
}
