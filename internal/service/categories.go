package service

import (
	"context"

	"github.com/avbelov/countbook/internal/model"
	"github.com/avbelov/countbook/internal/repository"
)

// Subcategories lists live children of parentID (0 = roots) ordered by
// title. An empty kind spans both trees, which the entry-recording selector
// relies on.
func (t *Tracker) Subcategories(ctx context.Context, bookID int64, kind model.CategoryKind, parentID int64) ([]model.Category, error) {
	return t.repo.GetCategories(ctx, bookID, repository.CategoryFilter{
		ParentID:   &parentID,
		Kind:       kind,
		NotDeleted: true,
	})
}

// Category fetches a live category scoped to (book, kind); nil when absent.
func (t *Tracker) Category(ctx context.Context, bookID int64, kind model.CategoryKind, id int64) (*model.Category, error) {
	if id == 0 {
		return nil, nil
	}
	return t.repo.GetCategoryByID(ctx, bookID, id, kind, true)
}

func (t *Tracker) validateCategoryTitle(ctx context.Context, bookID, parentID int64, kind model.CategoryKind, title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	existing, err := t.repo.GetCategoryByTitle(ctx, bookID, parentID, kind, title)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateTitle
	}
	return nil
}

// CreateCategory adds a child under parentID after validating the normalized
// title against the live siblings of the same kind.
func (t *Tracker) CreateCategory(ctx context.Context, bookID int64, kind model.CategoryKind, parentID int64, title string) (*model.Category, error) {
	title = NormalizeTitle(title)
	if err := t.validateCategoryTitle(ctx, bookID, parentID, kind, title); err != nil {
		return nil, err
	}
	category := &model.Category{
		BookID:   bookID,
		ParentID: parentID,
		Kind:     kind,
		Title:    title,
	}
	if err := t.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// RenameCategory retitles a category in place; it never moves in the tree.
func (t *Tracker) RenameCategory(ctx context.Context, bookID int64, kind model.CategoryKind, id int64, title string) (*model.Category, error) {
	category, err := t.Category(ctx, bookID, kind, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	title = NormalizeTitle(title)
	if err := t.validateCategoryTitle(ctx, bookID, category.ParentID, kind, title); err != nil {
		return nil, err
	}
	category.Title = title
	if err := t.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory cascades a soft-delete over the category and its whole
// subtree. Entries keep their references and surface as uncategorized.
func (t *Tracker) DeleteCategory(ctx context.Context, bookID int64, kind model.CategoryKind, id int64) (*model.Category, error) {
	category, err := t.Category(ctx, bookID, kind, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	if err := t.repo.DeleteCategoryTree(ctx, category.ID); err != nil {
		return nil, err
	}
	return category, nil
}

// ParentOf returns the id to pop to when walking "back" from the given
// category: its parent, or root when the category itself has vanished.
func (t *Tracker) ParentOf(ctx context.Context, bookID int64, kind model.CategoryKind, id int64) (int64, error) {
	category, err := t.Category(ctx, bookID, kind, id)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, nil
	}
	return category.ParentID, nil
}
