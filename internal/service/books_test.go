package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avbelov/countbook/internal/model"
)

func TestCreateBookValidatesTitles(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()
	user := mustUser(t, tracker, 1)

	if _, err := tracker.CreateBook(ctx, user.ID, "F", "USD", false, "en"); !errors.Is(err, ErrTitleTooShort) {
		t.Fatalf("short title = %v, want ErrTitleTooShort", err)
	}
	if _, err := tracker.CreateBook(ctx, user.ID, "/family", "USD", false, "en"); !errors.Is(err, ErrTitleReserved) {
		t.Fatalf("slash title = %v, want ErrTitleReserved", err)
	}

	if _, err := tracker.CreateBook(ctx, user.ID, "  Family   Budget ", "USD", false, "en"); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	books, err := tracker.Books(ctx, user.ID)
	if err != nil || len(books) != 1 {
		t.Fatalf("Books = (%+v, %v)", books, err)
	}
	if books[0].Title != "Family Budget" {
		t.Fatalf("title not normalized: %q", books[0].Title)
	}

	if _, err := tracker.CreateBook(ctx, user.ID, "Family Budget", "EUR", false, "en"); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("duplicate title = %v, want ErrDuplicateTitle", err)
	}

	// Another user may reuse the title.
	other := mustUser(t, tracker, 2)
	if _, err := tracker.CreateBook(ctx, other.ID, "Family Budget", "EUR", false, "en"); err != nil {
		t.Fatalf("CreateBook other user: %v", err)
	}
}

func TestCreateBookImportsDefaultTrees(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()
	user := mustUser(t, tracker, 1)

	book, err := tracker.CreateBook(ctx, user.ID, "Family", "USD", true, "en")
	if err != nil {
		t.Fatalf("CreateBook: %v", err)
	}

	expenses, err := tracker.Subcategories(ctx, book.ID, model.ExpenseCategory, 0)
	if err != nil {
		t.Fatalf("Subcategories: %v", err)
	}
	if len(expenses) == 0 {
		t.Fatal("no default expense roots imported")
	}
	income, err := tracker.Subcategories(ctx, book.ID, model.IncomeCategory, 0)
	if err != nil {
		t.Fatalf("Subcategories income: %v", err)
	}
	if len(income) == 0 {
		t.Fatal("no default income roots imported")
	}

	// At least one root must carry imported children.
	nested := false
	for _, root := range expenses {
		children, err := tracker.Subcategories(ctx, book.ID, model.ExpenseCategory, root.ID)
		if err != nil {
			t.Fatalf("Subcategories children: %v", err)
		}
		if len(children) > 0 {
			nested = true
			break
		}
	}
	if !nested {
		t.Fatal("default tree imported flat")
	}
}

func TestCategoryEditing(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()
	user := mustUser(t, tracker, 1)
	book, err := tracker.CreateBook(ctx, user.ID, "Family", "USD", false, "en")
	if err != nil {
		t.Fatalf("CreateBook: %v", err)
	}

	food, err := tracker.CreateCategory(ctx, book.ID, model.ExpenseCategory, 0, "Food")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := tracker.CreateCategory(ctx, book.ID, model.ExpenseCategory, 0, "Food"); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("duplicate sibling = %v, want ErrDuplicateTitle", err)
	}
	// Case-sensitive sibling uniqueness and cross-tree independence.
	if _, err := tracker.CreateCategory(ctx, book.ID, model.ExpenseCategory, 0, "FOOD"); err != nil {
		t.Fatalf("case-variant sibling: %v", err)
	}
	if _, err := tracker.CreateCategory(ctx, book.ID, model.IncomeCategory, 0, "Food"); err != nil {
		t.Fatalf("same title in income tree: %v", err)
	}
	// Same title under a different parent is fine.
	if _, err := tracker.CreateCategory(ctx, book.ID, model.ExpenseCategory, food.ID, "Food"); err != nil {
		t.Fatalf("same title as child: %v", err)
	}

	renamed, err := tracker.RenameCategory(ctx, book.ID, model.ExpenseCategory, food.ID, "Groceries")
	if err != nil {
		t.Fatalf("RenameCategory: %v", err)
	}
	if renamed.Title != "Groceries" || renamed.ParentID != 0 {
		t.Fatalf("renamed = %+v", renamed)
	}

	if _, err := tracker.DeleteCategory(ctx, book.ID, model.ExpenseCategory, food.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	// The deleted title becomes reusable among the live siblings.
	if _, err := tracker.CreateCategory(ctx, book.ID, model.ExpenseCategory, 0, "Groceries"); err != nil {
		t.Fatalf("reuse deleted title: %v", err)
	}
	// ParentOf tolerates the vanished node by falling back to the root.
	if parentID, err := tracker.ParentOf(ctx, book.ID, model.ExpenseCategory, food.ID); err != nil || parentID != 0 {
		t.Fatalf("ParentOf deleted = (%d, %v)", parentID, err)
	}
}

func TestAddEntryKinds(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()
	user := mustUser(t, tracker, 1)
	book, err := tracker.CreateBook(ctx, user.ID, "Family", "USD", false, "en")
	if err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	salary, err := tracker.CreateCategory(ctx, book.ID, model.IncomeCategory, 0, "Salary")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	if _, err := tracker.AddEntry(ctx, user, book, 0, 0); !errors.Is(err, ErrZeroAmount) {
		t.Fatalf("zero amount = %v, want ErrZeroAmount", err)
	}

	entry, err := tracker.AddEntry(ctx, user, book, 0, 12.5)
	if err != nil {
		t.Fatalf("AddEntry uncategorized: %v", err)
	}
	if entry.Kind != model.ExpenseCategory || entry.CategoryID != 0 {
		t.Fatalf("uncategorized entry = %+v, want expense kind", entry)
	}

	entry, err = tracker.AddEntry(ctx, user, book, salary.ID, 1000)
	if err != nil {
		t.Fatalf("AddEntry income: %v", err)
	}
	if entry.Kind != model.IncomeCategory {
		t.Fatalf("entry kind = %q, want income", entry.Kind)
	}

	if _, err := tracker.AddEntry(ctx, user, book, 9999, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown category = %v, want ErrNotFound", err)
	}
}
