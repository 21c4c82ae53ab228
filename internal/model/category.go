package model

// CategoryKind splits every book into two disjoint category trees.
type CategoryKind string

const (
	ExpenseCategory CategoryKind = "expense"
	IncomeCategory  CategoryKind = "income"
)

// Category is a node in a per-book, per-kind tree. ParentID 0 means root.
type Category struct {
	ID       int64
	BookID   int64
	ParentID int64
	Kind     CategoryKind
	Title    string
	Deleted  bool
}
