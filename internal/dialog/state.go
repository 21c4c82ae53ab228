package dialog

import "github.com/avbelov/countbook/internal/model"

// Dialog steps. The step names the screen the user is on; the state data
// carries the flow's accumulated inputs.
const (
	stepBooksList          = "books/list"
	stepBooksActions       = "books/actions"
	stepBooksSharedActions = "books/shared_actions"
	stepBooksTitle         = "books/title"
	stepBooksCurrency      = "books/currency"
	stepBooksImport        = "books/import_categories"
	stepBooksCategoryKind  = "books/category_kind"
	stepBooksCategory      = "books/category"
	stepBooksCategoryTitle = "books/category_title"
	stepBooksMembers       = "books/members"

	stepEntryCategory = "entries/category"

	stepReportsYear  = "reports/year"
	stepReportsMonth = "reports/month"
	stepReportsDay   = "reports/day"

	stepSettingsMenu     = "settings/menu"
	stepSettingsLanguage = "settings/language"
)

// Sentinel option values shared across flows. Category and book options use
// bare decimal ids, so the sentinels keep the leading slash.
const (
	optionBack       = "/back"
	optionSubmit     = "/submit"
	optionAdd        = "/add"
	optionTitle      = "/title"
	optionCurrency   = "/currency"
	optionCategories = "/categories"
	optionMembers    = "/members"
	optionRemove     = "/remove"
	optionJoin       = "/join"
	optionDisconnect = "/disconnect"
	optionLanguage   = "/language"
	optionYes        = "/yes"
	optionNo         = "/no"
)

// BooksData accumulates the /books flow. Creating distinguishes the add-book
// path from editing on the shared title and currency steps. CategoryID is the
// node being renamed on the category-title step (0 means creating under
// ParentID).
type BooksData struct {
	BookID     int64              `json:"book_id,omitempty"`
	SharedID   int64              `json:"shared_id,omitempty"`
	Creating   bool               `json:"creating,omitempty"`
	Title      string             `json:"title,omitempty"`
	Currency   string             `json:"currency,omitempty"`
	Kind       model.CategoryKind `json:"kind,omitempty"`
	ParentID   int64              `json:"parent_id,omitempty"`
	CategoryID int64              `json:"category_id,omitempty"`
}

// EntryData accumulates the amount-entry flow. CategoryID is the currently
// open tree node (0 is the virtual root spanning both trees).
type EntryData struct {
	Amount     float64 `json:"amount"`
	CategoryID int64   `json:"category_id,omitempty"`
}

// ReportData accumulates a report drill-down. Scope is the period the user
// asked for ("year", "month" or "day").
type ReportData struct {
	Scope string `json:"scope"`
	Year  int    `json:"year,omitempty"`
	Month int    `json:"month,omitempty"`
}

// State is one user's dialog position. An empty Step means idle; Save then
// removes the row.
type State struct {
	Step   string      `json:"-"`
	Books  *BooksData  `json:"books,omitempty"`
	Entry  *EntryData  `json:"entry,omitempty"`
	Report *ReportData `json:"report,omitempty"`
}

// Clear resets the state to idle.
func (s *State) Clear() {
	*s = State{}
}

func (s *State) enterBooks(step string) *BooksData {
	if s.Books == nil {
		s.Books = &BooksData{}
	}
	s.Step = step
	return s.Books
}
