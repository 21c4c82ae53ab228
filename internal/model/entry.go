package model

import "time"

// Entry is a single recorded amount. CategoryID 0 means uncategorized. The
// creation time is decomposed into year/month/day at insert so reports can
// aggregate without date arithmetic.
type Entry struct {
	ID         int64
	UserID     int64
	BookID     int64
	CategoryID int64
	Kind       CategoryKind
	Amount     float64
	Year       int
	Month      int
	Day        int
	Created    time.Time
	Deleted    bool
}

// NewEntry fills the date decomposition from created.
func NewEntry(userID, bookID, categoryID int64, kind CategoryKind, amount float64, created time.Time) *Entry {
	return &Entry{
		UserID:     userID,
		BookID:     bookID,
		CategoryID: categoryID,
		Kind:       kind,
		Amount:     amount,
		Year:       created.Year(),
		Month:      int(created.Month()),
		Day:        created.Day(),
		Created:    created,
	}
}
