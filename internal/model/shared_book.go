package model

import "time"

// SharedBook is a revocable grant linking a non-owner to a book. Rows are
// returned joined with the book so callers can render title/currency without
// a second lookup.
type SharedBook struct {
	ID       int64
	UserID   int64
	BookID   int64
	OwnerID  int64
	BookUID  string
	Title    string
	Currency string
	Created  time.Time
	Disabled bool
	Deleted  bool
}
