package model

import "time"

// Book is a currency-tagged container for categories and entries. UID is the
// unguessable join token shared via the /join command.
type Book struct {
	ID       int64
	UserID   int64
	UID      string
	Title    string
	Currency string
	Created  time.Time
	Deleted  bool
}
