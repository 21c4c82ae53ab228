package model

// User is created on first contact and never deleted. ActiveBookID is a
// reference only; whether it still resolves to a usable book is decided by
// the service layer on every turn.
type User struct {
	ID           int64
	Username     string
	FullName     string
	Language     string
	ActiveBookID int64
}
