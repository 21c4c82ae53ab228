package service

import "errors"

// Sentinel errors the dialog layer maps onto user-facing responses. Anything
// else that comes out of the service is a storage failure and is surfaced as
// a generic one.
var (
	// ErrNotFound covers both "does not exist" and "not yours": the two are
	// never distinguished on the wire.
	ErrNotFound = errors.New("not found")

	// ErrAccessDisabled marks a shared grant that the owner has disabled.
	ErrAccessDisabled = errors.New("shared access disabled")

	ErrDuplicateTitle = errors.New("duplicate title")
	ErrTitleTooShort  = errors.New("title too short")
	ErrTitleTooLong   = errors.New("title too long")
	ErrTitleReserved  = errors.New("title starts with reserved prefix")
	ErrZeroAmount     = errors.New("zero amount")
)
