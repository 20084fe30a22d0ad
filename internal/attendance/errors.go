package attendance

import "errors"

// Business-rule rejections. These are user-facing outcomes, never retried and
// never fatal; anything else coming out of the store is a storage failure and
// propagates as-is.
var (
	ErrWindowClosed      = errors.New("attendance window is closed")
	ErrAlreadyCheckedIn  = errors.New("participant already checked in")
	ErrAlreadyCheckedOut = errors.New("participant already checked out")
	ErrNotCheckedIn      = errors.New("participant has not checked in")
	ErrCodeRequired      = errors.New("security code is required for minors")
	ErrInvalidCode       = errors.New("invalid security code")
)
