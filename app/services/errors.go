package services

import "errors"

// Sentinel errors services return so controllers can map them to HTTP
// statuses without inspecting strings.
var (
	// ErrNotFound means the entity does not exist, or exists but is not
	// visible to the requester. The two cases are deliberately
	// indistinguishable to avoid leaking other users' resource IDs.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the entity exists and is visible, but the
	// requester does not own it.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCode means the verification code did not match or expired.
	ErrInvalidCode = errors.New("invalid or expired verification code")

	// ErrTooManyRequests means a resend was attempted inside the throttle
	// window.
	ErrTooManyRequests = errors.New("too many requests")
)
