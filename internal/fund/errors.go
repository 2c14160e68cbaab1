package fund

import "errors"

var (
	// ErrNotFound reports a mutation against an id the backend no longer has.
	ErrNotFound = errors.New("not found")

	// ErrUnknownPhone is the login failure for a phone number with no member.
	ErrUnknownPhone = errors.New("invalid phone number")
)
