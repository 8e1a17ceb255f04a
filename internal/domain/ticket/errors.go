package ticket

import "errors"

var (
	// ErrNotFound is returned by repositories when no ticket matches.
	ErrNotFound = errors.New("ticket not found")
	// ErrInvalidTicket wraps every field validation failure.
	ErrInvalidTicket = errors.New("invalid ticket")
	// ErrInvalidMessage wraps every message validation failure.
	ErrInvalidMessage = errors.New("invalid message")
)
