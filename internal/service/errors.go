package service

import "errors"

// Client-facing messages.
const (
	MsgMissingFields  = "Missing fields"
	MsgEmailRequired  = "Email required"
	MsgClassNotFound  = "Class not found"
	MsgNoSlots        = "No slots available"
	MsgInternalFailed = "Internal server error"
)

var (
	// ErrClassNotFound is returned when a booking references a missing class.
	ErrClassNotFound = errors.New(MsgClassNotFound)
	// ErrNoSlotsAvailable is returned when the class is fully booked.
	ErrNoSlotsAvailable = errors.New(MsgNoSlots)
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
