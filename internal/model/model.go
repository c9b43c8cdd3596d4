// Package model defines the core domain types for the class booking system.
package model

import "time"

// Class is a scheduled fitness session with a finite number of slots.
type Class struct {
	ID         int64
	Name       string
	Instructor string
	StartsAt   time.Time // always UTC
	Slots      int
}

// HasSlots reports whether at least one slot remains.
func (c *Class) HasSlots() bool {
	return c.Slots > 0
}

// Booking is a client's reservation against one class.
type Booking struct {
	ID          int64
	Reference   string
	ClassID     int64
	ClientName  string
	ClientEmail string
	CreatedAt   time.Time
}

// BookingDetail is a booking joined with the class it references.
type BookingDetail struct {
	BookingID  int64
	ClassName  string
	ClassStart time.Time
}

// BookingReceipt is returned to the caller after a successful booking.
type BookingReceipt struct {
	BookingID int64
	Reference string
	ClassID   int64
}

// ClassView is the JSON shape of a class on GET /classes.
type ClassView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Datetime       string `json:"datetime"`
	Instructor     string `json:"instructor"`
	AvailableSlots int    `json:"available_slots"`
}

// BookingView is the JSON shape of a booking on GET /bookings.
type BookingView struct {
	BookingID    int64  `json:"booking_id"`
	ClassName    string `json:"class_name"`
	ClassTimeIST string `json:"class_time_IST"`
}

// BookRequest is the payload for POST /book. Pointers distinguish an absent
// field from its zero value.
type BookRequest struct {
	ClassID     *int64  `json:"class_id" validate:"required"`
	ClientName  *string `json:"client_name" validate:"required"`
	ClientEmail *string `json:"client_email" validate:"required"`
}

// MessageResponse is the success envelope for write operations.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BookingResult summarises the outcome of a single booking attempt.
// Used by the concurrent booking tests.
type BookingResult struct {
	ClientEmail string
	Success     bool
	Error       error
}
