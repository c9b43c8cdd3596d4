// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the storage layer.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/model"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/repository"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/tz"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingsZone is the fixed zone bookings are displayed in.
const BookingsZone = "Asia/Kolkata"

// ClassStore reads classes.
type ClassStore interface {
	List(ctx context.Context) ([]model.Class, error)
	GetByID(ctx context.Context, id int64) (*model.Class, error)
}

// BookingStore records and queries bookings. Book must take one slot from
// the class and persist the booking atomically, returning
// repository.ErrClassNotFound or repository.ErrNoSlotsAvailable with no
// changes applied when it cannot.
type BookingStore interface {
	Book(ctx context.Context, b *model.Booking) error
	ListByEmail(ctx context.Context, email string) ([]model.BookingDetail, error)
}

// BookingService orchestrates class listing and booking.
type BookingService struct {
	classes     ClassStore
	bookings    BookingStore
	defaultZone string
	validate    *validator.Validate
	log         *zap.Logger
}

// NewBookingService constructs a BookingService. defaultZone is used by
// ListClasses when the caller passes no zone.
func NewBookingService(classes ClassStore, bookings BookingStore, defaultZone string, log *zap.Logger) *BookingService {
	if defaultZone == "" {
		defaultZone = tz.DefaultZone
	}
	return &BookingService{
		classes:     classes,
		bookings:    bookings,
		defaultZone: defaultZone,
		validate:    validator.New(),
		log:         log,
	}
}

// ListClasses returns every class with its start time rendered in zone.
// An unknown zone is returned as an internal error.
func (s *BookingService) ListClasses(ctx context.Context, zone string) ([]model.ClassView, error) {
	if zone == "" {
		zone = s.defaultZone
	}

	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	views := make([]model.ClassView, 0, len(classes))
	for _, c := range classes {
		when, err := tz.Format(c.StartsAt, zone)
		if err != nil {
			return nil, err
		}
		views = append(views, model.ClassView{
			ID:             c.ID,
			Name:           c.Name,
			Datetime:       when,
			Instructor:     c.Instructor,
			AvailableSlots: c.Slots,
		})
	}
	return views, nil
}

// GetClass returns a single class by id.
func (s *BookingService) GetClass(ctx context.Context, id int64) (*model.Class, error) {
	c, err := s.classes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClassNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("get class: %w", err)
	}
	return c, nil
}

// Book validates the request and delegates the slot-taking write to the
// store. Failures are not retried.
func (s *BookingService) Book(ctx context.Context, req model.BookRequest) (*model.BookingReceipt, error) {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, &ValidationError{Message: MsgMissingFields}
		}
		return nil, fmt.Errorf("validate booking request: %w", err)
	}

	b := &model.Booking{
		Reference:   uuid.New().String(),
		ClassID:     *req.ClassID,
		ClientName:  *req.ClientName,
		ClientEmail: *req.ClientEmail,
	}

	if err := s.bookings.Book(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrClassNotFound):
			s.log.Debug("booking rejected: class not found", zap.Int64("class_id", b.ClassID))
			return nil, ErrClassNotFound
		case errors.Is(err, repository.ErrNoSlotsAvailable):
			s.log.Debug("booking rejected: class full", zap.Int64("class_id", b.ClassID))
			return nil, ErrNoSlotsAvailable
		}
		return nil, fmt.Errorf("book class: %w", err)
	}

	s.log.Info("class booked",
		zap.Int64("booking_id", b.ID),
		zap.String("reference", b.Reference),
		zap.Int64("class_id", b.ClassID),
	)

	return &model.BookingReceipt{
		BookingID: b.ID,
		Reference: b.Reference,
		ClassID:   b.ClassID,
	}, nil
}

// ListBookings returns the bookings made with email, matched exactly.
func (s *BookingService) ListBookings(ctx context.Context, email string) ([]model.BookingView, error) {
	if email == "" {
		return nil, &ValidationError{Message: MsgEmailRequired}
	}

	details, err := s.bookings.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	views := make([]model.BookingView, 0, len(details))
	for _, d := range details {
		when, err := tz.Format(d.ClassStart, BookingsZone)
		if err != nil {
			return nil, err
		}
		views = append(views, model.BookingView{
			BookingID:    d.BookingID,
			ClassName:    d.ClassName,
			ClassTimeIST: when,
		})
	}
	return views, nil
}
