// Package memstore is an in-memory implementation of the class and booking
// stores. It backs STORAGE=memory and the handler and service tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/model"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/repository"
)

type classEntry struct {
	mu    sync.Mutex // guards class.Slots
	class model.Class
}

// Store keeps classes and bookings in memory. Each class has its own lock, so
// bookings against different classes never wait on one another.
//
// Lock order is Store.mu before classEntry.mu, and classEntry.mu before
// bookingMu. Store.mu and bookingMu are never held together.
type Store struct {
	mu      sync.RWMutex // guards classes, order, nextCID
	classes map[int64]*classEntry
	order   []int64
	nextCID int64

	bookingMu sync.Mutex // guards bookings, nextBID
	bookings  []model.Booking
	nextBID   int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{classes: make(map[int64]*classEntry)}
}

// Create inserts a class and fills in its generated id.
func (s *Store) Create(_ context.Context, c *model.Class) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCID++
	c.ID = s.nextCID
	c.StartsAt = c.StartsAt.UTC().Truncate(time.Second)
	s.classes[c.ID] = &classEntry{class: *c}
	s.order = append(s.order, c.ID)
	return nil
}

// Count returns the number of stored classes.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// List returns all classes in insertion order.
func (s *Store) List(_ context.Context) ([]model.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	classes := make([]model.Class, 0, len(s.order))
	for _, id := range s.order {
		classes = append(classes, s.classes[id].snapshot())
	}
	return classes, nil
}

// GetByID returns a single class or repository.ErrClassNotFound.
func (s *Store) GetByID(_ context.Context, id int64) (*model.Class, error) {
	s.mu.RLock()
	e, ok := s.classes[id]
	s.mu.RUnlock()
	if !ok {
		return nil, repository.ErrClassNotFound
	}
	c := e.snapshot()
	return &c, nil
}

// Book decrements the class's slots and appends the booking while holding the
// class lock, so the check and the decrement cannot interleave with another
// booking for the same class.
func (s *Store) Book(_ context.Context, b *model.Booking) error {
	s.mu.RLock()
	e, ok := s.classes[b.ClassID]
	s.mu.RUnlock()
	if !ok {
		return repository.ErrClassNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.class.Slots <= 0 {
		return repository.ErrNoSlotsAvailable
	}
	e.class.Slots--

	s.bookingMu.Lock()
	s.nextBID++
	b.ID = s.nextBID
	b.CreatedAt = time.Now().UTC()
	s.bookings = append(s.bookings, *b)
	s.bookingMu.Unlock()

	return nil
}

// ListByEmail returns every booking made with the exact email, joined with
// its class, in booking order.
func (s *Store) ListByEmail(_ context.Context, email string) ([]model.BookingDetail, error) {
	var matched []model.Booking
	s.bookingMu.Lock()
	for _, b := range s.bookings {
		if b.ClientEmail == email {
			matched = append(matched, b)
		}
	}
	s.bookingMu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var details []model.BookingDetail
	for _, b := range matched {
		// Name and StartsAt never change after Create; no class lock needed.
		e := s.classes[b.ClassID]
		details = append(details, model.BookingDetail{
			BookingID:  b.ID,
			ClassName:  e.class.Name,
			ClassStart: e.class.StartsAt,
		})
	}
	return details, nil
}

func (e *classEntry) snapshot() model.Class {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.class
}
