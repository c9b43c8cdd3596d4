// Package repository implements all database queries for the class booking system.
// It uses pgx directly (no ORM).
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/model"
	"github.com/Shivanand-hulikatti/fitness-class-booking/internal/tz"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrClassNotFound is returned when the referenced class does not exist.
var ErrClassNotFound = errors.New("class not found")

// ErrNoSlotsAvailable is returned when a class has no remaining slots.
var ErrNoSlotsAvailable = errors.New("no slots available")

// ClassRepository handles persistence for classes.
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a class and fills in its generated id.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO classes (name, instructor, datetime_utc, slots)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		c.Name, c.Instructor, tz.FormatUTC(c.StartsAt), c.Slots,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert class: %w", err)
	}
	return nil
}

// Count returns the number of stored classes.
func (r *ClassRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM classes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return n, nil
}

// List returns all classes in insertion order.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, instructor, datetime_utc, slots
		 FROM classes
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, *c)
	}
	return classes, rows.Err()
}

// GetByID returns a single class or ErrClassNotFound.
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*model.Class, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, instructor, datetime_utc, slots
		 FROM classes WHERE id = $1`,
		id,
	)
	c, err := scanClass(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return c, nil
}

func scanClass(row pgx.Row) (*model.Class, error) {
	var (
		c        model.Class
		startUTC string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Instructor, &startUTC, &c.Slots); err != nil {
		return nil, fmt.Errorf("scan class: %w", err)
	}
	start, err := tz.ParseUTC(startUTC)
	if err != nil {
		return nil, err
	}
	c.StartsAt = start
	return &c, nil
}

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Book takes one slot from the class and records the booking in a single
// transaction.
//
// The slot check and the decrement are the same statement:
//
//	UPDATE classes SET slots = slots - 1 WHERE id = $1 AND slots > 0
//
// The UPDATE takes a row lock on the class, so concurrent bookings for the
// same class queue behind each other and each re-evaluates slots > 0 against
// the committed value. Bookings for other classes touch other rows and do not
// wait. If no row was updated the class is either missing or full, and the
// transaction is rolled back with nothing written.
func (r *BookingRepository) Book(ctx context.Context, b *model.Booking) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx,
		`UPDATE classes SET slots = slots - 1
		 WHERE id = $1 AND slots > 0`,
		b.ClassID,
	)
	if err != nil {
		return fmt.Errorf("decrement slots: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM classes WHERE id = $1)`,
			b.ClassID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check class: %w", err)
		}
		if !exists {
			err = ErrClassNotFound
			return err
		}
		err = ErrNoSlotsAvailable
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (reference, class_id, client_name, client_email)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		b.Reference, b.ClassID, b.ClientName, b.ClientEmail,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListByEmail returns every booking made with the exact email, joined with
// its class, in booking order.
func (r *BookingRepository) ListByEmail(ctx context.Context, email string) ([]model.BookingDetail, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, c.name, c.datetime_utc
		 FROM bookings b
		 JOIN classes c ON b.class_id = c.id
		 WHERE b.client_email = $1
		 ORDER BY b.id`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var details []model.BookingDetail
	for rows.Next() {
		var (
			d        model.BookingDetail
			startUTC string
		)
		if err := rows.Scan(&d.BookingID, &d.ClassName, &startUTC); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		if d.ClassStart, err = tz.ParseUTC(startUTC); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
