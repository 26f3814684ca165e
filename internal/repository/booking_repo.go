package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"beworking/internal/db"

	"github.com/lib/pq"
)

// ErrBookingOverlap is returned by Create when the bookings_no_overlap constraint
// rejects the row because another booking of the same product overlaps it.
var ErrBookingOverlap = errors.New("booking overlaps an existing reservation")

const exclusionViolation = pq.ErrorCode("23P01")

const bookingColumns = `
	b.id, b.user_id, b.product,
	to_char(b.date, 'YYYY-MM-DD'),
	to_char(b.start_hour, 'HH24:MI'),
	to_char(b.end_hour, 'HH24:MI'),
	b.attendees, b.created_at`

type BookingRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]db.Booking, error)
	ListByDateAndProduct(ctx context.Context, date, product string) ([]db.Booking, error)
	ListByDate(ctx context.Context, date string) ([]db.Booking, error)
	Create(ctx context.Context, booking *db.Booking) error
	DeleteByIDAndUser(ctx context.Context, id, userID int64) error
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int64) ([]db.Booking, error) {
	query := "SELECT" + bookingColumns + `
		FROM bookings b
		WHERE b.user_id = $1
		ORDER BY b.date, b.start_hour`
	return r.list(ctx, query, userID)
}

func (r *bookingRepository) ListByDateAndProduct(ctx context.Context, date, product string) ([]db.Booking, error) {
	query := "SELECT" + bookingColumns + `
		FROM bookings b
		WHERE b.date = $1::date AND b.product = $2
		ORDER BY b.start_hour`
	return r.list(ctx, query, date, product)
}

func (r *bookingRepository) ListByDate(ctx context.Context, date string) ([]db.Booking, error) {
	query := "SELECT" + bookingColumns + `
		FROM bookings b
		WHERE b.date = $1::date
		ORDER BY b.product, b.start_hour`
	return r.list(ctx, query, date)
}

func (r *bookingRepository) Create(ctx context.Context, booking *db.Booking) error {
	query := `
		INSERT INTO bookings (user_id, product, date, start_hour, end_hour, attendees)
		VALUES ($1, $2, $3::date, $4::time, $5::time, $6)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		booking.UserID,
		booking.Product,
		booking.Date,
		booking.StartHour,
		booking.EndHour,
		booking.Attendees,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return insertBookingError(err)
	}
	return nil
}

func insertBookingError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == exclusionViolation {
		return fmt.Errorf("%w: %s", ErrBookingOverlap, pqErr.Constraint)
	}
	return fmt.Errorf("error inserting booking: %w", err)
}

func (r *bookingRepository) DeleteByIDAndUser(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting booking %d: %w", id, err)
	}
	return expectAffected(result, fmt.Sprintf("booking %d", id))
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]db.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	bookings := []db.Booking{}
	for rows.Next() {
		var b db.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.Product, &b.Date, &b.StartHour, &b.EndHour, &b.Attendees, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}
