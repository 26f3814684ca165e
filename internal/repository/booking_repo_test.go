package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestInsertBookingError(t *testing.T) {
	overlap := &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"}

	err := insertBookingError(overlap)
	assert.ErrorIs(t, err, ErrBookingOverlap)
	assert.Contains(t, err.Error(), "bookings_no_overlap")

	assert.ErrorIs(t, insertBookingError(fmt.Errorf("scan: %w", overlap)), ErrBookingOverlap)

	fk := &pq.Error{Code: "23503", Constraint: "bookings_user_id_fkey"}
	err = insertBookingError(fk)
	assert.NotErrorIs(t, err, ErrBookingOverlap)
	assert.ErrorIs(t, err, fk)

	err = insertBookingError(errors.New("connection reset"))
	assert.NotErrorIs(t, err, ErrBookingOverlap)
	assert.EqualError(t, err, "error inserting booking: connection reset")
}
