package service

import (
	"context"
	"time"

	"beworking/internal/entities"
	httperrors "beworking/internal/errors"
	"beworking/internal/repository"
)

// AdminBooking is a booking as seen by the front desk, with its owner.
type AdminBooking struct {
	entities.BookingResponse
	UserID int64 `json:"userId"`
}

type AdminService struct {
	bookings repository.BookingRepository
	mailbox  MailboxService
}

func NewAdminService(bookings repository.BookingRepository, mailbox MailboxService) *AdminService {
	return &AdminService{bookings: bookings, mailbox: mailbox}
}

// ListBookings returns every tenant's bookings on date, grouped by product.
func (s *AdminService) ListBookings(ctx context.Context, date string) ([]AdminBooking, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, httperrors.ErrBadRequest("date must be a date in YYYY-MM-DD format")
	}
	bookings, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	resp := make([]AdminBooking, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, AdminBooking{BookingResponse: toBookingResponse(b), UserID: b.UserID})
	}
	return resp, nil
}

func (s *AdminService) RecordDelivery(ctx context.Context, req entities.MailboxDeliveryRequest) (*entities.MailboxItemResponse, error) {
	return s.mailbox.Deliver(ctx, req)
}
