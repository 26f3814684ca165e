package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beworking/internal/availability"
	"beworking/internal/db"
	"beworking/internal/entities"
	httperrors "beworking/internal/errors"
	"beworking/internal/repository"
	"beworking/internal/utils"

	"go.uber.org/zap"
)

const bookingConfirmed = "confirmed"

type BookingService interface {
	List(ctx context.Context, userID int64) ([]entities.BookingResponse, error)
	Availability(ctx context.Context, date, product string) (*entities.AvailabilityResponse, error)
	Create(ctx context.Context, userID int64, req entities.BookingRequest) (*entities.BookingCreatedResponse, error)
	Delete(ctx context.Context, userID, bookingID int64) error
}

type bookingService struct {
	bookings repository.BookingRepository
	users    repository.UserRepository
	sender   *SenderService
	log      *zap.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewBookingService decides "today" from now in loc.
func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	sender *SenderService,
	log *zap.Logger,
	loc *time.Location,
	now func() time.Time,
) BookingService {
	return &bookingService{bookings: bookings, users: users, sender: sender, log: log, loc: loc, now: now}
}

func (s *bookingService) List(ctx context.Context, userID int64) ([]entities.BookingResponse, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]entities.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(b))
	}
	return resp, nil
}

func (s *bookingService) Availability(ctx context.Context, date, product string) (*entities.AvailabilityResponse, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, httperrors.ErrBadRequest("date must be a date in YYYY-MM-DD format")
	}
	product = utils.CanonicalProduct(product)
	if product == "" {
		product = availability.MeetingRoom
	}

	existing, err := s.bookings.ListByDateAndProduct(ctx, date, product)
	if err != nil {
		return nil, err
	}
	reservations := toReservations(existing)

	resp := &entities.AvailabilityResponse{
		Date: date,
		Rooms: []entities.RoomAvailability{{
			Room:   product,
			Booked: availability.OccupiedSlots(reservations, date, product).Labels(),
		}},
		Options: []string{},
	}
	if utils.UsesSlotGrid(product) {
		resp.Options = availability.AvailableStartEndOptions(reservations, date, product, availability.Grid(), s.now().In(s.loc))
	}
	return resp, nil
}

func (s *bookingService) Create(ctx context.Context, userID int64, req entities.BookingRequest) (*entities.BookingCreatedResponse, error) {
	req.Product = utils.CanonicalProduct(req.Product)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, httperrors.ErrBadRequest(utils.ValidationMessage(err))
	}

	start, _ := availability.ParseTimeToMinutes(req.StartHour)
	end, _ := availability.ParseTimeToMinutes(req.EndHour)
	if start >= end {
		return nil, httperrors.ErrBadRequest("End time must be after start time")
	}
	if start < 0 || end > 24*60 {
		return nil, httperrors.ErrBadRequest("Booking times must fall within a single day")
	}
	if utils.UsesSlotGrid(req.Product) && (start < availability.GridFirstMinute || end > availability.GridLastMinute) {
		return nil, httperrors.ErrBadRequest(fmt.Sprintf("%s bookings must be between %s and %s", req.Product,
			availability.FormatMinutes(availability.GridFirstMinute), availability.FormatMinutes(availability.GridLastMinute)))
	}

	now := s.now().In(s.loc)
	day, _ := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if day.Before(today) {
		return nil, httperrors.ErrBadRequest("Booking date cannot be in the past")
	}
	if day.Equal(today) {
		startsAt := time.Date(now.Year(), now.Month(), now.Day(), 0, start, 0, 0, s.loc)
		if startsAt.Before(now.Add(availability.Buffer)) {
			return nil, httperrors.ErrBadRequest(fmt.Sprintf(
				"Bookings for today must start at least %d minutes from now", int(availability.Buffer.Minutes())))
		}
	}

	existing, err := s.bookings.ListByDateAndProduct(ctx, req.Date, req.Product)
	if err != nil {
		return nil, err
	}
	startHour, endHour := availability.FormatMinutes(start), availability.FormatMinutes(end)
	if availability.HasConflict(toReservations(existing), req.Date, req.Product, startHour, endHour) {
		return nil, httperrors.ErrConflict("Booking conflicts with an existing reservation")
	}

	booking := &db.Booking{
		UserID:    userID,
		Product:   req.Product,
		Date:      req.Date,
		StartHour: startHour,
		EndHour:   endHour,
		Attendees: req.Attendees,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrBookingOverlap) {
			s.log.Info("booking rejected by overlap constraint",
				zap.Int64("user_id", userID), zap.String("date", req.Date), zap.String("product", req.Product))
			return nil, httperrors.ErrConflict("Booking conflicts with an existing reservation")
		}
		return nil, err
	}
	s.log.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
		zap.String("product", booking.Product),
		zap.String("date", booking.Date),
		zap.String("start", booking.StartHour),
		zap.String("end", booking.EndHour),
	)

	if user, err := s.users.GetByID(ctx, userID); err != nil {
		s.log.Warn("booking saved but the tenant could not be loaded for notification",
			zap.Int64("booking_id", booking.ID), zap.Error(err))
	} else {
		s.sender.SendBookingConfirmation(*user, *booking, bookingConfirmed)
	}

	return &entities.BookingCreatedResponse{ID: booking.ID, Message: "Booking created successfully"}, nil
}

func (s *bookingService) Delete(ctx context.Context, userID, bookingID int64) error {
	err := s.bookings.DeleteByIDAndUser(ctx, bookingID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return httperrors.ErrNotFound("Booking not found")
	}
	return err
}

func toReservations(bookings []db.Booking) []availability.Reservation {
	res := make([]availability.Reservation, 0, len(bookings))
	for _, b := range bookings {
		res = append(res, availability.Reservation{
			ID:            b.ID,
			ResourceName:  b.Product,
			Date:          b.Date,
			StartTime:     b.StartHour,
			EndTime:       b.EndHour,
			AttendeeCount: b.Attendees,
		})
	}
	return res
}

func toBookingResponse(b db.Booking) entities.BookingResponse {
	return entities.BookingResponse{
		ID:        b.ID,
		Product:   b.Product,
		Date:      b.Date,
		StartHour: b.StartHour,
		EndHour:   b.EndHour,
		Attendees: b.Attendees,
	}
}
