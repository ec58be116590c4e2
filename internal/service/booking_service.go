package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AleXx313/shareit/internal/apperr"
	"github.com/AleXx313/shareit/internal/database"
	"github.com/AleXx313/shareit/internal/domain"
	"github.com/AleXx313/shareit/internal/metrics"
	"github.com/AleXx313/shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewBookingService(repo domain.Repository, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:   repo,
		logger: logger,
	}
}

// Create files a new booking in WAITING status. The caller-supplied
// window is re-checked here regardless of transport-layer validation.
func (s *BookingService) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.Booking, error) {
	if !end.After(start) {
		return nil, apperr.InvalidRequest("booking end must be after its start")
	}

	if _, err := s.repo.GetUserByID(ctx, bookerID); err != nil {
		return nil, userErr(err, bookerID)
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, itemErr(err, itemID)
	}
	if item.OwnerID == bookerID {
		return nil, apperr.InvalidOperation("cannot book your own item")
	}
	if !item.Available {
		return nil, apperr.InvalidRequest("item %q with id %d is not available for booking", item.Name, item.ID)
	}

	booking := &models.Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Start:    start,
		End:      end,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.IncBookingCreated()
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", itemID).
		Int64("booker_id", bookerID).
		Msg("booking created")

	return s.repo.GetBooking(ctx, booking.ID)
}

// Decide applies the owner's approval or rejection. Only the item's
// owner may decide; anyone else gets a not-found answer so that booking
// ids cannot be probed. An approved booking is terminal; a repeated
// rejection is a no-op.
func (s *BookingService) Decide(ctx context.Context, bookingID, actingUserID int64, approve bool) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, bookingErr(err, bookingID)
	}

	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, itemErr(err, booking.ItemID)
	}
	if item.OwnerID != actingUserID {
		return nil, apperr.NotFound("booking with id %d not found", bookingID)
	}

	if booking.Status == models.StatusApproved {
		return nil, apperr.InvalidOperation("booking with id %d is already approved", bookingID)
	}

	target := models.StatusRejected
	if approve {
		target = models.StatusApproved
	}
	if booking.Status == target {
		return booking, nil
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, booking.Status, target); err != nil {
		if errors.Is(err, database.ErrStatusConflict) {
			return nil, apperr.Conflict("booking with id %d was decided concurrently", bookingID)
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	outcome := "rejected"
	if approve {
		outcome = "approved"
	}
	metrics.IncBookingDecision(outcome)
	s.logger.Info().
		Int64("booking_id", bookingID).
		Int64("owner_id", actingUserID).
		Str("status", target).
		Msg("booking decided")

	return s.repo.GetBooking(ctx, bookingID)
}

// GetByID returns a booking to its booker or to the item's owner;
// everyone else gets a not-found answer.
func (s *BookingService) GetByID(ctx context.Context, bookingID, requestingUserID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, bookingErr(err, bookingID)
	}

	item, err := s.repo.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, itemErr(err, booking.ItemID)
	}
	if booking.BookerID != requestingUserID && item.OwnerID != requestingUserID {
		return nil, apperr.NotFound("booking with id %d not found", bookingID)
	}
	return booking, nil
}

func (s *BookingService) ListByBooker(ctx context.Context, userID int64, state string, from, size int) ([]models.Booking, error) {
	listState, err := s.listPreconditions(ctx, userID, state, from, size)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.GetBookingsByBooker(ctx, userID, listState, time.Now(), from, size)
	if err != nil {
		return nil, fmt.Errorf("list bookings by booker: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) ListByOwner(ctx context.Context, userID int64, state string, from, size int) ([]models.Booking, error) {
	listState, err := s.listPreconditions(ctx, userID, state, from, size)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.GetBookingsByOwner(ctx, userID, listState, time.Now(), from, size)
	if err != nil {
		return nil, fmt.Errorf("list bookings by owner: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) listPreconditions(ctx context.Context, userID int64, state string, from, size int) (models.ListState, error) {
	if err := validatePaging(from, size); err != nil {
		return "", err
	}

	listState := models.ListState(state)
	if state == "" {
		listState = models.StateAll
	}
	if !listState.Known() {
		return "", apperr.InvalidRequest("Unknown state: %s", state)
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("check user existence: %w", err)
	}
	if !exists {
		return "", apperr.NotFound("user with id %d not found", userID)
	}
	return listState, nil
}
