package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stayloop/hotel-bookings/internal/domain"
	"github.com/stayloop/hotel-bookings/internal/repo/postgres"
	"github.com/stayloop/hotel-bookings/pkg/events"
	"github.com/stayloop/hotel-bookings/pkg/logger"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error)
	ListMyBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAllBookings(ctx context.Context) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, id, actorID int64, patch domain.BookingPatch) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id, actorID int64) error
}

type bookingService struct {
	bookingRepo postgres.BookingRepository
	userRepo    postgres.UserRepository
	eventBus    events.Publisher
}

func NewBookingService(
	bookingRepo postgres.BookingRepository,
	userRepo postgres.UserRepository,
	eventBus events.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		eventBus:    eventBus,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	booking, err := s.bookingRepo.Create(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	event := events.BookingCreatedEvent{
		BookingID:    booking.ID,
		UserID:       user.ID,
		UserEmail:    user.Email,
		UserPseudo:   user.Pseudo,
		HotelID:      booking.HotelID,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		Guests:       booking.Guests,
		CreatedAt:    booking.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) ListAllBookings(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBooking applies a partial update. Only the owner may mutate a
// booking; admins get no override here even though they can list everything.
func (s *bookingService) UpdateBooking(ctx context.Context, id, actorID int64, patch domain.BookingPatch) (*domain.Booking, error) {
	existing, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if existing.UserID != actorID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.bookingRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}

	event := events.BookingUpdatedEvent{
		BookingID: updated.ID,
		UserID:    updated.UserID,
		UpdatedAt: updated.UpdatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.BookingUpdated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking updated event", "error", err, "booking_id", updated.ID)
	}

	return updated, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id, actorID int64) error {
	existing, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if existing.UserID != actorID {
		return domain.ErrForbidden
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return err
	}

	event := events.BookingCanceledEvent{
		BookingID:  existing.ID,
		UserID:     existing.UserID,
		CanceledAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.BookingCanceled, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking canceled event", "error", err, "booking_id", existing.ID)
	}

	return nil
}
