package service

import (
	"context"
	"fmt"

	"github.com/stayloop/hotel-bookings/internal/domain"
	"github.com/stayloop/hotel-bookings/internal/repo/postgres"
)

type HotelService interface {
	CreateHotel(ctx context.Context, req *domain.CreateHotelRequest) (*domain.Hotel, error)
	GetHotel(ctx context.Context, id int64) (*domain.Hotel, error)
	ListHotels(ctx context.Context) ([]domain.Hotel, error)
	UpdateHotel(ctx context.Context, id int64, patch domain.HotelPatch) (*domain.Hotel, error)
	DeleteHotel(ctx context.Context, id int64) error
}

type hotelService struct {
	hotelRepo postgres.HotelRepository
}

func NewHotelService(hotelRepo postgres.HotelRepository) HotelService {
	return &hotelService{hotelRepo: hotelRepo}
}

func (s *hotelService) CreateHotel(ctx context.Context, req *domain.CreateHotelRequest) (*domain.Hotel, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hotel, err := s.hotelRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}
	return hotel, nil
}

func (s *hotelService) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	hotel, err := s.hotelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	if hotel == nil {
		return nil, domain.ErrNotFound
	}
	return hotel, nil
}

func (s *hotelService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	hotels, err := s.hotelRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	return hotels, nil
}

func (s *hotelService) UpdateHotel(ctx context.Context, id int64, patch domain.HotelPatch) (*domain.Hotel, error) {
	hotel, err := s.hotelRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update hotel: %w", err)
	}
	if hotel == nil {
		return nil, domain.ErrNotFound
	}
	return hotel, nil
}

func (s *hotelService) DeleteHotel(ctx context.Context, id int64) error {
	return s.hotelRepo.Delete(ctx, id)
}
