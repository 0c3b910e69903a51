package service

import (
	"context"
	"strings"
	"time"

	"github.com/stayloop/hotel-bookings/internal/domain"
)

// In-memory repository fakes; assertions drive them through the service
// interfaces only.

type mockUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (m *mockUserRepo) add(email, pseudo, hash, role string) *domain.User {
	u := &domain.User{
		ID:           m.nextID,
		Email:        email,
		Pseudo:       pseudo,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	m.nextID++
	return u
}

func (m *mockUserRepo) Create(_ context.Context, email, pseudo, passwordHash string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return nil, domain.ErrEmailTaken
		}
	}
	return m.add(email, pseudo, passwordHash, domain.RoleUser), nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if req.Email != nil {
		for _, other := range m.users {
			if other.ID != id && other.Email == *req.Email {
				return nil, domain.ErrEmailTaken
			}
		}
		u.Email = *req.Email
	}
	if req.Pseudo != nil {
		u.Pseudo = *req.Pseudo
	}
	u.UpdatedAt = time.Now()
	copy := *u
	return &copy, nil
}

func (m *mockUserRepo) DeleteWithBookings(_ context.Context, id int64) (int64, error) {
	if _, ok := m.users[id]; !ok {
		return 0, domain.ErrNotFound
	}
	delete(m.users, id)
	return 0, nil
}

type mockBookingRepo struct {
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{nextID: 1, bookings: make(map[int64]*domain.Booking)}
}

func (m *mockBookingRepo) Create(_ context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	b := &domain.Booking{
		ID:           m.nextID,
		UserID:       userID,
		HotelID:      req.Hotel,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Guests:       req.Guests,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.bookings[b.ID] = b
	m.nextID++
	copy := *b
	return &copy, nil
}

func (m *mockBookingRepo) FindByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	copy := *b
	return &copy, nil
}

func (m *mockBookingRepo) ListByUser(_ context.Context, userID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) List(_ context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockBookingRepo) Update(_ context.Context, id int64, patch domain.BookingPatch) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	if patch.Hotel != nil {
		b.HotelID = *patch.Hotel
	}
	if patch.CheckInDate != nil {
		b.CheckInDate = *patch.CheckInDate
	}
	if patch.CheckOutDate != nil {
		b.CheckOutDate = *patch.CheckOutDate
	}
	if patch.Guests != nil {
		b.Guests = *patch.Guests
	}
	b.UpdatedAt = time.Now()
	copy := *b
	return &copy, nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.bookings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

type mockPublisher struct {
	published []string
}

func (m *mockPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	m.published = append(m.published, subject)
	return nil
}

func (m *mockPublisher) Close() error { return nil }
