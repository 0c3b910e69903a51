package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"

	"github.com/stayloop/hotel-bookings/internal/domain"
	"github.com/stayloop/hotel-bookings/internal/http/handlers"
	authmw "github.com/stayloop/hotel-bookings/internal/http/middleware"
	"github.com/stayloop/hotel-bookings/internal/service"
	"github.com/stayloop/hotel-bookings/pkg/auth"
	"github.com/stayloop/hotel-bookings/pkg/config"
)

const testSecret = "test-only-secret"

// ---------- Mocks ----------

type mockUserRepo struct {
	nextID   int64
	users    map[int64]*domain.User
	bookings *mockBookingRepo
}

func newMockUserRepo(bookings *mockBookingRepo) *mockUserRepo {
	return &mockUserRepo{nextID: 1, users: make(map[int64]*domain.User), bookings: bookings}
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
	u := m.add(email, pseudo, passwordHash, domain.RoleUser)
	copy := *u
	return &copy, nil
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

	var deleted int64
	for bid, b := range m.bookings.bookings {
		if b.UserID == id {
			delete(m.bookings.bookings, bid)
			deleted++
		}
	}
	return deleted, nil
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

type mockHotelRepo struct {
	nextID int64
	hotels map[int64]*domain.Hotel
}

func newMockHotelRepo() *mockHotelRepo {
	return &mockHotelRepo{nextID: 1, hotels: make(map[int64]*domain.Hotel)}
}

func (m *mockHotelRepo) Create(_ context.Context, req *domain.CreateHotelRequest) (*domain.Hotel, error) {
	h := &domain.Hotel{
		ID:          m.nextID,
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		PictureList: req.PictureList,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.hotels[h.ID] = h
	m.nextID++
	copy := *h
	return &copy, nil
}

func (m *mockHotelRepo) FindByID(_ context.Context, id int64) (*domain.Hotel, error) {
	h, ok := m.hotels[id]
	if !ok {
		return nil, nil
	}
	copy := *h
	return &copy, nil
}

func (m *mockHotelRepo) List(_ context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	for _, h := range m.hotels {
		out = append(out, *h)
	}
	return out, nil
}

func (m *mockHotelRepo) Update(_ context.Context, id int64, patch domain.HotelPatch) (*domain.Hotel, error) {
	h, ok := m.hotels[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		h.Name = *patch.Name
	}
	if patch.Location != nil {
		h.Location = *patch.Location
	}
	if patch.Description != nil {
		h.Description = *patch.Description
	}
	if patch.PictureList != nil {
		h.PictureList = *patch.PictureList
	}
	h.UpdatedAt = time.Now()
	copy := *h
	return &copy, nil
}

func (m *mockHotelRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.hotels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.hotels, id)
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

// ---------- Test environment ----------

type testEnv struct {
	router   *chi.Mux
	users    *mockUserRepo
	hotels   *mockHotelRepo
	bookings *mockBookingRepo
	bus      *mockPublisher
}

// newTestEnv wires real services and handlers over in-memory repositories,
// with the same routes and gates as cmd/api.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	bookings := newMockBookingRepo()
	users := newMockUserRepo(bookings)
	hotels := newMockHotelRepo()
	bus := &mockPublisher{}

	cfg := &config.Config{
		Env: "test",
		Auth: config.AuthConfig{
			JWTSecret:      testSecret,
			AccessTokenTTL: time.Hour,
		},
	}

	authService := service.NewAuthService(users, bus, cfg)
	hotelService := service.NewHotelService(hotels)
	bookingService := service.NewBookingService(bookings, users, bus)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService, bookingService)
	hotelHandler := handlers.NewHotelHandler(hotelService)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	requireAuth := authmw.RequireAuth(testSecret)
	requireAdmin := authmw.RequireAdmin(users)
	requireStaff := authmw.RequireStaff(users)
	requireSelfOrAdmin := authmw.RequireSelfOrAdmin(users)

	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", authHandler.Me)
			r.Put("/update", authHandler.Update)
		})
	})

	r.Route("/hotels", func(r chi.Router) {
		r.Get("/", hotelHandler.List)
		r.Get("/{id}", hotelHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Post("/", hotelHandler.Create)
			r.Put("/{id}", hotelHandler.Update)
			r.Delete("/{id}", hotelHandler.Delete)
		})
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Use(requireAuth)

		r.With(requireAdmin).Get("/", bookingHandler.List)
		r.Get("/mybookings", bookingHandler.MyBookings)
		r.Post("/", bookingHandler.Create)
		r.Put("/{id}", bookingHandler.Update)
		r.Delete("/{id}", bookingHandler.Delete)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", userHandler.Me)
			r.Get("/mybookings", userHandler.MyBookings)
			r.Put("/update", userHandler.Update)
			r.Delete("/delete", userHandler.Delete)

			r.With(requireStaff).Get("/{id}", userHandler.GetByID)
			r.With(requireSelfOrAdmin).Put("/{id}", userHandler.UpdateByID)
			r.With(requireSelfOrAdmin).Delete("/{id}", userHandler.DeleteByID)
		})
	})

	return &testEnv{
		router:   r,
		users:    users,
		hotels:   hotels,
		bookings: bookings,
		bus:      bus,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// seedUser inserts a user with a real argon2id hash and returns it with a
// valid token.
func (e *testEnv) seedUser(t *testing.T, email, pseudo, password, role string) (*domain.User, string) {
	t.Helper()

	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := e.users.add(email, pseudo, hash, role)

	token, err := auth.NewAccessToken(u.ID, u.Email, u.Role, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return u, token
}
