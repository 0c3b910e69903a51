package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stayloop/hotel-bookings/internal/domain"
	mw "github.com/stayloop/hotel-bookings/internal/http/middleware"
	"github.com/stayloop/hotel-bookings/internal/http/response"
	"github.com/stayloop/hotel-bookings/internal/service"
	"github.com/stayloop/hotel-bookings/pkg/logger"
)

type UserHandler struct {
	authService    service.AuthService
	bookingService service.BookingService
}

func NewUserHandler(authService service.AuthService, bookingService service.BookingService) *UserHandler {
	return &UserHandler{
		authService:    authService,
		bookingService: bookingService,
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)

	user, err := h.authService.GetUser(r.Context(), claims.Sub)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "user not found")
		return
	default:
		logger.ErrorContext(r.Context(), "failed to load profile", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusOK, user)
}

func (h *UserHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)

	bookings, err := h.bookingService.ListMyBookings(r.Context(), claims.Sub)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list bookings", "error", err)
		response.InternalError(w, "server error")
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}

	response.WriteJSON(w, http.StatusOK, bookings)
}

// GetByID is staff-gated at the router.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid user id")
		return
	}

	user, err := h.authService.GetUser(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "user not found")
		return
	default:
		logger.ErrorContext(r.Context(), "failed to load user", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusOK, user)
}

// Create registers an account without issuing a token.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	user, _, err := h.authService.Register(r.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrEmailTaken):
		response.BadRequest(w, "user already exists")
		return
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(w, err.Error())
		return
	default:
		logger.ErrorContext(r.Context(), "user creation failed", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "user created successfully",
		"user":    user,
	})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)
	h.updateProfile(w, r, claims.Sub)
}

// UpdateByID is self-or-admin-gated at the router.
func (h *UserHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid user id")
		return
	}
	h.updateProfile(w, r, id)
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request, id int64) {
	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), id, &req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrEmailTaken):
		response.BadRequest(w, "email already in use")
		return
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(w, err.Error())
		return
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "user not found")
		return
	default:
		logger.ErrorContext(r.Context(), "profile update failed", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "profile updated successfully",
		"user":    user,
	})
}

// Delete removes the acting user's account and every booking they own.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)
	h.deleteAccount(w, r, claims.Sub)
}

// DeleteByID is self-or-admin-gated at the router.
func (h *UserHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid user id")
		return
	}
	h.deleteAccount(w, r, id)
}

func (h *UserHandler) deleteAccount(w http.ResponseWriter, r *http.Request, id int64) {
	err := h.authService.DeleteAccount(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "user not found")
		return
	default:
		logger.ErrorContext(r.Context(), "account deletion failed", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "account deleted successfully",
	})
}
