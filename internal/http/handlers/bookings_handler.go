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

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// List returns every booking; admin-gated at the router.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingService.ListAllBookings(r.Context())
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

func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
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

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)

	var req domain.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	booking, err := h.bookingService.CreateBooking(r.Context(), claims.Sub, &req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(w, "all fields are required")
		return
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "user not found")
		return
	default:
		logger.ErrorContext(r.Context(), "booking creation failed", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusCreated, booking)
}

// Update mutates a booking the acting user owns. Ownership failures are 403
// even for admins.
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid booking id")
		return
	}

	var patch domain.BookingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	booking, err := h.bookingService.UpdateBooking(r.Context(), id, claims.Sub, patch)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "booking not found")
		return
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(w, "access denied")
		return
	default:
		logger.ErrorContext(r.Context(), "booking update failed", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid booking id")
		return
	}

	err = h.bookingService.DeleteBooking(r.Context(), id, claims.Sub)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "booking not found")
		return
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(w, "access denied")
		return
	default:
		logger.ErrorContext(r.Context(), "booking deletion failed", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "booking deleted successfully",
	})
}
