package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stayloop/hotel-bookings/internal/domain"
	"github.com/stayloop/hotel-bookings/internal/http/response"
	"github.com/stayloop/hotel-bookings/internal/service"
	"github.com/stayloop/hotel-bookings/pkg/logger"
)

// HotelHandler serves the hotel catalog: public reads, admin-gated writes
// (the gate sits at the router).
type HotelHandler struct {
	hotelService service.HotelService
}

func NewHotelHandler(hotelService service.HotelService) *HotelHandler {
	return &HotelHandler{hotelService: hotelService}
}

func (h *HotelHandler) List(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.hotelService.ListHotels(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list hotels", "error", err)
		response.InternalError(w, "server error")
		return
	}
	if hotels == nil {
		hotels = []domain.Hotel{}
	}

	response.WriteJSON(w, http.StatusOK, hotels)
}

func (h *HotelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid hotel id")
		return
	}

	hotel, err := h.hotelService.GetHotel(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "hotel not found")
		return
	default:
		logger.ErrorContext(r.Context(), "failed to load hotel", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusOK, hotel)
}

func (h *HotelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateHotelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	hotel, err := h.hotelService.CreateHotel(r.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(w, err.Error())
		return
	default:
		logger.ErrorContext(r.Context(), "hotel creation failed", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusCreated, hotel)
}

func (h *HotelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid hotel id")
		return
	}

	var patch domain.HotelPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	hotel, err := h.hotelService.UpdateHotel(r.Context(), id, patch)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "hotel not found")
		return
	default:
		logger.ErrorContext(r.Context(), "hotel update failed", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusOK, hotel)
}

func (h *HotelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid hotel id")
		return
	}

	err = h.hotelService.DeleteHotel(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, "hotel not found")
		return
	default:
		logger.ErrorContext(r.Context(), "hotel deletion failed", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "hotel deleted successfully",
	})
}
