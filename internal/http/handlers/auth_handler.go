package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stayloop/hotel-bookings/internal/domain"
	mw "github.com/stayloop/hotel-bookings/internal/http/middleware"
	"github.com/stayloop/hotel-bookings/internal/http/response"
	"github.com/stayloop/hotel-bookings/internal/service"
	"github.com/stayloop/hotel-bookings/pkg/logger"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type tokenUserResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates an account and issues a token right away.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	user, token, err := h.authService.Register(r.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrEmailTaken):
		response.BadRequest(w, "user already exists")
		return
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(w, err.Error())
		return
	default:
		logger.ErrorContext(r.Context(), "registration failed", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusCreated, tokenUserResponse{Token: token, User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		response.BadRequest(w, "user not found")
		return
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.BadRequest(w, "incorrect password")
		return
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(w, err.Error())
		return
	default:
		logger.ErrorContext(r.Context(), "login failed", "error", err)
		response.InternalError(w, "server error")
		return
	}

	response.WriteJSON(w, http.StatusOK, tokenUserResponse{Token: token, User: user})
}

// Me returns the acting user's record. The password hash never serializes.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
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

func (h *AuthHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)

	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), claims.Sub, &req)
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
