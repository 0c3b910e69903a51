package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stayloop/hotel-bookings/internal/domain"
	"github.com/stayloop/hotel-bookings/internal/http/response"
	"github.com/stayloop/hotel-bookings/internal/repo/postgres"
	"github.com/stayloop/hotel-bookings/pkg/auth"
	"github.com/stayloop/hotel-bookings/pkg/logger"
)

type ctxKey string

const CtxClaims ctxKey = "claims"

// RequireAuth verifies the Bearer token and attaches the decoded identity to
// the request context.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				response.Unauthorized(w, "access denied, no token provided")
				return
			}
			raw := strings.TrimPrefix(authz, "Bearer ")
			claims, err := auth.Parse(raw, secret)
			if err != nil {
				response.Unauthorized(w, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), CtxClaims, claims)
			ctx = context.WithValue(ctx, logger.UserIDKey, claims.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Claims returns the identity attached by RequireAuth, or nil.
func Claims(r *http.Request) *auth.Claims {
	v := r.Context().Value(CtxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}

// RequireAdmin reloads the acting user's record so a role change (or account
// deletion) after token issuance is honored.
func RequireAdmin(users postgres.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := loadActor(w, r, users)
			if !ok {
				return
			}
			if user.Role != domain.RoleAdmin {
				response.Forbidden(w, "access denied, admin required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff admits employee and admin roles.
func RequireStaff(users postgres.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := loadActor(w, r, users)
			if !ok {
				return
			}
			if !domain.IsStaff(user.Role) {
				response.Forbidden(w, "access denied, staff required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelfOrAdmin admits the user targeted by the {id} URL param and
// admins acting on anyone.
func RequireSelfOrAdmin(users postgres.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := Claims(r)
			if claims == nil {
				response.Unauthorized(w, "access denied, no token provided")
				return
			}
			targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
			if err != nil {
				response.BadRequest(w, "invalid user id")
				return
			}
			if claims.Sub == targetID {
				next.ServeHTTP(w, r)
				return
			}
			user, ok := loadActor(w, r, users)
			if !ok {
				return
			}
			if user.Role != domain.RoleAdmin {
				response.Forbidden(w, "access denied, you can only modify your own account")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// loadActor resolves the authenticated identity to a user record. A token
// can outlive its account, so a missing record is a server-side failure
// here, not a 401.
func loadActor(w http.ResponseWriter, r *http.Request, users postgres.UserRepository) (*domain.User, bool) {
	claims := Claims(r)
	if claims == nil {
		response.Unauthorized(w, "access denied, no token provided")
		return nil, false
	}
	user, err := users.FindByID(r.Context(), claims.Sub)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load acting user", "error", err, "user_id", claims.Sub)
		response.InternalError(w, "server error")
		return nil, false
	}
	if user == nil {
		response.InternalError(w, "server error")
		return nil, false
	}
	return user, true
}
