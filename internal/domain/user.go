package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Valid user roles. The schema default only ever produces RoleUser;
// RoleAdmin and RoleEmployee are assigned out-of-band.
const (
	RoleUser     = "user"
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

var validRoles = map[string]bool{
	RoleUser:     true,
	RoleEmployee: true,
	RoleAdmin:    true,
}

func IsValidRole(role string) bool {
	return validRoles[role]
}

// IsStaff reports whether the role may access staff-only resources. This is
// an explicit role-set membership test.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Pseudo       string    `json:"pseudo"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Pseudo   string `json:"pseudo"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the self-service profile mutation. Nil fields
// are left untouched.
type UpdateProfileRequest struct {
	Email  *string `json:"email,omitempty"`
	Pseudo *string `json:"pseudo,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Pseudo = strings.TrimSpace(r.Pseudo)
}

func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if r.Pseudo == "" {
		return fmt.Errorf("%w: pseudo is required", ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

func (r *UpdateProfileRequest) Normalize() {
	if r.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &e
	}
	if r.Pseudo != nil {
		p := strings.TrimSpace(*r.Pseudo)
		r.Pseudo = &p
	}
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Email != nil && !emailRegex.MatchString(*r.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if r.Pseudo != nil && *r.Pseudo == "" {
		return fmt.Errorf("%w: pseudo cannot be empty", ErrValidation)
	}
	return nil
}
