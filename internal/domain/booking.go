package domain

import (
	"fmt"
	"time"
)

// Booking references its owner and a hotel by id. Hotel existence is not
// checked anywhere; the reference is whatever the client supplied.
type Booking struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user"`
	HotelID      int64     `json:"hotel"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	Guests       int       `json:"guests"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateBookingRequest struct {
	Hotel        int64     `json:"hotel"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	Guests       int       `json:"guests"`
}

// BookingPatch is a partial update; nil fields keep their stored value.
type BookingPatch struct {
	Hotel        *int64     `json:"hotel,omitempty"`
	CheckInDate  *time.Time `json:"checkInDate,omitempty"`
	CheckOutDate *time.Time `json:"checkOutDate,omitempty"`
	Guests       *int       `json:"guests,omitempty"`
}

// Validate only checks field presence. Date ordering, hotel existence and
// overlaps are deliberately not validated.
func (r *CreateBookingRequest) Validate() error {
	if r.Hotel == 0 || r.CheckInDate.IsZero() || r.CheckOutDate.IsZero() || r.Guests == 0 {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	return nil
}
