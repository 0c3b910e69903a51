package domain

import (
	"fmt"
	"strings"
	"time"
)

type Hotel struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	PictureList []string  `json:"picture_list"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateHotelRequest struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	PictureList []string `json:"picture_list"`
}

// HotelPatch is a partial update; nil fields keep their stored value.
type HotelPatch struct {
	Name        *string   `json:"name,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Description *string   `json:"description,omitempty"`
	PictureList *[]string `json:"picture_list,omitempty"`
}

func (r *CreateHotelRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)
	r.Description = strings.TrimSpace(r.Description)
	if r.PictureList == nil {
		r.PictureList = []string{}
	}
}

func (r *CreateHotelRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if r.Location == "" {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	if r.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	return nil
}
