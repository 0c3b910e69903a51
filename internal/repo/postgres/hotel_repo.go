package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayloop/hotel-bookings/internal/domain"
)

type HotelRepository interface {
	Create(ctx context.Context, req *domain.CreateHotelRequest) (*domain.Hotel, error)
	FindByID(ctx context.Context, id int64) (*domain.Hotel, error)
	List(ctx context.Context) ([]domain.Hotel, error)
	Update(ctx context.Context, id int64, patch domain.HotelPatch) (*domain.Hotel, error)
	Delete(ctx context.Context, id int64) error
}

type hotelRepository struct {
	pool *pgxpool.Pool
}

func NewHotelRepository(pool *pgxpool.Pool) HotelRepository {
	return &hotelRepository{pool: pool}
}

const hotelCols = `id, name, location, description, picture_list, created_at, updated_at`

func (r *hotelRepository) Create(ctx context.Context, req *domain.CreateHotelRequest) (*domain.Hotel, error) {
	const q = `
		INSERT INTO hotels (name, location, description, picture_list)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + hotelCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var h domain.Hotel
	err := r.pool.QueryRow(ctx, q, req.Name, req.Location, req.Description, req.PictureList).Scan(
		&h.ID, &h.Name, &h.Location, &h.Description, &h.PictureList, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hotelRepository) FindByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	const q = `SELECT ` + hotelCols + ` FROM hotels WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var h domain.Hotel
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&h.ID, &h.Name, &h.Location, &h.Description, &h.PictureList, &h.CreatedAt, &h.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &h, err
}

func (r *hotelRepository) List(ctx context.Context) ([]domain.Hotel, error) {
	const q = `SELECT ` + hotelCols + ` FROM hotels ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hotels []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(
			&h.ID, &h.Name, &h.Location, &h.Description, &h.PictureList, &h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}

	return hotels, rows.Err()
}

func (r *hotelRepository) Update(ctx context.Context, id int64, patch domain.HotelPatch) (*domain.Hotel, error) {
	const q = `
		UPDATE hotels
		SET
			name = COALESCE($2, name),
			location = COALESCE($3, location),
			description = COALESCE($4, description),
			picture_list = COALESCE($5, picture_list),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + hotelCols

	// pgx cannot COALESCE through a *[]string, pass nil explicitly instead
	var pictures any
	if patch.PictureList != nil {
		pictures = *patch.PictureList
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var h domain.Hotel
	err := r.pool.QueryRow(ctx, q, id, patch.Name, patch.Location, patch.Description, pictures).Scan(
		&h.ID, &h.Name, &h.Location, &h.Description, &h.PictureList, &h.CreatedAt, &h.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &h, err
}

func (r *hotelRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM hotels WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
