package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogicum-backend/internal/domains/location"
)

type postgresLocationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLocationRepository(pool *pgxpool.Pool) location.Repository {
	return &postgresLocationRepository{pool: pool}
}

func (r *postgresLocationRepository) Create(ctx context.Context, loc *location.Location) error {
	query := `
		INSERT INTO locations (id, name, is_published, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, loc.ID, loc.Name, loc.IsPublished, loc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	return nil
}

func (r *postgresLocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	query := `
		SELECT id, name, is_published, created_at
		FROM locations
		WHERE id = $1
	`

	loc := &location.Location{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&loc.ID, &loc.Name, &loc.IsPublished, &loc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, location.ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return loc, nil
}

func (r *postgresLocationRepository) List(ctx context.Context, publishedOnly bool) ([]*location.Location, error) {
	query := `
		SELECT id, name, is_published, created_at
		FROM locations
	`
	if publishedOnly {
		query += ` WHERE is_published = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []*location.Location
	for rows.Next() {
		loc := &location.Location{}
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.IsPublished, &loc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read locations: %w", err)
	}

	return locations, nil
}

func (r *postgresLocationRepository) Update(ctx context.Context, loc *location.Location) error {
	query := `
		UPDATE locations
		SET name = $2, is_published = $3
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, loc.ID, loc.Name, loc.IsPublished)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if result.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}

func (r *postgresLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if result.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}

	return nil
}
