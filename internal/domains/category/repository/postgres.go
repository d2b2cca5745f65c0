package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogicum-backend/internal/domains/category"
)

// unique_violation, https://www.postgresql.org/docs/current/errcodes-appendix.html
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

type postgresCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCategoryRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresCategoryRepository{pool: pool}
}

func (r *postgresCategoryRepository) Create(ctx context.Context, cat *category.Category) error {
	query := `
		INSERT INTO categories (id, title, description, slug, is_published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		cat.ID,
		cat.Title,
		cat.Description,
		cat.Slug,
		cat.IsPublished,
		cat.CreatedAt,
	)
	if err != nil {
		// Slug carries a UNIQUE constraint.
		if isUniqueViolation(err) {
			return category.ErrSlugTaken
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *postgresCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `
		SELECT id, title, description, slug, is_published, created_at
		FROM categories
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresCategoryRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*category.Category, error) {
	query := `
		SELECT id, title, description, slug, is_published, created_at
		FROM categories
		WHERE slug = $1
	`
	if publishedOnly {
		query += ` AND is_published = TRUE`
	}
	return r.scanOne(r.pool.QueryRow(ctx, query, slug))
}

func (r *postgresCategoryRepository) List(ctx context.Context, publishedOnly bool) ([]*category.Category, error) {
	query := `
		SELECT id, title, description, slug, is_published, created_at
		FROM categories
	`
	if publishedOnly {
		query += ` WHERE is_published = TRUE`
	}
	query += ` ORDER BY title ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		cat := &category.Category{}
		err := rows.Scan(&cat.ID, &cat.Title, &cat.Description, &cat.Slug, &cat.IsPublished, &cat.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	return categories, nil
}

func (r *postgresCategoryRepository) Update(ctx context.Context, cat *category.Category) error {
	query := `
		UPDATE categories
		SET title = $2, description = $3, is_published = $4
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, cat.ID, cat.Title, cat.Description, cat.IsPublished)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

func (r *postgresCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

func (r *postgresCategoryRepository) scanOne(row pgx.Row) (*category.Category, error) {
	cat := &category.Category{}
	err := row.Scan(&cat.ID, &cat.Title, &cat.Description, &cat.Slug, &cat.IsPublished, &cat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return cat, nil
}
