package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/shared/utils"
)

type postgresPostRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postgresPostRepository{pool: pool}
}

// selectColumns is shared by every read so scanPost stays uniform. The
// comment_count subquery is swapped for a constant 0 when annotations are off.
const selectColumns = `
	p.id, p.title, p.text, p.pub_date, p.image_url,
	p.author_id, p.category_id, p.location_id,
	p.is_published, p.created_at,
	u.username,
	c.title, c.slug, c.is_published,
	l.name`

const fromJoins = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN locations l ON l.id = p.location_id`

const commentCountExpr = `(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id)`

func scanPost(row pgx.Row) (*model.Post, error) {
	post := &model.Post{}
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Text,
		&post.PubDate,
		&post.ImageURL,
		&post.AuthorID,
		&post.CategoryID,
		&post.LocationID,
		&post.IsPublished,
		&post.CreatedAt,
		&post.AuthorUsername,
		&post.CategoryTitle,
		&post.CategorySlug,
		&post.CategoryPublished,
		&post.LocationName,
		&post.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresPostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (
			id, title, text, pub_date, image_url,
			author_id, category_id, location_id,
			is_published, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Text,
		post.PubDate,
		post.ImageURL,
		post.AuthorID,
		post.CategoryID,
		post.LocationID,
		post.IsPublished,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := `SELECT ` + selectColumns + `, ` + commentCountExpr + fromJoins + ` WHERE p.id = $1`

	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func (r *postgresPostRepository) Update(ctx context.Context, post *model.Post) error {
	query := `
		UPDATE posts
		SET title = $2,
		    text = $3,
		    pub_date = $4,
		    category_id = $5,
		    location_id = $6,
		    is_published = $7
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Text,
		post.PubDate,
		post.CategoryID,
		post.LocationID,
		post.IsPublished,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

func (r *postgresPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// comments.post_id is ON DELETE CASCADE; one statement removes the post
	// and everything under it.
	result, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

// =====================================================
// LIST / COUNT (visibility query builder)
// =====================================================

// buildConditions translates ListOptions into WHERE clauses.
func buildConditions(opts ListOptions, args *[]interface{}) []string {
	var conds []string

	if opts.Filters {
		conds = append(conds,
			"p.pub_date <= NOW()",
			"p.is_published = TRUE",
			"(p.category_id IS NULL OR c.is_published = TRUE)",
		)
	}

	if opts.PublishedOnly {
		conds = append(conds,
			"p.pub_date <= NOW()",
			"p.is_published = TRUE",
		)
	}

	if opts.AuthorID != nil {
		*args = append(*args, *opts.AuthorID)
		conds = append(conds, fmt.Sprintf("p.author_id = $%d", len(*args)))
	}

	if opts.CategoryID != nil {
		*args = append(*args, *opts.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(*args)))
	}

	return conds
}

func (r *postgresPostRepository) List(ctx context.Context, opts ListOptions) ([]*model.Post, error) {
	countExpr := "0"
	if opts.Annotations {
		countExpr = commentCountExpr
	}

	query := `SELECT ` + selectColumns + `, ` + countExpr + fromJoins

	var args []interface{}
	if conds := buildConditions(opts, &args); len(conds) > 0 {
		query += " WHERE " + utils.JoinWithAnd(conds)
	}

	// Newest publication first; id breaks pub_date ties so pages never
	// shuffle between calls.
	query += " ORDER BY p.pub_date DESC, p.id DESC"

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, opts.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	return posts, nil
}

func (r *postgresPostRepository) Count(ctx context.Context, opts ListOptions) (int, error) {
	query := `SELECT COUNT(*)` + fromJoins

	var args []interface{}
	if conds := buildConditions(opts, &args); len(conds) > 0 {
		query += " WHERE " + utils.JoinWithAnd(conds)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

// =====================================================
// IMAGE
// =====================================================

func (r *postgresPostRepository) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	result, err := r.pool.Exec(ctx, `UPDATE posts SET image_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return fmt.Errorf("failed to set post image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrPostNotFound
	}

	return nil
}
