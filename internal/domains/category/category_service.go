package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blogicum-backend/internal/infrastructure/cache"
	"blogicum-backend/internal/shared/utils"
)

const slugCacheTTL = 5 * time.Minute

func slugCacheKey(slug string) string {
	return fmt.Sprintf("category:slug:%s", slug)
}

type categoryService struct {
	repo  Repository
	cache cache.Cache
}

func NewService(repo Repository, cache cache.Cache) Service {
	return &categoryService{repo: repo, cache: cache}
}

func (s *categoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Title)
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	cat := &Category{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Slug:        slug,
	}
	cat.IsPublished = published
	cat.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	resp := NewCategoryResponse(cat)
	return &resp, nil
}

func (s *categoryService) GetPublishedBySlug(ctx context.Context, slug string) (*Category, error) {
	key := slugCacheKey(slug)

	var cached Category
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		// Degrade to the database on cache trouble.
		log.Warn().Err(err).Str("slug", slug).Msg("category cache read failed")
	}
	if found {
		return &cached, nil
	}

	cat, err := s.repo.GetBySlug(ctx, slug, true)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, cat, slugCacheTTL); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("category cache write failed")
	}

	return cat, nil
}

func (s *categoryService) List(ctx context.Context, publishedOnly bool) ([]CategoryResponse, error) {
	cats, err := s.repo.List(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		responses = append(responses, NewCategoryResponse(c))
	}
	return responses, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		cat.Title = *req.Title
	}
	if req.Description != nil {
		cat.Description = *req.Description
	}
	if req.IsPublished != nil {
		cat.IsPublished = *req.IsPublished
	}

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}

	// The slug never changes, so one key covers all mutations.
	if err := s.cache.Delete(ctx, slugCacheKey(cat.Slug)); err != nil {
		log.Warn().Err(err).Str("slug", cat.Slug).Msg("category cache invalidation failed")
	}

	resp := NewCategoryResponse(cat)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, slugCacheKey(cat.Slug)); err != nil {
		log.Warn().Err(err).Str("slug", cat.Slug).Msg("category cache invalidation failed")
	}

	return nil
}
