package location

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error)
	List(ctx context.Context, publishedOnly bool) ([]LocationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type locationService struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &locationService{repo: repo}
}

func (s *locationService) Create(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	loc := &Location{
		ID:   uuid.New(),
		Name: req.Name,
	}
	loc.IsPublished = published
	loc.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, loc); err != nil {
		return nil, err
	}

	resp := NewLocationResponse(loc)
	return &resp, nil
}

func (s *locationService) List(ctx context.Context, publishedOnly bool) ([]LocationResponse, error) {
	locs, err := s.repo.List(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]LocationResponse, 0, len(locs))
	for _, l := range locs {
		responses = append(responses, NewLocationResponse(l))
	}
	return responses, nil
}

func (s *locationService) Update(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.IsPublished != nil {
		loc.IsPublished = *req.IsPublished
	}

	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, err
	}

	resp := NewLocationResponse(loc)
	return &resp, nil
}

func (s *locationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
