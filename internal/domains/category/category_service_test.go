package category

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	categories  map[uuid.UUID]*Category
	slugLookups int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{categories: make(map[uuid.UUID]*Category)}
}

func (r *fakeRepo) Create(_ context.Context, c *Category) error {
	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return ErrSlugTaken
		}
	}
	r.categories[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeRepo) GetBySlug(_ context.Context, slug string, publishedOnly bool) (*Category, error) {
	r.slugLookups++
	for _, c := range r.categories {
		if c.Slug == slug && (!publishedOnly || c.IsPublished) {
			return c, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (r *fakeRepo) List(_ context.Context, publishedOnly bool) ([]*Category, error) {
	var out []*Category
	for _, c := range r.categories {
		if !publishedOnly || c.IsPublished {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, c *Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

// fakeCache is an in-memory Cache implementation mirroring the JSON
// round-trip of the real one.
type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *fakeCache) Ping(_ context.Context) error { return nil }

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func addCategory(repo *fakeRepo, slug string, published bool) *Category {
	c := &Category{
		ID:    uuid.New(),
		Title: "Title " + slug,
		Slug:  slug,
	}
	c.IsPublished = published
	c.CreatedAt = time.Now().UTC()
	repo.categories[c.ID] = c
	return c
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeCache())

	created, err := svc.Create(context.Background(), CreateCategoryRequest{
		Title:       "City News",
		Description: "news from the city",
	})
	require.NoError(t, err)
	assert.Equal(t, "city-news", created.Slug)
	assert.True(t, created.IsPublished)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeCache())
	addCategory(repo, "city-news", true)

	_, err := svc.Create(context.Background(), CreateCategoryRequest{
		Title:       "City News",
		Description: "duplicate",
	})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestGetPublishedBySlugCachesResult(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := NewService(repo, cache)
	cat := addCategory(repo, "travel", true)

	first, err := svc.GetPublishedBySlug(context.Background(), "travel")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, first.ID)
	assert.Equal(t, 1, repo.slugLookups)

	// Second hit is served from the cache.
	second, err := svc.GetPublishedBySlug(context.Background(), "travel")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, second.ID)
	assert.Equal(t, 1, repo.slugLookups)
}

func TestGetPublishedBySlugHidesUnpublished(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeCache())
	addCategory(repo, "secret", false)

	_, err := svc.GetPublishedBySlug(context.Background(), "secret")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := NewService(repo, cache)
	cat := addCategory(repo, "travel", true)

	_, err := svc.GetPublishedBySlug(context.Background(), "travel")
	require.NoError(t, err)
	assert.Contains(t, cache.entries, "category:slug:travel")

	_, err = svc.Update(context.Background(), cat.ID, UpdateCategoryRequest{
		Title: strPtr("Renamed"),
	})
	require.NoError(t, err)
	assert.NotContains(t, cache.entries, "category:slug:travel")
}

func TestUnpublishHidesCategoryFromSlugLookup(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := NewService(repo, cache)
	cat := addCategory(repo, "travel", true)

	_, err := svc.GetPublishedBySlug(context.Background(), "travel")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), cat.ID, UpdateCategoryRequest{
		IsPublished: boolPtr(false),
	})
	require.NoError(t, err)

	// With the cache invalidated the unpublished state takes effect at once.
	_, err = svc.GetPublishedBySlug(context.Background(), "travel")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := NewService(repo, cache)
	cat := addCategory(repo, "travel", true)

	_, err := svc.GetPublishedBySlug(context.Background(), "travel")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), cat.ID))
	assert.NotContains(t, cache.entries, "category:slug:travel")
	assert.NotContains(t, repo.categories, cat.ID)
}
