package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogicum-backend/internal/domains/category"
	commentModel "blogicum-backend/internal/domains/comment/model"
	"blogicum-backend/internal/domains/location"
	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/domains/post/repository"
	"blogicum-backend/internal/infrastructure/storage"
	"blogicum-backend/internal/shared/guard"
)

// =====================================================
// FAKES
// =====================================================

type fakePostRepo struct {
	posts   map[uuid.UUID]*model.Post
	updated int
	deleted int
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*model.Post)}
}

func (r *fakePostRepo) Create(_ context.Context, p *model.Post) error {
	r.posts[p.ID] = p
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePostRepo) Update(_ context.Context, p *model.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		return model.ErrPostNotFound
	}
	clone := *p
	r.posts[p.ID] = &clone
	r.updated++
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.posts[id]; !ok {
		return model.ErrPostNotFound
	}
	delete(r.posts, id)
	r.deleted++
	return nil
}

func (r *fakePostRepo) matching(opts repository.ListOptions) []*model.Post {
	now := time.Now()
	var out []*model.Post
	for _, p := range r.posts {
		if opts.Filters && !p.IsVisibleAt(now) {
			continue
		}
		if opts.AuthorID != nil && p.AuthorID != *opts.AuthorID {
			continue
		}
		if opts.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *opts.CategoryID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *fakePostRepo) List(_ context.Context, opts repository.ListOptions) ([]*model.Post, error) {
	out := r.matching(opts)
	if opts.Offset > len(out) {
		return nil, nil
	}
	out = out[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *fakePostRepo) Count(_ context.Context, opts repository.ListOptions) (int, error) {
	return len(r.matching(opts)), nil
}

func (r *fakePostRepo) SetImageURL(_ context.Context, id uuid.UUID, url string) error {
	p, ok := r.posts[id]
	if !ok {
		return model.ErrPostNotFound
	}
	p.ImageURL = &url
	return nil
}

type fakeCommentRepo struct {
	comments []*commentModel.Comment
}

func (r *fakeCommentRepo) Create(_ context.Context, c *commentModel.Comment) error {
	r.comments = append(r.comments, c)
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id uuid.UUID) (*commentModel.Comment, error) {
	for _, c := range r.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, commentModel.ErrCommentNotFound
}

func (r *fakeCommentRepo) Update(_ context.Context, c *commentModel.Comment) error { return nil }

func (r *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

func (r *fakeCommentRepo) ListForPost(_ context.Context, postID uuid.UUID) ([]*commentModel.Comment, error) {
	var out []*commentModel.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*category.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*category.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *category.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) GetBySlug(_ context.Context, slug string, publishedOnly bool) (*category.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug && (!publishedOnly || c.IsPublished) {
			return c, nil
		}
	}
	return nil, category.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) List(_ context.Context, publishedOnly bool) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range r.categories {
		if !publishedOnly || c.IsPublished {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *category.Category) error { return nil }

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

type fakeLocationRepo struct {
	locations map[uuid.UUID]*location.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[uuid.UUID]*location.Location)}
}

func (r *fakeLocationRepo) Create(_ context.Context, l *location.Location) error {
	r.locations[l.ID] = l
	return nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id uuid.UUID) (*location.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, location.ErrLocationNotFound
	}
	return l, nil
}

func (r *fakeLocationRepo) List(_ context.Context, publishedOnly bool) ([]*location.Location, error) {
	var out []*location.Location
	for _, l := range r.locations {
		if !publishedOnly || l.IsPublished {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, l *location.Location) error { return nil }

func (r *fakeLocationRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (e *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{}, nil
}

// =====================================================
// HELPERS
// =====================================================

type fixture struct {
	svc      PostService
	posts    *fakePostRepo
	comments *fakeCommentRepo
	enqueuer *fakeEnqueuer
}

func newFixture() *fixture {
	posts := newFakePostRepo()
	comments := &fakeCommentRepo{}
	enqueuer := &fakeEnqueuer{}
	svc := NewPostService(posts, comments, newFakeCategoryRepo(), newFakeLocationRepo(), enqueuer)
	return &fixture{svc: svc, posts: posts, comments: comments, enqueuer: enqueuer}
}

func storedPost(repo *fakePostRepo, authorID uuid.UUID, published bool, pubDate time.Time) *model.Post {
	p := &model.Post{
		ID:       uuid.New(),
		Title:    "title",
		Text:     "text",
		PubDate:  pubDate,
		AuthorID: authorID,
	}
	p.IsPublished = published
	repo.posts[p.ID] = p
	return p
}

func asPrincipal(id uuid.UUID) guard.Principal {
	return guard.Principal{ID: id, Authenticated: true}
}

// =====================================================
// DETAIL
// =====================================================

func TestGetDetailHiddenPostIsNotFoundForStrangers(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	p := storedPost(f.posts, author, false, time.Now().Add(-time.Hour))

	_, err := f.svc.GetDetail(context.Background(), guard.Anonymous, p.ID)
	assert.ErrorIs(t, err, model.ErrPostNotFound)

	_, err = f.svc.GetDetail(context.Background(), asPrincipal(uuid.New()), p.ID)
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestGetDetailHiddenPostIsVisibleToAuthor(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	p := storedPost(f.posts, author, false, time.Now().Add(-time.Hour))

	detail, err := f.svc.GetDetail(context.Background(), asPrincipal(author), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, detail.Post.ID)
}

func TestGetDetailScheduledPostIsNotFoundForStrangers(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	p := storedPost(f.posts, author, true, time.Now().Add(time.Hour))

	_, err := f.svc.GetDetail(context.Background(), guard.Anonymous, p.ID)
	assert.ErrorIs(t, err, model.ErrPostNotFound)

	detail, err := f.svc.GetDetail(context.Background(), asPrincipal(author), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, detail.Post.ID)
}

func TestGetDetailIncludesComments(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	p := storedPost(f.posts, author, true, time.Now().Add(-time.Hour))

	f.comments.comments = append(f.comments.comments,
		&commentModel.Comment{ID: uuid.New(), PostID: p.ID, Text: "first"},
		&commentModel.Comment{ID: uuid.New(), PostID: p.ID, Text: "second"},
		&commentModel.Comment{ID: uuid.New(), PostID: uuid.New(), Text: "other post"},
	)

	detail, err := f.svc.GetDetail(context.Background(), guard.Anonymous, p.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Comments, 2)
}

// =====================================================
// LISTINGS
// =====================================================

func TestListHomeExcludesHiddenPosts(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	storedPost(f.posts, author, true, time.Now().Add(-time.Hour))
	storedPost(f.posts, author, false, time.Now().Add(-time.Hour))
	storedPost(f.posts, author, true, time.Now().Add(time.Hour))

	posts, pg, err := f.svc.ListHome(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 1, pg.TotalItems)
}

func TestListForAuthorIncludeHidden(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	storedPost(f.posts, author, true, time.Now().Add(-time.Hour))
	storedPost(f.posts, author, false, time.Now().Add(-time.Hour))
	storedPost(f.posts, uuid.New(), true, time.Now().Add(-time.Hour))

	// The owner's view keeps drafts.
	posts, _, err := f.svc.ListForAuthor(context.Background(), author, true, 1)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	// Everyone else only sees the public set.
	posts, _, err = f.svc.ListForAuthor(context.Background(), author, false, 1)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestListHomePaginates(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	for i := 0; i < 15; i++ {
		storedPost(f.posts, author, true, time.Now().Add(-time.Hour))
	}

	posts, pg, err := f.svc.ListHome(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, posts, 5)
	assert.Equal(t, 2, pg.Number)
	assert.Equal(t, 15, pg.TotalItems)
	assert.False(t, pg.HasNext)
	assert.True(t, pg.HasPrevious)
}

// =====================================================
// MUTATIONS
// =====================================================

func TestCreateDefaultsToPublished(t *testing.T) {
	f := newFixture()
	author := uuid.New()

	created, err := f.svc.Create(context.Background(), author, model.PostForm{
		Title:   "title",
		Text:    "text",
		PubDate: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, created.IsPublished)

	stored := f.posts.posts[created.ID]
	assert.Equal(t, author, stored.AuthorID)
}

func TestCreateRejectsMissingCategory(t *testing.T) {
	f := newFixture()
	missing := uuid.New()

	_, err := f.svc.Create(context.Background(), uuid.New(), model.PostForm{
		Title:      "title",
		Text:       "text",
		PubDate:    time.Now(),
		CategoryID: &missing,
	})
	assert.ErrorIs(t, err, model.ErrCategoryGone)
}

func TestGetForMutationHiddenPostIsNotFoundForStrangers(t *testing.T) {
	f := newFixture()
	p := storedPost(f.posts, uuid.New(), false, time.Now().Add(-time.Hour))

	// A draft must read as absent before any ownership redirect applies,
	// otherwise the edit route leaks its existence.
	_, _, err := f.svc.GetForMutation(context.Background(), asPrincipal(uuid.New()), p.ID)
	assert.ErrorIs(t, err, model.ErrPostNotFound)

	_, _, err = f.svc.GetForMutation(context.Background(), guard.Anonymous, p.ID)
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestGetForMutationHiddenPostAllowedForAuthor(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	p := storedPost(f.posts, author, false, time.Now().Add(-time.Hour))

	decision, post, err := f.svc.GetForMutation(context.Background(), asPrincipal(author), p.ID)
	require.NoError(t, err)
	assert.Equal(t, guard.Allowed, decision)
	assert.Equal(t, p.ID, post.ID)
}

func TestUpdateScheduledPostIsNotFoundForStrangers(t *testing.T) {
	f := newFixture()
	p := storedPost(f.posts, uuid.New(), true, time.Now().Add(time.Hour))

	_, _, err := f.svc.Update(context.Background(), asPrincipal(uuid.New()), p.ID, model.PostForm{
		Title:   "changed",
		Text:    "changed",
		PubDate: time.Now(),
	})
	assert.ErrorIs(t, err, model.ErrPostNotFound)
	assert.Equal(t, 0, f.posts.updated)
}

func TestDeleteHiddenPostIsNotFoundForStrangers(t *testing.T) {
	f := newFixture()
	p := storedPost(f.posts, uuid.New(), false, time.Now().Add(-time.Hour))

	_, err := f.svc.Delete(context.Background(), asPrincipal(uuid.New()), p.ID)
	assert.ErrorIs(t, err, model.ErrPostNotFound)
	assert.Contains(t, f.posts.posts, p.ID)
}

func TestUploadImageHiddenPostIsNotFoundForStrangers(t *testing.T) {
	f := newFixture()
	p := storedPost(f.posts, uuid.New(), false, time.Now().Add(-time.Hour))

	img := NewImageService(f.posts, nil, storage.NewImageProcessor(), f.enqueuer)
	_, _, err := img.Upload(context.Background(), asPrincipal(uuid.New()), p.ID, []byte("x"))
	assert.ErrorIs(t, err, model.ErrPostNotFound)
	assert.Empty(t, f.enqueuer.tasks)
}

func TestUpdateByStrangerRedirectsSilently(t *testing.T) {
	f := newFixture()
	p := storedPost(f.posts, uuid.New(), true, time.Now().Add(-time.Hour))

	decision, _, err := f.svc.Update(context.Background(), asPrincipal(uuid.New()), p.ID, model.PostForm{
		Title:   "changed",
		Text:    "changed",
		PubDate: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, guard.RedirectSafe, decision)
	assert.Equal(t, 0, f.posts.updated)
	assert.Equal(t, "title", f.posts.posts[p.ID].Title)
}

func TestUpdateUnauthenticatedRedirectsToLogin(t *testing.T) {
	f := newFixture()
	p := storedPost(f.posts, uuid.New(), true, time.Now().Add(-time.Hour))

	decision, _, err := f.svc.Update(context.Background(), guard.Anonymous, p.ID, model.PostForm{
		Title:   "changed",
		Text:    "changed",
		PubDate: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, guard.RedirectLogin, decision)
}

func TestUpdateByOwner(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	p := storedPost(f.posts, author, true, time.Now().Add(-time.Hour))

	decision, updated, err := f.svc.Update(context.Background(), asPrincipal(author), p.ID, model.PostForm{
		Title:   "changed",
		Text:    "changed",
		PubDate: p.PubDate,
	})
	require.NoError(t, err)
	assert.Equal(t, guard.Allowed, decision)
	assert.Equal(t, "changed", updated.Title)
}

func TestDeleteByStrangerKeepsPost(t *testing.T) {
	f := newFixture()
	p := storedPost(f.posts, uuid.New(), true, time.Now().Add(-time.Hour))

	decision, err := f.svc.Delete(context.Background(), asPrincipal(uuid.New()), p.ID)
	require.NoError(t, err)
	assert.Equal(t, guard.RedirectSafe, decision)
	assert.Contains(t, f.posts.posts, p.ID)
}

func TestDeleteByOwnerEnqueuesImageCleanup(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	p := storedPost(f.posts, author, true, time.Now().Add(-time.Hour))
	url := "http://storage/posts/x/original"
	p.ImageURL = &url

	decision, err := f.svc.Delete(context.Background(), asPrincipal(author), p.ID)
	require.NoError(t, err)
	assert.Equal(t, guard.Allowed, decision)
	assert.NotContains(t, f.posts.posts, p.ID)

	require.Len(t, f.enqueuer.tasks, 1)
	assert.Equal(t, "post:delete_images", f.enqueuer.tasks[0].Type())
}

func TestDeleteWithoutImageSkipsCleanup(t *testing.T) {
	f := newFixture()
	author := uuid.New()
	p := storedPost(f.posts, author, true, time.Now().Add(-time.Hour))

	_, err := f.svc.Delete(context.Background(), asPrincipal(author), p.ID)
	require.NoError(t, err)
	assert.Empty(t, f.enqueuer.tasks)
}
