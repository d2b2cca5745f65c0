package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"blogicum-backend/internal/domains/post/model"
	"blogicum-backend/internal/shared/guard"
	"blogicum-backend/internal/shared/middleware"
	"blogicum-backend/internal/shared/pagination"
)

// stubPostService returns canned values; each test sets only what it needs.
type stubPostService struct {
	detail       *model.DetailResponse
	detailErr    error
	decision     guard.Decision
	mutationPost *model.PostResponse
}

func (s *stubPostService) ListHome(context.Context, int) ([]model.PostResponse, pagination.Page, error) {
	return nil, pagination.New(1, 0), nil
}

func (s *stubPostService) ListForCategory(context.Context, uuid.UUID, int) ([]model.PostResponse, pagination.Page, error) {
	return nil, pagination.New(1, 0), nil
}

func (s *stubPostService) ListForAuthor(context.Context, uuid.UUID, bool, int) ([]model.PostResponse, pagination.Page, error) {
	return nil, pagination.New(1, 0), nil
}

func (s *stubPostService) GetDetail(context.Context, guard.Principal, uuid.UUID) (*model.DetailResponse, error) {
	return s.detail, s.detailErr
}

func (s *stubPostService) FormMetadata(context.Context) (*model.FormMetadata, error) {
	return &model.FormMetadata{}, nil
}

func (s *stubPostService) Create(context.Context, uuid.UUID, model.PostForm) (*model.PostResponse, error) {
	return s.mutationPost, nil
}

func (s *stubPostService) GetForMutation(context.Context, guard.Principal, uuid.UUID) (guard.Decision, *model.PostResponse, error) {
	return s.decision, s.mutationPost, nil
}

func (s *stubPostService) Update(context.Context, guard.Principal, uuid.UUID, model.PostForm) (guard.Decision, *model.PostResponse, error) {
	return s.decision, s.mutationPost, nil
}

func (s *stubPostService) Delete(context.Context, guard.Principal, uuid.UUID) (guard.Decision, error) {
	return s.decision, nil
}

func (s *stubPostService) Export(context.Context, uuid.UUID) (*excelize.File, error) {
	return excelize.NewFile(), nil
}

type stubImageService struct{}

func (s *stubImageService) Upload(context.Context, guard.Principal, uuid.UUID, []byte) (guard.Decision, string, error) {
	return guard.Allowed, "", nil
}

func (s *stubImageService) ProcessImage(context.Context, uuid.UUID) error { return nil }

func (s *stubImageService) CleanupImages(context.Context, uuid.UUID) error { return nil }

func newTestRouter(svc *stubPostService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, &stubImageService{})

	router := gin.New()
	router.GET("/posts/:post_id", h.GetDetail)
	router.GET("/posts/:post_id/edit", h.EditPost)
	router.POST("/posts/:post_id/delete", func(c *gin.Context) {
		c.Set(middleware.CtxUserID, uuid.New())
		c.Set(middleware.CtxUsername, "alice")
		h.DeletePost(c)
	})
	return router
}

func TestGetDetailHiddenPostReturns404(t *testing.T) {
	svc := &stubPostService{detailErr: model.ErrPostNotFound}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDetailMalformedIDReturns404(t *testing.T) {
	router := newTestRouter(&stubPostService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDetailVisiblePost(t *testing.T) {
	svc := &stubPostService{detail: &model.DetailResponse{
		Post: model.PostResponse{ID: uuid.New(), Title: "hello", PubDate: time.Now()},
	}}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello")
}

func TestEditByNonAuthorRedirectsToDetail(t *testing.T) {
	svc := &stubPostService{decision: guard.RedirectSafe}
	router := newTestRouter(svc)

	postID := uuid.NewString()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/"+postID+"/edit", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/"+postID, w.Header().Get("Location"))
}

func TestEditUnauthenticatedRedirectsToLogin(t *testing.T) {
	svc := &stubPostService{decision: guard.RedirectLogin}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/"+uuid.NewString()+"/edit", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
}

func TestDeleteByOwnerRedirectsToProfile(t *testing.T) {
	svc := &stubPostService{decision: guard.Allowed}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts/"+uuid.NewString()+"/delete", strings.NewReader(""))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile/alice", w.Header().Get("Location"))
}
