package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogicum-backend/internal/domains/user/model"
	appjwt "blogicum-backend/pkg/jwt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return model.ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return model.ErrEmailTaken
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func newTestService() (UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserService(repo, appjwt.NewManager("test-secret", 15, 24)), repo
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)

	stored := repo.users[created.ID]
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "a@example.com", Password: "password1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "b@example.com", Password: "password1",
	})
	assert.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), model.LoginRequest{
		Username: "alice", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, "alice", login.User.Username)
	assert.Greater(t, login.ExpiresIn, int64(0))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Username: "alice", Password: "wrong",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginUnknownUserLooksLikeWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Username: "nobody", Password: "whatever",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestUpdateProfileChangesOnlyGivenFields(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "password1",
		FirstName: "Alice", LastName: "Liddell",
	})
	require.NoError(t, err)

	newEmail := "new@example.com"
	updated, err := svc.UpdateProfile(context.Background(), created.ID, model.UpdateProfileRequest{
		Email: &newEmail,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "Alice", repo.users[created.ID].FirstName)
}
