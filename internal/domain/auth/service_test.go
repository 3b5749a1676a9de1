package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coatline/internal/core/apperror"
	"coatline/internal/core/id"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users map[id.ID]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[id.ID]*User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID.String())
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("user", username)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperror.NewNotFound("user", user.ID.String())
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Exists(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	jwtService := NewJWTService(DefaultJWTConfig("test-secret"))
	cfg := DefaultServiceConfig()
	cfg.MaxLoginAttempts = 3
	return NewService(repo, fakeTxManager{}, jwtService, cfg), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "jiyoung",
		Password: "correct horse",
		Name:     "Ji-young Park",
	})
	require.NoError(t, err)
	assert.True(t, user.Active)

	result, err := svc.Login(context.Background(), Credentials{
		Username: "jiyoung",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestRegister_DuplicateUsernameRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "jiyoung",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Username: "jiyoung",
		Password: "different pass",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "jiyoung",
		Password: "short",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestLogin_WrongPasswordLocksAfterMaxAttempts(t *testing.T) {
	svc, repo := newTestService(t)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "jiyoung",
		Password: "correct horse",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Login(context.Background(), Credentials{
			Username: "jiyoung",
			Password: "wrong",
		})
		require.Error(t, err)
	}

	stored := repo.users[user.ID]
	assert.True(t, stored.IsLocked())

	// Correct password is still rejected while the lock holds.
	_, err = svc.Login(context.Background(), Credentials{
		Username: "jiyoung",
		Password: "correct horse",
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestLogin_SuccessResetsFailedAttempts(t *testing.T) {
	svc, repo := newTestService(t)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "jiyoung",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), Credentials{Username: "jiyoung", Password: "wrong"})
	require.Error(t, err)

	_, err = svc.Login(context.Background(), Credentials{Username: "jiyoung", Password: "correct horse"})
	require.NoError(t, err)

	stored := repo.users[user.ID]
	assert.Equal(t, 0, stored.FailedLoginAttempts)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLogin_DisabledAccountRejected(t *testing.T) {
	svc, repo := newTestService(t)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "jiyoung",
		Password: "correct horse",
	})
	require.NoError(t, err)
	repo.users[user.ID].Active = false

	_, err = svc.Login(context.Background(), Credentials{Username: "jiyoung", Password: "correct horse"})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "jiyoung",
		Password: "correct horse",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, "wrong", "battery staple")
	require.Error(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, "correct horse", "battery staple")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), Credentials{Username: "jiyoung", Password: "battery staple"})
	require.NoError(t, err)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	jwtService := NewJWTService(DefaultJWTConfig("test-secret"))

	userID := id.New()
	token, _, err := jwtService.GenerateAccessToken(userID.String(), "jiyoung", "Ji-young Park")
	require.NoError(t, err)

	uc, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), uc.UserID)
	assert.Equal(t, "jiyoung", uc.Username)
}

func TestValidateToken_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken(id.New().String(), "jiyoung", "")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}
