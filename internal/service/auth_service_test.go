package service_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/abhishek972986/porter-managment/internal/config"
	"github.com/abhishek972986/porter-managment/internal/dto"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTokenStore is an in-memory TokenStore.
type memTokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemTokenStore() *memTokenStore { return &memTokenStore{revoked: map[string]time.Duration{}} }

func (s *memTokenStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = ttl
	return nil
}

func (s *memTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[jti]
	return ok, nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
		JWTAccessMinutes: 15,
		JWTRefreshHours:  1,
	}
}

func newAuth(t *testing.T) (*fixture, service.AuthService, *memTokenStore) {
	f := newFixture(t)
	store := newMemTokenStore()
	return f, service.NewAuthService(f.users, store, f.activity, testAuthConfig()), store
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	f, auth, _ := newAuth(t)

	reg, err := auth.Register(f.ctx, dto.RegisterRequest{Name: "Sita", Email: " Sita@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "sita@example.com", reg.User.Email)
	assert.Equal(t, model.RoleViewer, reg.User.Role)
	assert.Equal(t, 900, reg.ExpiresIn)

	_, err = auth.Register(f.ctx, dto.RegisterRequest{Name: "Sita", Email: "sita@example.com", Password: "secret1"})
	requireStatus(t, err, http.StatusConflict)

	login, err := auth.Login(f.ctx, dto.LoginRequest{Email: "sita@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	_, err = auth.Login(f.ctx, dto.LoginRequest{Email: "sita@example.com", Password: "wrong"})
	requireStatus(t, err, http.StatusUnauthorized)
	_, err = auth.Login(f.ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	requireStatus(t, err, http.StatusUnauthorized)

	user, err := auth.Authenticate(f.ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, user.ID)

	recent, err := f.activity.Recent(f.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ActivityUserLogin, recent[0].Type)
}

func TestAuth_TokenTypesNotInterchangeable(t *testing.T) {
	f, auth, _ := newAuth(t)
	reg, err := auth.Register(f.ctx, dto.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = auth.Authenticate(f.ctx, reg.RefreshToken)
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = auth.Refresh(f.ctx, reg.AccessToken)
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_RefreshRotates(t *testing.T) {
	f, auth, store := newAuth(t)
	reg, err := auth.Register(f.ctx, dto.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1"})
	require.NoError(t, err)

	next, err := auth.Refresh(f.ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, next.RefreshToken)
	assert.Len(t, store.revoked, 1)

	// Old token cannot be replayed
	_, err = auth.Refresh(f.ctx, reg.RefreshToken)
	requireStatus(t, err, http.StatusUnauthorized)

	require.NoError(t, auth.Logout(f.ctx, next.RefreshToken))
	_, err = auth.Refresh(f.ctx, next.RefreshToken)
	requireStatus(t, err, http.StatusUnauthorized)

	// Logout with garbage is a no-op
	require.NoError(t, auth.Logout(f.ctx, "not-a-token"))
}

func TestAuth_InactiveUserRejected(t *testing.T) {
	f, auth, _ := newAuth(t)
	reg, err := auth.Register(f.ctx, dto.RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&model.User{}).Where("id = ?", reg.User.ID).Update("active", false).Error)

	_, err = auth.Authenticate(f.ctx, reg.AccessToken)
	requireStatus(t, err, http.StatusUnauthorized)
	_, err = auth.Login(f.ctx, dto.LoginRequest{Email: "ravi@example.com", Password: "secret1"})
	requireStatus(t, err, http.StatusUnauthorized)
}
