package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuehub/internal/database"
	"venuehub/internal/domain"
	"venuehub/internal/pkg/jwt"
	"venuehub/internal/pkg/logger"
)

func newTestService(t *testing.T) (*Service, *UserRepository, *jwt.Service) {
	t.Helper()
	repo := NewUserRepository(database.OpenTest(t))
	j := jwt.New("test-secret", time.Hour)
	return NewService(repo, j, logger.Discard()), repo, j
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, j := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterRequest{Email: " Owner@Example.com ", Password: "password1", Name: "Asha", Role: "owner"})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", res.User.Email)
	assert.Equal(t, domain.RoleOwner, res.User.Role)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	claims, err := j.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "owner", claims.Role)

	_, err = svc.Login(ctx, LoginRequest{Email: "owner@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, err := svc.Login(ctx, LoginRequest{Email: "OWNER@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, logged.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "a@example.com", Password: "password1", Name: "A"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterRequest{Email: "a@example.com", Password: "password2", Name: "B"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_PrivilegedRolesRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	for _, role := range []string{"admin", "event_manager"} {
		_, err := svc.Register(context.Background(), RegisterRequest{Email: role + "@example.com", Password: "password1", Name: "X", Role: role})
		assert.ErrorIs(t, err, ErrRoleNotAllowed, role)
	}
}

func TestLogin_Suspended(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterRequest{Email: "s@example.com", Password: "password1", Name: "S"})
	require.NoError(t, err)
	require.NoError(t, repo.SetStatus(ctx, res.User.ID, domain.UserSuspended))

	_, err = svc.Login(ctx, LoginRequest{Email: "s@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrAccountSuspended)
}

func TestHandler_RegisterValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _, _ := newTestService(t)
	r := gin.New()
	NewHandler(svc).RegisterPublicRoutes(r.Group("/api/v1"))

	body, _ := json.Marshal(map[string]any{"email": "not-an-email", "password": "short", "name": ""})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}
