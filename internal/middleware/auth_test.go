package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alimikegami/marketplace-service/internal/domain"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	users map[int64]domain.User
}

func (s *stubUserRepo) AddUser(_ context.Context, _ domain.User) (int64, error) { return 0, nil }
func (s *stubUserRepo) GetUserByEmail(_ context.Context, _ string) (domain.User, error) {
	return domain.User{}, nil
}
func (s *stubUserRepo) GetUserByID(_ context.Context, id int64) (domain.User, error) {
	return s.users[id], nil
}
func (s *stubUserRepo) GetUsers(_ context.Context, _ pkgdto.Filter) ([]domain.User, error) {
	return nil, nil
}
func (s *stubUserRepo) CountUsers(_ context.Context) (int64, error) { return 0, nil }
func (s *stubUserRepo) UpdateUser(_ context.Context, _ domain.User) error { return nil }
func (s *stubUserRepo) UpdateUserPassword(_ context.Context, _ int64, _ string) error {
	return nil
}
func (s *stubUserRepo) DeleteUser(_ context.Context, _ int64) error { return nil }
func (s *stubUserRepo) AddAddress(_ context.Context, _ domain.Address) error {
	return nil
}
func (s *stubUserRepo) GetAddressesByUserID(_ context.Context, _ int64) ([]domain.Address, error) {
	return nil, nil
}
func (s *stubUserRepo) ClearDefaultAddresses(_ context.Context, _ int64) error { return nil }
func (s *stubUserRepo) AttachSellerProfile(_ context.Context, _ int64, _ string, _ string) error {
	return nil
}
func (s *stubUserRepo) IncrementSellerSales(_ context.Context, _ int64, _ int64) error {
	return nil
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func performRequest(t *testing.T, handler echo.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))

	return rec
}

func TestIsLoggedIn_ValidToken(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]domain.User{
		1: {ID: 1, Name: "Alice", Role: domain.RoleUser},
	}}
	m := CreateAuthMiddleware(repo, testSecret)

	token, err := utils.CreateJWTToken(1, "Alice", domain.RoleUser, testSecret)
	require.NoError(t, err)

	var captured domain.User
	handler := m.IsLoggedIn(func(c echo.Context) error {
		captured = CurrentUser(c)
		return okHandler(c)
	})

	rec := performRequest(t, handler, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), captured.ID)
	assert.Equal(t, "Alice", captured.Name)
}

func TestIsLoggedIn_MissingHeader(t *testing.T) {
	m := CreateAuthMiddleware(&stubUserRepo{users: map[int64]domain.User{}}, testSecret)

	rec := performRequest(t, m.IsLoggedIn(okHandler), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIsLoggedIn_MalformedToken(t *testing.T) {
	m := CreateAuthMiddleware(&stubUserRepo{users: map[int64]domain.User{}}, testSecret)

	rec := performRequest(t, m.IsLoggedIn(okHandler), "Bearer not-a-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIsLoggedIn_WrongSigningKey(t *testing.T) {
	m := CreateAuthMiddleware(&stubUserRepo{users: map[int64]domain.User{}}, testSecret)

	token, err := utils.CreateJWTToken(1, "Alice", domain.RoleUser, "other-secret")
	require.NoError(t, err)

	rec := performRequest(t, m.IsLoggedIn(okHandler), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIsLoggedIn_DeletedUser(t *testing.T) {
	m := CreateAuthMiddleware(&stubUserRepo{users: map[int64]domain.User{}}, testSecret)

	token, err := utils.CreateJWTToken(99, "Ghost", domain.RoleUser, testSecret)
	require.NoError(t, err)

	rec := performRequest(t, m.IsLoggedIn(okHandler), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIsAdmin(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]domain.User{
		1: {ID: 1, Name: "Alice", Role: domain.RoleUser},
		2: {ID: 2, Name: "Root", Role: domain.RoleAdmin},
	}}
	m := CreateAuthMiddleware(repo, testSecret)

	userToken, err := utils.CreateJWTToken(1, "Alice", domain.RoleUser, testSecret)
	require.NoError(t, err)

	adminToken, err := utils.CreateJWTToken(2, "Root", domain.RoleAdmin, testSecret)
	require.NoError(t, err)

	handler := m.IsLoggedIn(m.IsAdmin(okHandler))

	rec := performRequest(t, handler, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = performRequest(t, handler, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}
