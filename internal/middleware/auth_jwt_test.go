package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	mw "app/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, sub int64, role string, tv int) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"tv":   tv,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return s
}

func doRequest(handler echo.HandlerFunc, mws []echo.MiddlewareFunc, authz string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	_ = h(c)
	return rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

type userRepoStub struct {
	user *model.User
}

func (s *userRepoStub) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.user, nil
}

func (s *userRepoStub) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return nil, nil
}

func TestAuthJWT(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	t.Run("有効なトークンは通る", func(t *testing.T) {
		rec := doRequest(okHandler, []echo.MiddlewareFunc{mw.AuthJWT(cfg)},
			"Bearer "+signToken(t, 1, "ADMIN", 0))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ヘッダなしは401", func(t *testing.T) {
		rec := doRequest(okHandler, []echo.MiddlewareFunc{mw.AuthJWT(cfg)}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Bearer形式でないのは401", func(t *testing.T) {
		rec := doRequest(okHandler, []echo.MiddlewareFunc{mw.AuthJWT(cfg)},
			"Basic abcdef")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("別のシークレットで署名されたのは401", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": int64(1), "role": "ADMIN", "tv": 0}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, err := token.SignedString([]byte("other-secret"))
		assert.NoError(t, err)

		rec := doRequest(okHandler, []echo.MiddlewareFunc{mw.AuthJWT(cfg)}, "Bearer "+s)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminRoleGuard(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	chain := []echo.MiddlewareFunc{mw.AuthJWT(cfg), mw.AdminRoleGuard()}

	t.Run("ADMINは通る", func(t *testing.T) {
		rec := doRequest(okHandler, chain, "Bearer "+signToken(t, 1, "ADMIN", 0))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("USERは403", func(t *testing.T) {
		rec := doRequest(okHandler, chain, "Bearer "+signToken(t, 2, "USER", 0))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestTokenVersionGuard(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	t.Run("tvが一致すれば通る", func(t *testing.T) {
		repo := &userRepoStub{user: &model.User{ID: 1, Role: model.RoleAdmin, TokenVersion: 3}}
		chain := []echo.MiddlewareFunc{mw.AuthJWT(cfg), mw.TokenVersionGuard(repo)}

		rec := doRequest(okHandler, chain, "Bearer "+signToken(t, 1, "ADMIN", 3))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("tvが古いトークンは401", func(t *testing.T) {
		repo := &userRepoStub{user: &model.User{ID: 1, Role: model.RoleAdmin, TokenVersion: 4}}
		chain := []echo.MiddlewareFunc{mw.AuthJWT(cfg), mw.TokenVersionGuard(repo)}

		rec := doRequest(okHandler, chain, "Bearer "+signToken(t, 1, "ADMIN", 3))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ユーザーが消えていたら401", func(t *testing.T) {
		repo := &userRepoStub{user: nil}
		chain := []echo.MiddlewareFunc{mw.AuthJWT(cfg), mw.TokenVersionGuard(repo)}

		rec := doRequest(okHandler, chain, "Bearer "+signToken(t, 1, "ADMIN", 0))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
