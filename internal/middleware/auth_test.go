package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrismarisTech/vine-lingo/pkg/jwtutil"
)

func serveWithAuth(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.GET("/admin", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"email": c.Get("email")})
	}, AuthMiddleware)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	rec := serveWithAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	rec := serveWithAuth(t, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token, err := jwtutil.GenerateToken("mod@example.com", "moderator")
	require.NoError(t, err)

	rec := serveWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mod@example.com")
}
