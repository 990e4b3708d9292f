package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/venuehub-api/internal/utils"
)

const testSecret = "middleware-test-secret"

// run sends a request through the given middleware chain into a probe
// handler that records whether it was reached.
func run(t *testing.T, header string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := echo.HandlerFunc(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	require.NoError(t, h(c))
	return rec, reached
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, reached := run(t, "", JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")
	assert.False(t, reached)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	rec, reached := run(t, "Bearer garbage", JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
	assert.False(t, reached)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 1, utils.RoleClaims{}, -1)
	require.NoError(t, err)

	rec, reached := run(t, "Bearer "+tok.Token, JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
	assert.False(t, reached)
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 99, utils.RoleClaims{Business: true}, 1)
	require.NoError(t, err)

	rec, reached := run(t, "Bearer "+tok.Token, JWTAuth(testSecret))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestRequireRoleMatrix(t *testing.T) {
	tests := []struct {
		name    string
		roles   utils.RoleClaims
		require string
		allowed bool
	}{
		{name: "admin passes admin gate", roles: utils.RoleClaims{Admin: true}, require: RoleAdmin, allowed: true},
		{name: "business blocked at admin gate", roles: utils.RoleClaims{Business: true}, require: RoleAdmin, allowed: false},
		{name: "provider passes provider gate", roles: utils.RoleClaims{Provider: true}, require: RoleProvider, allowed: true},
		{name: "admin blocked at business gate", roles: utils.RoleClaims{Admin: true}, require: RoleBusiness, allowed: false},
		{name: "multi-role user passes both gates", roles: utils.RoleClaims{Provider: true, Business: true}, require: RoleBusiness, allowed: true},
		{name: "no roles blocked everywhere", roles: utils.RoleClaims{}, require: RoleProvider, allowed: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := utils.NewAccessToken(testSecret, 5, tt.roles, 1)
			require.NoError(t, err)

			rec, reached := run(t, "Bearer "+tok.Token, JWTAuth(testSecret), RequireRole(tt.require))
			if tt.allowed {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.True(t, reached)
			} else {
				assert.Equal(t, http.StatusForbidden, rec.Code)
				assert.False(t, reached)
			}
		})
	}
}

func TestRequireRoleWithoutJWTAuth(t *testing.T) {
	// RequireRole alone, no claims in context: always forbidden.
	rec, reached := run(t, "", RequireRole(RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}
