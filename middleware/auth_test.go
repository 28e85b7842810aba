package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lanterman/online-store/dispatch"
)

func newAuthRouter() (*gin.Engine, *struct {
	principal *dispatch.Principal
	seen      bool
}) {
	gin.SetMode(gin.TestMode)
	captured := &struct {
		principal *dispatch.Principal
		seen      bool
	}{}
	r := gin.New()
	r.GET("/probe", Authenticate, func(c *gin.Context) {
		captured.seen = true
		captured.principal, _ = dispatch.PrincipalFrom(c)
		c.Status(http.StatusOK)
	})
	return r, captured
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthenticateAnonymousPassesThrough(t *testing.T) {
	r, captured := newAuthRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, captured.seen)
	assert.Nil(t, captured.principal)
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, captured := newAuthRouter()

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id":  "u-1",
		"username": "just_user",
		"email":    "just@example.com",
		"role":     dispatch.RoleAdmin,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured.principal)
	assert.Equal(t, "u-1", captured.principal.ID)
	assert.Equal(t, "just_user", captured.principal.Username)
	assert.True(t, captured.principal.IsAdmin())
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	expired := signToken(t, "test-secret", jwt.MapClaims{
		"user_id":  "u-1",
		"username": "just_user",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"user_id":  "u-1",
		"username": "just_user",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	missingIdentity := signToken(t, "test-secret", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	for name, token := range map[string]string{
		"garbage":          "not-a-token",
		"expired":          expired,
		"wrong key":        wrongKey,
		"missing identity": missingIdentity,
	} {
		t.Run(name, func(t *testing.T) {
			r, captured := newAuthRouter()
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, captured.seen)
		})
	}
}
