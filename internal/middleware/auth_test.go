package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func setupProtectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AdminAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin": c.GetString(ContextAdminKey)})
	})
	return r
}

func TestSignAndParseAdminToken(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		token, err := SignAdminToken(testSecret, "admin", time.Hour)
		require.NoError(t, err)

		claims, err := ParseAdminToken(testSecret, token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := SignAdminToken(testSecret, "admin", time.Hour)
		require.NoError(t, err)

		_, err = ParseAdminToken("other-secret", token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := SignAdminToken(testSecret, "admin", -time.Minute)
		require.NoError(t, err)

		_, err = ParseAdminToken(testSecret, token)
		assert.Error(t, err)
	})
}

func TestAdminAuth(t *testing.T) {
	t.Run("valid token passes and exposes the username", func(t *testing.T) {
		router := setupProtectedRouter(testSecret)
		token, err := SignAdminToken(testSecret, "admin", time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin")
	})

	t.Run("missing header", func(t *testing.T) {
		router := setupProtectedRouter(testSecret)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("malformed header", func(t *testing.T) {
		router := setupProtectedRouter(testSecret)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		router := setupProtectedRouter(testSecret)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
