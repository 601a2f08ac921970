package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ParsifalKing/Menu-project/internal/logger"
	"github.com/ParsifalKing/Menu-project/internal/user"
	"github.com/ParsifalKing/Menu-project/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/test", chain...)
	return r
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) {
		rid := logger.RequestIDFrom(c.Request.Context())
		assert.NotEmpty(t, rid)
		c.String(http.StatusOK, rid)
	})

	t.Run("GeneratesIDWhenMissing", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("PreservesExistingID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Request-ID", "test-id-123")

		r.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Body.String())
	})
}

func TestAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userID := uuid.New()

	t.Run("MissingTokenIsAnonymous", func(t *testing.T) {
		r := newTestRouter(Auth(), func(c *gin.Context) {
			_, ok := utils.GetUserIDFromContext(c.Request.Context())
			assert.False(t, ok)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := user.GenerateJWT(userID, string(user.RoleUser), "user@example.com")
		require.NoError(t, err)

		r := newTestRouter(Auth(), func(c *gin.Context) {
			got, ok := utils.GetUserIDFromContext(c.Request.Context())
			assert.True(t, ok)
			assert.Equal(t, userID, got)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("InvalidTokenIsAnonymous", func(t *testing.T) {
		r := newTestRouter(Auth(), func(c *gin.Context) {
			_, ok := utils.GetUserIDFromContext(c.Request.Context())
			assert.False(t, ok)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CookieToken", func(t *testing.T) {
		token, err := user.GenerateJWT(userID, string(user.RoleUser), "user@example.com")
		require.NoError(t, err)

		r := newTestRouter(Auth(), func(c *gin.Context) {
			_, ok := utils.GetUserIDFromContext(c.Request.Context())
			assert.True(t, ok)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("RejectsAnonymous", func(t *testing.T) {
		r := newTestRouter(Auth(), RequireUser())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("AllowsAuthenticated", func(t *testing.T) {
		token, err := user.GenerateJWT(uuid.New(), string(user.RoleUser), "user@example.com")
		require.NoError(t, err)

		r := newTestRouter(Auth(), RequireUser())

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("RejectsPlainUser", func(t *testing.T) {
		token, err := user.GenerateJWT(uuid.New(), string(user.RoleUser), "user@example.com")
		require.NoError(t, err)

		r := newTestRouter(Auth(), RequireAdmin())

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("AllowsAdmin", func(t *testing.T) {
		token, err := user.GenerateJWT(uuid.New(), string(user.RoleAdmin), "admin@example.com")
		require.NoError(t, err)

		r := newTestRouter(Auth(), RequireAdmin())

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
