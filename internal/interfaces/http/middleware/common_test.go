package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gescom/backend/internal/domain/shared"
	"github.com/gescom/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserContextRouter(captured *uuid.UUID, found *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(UserContext())
	router.GET("/records", func(c *gin.Context) {
		userID, ok := shared.UserIDFromContext(c.Request.Context())
		*captured = userID
		*found = ok
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequestID(t *testing.T) {
	t.Run("request context carries the ID written to the header", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(RequestID())

		var fromCtx string
		router.GET("/records", func(c *gin.Context) {
			fromCtx = logger.GetRequestID(c.Request.Context())
			c.Status(http.StatusOK)
		})

		req, _ := http.NewRequest(http.MethodGet, "/records", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, fromCtx)
		assert.Equal(t, w.Header().Get("X-Request-ID"), fromCtx)
	})
}

func TestUserContext(t *testing.T) {
	t.Run("propagates a valid X-User-ID header", func(t *testing.T) {
		var captured uuid.UUID
		var found bool
		router := setupUserContextRouter(&captured, &found)

		userID := uuid.New()
		req, _ := http.NewRequest(http.MethodGet, "/records", nil)
		req.Header.Set("X-User-ID", userID.String())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, found)
		assert.Equal(t, userID, captured)
	})

	t.Run("ignores a malformed header", func(t *testing.T) {
		var captured uuid.UUID
		var found bool
		router := setupUserContextRouter(&captured, &found)

		req, _ := http.NewRequest(http.MethodGet, "/records", nil)
		req.Header.Set("X-User-ID", "not-a-uuid")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, found)
	})

	t.Run("absent header leaves the context bare", func(t *testing.T) {
		var captured uuid.UUID
		var found bool
		router := setupUserContextRouter(&captured, &found)

		req, _ := http.NewRequest(http.MethodGet, "/records", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, found)
	})
}
