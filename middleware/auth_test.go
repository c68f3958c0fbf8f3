package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newshub/models"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(testSecret, time.Hour, "64f000000000000000000001", models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, time.Hour, "64f000000000000000000001", models.RoleUser)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := IssueToken(testSecret, -time.Minute, "64f000000000000000000001", models.RoleUser)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not.a.token")
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(header string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			c.Request.Header.Set("Authorization", header)
		}
		return c
	}

	t.Run("well-formed header", func(t *testing.T) {
		token, ok := BearerToken(newCtx("Bearer abc123"))
		assert.True(t, ok)
		assert.Equal(t, "abc123", token)
	})

	t.Run("missing header", func(t *testing.T) {
		_, ok := BearerToken(newCtx(""))
		assert.False(t, ok)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, ok := BearerToken(newCtx("Basic abc123"))
		assert.False(t, ok)
	})

	t.Run("empty token", func(t *testing.T) {
		_, ok := BearerToken(newCtx("Bearer "))
		assert.False(t, ok)
	})
}

// The 401 paths below abort before any database access, so the middleware
// can be exercised with a plain test router.
func TestAuth_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", Auth(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "No token provided")
	})

	t.Run("malformed token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Unauthorized")
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := IssueToken(testSecret, -time.Minute, "64f000000000000000000001", models.RoleUser)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	routerWithRole := func(role string) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set(CtxUserRole, role)
		})
		router.GET("/admin", AdminOnly(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	t.Run("admin passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		routerWithRole(models.RoleAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("plain user is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		routerWithRole(models.RoleUser).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Admin only")
	})
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPassword("secret1", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
