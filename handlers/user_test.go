package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"newshub/middleware"
	"newshub/models"
)

// The length checks run before any database access, so an overlong new
// password must be rejected with 400 rather than failing inside bcrypt.
func TestChangePassword_RejectsOverlongPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "64f000000000000000000001")
	})
	router.PATCH("/users/change-password", ChangePassword)

	body := `{"currentPassword":"secret1","newPassword":"` +
		strings.Repeat("p", models.MaxPasswordLength+1) + `"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/users/change-password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "72")
}

func TestChangePassword_RejectsShortPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "64f000000000000000000001")
	})
	router.PATCH("/users/change-password", ChangePassword)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/users/change-password",
		strings.NewReader(`{"currentPassword":"secret1","newPassword":"short"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least 6")
}
