package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"karigar/config"
	"karigar/models"
	"karigar/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "middleware-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(), func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	r.GET("/admin", JWTAuthMiddleware(), RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newAuthRouter(t)

	token, err := utils.GenerateToken("cust-1", models.RoleCustomer, "Asha", time.Hour)
	require.NoError(t, err)

	w := get(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"cust-1","role":"CUSTOMER"}`, w.Body.String())

	for name, header := range map[string]string{
		"missing":   "",
		"no bearer": token,
		"garbage":   "Bearer abc.def.ghi",
	} {
		w := get(r, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
		assert.Contains(t, w.Body.String(), `"code":"unauthorized"`, name)
	}
}

func TestRequireRoles(t *testing.T) {
	r := newAuthRouter(t)

	customer, err := utils.GenerateToken("cust-1", models.RoleCustomer, "", time.Hour)
	require.NoError(t, err)
	admin, err := utils.GenerateToken("admin-1", models.RoleAdmin, "", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer "+customer).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/admin", "Bearer "+admin).Code)
}
