package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"backoffice-service/internal/models"
)

func requireRoleRouter(userRoles interface{}, required ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userRoles != nil {
			c.Set("user_roles", userRoles)
		}
		c.Next()
	})
	router.POST("/guarded", RequireRole(required...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func postGuarded(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	router := requireRoleRouter([]string{"employee"}, "admin", "employee")

	w := postGuarded(router)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_ForbidsMissingRole(t *testing.T) {
	router := requireRoleRouter([]string{"employee"}, "admin")

	w := postGuarded(router)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INSUFFICIENT_PERMISSIONS", resp.Error.Code)
}

func TestRequireRole_SuperAdminBypasses(t *testing.T) {
	router := requireRoleRouter([]string{"super_admin"}, "admin")

	w := postGuarded(router)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_ForbidsWhenRolesAbsent(t *testing.T) {
	router := requireRoleRouter(nil, "admin")

	w := postGuarded(router)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NO_ROLES", resp.Error.Code)
}
