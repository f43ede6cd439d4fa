package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nucampus/campus-backend/internal/model"
	"github.com/nucampus/campus-backend/internal/service"
)

func setClaims(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyClaims, &service.Claims{UserID: 1, Email: "a@example.com", Role: role})
		c.Next()
	}
}

func requestStatus(t *testing.T, handlers ...gin.HandlerFunc) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	chain := append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/probe", chain...)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	code := requestStatus(t, setClaims(model.RoleAdmin), RequireRole(model.RoleAdmin))
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
}

func TestRequireRoleAllowsAnyListedRole(t *testing.T) {
	code := requestStatus(t, setClaims(model.RoleFaculty), RequireRole(model.RoleFaculty, model.RoleAdmin))
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	code := requestStatus(t, setClaims(model.RoleStudent), RequireRole(model.RoleAdmin))
	if code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", code)
	}
}

func TestRequireRoleRejectsMissingClaims(t *testing.T) {
	code := requestStatus(t, RequireRole(model.RoleAdmin))
	if code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", code)
	}
}
