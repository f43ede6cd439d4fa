package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nucampus/campus-backend/internal/model"
	"github.com/nucampus/campus-backend/internal/response"
)

// RequireRole checks that the authenticated identity holds one of the given
// roles. Must run after RequireAuth.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
	}
}
