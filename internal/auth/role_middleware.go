package auth

import (
	"net/http"

	"github.com/juanesscobar/taskok/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireRole resolves the authenticated user's stored role and rejects the
// request unless it matches one of the allowed roles. The token only carries
// identity, so role checks always consult the credential store.
func RequireRole(svc Service, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
			c.Abort()
			return
		}

		userResp, err := svc.GetMe(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource", nil)
			c.Abort()
			return
		}

		for _, role := range allowedRoles {
			if userResp.Role == role {
				c.Set("role", userResp.Role)
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource", nil)
		c.Abort()
	}
}
