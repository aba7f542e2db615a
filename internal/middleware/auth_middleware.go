package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/juanesscobar/taskok/internal/shared/contextutil"
	"github.com/juanesscobar/taskok/internal/shared/response"
	"github.com/juanesscobar/taskok/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenCookieName is the httpOnly cookie carrying the session token for
// browser clients.
const TokenCookieName = "token"

// AuthMiddleware extracts a session token from the Authorization header or
// the token cookie, verifies it and attaches the user id to the request
// context. Missing and invalid tokens get the same 401 surface; only the
// server-side log tells them apart.
func AuthMiddleware(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(TokenCookieName); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			zap.L().Debug("auth rejected: no token", zap.String("path", c.FullPath()))
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
			c.Abort()
			return
		}

		userID, err := issuer.Verify(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				zap.L().Debug("auth rejected: token expired", zap.String("path", c.FullPath()))
			} else {
				zap.L().Warn("auth rejected: invalid token", zap.String("path", c.FullPath()))
			}
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Request = c.Request.WithContext(
			contextutil.WithUserID(c.Request.Context(), userID),
		)

		c.Next()
	}
}

// RoleMiddleware restricts a route to the given roles. It expects a prior
// handler to have resolved and set "role" in the gin context.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource", nil)
			c.Abort()
			return
		}

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to access this resource", nil)
		c.Abort()
	}
}
