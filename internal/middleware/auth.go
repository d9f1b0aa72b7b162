package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"venuehub/internal/pkg/jwt"
	"venuehub/internal/pkg/response"
)

// JWTAuth validates the bearer token and exposes the session in the context
// under user_id, role, email and name.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		setSession(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth sets the session when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalJWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			if claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1])); err == nil {
				setSession(c, claims)
			}
		}
		c.Next()
	}
}

func setSession(c *gin.Context, claims *jwt.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("email", claims.Email)
	c.Set("name", claims.Name)
}
