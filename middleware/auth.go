package middleware

import (
	"errors"
	"net/http"
	"strings"

	"food-marketplace-api/credentials"
	"food-marketplace-api/models"
	"food-marketplace-api/service"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthRequired validates the bearer token and injects the caller's identity into context
func AuthRequired(issuer *credentials.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			return
		}
		claims, err := issuer.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if errors.Is(err, credentials.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(identityKey, service.Identity{
			ActorID:  claims.ActorID,
			Email:    claims.Email,
			Role:     claims.Role,
			Verified: claims.Verified,
		})
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found in context"})
			return
		}
		for _, r := range roles {
			if who.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + rolesString(roles),
		})
	}
}

func rolesString(roles []models.UserRole) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// CurrentIdentity returns the identity AuthRequired stored for this request
func CurrentIdentity(c *gin.Context) (service.Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return service.Identity{}, false
	}
	who, ok := val.(service.Identity)
	return who, ok
}
