package middleware

import (
	"net/http"
	"strconv"

	"github.com/Mitesh-Saste/OLP/internal/dto"
	"github.com/Mitesh-Saste/OLP/internal/identity"
	"github.com/gin-gonic/gin"
)

const identityKey = "principal"

// RequireIdentity trusts the X-User-ID / X-User-Role headers set by the
// upstream auth layer and makes the principal available to handlers.
// Authentication itself happens before requests reach this service.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 64)
		if err != nil || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing or invalid identity"})
			return
		}
		c.Set(identityKey, identity.Identity{
			UserID: uint(userID),
			Role:   identity.ParseRole(c.GetHeader("X-User-Role")),
		})
		c.Next()
	}
}

// Principal returns the identity attached by RequireIdentity.
func Principal(c *gin.Context) identity.Identity {
	principal, _ := c.MustGet(identityKey).(identity.Identity)
	return principal
}
