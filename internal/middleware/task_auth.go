package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-assignment-api/internal/errors"
)

// RequireManager rejects requests whose resolved identity is missing or is
// not a Manager. It must run after ResolveIdentity.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetIdentity(c).IsManager() {
			apierrors.Unauthorized(c, "User not authenticated")
			return
		}
		c.Next()
	}
}
