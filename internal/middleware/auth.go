package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-assignment-api/internal/constants"
	"github.com/yukikurage/task-assignment-api/internal/session"
)

// TokenVerifier checks a session token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (*session.Identity, error)
}

// ResolveIdentity reads the session cookie and, when it holds a valid and
// unexpired token, stores the caller's identity in the context. Requests
// without a usable token continue anonymously.
func ResolveIdentity(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.SessionCookieName)
		if err == nil && token != "" {
			if identity, err := verifier.Verify(token); err == nil {
				c.Set(constants.ContextKeyIdentity, identity)
			}
		}
		c.Next()
	}
}

// GetIdentity retrieves the caller identity from context, or nil when the
// request is anonymous.
func GetIdentity(c *gin.Context) *session.Identity {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return nil
	}

	identity, ok := value.(*session.Identity)
	if !ok {
		return nil
	}
	return identity
}
