package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Identity is the verified caller extracted from a bearer token. Subject is
// the stable user id issued by the identity provider; Email is optional.
type Identity struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
}

// Token is a minimal interface for a verified token that can expose claims.
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on. Both the
// shared-secret HS256 verifier and the OIDC discovery verifier satisfy it.
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

const identityKey = "identity"

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using
// the provided verifier and stores the resulting Identity in the context.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		verified, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		var id Identity
		if err := verified.Claims(&id); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "failed to parse claims"})
			return
		}
		if id.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has no subject"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the authenticated Identity stored by AuthMiddleware.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
