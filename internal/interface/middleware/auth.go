package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/pkg/helpers"
	"github.com/oksasatya/storefront-api/pkg/response"
)

const ctxIdentityKey = "identity"

// IdentityResolver turns a session token into an identity, nil when invalid.
type IdentityResolver interface {
	Identify(token string) *entity.Identity
}

// Identify reads the session cookie and stores the caller identity on the
// context. It never aborts; guests simply have no identity.
func Identify(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(helpers.SessionCookie); err == nil && token != "" {
			if id := resolver.Identify(token); id != nil {
				c.Set(ctxIdentityKey, id)
				c.Set("userID", id.UserID)
			}
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity set by Identify, or nil.
func CurrentIdentity(c *gin.Context) *entity.Identity {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*entity.Identity)
	return id
}

// RequireSession rejects requests without a valid session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose caller is not an ADMIN, before any
// body is read.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsAdmin() {
			response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		c.Next()
	}
}
