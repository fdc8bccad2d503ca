package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzhuravlev/shopcourse/internal/platform/logger"
	"github.com/mzhuravlev/shopcourse/internal/store"
	"github.com/mzhuravlev/shopcourse/internal/types"
)

const authorKey = "author"

// Auth holds the basic-auth gates for the user service.
type Auth struct {
	log   *logger.Logger
	users *store.UserStore
}

func NewAuth(baseLog *logger.Logger, users *store.UserStore) *Auth {
	return &Auth{log: baseLog.With("middleware", "Auth"), users: users}
}

// RequireAuthor resolves basic-auth credentials against the user store and
// stashes the authenticated user on the context. Missing credentials, an
// unknown username and a password mismatch all answer 401.
func (a *Auth) RequireAuthor() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="user-service"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}
		user, ok := a.users.Authenticate(username, password)
		if !ok {
			a.log.Warn("authentication failed", "username", username)
			c.Header("WWW-Authenticate", `Basic realm="user-service"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.Set(authorKey, user)
		c.Next()
	}
}

// RequireAdmin passes through authors with the admin role and rejects the
// rest with 403. It must run after RequireAuthor.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		author, ok := Author(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}
		if author.Info.Role != types.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// Author returns the user RequireAuthor resolved for this request.
func Author(c *gin.Context) (types.User, bool) {
	v, exists := c.Get(authorKey)
	if !exists {
		return types.User{}, false
	}
	user, ok := v.(types.User)
	return user, ok
}
