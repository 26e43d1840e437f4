package api

import (
	"net/http"
	"net/url"

	"github.com/causeshare-api/internal/config"
	"github.com/causeshare-api/internal/models"
	"github.com/causeshare-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// currentUserKey is the gin context key holding the resolved session user
const currentUserKey = "currentUser"

// loginPath is where the authorization guard sends rejected callers
const loginPath = "/login"

// sessionMiddleware resolves the session cookie into the current user.
// The token carries the identity key (email); the user record is loaded
// fresh from the users collection on every request. A missing or
// invalid cookie leaves the request anonymous, it is never an error
// here.
func sessionMiddleware(services *service.Services, cfg *config.Config, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.Auth.CookieName)
		if err == nil && token != "" {
			user, err := services.Auth.ResolveSession(c.Request.Context(), token)
			if err == nil {
				c.Set(currentUserKey, user)
			} else {
				log.Debug().Err(err).Msg("Session cookie did not resolve, continuing anonymous")
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user for this request, if any
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// RequireRoles guards a route with an allowed role set. Both the
// unauthenticated and the wrong-role case redirect to the login entry
// point, preserving the intended destination; there is no separate
// forbidden signal at this layer.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !allowed[user.Role] {
			redirectToLogin(c)
			return
		}
		c.Next()
	}
}

// redirectToLogin aborts the request with a redirect to the login
// entry point, carrying the original destination for post-login use
func redirectToLogin(c *gin.Context) {
	next := url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, loginPath+"?next="+next)
	c.Abort()
}
