package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"blogicum/internal/domain"
	"blogicum/internal/service"
)

const (
	// CurrentUserKey is the context key for the authenticated user
	CurrentUserKey = "current_user"
	// CurrentSessionKey is the context key for the authenticated user's session
	CurrentSessionKey = "current_session"
)

// CurrentUser resolves the session cookie to a user and stores both in the
// gin context. Requests without a valid session pass through anonymously;
// a stale cookie is cleared on the way out.
func CurrentUser(auth service.AuthServiceInterface, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		user, session, err := auth.UserBySession(c.Request.Context(), sessionID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.SetCookie(cookieName, "", -1, "/", "", false, true)
			}
			c.Next()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Set(CurrentSessionKey, session)
		c.Next()
	}
}

// User returns the authenticated user from the gin context, or nil for
// anonymous requests.
func User(c *gin.Context) *domain.User {
	if v, exists := c.Get(CurrentUserKey); exists {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}

// Session returns the authenticated user's session from the gin context,
// or nil for anonymous requests.
func Session(c *gin.Context) *domain.Session {
	if v, exists := c.Get(CurrentSessionKey); exists {
		if session, ok := v.(*domain.Session); ok {
			return session
		}
	}
	return nil
}

// RequireAuth redirects anonymous requests to the login page, carrying the
// original URL in the next parameter so login can return the user.
func RequireAuth(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if User(c) == nil {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, loginPath+"?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}
