package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogicum/internal/metrics"
)

const (
	// CSRFCookieName is the double-submit cookie used for anonymous forms
	CSRFCookieName = "csrftoken"
	// CSRFFormField is the hidden form field carrying the token
	CSRFFormField = "csrf_token"
	// csrfTokenKey is the context key for the token embedded in forms
	csrfTokenKey = "csrf_token"
)

// CSRF validates the csrf_token form field on unsafe methods. Logged-in
// requests are checked against the session token; anonymous requests
// against a double-submit cookie, which is issued on safe requests that
// lack one. The forbidden handler renders the rejection response.
func CSRF(secureCookies bool, forbidden gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := expectedToken(c)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if expected == "" {
				expected = uuid.New().String()
				c.SetCookie(CSRFCookieName, expected, 0, "/", "", secureCookies, true)
			}
			c.Set(csrfTokenKey, expected)
			c.Next()
			return
		}

		submitted := c.PostForm(CSRFFormField)
		if expected == "" || submitted == "" ||
			subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) != 1 {
			metrics.CSRFRejectionsTotal.Inc()
			c.Status(http.StatusForbidden)
			forbidden(c)
			c.Abort()
			return
		}

		c.Set(csrfTokenKey, expected)
		c.Next()
	}
}

// expectedToken picks the token the form field must match: the session
// token for logged-in requests, the double-submit cookie otherwise.
func expectedToken(c *gin.Context) string {
	if session := Session(c); session != nil {
		return session.CSRFToken
	}
	if cookie, err := c.Cookie(CSRFCookieName); err == nil {
		return cookie
	}
	return ""
}

// CSRFToken returns the token to embed in forms rendered by this request.
func CSRFToken(c *gin.Context) string {
	if v, exists := c.Get(csrfTokenKey); exists {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
