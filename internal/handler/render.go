package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"blogicum/internal/domain"
	"blogicum/internal/logger"
	"blogicum/internal/middleware"
)

// TemplateFuncs is the function map the templates are parsed with.
var TemplateFuncs = template.FuncMap{
	"datetime": func(t time.Time) string {
		return t.Format("02 Jan 2006 15:04")
	},
	"datetimeLocal": func(t time.Time) string {
		return t.Format(DateTimeLocalFormat)
	},
	// for comparing the optional location select against its options
	"derefInt64": func(p *int64) int64 {
		if p == nil {
			return 0
		}
		return *p
	},
}

// pageData assembles the base template context shared by every page: the
// viewer and the CSRF token for forms.
func pageData(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = middleware.User(c)
	data["CSRFToken"] = middleware.CSRFToken(c)
	return data
}

// renderNotFound renders the 404 page.
func renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "pages/404.html", pageData(c, nil))
	c.Abort()
}

// renderServerError logs the failure and renders the 500 page.
func renderServerError(c *gin.Context, err error) {
	logger.Error("Request failed",
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()))
	c.HTML(http.StatusInternalServerError, "pages/500.html", pageData(c, nil))
	c.Abort()
}

// RenderCSRFFailure renders the 403 page for rejected form submissions.
// Wired into the CSRF middleware.
func RenderCSRFFailure(c *gin.Context) {
	c.HTML(http.StatusForbidden, "pages/403csrf.html", pageData(c, nil))
}

// safeNextURL keeps login redirects on this site: only rooted local paths
// pass, anything else falls back to the root.
func safeNextURL(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return "/"
}

// requireUser is the auth gate for routes dispatched inside a wildcard,
// where the router-level RequireAuth middleware cannot apply. Anonymous
// requests are redirected to login.
func requireUser(c *gin.Context) (*domain.User, bool) {
	user := middleware.User(c)
	if user == nil {
		next := url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, loginPath+"?next="+next)
		c.Abort()
		return nil, false
	}
	return user, true
}
