package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PagesHandler renders the static pages.
type PagesHandler struct{}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// About handles GET /pages/about.
func (h *PagesHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "pages/about.html", pageData(c, nil))
}

// Rules handles GET /pages/rules.
func (h *PagesHandler) Rules(c *gin.Context) {
	c.HTML(http.StatusOK, "pages/rules.html", pageData(c, nil))
}
