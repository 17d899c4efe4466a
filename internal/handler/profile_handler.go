package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogicum/internal/domain"
	"blogicum/internal/middleware"
	"blogicum/internal/pagination"
	"blogicum/internal/service"
	"blogicum/internal/validator"
)

// editSegment is the reserved :username value for the profile edit form.
// The router cannot register /profile/edit next to /profile/:username, so
// the handler dispatches on the parameter.
const editSegment = "edit"

// ProfileHandler renders author profiles and the profile edit form.
type ProfileHandler struct {
	blog      service.BlogServiceInterface
	auth      service.AuthServiceInterface
	validator *validator.Validator
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(blog service.BlogServiceInterface, auth service.AuthServiceInterface, v *validator.Validator) *ProfileHandler {
	return &ProfileHandler{
		blog:      blog,
		auth:      auth,
		validator: v,
	}
}

// Show handles GET /profile/:username - an author page listing their
// posts, and GET /profile/edit - the viewer's profile edit form.
func (h *ProfileHandler) Show(c *gin.Context) {
	username := c.Param("username")
	if username == editSegment {
		h.editForm(c)
		return
	}

	viewer := middleware.User(c)
	page := pagination.ParsePageParam(c.Query("page"))
	profile, listing, err := h.blog.Profile(c.Request.Context(), username, viewer, page)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.HTML(http.StatusOK, "blog/profile.html", pageData(c, gin.H{
		"Profile": profile,
		"IsOwner": viewer != nil && viewer.ID == profile.ID,
		"Posts":   listing.Posts,
		"Page":    listing.Page,
	}))
}

// Update handles POST /profile/edit. Any other :username value is 404.
func (h *ProfileHandler) Update(c *gin.Context) {
	if c.Param("username") != editSegment {
		renderNotFound(c)
		return
	}

	user, ok := requireUser(c)
	if !ok {
		return
	}

	form := validator.ProfileForm{
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
	}
	if err := h.validator.ValidateProfile(&form); err != nil {
		h.renderEditForm(c, form, validator.FieldErrors(err))
		return
	}

	updated, err := h.auth.UpdateProfile(c.Request.Context(), user, form)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			h.renderEditForm(c, form, map[string]string{"Username": "this username is already taken"})
			return
		}
		renderServerError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+updated.Username)
}

func (h *ProfileHandler) editForm(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	form := validator.ProfileForm{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	h.renderEditForm(c, form, nil)
}

func (h *ProfileHandler) renderEditForm(c *gin.Context, form validator.ProfileForm, fieldErrors map[string]string) {
	c.HTML(http.StatusOK, "blog/user.html", pageData(c, gin.H{
		"Form":   form,
		"Errors": fieldErrors,
	}))
}
