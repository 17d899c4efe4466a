package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogicum/internal/domain"
	"blogicum/internal/middleware"
	"blogicum/internal/service"
	"blogicum/internal/validator"
)

// AuthHandler renders the registration and login forms and manages the
// session cookie.
type AuthHandler struct {
	auth          service.AuthServiceInterface
	validator     *validator.Validator
	cookieName    string
	sessionTTL    time.Duration
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth service.AuthServiceInterface, v *validator.Validator, cookieName string, sessionTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		validator:     v,
		cookieName:    cookieName,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

// RegistrationForm handles GET /auth/registration.
func (h *AuthHandler) RegistrationForm(c *gin.Context) {
	h.renderRegistration(c, validator.RegistrationForm{}, nil)
}

// Register handles POST /auth/registration. Success redirects to login.
func (h *AuthHandler) Register(c *gin.Context) {
	form := validator.RegistrationForm{
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		FirstName:       c.PostForm("first_name"),
		LastName:        c.PostForm("last_name"),
		Password:        c.PostForm("password"),
		PasswordConfirm: c.PostForm("password_confirm"),
	}
	if err := h.validator.ValidateRegistration(&form); err != nil {
		h.renderRegistration(c, form, validator.FieldErrors(err))
		return
	}

	if _, err := h.auth.Register(c.Request.Context(), form); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			h.renderRegistration(c, form, map[string]string{"Username": "this username is already taken"})
			return
		}
		renderServerError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, loginPath)
}

// LoginForm handles GET /auth/login.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.renderLogin(c, "", c.Query("next"), nil)
}

// Login handles POST /auth/login. Success opens a session, sets the
// cookie and follows the next parameter when it points at this site.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := c.PostForm("next")

	session, err := h.auth.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.renderLogin(c, username, next, map[string]string{
				"__all__": "invalid username or password",
			})
			return
		}
		renderServerError(c, err)
		return
	}

	c.SetCookie(h.cookieName, session.ID, int(h.sessionTTL.Seconds()), "/", "", h.secureCookies, true)
	c.Redirect(http.StatusSeeOther, safeNextURL(next))
}

// Logout handles POST /auth/logout. The session row goes away with the
// cookie; anonymous logouts just redirect home.
func (h *AuthHandler) Logout(c *gin.Context) {
	if session := middleware.Session(c); session != nil {
		if err := h.auth.Logout(c.Request.Context(), session.ID); err != nil {
			renderServerError(c, err)
			return
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) renderRegistration(c *gin.Context, form validator.RegistrationForm, fieldErrors map[string]string) {
	c.HTML(http.StatusOK, "registration/registration_form.html", pageData(c, gin.H{
		"Form":   form,
		"Errors": fieldErrors,
	}))
}

func (h *AuthHandler) renderLogin(c *gin.Context, username, next string, fieldErrors map[string]string) {
	c.HTML(http.StatusOK, "registration/login.html", pageData(c, gin.H{
		"Username": username,
		"Next":     next,
		"Errors":   fieldErrors,
	}))
}
