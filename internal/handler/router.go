package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blogicum/internal/config"
	"blogicum/internal/middleware"
	"blogicum/internal/service"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Blog    *BlogHandler
	Profile *ProfileHandler
	Auth    *AuthHandler
	Pages   *PagesHandler
	Health  *HealthHandler
}

// NewRouter builds the gin engine: middleware chain, templates, static
// file serving and all routes.
func NewRouter(cfg *config.Config, auth service.AuthServiceInterface, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		renderServerError(c, fmt.Errorf("panic: %v", recovered))
	}))
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())
	router.Use(middleware.CurrentUser(auth, cfg.SessionCookie))
	router.Use(middleware.CSRF(cfg.SecureCookies, RenderCSRFFailure))

	router.SetFuncMap(TemplateFuncs)
	router.LoadHTMLGlob(cfg.TemplateGlob)
	router.Static("/static", cfg.StaticDir)
	router.Static("/media", cfg.MediaDir)

	router.GET("/healthz", h.Health.Health)
	router.GET("/live", h.Health.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", h.Blog.Index)
	router.GET("/category/:slug", h.Blog.CategoryPosts)

	router.GET("/profile/:username", h.Profile.Show)
	router.POST("/profile/:username", h.Profile.Update)

	posts := router.Group("/posts")
	{
		// /posts/create shares the :id wildcard; the handlers dispatch on it
		posts.GET("/:id", h.Blog.PostDetail)
		posts.POST("/:id", h.Blog.CreatePost)

		authed := posts.Group("", middleware.RequireAuth(loginPath))
		{
			authed.GET("/:id/edit", h.Blog.EditPostForm)
			authed.POST("/:id/edit", h.Blog.EditPost)
			authed.GET("/:id/delete", h.Blog.DeletePostForm)
			authed.POST("/:id/delete", h.Blog.DeletePost)
			authed.POST("/:id/comment", h.Blog.AddComment)
			authed.GET("/:id/comment/:comment_id/edit", h.Blog.EditCommentForm)
			authed.POST("/:id/comment/:comment_id/edit", h.Blog.EditComment)
			authed.GET("/:id/comment/:comment_id/delete", h.Blog.DeleteCommentForm)
			authed.POST("/:id/comment/:comment_id/delete", h.Blog.DeleteComment)
		}
	}

	authGroup := router.Group("/auth")
	{
		authGroup.GET("/registration", h.Auth.RegistrationForm)
		authGroup.POST("/registration", h.Auth.Register)
		authGroup.GET("/login", h.Auth.LoginForm)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	pages := router.Group("/pages")
	{
		pages.GET("/about", h.Pages.About)
		pages.GET("/rules", h.Pages.Rules)
	}

	router.NoRoute(func(c *gin.Context) {
		renderNotFound(c)
	})

	return router
}
