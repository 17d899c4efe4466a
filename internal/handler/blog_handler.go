package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogicum/internal/domain"
	"blogicum/internal/metrics"
	"blogicum/internal/middleware"
	"blogicum/internal/pagination"
	"blogicum/internal/service"
	"blogicum/internal/validator"
)

// BlogHandler renders the feeds, post pages and the post/comment forms.
type BlogHandler struct {
	blog      service.BlogServiceInterface
	validator *validator.Validator
	mediaDir  string
}

// NewBlogHandler creates a new BlogHandler. Uploaded post images are
// stored under mediaDir.
func NewBlogHandler(blog service.BlogServiceInterface, v *validator.Validator, mediaDir string) *BlogHandler {
	return &BlogHandler{
		blog:      blog,
		validator: v,
		mediaDir:  mediaDir,
	}
}

// Index handles GET / - the global feed.
func (h *BlogHandler) Index(c *gin.Context) {
	page := pagination.ParsePageParam(c.Query("page"))
	listing, err := h.blog.Feed(c.Request.Context(), page)
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.HTML(http.StatusOK, "blog/index.html", pageData(c, gin.H{
		"Posts": listing.Posts,
		"Page":  listing.Page,
	}))
}

// CategoryPosts handles GET /category/:slug - the feed of one published
// category.
func (h *BlogHandler) CategoryPosts(c *gin.Context) {
	page := pagination.ParsePageParam(c.Query("page"))
	category, listing, err := h.blog.CategoryFeed(c.Request.Context(), c.Param("slug"), page)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.HTML(http.StatusOK, "blog/category.html", pageData(c, gin.H{
		"Category": category,
		"Posts":    listing.Posts,
		"Page":     listing.Page,
	}))
}

// createSegment is the reserved :id value for the post create form. The
// router cannot register /posts/create next to /posts/:id, so the handler
// dispatches on the parameter.
const createSegment = "create"

// PostDetail handles GET /posts/:id - one post with its comments and an
// empty comment form - and GET /posts/create - the create form.
func (h *BlogHandler) PostDetail(c *gin.Context) {
	if c.Param("id") == createSegment {
		h.createPostForm(c)
		return
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}

	page, err := h.blog.PostDetail(c.Request.Context(), id, middleware.User(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	h.renderDetail(c, http.StatusOK, page, validator.CommentForm{}, nil)
}

func (h *BlogHandler) renderDetail(c *gin.Context, status int, page *service.PostPage, form validator.CommentForm, fieldErrors map[string]string) {
	c.HTML(status, "blog/detail.html", pageData(c, gin.H{
		"Post":        page.Post,
		"Comments":    page.Comments,
		"CommentForm": form,
		"Errors":      fieldErrors,
	}))
}

// createPostForm renders the create form for GET /posts/create.
func (h *BlogHandler) createPostForm(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	h.renderPostForm(c, http.StatusOK, validator.PostForm{PubDate: time.Now(), IsPublished: true}, nil, false)
}

// CreatePost handles POST /posts/create. Any other :id value is 404.
func (h *BlogHandler) CreatePost(c *gin.Context) {
	if c.Param("id") != createSegment {
		renderNotFound(c)
		return
	}
	user, ok := requireUser(c)
	if !ok {
		return
	}

	form, fieldErrors := h.parsePostForm(c)
	if err := h.validator.ValidatePost(&form); err != nil || len(fieldErrors) > 0 {
		merge(fieldErrors, validator.FieldErrors(err))
		h.renderPostForm(c, http.StatusOK, form, fieldErrors, false)
		return
	}

	if _, err := h.blog.CreatePost(c.Request.Context(), user, form); err != nil {
		renderServerError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
}

// EditPostForm handles GET /posts/:id/edit.
func (h *BlogHandler) EditPostForm(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}

	post, err := h.blog.PostForEdit(c.Request.Context(), id, middleware.User(c))
	if err != nil {
		h.postEditError(c, id, err)
		return
	}

	form := validator.PostForm{
		Title:       post.Title,
		Text:        post.Text,
		PubDate:     post.PubDate,
		CategoryID:  post.CategoryID,
		LocationID:  post.LocationID,
		IsPublished: post.IsPublished,
		ImagePath:   post.ImagePath,
	}
	h.renderPostForm(c, http.StatusOK, form, nil, true)
}

// EditPost handles POST /posts/:id/edit.
func (h *BlogHandler) EditPost(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}

	form, fieldErrors := h.parsePostForm(c)
	if err := h.validator.ValidatePost(&form); err != nil || len(fieldErrors) > 0 {
		merge(fieldErrors, validator.FieldErrors(err))
		h.renderPostForm(c, http.StatusOK, form, fieldErrors, true)
		return
	}

	if _, err := h.blog.UpdatePost(c.Request.Context(), id, middleware.User(c), form); err != nil {
		h.postEditError(c, id, err)
		return
	}

	c.Redirect(http.StatusSeeOther, postPath(id))
}

// DeletePostForm handles GET /posts/:id/delete - the confirmation page.
func (h *BlogHandler) DeletePostForm(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}

	post, err := h.blog.PostForEdit(c.Request.Context(), id, middleware.User(c))
	if err != nil {
		h.postEditError(c, id, err)
		return
	}

	c.HTML(http.StatusOK, "blog/delete.html", pageData(c, gin.H{"Post": post}))
}

// DeletePost handles POST /posts/:id/delete.
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}

	user := middleware.User(c)
	if err := h.blog.DeletePost(c.Request.Context(), id, user); err != nil {
		h.postEditError(c, id, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
}

// AddComment handles POST /posts/:id/comment. An invalid comment
// re-renders the detail page with the field error and writes nothing.
func (h *BlogHandler) AddComment(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}

	form := validator.CommentForm{Text: c.PostForm("text")}
	if err := h.validator.ValidateComment(&form); err != nil {
		page, detailErr := h.blog.PostDetail(c.Request.Context(), id, middleware.User(c))
		if detailErr != nil {
			if errors.Is(detailErr, domain.ErrNotFound) {
				renderNotFound(c)
				return
			}
			renderServerError(c, detailErr)
			return
		}
		h.renderDetail(c, http.StatusOK, page, form, validator.FieldErrors(err))
		return
	}

	if _, err := h.blog.AddComment(c.Request.Context(), id, middleware.User(c), form); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			renderNotFound(c)
			return
		}
		renderServerError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, postPath(id))
}

// EditCommentForm handles GET /posts/:id/comment/:comment_id/edit.
func (h *BlogHandler) EditCommentForm(c *gin.Context) {
	postID, comment, ok := h.loadOwnComment(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "blog/comment.html", pageData(c, gin.H{
		"PostID":  postID,
		"Comment": comment,
		"Form":    validator.CommentForm{Text: comment.Text},
		"Delete":  false,
	}))
}

// EditComment handles POST /posts/:id/comment/:comment_id/edit.
func (h *BlogHandler) EditComment(c *gin.Context) {
	postID, comment, ok := h.loadOwnComment(c)
	if !ok {
		return
	}

	form := validator.CommentForm{Text: c.PostForm("text")}
	if err := h.validator.ValidateComment(&form); err != nil {
		c.HTML(http.StatusOK, "blog/comment.html", pageData(c, gin.H{
			"PostID":  postID,
			"Comment": comment,
			"Form":    form,
			"Delete":  false,
			"Errors":  validator.FieldErrors(err),
		}))
		return
	}

	if err := h.blog.UpdateComment(c.Request.Context(), postID, comment.ID, middleware.User(c), form); err != nil {
		h.commentEditError(c, postID, err)
		return
	}

	c.Redirect(http.StatusSeeOther, postPath(postID))
}

// DeleteCommentForm handles GET /posts/:id/comment/:comment_id/delete -
// the confirmation page.
func (h *BlogHandler) DeleteCommentForm(c *gin.Context) {
	postID, comment, ok := h.loadOwnComment(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "blog/comment.html", pageData(c, gin.H{
		"PostID":  postID,
		"Comment": comment,
		"Delete":  true,
	}))
}

// DeleteComment handles POST /posts/:id/comment/:comment_id/delete.
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	postID, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return
	}
	commentID, ok := parseID(c.Param("comment_id"))
	if !ok {
		renderNotFound(c)
		return
	}

	if err := h.blog.DeleteComment(c.Request.Context(), postID, commentID, middleware.User(c)); err != nil {
		h.commentEditError(c, postID, err)
		return
	}

	c.Redirect(http.StatusSeeOther, postPath(postID))
}

// loadOwnComment resolves the route params to a comment owned by the
// viewer. Mismatched posts render 404; someone else's comment silently
// redirects to the post detail.
func (h *BlogHandler) loadOwnComment(c *gin.Context) (int64, *domain.Comment, bool) {
	postID, ok := parseID(c.Param("id"))
	if !ok {
		renderNotFound(c)
		return 0, nil, false
	}
	commentID, ok := parseID(c.Param("comment_id"))
	if !ok {
		renderNotFound(c)
		return 0, nil, false
	}

	comment, err := h.blog.Comment(c.Request.Context(), postID, commentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			renderNotFound(c)
		} else {
			renderServerError(c, err)
		}
		return 0, nil, false
	}

	if !comment.OwnedBy(middleware.User(c)) {
		c.Redirect(http.StatusFound, postPath(postID))
		c.Abort()
		return 0, nil, false
	}
	return postID, comment, true
}

// postEditError maps author-only failures: non-authors are silently sent
// back to the post detail, missing posts render 404.
func (h *BlogHandler) postEditError(c *gin.Context, id int64, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthor):
		c.Redirect(http.StatusSeeOther, postPath(id))
		c.Abort()
	case errors.Is(err, domain.ErrNotFound):
		renderNotFound(c)
	default:
		renderServerError(c, err)
	}
}

func (h *BlogHandler) commentEditError(c *gin.Context, postID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthor):
		c.Redirect(http.StatusSeeOther, postPath(postID))
		c.Abort()
	case errors.Is(err, domain.ErrNotFound):
		renderNotFound(c)
	default:
		renderServerError(c, err)
	}
}

func (h *BlogHandler) renderPostForm(c *gin.Context, status int, form validator.PostForm, fieldErrors map[string]string, editing bool) {
	choices, err := h.blog.FormChoices(c.Request.Context())
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.HTML(status, "blog/create.html", pageData(c, gin.H{
		"Form":    form,
		"Errors":  fieldErrors,
		"Choices": choices,
		"Editing": editing,
		"PostID":  c.Param("id"),
	}))
}

// parsePostForm reads the post form fields. Parse failures come back as
// field errors so the form re-renders instead of erroring out.
func (h *BlogHandler) parsePostForm(c *gin.Context) (validator.PostForm, map[string]string) {
	fieldErrors := make(map[string]string)

	form := validator.PostForm{
		Title:       c.PostForm("title"),
		Text:        c.PostForm("text"),
		IsPublished: c.PostForm("is_published") != "",
	}

	if raw := c.PostForm("pub_date"); raw != "" {
		pubDate, err := time.ParseInLocation(DateTimeLocalFormat, raw, time.Local)
		if err != nil {
			fieldErrors["PubDate"] = "invalid publication date"
		} else {
			form.PubDate = pubDate
		}
	}

	if raw := c.PostForm("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fieldErrors["CategoryID"] = "invalid category"
		} else {
			form.CategoryID = categoryID
		}
	}

	if raw := c.PostForm("location_id"); raw != "" {
		locationID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fieldErrors["LocationID"] = "invalid location"
		} else {
			form.LocationID = &locationID
		}
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		fieldErrors["Image"] = "could not save the uploaded image"
	} else {
		form.ImagePath = imagePath
	}

	return form, fieldErrors
}

// saveImage stores an uploaded post image under the media dir as
// <uuid><ext> and returns the stored name. A form without an image
// returns nil.
func (h *BlogHandler) saveImage(c *gin.Context) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.mediaDir, name)); err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("save image: %w", err)
	}
	metrics.ImageUploadsTotal.WithLabelValues("success").Inc()
	return &name, nil
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func postPath(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10)
}

func merge(dst, src map[string]string) {
	for field, msg := range src {
		dst[field] = msg
	}
}
