package domain

import "errors"

var (
	// ErrNotFound is returned when a post, category, comment, user or
	// session does not exist, or exists but is not visible to the viewer.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthor is returned when an authenticated user attempts to
	// mutate a resource they do not own. Handlers turn it into a silent
	// redirect to the resource, never an error page.
	ErrNotAuthor = errors.New("not the author")

	// ErrCategoryInUse is returned when deleting a category that still has
	// posts referencing it.
	ErrCategoryInUse = errors.New("category is referenced by posts")

	// ErrUsernameTaken is returned on registration or profile edit when
	// the requested username already belongs to another user.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned on login when the username is
	// unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
