package domain

import "time"

// Category groups posts under a unique slug. Categories carry their own
// publication flag: hiding a category hides every post in it regardless of
// the posts' own flags.
type Category struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// Location is an optional place tag for a post. Deleting a location keeps
// the referencing posts and nulls their reference.
type Location struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}
