package domain

import "time"

// Comment belongs to a post. Comments are listed oldest first and are
// removed with their post or their author.
type Comment struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	PostID    int64     `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	Author User `json:"author"`
}

// OwnedBy reports whether the given user is the comment's author.
func (c *Comment) OwnedBy(viewer *User) bool {
	return viewer != nil && viewer.ID == c.AuthorID
}
