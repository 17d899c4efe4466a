package domain

import "time"

// Post is a blog entry. The Author, Category and optional Location are
// loaded alongside the post by all listing queries, together with the
// number of comments.
type Post struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	ImagePath   *string    `json:"image_path,omitempty"`
	PubDate     time.Time  `json:"pub_date"`
	CreatedAt   time.Time  `json:"created_at"`
	IsPublished bool       `json:"is_published"`
	CategoryID  int64      `json:"category_id"`
	LocationID  *int64     `json:"location_id,omitempty"`
	AuthorID    string     `json:"author_id"`

	Author       User      `json:"author"`
	Category     Category  `json:"category"`
	Location     *Location `json:"location,omitempty"`
	CommentCount int       `json:"comment_count"`
}

// VisibleAt reports whether the post is publicly visible at the given
// instant: published, in a published category, and past its publication
// date. The instant is the request clock, so a future-dated post flips to
// visible without any write once the clock passes pub_date.
func (p *Post) VisibleAt(now time.Time) bool {
	return p.IsPublished && p.Category.IsPublished && !p.PubDate.After(now)
}

// OwnedBy reports whether the given user is the post's author. Owners see
// their posts in every context regardless of visibility.
func (p *Post) OwnedBy(viewer *User) bool {
	return viewer != nil && viewer.ID == p.AuthorID
}
