package domain

import (
	"testing"
	"time"
)

func TestPostVisibleAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name              string
		postPublished     bool
		categoryPublished bool
		pubDate           time.Time
		visible           bool
	}{
		{"published post in published category", true, true, now.Add(-time.Hour), true},
		{"pub_date exactly now", true, true, now, true},
		{"future pub_date", true, true, now.Add(time.Hour), false},
		{"unpublished post", false, true, now.Add(-time.Hour), false},
		{"unpublished category", true, false, now.Add(-time.Hour), false},
		{"everything off", false, false, now.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Post{
				IsPublished: tt.postPublished,
				PubDate:     tt.pubDate,
				Category:    Category{IsPublished: tt.categoryPublished},
			}
			if got := p.VisibleAt(now); got != tt.visible {
				t.Errorf("VisibleAt() = %v, want %v", got, tt.visible)
			}
		})
	}
}

func TestPostOwnedBy(t *testing.T) {
	p := Post{AuthorID: "author-1"}

	if p.OwnedBy(nil) {
		t.Error("OwnedBy(nil) = true, want false")
	}
	if p.OwnedBy(&User{ID: "someone-else"}) {
		t.Error("OwnedBy(other user) = true, want false")
	}
	if !p.OwnedBy(&User{ID: "author-1"}) {
		t.Error("OwnedBy(author) = false, want true")
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()

	s := Session{ExpiresAt: now.Add(time.Minute)}
	if s.Expired(now) {
		t.Error("session expiring in a minute reported expired")
	}

	s.ExpiresAt = now.Add(-time.Minute)
	if !s.Expired(now) {
		t.Error("session expired a minute ago reported live")
	}

	s.ExpiresAt = now
	if !s.Expired(now) {
		t.Error("session expiring exactly now should count as expired")
	}
}

func TestUserFullName(t *testing.T) {
	tests := []struct {
		name  string
		user  User
		want  string
	}{
		{"both names", User{Username: "ivan", FirstName: "Ivan", LastName: "Petrov"}, "Ivan Petrov"},
		{"first only", User{Username: "ivan", FirstName: "Ivan"}, "Ivan"},
		{"last only", User{Username: "ivan", LastName: "Petrov"}, "Petrov"},
		{"neither", User{Username: "ivan"}, "ivan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}
