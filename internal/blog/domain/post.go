package domain

import "time"

type Post struct {
	ID         string
	AuthorID   string
	AuthorName string // joined from users for rendering
	Title      string
	Content    string
	CreatedAt  time.Time
	Comments   []Comment
}

type Comment struct {
	ID         string
	PostID     string
	AuthorID   string
	AuthorName string // joined from users for rendering
	Content    string
	CreatedAt  time.Time
}
