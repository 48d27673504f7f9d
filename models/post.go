package models

import "time"

// Post belongs to exactly one User through UserID
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	UserID    int64     `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreatePostRequest is the allow-list for POST /v1/posts
// UserID is client supplied; it is not derived from the caller
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
	UserID  *int64 `json:"user_id" validate:"required"`
}

// UpdatePostRequest is the allow-list for PUT/PATCH /v1/posts/{id}
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	UserID  *int64  `json:"user_id"`
}

// PostListItem is the collection projection of a Post
type PostListItem struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Date    string `json:"date"` // YYYY-MM-DD
}

// PostCollection wraps the projected posts under "data"
type PostCollection struct {
	Data []PostListItem `json:"data"`
}
