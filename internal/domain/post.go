package domain

import "time"

// Post is a piece of user-authored content.
type Post struct {
	PostID    int       `db:"post_id" json:"postId"`
	Content   string    `db:"content" json:"content"`
	UserID    int       `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CreatePostRequest carries the data needed to create a post.
type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
	UserID  int    `json:"userId" binding:"required"`
}

// UpdatePostRequest carries the fields that can be updated on a post.
type UpdatePostRequest struct {
	Content *string `json:"content,omitempty"`
}
