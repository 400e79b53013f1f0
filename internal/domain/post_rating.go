package domain

import "time"

// PostRating records one user's rating of one post.
type PostRating struct {
	PostRatingID int       `db:"post_rating_id" json:"postRatingId"`
	Rating       string    `db:"rating" json:"rating"`
	UserID       int       `db:"user_id" json:"userId"`
	PostID       int       `db:"post_id" json:"postId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// CreatePostRatingRequest carries the data needed to rate a post.
type CreatePostRatingRequest struct {
	Rating string `json:"rating" binding:"required"`
	UserID int    `json:"userId" binding:"required"`
	PostID int    `json:"postId" binding:"required"`
}

// UpdatePostRatingRequest carries the fields that can be updated on a rating.
type UpdatePostRatingRequest struct {
	Rating *string `json:"rating,omitempty"`
}
