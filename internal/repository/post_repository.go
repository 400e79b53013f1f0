package repository

import (
	"context"

	"socialnet/internal/domain"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id int) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id int) error
}

// PostRatingRepository defines the interface for post rating data operations.
type PostRatingRepository interface {
	Create(ctx context.Context, rating *domain.PostRating) error
	GetByID(ctx context.Context, id int) (*domain.PostRating, error)
	ListByPost(ctx context.Context, postID int) ([]*domain.PostRating, error)
	Update(ctx context.Context, rating *domain.PostRating) error
	Delete(ctx context.Context, id int) error
}
