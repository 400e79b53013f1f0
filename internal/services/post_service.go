package services

import (
	"context"

	"socialnet/internal/domain"
	"socialnet/internal/repository"
)

// PostService handles post business logic.
type PostService struct {
	posts repository.PostRepository
	users repository.UserRepository
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, users repository.UserRepository) *PostService {
	return &PostService{posts: posts, users: users}
}

// CreatePost creates a post for an existing account.
func (s *PostService) CreatePost(ctx context.Context, req *domain.CreatePostRequest) (*domain.Post, error) {
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	post := &domain.Post{
		Content: req.Content,
		UserID:  req.UserID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost retrieves a post by id.
func (s *PostService) GetPost(ctx context.Context, id int) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListPosts retrieves every post, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

// ListPostsByUser retrieves the posts of one account, newest first.
func (s *PostService) ListPostsByUser(ctx context.Context, userID int) ([]*domain.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

// UpdatePost applies a partial update to a post.
func (s *PostService) UpdatePost(ctx context.Context, id int, req *domain.UpdatePostRequest) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post.
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	if _, err := s.posts.GetByID(ctx, id); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}

// PostRatingService handles post rating business logic.
type PostRatingService struct {
	ratings repository.PostRatingRepository
	posts   repository.PostRepository
}

// NewPostRatingService creates a new post rating service.
func NewPostRatingService(ratings repository.PostRatingRepository, posts repository.PostRepository) *PostRatingService {
	return &PostRatingService{ratings: ratings, posts: posts}
}

// CreateRating rates an existing post.
func (s *PostRatingService) CreateRating(ctx context.Context, req *domain.CreatePostRatingRequest) (*domain.PostRating, error) {
	if _, err := s.posts.GetByID(ctx, req.PostID); err != nil {
		return nil, err
	}

	rating := &domain.PostRating{
		Rating: req.Rating,
		UserID: req.UserID,
		PostID: req.PostID,
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// GetRating retrieves a rating by id.
func (s *PostRatingService) GetRating(ctx context.Context, id int) (*domain.PostRating, error) {
	return s.ratings.GetByID(ctx, id)
}

// ListRatingsByPost retrieves every rating attached to a post.
func (s *PostRatingService) ListRatingsByPost(ctx context.Context, postID int) ([]*domain.PostRating, error) {
	return s.ratings.ListByPost(ctx, postID)
}

// UpdateRating applies a partial update to a rating.
func (s *PostRatingService) UpdateRating(ctx context.Context, id int, req *domain.UpdatePostRatingRequest) (*domain.PostRating, error) {
	rating, err := s.ratings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Rating != nil {
		rating.Rating = *req.Rating
	}
	if err := s.ratings.Update(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// DeleteRating removes a rating.
func (s *PostRatingService) DeleteRating(ctx context.Context, id int) error {
	if _, err := s.ratings.GetByID(ctx, id); err != nil {
		return err
	}
	return s.ratings.Delete(ctx, id)
}
