package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"

	"socialnet/internal/domain"
)

// sqlitePostRepository implements PostRepository on top of dbx/SQLite.
type sqlitePostRepository struct {
	db *dbx.DB
}

// NewSQLitePostRepository creates a new SQLite-backed post repository.
func NewSQLitePostRepository(db *dbx.DB) PostRepository {
	return &sqlitePostRepository{db: db}
}

func (r *sqlitePostRepository) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	res, err := r.db.Insert("posts", dbx.Params{
		"content":    post.Content,
		"user_id":    post.UserID,
		"created_at": post.CreatedAt,
		"updated_at": post.UpdatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated post id: %w", err)
	}
	post.PostID = int(id)
	return nil
}

func (r *sqlitePostRepository) GetByID(ctx context.Context, id int) (*domain.Post, error) {
	var post domain.Post
	err := r.db.Select().From("posts").Where(dbx.HashExp{"post_id": id}).WithContext(ctx).One(&post)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("POST_NOT_FOUND", "Post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query post %d: %w", id, err)
	}
	return &post, nil
}

func (r *sqlitePostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.Select().From("posts").OrderBy("created_at DESC").WithContext(ctx).All(&posts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

func (r *sqlitePostRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.Select().From("posts").
		Where(dbx.HashExp{"user_id": userID}).
		OrderBy("created_at DESC").
		WithContext(ctx).
		All(&posts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for user %d: %w", userID, err)
	}
	return posts, nil
}

func (r *sqlitePostRepository) Update(ctx context.Context, post *domain.Post) error {
	post.UpdatedAt = time.Now().UTC()
	_, err := r.db.Update("posts", dbx.Params{
		"content":    post.Content,
		"updated_at": post.UpdatedAt,
	}, dbx.HashExp{"post_id": post.PostID}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to update post %d: %w", post.PostID, err)
	}
	return nil
}

func (r *sqlitePostRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Delete("posts", dbx.HashExp{"post_id": id}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	return nil
}

// sqlitePostRatingRepository implements PostRatingRepository on top of dbx/SQLite.
type sqlitePostRatingRepository struct {
	db *dbx.DB
}

// NewSQLitePostRatingRepository creates a new SQLite-backed post rating repository.
func NewSQLitePostRatingRepository(db *dbx.DB) PostRatingRepository {
	return &sqlitePostRatingRepository{db: db}
}

func (r *sqlitePostRatingRepository) Create(ctx context.Context, rating *domain.PostRating) error {
	rating.CreatedAt = time.Now().UTC()

	res, err := r.db.Insert("post_ratings", dbx.Params{
		"rating":     rating.Rating,
		"user_id":    rating.UserID,
		"post_id":    rating.PostID,
		"created_at": rating.CreatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to insert post rating: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated rating id: %w", err)
	}
	rating.PostRatingID = int(id)
	return nil
}

func (r *sqlitePostRatingRepository) GetByID(ctx context.Context, id int) (*domain.PostRating, error) {
	var rating domain.PostRating
	err := r.db.Select().From("post_ratings").Where(dbx.HashExp{"post_rating_id": id}).WithContext(ctx).One(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("POST_RATING_NOT_FOUND", "Post rating not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query post rating %d: %w", id, err)
	}
	return &rating, nil
}

func (r *sqlitePostRatingRepository) ListByPost(ctx context.Context, postID int) ([]*domain.PostRating, error) {
	var ratings []*domain.PostRating
	err := r.db.Select().From("post_ratings").
		Where(dbx.HashExp{"post_id": postID}).
		OrderBy("created_at DESC").
		WithContext(ctx).
		All(&ratings)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for post %d: %w", postID, err)
	}
	return ratings, nil
}

func (r *sqlitePostRatingRepository) Update(ctx context.Context, rating *domain.PostRating) error {
	_, err := r.db.Update("post_ratings", dbx.Params{
		"rating": rating.Rating,
	}, dbx.HashExp{"post_rating_id": rating.PostRatingID}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to update post rating %d: %w", rating.PostRatingID, err)
	}
	return nil
}

func (r *sqlitePostRatingRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Delete("post_ratings", dbx.HashExp{"post_rating_id": id}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete post rating %d: %w", id, err)
	}
	return nil
}
