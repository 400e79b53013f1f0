package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"socialnet/internal/domain"
	"socialnet/internal/services"
)

// PostRatingHandler handles post rating endpoints.
type PostRatingHandler struct {
	ratingService *services.PostRatingService
}

// NewPostRatingHandler creates a new post rating handler.
func NewPostRatingHandler(ratingService *services.PostRatingService) *PostRatingHandler {
	return &PostRatingHandler{ratingService: ratingService}
}

// RegisterRoutes registers post rating routes.
func (h *PostRatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	ratings := router.Group("/post-ratings")
	{
		ratings.POST("", h.CreateRating)
		ratings.GET("", h.ListRatings)
		ratings.GET("/:id", h.GetRating)
		ratings.PATCH("/:id", h.UpdateRating)
		ratings.DELETE("/:id", h.DeleteRating)
	}
}

// CreateRating rates a post.
// POST /api/post-ratings
func (h *PostRatingHandler) CreateRating(c *gin.Context) {
	var req domain.CreatePostRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid rating payload", nil))
		return
	}

	rating, err := h.ratingService.CreateRating(c.Request.Context(), &req)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	CreatedResponse(c, rating)
}

// ListRatings returns the ratings of one post.
// GET /api/post-ratings?postId=3
func (h *PostRatingHandler) ListRatings(c *gin.Context) {
	postID, err := strconv.Atoi(c.Query("postId"))
	if err != nil || postID < 1 {
		ErrorResponse(c, domain.NewValidationError("INVALID_POST_ID", "postId must be a positive integer",
			map[string]interface{}{"field": "postId"}))
		return
	}

	ratings, err := h.ratingService.ListRatingsByPost(c.Request.Context(), postID)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, ratings)
}

// GetRating returns one rating.
// GET /api/post-ratings/:id
func (h *PostRatingHandler) GetRating(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	rating, err := h.ratingService.GetRating(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, rating)
}

// UpdateRating applies a partial update to a rating.
// PATCH /api/post-ratings/:id
func (h *PostRatingHandler) UpdateRating(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	var req domain.UpdatePostRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid rating payload", nil))
		return
	}

	rating, err := h.ratingService.UpdateRating(c.Request.Context(), id, &req)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, rating)
}

// DeleteRating removes a rating.
// DELETE /api/post-ratings/:id
func (h *PostRatingHandler) DeleteRating(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	if err := h.ratingService.DeleteRating(c.Request.Context(), id); err != nil {
		ErrorResponse(c, err)
		return
	}
	NoContentResponse(c)
}
