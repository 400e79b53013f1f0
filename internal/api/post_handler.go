package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"socialnet/internal/domain"
	"socialnet/internal/services"
)

// PostHandler handles post CRUD endpoints.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterRoutes registers post routes.
func (h *PostHandler) RegisterRoutes(router *gin.RouterGroup) {
	posts := router.Group("/posts")
	{
		posts.POST("", h.CreatePost)
		posts.GET("", h.ListPosts)
		posts.GET("/:id", h.GetPost)
		posts.PATCH("/:id", h.UpdatePost)
		posts.DELETE("/:id", h.DeletePost)
	}
}

// CreatePost creates a post.
// POST /api/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid post payload", nil))
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), &req)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	CreatedResponse(c, post)
}

// ListPosts returns every post, optionally filtered by author.
// GET /api/posts?userId=7
func (h *PostHandler) ListPosts(c *gin.Context) {
	if raw := c.Query("userId"); raw != "" {
		userID, err := strconv.Atoi(raw)
		if err != nil || userID < 1 {
			ErrorResponse(c, domain.NewValidationError("INVALID_USER_ID", "userId must be a positive integer",
				map[string]interface{}{"field": "userId"}))
			return
		}
		posts, err := h.postService.ListPostsByUser(c.Request.Context(), userID)
		if err != nil {
			ErrorResponse(c, err)
			return
		}
		SuccessResponse(c, posts)
		return
	}

	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, posts)
}

// GetPost returns one post.
// GET /api/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, post)
}

// UpdatePost applies a partial update to a post.
// PATCH /api/posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, domain.NewValidationError("INVALID_REQUEST", "Invalid post payload", nil))
		return
	}

	post, err := h.postService.UpdatePost(c.Request.Context(), id, &req)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, post)
}

// DeletePost removes a post.
// DELETE /api/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), id); err != nil {
		ErrorResponse(c, err)
		return
	}
	NoContentResponse(c)
}
