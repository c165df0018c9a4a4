package http

import (
	"net/http"

	"postboard/internal/entity"
	"postboard/internal/usecase"
	"postboard/pkg/authz"
	"postboard/pkg/logger"
	"postboard/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

func (h *PostHandler) formatPostResponse(post *entity.Post, callerID uint) map[string]interface{} {
	return map[string]interface{}{
		"id":         post.ID,
		"owner_id":   post.OwnerID,
		"owner":      post.Owner,
		"title":      post.Title,
		"content":    post.Content,
		"is_owner":   authz.IsOwner(callerID, post.OwnerID),
		"created_at": post.CreatedAt,
		"updated_at": post.UpdatedAt,
	}
}

type ListPostsQuery struct {
	PageQuery
	Owner uint `form:"owner"`
}

type CreatePostRequest struct {
	Title   string `json:"title" form:"title" binding:"required,max=255"`
	Content string `json:"content" form:"content"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title" form:"title" binding:"omitempty,max=255"`
	Content *string `json:"content" form:"content"`
}

// ListPosts godoc
// @Summary      List posts
// @Description  List posts, newest first. Without limit the whole collection is returned.
// @Tags         posts
// @Produce      json
// @Param        limit query int false "Number of posts to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Param        owner query int false "Only posts owned by this user"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/ [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	var query ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts, total, err := h.postUseCase.ListPosts(c.Request.Context(), entity.PostFilter{
		OwnerID: query.Owner,
		Limit:   query.Limit,
		Offset:  query.Offset,
	})
	if err != nil {
		respondError(c, h.logger, err, "fetch posts")
		return
	}

	callerID := middleware.UserID(c)
	response := make([]map[string]interface{}, len(posts))
	for i, post := range posts {
		response[i] = h.formatPostResponse(post, callerID)
	}

	c.JSON(http.StatusOK, gin.H{"posts": response, "count": len(response), "total": total})
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a post owned by the authenticated user
// @Tags         posts
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Post data"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/ [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	callerID := middleware.UserID(c)

	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), callerID, req.Title, req.Content)
	if err != nil {
		respondError(c, h.logger, err, "create post")
		return
	}

	c.JSON(http.StatusCreated, h.formatPostResponse(post, callerID))
}

// GetPost godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/ [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, entity.ErrPostNotFound)
	if !ok {
		return
	}

	post, err := h.postUseCase.GetPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, h.logger, err, "fetch post")
		return
	}

	c.JSON(http.StatusOK, h.formatPostResponse(post, middleware.UserID(c)))
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Update title and/or content. Only the owner can update a post; omitted fields are left unchanged.
// @Tags         posts
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        request body UpdatePostRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/ [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := pathID(c, entity.ErrPostNotFound)
	if !ok {
		return
	}
	callerID := middleware.UserID(c)

	var req UpdatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.UpdatePost(c.Request.Context(), callerID, postID, usecase.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(c, h.logger, err, "update post")
		return
	}

	c.JSON(http.StatusOK, h.formatPostResponse(post, callerID))
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Delete a post. Only the owner can delete it.
// @Tags         posts
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/ [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := pathID(c, entity.ErrPostNotFound)
	if !ok {
		return
	}

	if err := h.postUseCase.DeletePost(c.Request.Context(), middleware.UserID(c), postID); err != nil {
		respondError(c, h.logger, err, "delete post")
		return
	}

	c.Status(http.StatusNoContent)
}
