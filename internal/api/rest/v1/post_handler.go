package v1

import (
	"net/http"

	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/domain/posts"

	"github.com/gin-gonic/gin"
)

// PostHandler defines the post endpoints
type PostHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type postHandler struct {
	postService posts.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService posts.PostService) PostHandler {
	return &postHandler{postService: postService}
}

// Create publishes a post for the caller
func (handler *postHandler) Create(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request PostRequest
	if !bindJSON(ctx, &request) {
		return
	}

	post, err := handler.postService.Create(ctx.Request.Context(), p, &posts.PostInput{
		Title: request.Title,
		Body:  request.Body,
		Tags:  request.Tags,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toPostResponse(post))
}

// List fetches posts optionally filtered by author, tag or text
func (handler *postHandler) List(ctx *gin.Context) {
	query := posts.NewPostQuery()
	if err := bindListQuery(ctx, &query.ListQuery); err != nil {
		respond.Error(ctx, err)
		return
	}
	query.AuthorID = ctx.Query("author_id")
	query.Tag = ctx.Query("tag")
	query.Search = ctx.Query("q")

	list, err := handler.postService.List(ctx.Request.Context(), query)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapList(list, toPostResponse))
}

// GetByID fetches a post by ID
func (handler *postHandler) GetByID(ctx *gin.Context) {
	post, err := handler.postService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toPostResponse(post))
}

// Update edits a post; authors and moderators only
func (handler *postHandler) Update(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request PostUpdateRequest
	if !bindJSON(ctx, &request) {
		return
	}

	post, err := handler.postService.Update(ctx.Request.Context(), p, ctx.Param("id"), &posts.PostUpdate{
		Title: request.Title,
		Body:  request.Body,
		Tags:  request.Tags,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toPostResponse(post))
}

// DeleteByID deletes a post; authors and moderators only
func (handler *postHandler) DeleteByID(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	if err := handler.postService.DeleteByID(ctx.Request.Context(), p, ctx.Param("id")); err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
