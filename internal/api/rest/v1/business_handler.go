package v1

import (
	"net/http"

	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/domain/businesses"

	"github.com/gin-gonic/gin"
)

// BusinessHandler defines the business directory endpoints
type BusinessHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
	Verify(ctx *gin.Context)
}

type businessHandler struct {
	businessService businesses.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(businessService businesses.BusinessService) BusinessHandler {
	return &businessHandler{businessService: businessService}
}

// Create registers a business owned by the caller
func (handler *businessHandler) Create(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request BusinessRequest
	if !bindJSON(ctx, &request) {
		return
	}

	business, err := handler.businessService.Create(ctx.Request.Context(), p, &businesses.BusinessInput{
		Name:        request.Name,
		Description: request.Description,
		Category:    request.Category,
		Website:     request.Website,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toBusinessResponse(business))
}

// List fetches businesses with optional filters
func (handler *businessHandler) List(ctx *gin.Context) {
	query := businesses.NewBusinessQuery()
	if err := bindListQuery(ctx, &query.ListQuery); err != nil {
		respond.Error(ctx, err)
		return
	}
	verified, err := boolQuery(ctx, "verified")
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	query.Verified = verified
	query.Category = ctx.Query("category")
	query.Search = ctx.Query("q")

	list, err := handler.businessService.List(ctx.Request.Context(), query)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapList(list, toBusinessResponse))
}

// Get fetches a business by ID or slug
func (handler *businessHandler) Get(ctx *gin.Context) {
	business, err := handler.businessService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toBusinessResponse(business))
}

// Update edits a business; owner or admin only. The slug never changes.
func (handler *businessHandler) Update(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request BusinessUpdateRequest
	if !bindJSON(ctx, &request) {
		return
	}

	business, err := handler.businessService.Update(ctx.Request.Context(), p, ctx.Param("id"), &businesses.BusinessUpdate{
		Name:        request.Name,
		Description: request.Description,
		Category:    request.Category,
		Website:     request.Website,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toBusinessResponse(business))
}

// DeleteByID deletes a business; owner or admin only
func (handler *businessHandler) DeleteByID(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	if err := handler.businessService.DeleteByID(ctx.Request.Context(), p, ctx.Param("id")); err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Verify marks a business verified; admins only
func (handler *businessHandler) Verify(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	business, err := handler.businessService.Verify(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toBusinessResponse(business))
}

// ActivityHandler defines the activity feed endpoints
type ActivityHandler interface {
	List(ctx *gin.Context)
	Stats(ctx *gin.Context)
}

type activityHandler struct {
	activityService businesses.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService businesses.ActivityService) ActivityHandler {
	return &activityHandler{activityService: activityService}
}

// List returns recorded events, newest first by default
func (handler *activityHandler) List(ctx *gin.Context) {
	query := businesses.NewActivityQuery()
	if err := bindListQuery(ctx, &query.ListQuery); err != nil {
		respond.Error(ctx, err)
		return
	}
	query.Type = ctx.Query("type")
	query.Source = ctx.Query("source")
	query.ActorID = ctx.Query("actor_id")

	list, err := handler.activityService.List(ctx.Request.Context(), query)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapList(list, toActivityResponse))
}

// Stats returns the number of recorded events per type
func (handler *activityHandler) Stats(ctx *gin.Context) {
	stats, err := handler.activityService.Stats(ctx.Request.Context())
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapList(stats, func(s *businesses.ActivityStat) ActivityStatResponse {
		return ActivityStatResponse{Type: s.Type, Count: s.Count}
	}))
}
