package v1

import (
	"net/http"

	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/domain/marketplace"

	"github.com/gin-gonic/gin"
)

// ListingHandler defines the listing endpoints
type ListingHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Archive(ctx *gin.Context)
}

type listingHandler struct {
	listingService marketplace.ListingService
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listingService marketplace.ListingService) ListingHandler {
	return &listingHandler{listingService: listingService}
}

// Create opens an active listing for the caller
func (handler *listingHandler) Create(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request ListingRequest
	if !bindJSON(ctx, &request) {
		return
	}

	listing, err := handler.listingService.Create(ctx.Request.Context(), p, &marketplace.ListingInput{
		Title:       request.Title,
		Description: request.Description,
		PriceCents:  request.PriceCents,
		Currency:    request.Currency,
		Category:    request.Category,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toListingResponse(listing))
}

// List fetches listings with optional filters
func (handler *listingHandler) List(ctx *gin.Context) {
	query := marketplace.NewListingQuery()
	if err := bindListQuery(ctx, &query.ListQuery); err != nil {
		respond.Error(ctx, err)
		return
	}
	var err error
	if query.MinPrice, err = int64Query(ctx, "min_price"); err != nil {
		respond.Error(ctx, err)
		return
	}
	if query.MaxPrice, err = int64Query(ctx, "max_price"); err != nil {
		respond.Error(ctx, err)
		return
	}
	query.SellerID = ctx.Query("seller_id")
	query.Category = ctx.Query("category")
	query.Status = ctx.Query("status")
	query.Search = ctx.Query("q")

	list, err := handler.listingService.List(ctx.Request.Context(), query)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapList(list, toListingResponse))
}

// GetByID fetches a listing by ID
func (handler *listingHandler) GetByID(ctx *gin.Context) {
	listing, err := handler.listingService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toListingResponse(listing))
}

// Update edits an active listing; seller or admin only
func (handler *listingHandler) Update(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request ListingUpdateRequest
	if !bindJSON(ctx, &request) {
		return
	}

	listing, err := handler.listingService.Update(ctx.Request.Context(), p, ctx.Param("id"), &marketplace.ListingUpdate{
		Title:       request.Title,
		Description: request.Description,
		PriceCents:  request.PriceCents,
		Currency:    request.Currency,
		Category:    request.Category,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toListingResponse(listing))
}

// Archive withdraws a listing; seller or admin only
func (handler *listingHandler) Archive(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	if err := handler.listingService.Archive(ctx.Request.Context(), p, ctx.Param("id")); err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// OrderHandler defines the order endpoints
type OrderHandler interface {
	Place(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Complete(ctx *gin.Context)
	Cancel(ctx *gin.Context)
}

type orderHandler struct {
	orderService marketplace.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService marketplace.OrderService) OrderHandler {
	return &orderHandler{orderService: orderService}
}

// Place reserves a listing for the caller
func (handler *orderHandler) Place(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request OrderRequest
	if !bindJSON(ctx, &request) {
		return
	}
	if request.ListingID == "" {
		respond.Message(ctx, http.StatusBadRequest, "listing_id is required")
		return
	}

	order, err := handler.orderService.Place(ctx.Request.Context(), p, request.ListingID)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toOrderResponse(order))
}

// List returns the caller's orders, optionally only as buyer or seller
func (handler *orderHandler) List(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	query := marketplace.NewOrderQuery(p.UserID)
	if err := bindListQuery(ctx, &query.ListQuery); err != nil {
		respond.Error(ctx, err)
		return
	}
	query.Role = ctx.Query("role")

	list, err := handler.orderService.List(ctx.Request.Context(), query)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapList(list, toOrderResponse))
}

// GetByID fetches an order; buyer, seller or admin only
func (handler *orderHandler) GetByID(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	order, err := handler.orderService.GetByID(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toOrderResponse(order))
}

// Complete marks a pending order completed and its listing sold
func (handler *orderHandler) Complete(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	order, err := handler.orderService.Complete(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toOrderResponse(order))
}

// Cancel cancels a pending order and reactivates its listing
func (handler *orderHandler) Cancel(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	order, err := handler.orderService.Cancel(ctx.Request.Context(), p, ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toOrderResponse(order))
}
