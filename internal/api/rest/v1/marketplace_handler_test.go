//go:build unit
// +build unit

package v1

import (
	"net/http"
	"testing"
	"time"

	"github.com/hubverse/hub-services/internal/domain/marketplace"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type marketplaceFixture struct {
	router   *gin.Engine
	tokens   *auth.TokenManager
	listings *MockListingService
	orders   *MockOrderService
}

func newMarketplaceFixture(t *testing.T) *marketplaceFixture {
	f := &marketplaceFixture{
		router:   gin.New(),
		tokens:   testutil.NewTokenManager(t),
		listings: new(MockListingService),
		orders:   new(MockOrderService),
	}
	SetupMarketplaceRoutes(f.router, f.tokens, MarketplaceServices{Listings: f.listings, Orders: f.orders})
	t.Cleanup(func() {
		f.listings.AssertExpectations(t)
		f.orders.AssertExpectations(t)
	})
	return f
}

func TestListingHandler_Create(t *testing.T) {
	f := newMarketplaceFixture(t)
	seller := testutil.NewPrincipal(auth.RoleMember)
	now := time.Now().UTC()

	input := &marketplace.ListingInput{Title: "Bike", PriceCents: 12000, Currency: "EUR", Category: "sports"}
	f.listings.On("Create", mock.Anything, principalOf(seller), input).Return(&marketplace.Listing{
		ID: uuid.NewString(), SellerID: seller.UserID, Title: "Bike", PriceCents: 12000, Currency: "EUR",
		Category: "sports", Status: marketplace.ListingActive, DateTimeCreated: now, DateTimeUpdated: now,
	}, nil).Once()

	w := do(t, f.router, http.MethodPost, MarketplacePath+"/listings", testutil.BearerToken(t, f.tokens, seller), ListingRequest{
		Title: "Bike", PriceCents: 12000, Currency: "EUR", Category: "sports",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body ListingResponse
	decode(t, w, &body)
	assert.Equal(t, marketplace.ListingActive, body.Status)
	assert.Equal(t, int64(12000), body.PriceCents)
}

func TestListingHandler_ListFilters(t *testing.T) {
	f := newMarketplaceFixture(t)

	f.listings.On("List", mock.Anything, mock.MatchedBy(func(q *marketplace.ListingQuery) bool {
		return q.MinPrice == 100 && q.MaxPrice == 5000 && q.Category == "books" && q.Status == "active"
	})).Return(nil, nil).Once()

	w := do(t, f.router, http.MethodGet, MarketplacePath+"/listings?min_price=100&max_price=5000&category=books&status=active", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListingHandler_ListRejectsBadPrice(t *testing.T) {
	f := newMarketplaceFixture(t)
	w := do(t, f.router, http.MethodGet, MarketplacePath+"/listings?min_price=cheap", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "min_price must be an integer", messageOf(t, w))
}

func TestListingHandler_ArchiveConflict(t *testing.T) {
	f := newMarketplaceFixture(t)
	seller := testutil.NewPrincipal(auth.RoleMember)
	listingID := uuid.NewString()

	f.listings.On("Archive", mock.Anything, principalOf(seller), listingID).
		Return(apperr.Conflict("listing %s has a pending order", listingID)).Once()

	w := do(t, f.router, http.MethodDelete, MarketplacePath+"/listings/"+listingID, testutil.BearerToken(t, f.tokens, seller), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderHandler_PlaceRequiresListing(t *testing.T) {
	f := newMarketplaceFixture(t)
	buyer := testutil.NewPrincipal(auth.RoleMember)

	w := do(t, f.router, http.MethodPost, MarketplacePath+"/orders", testutil.BearerToken(t, f.tokens, buyer), OrderRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "listing_id is required", messageOf(t, w))
}

func TestOrderHandler_Place(t *testing.T) {
	f := newMarketplaceFixture(t)
	buyer := testutil.NewPrincipal(auth.RoleMember)
	listingID := uuid.NewString()
	now := time.Now().UTC()

	f.orders.On("Place", mock.Anything, principalOf(buyer), listingID).Return(&marketplace.Order{
		ID: uuid.NewString(), ListingID: listingID, BuyerID: buyer.UserID, SellerID: uuid.NewString(),
		AmountCents: 500, Currency: "EUR", Status: marketplace.OrderPending, DateTimeCreated: now, DateTimeUpdated: now,
	}, nil).Once()

	w := do(t, f.router, http.MethodPost, MarketplacePath+"/orders", testutil.BearerToken(t, f.tokens, buyer), OrderRequest{ListingID: listingID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body OrderResponse
	decode(t, w, &body)
	assert.Equal(t, marketplace.OrderPending, body.Status)
	assert.Equal(t, listingID, body.ListingID)
}

func TestOrderHandler_PlaceOwnListing(t *testing.T) {
	f := newMarketplaceFixture(t)
	seller := testutil.NewPrincipal(auth.RoleMember)
	listingID := uuid.NewString()

	f.orders.On("Place", mock.Anything, principalOf(seller), listingID).
		Return(nil, apperr.Invalid("sellers cannot order their own listing")).Once()

	w := do(t, f.router, http.MethodPost, MarketplacePath+"/orders", testutil.BearerToken(t, f.tokens, seller), OrderRequest{ListingID: listingID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_ListScopesToCaller(t *testing.T) {
	f := newMarketplaceFixture(t)
	buyer := testutil.NewPrincipal(auth.RoleMember)

	f.orders.On("List", mock.Anything, mock.MatchedBy(func(q *marketplace.OrderQuery) bool {
		return q.UserID == buyer.UserID && q.Role == "buyer"
	})).Return([]*marketplace.Order{}, nil).Once()

	w := do(t, f.router, http.MethodGet, MarketplacePath+"/orders?role=buyer", testutil.BearerToken(t, f.tokens, buyer), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderHandler_CompleteByBuyer(t *testing.T) {
	f := newMarketplaceFixture(t)
	buyer := testutil.NewPrincipal(auth.RoleMember)
	orderID := uuid.NewString()

	f.orders.On("Complete", mock.Anything, principalOf(buyer), orderID).
		Return(nil, apperr.Forbidden("only the seller may complete order %s", orderID)).Once()

	w := do(t, f.router, http.MethodPost, MarketplacePath+"/orders/"+orderID+"/complete", testutil.BearerToken(t, f.tokens, buyer), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderHandler_RequiresToken(t *testing.T) {
	f := newMarketplaceFixture(t)
	w := do(t, f.router, http.MethodGet, MarketplacePath+"/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
