//go:build unit
// +build unit

package v1

import (
	"net/http"
	"testing"
	"time"

	"github.com/hubverse/hub-services/internal/domain/businesses"
	"github.com/hubverse/hub-services/internal/pkg/apperr"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type businessFixture struct {
	router     *gin.Engine
	tokens     *auth.TokenManager
	businesses *MockBusinessService
	activities *MockActivityService
}

func newBusinessFixture(t *testing.T) *businessFixture {
	f := &businessFixture{
		router:     gin.New(),
		tokens:     testutil.NewTokenManager(t),
		businesses: new(MockBusinessService),
		activities: new(MockActivityService),
	}
	SetupBusinessRoutes(f.router, f.tokens, BusinessServices{Businesses: f.businesses, Activities: f.activities})
	t.Cleanup(func() {
		f.businesses.AssertExpectations(t)
		f.activities.AssertExpectations(t)
	})
	return f
}

func TestBusinessHandler_GetBySlug(t *testing.T) {
	f := newBusinessFixture(t)
	now := time.Now().UTC()

	f.businesses.On("Get", mock.Anything, "Corner-Cafe").Return(&businesses.Business{
		ID: uuid.NewString(), OwnerID: uuid.NewString(), Name: "Corner Cafe", Slug: "corner-cafe",
		DateTimeCreated: now, DateTimeUpdated: now,
	}, nil).Once()

	w := do(t, f.router, http.MethodGet, BusinessPath+"/businesses/Corner-Cafe", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body BusinessResponse
	decode(t, w, &body)
	assert.Equal(t, "corner-cafe", body.Slug)
	assert.False(t, body.Verified)
}

func TestBusinessHandler_Create(t *testing.T) {
	f := newBusinessFixture(t)
	owner := testutil.NewPrincipal(auth.RoleMember)

	f.businesses.On("Create", mock.Anything, principalOf(owner), &businesses.BusinessInput{Name: ""}).
		Return(nil, apperr.Invalid("Name is required")).Once()

	w := do(t, f.router, http.MethodPost, BusinessPath+"/businesses", testutil.BearerToken(t, f.tokens, owner), BusinessRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBusinessHandler_VerifyAdminOnly(t *testing.T) {
	businessID := uuid.NewString()

	t.Run("member", func(t *testing.T) {
		f := newBusinessFixture(t)
		member := testutil.NewPrincipal(auth.RoleMember)
		w := do(t, f.router, http.MethodPost, BusinessPath+"/businesses/"+businessID+"/verify", testutil.BearerToken(t, f.tokens, member), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin", func(t *testing.T) {
		f := newBusinessFixture(t)
		admin := testutil.NewPrincipal(auth.RoleAdmin)
		f.businesses.On("Verify", mock.Anything, principalOf(admin), businessID).
			Return(&businesses.Business{ID: businessID, Slug: "corner-cafe", Verified: true}, nil).Once()

		w := do(t, f.router, http.MethodPost, BusinessPath+"/businesses/"+businessID+"/verify", testutil.BearerToken(t, f.tokens, admin), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body BusinessResponse
		decode(t, w, &body)
		assert.True(t, body.Verified)
	})
}

func TestActivityHandler_List(t *testing.T) {
	f := newBusinessFixture(t)
	admin := testutil.NewPrincipal(auth.RoleAdmin)

	f.activities.On("List", mock.Anything, mock.MatchedBy(func(q *businesses.ActivityQuery) bool {
		return q.Source == "marketplace" && q.Type == "order.placed"
	})).Return([]*businesses.Activity{{
		ID: uuid.NewString(), EventID: "evt-1", Type: "order.placed", Source: "marketplace",
		Payload: `{"amount_cents":500}`, DateTimeOccurred: time.Now().UTC(), DateTimeRecorded: time.Now().UTC(),
	}}, nil).Once()

	w := do(t, f.router, http.MethodGet, BusinessPath+"/activities?source=marketplace&type=order.placed", testutil.BearerToken(t, f.tokens, admin), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body []ActivityResponse
	decode(t, w, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "evt-1", body[0].EventID)
	assert.Empty(t, body[0].ActorID)
}

func TestActivityHandler_Stats(t *testing.T) {
	f := newBusinessFixture(t)
	admin := testutil.NewPrincipal(auth.RoleAdmin)

	f.activities.On("Stats", mock.Anything).Return([]*businesses.ActivityStat{
		{Type: "order.placed", Count: 3},
		{Type: "user.registered", Count: 7},
	}, nil).Once()

	w := do(t, f.router, http.MethodGet, BusinessPath+"/activities/stats", testutil.BearerToken(t, f.tokens, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"type":"order.placed","count":3},{"type":"user.registered","count":7}]`, w.Body.String())
}

func TestActivityHandler_MembersForbidden(t *testing.T) {
	f := newBusinessFixture(t)
	member := testutil.NewPrincipal(auth.RoleMember)

	w := do(t, f.router, http.MethodGet, BusinessPath+"/activities/stats", testutil.BearerToken(t, f.tokens, member), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, f.router, http.MethodGet, BusinessPath+"/activities", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
