//go:build unit
// +build unit

package v1

import (
	"net/http"
	"testing"

	"github.com/hubverse/hub-services/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRoutesRegistered(t *testing.T) {
	tokens := testutil.NewTokenManager(t)
	r := gin.New()

	SetupCommunityRoutes(r, tokens, CommunityServices{
		Auth:     new(MockAuthService),
		Users:    new(MockUserService),
		Posts:    new(MockPostService),
		Chats:    new(MockChatService),
		Messages: new(MockMessageService),
	}, testutil.SetupTestLogger(t))
	SetupMarketplaceRoutes(r, tokens, MarketplaceServices{Listings: new(MockListingService), Orders: new(MockOrderService)})
	SetupAcademyRoutes(r, tokens, AcademyServices{Courses: new(MockCourseService), Enrollments: new(MockEnrollmentService)})
	SetupBusinessRoutes(r, tokens, BusinessServices{Businesses: new(MockBusinessService), Activities: new(MockActivityService)})
	RegisterHealthRoutes(r, NewHealthHandler("test", "dev", nil))

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /health/ready",
		"POST " + CommunityPath + "/auth/register",
		"POST " + CommunityPath + "/auth/login",
		"GET " + CommunityPath + "/users/me",
		"GET " + CommunityPath + "/users/:id",
		"GET " + CommunityPath + "/users",
		"PUT " + CommunityPath + "/profiles/me",
		"GET " + CommunityPath + "/profiles/:userId",
		"POST " + CommunityPath + "/posts",
		"GET " + CommunityPath + "/posts",
		"GET " + CommunityPath + "/posts/:id",
		"PUT " + CommunityPath + "/posts/:id",
		"DELETE " + CommunityPath + "/posts/:id",
		"POST " + CommunityPath + "/chats",
		"GET " + CommunityPath + "/chats",
		"GET " + CommunityPath + "/chats/:id",
		"POST " + CommunityPath + "/chats/:id/members",
		"DELETE " + CommunityPath + "/chats/:id/members/me",
		"POST " + CommunityPath + "/chats/:id/messages",
		"GET " + CommunityPath + "/chats/:id/messages",
		"PATCH " + CommunityPath + "/chats/:id/messages/:messageId",
		"DELETE " + CommunityPath + "/chats/:id/messages/:messageId",
		"GET " + CommunityPath + "/chats/:id/stream",
		"POST " + MarketplacePath + "/listings",
		"GET " + MarketplacePath + "/listings",
		"GET " + MarketplacePath + "/listings/:id",
		"PUT " + MarketplacePath + "/listings/:id",
		"DELETE " + MarketplacePath + "/listings/:id",
		"POST " + MarketplacePath + "/orders",
		"GET " + MarketplacePath + "/orders",
		"GET " + MarketplacePath + "/orders/:id",
		"POST " + MarketplacePath + "/orders/:id/complete",
		"POST " + MarketplacePath + "/orders/:id/cancel",
		"POST " + AcademyPath + "/courses",
		"GET " + AcademyPath + "/courses",
		"GET " + AcademyPath + "/courses/:id",
		"PUT " + AcademyPath + "/courses/:id",
		"DELETE " + AcademyPath + "/courses/:id",
		"POST " + AcademyPath + "/courses/:id/publish",
		"POST " + AcademyPath + "/courses/:id/lessons",
		"GET " + AcademyPath + "/courses/:id/lessons",
		"POST " + AcademyPath + "/courses/:id/enrollments",
		"GET " + AcademyPath + "/enrollments/me",
		"PATCH " + AcademyPath + "/enrollments/:id",
		"POST " + BusinessPath + "/businesses",
		"GET " + BusinessPath + "/businesses",
		"GET " + BusinessPath + "/businesses/:id",
		"PUT " + BusinessPath + "/businesses/:id",
		"DELETE " + BusinessPath + "/businesses/:id",
		"POST " + BusinessPath + "/businesses/:id/verify",
		"GET " + BusinessPath + "/activities",
		"GET " + BusinessPath + "/activities/stats",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "route %s is not registered", route)
	}
	assert.Len(t, r.Routes(), len(expected))
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	tokens := testutil.NewTokenManager(t)
	r := gin.New()
	SetupMarketplaceRoutes(r, tokens, MarketplaceServices{Listings: new(MockListingService), Orders: new(MockOrderService)})
	SetupAcademyRoutes(r, tokens, AcademyServices{Courses: new(MockCourseService), Enrollments: new(MockEnrollmentService)})

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, MarketplacePath + "/listings"},
		{http.MethodPut, MarketplacePath + "/listings/abc"},
		{http.MethodPost, MarketplacePath + "/orders/abc/cancel"},
		{http.MethodPost, AcademyPath + "/courses/abc/lessons"},
		{http.MethodGet, AcademyPath + "/enrollments/me"},
	} {
		w := do(t, r, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}
