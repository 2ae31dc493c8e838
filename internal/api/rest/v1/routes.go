package v1

import (
	"github.com/hubverse/hub-services/internal/api/rest/middleware"
	"github.com/hubverse/hub-services/internal/domain/academy"
	"github.com/hubverse/hub-services/internal/domain/businesses"
	"github.com/hubverse/hub-services/internal/domain/chats"
	"github.com/hubverse/hub-services/internal/domain/marketplace"
	"github.com/hubverse/hub-services/internal/domain/posts"
	"github.com/hubverse/hub-services/internal/domain/users"
	"github.com/hubverse/hub-services/internal/pkg/auth"
	"github.com/hubverse/hub-services/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CommunityServices holds the services behind the community routes.
type CommunityServices struct {
	Auth     users.AuthService
	Users    users.UserService
	Posts    posts.PostService
	Chats    chats.ChatService
	Messages chats.MessageService
	Stream   ChatStream
}

// SetupCommunityRoutes sets up the community API routes.
func SetupCommunityRoutes(r gin.IRouter, verifier auth.TokenVerifier, services CommunityServices, log logger.Logger) {
	v1 := r.Group(CommunityPath)
	authed := middleware.RequireAuth(verifier)

	authHandler := NewAuthHandler(services.Auth)
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	userHandler := NewUserHandler(services.Users)
	v1.GET("/users/me", authed, userHandler.Me)
	v1.GET("/users/:id", userHandler.GetByID)
	v1.GET("/users", userHandler.List)
	v1.PUT("/profiles/me", authed, userHandler.UpdateMyProfile)
	v1.GET("/profiles/:userId", userHandler.GetProfile)

	postHandler := NewPostHandler(services.Posts)
	v1.POST("/posts", authed, postHandler.Create)
	v1.GET("/posts", postHandler.List)
	v1.GET("/posts/:id", postHandler.GetByID)
	v1.PUT("/posts/:id", authed, postHandler.Update)
	v1.DELETE("/posts/:id", authed, postHandler.DeleteByID)

	chatHandler := NewChatHandler(services.Chats, services.Messages, services.Stream, log)
	chatRoutes := v1.Group("/chats", authed)
	chatRoutes.POST("", chatHandler.Create)
	chatRoutes.GET("", chatHandler.List)
	chatRoutes.GET("/:id", chatHandler.GetByID)
	chatRoutes.POST("/:id/members", chatHandler.AddMember)
	chatRoutes.DELETE("/:id/members/me", chatHandler.Leave)
	chatRoutes.POST("/:id/messages", chatHandler.SendMessage)
	chatRoutes.GET("/:id/messages", chatHandler.ListMessages)
	chatRoutes.PATCH("/:id/messages/:messageId", chatHandler.EditMessage)
	chatRoutes.DELETE("/:id/messages/:messageId", chatHandler.DeleteMessage)

	// Browsers cannot send headers on a WebSocket handshake, so the stream also accepts ?token=.
	v1.GET("/chats/:id/stream", middleware.RequireAuth(verifier, middleware.WithQueryToken("token")), chatHandler.Stream)
}

// MarketplaceServices holds the services behind the marketplace routes.
type MarketplaceServices struct {
	Listings marketplace.ListingService
	Orders   marketplace.OrderService
}

// SetupMarketplaceRoutes sets up the marketplace API routes.
func SetupMarketplaceRoutes(r gin.IRouter, verifier auth.TokenVerifier, services MarketplaceServices) {
	v1 := r.Group(MarketplacePath)
	authed := middleware.RequireAuth(verifier)

	listingHandler := NewListingHandler(services.Listings)
	v1.POST("/listings", authed, listingHandler.Create)
	v1.GET("/listings", listingHandler.List)
	v1.GET("/listings/:id", listingHandler.GetByID)
	v1.PUT("/listings/:id", authed, listingHandler.Update)
	v1.DELETE("/listings/:id", authed, listingHandler.Archive)

	orderHandler := NewOrderHandler(services.Orders)
	orderRoutes := v1.Group("/orders", authed)
	orderRoutes.POST("", orderHandler.Place)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/:id/complete", orderHandler.Complete)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
}

// AcademyServices holds the services behind the academy routes.
type AcademyServices struct {
	Courses     academy.CourseService
	Enrollments academy.EnrollmentService
}

// SetupAcademyRoutes sets up the academy API routes.
func SetupAcademyRoutes(r gin.IRouter, verifier auth.TokenVerifier, services AcademyServices) {
	v1 := r.Group(AcademyPath)
	authed := middleware.RequireAuth(verifier)
	optional := middleware.OptionalAuth(verifier)

	courseHandler := NewCourseHandler(services.Courses)
	v1.POST("/courses", authed, courseHandler.Create)
	v1.GET("/courses", optional, courseHandler.List)
	v1.GET("/courses/:id", optional, courseHandler.GetByID)
	v1.PUT("/courses/:id", authed, courseHandler.Update)
	v1.DELETE("/courses/:id", authed, courseHandler.DeleteByID)
	v1.POST("/courses/:id/publish", authed, courseHandler.Publish)
	v1.POST("/courses/:id/lessons", authed, courseHandler.AddLesson)
	v1.GET("/courses/:id/lessons", optional, courseHandler.ListLessons)

	enrollmentHandler := NewEnrollmentHandler(services.Enrollments)
	v1.POST("/courses/:id/enrollments", authed, enrollmentHandler.Enroll)
	v1.GET("/enrollments/me", authed, enrollmentHandler.ListMine)
	v1.PATCH("/enrollments/:id", authed, enrollmentHandler.UpdateProgress)
}

// BusinessServices holds the services behind the business routes.
type BusinessServices struct {
	Businesses businesses.BusinessService
	Activities businesses.ActivityService
}

// SetupBusinessRoutes sets up the business API routes.
func SetupBusinessRoutes(r gin.IRouter, verifier auth.TokenVerifier, services BusinessServices) {
	v1 := r.Group(BusinessPath)
	authed := middleware.RequireAuth(verifier)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	businessHandler := NewBusinessHandler(services.Businesses)
	v1.POST("/businesses", authed, businessHandler.Create)
	v1.GET("/businesses", businessHandler.List)
	v1.GET("/businesses/:id", businessHandler.Get)
	v1.PUT("/businesses/:id", authed, businessHandler.Update)
	v1.DELETE("/businesses/:id", authed, businessHandler.DeleteByID)
	v1.POST("/businesses/:id/verify", authed, adminOnly, businessHandler.Verify)

	activityHandler := NewActivityHandler(services.Activities)
	activityRoutes := v1.Group("/activities", authed, adminOnly)
	activityRoutes.GET("", activityHandler.List)
	activityRoutes.GET("/stats", activityHandler.Stats)
}
