package v1

import (
	"net/http"

	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// UserHandler defines account and profile endpoints
type UserHandler interface {
	Me(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	List(ctx *gin.Context)
	UpdateMyProfile(ctx *gin.Context)
	GetProfile(ctx *gin.Context)
}

type userHandler struct {
	userService users.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService users.UserService) UserHandler {
	return &userHandler{userService: userService}
}

// Me returns the caller's account including the email address
func (handler *userHandler) Me(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	account, err := handler.userService.GetByID(ctx.Request.Context(), p.UserID)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, AccountResponse{
		User:    toUserResponse(account.User, true),
		Profile: toProfileResponse(account.Profile),
	})
}

// GetByID returns the public view of an account
func (handler *userHandler) GetByID(ctx *gin.Context) {
	account, err := handler.userService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, AccountResponse{
		User:    toUserResponse(account.User, false),
		Profile: toProfileResponse(account.Profile),
	})
}

// List searches users by username or email
func (handler *userHandler) List(ctx *gin.Context) {
	query := users.NewUserQuery()
	if err := bindListQuery(ctx, &query.ListQuery); err != nil {
		respond.Error(ctx, err)
		return
	}
	query.Search = ctx.Query("q")

	list, err := handler.userService.List(ctx.Request.Context(), query)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mapList(list, func(u *users.User) UserResponse { return toUserResponse(u, false) }))
}

// UpdateMyProfile applies a partial update to the caller's profile
func (handler *userHandler) UpdateMyProfile(ctx *gin.Context) {
	p, ok := caller(ctx)
	if !ok {
		return
	}
	var request ProfileUpdateRequest
	if !bindJSON(ctx, &request) {
		return
	}

	profile, err := handler.userService.UpdateProfile(ctx.Request.Context(), p.UserID, &users.ProfileUpdate{
		DisplayName: request.DisplayName,
		Bio:         request.Bio,
		AvatarURL:   request.AvatarURL,
		Location:    request.Location,
		Website:     request.Website,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toProfileResponse(profile))
}

// GetProfile returns a user's profile
func (handler *userHandler) GetProfile(ctx *gin.Context) {
	profile, err := handler.userService.GetProfile(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toProfileResponse(profile))
}
