package v1

import (
	"net/http"

	"github.com/hubverse/hub-services/internal/api/rest/respond"
	"github.com/hubverse/hub-services/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// AuthHandler defines registration and login
type AuthHandler interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
}

type authHandler struct {
	authService users.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService users.AuthService) AuthHandler {
	return &authHandler{authService: authService}
}

// Register creates an account and returns a token for it
func (handler *authHandler) Register(ctx *gin.Context) {
	var request RegisterRequest
	if !bindJSON(ctx, &request) {
		return
	}

	result, err := handler.authService.Register(ctx.Request.Context(), &users.RegisterInput{
		Email:    request.Email,
		Username: request.Username,
		Password: request.Password,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toAuthResponse(result))
}

// Login exchanges credentials for a token
func (handler *authHandler) Login(ctx *gin.Context) {
	var request LoginRequest
	if !bindJSON(ctx, &request) {
		return
	}

	result, err := handler.authService.Login(ctx.Request.Context(), &users.LoginInput{
		Email:    request.Email,
		Password: request.Password,
	})
	if err != nil {
		respond.Error(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toAuthResponse(result))
}
