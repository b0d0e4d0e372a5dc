package controller

import (
	"millionaire_backend/internal/service"
	"millionaire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	GameService *service.GameService
}

func NewUserController(userService *service.UserService, gameService *service.GameService) *UserController {
	return &UserController{UserService: userService, GameService: gameService}
}

// @Summary Current user's profile with game history
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.Profile(claims.UserID, c.GameService.Rules())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}
