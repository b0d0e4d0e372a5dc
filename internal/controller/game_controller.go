package controller

import (
	"errors"
	"net/http"
	"strconv"

	"millionaire_backend/internal/model"
	"millionaire_backend/internal/service"
	"millionaire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	GameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{GameService: gameService}
}

type AnswerRequest struct {
	Letter string `json:"letter" binding:"required"`
}

type HelpRequest struct {
	HelpType string `json:"help_type" binding:"required"`
}

func gameID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid game id")
		return 0, false
	}
	return uint(id), true
}

// @Summary Start a new game
// @Tags games
// @Security BearerAuth
// @Produce json
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "a game is already in progress"
// @Router /games [post]
func (c *GameController) CreateGame(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	game, err := c.GameService.CreateGameForUser(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrGameInProgress) {
			data := gin.H{}
			if game != nil {
				data["gameId"] = game.ID
			}
			util.Conflict(ctx, "finish your current game first", data)
			return
		}
		if errors.Is(err, model.ErrNotEnoughQuestions) {
			util.Error(ctx, http.StatusServiceUnavailable, "question bank cannot fill a game right now")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, c.GameService.View(game))
}

// @Summary Get the current state of a game
// @Tags games
// @Security BearerAuth
// @Produce json
// @Param id path int true "game id"
// @Success 200 {object} util.Response
// @Router /games/{id} [get]
func (c *GameController) GetGame(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := gameID(ctx)
	if !ok {
		return
	}

	game, err := c.GameService.FindForUser(id, user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrGameNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, c.GameService.View(game))
}

// @Summary Answer the current question
// @Tags games
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "game id"
// @Param body body AnswerRequest true "answer key a-d"
// @Success 200 {object} util.Response
// @Router /games/{id}/answer [post]
func (c *GameController) Answer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := gameID(ctx)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GameService.Answer(id, user.UserID, req.Letter)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrGameNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrGameFinished):
			util.Conflict(ctx, "game already finished", nil)
		case errors.Is(err, model.ErrInvalidKey):
			util.BadRequest(ctx, "answer key must be one of a, b, c, d")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// @Summary Take the money and finish the game
// @Tags games
// @Security BearerAuth
// @Produce json
// @Param id path int true "game id"
// @Success 200 {object} util.Response
// @Router /games/{id}/take_money [post]
func (c *GameController) TakeMoney(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := gameID(ctx)
	if !ok {
		return
	}

	game, err := c.GameService.TakeMoney(id, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrGameNotFound):
			util.NotFound(ctx)
		case errors.Is(err, model.ErrInvalidOperation):
			util.Error(ctx, http.StatusUnprocessableEntity, "nothing to take yet")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, c.GameService.View(game))
}

// @Summary Use a help on the current question
// @Tags games
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "game id"
// @Param body body HelpRequest true "one of audience_help, friend_call, fifty_fifty"
// @Success 200 {object} util.Response
// @Router /games/{id}/help [post]
func (c *GameController) Help(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := gameID(ctx)
	if !ok {
		return
	}

	var req HelpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	used, gq, err := c.GameService.UseHelp(id, user.UserID, model.HelpType(req.HelpType))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUnknownHelpType):
			util.BadRequest(ctx, "unknown help type")
		case errors.Is(err, util.ErrGameNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrGameFinished):
			util.Conflict(ctx, "game already finished", nil)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	data := gin.H{"used": used}
	if gq != nil {
		data["question"] = service.NewGameQuestionView(gq)
	}
	util.Success(ctx, data)
}
