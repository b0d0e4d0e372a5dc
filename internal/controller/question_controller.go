package controller

import (
	"strconv"

	"millionaire_backend/internal/service"
	"millionaire_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// @Summary Create a bank question
// @Tags questions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.QuestionRequest true "question; answer1 is correct"
// @Success 201 {object} util.Response
// @Router /admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.CreateQuestion(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, question)
}

// @Summary Import a batch of questions
// @Tags questions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body []service.QuestionRequest true "questions"
// @Success 201 {object} util.Response
// @Router /admin/questions/import [post]
func (c *QuestionController) ImportQuestions(ctx *gin.Context) {
	var reqs []service.QuestionRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	count, err := c.QuestionService.Import(reqs)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, gin.H{"imported": count})
}

// @Summary List bank questions
// @Tags questions
// @Security BearerAuth
// @Produce json
// @Param level query int false "filter by level"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response
// @Router /admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	page := 1
	limit := 20
	if p := ctx.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if l := ctx.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	var level *int
	if lv := ctx.Query("level"); lv != "" {
		v, err := strconv.Atoi(lv)
		if err != nil {
			util.BadRequest(ctx, "invalid level")
			return
		}
		level = &v
	}

	questions, total, err := c.QuestionService.List(level, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  questions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Per-level question coverage
// @Tags questions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /admin/questions/coverage [get]
func (c *QuestionController) Coverage(ctx *gin.Context) {
	counts, missing, err := c.QuestionService.LevelCoverage()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"counts":        counts,
		"missingLevels": missing,
	})
}
