package controller

import (
	"biodiv_backend/internal/questionnaire"
	"biodiv_backend/internal/service"
	"biodiv_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// GetQuestions godoc
// @Summary List questionnaire questions
// @Description Returns every question in display order with its dependency rules
// @Tags questions
// @Produce  json
// @Success 200 {object} object "questions"
// @Failure 500 {object} util.Response "internal error"
// @Security BearerAuth
// @Router /api/questions [get]
func (c *QuestionController) GetQuestions(ctx *gin.Context) {
	questions, err := c.QuestionService.GetAll(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"questions": questions})
}

// Overview godoc
// @Summary Questionnaire overview by legacy parts
// @Description Buckets questions into parts A (1-10), B (11-20) and C (21+)
// @Tags questions
// @Produce  json
// @Success 200 {object} object "part buckets"
// @Router /api/public/questionnaire-overview [get]
func (c *QuestionController) Overview(ctx *gin.Context) {
	parts, err := c.QuestionService.Overview(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"part_a": parts.PartA,
		"part_b": parts.PartB,
		"part_c": parts.PartC,
	})
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   body body questionnaire.Question true "question"
// @Success 201 {object} object "created question"
// @Failure 400 {object} util.Response "invalid question"
// @Security BearerAuth
// @Router /api/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var q questionnaire.Question
	if err := ctx.ShouldBindJSON(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	created, err := c.QuestionService.Create(ctx.Request.Context(), q)
	if err != nil {
		if errors.Is(err, util.ErrOptionsRequired) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"question": created})
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   id path int true "question id"
// @Param   body body service.QuestionPatch true "fields to change"
// @Success 200 {object} object "updated question"
// @Failure 404 {object} util.Response "question not found"
// @Security BearerAuth
// @Router /api/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var patch service.QuestionPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.QuestionService.Update(ctx.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrOptionsRequired):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"question": updated})
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce  json
// @Param   id path int true "question id"
// @Success 200 {object} object "confirmation"
// @Failure 404 {object} util.Response "question not found"
// @Security BearerAuth
// @Router /api/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.QuestionService.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}
