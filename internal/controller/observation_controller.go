package controller

import (
	"biodiv_backend/internal/questionnaire"
	"biodiv_backend/internal/service"
	"biodiv_backend/internal/util"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ObservationController struct {
	ObservationService *service.ObservationService
}

func NewObservationController(observationService *service.ObservationService) *ObservationController {
	return &ObservationController{ObservationService: observationService}
}

// SubmitLog godoc
// @Summary Submit an observation
// @Description Accepts a multipart form with a species_log JSON field and an optional photo
// @Tags species-logs
// @Accept  mpfd
// @Produce  json
// @Success 201 {object} object "stored observation"
// @Failure 400 {object} util.Response "invalid submission"
// @Failure 404 {object} util.Response "unknown species"
// @Failure 413 {object} util.Response "photo too large"
// @Security BearerAuth
// @Router /api/species-logs [post]
func (c *ObservationController) SubmitLog(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	raw := ctx.PostForm("species_log")
	if raw == "" {
		util.BadRequest(ctx, "species_log field is required")
		return
	}

	var sub questionnaire.Submission
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		util.BadRequest(ctx, "species_log is not valid JSON")
		return
	}

	photo, err := ctx.FormFile("photo")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		util.BadRequest(ctx, "invalid photo upload")
		return
	}

	entry, err := c.ObservationService.Submit(ctx.Request.Context(), claims.UserID, sub, photo)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSpeciesNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrMissingRequired):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrPhotoTooLarge):
			util.Error(ctx, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, util.ErrPhotoNotImage):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":     "observation recorded",
		"species_log": entry,
	})
}

// GetOwnLogs godoc
// @Summary List the caller's observations
// @Tags species-logs
// @Produce  json
// @Success 200 {object} object "observations"
// @Security BearerAuth
// @Router /api/species-logs [get]
func (c *ObservationController) GetOwnLogs(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	logs, err := c.ObservationService.GetUserLogs(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"species_logs": logs})
}
