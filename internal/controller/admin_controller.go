package controller

import (
	"biodiv_backend/internal/service"
	"biodiv_backend/internal/util"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CSVExporter writes the full observation dataset as CSV.
type CSVExporter interface {
	ExportCSV(ctx context.Context, w io.Writer) error
}

type AdminController struct {
	ObservationService *service.ObservationService
	UserService        *service.UserService
	ExportService      CSVExporter
}

func NewAdminController(
	observationService *service.ObservationService,
	userService *service.UserService,
	exportService CSVExporter,
) *AdminController {
	return &AdminController{
		ObservationService: observationService,
		UserService:        userService,
		ExportService:      exportService,
	}
}

// GetAllLogs godoc
// @Summary List every observation
// @Tags admin
// @Produce  json
// @Success 200 {object} object "observations and total count"
// @Security BearerAuth
// @Router /api/admin/all-logs [get]
func (c *AdminController) GetAllLogs(ctx *gin.Context) {
	logs, total, err := c.ObservationService.GetAllLogs(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"species_logs": logs,
		"total_count":  total,
	})
}

// UpdateLog godoc
// @Summary Update an observation
// @Description Partial update; used mainly for the verify toggle
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   id path int true "observation id"
// @Success 200 {object} object "updated observation"
// @Failure 404 {object} util.Response "observation not found"
// @Security BearerAuth
// @Router /api/species-logs/{id} [put]
func (c *AdminController) UpdateLog(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid observation id")
		return
	}

	var patch service.LogPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.ObservationService.UpdateLog(ctx.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, util.ErrLogNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":     "observation updated",
		"species_log": entry,
	})
}

// DeleteLog godoc
// @Summary Delete an observation
// @Tags admin
// @Produce  json
// @Param   id path int true "observation id"
// @Success 200 {object} object "confirmation"
// @Failure 404 {object} util.Response "observation not found"
// @Security BearerAuth
// @Router /api/species-logs/{id} [delete]
func (c *AdminController) DeleteLog(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid observation id")
		return
	}

	if err := c.ObservationService.DeleteLog(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrLogNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "observation deleted"})
}

// ExportCSV godoc
// @Summary Export all observations as CSV
// @Tags admin
// @Produce  text/csv
// @Success 200 {string} string "CSV file"
// @Security BearerAuth
// @Router /api/admin/export-csv [get]
func (c *AdminController) ExportCSV(ctx *gin.Context) {
	// Buffer before touching headers so a failure still returns a clean
	// error status instead of a truncated 200 CSV.
	var buf bytes.Buffer
	if err := c.ExportService.ExportCSV(ctx.Request.Context(), &buf); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="biodiversity_export.csv"`)
	ctx.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// GetUsers godoc
// @Summary List users
// @Tags admin
// @Produce  json
// @Success 200 {object} object "users"
// @Security BearerAuth
// @Router /api/admin/users [get]
func (c *AdminController) GetUsers(ctx *gin.Context) {
	users, err := c.UserService.GetAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUser godoc
// @Summary Update a user
// @Description Partial update; can promote or demote admins
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   id path int true "user id"
// @Success 200 {object} object "updated user"
// @Failure 404 {object} util.Response "user not found"
// @Failure 409 {object} util.Response "username or email taken"
// @Security BearerAuth
// @Router /api/admin/users/{id} [put]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var patch service.UserPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.Update(id, patch)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrUsernameTaken), errors.Is(err, util.ErrEmailRegistered):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags admin
// @Produce  json
// @Param   id path int true "user id"
// @Success 200 {object} object "confirmation"
// @Failure 404 {object} util.Response "user not found"
// @Security BearerAuth
// @Router /api/admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims != nil && claims.UserID == id {
		util.BadRequest(ctx, "cannot delete your own account")
		return
	}

	if err := c.UserService.Delete(id); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
