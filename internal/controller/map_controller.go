package controller

import (
	"biodiv_backend/internal/service"
	"biodiv_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MapController serves the unauthenticated map and gallery endpoints.
type MapController struct {
	ObservationService *service.ObservationService
}

func NewMapController(observationService *service.ObservationService) *MapController {
	return &MapController{ObservationService: observationService}
}

// SpeciesLocations godoc
// @Summary Observation locations for the public heatmap
// @Tags public
// @Produce  json
// @Success 200 {array} repository.LocationPoint
// @Router /api/public/species-locations [get]
func (c *MapController) SpeciesLocations(ctx *gin.Context) {
	points, err := c.ObservationService.GetLocations(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, points)
}

// SpeciesImages godoc
// @Summary Latest photo per species
// @Tags public
// @Produce  json
// @Success 200 {array} repository.SpeciesImage
// @Router /api/public/species-images [get]
func (c *MapController) SpeciesImages(ctx *gin.Context) {
	images, err := c.ObservationService.GetSpeciesImages(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, images)
}
