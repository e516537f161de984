package controller

import (
	"biodiv_backend/internal/model"
	"biodiv_backend/internal/service"
	"biodiv_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SpeciesController struct {
	SpeciesService *service.SpeciesService
}

func NewSpeciesController(speciesService *service.SpeciesService) *SpeciesController {
	return &SpeciesController{SpeciesService: speciesService}
}

// GetSpecies godoc
// @Summary List species
// @Tags species
// @Produce  json
// @Success 200 {object} object "species"
// @Security BearerAuth
// @Router /api/species [get]
func (c *SpeciesController) GetSpecies(ctx *gin.Context) {
	species, err := c.SpeciesService.GetAll(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"species": species})
}

// CreateSpecies godoc
// @Summary Add a species
// @Description Accepts a multipart form with name, scientific_name, category and description
// @Tags species
// @Accept  mpfd
// @Produce  json
// @Success 201 {object} object "created species"
// @Failure 400 {object} util.Response "missing name"
// @Security BearerAuth
// @Router /api/species [post]
func (c *SpeciesController) CreateSpecies(ctx *gin.Context) {
	species := &model.Species{
		Name:           ctx.PostForm("name"),
		ScientificName: ctx.PostForm("scientific_name"),
		Category:       ctx.PostForm("category"),
		Description:    ctx.PostForm("description"),
	}
	if species.Name == "" {
		util.BadRequest(ctx, "species name is required")
		return
	}

	if err := c.SpeciesService.Create(ctx.Request.Context(), species); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"species": species})
}
