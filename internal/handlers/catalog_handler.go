package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "midas/internal/errors"
	"midas/internal/models"
	"midas/internal/pagination"
	"midas/internal/services"
)

// CatalogHandler handles unit-cost catalog and settings maintenance.
// All routes are admin-only; the ingestion pipeline never writes here.
type CatalogHandler struct {
	catalogService  services.CatalogServicer
	settingsService services.SettingsServicer
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService services.CatalogServicer, settingsService services.SettingsServicer) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, settingsService: settingsService}
}

// UnitCostRequest represents the payload for creating or updating a unit cost.
type UnitCostRequest struct {
	Name         string     `json:"name" binding:"required,min=1,max=200"`
	Cost         int64      `json:"cost" binding:"required,gt=0"`
	Unit         string     `json:"unit" binding:"required,min=1,max=100"`
	UnitPlural   string     `json:"unit_plural,omitempty"`
	Description  string     `json:"description,omitempty"`
	Source       string     `json:"source,omitempty"`
	SourceURL    string     `json:"source_url,omitempty"`
	Region       string     `json:"region" binding:"required,region"`
	Category     string     `json:"category" binding:"required,cost_category"`
	IsActive     *bool      `json:"is_active,omitempty"`
	Priority     int        `json:"priority,omitempty"`
	LastVerified *time.Time `json:"last_verified,omitempty"`
}

func (r *UnitCostRequest) toInput() services.UnitCostInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return services.UnitCostInput{
		Name:         r.Name,
		Cost:         r.Cost,
		Unit:         r.Unit,
		UnitPlural:   r.UnitPlural,
		Description:  r.Description,
		Source:       r.Source,
		SourceURL:    r.SourceURL,
		Region:       models.Region(r.Region),
		Category:     models.CostCategory(r.Category),
		IsActive:     active,
		Priority:     r.Priority,
		LastVerified: r.LastVerified,
	}
}

// CreateUnitCost handles creating a catalog entry.
// @Summary     Create unit cost
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UnitCostRequest true "Unit cost"
// @Success     201 {object} map[string]interface{} "Unit cost created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /admin/costs [post]
func (h *CatalogHandler) CreateUnitCost(c *gin.Context) {
	var req UnitCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cost, err := h.catalogService.CreateUnitCost(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"unit_cost": cost})
}

// UpdateUnitCost handles updating a catalog entry.
// @Summary     Update unit cost
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string          true "Unit cost ID"
// @Param       request body UnitCostRequest true "Unit cost"
// @Success     200 {object} map[string]interface{} "Unit cost updated"
// @Failure     404 {object} ErrorResponse "Unit cost not found"
// @Router      /admin/costs/{id} [put]
func (h *CatalogHandler) UpdateUnitCost(c *gin.Context) {
	var req UnitCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cost, err := h.catalogService.UpdateUnitCost(c.Param("id"), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unit_cost": cost})
}

// DeleteUnitCost handles deleting a catalog entry.
// @Summary     Delete unit cost
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Unit cost ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Unit cost not found"
// @Router      /admin/costs/{id} [delete]
func (h *CatalogHandler) DeleteUnitCost(c *gin.Context) {
	if err := h.catalogService.DeleteUnitCost(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUnitCosts handles listing catalog entries.
// @Summary     List unit costs
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.UnitCost] "Paginated unit costs"
// @Router      /admin/costs [get]
func (h *CatalogHandler) ListUnitCosts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.catalogService.ListUnitCosts(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SettingRequest represents the payload for updating a setting.
type SettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// UpdateSetting handles updating a configuration value.
// @Summary     Update setting
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       key     path string         true "Setting key"
// @Param       request body SettingRequest true "Value"
// @Success     200 {object} map[string]interface{} "Setting"
// @Router      /admin/settings/{key} [put]
func (h *CatalogHandler) UpdateSetting(c *gin.Context) {
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	setting, err := h.settingsService.Set(c.Param("key"), req.Value)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"setting": setting})
}

// ListSettings handles listing all configuration values.
// @Summary     List settings
// @Tags        admin
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Settings"
// @Router      /admin/settings [get]
func (h *CatalogHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingsService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
