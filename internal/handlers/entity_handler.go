package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "midas/internal/errors"
	"midas/internal/pagination"
	"midas/internal/services"
)

// EntityHandler handles entity read requests.
type EntityHandler struct {
	entityService     services.EntityServicer
	snapshotService   services.SnapshotServicer
	comparisonService services.ComparisonServicer
}

// NewEntityHandler creates a new EntityHandler.
func NewEntityHandler(
	entityService services.EntityServicer,
	snapshotService services.SnapshotServicer,
	comparisonService services.ComparisonServicer,
) *EntityHandler {
	return &EntityHandler{
		entityService:     entityService,
		snapshotService:   snapshotService,
		comparisonService: comparisonService,
	}
}

// ListEntities handles listing tracked entities.
// @Summary     List entities
// @Description Get a paginated list of tracked entities, optionally filtered by name
// @Tags        entities
// @Produce     json
// @Param       search    query string false "Search by name (case-insensitive)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Entity] "Paginated entities"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entities [get]
func (h *EntityHandler) ListEntities(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.entityService.ListEntities(c.Query("search"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetEntity handles retrieving a single entity by slug.
// @Summary     Get entity
// @Tags        entities
// @Produce     json
// @Param       slug path string true "Entity slug"
// @Success     200 {object} map[string]interface{} "Entity"
// @Failure     404 {object} ErrorResponse "Entity not found"
// @Router      /entities/{slug} [get]
func (h *EntityHandler) GetEntity(c *gin.Context) {
	entity, err := h.entityService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entity": entity})
}

// GetHistory handles retrieving an entity's snapshot history.
//
// days is validated before any query executes: a non-integer or out-of-range
// value is rejected, never clamped.
//
// @Summary     Get wealth history
// @Description Get up to N days of snapshots, ascending by day
// @Tags        entities
// @Produce     json
// @Param       slug path  string true  "Entity slug"
// @Param       days query int    false "Days of history, 1-365 (default 30)"
// @Success     200 {object} map[string]interface{} "Snapshots"
// @Failure     400 {object} ErrorResponse "Invalid day count"
// @Failure     404 {object} ErrorResponse "Entity not found"
// @Router      /entities/{slug}/history [get]
func (h *EntityHandler) GetHistory(c *gin.Context) {
	entity, err := h.entityService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	days := 30
	if raw := c.Query("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "days must be an integer"))
			return
		}
	}

	snapshots, err := h.snapshotService.GetHistory(entity.ID, days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entity": entity.Slug, "snapshots": snapshots})
}

// GetComparisons handles retrieving an entity's precomputed comparisons.
//
// "Entity not found" and "no comparisons computed" are distinct states: the
// former is a 404, the latter a 200 with an empty list.
//
// @Summary     Get comparisons
// @Description Get precomputed comparisons for the entity's latest calculation day
// @Tags        entities
// @Produce     json
// @Param       slug   path  string true  "Entity slug"
// @Param       region query string false "Region (unrecognized values use the default region)"
// @Success     200 {object} map[string]interface{} "Comparisons"
// @Failure     404 {object} ErrorResponse "Entity not found"
// @Failure     500 {object} ErrorResponse "Catalog not seeded"
// @Router      /entities/{slug}/comparisons [get]
func (h *EntityHandler) GetComparisons(c *gin.Context) {
	entity, err := h.entityService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, region, err := h.comparisonService.EntityComparisons(entity.ID, c.Query("region"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entity":      entity.Slug,
		"region":      region,
		"comparisons": items,
	})
}
