package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "midas/internal/errors"
	"midas/internal/services"
)

// StatsHandler handles fleet statistics and ad-hoc comparison previews.
type StatsHandler struct {
	statsService      services.StatsServicer
	comparisonService services.ComparisonServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer, comparisonService services.ComparisonServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService, comparisonService: comparisonService}
}

// GetFleetStats handles retrieving fleet-wide statistics.
// @Summary     Fleet statistics
// @Description Total wealth and entity count over the latest snapshot day
// @Tags        stats
// @Produce     json
// @Success     200 {object} services.FleetStats "Stats"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats [get]
func (h *StatsHandler) GetFleetStats(c *gin.Context) {
	stats, err := h.statsService.FleetStats()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// PreviewComparisons handles computing comparisons for an arbitrary amount.
// @Summary     Preview comparisons
// @Description Compute comparisons for a wealth amount (cents) without storing them
// @Tags        stats
// @Produce     json
// @Param       amount query int    true  "Wealth amount in cents"
// @Param       region query string false "Region (unrecognized values use the default region)"
// @Success     200 {object} map[string]interface{} "Comparisons"
// @Failure     400 {object} ErrorResponse "Invalid amount"
// @Failure     500 {object} ErrorResponse "Catalog not seeded"
// @Router      /comparisons/preview [get]
func (h *StatsHandler) PreviewComparisons(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Query("amount"), 10, 64)
	if err != nil || amount < 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a non-negative integer"))
		return
	}

	items, region, err := h.comparisonService.Preview(amount, c.Query("region"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"region": region, "comparisons": items})
}
