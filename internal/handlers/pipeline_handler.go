package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "midas/internal/errors"
	"midas/internal/pagination"
	"midas/internal/services"
)

// PipelineHandler handles ingestion trigger and audit requests.
type PipelineHandler struct {
	ingestService services.IngestServicer
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(ingestService services.IngestServicer) *PipelineHandler {
	return &PipelineHandler{ingestService: ingestService}
}

// Refresh triggers one ingestion run.
//
// Counts are reported accurately even on failure: the response body carries
// the partial RunResult alongside the error message.
//
// @Summary     Trigger ingestion
// @Description Fetch the external feed, upsert profiles and snapshots, precompute comparisons
// @Tags        pipeline
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} services.RunResult "Run summary"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     429 {object} ErrorResponse "Triggered too recently"
// @Failure     500 {object} services.RunResult "Run failed, partial counts included"
// @Failure     503 {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/refresh [get]
func (h *PipelineHandler) Refresh(c *gin.Context) {
	result, err := h.ingestService.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListRuns returns the ingestion audit trail.
// @Summary     List ingestion runs
// @Tags        pipeline
// @Produce     json
// @Security    ApiKeyAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.UpdateRun] "Paginated runs"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /pipeline/runs [get]
func (h *PipelineHandler) ListRuns(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.ingestService.ListRuns(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
