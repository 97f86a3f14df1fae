package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// ListJobs handles GET /api/v1/jobs
// Runs search, filter, sort and paginate over the whole catalog
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Warn("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	q, err := req.ToQuery()
	if err != nil {
		h.logger.Warn("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	page := h.engine.Run(h.catalog.All(), q)

	h.logger.Debug("Jobs listed",
		slog.String("q", q.Text),
		slog.Int("total", page.Total),
		slog.Int("page", page.Page),
	)

	saved := h.store.Load(c.Request.Context())
	c.JSON(http.StatusOK, dto.NewListJobsResponse(page, saved, h.now()))
}

// GetJob handles GET /api/v1/jobs/:job_id
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("job_id")

	job, err := h.catalog.ByID(jobID)
	if err != nil {
		respondError(c, h.logger, "Failed to get job", err)
		return
	}

	saved := h.store.Contains(c.Request.Context(), job.ID)
	c.JSON(http.StatusOK, dto.NewJobDetailDTO(job, saved, h.now()))
}

// Facets handles GET /api/v1/jobs/facets
// Returns filter option lists, salary bounds and presets for the catalog
func (h *JobHandler) Facets(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Facets(h.catalog.All()))
}
