package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// ListSaved handles GET /api/v1/saved
// Applies the same pipeline as ListJobs, restricted to saved jobs. Saved ids
// with no matching job are skipped.
func (h *SavedHandler) ListSaved(c *gin.Context) {
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

	ids := h.store.Load(c.Request.Context())
	page := h.engine.Run(h.catalog.Lookup(ids), q)

	c.JSON(http.StatusOK, dto.NewListJobsResponse(page, ids, h.now()))
}

// SavedIDs handles GET /api/v1/saved/ids
func (h *SavedHandler) SavedIDs(c *gin.Context) {
	ids := h.store.Load(c.Request.Context())
	c.JSON(http.StatusOK, dto.SavedIDsResponse{IDs: ids, Count: len(ids)})
}

// SaveJob handles PUT /api/v1/saved/:job_id
func (h *SavedHandler) SaveJob(c *gin.Context) {
	jobID := c.Param("job_id")
	ctx := c.Request.Context()

	if _, err := h.catalog.ByID(jobID); err != nil {
		respondError(c, h.logger, "Failed to save job", err)
		return
	}

	if err := h.store.Add(ctx, jobID); err != nil {
		respondError(c, h.logger, "Failed to save job", err)
		return
	}

	h.logger.Info("Job saved", slog.String("job_id", jobID))
	c.JSON(http.StatusOK, dto.SavedChangeResponse{
		JobID: jobID,
		Saved: true,
		Count: h.store.Count(ctx),
	})
}

// UnsaveJob handles DELETE /api/v1/saved/:job_id
// Unknown ids are accepted so stale entries can be cleaned up
func (h *SavedHandler) UnsaveJob(c *gin.Context) {
	jobID := c.Param("job_id")
	ctx := c.Request.Context()

	if err := h.store.Remove(ctx, jobID); err != nil {
		respondError(c, h.logger, "Failed to unsave job", err)
		return
	}

	h.logger.Info("Job unsaved", slog.String("job_id", jobID))
	c.JSON(http.StatusOK, dto.SavedChangeResponse{
		JobID: jobID,
		Saved: false,
		Count: h.store.Count(ctx),
	})
}

// ClearSaved handles DELETE /api/v1/saved
func (h *SavedHandler) ClearSaved(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		respondError(c, h.logger, "Failed to clear saved jobs", err)
		return
	}

	h.logger.Info("Saved jobs cleared")
	c.JSON(http.StatusOK, dto.SavedChangeResponse{Saved: false, Count: 0})
}
