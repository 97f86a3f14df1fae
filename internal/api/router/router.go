package router

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware(allowedOrigins))

	service := deps.ServiceName
	if service == "" {
		service = "jobboard-api"
	}

	r.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		checks := make(map[string]string, len(deps.HealthChecks))
		for name, check := range deps.HealthChecks {
			if err := check(c.Request.Context()); err != nil {
				deps.Logger.Warn("Health check failed",
					slog.String("backend", name),
					slog.Any("error", err),
				)
				checks[name] = err.Error()
				status, code = "unhealthy", http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		c.JSON(code, gin.H{
			"status":  status,
			"service": service,
			"jobs":    deps.Catalog.Len(),
			"checks":  checks,
		})
	})

	jobHandler := handler.NewJobHandler(deps)
	savedHandler := handler.NewSavedHandler(deps)

	v1 := r.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		{
			// GET /api/v1/jobs - Search, filter, sort and paginate jobs
			jobs.GET("", jobHandler.ListJobs)

			// GET /api/v1/jobs/facets - Filter options and salary bounds
			jobs.GET("/facets", jobHandler.Facets)

			// GET /api/v1/jobs/:job_id - Job details
			jobs.GET("/:job_id", jobHandler.GetJob)
		}

		saved := v1.Group("/saved")
		{
			// GET /api/v1/saved - Saved jobs view
			saved.GET("", savedHandler.ListSaved)

			// GET /api/v1/saved/ids - Saved ids and count
			saved.GET("/ids", savedHandler.SavedIDs)

			// GET /api/v1/saved/events - Change notifications (server-sent events)
			saved.GET("/events", savedHandler.Events)

			// PUT /api/v1/saved/:job_id - Save a job
			saved.PUT("/:job_id", savedHandler.SaveJob)

			// DELETE /api/v1/saved/:job_id - Unsave a job
			saved.DELETE("/:job_id", savedHandler.UnsaveJob)

			// DELETE /api/v1/saved - Clear all saved jobs
			saved.DELETE("", savedHandler.ClearSaved)
		}
	}

	return r
}
