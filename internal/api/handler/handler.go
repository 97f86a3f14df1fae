package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/jobboard/internal/catalog"
	"github.com/cuongbtq/jobboard/internal/domain"
	"github.com/cuongbtq/jobboard/internal/query"
	"github.com/cuongbtq/jobboard/internal/savedset"
	"github.com/gin-gonic/gin"
)

// HealthCheckFunc reports whether a backing service is reachable
type HealthCheckFunc func(ctx context.Context) error

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger  *slog.Logger
	Catalog *catalog.Catalog
	Engine  *query.Engine
	Store   *savedset.Store
	// Now is the clock used for relative dates; defaults to time.Now
	Now func() time.Time
	// KeepAlive is the interval between comment frames on the event stream
	KeepAlive time.Duration
	// ServiceName is reported by the health check
	ServiceName string
	// HealthChecks are run by the health endpoint, keyed by backend name
	HealthChecks map[string]HealthCheckFunc
}

func (d *Dependencies) clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}

// JobHandler serves the job list, detail and facet endpoints
type JobHandler struct {
	logger  *slog.Logger
	catalog *catalog.Catalog
	engine  *query.Engine
	store   *savedset.Store
	now     func() time.Time
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:  deps.Logger,
		catalog: deps.Catalog,
		engine:  deps.Engine,
		store:   deps.Store,
		now:     deps.clock(),
	}
}

// SavedHandler serves the saved set endpoints
type SavedHandler struct {
	logger    *slog.Logger
	catalog   *catalog.Catalog
	engine    *query.Engine
	store     *savedset.Store
	now       func() time.Time
	keepAlive time.Duration
}

// NewSavedHandler creates a new SavedHandler instance
func NewSavedHandler(deps *Dependencies) *SavedHandler {
	keepAlive := deps.KeepAlive
	if keepAlive <= 0 {
		keepAlive = 15 * time.Second
	}
	return &SavedHandler{
		logger:    deps.Logger,
		catalog:   deps.Catalog,
		engine:    deps.Engine,
		store:     deps.Store,
		now:       deps.clock(),
		keepAlive: keepAlive,
	}
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSortKey),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrInvalidField),
		errors.Is(err, savedset.ErrEmptyID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(msg, slog.Any("error", err))
		c.JSON(status, gin.H{"error": msg})
		return
	}
	logger.Warn(msg, slog.Any("error", err))
	c.JSON(status, gin.H{"error": err.Error()})
}
