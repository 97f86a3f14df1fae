package handler

import (
	"log/slog"
	"time"

	"github.com/cuongbtq/jobboard/internal/savedset"
	"github.com/gin-gonic/gin"
)

type changeFrame struct {
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}

// Events handles GET /api/v1/saved/events
// Streams one savedJobsChanged event on connect and one per change signal after that.
// Each event carries the count re-read from the store, not the signal itself.
func (h *SavedHandler) Events(c *gin.Context) {
	ctx := c.Request.Context()

	sub := h.store.Subscribe(1)
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	h.logger.Debug("Event stream opened", slog.String("ip", c.ClientIP()))

	send := func() {
		c.SSEvent(savedset.ChangeEvent, changeFrame{
			Count: h.store.Count(ctx),
			At:    h.now().UTC(),
		})
		c.Writer.Flush()
	}
	send()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("Event stream closed", slog.String("ip", c.ClientIP()))
			return

		case _, ok := <-sub.C:
			if !ok {
				return
			}
			send()

		case <-ticker.C:
			if _, err := c.Writer.WriteString(": keep-alive\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}
