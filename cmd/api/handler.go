package api

import (
	"net/http"

	"assistant-backend/internal/notification"
	"assistant-backend/internal/scheduler"

	"github.com/gin-gonic/gin"
)

// SystemHandler exposes scheduler and notification introspection endpoints
type SystemHandler struct {
	scheduler *scheduler.Scheduler
	notifSvc  *notification.Service
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(sched *scheduler.Scheduler, notifSvc *notification.Service) *SystemHandler {
	return &SystemHandler{
		scheduler: sched,
		notifSvc:  notifSvc,
	}
}

// GetSchedulerStatus reports whether the scheduler runs and its job table
// GET /api/system/scheduler
func (h *SystemHandler) GetSchedulerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.scheduler.GetStatus())
}

// TriggerJob runs one scheduled job immediately, bypassing its cadence.
// Useful for debugging the background engines without waiting for a tick.
// POST /api/system/scheduler/jobs/:name/run
func (h *SystemHandler) TriggerJob(c *gin.Context) {
	name := c.Param("name")

	if err := h.scheduler.RunJob(c.Request.Context(), name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job completed", "job": name})
}

// GetNotificationStatus reports active websocket subscriptions
// GET /api/system/notifications
func (h *SystemHandler) GetNotificationStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.notifSvc.GetStatus())
}
