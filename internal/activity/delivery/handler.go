package delivery

import (
	"net/http"
	"strconv"
	"time"

	"assistant-backend/internal/activity/domain"
	"assistant-backend/internal/activity/repository"

	"github.com/gin-gonic/gin"
)

// ActivityHandler handles activity log HTTP requests
type ActivityHandler struct {
	activityRepo repository.ActivityRepository
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityRepo repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{
		activityRepo: activityRepo,
	}
}

// LogRequest represents the request body for recording an activity
type LogRequest struct {
	Action          string                 `json:"action" binding:"required"`
	Description     string                 `json:"description" binding:"required"`
	Command         string                 `json:"command"`
	AIReasoning     string                 `json:"ai_reasoning"`
	Confidence      *float64               `json:"confidence"`
	Status          string                 `json:"status"`
	Metadata        map[string]interface{} `json:"metadata"`
	RelatedEntity   string                 `json:"related_entity"`
	RelatedEntityID string                 `json:"related_entity_id"`
	ExecutionTimeMs int64                  `json:"execution_time_ms"`
}

// GetActivities returns the user's activity log, newest first
// GET /api/activities?limit=50&offset=0
func (h *ActivityHandler) GetActivities(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, total, err := h.activityRepo.FindByUser(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if entries == nil {
		entries = []*domain.ActivityLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": entries,
		"total":      total,
	})
}

// LogActivity appends a record to the user's activity log
// POST /api/activities
func (h *ActivityHandler) LogActivity(c *gin.Context) {
	userID := c.GetString("userID")

	var req LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := domain.ActivityStatus(req.Status)
	if status == "" {
		status = domain.ActivityStatusSuccess
	}

	entry := &domain.ActivityLog{
		UserID:          userID,
		Action:          domain.Action(req.Action),
		Description:     req.Description,
		Command:         req.Command,
		AIReasoning:     req.AIReasoning,
		Confidence:      req.Confidence,
		Status:          status,
		Metadata:        req.Metadata,
		RelatedEntity:   req.RelatedEntity,
		RelatedEntityID: req.RelatedEntityID,
		ExecutionTimeMs: req.ExecutionTimeMs,
		Timestamp:       time.Now(),
	}

	if err := h.activityRepo.Create(entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}
