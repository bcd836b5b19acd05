package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"assistant-backend/internal/insight/domain"
	"assistant-backend/internal/insight/repository"
	"assistant-backend/internal/insight/usecase"

	"github.com/gin-gonic/gin"
)

// InsightHandler handles insight-related HTTP requests
type InsightHandler struct {
	insightUsecase usecase.InsightUsecase
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(insightUsecase usecase.InsightUsecase) *InsightHandler {
	return &InsightHandler{
		insightUsecase: insightUsecase,
	}
}

// FeedbackRequest represents the request body for insight feedback
type FeedbackRequest struct {
	Helpful *bool  `json:"helpful" binding:"required"`
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

// GetPendingInsights returns the user's pending, unexpired insights
// GET /api/insights?limit=10
func (h *InsightHandler) GetPendingInsights(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	insights, err := h.insightUsecase.GetPending(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if insights == nil {
		insights = []*domain.Insight{}
	}

	c.JSON(http.StatusOK, gin.H{
		"insights": insights,
		"count":    len(insights),
	})
}

// GetAllInsights returns insights regardless of status, with optional filters
// GET /api/insights/all?type=focus_time&status=dismissed&limit=50
func (h *InsightHandler) GetAllInsights(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	filter := repository.Filter{
		Type:   domain.InsightType(c.Query("type")),
		Status: domain.InsightStatus(c.Query("status")),
		Limit:  limit,
	}

	insights, err := h.insightUsecase.GetAll(userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if insights == nil {
		insights = []*domain.Insight{}
	}

	c.JSON(http.StatusOK, gin.H{
		"insights": insights,
		"count":    len(insights),
	})
}

// GetDailyReport returns today's productivity insight
// GET /api/insights/daily
func (h *InsightHandler) GetDailyReport(c *gin.Context) {
	userID := c.GetString("userID")

	report, err := h.insightUsecase.GetDailyReport(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if report == nil {
		c.JSON(http.StatusOK, gin.H{"report": nil, "message": "No report generated yet today"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// MarkViewed marks an insight as seen by the user
// POST /api/insights/:id/viewed
func (h *InsightHandler) MarkViewed(c *gin.Context) {
	userID := c.GetString("userID")
	insightID := c.Param("id")

	insight, err := h.insightUsecase.MarkViewed(userID, insightID)
	if err != nil {
		respondInsightError(c, err)
		return
	}

	c.JSON(http.StatusOK, insight)
}

// SubmitFeedback records whether an insight was helpful
// POST /api/insights/:id/feedback
func (h *InsightHandler) SubmitFeedback(c *gin.Context) {
	userID := c.GetString("userID")
	insightID := c.Param("id")

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	insight, err := h.insightUsecase.SubmitFeedback(userID, insightID, usecase.Feedback{
		Helpful: *req.Helpful,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondInsightError(c, err)
		return
	}

	c.JSON(http.StatusOK, insight)
}

func respondInsightError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInsightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Insight not found"})
	case errors.Is(err, usecase.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case errors.Is(err, usecase.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
