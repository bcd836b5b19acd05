package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"assistant-backend/internal/recommendation/domain"
	"assistant-backend/internal/recommendation/usecase"

	"github.com/gin-gonic/gin"
)

// RecommendationHandler handles recommendation-related HTTP requests
type RecommendationHandler struct {
	recUsecase usecase.RecommendationUsecase
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(recUsecase usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{
		recUsecase: recUsecase,
	}
}

// GetPendingRecommendations returns the user's pending recommendations,
// highest priority first
// GET /api/recommendations?limit=20
func (h *RecommendationHandler) GetPendingRecommendations(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	recs, err := h.recUsecase.GetPending(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if recs == nil {
		recs = []*domain.Recommendation{}
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"count":           len(recs),
	})
}

// UpdateStatus moves a recommendation out of pending
// PATCH /api/recommendations/:id/status
func (h *RecommendationHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetString("userID")
	recID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.recUsecase.UpdateStatus(userID, recID, domain.RecommendationStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRecommendationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recommendation not found"})
		case errors.Is(err, usecase.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		case errors.Is(err, usecase.ErrInvalidStatus), errors.Is(err, usecase.ErrTerminalStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, rec)
}
