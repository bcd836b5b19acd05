package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"assistant-backend/internal/calendar/domain"
	"assistant-backend/internal/calendar/usecase"

	"github.com/gin-gonic/gin"
)

// CalendarHandler handles calendar-related HTTP requests
type CalendarHandler struct {
	calendarUsecase usecase.CalendarUsecase
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(calendarUsecase usecase.CalendarUsecase) *CalendarHandler {
	return &CalendarHandler{
		calendarUsecase: calendarUsecase,
	}
}

// ScheduleRequest represents the request body for scheduling an event
type ScheduleRequest struct {
	Title           string            `json:"title" binding:"required"`
	Description     string            `json:"description"`
	Attendees       []domain.Attendee `json:"attendees"`
	StartTime       time.Time         `json:"start_time" binding:"required"`
	EndTime         time.Time         `json:"end_time" binding:"required"`
	Location        string            `json:"location"`
	MeetingLink     string            `json:"meeting_link"`
	AIGenerated     bool              `json:"ai_generated"`
	OriginalCommand string            `json:"original_command"`
}

// GetUpcomingEvents returns the user's upcoming events
// GET /api/calendar?limit=20
func (h *CalendarHandler) GetUpcomingEvents(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	events, err := h.calendarUsecase.GetUpcoming(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if events == nil {
		events = []*domain.CalendarEvent{}
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// ScheduleEvent creates an event and reports any overlapping events. An
// overlap never blocks creation; the response carries the conflicts so the
// client can offer a reschedule.
// POST /api/calendar/schedule
func (h *CalendarHandler) ScheduleEvent(c *gin.Context) {
	userID := c.GetString("userID")

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, conflicts, err := h.calendarUsecase.Schedule(userID, usecase.ScheduleInput{
		Title:           req.Title,
		Description:     req.Description,
		Attendees:       req.Attendees,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		MeetingLink:     req.MeetingLink,
		AIGenerated:     req.AIGenerated,
		OriginalCommand: req.OriginalCommand,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if conflicts == nil {
		conflicts = []*domain.CalendarEvent{}
	}

	c.JSON(http.StatusCreated, gin.H{
		"event":             event,
		"conflict_detected": event.ConflictDetected,
		"conflicts":         conflicts,
	})
}

// CancelEvent cancels a scheduled event
// POST /api/calendar/:id/cancel
func (h *CalendarHandler) CancelEvent(c *gin.Context) {
	userID := c.GetString("userID")
	eventID := c.Param("id")

	event, err := h.calendarUsecase.Cancel(userID, eventID)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// CompleteEvent marks an event as completed
// POST /api/calendar/:id/complete
func (h *CalendarHandler) CompleteEvent(c *gin.Context) {
	userID := c.GetString("userID")
	eventID := c.Param("id")

	event, err := h.calendarUsecase.Complete(userID, eventID)
	if err != nil {
		respondCalendarError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func respondCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, usecase.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
