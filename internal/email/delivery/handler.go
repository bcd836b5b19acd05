package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"assistant-backend/internal/email/domain"
	"assistant-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

// EmailHandler handles email-related HTTP requests
type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

// DraftRequest represents the request body for creating a draft
type DraftRequest struct {
	Recipient       string `json:"recipient" binding:"required,email"`
	Subject         string `json:"subject" binding:"required"`
	Body            string `json:"body"`
	Tone            string `json:"tone"`
	AIGenerated     bool   `json:"ai_generated"`
	OriginalCommand string `json:"original_command"`
}

// GetEmails returns the user's email records, newest first
// GET /api/emails?limit=50&offset=0
func (h *EmailHandler) GetEmails(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	emails, total, err := h.emailUsecase.GetByUser(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if emails == nil {
		emails = []*domain.Email{}
	}

	c.JSON(http.StatusOK, gin.H{
		"emails": emails,
		"total":  total,
	})
}

// CreateDraft stores a new draft
// POST /api/emails
func (h *EmailHandler) CreateDraft(c *gin.Context) {
	userID := c.GetString("userID")

	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, err := h.emailUsecase.CreateDraft(userID, usecase.DraftInput{
		Recipient:       req.Recipient,
		Subject:         req.Subject,
		Body:            req.Body,
		Tone:            domain.Tone(req.Tone),
		AIGenerated:     req.AIGenerated,
		OriginalCommand: req.OriginalCommand,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, email)
}

// SendEmail marks a draft as sent
// POST /api/emails/:id/send
func (h *EmailHandler) SendEmail(c *gin.Context) {
	userID := c.GetString("userID")
	emailID := c.Param("id")

	email, err := h.emailUsecase.MarkSent(userID, emailID)
	if err != nil {
		respondEmailError(c, err)
		return
	}

	c.JSON(http.StatusOK, email)
}

// FailEmail marks a draft as failed with a reason
// POST /api/emails/:id/fail
func (h *EmailHandler) FailEmail(c *gin.Context) {
	userID := c.GetString("userID")
	emailID := c.Param("id")

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, err := h.emailUsecase.MarkFailed(userID, emailID, req.Reason)
	if err != nil {
		respondEmailError(c, err)
		return
	}

	c.JSON(http.StatusOK, email)
}

func respondEmailError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmailNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
	case errors.Is(err, usecase.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case errors.Is(err, usecase.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
