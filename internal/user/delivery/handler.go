package delivery

import (
	"net/http"

	"assistant-backend/internal/user/domain"
	"assistant-backend/internal/user/repository"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user profile, preference and device token requests
type UserHandler struct {
	userRepo  repository.UserRepository
	tokenRepo repository.DeviceTokenRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repository.UserRepository, tokenRepo repository.DeviceTokenRepository) *UserHandler {
	return &UserHandler{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// RegisterTokenRequest represents the request body for FCM token registration
type RegisterTokenRequest struct {
	Token      string `json:"token" binding:"required"`
	DeviceInfo string `json:"device_info"`
}

// GetProfile returns the authenticated user's record
// GET /api/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetPreferences returns the user's preference bundle
// GET /api/users/preferences
func (h *UserHandler) GetPreferences(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": user.Preferences})
}

// UpdatePreferences replaces the user's preference bundle
// PUT /api/users/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var prefs domain.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user.Preferences = prefs
	if err := h.userRepo.Update(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": user.Preferences})
}

// RegisterDeviceToken stores an FCM token for push delivery. Re-registering
// the same token refreshes its owner and device info.
// POST /api/users/fcm/register
func (h *UserHandler) RegisterDeviceToken(c *gin.Context) {
	userID := c.GetString("userID")

	var req RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tokenRepo.SaveToken(userID, req.Token, req.DeviceInfo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token registered successfully"})
}

// DeleteDeviceToken removes an FCM token
// DELETE /api/users/fcm/:token
func (h *UserHandler) DeleteDeviceToken(c *gin.Context) {
	token := c.Param("token")

	if err := h.tokenRepo.DeleteToken(token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token deleted successfully"})
}

func (h *UserHandler) currentUser(c *gin.Context) (*domain.User, error) {
	if u, exists := c.Get("user"); exists {
		if user, ok := u.(*domain.User); ok {
			return user, nil
		}
	}
	return h.userRepo.FindByID(c.GetString("userID"))
}
