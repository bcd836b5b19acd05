package repository

import "assistant-backend/internal/user/domain"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *domain.User) error

	// FindByID finds a user by internal ID. Returns (nil, nil) when absent.
	FindByID(id string) (*domain.User, error)

	// FindByExternalID finds a user by the identity the auth layer supplies.
	FindByExternalID(externalID string) (*domain.User, error)

	// FindOrCreate syncs a user at first sign-in: returns the existing record
	// for the external identity or creates one with default preferences.
	FindOrCreate(externalID, email string) (*domain.User, error)

	// FindAll returns every user, for batch jobs.
	FindAll() ([]*domain.User, error)

	Update(user *domain.User) error
}

// DeviceTokenRepository defines the interface for FCM token operations.
type DeviceTokenRepository interface {
	SaveToken(userID, token, deviceInfo string) error
	GetTokensByUserID(userID string) ([]domain.DeviceToken, error)
	DeleteToken(token string) error
	DeleteTokensByUserID(userID string) error
}
