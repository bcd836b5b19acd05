package repository

import (
	"time"

	"assistant-backend/internal/recommendation/domain"
)

// RecommendationRepository defines the interface for recommendation data access
type RecommendationRepository interface {
	// Create creates a new recommendation
	Create(rec *domain.Recommendation) error

	// FindByID finds a recommendation by its ID. Returns (nil, nil) when absent.
	FindByID(id string) (*domain.Recommendation, error)

	// FindPending returns a user's pending, unexpired recommendations, highest
	// priority first, then newest first
	FindPending(userID string, limit int) ([]*domain.Recommendation, error)

	// Update updates an existing recommendation
	Update(rec *domain.Recommendation) error

	// DeleteExpiredForUser removes the user's recommendations whose expiry has
	// passed; returns the number removed. Eager counterpart of the store TTL.
	DeleteExpiredForUser(userID string, now time.Time) (int64, error)
}
