package repository

import (
	"time"

	"assistant-backend/internal/insight/domain"
)

// Filter narrows an insight listing. Zero values mean "no constraint".
type Filter struct {
	Type   domain.InsightType
	Status domain.InsightStatus
	Limit  int
}

// InsightRepository defines the interface for insight data access
type InsightRepository interface {
	// Create creates a new insight, applying the 7-day default expiry when
	// none is set
	Create(insight *domain.Insight) error

	// FindByID finds an insight by its ID. Returns (nil, nil) when absent.
	FindByID(id string) (*domain.Insight, error)

	// GetPending returns a user's not-yet-expired pending insights, highest
	// priority first, then newest first
	GetPending(userID string, limit int) ([]*domain.Insight, error)

	// GetByType returns a user's insights of one type, newest first
	GetByType(userID string, insightType domain.InsightType, limit int) ([]*domain.Insight, error)

	// Find returns a user's insights matching the filter, newest first
	Find(userID string, filter Filter) ([]*domain.Insight, error)

	// FindLatestByTypeSince returns the user's most recent insight of the type
	// created at or after since. Returns (nil, nil) when absent.
	FindLatestByTypeSince(userID string, insightType domain.InsightType, since time.Time) (*domain.Insight, error)

	// FindWithFeedback returns a user's insights that carry user feedback
	FindWithFeedback(userID string, limit int) ([]*domain.Insight, error)

	// Update updates an existing insight
	Update(insight *domain.Insight) error

	// DeleteExpired removes insights whose expiry has passed; returns the
	// number removed
	DeleteExpired(now time.Time) (int64, error)

	// DeleteDismissedBefore removes dismissed insights created before cutoff;
	// returns the number removed
	DeleteDismissedBefore(cutoff time.Time) (int64, error)

	// DeleteExpiredForUser removes one user's expired insights
	DeleteExpiredForUser(userID string, now time.Time) (int64, error)
}
