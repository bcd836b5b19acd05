package repository

import (
	"time"

	"assistant-backend/internal/activity/domain"
)

// ActivityRepository defines the interface for activity log access.
// Records are write-once: there is no update or delete.
type ActivityRepository interface {
	// Create appends a new activity record
	Create(entry *domain.ActivityLog) error

	// FindByUser returns a user's records, newest first
	FindByUser(userID string, limit, offset int) ([]*domain.ActivityLog, int64, error)

	// CountByActionSince counts a user's records of one action kind with
	// timestamp at or after since
	CountByActionSince(userID string, action domain.Action, since time.Time) (int64, error)
}
