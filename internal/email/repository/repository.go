package repository

import (
	"time"

	"assistant-backend/internal/email/domain"
)

// EmailRepository defines the interface for email record access
type EmailRepository interface {
	// Create creates a new email record
	Create(email *domain.Email) error

	// FindByID finds an email by its ID. Returns (nil, nil) when absent.
	FindByID(id string) (*domain.Email, error)

	// FindByUser returns a user's emails, newest first
	FindByUser(userID string, limit, offset int) ([]*domain.Email, int64, error)

	// ExistsToAnySince reports whether the user has any email addressed to one
	// of the given recipients created at or after since. This backs the
	// follow-up negative-existence check.
	ExistsToAnySince(userID string, recipients []string, since time.Time) (bool, error)

	// Update updates an existing email record
	Update(email *domain.Email) error
}
