package repository

import (
	"time"

	"assistant-backend/internal/calendar/domain"
)

// CalendarRepository defines the interface for calendar event data access
type CalendarRepository interface {
	// Create creates a new calendar event
	Create(event *domain.CalendarEvent) error

	// FindByID finds an event by its ID. Returns (nil, nil) when absent.
	FindByID(id string) (*domain.CalendarEvent, error)

	// FindUpcoming returns a user's non-cancelled events, soonest first
	FindUpcoming(userID string, limit int) ([]*domain.CalendarEvent, error)

	// FindOverlapping returns the user's non-cancelled events whose
	// [start, end) interval intersects the given one
	FindOverlapping(userID string, start, end time.Time) ([]*domain.CalendarEvent, error)

	// FindCompletedBetween returns completed events with end_time in [from, to]
	FindCompletedBetween(userID string, from, to time.Time) ([]*domain.CalendarEvent, error)

	// FindScheduledBetween returns scheduled events with start_time in
	// [from, to], soonest first
	FindScheduledBetween(userID string, from, to time.Time) ([]*domain.CalendarEvent, error)

	// Update updates an existing event
	Update(event *domain.CalendarEvent) error
}
