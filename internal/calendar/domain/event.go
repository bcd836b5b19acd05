package domain

import "time"

// EventStatus represents the lifecycle state of a calendar event
type EventStatus string

const (
	EventStatusScheduled   EventStatus = "scheduled"
	EventStatusCompleted   EventStatus = "completed"
	EventStatusCancelled   EventStatus = "cancelled"
	EventStatusRescheduled EventStatus = "rescheduled"
)

// AttendeeStatus represents an attendee's response state
type AttendeeStatus string

const (
	AttendeeStatusPending  AttendeeStatus = "pending"
	AttendeeStatusAccepted AttendeeStatus = "accepted"
	AttendeeStatusDeclined AttendeeStatus = "declined"
)

// Attendee is one invited participant
type Attendee struct {
	Email  string         `json:"email"`
	Name   string         `json:"name,omitempty"`
	Status AttendeeStatus `json:"status"`
}

// CalendarEvent is a meeting or blocked slot on a user's calendar.
// Invariant: StartTime < EndTime.
type CalendarEvent struct {
	ID               string      `json:"id" gorm:"primaryKey"`
	UserID           string      `json:"user_id" gorm:"index;not null"`
	Title            string      `json:"title" gorm:"not null"`
	Description      string      `json:"description,omitempty"`
	Attendees        []Attendee  `json:"attendees" gorm:"serializer:json"`
	StartTime        time.Time   `json:"start_time" gorm:"index;not null"`
	EndTime          time.Time   `json:"end_time" gorm:"not null"`
	Location         string      `json:"location,omitempty"`
	MeetingLink      string      `json:"meeting_link,omitempty"`
	Status           EventStatus `json:"status" gorm:"index;default:scheduled"`
	AIGenerated      bool        `json:"ai_generated"`
	OriginalCommand  string      `json:"original_command,omitempty"`
	ConflictDetected bool        `json:"conflict_detected"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Overlaps reports whether two events' [StartTime, EndTime) intervals
// intersect.
func (e *CalendarEvent) Overlaps(other *CalendarEvent) bool {
	return e.StartTime.Before(other.EndTime) && other.StartTime.Before(e.EndTime)
}

// AttendeeEmails returns the attendee email addresses.
func (e *CalendarEvent) AttendeeEmails() []string {
	emails := make([]string, 0, len(e.Attendees))
	for _, a := range e.Attendees {
		emails = append(emails, a.Email)
	}
	return emails
}
