package domain

import "time"

// RecommendationType enumerates the suggestion kinds the engine produces
type RecommendationType string

const (
	TypeFollowUpEmail         RecommendationType = "follow_up_email"
	TypeMeetingReminder       RecommendationType = "meeting_reminder"
	TypeFocusTime             RecommendationType = "focus_time"
	TypeProductivityInsight   RecommendationType = "productivity_insight"
	TypeMissedMeetingFollowUp RecommendationType = "missed_meeting_follow_up"
	TypeScheduleOptimization  RecommendationType = "schedule_optimization"
)

// Priority represents recommendation priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// RecommendationStatus is the lifecycle state. Once a record leaves pending
// the new status is terminal.
type RecommendationStatus string

const (
	StatusPending   RecommendationStatus = "pending"
	StatusAccepted  RecommendationStatus = "accepted"
	StatusDismissed RecommendationStatus = "dismissed"
	StatusExecuted  RecommendationStatus = "executed"
)

// SuggestedAction is a command the UI can re-submit verbatim
type SuggestedAction struct {
	Command    string            `json:"command"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// RelatedEntity is a weak back-reference; the referenced document is never
// required to exist.
type RelatedEntity struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Recommendation is a suggested action surfaced to the user. AIReasoning is an
// opaque explanation string, stored and displayed but never interpreted.
type Recommendation struct {
	ID              string                 `json:"id" gorm:"primaryKey"`
	UserID          string                 `json:"user_id" gorm:"index:idx_rec_user_status,priority:1;not null"`
	Type            RecommendationType     `json:"type" gorm:"not null"`
	Title           string                 `json:"title" gorm:"not null"`
	Description     string                 `json:"description" gorm:"not null"`
	Priority        Priority               `json:"priority" gorm:"default:medium"`
	AIReasoning     string                 `json:"ai_reasoning,omitempty"`
	SuggestedAction SuggestedAction        `json:"suggested_action" gorm:"serializer:json"`
	Status          RecommendationStatus   `json:"status" gorm:"index:idx_rec_user_status,priority:2;default:pending"`
	RelatedEntities []RelatedEntity        `json:"related_entities,omitempty" gorm:"serializer:json"`
	ExpiresAt       *time.Time             `json:"expires_at,omitempty" gorm:"index"`
	ExecutedAt      *time.Time             `json:"executed_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at" gorm:"index:idx_rec_user_status,priority:3,sort:desc"`
}

// Expired reports whether the recommendation's deadline has passed. A nil
// ExpiresAt never expires.
func (r *Recommendation) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && !r.ExpiresAt.After(now)
}
