package domain

import "time"

// Action enumerates the kinds of actions the assistant records
type Action string

const (
	ActionEmailSent               Action = "email_sent"
	ActionEmailDrafted            Action = "email_drafted"
	ActionMeetingScheduled        Action = "meeting_scheduled"
	ActionMeetingCancelled        Action = "meeting_cancelled"
	ActionCommandProcessed        Action = "command_processed"
	ActionRecommendationGenerated Action = "recommendation_generated"
	ActionRecommendationExecuted  Action = "recommendation_executed"
)

// ActivityStatus is the outcome of the recorded action
type ActivityStatus string

const (
	ActivityStatusSuccess   ActivityStatus = "success"
	ActivityStatusFailed    ActivityStatus = "failed"
	ActivityStatusPending   ActivityStatus = "pending"
	ActivityStatusCancelled ActivityStatus = "cancelled"
)

// ActivityLog is an append-only audit record. It is never mutated after
// creation. The AI fields (plan, reasoning, confidence) are opaque
// pass-through values from the interpretation service.
type ActivityLog struct {
	ID              string                 `json:"id" gorm:"primaryKey"`
	UserID          string                 `json:"user_id" gorm:"index:idx_activity_user_time,priority:1;not null"`
	Action          Action                 `json:"action" gorm:"index;not null"`
	Description     string                 `json:"description" gorm:"not null"`
	Command         string                 `json:"command,omitempty"`
	AIPlan          map[string]interface{} `json:"ai_plan,omitempty" gorm:"serializer:json"`
	AIReasoning     string                 `json:"ai_reasoning,omitempty"`
	Confidence      *float64               `json:"confidence,omitempty"`
	Status          ActivityStatus         `json:"status" gorm:"default:success"`
	Metadata        map[string]interface{} `json:"metadata,omitempty" gorm:"serializer:json"`
	RelatedEntity   string                 `json:"related_entity,omitempty"`
	RelatedEntityID string                 `json:"related_entity_id,omitempty"`
	Error           string                 `json:"error,omitempty"`
	ExecutionTimeMs int64                  `json:"execution_time_ms,omitempty"`
	Timestamp       time.Time              `json:"timestamp" gorm:"index:idx_activity_user_time,priority:2,sort:desc"`
}
