package domain

import "time"

// DefaultTTL is applied when an insight is created without an explicit expiry.
const DefaultTTL = 7 * 24 * time.Hour

// InsightType is the taxonomy of generated insights
type InsightType string

const (
	TypeMissedMeeting InsightType = "missed_meeting"
	TypeFocusTime     InsightType = "focus_time"
	TypeProductivity  InsightType = "productivity"
	TypeEmailFollowup InsightType = "email_followup"
	TypeGeneral       InsightType = "general"
)

// Priority represents insight priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank maps a priority to its sort weight, highest first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// InsightStatus is the lifecycle state of an insight
type InsightStatus string

const (
	StatusPending   InsightStatus = "pending"
	StatusViewed    InsightStatus = "viewed"
	StatusAccepted  InsightStatus = "accepted"
	StatusDismissed InsightStatus = "dismissed"
	StatusExpired   InsightStatus = "expired"
)

// Insight is a derived observation surfaced to the user. Metadata is opaque
// context from the interpretation service; the feedback fields drive the
// preference learning job.
type Insight struct {
	ID          string                 `json:"id" gorm:"primaryKey"`
	UserID      string                 `json:"user_id" gorm:"index:idx_insight_user_status,priority:1;not null"`
	Type        InsightType            `json:"type" gorm:"index;not null"`
	Priority    Priority               `json:"priority" gorm:"default:medium"`
	Title       string                 `json:"title" gorm:"not null"`
	Description string                 `json:"description" gorm:"not null"`
	Actionable  bool                   `json:"actionable" gorm:"default:true"`
	Action      string                 `json:"action,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" gorm:"serializer:json"`
	Status      InsightStatus          `json:"status" gorm:"index:idx_insight_user_status,priority:2;default:pending"`

	FeedbackHelpful *bool  `json:"feedback_helpful,omitempty"`
	FeedbackRating  *int   `json:"feedback_rating,omitempty"`
	FeedbackComment string `json:"feedback_comment,omitempty"`

	// ExpiresAt backs the store TTL purge; defaults to CreatedAt + 7 days
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_insight_user_status,priority:3,sort:desc"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplyDefaults fills status, priority and expiry for a freshly created
// insight. Zero ExpiresAt becomes now + DefaultTTL; explicit values win.
func (i *Insight) ApplyDefaults(now time.Time) {
	if i.Status == "" {
		i.Status = StatusPending
	}
	if i.Priority == "" {
		i.Priority = PriorityMedium
	}
	if i.ExpiresAt.IsZero() {
		i.ExpiresAt = now.Add(DefaultTTL)
	}
}

// Age returns how long ago the insight was created.
func (i *Insight) Age() time.Duration {
	return time.Since(i.CreatedAt)
}
