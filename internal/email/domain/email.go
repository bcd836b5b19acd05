package domain

import "time"

// EmailStatus is the delivery state of a stored email. Transitions are
// one-directional: draft -> sent | failed.
type EmailStatus string

const (
	EmailStatusDraft  EmailStatus = "draft"
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// Tone is the writing tone requested for the email
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneFormal       Tone = "formal"
	ToneFriendly     Tone = "friendly"
)

// Email is an outbound message record owned by a user. The provenance fields
// (AIGenerated, OriginalCommand) are opaque metadata from the interpretation
// service.
type Email struct {
	ID              string      `json:"id" gorm:"primaryKey"`
	UserID          string      `json:"user_id" gorm:"index;not null"`
	Recipient       string      `json:"recipient" gorm:"index;not null"`
	Subject         string      `json:"subject" gorm:"not null"`
	Body            string      `json:"body" gorm:"not null"`
	Status          EmailStatus `json:"status" gorm:"default:draft"`
	Tone            Tone        `json:"tone" gorm:"default:professional"`
	AIGenerated     bool        `json:"ai_generated"`
	OriginalCommand string      `json:"original_command,omitempty"`
	SentAt          *time.Time  `json:"sent_at,omitempty"`
	Error           string      `json:"error,omitempty"`
	CreatedAt       time.Time   `json:"created_at" gorm:"index"`
}
