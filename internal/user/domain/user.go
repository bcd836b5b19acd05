package domain

import "time"

// WorkingHours describes the user's working window.
type WorkingHours struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone"`
}

// FocusTimePreference describes how the user likes focus blocks scheduled.
type FocusTimePreference struct {
	DurationHours  float64  `json:"duration_hours"`
	PreferredTimes []string `json:"preferred_times"`
}

// NotificationSettings holds per-insight-type delivery toggles. The preference
// learning job flips these off when a type's acceptance rate stays low.
type NotificationSettings struct {
	MissedMeetings bool `json:"missed_meetings"`
	FocusTime      bool `json:"focus_time"`
	DailyInsights  bool `json:"daily_insights"`
	EmailFollowups bool `json:"email_followups"`
}

// ProductivityGoals are the user's self-declared targets.
type ProductivityGoals struct {
	DailyFocusHours   float64 `json:"daily_focus_hours"`
	WeeklyMeetings    int     `json:"weekly_meetings"`
	EmailResponseTime int     `json:"email_response_time_hours"`
}

// Preferences bundles everything the user can tune.
type Preferences struct {
	WorkingHours         WorkingHours         `json:"working_hours"`
	FocusTimePreference  FocusTimePreference  `json:"focus_time_preference"`
	NotificationSettings NotificationSettings `json:"notification_settings"`
	ProductivityGoals    ProductivityGoals    `json:"productivity_goals"`
}

// Interaction records one user reaction to an insight.
type Interaction struct {
	InsightType string    `json:"insight_type"`
	Action      string    `json:"action"` // accepted, dismissed, ignored
	Timestamp   time.Time `json:"timestamp"`
}

// TypeStats is the per-insight-type acceptance tally.
type TypeStats struct {
	Accepted int `json:"accepted"`
	Total    int `json:"total"`
}

// LearningData is written by the preference learning job.
type LearningData struct {
	InteractionHistory []Interaction        `json:"interaction_history,omitempty"`
	InsightStats       map[string]TypeStats `json:"insight_stats,omitempty"`
	LastUpdated        *time.Time           `json:"last_updated,omitempty"`
}

// User is created on first sight of an external identity and updated
// throughout; it is never hard-deleted.
type User struct {
	ID           string       `json:"id" gorm:"primaryKey"`
	ExternalID   string       `json:"external_id" gorm:"uniqueIndex;not null"`
	Email        string       `json:"email" gorm:"uniqueIndex;not null"`
	FirstName    string       `json:"first_name,omitempty"`
	LastName     string       `json:"last_name,omitempty"`
	Preferences  Preferences  `json:"preferences" gorm:"serializer:json"`
	LearningData LearningData `json:"learning_data" gorm:"serializer:json"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// DefaultPreferences returns the preference bundle applied at first sign-in.
func DefaultPreferences() Preferences {
	return Preferences{
		WorkingHours: WorkingHours{
			Start:    "09:00",
			End:      "17:00",
			Timezone: "UTC",
		},
		FocusTimePreference: FocusTimePreference{
			DurationHours:  2,
			PreferredTimes: []string{"morning", "afternoon"},
		},
		NotificationSettings: NotificationSettings{
			MissedMeetings: true,
			FocusTime:      true,
			DailyInsights:  true,
			EmailFollowups: true,
		},
		ProductivityGoals: ProductivityGoals{
			DailyFocusHours:   4,
			WeeklyMeetings:    10,
			EmailResponseTime: 24,
		},
	}
}

// NotificationsEnabled reports whether the given insight type should be
// generated for this user. Unknown types default to enabled.
func (s NotificationSettings) NotificationsEnabled(insightType string) bool {
	switch insightType {
	case "missed_meeting":
		return s.MissedMeetings
	case "focus_time":
		return s.FocusTime
	case "productivity":
		return s.DailyInsights
	case "email_followup":
		return s.EmailFollowups
	default:
		return true
	}
}

// Disable turns off notifications for the given insight type.
func (s *NotificationSettings) Disable(insightType string) {
	switch insightType {
	case "missed_meeting":
		s.MissedMeetings = false
	case "focus_time":
		s.FocusTime = false
	case "productivity":
		s.DailyInsights = false
	case "email_followup":
		s.EmailFollowups = false
	}
}
