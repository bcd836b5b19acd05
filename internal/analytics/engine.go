package analytics

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	insightdomain "assistant-backend/internal/insight/domain"
	insightrepo "assistant-backend/internal/insight/repository"
	userdomain "assistant-backend/internal/user/domain"
	userrepo "assistant-backend/internal/user/repository"
	"assistant-backend/pkg/aiservice"
)

const (
	minFeedbackSamples = 5
	disableThreshold   = 0.3
	feedbackSampleCap  = 50
	dismissedRetention = 30 * 24 * time.Hour
)

// Interpreter is the slice of the interpretation service the analytics jobs
// consume.
type Interpreter interface {
	AnalyzePatterns(ctx context.Context, userID, analysisType, timeRange string) (*aiservice.PatternAnalysis, error)
	GenerateInsights(ctx context.Context, userID, timeRange string) (*aiservice.ProductivityReport, error)
	SuggestFocusTime(ctx context.Context, userID string, preferences interface{}) (*aiservice.FocusAnalysis, error)
}

// Notifier delivers a freshly created insight to the owner's live connections.
type Notifier interface {
	Broadcast(insight *insightdomain.Insight)
}

// Engine runs the periodic analytics jobs. Each job iterates users
// independently: a failing user is logged and skipped, never aborting the
// batch.
type Engine struct {
	userRepo    userrepo.UserRepository
	insightRepo insightrepo.InsightRepository
	interpreter Interpreter
	notifier    Notifier

	now func() time.Time
}

// NewEngine creates the analytics engine.
func NewEngine(userRepo userrepo.UserRepository, insightRepo insightrepo.InsightRepository, interpreter Interpreter, notifier Notifier) *Engine {
	return &Engine{
		userRepo:    userRepo,
		insightRepo: insightRepo,
		interpreter: interpreter,
		notifier:    notifier,
		now:         time.Now,
	}
}

// SetClock overrides the engine's clock. Intended for tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// DetectMissedMeetings asks the interpretation service which meetings each
// user missed in the last 24 hours and records an insight per finding.
func (e *Engine) DetectMissedMeetings(ctx context.Context) error {
	return e.forEachUser(ctx, "missed_meeting", func(user *userdomain.User) error {
		analysis, err := e.interpreter.AnalyzePatterns(ctx, user.ID, "missed_meetings", "24h")
		if err != nil {
			return fmt.Errorf("pattern analysis failed: %w", err)
		}

		for _, meeting := range analysis.MissedMeetings {
			priority := insightdomain.PriorityMedium
			if meeting.Important {
				priority = insightdomain.PriorityHigh
			}

			description := fmt.Sprintf("You missed %q scheduled for %s.", meeting.Title, meeting.Time)
			if len(meeting.Attendees) > 0 {
				description += " Attendees: " + strings.Join(meeting.Attendees, ", ")
			}

			organizer := meeting.Organizer
			if organizer == "" {
				organizer = "attendees"
			}

			insight := &insightdomain.Insight{
				UserID:      user.ID,
				Type:        insightdomain.TypeMissedMeeting,
				Priority:    priority,
				Title:       "Missed Meeting: " + meeting.Title,
				Description: description,
				Actionable:  true,
				Action:      "Send follow-up email to " + organizer,
				Metadata: map[string]interface{}{
					"title":     meeting.Title,
					"time":      meeting.Time,
					"attendees": meeting.Attendees,
					"organizer": meeting.Organizer,
					"important": meeting.Important,
				},
			}
			if err := e.createAndNotify(insight); err != nil {
				return err
			}
		}

		log.Printf("[Analytics] Detected %d missed meetings for user %s", len(analysis.MissedMeetings), user.ID)
		return nil
	})
}

// GenerateDailyInsights records one productivity report insight per user.
func (e *Engine) GenerateDailyInsights(ctx context.Context) error {
	return e.forEachUser(ctx, "productivity", func(user *userdomain.User) error {
		report, err := e.interpreter.GenerateInsights(ctx, user.ID, "24h")
		if err != nil {
			return fmt.Errorf("insight generation failed: %w", err)
		}

		insight := &insightdomain.Insight{
			UserID:      user.ID,
			Type:        insightdomain.TypeProductivity,
			Priority:    insightdomain.PriorityMedium,
			Title:       "Daily Productivity Report",
			Description: fmt.Sprintf("Productivity Score: %d/100. %s", report.Score, report.Summary),
			Actionable:  false,
			Metadata: map[string]interface{}{
				"score":             report.Score,
				"emails_sent":       report.EmailsSent,
				"meetings_attended": report.MeetingsAttended,
				"focus_time_hours":  report.FocusTimeHours,
				"top_achievements":  report.Achievements,
				"improvements":      report.Improvements,
			},
		}
		if err := e.createAndNotify(insight); err != nil {
			return err
		}

		log.Printf("[Analytics] Generated daily insight for user %s", user.ID)
		return nil
	})
}

// AnalyzeFocusPatterns records a focus-time insight per suggestion the
// service returns.
func (e *Engine) AnalyzeFocusPatterns(ctx context.Context) error {
	return e.forEachUser(ctx, "focus_time", func(user *userdomain.User) error {
		analysis, err := e.interpreter.SuggestFocusTime(ctx, user.ID, user.Preferences)
		if err != nil {
			return fmt.Errorf("focus analysis failed: %w", err)
		}

		for _, suggestion := range analysis.Suggestions {
			insight := &insightdomain.Insight{
				UserID:      user.ID,
				Type:        insightdomain.TypeFocusTime,
				Priority:    insightdomain.PriorityMedium,
				Title:       "Focus Time Suggestion",
				Description: fmt.Sprintf("Block %.1f hours for focused work %s. %s", suggestion.Duration, suggestion.Time, suggestion.Reason),
				Actionable:  true,
				Action:      fmt.Sprintf("Block calendar from %s to %s", suggestion.Start, suggestion.End),
				Metadata: map[string]interface{}{
					"duration": suggestion.Duration,
					"time":     suggestion.Time,
					"reason":   suggestion.Reason,
					"start":    suggestion.Start,
					"end":      suggestion.End,
				},
			}
			if err := e.createAndNotify(insight); err != nil {
				return err
			}
		}

		log.Printf("[Analytics] Analyzed focus patterns for user %s", user.ID)
		return nil
	})
}

// UpdateUserPreferences recomputes each user's per-type acceptance rate from
// insight feedback and disables notification types that fall below the
// helpfulness threshold. Users with too few feedback samples are left alone.
func (e *Engine) UpdateUserPreferences(ctx context.Context) error {
	users, err := e.userRepo.FindAll()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.learnPreferences(user); err != nil {
			log.Printf("[Analytics] Error updating preferences for user %s: %v", user.ID, err)
		}
	}
	return nil
}

func (e *Engine) learnPreferences(user *userdomain.User) error {
	insights, err := e.insightRepo.FindWithFeedback(user.ID, feedbackSampleCap)
	if err != nil {
		return fmt.Errorf("failed to load feedback: %w", err)
	}
	if len(insights) < minFeedbackSamples {
		return nil
	}

	stats := make(map[string]userdomain.TypeStats)
	for _, insight := range insights {
		s := stats[string(insight.Type)]
		s.Total++
		if insight.FeedbackHelpful != nil && *insight.FeedbackHelpful {
			s.Accepted++
		}
		stats[string(insight.Type)] = s
	}

	changed := false
	for insightType, s := range stats {
		rate := float64(s.Accepted) / float64(s.Total)
		if rate < disableThreshold && user.Preferences.NotificationSettings.NotificationsEnabled(insightType) {
			user.Preferences.NotificationSettings.Disable(insightType)
			changed = true
		}
	}

	now := e.now()
	user.LearningData.InsightStats = stats
	user.LearningData.LastUpdated = &now
	if err := e.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to save learning data: %w", err)
	}

	if changed {
		log.Printf("[Analytics] Updated notification preferences for user %s", user.ID)
	}
	return nil
}

// CleanupOldInsights deletes expired insights and dismissed insights older
// than 30 days.
func (e *Engine) CleanupOldInsights(ctx context.Context) error {
	now := e.now()

	expired, err := e.insightRepo.DeleteExpired(now)
	if err != nil {
		return fmt.Errorf("failed to delete expired insights: %w", err)
	}

	dismissed, err := e.insightRepo.DeleteDismissedBefore(now.Add(-dismissedRetention))
	if err != nil {
		return fmt.Errorf("failed to delete dismissed insights: %w", err)
	}

	log.Printf("[Analytics] Cleaned up %d old insights", expired+dismissed)
	return nil
}

// forEachUser runs fn for every user with the given insight type enabled,
// isolating per-user failures. Stops between users once ctx is done.
func (e *Engine) forEachUser(ctx context.Context, insightType string, fn func(*userdomain.User) error) error {
	users, err := e.userRepo.FindAll()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !user.Preferences.NotificationSettings.NotificationsEnabled(insightType) {
			continue
		}
		if err := fn(user); err != nil {
			log.Printf("[Analytics] Error analyzing user %s: %v", user.ID, err)
		}
	}
	return nil
}

func (e *Engine) createAndNotify(insight *insightdomain.Insight) error {
	if err := e.insightRepo.Create(insight); err != nil {
		return fmt.Errorf("failed to store insight: %w", err)
	}
	if e.notifier != nil {
		e.notifier.Broadcast(insight)
	}
	return nil
}
