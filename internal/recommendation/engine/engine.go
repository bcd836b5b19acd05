package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	activitydomain "assistant-backend/internal/activity/domain"
	activityrepo "assistant-backend/internal/activity/repository"
	calendarrepo "assistant-backend/internal/calendar/repository"
	emailrepo "assistant-backend/internal/email/repository"
	"assistant-backend/internal/recommendation/domain"
	"assistant-backend/internal/recommendation/repository"
	userdomain "assistant-backend/internal/user/domain"
	userrepo "assistant-backend/internal/user/repository"
)

const (
	followUpWindow     = 24 * time.Hour
	followUpTTL        = 48 * time.Hour
	focusLookahead     = 7 * 24 * time.Hour
	focusTTL           = 24 * time.Hour
	focusEventMin      = 5 // fires only above this count
	focusBusyDayMin    = 4
	productivityWindow = 7 * 24 * time.Hour
	productivityTTL    = 7 * 24 * time.Hour
	emailsSentMin      = 20 // fires only above this count
	meetingsMin        = 10
	reminderLookahead  = 2 * time.Hour
)

// Engine derives recommendations from store state alone. Rules re-evaluate
// from scratch on every run, so a pending recommendation left from an earlier
// run can be duplicated by a later one.
type Engine struct {
	userRepo     userrepo.UserRepository
	calendarRepo calendarrepo.CalendarRepository
	emailRepo    emailrepo.EmailRepository
	activityRepo activityrepo.ActivityRepository
	recRepo      repository.RecommendationRepository

	now func() time.Time
}

// New creates a recommendation engine over the given repositories.
func New(
	userRepo userrepo.UserRepository,
	calendarRepo calendarrepo.CalendarRepository,
	emailRepo emailrepo.EmailRepository,
	activityRepo activityrepo.ActivityRepository,
	recRepo repository.RecommendationRepository,
) *Engine {
	return &Engine{
		userRepo:     userRepo,
		calendarRepo: calendarRepo,
		emailRepo:    emailRepo,
		activityRepo: activityRepo,
		recRepo:      recRepo,
		now:          time.Now,
	}
}

// SetClock overrides the engine's clock. Intended for tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// GenerateAll runs the rule set for every user. A failing user is logged and
// skipped; the batch continues.
func (e *Engine) GenerateAll(ctx context.Context) error {
	users, err := e.userRepo.FindAll()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.GenerateForUser(ctx, user); err != nil {
			log.Printf("[Recommendations] Error generating for user %s: %v", user.ID, err)
		}
	}
	return nil
}

// GenerateForUser evaluates all rules for one user and sweeps that user's
// expired recommendations.
func (e *Engine) GenerateForUser(ctx context.Context, user *userdomain.User) error {
	now := e.now()

	if err := e.checkFollowUps(user, now); err != nil {
		return err
	}
	if err := e.checkFocusTime(user, now); err != nil {
		return err
	}
	if err := e.checkProductivity(user, now); err != nil {
		return err
	}
	if err := e.checkMeetingReminders(user, now); err != nil {
		return err
	}

	if _, err := e.recRepo.DeleteExpiredForUser(user.ID, now); err != nil {
		return fmt.Errorf("failed to sweep expired recommendations: %w", err)
	}
	return nil
}

// checkFollowUps flags completed meetings from the last 24 hours that have at
// least one attendee and no email to any attendee sent at or after the
// meeting's end.
func (e *Engine) checkFollowUps(user *userdomain.User, now time.Time) error {
	meetings, err := e.calendarRepo.FindCompletedBetween(user.ID, now.Add(-followUpWindow), now)
	if err != nil {
		return fmt.Errorf("failed to load recent meetings: %w", err)
	}

	for _, meeting := range meetings {
		if len(meeting.Attendees) == 0 {
			continue
		}

		followUpExists, err := e.emailRepo.ExistsToAnySince(user.ID, meeting.AttendeeEmails(), meeting.EndTime)
		if err != nil {
			return fmt.Errorf("failed to check follow-up emails: %w", err)
		}
		if followUpExists {
			continue
		}

		hoursAgo := int(now.Sub(meeting.EndTime).Round(time.Hour).Hours())
		expires := now.Add(followUpTTL)
		rec := &domain.Recommendation{
			UserID:      user.ID,
			Type:        domain.TypeFollowUpEmail,
			Title:       fmt.Sprintf("Send follow-up for %q", meeting.Title),
			Description: "Consider sending a follow-up email to attendees of your recent meeting.",
			Priority:    domain.PriorityMedium,
			AIReasoning: fmt.Sprintf("Meeting ended %d hours ago without follow-up communication.", hoursAgo),
			SuggestedAction: domain.SuggestedAction{
				Command: fmt.Sprintf("Draft a follow-up email to %s about %s", meeting.Attendees[0].Email, meeting.Title),
				Parameters: map[string]string{
					"recipient": meeting.Attendees[0].Email,
					"subject":   "Follow-up: " + meeting.Title,
					"context":   "meeting follow-up",
				},
			},
			RelatedEntities: []domain.RelatedEntity{{Type: "CalendarEvent", ID: meeting.ID}},
			ExpiresAt:       &expires,
		}
		if err := e.recRepo.Create(rec); err != nil {
			return fmt.Errorf("failed to create follow-up recommendation: %w", err)
		}
	}
	return nil
}

// checkFocusTime suggests blocking focus time when the next 7 days hold more
// than 5 scheduled meetings spread over at least 4 distinct days.
func (e *Engine) checkFocusTime(user *userdomain.User, now time.Time) error {
	upcoming, err := e.calendarRepo.FindScheduledBetween(user.ID, now, now.Add(focusLookahead))
	if err != nil {
		return fmt.Errorf("failed to load upcoming events: %w", err)
	}

	if len(upcoming) <= focusEventMin {
		return nil
	}

	busyDays := make(map[string]struct{})
	for _, event := range upcoming {
		busyDays[event.StartTime.Format("2006-01-02")] = struct{}{}
	}
	if len(busyDays) < focusBusyDayMin {
		return nil
	}

	expires := now.Add(focusTTL)
	rec := &domain.Recommendation{
		UserID:      user.ID,
		Type:        domain.TypeFocusTime,
		Title:       "Schedule focus time",
		Description: fmt.Sprintf("You have %d meetings this week. Consider blocking time for focused work.", len(upcoming)),
		Priority:    domain.PriorityHigh,
		AIReasoning: fmt.Sprintf("High meeting density detected (%d meetings across %d days). Focus time recommended for productivity.", len(upcoming), len(busyDays)),
		SuggestedAction: domain.SuggestedAction{
			Command: "Schedule 2 hours of focus time tomorrow morning",
		},
		ExpiresAt: &expires,
	}
	if err := e.recRepo.Create(rec); err != nil {
		return fmt.Errorf("failed to create focus-time recommendation: %w", err)
	}
	return nil
}

// checkProductivity emits a weekly summary when trailing activity volume is
// high (more than 20 emails sent or more than 10 meetings scheduled).
func (e *Engine) checkProductivity(user *userdomain.User, now time.Time) error {
	since := now.Add(-productivityWindow)

	emailsSent, err := e.activityRepo.CountByActionSince(user.ID, activitydomain.ActionEmailSent, since)
	if err != nil {
		return fmt.Errorf("failed to count sent emails: %w", err)
	}
	meetingsScheduled, err := e.activityRepo.CountByActionSince(user.ID, activitydomain.ActionMeetingScheduled, since)
	if err != nil {
		return fmt.Errorf("failed to count scheduled meetings: %w", err)
	}

	if emailsSent <= emailsSentMin && meetingsScheduled <= meetingsMin {
		return nil
	}

	expires := now.Add(productivityTTL)
	rec := &domain.Recommendation{
		UserID:      user.ID,
		Type:        domain.TypeProductivityInsight,
		Title:       "Weekly productivity summary",
		Description: fmt.Sprintf("This week: %d emails sent, %d meetings scheduled. Great productivity!", emailsSent, meetingsScheduled),
		Priority:    domain.PriorityLow,
		AIReasoning: "High activity levels detected. User is actively using automation features.",
		SuggestedAction: domain.SuggestedAction{
			Command: "Show me my productivity stats",
		},
		ExpiresAt: &expires,
	}
	if err := e.recRepo.Create(rec); err != nil {
		return fmt.Errorf("failed to create productivity recommendation: %w", err)
	}
	return nil
}

// checkMeetingReminders reminds about scheduled meetings starting within the
// next 2 hours that have a description or at least one attendee. The reminder
// expires exactly at the meeting's start.
func (e *Engine) checkMeetingReminders(user *userdomain.User, now time.Time) error {
	soon, err := e.calendarRepo.FindScheduledBetween(user.ID, now, now.Add(reminderLookahead))
	if err != nil {
		return fmt.Errorf("failed to load imminent events: %w", err)
	}

	for _, meeting := range soon {
		if meeting.Description == "" && len(meeting.Attendees) == 0 {
			continue
		}

		startsAt := meeting.StartTime
		minutes := int(startsAt.Sub(now).Round(time.Minute).Minutes())
		rec := &domain.Recommendation{
			UserID:      user.ID,
			Type:        domain.TypeMeetingReminder,
			Title:       fmt.Sprintf("Upcoming: %q", meeting.Title),
			Description: fmt.Sprintf("Meeting starts in %d minutes.", minutes),
			Priority:    domain.PriorityHigh,
			AIReasoning: "Meeting approaching. Reminder to prepare or join.",
			SuggestedAction: domain.SuggestedAction{
				Command:    "Show details for meeting " + meeting.Title,
				Parameters: map[string]string{"meeting_id": meeting.ID},
			},
			RelatedEntities: []domain.RelatedEntity{{Type: "CalendarEvent", ID: meeting.ID}},
			ExpiresAt:       &startsAt,
		}
		if err := e.recRepo.Create(rec); err != nil {
			return fmt.Errorf("failed to create meeting reminder: %w", err)
		}
	}
	return nil
}
