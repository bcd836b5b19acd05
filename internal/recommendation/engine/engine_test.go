package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	activitydomain "assistant-backend/internal/activity/domain"
	calendardomain "assistant-backend/internal/calendar/domain"
	emaildomain "assistant-backend/internal/email/domain"
	"assistant-backend/internal/recommendation/domain"
	userdomain "assistant-backend/internal/user/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users []*userdomain.User
}

func (f *fakeUserRepo) Create(*userdomain.User) error                     { return nil }
func (f *fakeUserRepo) FindByID(string) (*userdomain.User, error)         { return nil, nil }
func (f *fakeUserRepo) FindByExternalID(string) (*userdomain.User, error) { return nil, nil }
func (f *fakeUserRepo) FindOrCreate(string, string) (*userdomain.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindAll() ([]*userdomain.User, error) { return f.users, nil }
func (f *fakeUserRepo) Update(*userdomain.User) error        { return nil }

type fakeCalendarRepo struct {
	completed []*calendardomain.CalendarEvent
	scheduled []*calendardomain.CalendarEvent
}

func (f *fakeCalendarRepo) Create(*calendardomain.CalendarEvent) error { return nil }
func (f *fakeCalendarRepo) FindByID(string) (*calendardomain.CalendarEvent, error) {
	return nil, nil
}
func (f *fakeCalendarRepo) FindUpcoming(string, int) ([]*calendardomain.CalendarEvent, error) {
	return nil, nil
}
func (f *fakeCalendarRepo) FindOverlapping(string, time.Time, time.Time) ([]*calendardomain.CalendarEvent, error) {
	return nil, nil
}
func (f *fakeCalendarRepo) FindCompletedBetween(userID string, from, to time.Time) ([]*calendardomain.CalendarEvent, error) {
	var out []*calendardomain.CalendarEvent
	for _, e := range f.completed {
		if !e.EndTime.Before(from) && !e.EndTime.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}
func (f *fakeCalendarRepo) FindScheduledBetween(userID string, from, to time.Time) ([]*calendardomain.CalendarEvent, error) {
	var out []*calendardomain.CalendarEvent
	for _, e := range f.scheduled {
		if !e.StartTime.Before(from) && !e.StartTime.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}
func (f *fakeCalendarRepo) Update(*calendardomain.CalendarEvent) error { return nil }

type fakeEmailRepo struct {
	// recipients considered already emailed since the relevant meeting end
	emailed map[string]bool
}

func (f *fakeEmailRepo) Create(*emaildomain.Email) error             { return nil }
func (f *fakeEmailRepo) FindByID(string) (*emaildomain.Email, error) { return nil, nil }
func (f *fakeEmailRepo) FindByUser(string, int, int) ([]*emaildomain.Email, int64, error) {
	return nil, 0, nil
}
func (f *fakeEmailRepo) ExistsToAnySince(userID string, recipients []string, since time.Time) (bool, error) {
	for _, r := range recipients {
		if f.emailed[r] {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeEmailRepo) Update(*emaildomain.Email) error { return nil }

type fakeActivityRepo struct {
	counts map[activitydomain.Action]int64
}

func (f *fakeActivityRepo) Create(*activitydomain.ActivityLog) error { return nil }
func (f *fakeActivityRepo) FindByUser(string, int, int) ([]*activitydomain.ActivityLog, int64, error) {
	return nil, 0, nil
}
func (f *fakeActivityRepo) CountByActionSince(userID string, action activitydomain.Action, since time.Time) (int64, error) {
	return f.counts[action], nil
}

type fakeRecRepo struct {
	created      []*domain.Recommendation
	sweptAt      []time.Time
	expiredCount int64
}

func (f *fakeRecRepo) Create(rec *domain.Recommendation) error {
	f.created = append(f.created, rec)
	return nil
}
func (f *fakeRecRepo) FindByID(string) (*domain.Recommendation, error) { return nil, nil }
func (f *fakeRecRepo) FindPending(string, int) ([]*domain.Recommendation, error) {
	return nil, nil
}
func (f *fakeRecRepo) Update(*domain.Recommendation) error { return nil }
func (f *fakeRecRepo) DeleteExpiredForUser(userID string, now time.Time) (int64, error) {
	f.sweptAt = append(f.sweptAt, now)
	return f.expiredCount, nil
}

func (f *fakeRecRepo) byType(t domain.RecommendationType) []*domain.Recommendation {
	var out []*domain.Recommendation
	for _, r := range f.created {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

func testUser() *userdomain.User {
	return &userdomain.User{ID: "user-1", Email: "user@example.com"}
}

func buildEngine(cal *fakeCalendarRepo, emailed map[string]bool, act *fakeActivityRepo, recs *fakeRecRepo, now time.Time) *Engine {
	if act == nil {
		act = &fakeActivityRepo{counts: map[activitydomain.Action]int64{}}
	}
	e := New(&fakeUserRepo{}, cal, &fakeEmailRepo{emailed: emailed}, act, recs)
	e.SetClock(func() time.Time { return now })
	return e
}

func TestCheckFollowUps(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	meeting := &calendardomain.CalendarEvent{
		ID:        "evt-1",
		UserID:    "user-1",
		Title:     "Design review",
		Status:    calendardomain.EventStatusCompleted,
		StartTime: now.Add(-4 * time.Hour),
		EndTime:   now.Add(-3 * time.Hour),
		Attendees: []calendardomain.Attendee{{Email: "alice@example.com", Name: "Alice"}},
	}

	t.Run("recommends follow-up when no email was sent", func(t *testing.T) {
		recs := &fakeRecRepo{}
		e := buildEngine(&fakeCalendarRepo{completed: []*calendardomain.CalendarEvent{meeting}}, nil, nil, recs, now)

		require.NoError(t, e.GenerateForUser(context.Background(), testUser()))

		followUps := recs.byType(domain.TypeFollowUpEmail)
		require.Len(t, followUps, 1)
		rec := followUps[0]
		assert.Equal(t, domain.PriorityMedium, rec.Priority)
		assert.Equal(t, "alice@example.com", rec.SuggestedAction.Parameters["recipient"])
		assert.Equal(t, "Follow-up: Design review", rec.SuggestedAction.Parameters["subject"])
		require.NotNil(t, rec.ExpiresAt)
		assert.Equal(t, now.Add(48*time.Hour), *rec.ExpiresAt)
		require.Len(t, rec.RelatedEntities, 1)
		assert.Equal(t, "evt-1", rec.RelatedEntities[0].ID)
	})

	t.Run("skips meeting once an attendee was emailed", func(t *testing.T) {
		recs := &fakeRecRepo{}
		e := buildEngine(&fakeCalendarRepo{completed: []*calendardomain.CalendarEvent{meeting}},
			map[string]bool{"alice@example.com": true}, nil, recs, now)

		require.NoError(t, e.GenerateForUser(context.Background(), testUser()))
		assert.Empty(t, recs.byType(domain.TypeFollowUpEmail))
	})

	t.Run("skips meetings without attendees", func(t *testing.T) {
		solo := *meeting
		solo.Attendees = nil
		recs := &fakeRecRepo{}
		e := buildEngine(&fakeCalendarRepo{completed: []*calendardomain.CalendarEvent{&solo}}, nil, nil, recs, now)

		require.NoError(t, e.GenerateForUser(context.Background(), testUser()))
		assert.Empty(t, recs.byType(domain.TypeFollowUpEmail))
	})
}

func TestCheckFocusTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	meetingsOn := func(days ...int) []*calendardomain.CalendarEvent {
		var out []*calendardomain.CalendarEvent
		for i, d := range days {
			start := now.Add(time.Duration(d)*24*time.Hour + time.Duration(i)*time.Hour)
			out = append(out, &calendardomain.CalendarEvent{
				ID:        "evt-" + string(rune('a'+i)),
				UserID:    "user-1",
				Status:    calendardomain.EventStatusScheduled,
				StartTime: start,
				EndTime:   start.Add(30 * time.Minute),
			})
		}
		return out
	}

	t.Run("exactly five meetings does not fire", func(t *testing.T) {
		recs := &fakeRecRepo{}
		e := buildEngine(&fakeCalendarRepo{scheduled: meetingsOn(1, 2, 3, 4, 5)}, nil, nil, recs, now)

		require.NoError(t, e.GenerateForUser(context.Background(), testUser()))
		assert.Empty(t, recs.byType(domain.TypeFocusTime))
	})

	t.Run("six meetings across four days fires high priority", func(t *testing.T) {
		recs := &fakeRecRepo{}
		e := buildEngine(&fakeCalendarRepo{scheduled: meetingsOn(1, 1, 2, 3, 4, 4)}, nil, nil, recs, now)

		require.NoError(t, e.GenerateForUser(context.Background(), testUser()))

		focus := recs.byType(domain.TypeFocusTime)
		require.Len(t, focus, 1)
		assert.Equal(t, domain.PriorityHigh, focus[0].Priority)
		require.NotNil(t, focus[0].ExpiresAt)
		assert.Equal(t, now.Add(24*time.Hour), *focus[0].ExpiresAt)
	})

	t.Run("six meetings crammed into three days does not fire", func(t *testing.T) {
		recs := &fakeRecRepo{}
		e := buildEngine(&fakeCalendarRepo{scheduled: meetingsOn(1, 1, 2, 2, 3, 3)}, nil, nil, recs, now)

		require.NoError(t, e.GenerateForUser(context.Background(), testUser()))
		assert.Empty(t, recs.byType(domain.TypeFocusTime))
	})
}

func TestCheckProductivity(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		emails   int64
		meetings int64
		fires    bool
	}{
		{"at both thresholds stays quiet", 20, 10, false},
		{"emails above threshold fires", 21, 0, true},
		{"meetings above threshold fires", 0, 11, true},
		{"low activity stays quiet", 3, 1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs := &fakeRecRepo{}
			act := &fakeActivityRepo{counts: map[activitydomain.Action]int64{
				activitydomain.ActionEmailSent:        tc.emails,
				activitydomain.ActionMeetingScheduled: tc.meetings,
			}}
			e := buildEngine(&fakeCalendarRepo{}, nil, act, recs, now)

			require.NoError(t, e.GenerateForUser(context.Background(), testUser()))

			got := recs.byType(domain.TypeProductivityInsight)
			if tc.fires {
				require.Len(t, got, 1)
				assert.Equal(t, domain.PriorityLow, got[0].Priority)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestCheckMeetingReminders(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	start := now.Add(45 * time.Minute)

	t.Run("reminder expires at the meeting start", func(t *testing.T) {
		meeting := &calendardomain.CalendarEvent{
			ID:          "evt-9",
			UserID:      "user-1",
			Title:       "Standup",
			Description: "Daily sync",
			Status:      calendardomain.EventStatusScheduled,
			StartTime:   start,
			EndTime:     start.Add(15 * time.Minute),
		}
		recs := &fakeRecRepo{}
		e := buildEngine(&fakeCalendarRepo{scheduled: []*calendardomain.CalendarEvent{meeting}}, nil, nil, recs, now)

		require.NoError(t, e.GenerateForUser(context.Background(), testUser()))

		reminders := recs.byType(domain.TypeMeetingReminder)
		require.Len(t, reminders, 1)
		require.NotNil(t, reminders[0].ExpiresAt)
		assert.Equal(t, start, *reminders[0].ExpiresAt)
		assert.Equal(t, domain.PriorityHigh, reminders[0].Priority)
	})

	t.Run("bare meeting with no description or attendees is skipped", func(t *testing.T) {
		meeting := &calendardomain.CalendarEvent{
			ID:        "evt-10",
			UserID:    "user-1",
			Title:     "Hold",
			Status:    calendardomain.EventStatusScheduled,
			StartTime: start,
			EndTime:   start.Add(15 * time.Minute),
		}
		recs := &fakeRecRepo{}
		e := buildEngine(&fakeCalendarRepo{scheduled: []*calendardomain.CalendarEvent{meeting}}, nil, nil, recs, now)

		require.NoError(t, e.GenerateForUser(context.Background(), testUser()))
		assert.Empty(t, recs.byType(domain.TypeMeetingReminder))
	})
}

func TestGenerateForUserSweepsExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	recs := &fakeRecRepo{expiredCount: 3}
	e := buildEngine(&fakeCalendarRepo{}, nil, nil, recs, now)

	require.NoError(t, e.GenerateForUser(context.Background(), testUser()))
	require.Len(t, recs.sweptAt, 1)
	assert.Equal(t, now, recs.sweptAt[0])
}

func TestGenerateAllContinuesPastFailingUser(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	users := &fakeUserRepo{users: []*userdomain.User{
		{ID: "user-bad"},
		{ID: "user-good"},
	}}
	cal := &failingCalendarRepo{failFor: "user-bad"}
	recs := &fakeRecRepo{}

	e := New(users, cal, &fakeEmailRepo{}, &fakeActivityRepo{counts: map[activitydomain.Action]int64{}}, recs)
	e.SetClock(func() time.Time { return now })

	require.NoError(t, e.GenerateAll(context.Background()))
	// the sweep still ran for the healthy user
	assert.Len(t, recs.sweptAt, 1)
}

func TestGenerateAllStopsOnCancelledContext(t *testing.T) {
	users := &fakeUserRepo{users: []*userdomain.User{{ID: "u1"}, {ID: "u2"}}}
	recs := &fakeRecRepo{}
	e := New(users, &fakeCalendarRepo{}, &fakeEmailRepo{}, &fakeActivityRepo{counts: map[activitydomain.Action]int64{}}, recs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.GenerateAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, recs.sweptAt)
}

// failingCalendarRepo errors for one user and stays empty for the rest.
type failingCalendarRepo struct {
	fakeCalendarRepo
	failFor string
}

func (f *failingCalendarRepo) FindCompletedBetween(userID string, from, to time.Time) ([]*calendardomain.CalendarEvent, error) {
	if userID == f.failFor {
		return nil, errors.New("storage offline")
	}
	return nil, nil
}
