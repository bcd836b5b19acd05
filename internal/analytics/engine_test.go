package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	insightdomain "assistant-backend/internal/insight/domain"
	insightrepo "assistant-backend/internal/insight/repository"
	userdomain "assistant-backend/internal/user/domain"
	"assistant-backend/pkg/aiservice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users   []*userdomain.User
	updated []*userdomain.User
}

func (f *fakeUserRepo) Create(*userdomain.User) error                     { return nil }
func (f *fakeUserRepo) FindByID(string) (*userdomain.User, error)         { return nil, nil }
func (f *fakeUserRepo) FindByExternalID(string) (*userdomain.User, error) { return nil, nil }
func (f *fakeUserRepo) FindOrCreate(string, string) (*userdomain.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindAll() ([]*userdomain.User, error) { return f.users, nil }
func (f *fakeUserRepo) Update(u *userdomain.User) error {
	f.updated = append(f.updated, u)
	return nil
}

type fakeInsightRepo struct {
	created  []*insightdomain.Insight
	feedback map[string][]*insightdomain.Insight

	expired   int64
	dismissed int64
	// each delete drains its counter so a second sweep removes nothing
	expiredCalls   int
	dismissedCalls int
}

func (f *fakeInsightRepo) Create(insight *insightdomain.Insight) error {
	f.created = append(f.created, insight)
	return nil
}
func (f *fakeInsightRepo) FindByID(string) (*insightdomain.Insight, error) { return nil, nil }
func (f *fakeInsightRepo) GetPending(string, int) ([]*insightdomain.Insight, error) {
	return nil, nil
}
func (f *fakeInsightRepo) GetByType(string, insightdomain.InsightType, int) ([]*insightdomain.Insight, error) {
	return nil, nil
}
func (f *fakeInsightRepo) Find(string, insightrepo.Filter) ([]*insightdomain.Insight, error) {
	return nil, nil
}
func (f *fakeInsightRepo) FindLatestByTypeSince(string, insightdomain.InsightType, time.Time) (*insightdomain.Insight, error) {
	return nil, nil
}
func (f *fakeInsightRepo) FindWithFeedback(userID string, limit int) ([]*insightdomain.Insight, error) {
	return f.feedback[userID], nil
}
func (f *fakeInsightRepo) Update(*insightdomain.Insight) error { return nil }
func (f *fakeInsightRepo) DeleteExpired(time.Time) (int64, error) {
	f.expiredCalls++
	n := f.expired
	f.expired = 0
	return n, nil
}
func (f *fakeInsightRepo) DeleteDismissedBefore(time.Time) (int64, error) {
	f.dismissedCalls++
	n := f.dismissed
	f.dismissed = 0
	return n, nil
}
func (f *fakeInsightRepo) DeleteExpiredForUser(string, time.Time) (int64, error) {
	return 0, nil
}

type fakeInterpreter struct {
	failFor  map[string]bool
	patterns *aiservice.PatternAnalysis
	report   *aiservice.ProductivityReport
	focus    *aiservice.FocusAnalysis
}

func (f *fakeInterpreter) AnalyzePatterns(ctx context.Context, userID, analysisType, timeRange string) (*aiservice.PatternAnalysis, error) {
	if f.failFor[userID] {
		return nil, errors.New("interpretation service unavailable")
	}
	return f.patterns, nil
}
func (f *fakeInterpreter) GenerateInsights(ctx context.Context, userID, timeRange string) (*aiservice.ProductivityReport, error) {
	if f.failFor[userID] {
		return nil, errors.New("interpretation service unavailable")
	}
	return f.report, nil
}
func (f *fakeInterpreter) SuggestFocusTime(ctx context.Context, userID string, preferences interface{}) (*aiservice.FocusAnalysis, error) {
	if f.failFor[userID] {
		return nil, errors.New("interpretation service unavailable")
	}
	return f.focus, nil
}

type fakeNotifier struct {
	broadcasts []*insightdomain.Insight
}

func (f *fakeNotifier) Broadcast(insight *insightdomain.Insight) {
	f.broadcasts = append(f.broadcasts, insight)
}

func userWithDefaults(id string) *userdomain.User {
	return &userdomain.User{ID: id, Preferences: userdomain.DefaultPreferences()}
}

func TestDetectMissedMeetings(t *testing.T) {
	interp := &fakeInterpreter{
		patterns: &aiservice.PatternAnalysis{
			MissedMeetings: []aiservice.MissedMeeting{
				{Title: "1:1 with Sam", Time: "10:00", Organizer: "sam@example.com", Important: true},
				{Title: "Brown bag", Time: "12:00"},
			},
		},
	}
	insights := &fakeInsightRepo{}
	notif := &fakeNotifier{}
	users := &fakeUserRepo{users: []*userdomain.User{userWithDefaults("user-1")}}

	e := NewEngine(users, insights, interp, notif)
	require.NoError(t, e.DetectMissedMeetings(context.Background()))

	require.Len(t, insights.created, 2)
	first := insights.created[0]
	assert.Equal(t, insightdomain.TypeMissedMeeting, first.Type)
	assert.Equal(t, insightdomain.PriorityHigh, first.Priority)
	assert.Equal(t, "Send follow-up email to sam@example.com", first.Action)

	second := insights.created[1]
	assert.Equal(t, insightdomain.PriorityMedium, second.Priority)
	assert.Equal(t, "Send follow-up email to attendees", second.Action)

	// every stored insight was broadcast
	assert.Len(t, notif.broadcasts, 2)
}

func TestForEachUserSkipsDisabledAndIsolatesFailures(t *testing.T) {
	disabled := userWithDefaults("user-muted")
	disabled.Preferences.NotificationSettings.MissedMeetings = false

	users := &fakeUserRepo{users: []*userdomain.User{
		userWithDefaults("user-broken"),
		disabled,
		userWithDefaults("user-ok"),
	}}
	interp := &fakeInterpreter{
		failFor: map[string]bool{"user-broken": true},
		patterns: &aiservice.PatternAnalysis{
			MissedMeetings: []aiservice.MissedMeeting{{Title: "Sync", Time: "09:00"}},
		},
	}
	insights := &fakeInsightRepo{}

	e := NewEngine(users, insights, interp, nil)
	require.NoError(t, e.DetectMissedMeetings(context.Background()))

	// only user-ok produced an insight: the failure was swallowed and the
	// muted user never reached the interpreter
	require.Len(t, insights.created, 1)
	assert.Equal(t, "user-ok", insights.created[0].UserID)
}

func TestForEachUserStopsOnCancelledContext(t *testing.T) {
	users := &fakeUserRepo{users: []*userdomain.User{
		userWithDefaults("user-1"),
		userWithDefaults("user-2"),
	}}
	interp := &fakeInterpreter{
		patterns: &aiservice.PatternAnalysis{
			MissedMeetings: []aiservice.MissedMeeting{{Title: "Sync", Time: "09:00"}},
		},
	}
	insights := &fakeInsightRepo{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine(users, insights, interp, nil)
	assert.ErrorIs(t, e.DetectMissedMeetings(ctx), context.Canceled)
	assert.Empty(t, insights.created)
}

func TestGenerateDailyInsights(t *testing.T) {
	interp := &fakeInterpreter{
		report: &aiservice.ProductivityReport{
			Score:            82,
			Summary:          "Strong email throughput.",
			EmailsSent:       14,
			MeetingsAttended: 3,
			FocusTimeHours:   2.5,
		},
	}
	insights := &fakeInsightRepo{}
	users := &fakeUserRepo{users: []*userdomain.User{userWithDefaults("user-1")}}

	e := NewEngine(users, insights, interp, nil)
	require.NoError(t, e.GenerateDailyInsights(context.Background()))

	require.Len(t, insights.created, 1)
	got := insights.created[0]
	assert.Equal(t, insightdomain.TypeProductivity, got.Type)
	assert.False(t, got.Actionable)
	assert.Contains(t, got.Description, "82/100")
	assert.Equal(t, 82, got.Metadata["score"])
}

func TestLearnPreferencesDisablesUnhelpfulTypes(t *testing.T) {
	helpful := true
	unhelpful := false
	feedback := []*insightdomain.Insight{
		{Type: insightdomain.TypeFocusTime, FeedbackHelpful: &unhelpful},
		{Type: insightdomain.TypeFocusTime, FeedbackHelpful: &unhelpful},
		{Type: insightdomain.TypeFocusTime, FeedbackHelpful: &unhelpful},
		{Type: insightdomain.TypeFocusTime, FeedbackHelpful: &unhelpful},
		{Type: insightdomain.TypeMissedMeeting, FeedbackHelpful: &helpful},
	}

	user := userWithDefaults("user-1")
	users := &fakeUserRepo{users: []*userdomain.User{user}}
	insights := &fakeInsightRepo{feedback: map[string][]*insightdomain.Insight{"user-1": feedback}}

	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	e := NewEngine(users, insights, &fakeInterpreter{}, nil)
	e.SetClock(func() time.Time { return now })

	require.NoError(t, e.UpdateUserPreferences(context.Background()))

	require.Len(t, users.updated, 1)
	saved := users.updated[0]
	assert.False(t, saved.Preferences.NotificationSettings.FocusTime, "0/4 acceptance should disable focus_time")
	assert.True(t, saved.Preferences.NotificationSettings.MissedMeetings, "1/1 acceptance stays enabled")
	require.NotNil(t, saved.LearningData.LastUpdated)
	assert.Equal(t, now, *saved.LearningData.LastUpdated)
	assert.Equal(t, 4, saved.LearningData.InsightStats[string(insightdomain.TypeFocusTime)].Total)
}

func TestLearnPreferencesNeedsEnoughSamples(t *testing.T) {
	unhelpful := false
	feedback := []*insightdomain.Insight{
		{Type: insightdomain.TypeFocusTime, FeedbackHelpful: &unhelpful},
		{Type: insightdomain.TypeFocusTime, FeedbackHelpful: &unhelpful},
	}

	user := userWithDefaults("user-1")
	users := &fakeUserRepo{users: []*userdomain.User{user}}
	insights := &fakeInsightRepo{feedback: map[string][]*insightdomain.Insight{"user-1": feedback}}

	e := NewEngine(users, insights, &fakeInterpreter{}, nil)
	require.NoError(t, e.UpdateUserPreferences(context.Background()))

	assert.Empty(t, users.updated, "below the sample floor nothing is written")
	assert.True(t, user.Preferences.NotificationSettings.FocusTime)
}

func TestCleanupOldInsightsIsIdempotent(t *testing.T) {
	insights := &fakeInsightRepo{expired: 4, dismissed: 2}
	e := NewEngine(&fakeUserRepo{}, insights, &fakeInterpreter{}, nil)

	require.NoError(t, e.CleanupOldInsights(context.Background()))
	require.NoError(t, e.CleanupOldInsights(context.Background()))

	assert.Equal(t, 2, insights.expiredCalls)
	assert.Equal(t, 2, insights.dismissedCalls)
	// second run found nothing left to delete
	assert.Zero(t, insights.expired)
	assert.Zero(t, insights.dismissed)
}
