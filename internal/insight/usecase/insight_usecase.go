package usecase

import (
	"errors"
	"log"
	"time"

	"assistant-backend/internal/insight/domain"
	"assistant-backend/internal/insight/repository"
	userdomain "assistant-backend/internal/user/domain"
	userrepo "assistant-backend/internal/user/repository"
)

var (
	ErrInsightNotFound = errors.New("insight not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Feedback is what the user tells us about an insight
type Feedback struct {
	Helpful bool
	Rating  *int // 1-5
	Comment string
}

// DailyReport is the productivity summary surfaced on the dashboard
type DailyReport struct {
	Insight *domain.Insight        `json:"insight"`
	Score   int                    `json:"score"`
	Summary string                 `json:"summary"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// InsightUsecase exposes the insight read helpers and status transitions
type InsightUsecase interface {
	GetPending(userID string, limit int) ([]*domain.Insight, error)
	GetAll(userID string, filter repository.Filter) ([]*domain.Insight, error)

	// GetDailyReport returns today's productivity insight, or nil when none
	// has been generated yet
	GetDailyReport(userID string) (*DailyReport, error)

	MarkViewed(userID, insightID string) (*domain.Insight, error)

	// SubmitFeedback records the user's reaction: helpful accepts the insight,
	// unhelpful dismisses it. The interaction is appended to the user's
	// learning data for the preference learning job.
	SubmitFeedback(userID, insightID string, fb Feedback) (*domain.Insight, error)
}

type insightUsecase struct {
	insightRepo repository.InsightRepository
	userRepo    userrepo.UserRepository
}

// NewInsightUsecase creates a new InsightUsecase
func NewInsightUsecase(insightRepo repository.InsightRepository, userRepo userrepo.UserRepository) InsightUsecase {
	return &insightUsecase{
		insightRepo: insightRepo,
		userRepo:    userRepo,
	}
}

func (u *insightUsecase) GetPending(userID string, limit int) ([]*domain.Insight, error) {
	return u.insightRepo.GetPending(userID, limit)
}

func (u *insightUsecase) GetAll(userID string, filter repository.Filter) ([]*domain.Insight, error) {
	return u.insightRepo.Find(userID, filter)
}

func (u *insightUsecase) GetDailyReport(userID string) (*DailyReport, error) {
	// Midnight in server-local time, matching the schedule the daily job
	// runs on.
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	insight, err := u.insightRepo.FindLatestByTypeSince(userID, domain.TypeProductivity, midnight)
	if err != nil {
		return nil, err
	}
	if insight == nil {
		return nil, nil
	}

	report := &DailyReport{
		Insight: insight,
		Summary: insight.Description,
		Details: insight.Metadata,
	}
	if score, ok := insight.Metadata["score"].(float64); ok {
		report.Score = int(score)
	}
	return report, nil
}

func (u *insightUsecase) MarkViewed(userID, insightID string) (*domain.Insight, error) {
	insight, err := u.ownedInsight(userID, insightID)
	if err != nil {
		return nil, err
	}

	insight.Status = domain.StatusViewed
	if err := u.insightRepo.Update(insight); err != nil {
		return nil, err
	}
	return insight, nil
}

func (u *insightUsecase) SubmitFeedback(userID, insightID string, fb Feedback) (*domain.Insight, error) {
	if fb.Rating != nil && (*fb.Rating < 1 || *fb.Rating > 5) {
		return nil, ErrInvalidRating
	}

	insight, err := u.ownedInsight(userID, insightID)
	if err != nil {
		return nil, err
	}

	helpful := fb.Helpful
	insight.FeedbackHelpful = &helpful
	insight.FeedbackRating = fb.Rating
	insight.FeedbackComment = fb.Comment
	if fb.Helpful {
		insight.Status = domain.StatusAccepted
	} else {
		insight.Status = domain.StatusDismissed
	}

	if err := u.insightRepo.Update(insight); err != nil {
		return nil, err
	}

	u.recordInteraction(userID, insight)
	return insight, nil
}

// recordInteraction appends the reaction to the user's learning data. A
// failure here only loses one learning sample, so it is logged and swallowed.
func (u *insightUsecase) recordInteraction(userID string, insight *domain.Insight) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil || user == nil {
		log.Printf("[Insight] Could not load user %s for interaction history: %v", userID, err)
		return
	}

	action := "dismissed"
	if insight.Status == domain.StatusAccepted {
		action = "accepted"
	}
	user.LearningData.InteractionHistory = append(user.LearningData.InteractionHistory, userdomain.Interaction{
		InsightType: string(insight.Type),
		Action:      action,
		Timestamp:   time.Now(),
	})

	if err := u.userRepo.Update(user); err != nil {
		log.Printf("[Insight] Error saving interaction history for user %s: %v", userID, err)
	}
}

func (u *insightUsecase) ownedInsight(userID, insightID string) (*domain.Insight, error) {
	insight, err := u.insightRepo.FindByID(insightID)
	if err != nil {
		return nil, err
	}
	if insight == nil {
		return nil, ErrInsightNotFound
	}
	if insight.UserID != userID {
		return nil, ErrUnauthorized
	}
	return insight, nil
}
