package usecase

import (
	"errors"
	"log"
	"time"

	activitydomain "assistant-backend/internal/activity/domain"
	activityrepo "assistant-backend/internal/activity/repository"
	"assistant-backend/internal/recommendation/domain"
	"assistant-backend/internal/recommendation/repository"
)

var (
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrTerminalStatus         = errors.New("recommendation status is terminal")
	ErrInvalidStatus          = errors.New("invalid recommendation status")
)

// RecommendationUsecase exposes reads and status transitions. A
// recommendation's status may change only while it is pending; accepted,
// dismissed and executed are terminal.
type RecommendationUsecase interface {
	GetPending(userID string, limit int) ([]*domain.Recommendation, error)
	UpdateStatus(userID, recID string, status domain.RecommendationStatus) (*domain.Recommendation, error)
}

type recommendationUsecase struct {
	recRepo      repository.RecommendationRepository
	activityRepo activityrepo.ActivityRepository
}

// NewRecommendationUsecase creates a new RecommendationUsecase
func NewRecommendationUsecase(recRepo repository.RecommendationRepository, activityRepo activityrepo.ActivityRepository) RecommendationUsecase {
	return &recommendationUsecase{
		recRepo:      recRepo,
		activityRepo: activityRepo,
	}
}

func (u *recommendationUsecase) GetPending(userID string, limit int) ([]*domain.Recommendation, error) {
	recs, err := u.recRepo.FindPending(userID, limit)
	if err != nil {
		return nil, err
	}

	// The store filters expiry too, but the eager sweep only runs on the
	// engine tick; drop anything that lapsed in between.
	now := time.Now()
	active := recs[:0]
	for _, rec := range recs {
		if !rec.Expired(now) {
			active = append(active, rec)
		}
	}
	return active, nil
}

func (u *recommendationUsecase) UpdateStatus(userID, recID string, status domain.RecommendationStatus) (*domain.Recommendation, error) {
	switch status {
	case domain.StatusAccepted, domain.StatusDismissed, domain.StatusExecuted:
	default:
		return nil, ErrInvalidStatus
	}

	rec, err := u.recRepo.FindByID(recID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecommendationNotFound
	}
	if rec.UserID != userID {
		return nil, ErrUnauthorized
	}
	if rec.Status != domain.StatusPending {
		return nil, ErrTerminalStatus
	}

	rec.Status = status
	if status == domain.StatusExecuted {
		now := time.Now()
		rec.ExecutedAt = &now

		entry := &activitydomain.ActivityLog{
			UserID:          userID,
			Action:          activitydomain.ActionRecommendationExecuted,
			Description:     "Executed recommendation: " + rec.Title,
			Status:          activitydomain.ActivityStatusSuccess,
			RelatedEntity:   "Recommendation",
			RelatedEntityID: rec.ID,
		}
		if err := u.activityRepo.Create(entry); err != nil {
			log.Printf("[Recommendations] Error writing activity log: %v", err)
		}
	}

	if err := u.recRepo.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}
