package usecase

import (
	"errors"
	"log"
	"time"

	activitydomain "assistant-backend/internal/activity/domain"
	activityrepo "assistant-backend/internal/activity/repository"
	"assistant-backend/internal/email/domain"
	"assistant-backend/internal/email/repository"
)

var (
	ErrEmailNotFound     = errors.New("email not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("email status can only change from draft")
)

// DraftInput carries the fields for a new email record
type DraftInput struct {
	Recipient       string
	Subject         string
	Body            string
	Tone            domain.Tone
	AIGenerated     bool
	OriginalCommand string
}

// EmailUsecase manages stored email records and their one-directional
// draft -> sent|failed transitions
type EmailUsecase interface {
	CreateDraft(userID string, in DraftInput) (*domain.Email, error)
	GetByUser(userID string, limit, offset int) ([]*domain.Email, int64, error)
	MarkSent(userID, emailID string) (*domain.Email, error)
	MarkFailed(userID, emailID, reason string) (*domain.Email, error)
}

type emailUsecase struct {
	emailRepo    repository.EmailRepository
	activityRepo activityrepo.ActivityRepository
}

// NewEmailUsecase creates a new EmailUsecase
func NewEmailUsecase(emailRepo repository.EmailRepository, activityRepo activityrepo.ActivityRepository) EmailUsecase {
	return &emailUsecase{
		emailRepo:    emailRepo,
		activityRepo: activityRepo,
	}
}

func (u *emailUsecase) CreateDraft(userID string, in DraftInput) (*domain.Email, error) {
	email := &domain.Email{
		UserID:          userID,
		Recipient:       in.Recipient,
		Subject:         in.Subject,
		Body:            in.Body,
		Status:          domain.EmailStatusDraft,
		Tone:            in.Tone,
		AIGenerated:     in.AIGenerated,
		OriginalCommand: in.OriginalCommand,
	}
	if err := u.emailRepo.Create(email); err != nil {
		return nil, err
	}

	u.logActivity(userID, activitydomain.ActionEmailDrafted, "Drafted email: "+in.Subject, email.ID)
	return email, nil
}

func (u *emailUsecase) GetByUser(userID string, limit, offset int) ([]*domain.Email, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	return u.emailRepo.FindByUser(userID, limit, offset)
}

func (u *emailUsecase) MarkSent(userID, emailID string) (*domain.Email, error) {
	email, err := u.ownedDraft(userID, emailID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	email.Status = domain.EmailStatusSent
	email.SentAt = &now
	if err := u.emailRepo.Update(email); err != nil {
		return nil, err
	}

	u.logActivity(userID, activitydomain.ActionEmailSent, "Sent email: "+email.Subject, email.ID)
	return email, nil
}

func (u *emailUsecase) MarkFailed(userID, emailID, reason string) (*domain.Email, error) {
	email, err := u.ownedDraft(userID, emailID)
	if err != nil {
		return nil, err
	}

	email.Status = domain.EmailStatusFailed
	email.Error = reason
	if err := u.emailRepo.Update(email); err != nil {
		return nil, err
	}
	return email, nil
}

// ownedDraft loads the email and enforces ownership plus the draft-only
// transition rule.
func (u *emailUsecase) ownedDraft(userID, emailID string) (*domain.Email, error) {
	email, err := u.emailRepo.FindByID(emailID)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, ErrEmailNotFound
	}
	if email.UserID != userID {
		return nil, ErrUnauthorized
	}
	if email.Status != domain.EmailStatusDraft {
		return nil, ErrInvalidTransition
	}
	return email, nil
}

func (u *emailUsecase) logActivity(userID string, action activitydomain.Action, description, relatedID string) {
	entry := &activitydomain.ActivityLog{
		UserID:          userID,
		Action:          action,
		Description:     description,
		Status:          activitydomain.ActivityStatusSuccess,
		RelatedEntity:   "Email",
		RelatedEntityID: relatedID,
	}
	if err := u.activityRepo.Create(entry); err != nil {
		log.Printf("[Email] Error writing activity log: %v", err)
	}
}
