package repository

import (
	"errors"
	"time"

	"assistant-backend/internal/email/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormEmailRepository implements EmailRepository using GORM
type gormEmailRepository struct {
	db *gorm.DB
}

// NewGormEmailRepository creates a new GORM-based EmailRepository
func NewGormEmailRepository(db *gorm.DB) EmailRepository {
	return &gormEmailRepository{db: db}
}

func (r *gormEmailRepository) Create(email *domain.Email) error {
	if email.ID == "" {
		email.ID = uuid.New().String()
	}
	if email.CreatedAt.IsZero() {
		email.CreatedAt = time.Now()
	}
	if email.Status == "" {
		email.Status = domain.EmailStatusDraft
	}
	if email.Tone == "" {
		email.Tone = domain.ToneProfessional
	}
	return r.db.Create(email).Error
}

func (r *gormEmailRepository) FindByID(id string) (*domain.Email, error) {
	var email domain.Email
	err := r.db.Where("id = ?", id).First(&email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *gormEmailRepository) FindByUser(userID string, limit, offset int) ([]*domain.Email, int64, error) {
	var emails []*domain.Email
	var total int64

	query := r.db.Model(&domain.Email{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&emails).Error
	return emails, total, err
}

func (r *gormEmailRepository) ExistsToAnySince(userID string, recipients []string, since time.Time) (bool, error) {
	if len(recipients) == 0 {
		return false, nil
	}

	var count int64
	err := r.db.Model(&domain.Email{}).
		Where("user_id = ? AND recipient IN ? AND created_at >= ?", userID, recipients, since).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormEmailRepository) Update(email *domain.Email) error {
	return r.db.Save(email).Error
}
