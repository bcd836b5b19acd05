package repository

import (
	"errors"
	"time"

	"assistant-backend/internal/recommendation/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const priorityOrder = "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC, created_at DESC"

// gormRecommendationRepository implements RecommendationRepository using GORM
type gormRecommendationRepository struct {
	db *gorm.DB
}

// NewGormRecommendationRepository creates a new GORM-based RecommendationRepository
func NewGormRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &gormRecommendationRepository{db: db}
}

func (r *gormRecommendationRepository) Create(rec *domain.Recommendation) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.CreatedAt = time.Now()
	if rec.Status == "" {
		rec.Status = domain.StatusPending
	}
	if rec.Priority == "" {
		rec.Priority = domain.PriorityMedium
	}
	return r.db.Create(rec).Error
}

func (r *gormRecommendationRepository) FindByID(id string) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *gormRecommendationRepository) FindPending(userID string, limit int) ([]*domain.Recommendation, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []*domain.Recommendation
	err := r.db.Where("user_id = ? AND status = ? AND (expires_at IS NULL OR expires_at > ?)",
		userID, domain.StatusPending, time.Now()).
		Order(priorityOrder).
		Limit(limit).
		Find(&recs).Error
	return recs, err
}

func (r *gormRecommendationRepository) Update(rec *domain.Recommendation) error {
	return r.db.Save(rec).Error
}

func (r *gormRecommendationRepository) DeleteExpiredForUser(userID string, now time.Time) (int64, error) {
	result := r.db.Delete(&domain.Recommendation{}, "user_id = ? AND expires_at IS NOT NULL AND expires_at < ?", userID, now)
	return result.RowsAffected, result.Error
}
