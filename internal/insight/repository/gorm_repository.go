package repository

import (
	"errors"
	"time"

	"assistant-backend/internal/insight/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// priorityOrder sorts low/medium/high as 1/2/3 so DESC puts high first
const priorityOrder = "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC, created_at DESC"

// gormInsightRepository implements InsightRepository using GORM
type gormInsightRepository struct {
	db *gorm.DB
}

// NewGormInsightRepository creates a new GORM-based InsightRepository
func NewGormInsightRepository(db *gorm.DB) InsightRepository {
	return &gormInsightRepository{db: db}
}

func (r *gormInsightRepository) Create(insight *domain.Insight) error {
	if insight.ID == "" {
		insight.ID = uuid.New().String()
	}
	now := time.Now()
	insight.CreatedAt = now
	insight.UpdatedAt = now
	insight.ApplyDefaults(now)
	return r.db.Create(insight).Error
}

func (r *gormInsightRepository) FindByID(id string) (*domain.Insight, error) {
	var insight domain.Insight
	err := r.db.Where("id = ?", id).First(&insight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &insight, nil
}

func (r *gormInsightRepository) GetPending(userID string, limit int) ([]*domain.Insight, error) {
	if limit <= 0 {
		limit = 10
	}
	var insights []*domain.Insight
	err := r.db.Where("user_id = ? AND status = ? AND expires_at > ?",
		userID, domain.StatusPending, time.Now()).
		Order(priorityOrder).
		Limit(limit).
		Find(&insights).Error
	return insights, err
}

func (r *gormInsightRepository) GetByType(userID string, insightType domain.InsightType, limit int) ([]*domain.Insight, error) {
	if limit <= 0 {
		limit = 5
	}
	var insights []*domain.Insight
	err := r.db.Where("user_id = ? AND type = ?", userID, insightType).
		Order("created_at DESC").
		Limit(limit).
		Find(&insights).Error
	return insights, err
}

func (r *gormInsightRepository) Find(userID string, filter Filter) ([]*domain.Insight, error) {
	query := r.db.Where("user_id = ?", userID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var insights []*domain.Insight
	err := query.Order("created_at DESC").Limit(limit).Find(&insights).Error
	return insights, err
}

func (r *gormInsightRepository) FindLatestByTypeSince(userID string, insightType domain.InsightType, since time.Time) (*domain.Insight, error) {
	var insight domain.Insight
	err := r.db.Where("user_id = ? AND type = ? AND created_at >= ?", userID, insightType, since).
		Order("created_at DESC").
		First(&insight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &insight, nil
}

func (r *gormInsightRepository) FindWithFeedback(userID string, limit int) ([]*domain.Insight, error) {
	if limit <= 0 {
		limit = 50
	}
	var insights []*domain.Insight
	err := r.db.Where("user_id = ? AND feedback_helpful IS NOT NULL", userID).
		Limit(limit).
		Find(&insights).Error
	return insights, err
}

func (r *gormInsightRepository) Update(insight *domain.Insight) error {
	insight.UpdatedAt = time.Now()
	return r.db.Save(insight).Error
}

func (r *gormInsightRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Delete(&domain.Insight{}, "expires_at < ?", now)
	return result.RowsAffected, result.Error
}

func (r *gormInsightRepository) DeleteDismissedBefore(cutoff time.Time) (int64, error) {
	result := r.db.Delete(&domain.Insight{}, "status = ? AND created_at < ?", domain.StatusDismissed, cutoff)
	return result.RowsAffected, result.Error
}

func (r *gormInsightRepository) DeleteExpiredForUser(userID string, now time.Time) (int64, error) {
	result := r.db.Delete(&domain.Insight{}, "user_id = ? AND expires_at < ?", userID, now)
	return result.RowsAffected, result.Error
}
