package repository

import (
	"time"

	"assistant-backend/internal/activity/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormActivityRepository implements ActivityRepository using GORM
type gormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GORM-based ActivityRepository
func NewGormActivityRepository(db *gorm.DB) ActivityRepository {
	return &gormActivityRepository{db: db}
}

func (r *gormActivityRepository) Create(entry *domain.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Status == "" {
		entry.Status = domain.ActivityStatusSuccess
	}
	return r.db.Create(entry).Error
}

func (r *gormActivityRepository) FindByUser(userID string, limit, offset int) ([]*domain.ActivityLog, int64, error) {
	var entries []*domain.ActivityLog
	var total int64

	query := r.db.Model(&domain.ActivityLog{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

func (r *gormActivityRepository) CountByActionSince(userID string, action domain.Action, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.ActivityLog{}).
		Where("user_id = ? AND action = ? AND timestamp >= ?", userID, action, since).
		Count(&count).Error
	return count, err
}
