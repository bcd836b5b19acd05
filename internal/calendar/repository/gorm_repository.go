package repository

import (
	"errors"
	"time"

	"assistant-backend/internal/calendar/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormCalendarRepository implements CalendarRepository using GORM
type gormCalendarRepository struct {
	db *gorm.DB
}

// NewGormCalendarRepository creates a new GORM-based CalendarRepository
func NewGormCalendarRepository(db *gorm.DB) CalendarRepository {
	return &gormCalendarRepository{db: db}
}

func (r *gormCalendarRepository) Create(event *domain.CalendarEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	return r.db.Create(event).Error
}

func (r *gormCalendarRepository) FindByID(id string) (*domain.CalendarEvent, error) {
	var event domain.CalendarEvent
	err := r.db.Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *gormCalendarRepository) FindUpcoming(userID string, limit int) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	err := r.db.Where("user_id = ? AND status != ?", userID, domain.EventStatusCancelled).
		Order("start_time ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *gormCalendarRepository) FindOverlapping(userID string, start, end time.Time) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	err := r.db.Where("user_id = ? AND status != ? AND start_time < ? AND end_time > ?",
		userID, domain.EventStatusCancelled, end, start).
		Find(&events).Error
	return events, err
}

func (r *gormCalendarRepository) FindCompletedBetween(userID string, from, to time.Time) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	err := r.db.Where("user_id = ? AND status = ? AND end_time >= ? AND end_time <= ?",
		userID, domain.EventStatusCompleted, from, to).
		Find(&events).Error
	return events, err
}

func (r *gormCalendarRepository) FindScheduledBetween(userID string, from, to time.Time) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	err := r.db.Where("user_id = ? AND status = ? AND start_time >= ? AND start_time <= ?",
		userID, domain.EventStatusScheduled, from, to).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *gormCalendarRepository) Update(event *domain.CalendarEvent) error {
	event.UpdatedAt = time.Now()
	return r.db.Save(event).Error
}
