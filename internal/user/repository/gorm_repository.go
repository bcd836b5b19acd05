package repository

import (
	"errors"
	"time"

	"assistant-backend/internal/user/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements UserRepository using GORM
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByExternalID(externalID string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("external_id = ?", externalID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindOrCreate(externalID, email string) (*domain.User, error) {
	existing, err := r.FindByExternalID(externalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user := &domain.User{
		ExternalID:  externalID,
		Email:       email,
		Preferences: domain.DefaultPreferences(),
	}
	if err := r.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindAll() ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.Find(&users).Error
	return users, err
}

func (r *userRepository) Update(user *domain.User) error {
	user.UpdatedAt = time.Now()
	return r.db.Save(user).Error
}

// deviceTokenRepository implements DeviceTokenRepository using GORM
type deviceTokenRepository struct {
	db *gorm.DB
}

// NewDeviceTokenRepository creates a new instance of deviceTokenRepository
func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

// SaveToken saves or updates a device token for a user (atomic upsert)
func (r *deviceTokenRepository) SaveToken(userID, token, deviceInfo string) error {
	deviceToken := &domain.DeviceToken{
		ID:         uuid.New().String(),
		UserID:     userID,
		Token:      token,
		DeviceInfo: deviceInfo,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	// Atomic upsert: INSERT ... ON CONFLICT (token) DO UPDATE
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "device_info", "updated_at"}),
	}).Create(deviceToken).Error
}

func (r *deviceTokenRepository) GetTokensByUserID(userID string) ([]domain.DeviceToken, error) {
	var tokens []domain.DeviceToken
	err := r.db.Where("user_id = ?", userID).Find(&tokens).Error
	return tokens, err
}

func (r *deviceTokenRepository) DeleteToken(token string) error {
	return r.db.Delete(&domain.DeviceToken{}, "token = ?", token).Error
}

func (r *deviceTokenRepository) DeleteTokensByUserID(userID string) error {
	return r.db.Delete(&domain.DeviceToken{}, "user_id = ?", userID).Error
}
