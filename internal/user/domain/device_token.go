package domain

import "time"

// DeviceToken is an FCM registration token for one of the user's devices.
type DeviceToken struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index;not null"`
	Token      string    `json:"token" gorm:"uniqueIndex;not null"`
	DeviceInfo string    `json:"device_info,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
