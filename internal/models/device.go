package models

import "gorm.io/gorm"

// DeviceToken is a push-registration handle for one of a user's devices.
type DeviceToken struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index"`
	Token  string `json:"token" gorm:"uniqueIndex;size:255"`
}

type RegisterDeviceRequest struct {
	Token string `json:"token" validate:"required"`
}
