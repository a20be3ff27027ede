package models

import "gorm.io/gorm"

// Activity kinds, kept numerically compatible with the mobile clients.
const (
	ActivityJitMention      = 1
	ActivityStoryMention    = 2
	ActivityRequestReceived = 3
	ActivityRequestAccepted = 4
	ActivityRequestRejected = 5
	ActivityUnfriended      = 6
)

// Activity is one entry of a user's notification feed.
type Activity struct {
	gorm.Model
	Type        int    `json:"type" gorm:"index"`
	UserID      uint   `json:"user_id" gorm:"index"`
	FromUserID  uint   `json:"from_user_id" gorm:"index"`
	Description string `json:"description" gorm:"type:text"`
	Message     string `json:"message" gorm:"type:text"`
	Other       string `json:"other" gorm:"type:text"`

	FromUser *User `json:"from_user,omitempty" gorm:"foreignKey:FromUserID"`
}
