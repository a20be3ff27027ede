package models

import "gorm.io/gorm"

// UserBlock is a one-way block: it hides the blocker's content from the
// blocked user and forbids friend requests in both directions while active.
type UserBlock struct {
	gorm.Model
	UserID        uint `json:"user_id" gorm:"uniqueIndex:idx_block_pair;index"`
	BlockedUserID uint `json:"blocked_user_id" gorm:"uniqueIndex:idx_block_pair;index"`

	BlockedUser *User `json:"blocked_user,omitempty" gorm:"foreignKey:BlockedUserID"`
}
