package models

import "gorm.io/gorm"

// Friend is one direction of a confirmed friendship. An accepted friendship is
// stored as two directed rows written in the same transaction, so lookups are
// symmetric by construction. The ordered pair is unique.
type Friend struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_friend_pair;index"`
	FriendID uint `json:"friend_id" gorm:"uniqueIndex:idx_friend_pair;index"`

	FriendUser *User `json:"friend,omitempty" gorm:"foreignKey:FriendID"`
}

// FriendRequest is a pending, directed proposal of friendship. At most one row
// per ordered pair; the uniqueness constraint is what makes concurrent sends
// collapse to a single persisted request.
type FriendRequest struct {
	gorm.Model
	RequesterID uint `json:"requester_id" gorm:"uniqueIndex:idx_request_pair;index"`
	RequesteeID uint `json:"requestee_id" gorm:"uniqueIndex:idx_request_pair;index"`

	Requester *User `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	Requestee *User `json:"requestee,omitempty" gorm:"foreignKey:RequesteeID"`
}

// RelationshipStatus describes the pair {viewer, subject} at the moment it was
// computed. Always derived from the tables, never cached on a user row.
type RelationshipStatus struct {
	IsFriend        bool `json:"is_friend"`
	RequestSent     bool `json:"is_friend_request_sent"`
	RequestReceived bool `json:"is_friend_request_received"`
}
