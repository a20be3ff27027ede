package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model      `json:"-"`
	ID              uint   `json:"id" gorm:"primaryKey"`
	Fullname        string `json:"fullname"`
	Username        string `json:"username" gorm:"uniqueIndex"`
	Email           string `json:"email" gorm:"uniqueIndex"`
	Phonenumber     string `json:"phonenumber,omitempty"`
	Dob             string `json:"dob,omitempty"`
	Image           string `json:"image,omitempty"`
	Gender          int    `json:"gender" gorm:"default:3"`
	Password        string `json:"-"` // bcrypt hash, never serialized
	Inactive        bool   `json:"-" gorm:"default:false"`
	Public          bool   `json:"public" gorm:"default:true"`
	BlockAnonymous  bool   `json:"block_anonymous" gorm:"default:false"`
	ActivationToken string `json:"-"`
}

// CreateUserRequest defines the request body for local registration
type CreateUserRequest struct {
	Fullname string `json:"fullname" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Fullname string `json:"fullname,omitempty" validate:"omitempty,min=2,max=50"`
	Dob      string `json:"dob,omitempty"`
	Image    string `json:"image,omitempty"`
	Gender   int    `json:"gender,omitempty" validate:"omitempty,min=1,max=3"`
}

// UpdateAnonymousPrefRequest toggles the per-user opt-out of anonymous jits
type UpdateAnonymousPrefRequest struct {
	BlockAnonymous *bool `json:"block_anonymous" validate:"required"`
}

// UserView is a user as seen by another user; the relationship flags are
// computed fresh per request, never stored on the row.
type UserView struct {
	User
	IsFriend                bool `json:"is_friend"`
	IsFriendRequestSent     bool `json:"is_friend_request_sent"`
	IsFriendRequestReceived bool `json:"is_friend_request_received"`
	IsBlocked               bool `json:"is_blocked"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
