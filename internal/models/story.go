package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story is a 24h-expiring post stored in MongoDB.
type Story struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	Content   string             `json:"content" bson:"content"`
	ImageURL  string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	TargetIDs []uint             `json:"-" bson:"target_ids,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at"`
}

// StorySeen records that a user viewed a story (PostgreSQL).
type StorySeen struct {
	StoryID string    `json:"story_id" gorm:"primaryKey;size:24"`
	UserID  uint      `json:"user_id" gorm:"primaryKey"`
	SeenAt  time.Time `json:"seen_at"`
}

// CreateStoryRequest defines the request body for posting a story
type CreateStoryRequest struct {
	Content   string `json:"content" validate:"required,min=1,max=322"`
	ImageURL  string `json:"image_url,omitempty" validate:"omitempty,url"`
	FriendIDs []uint `json:"friendIds,omitempty" validate:"omitempty,min=1"`
}
