package models

import "gorm.io/gorm"

// Jit visibility modes. There is no in-between: a jit is either public or
// addressed to a fixed set of recipients chosen at creation.
const (
	VisibilityPublic    = "public"
	VisibilityAnonymous = "anonymous"
)

// Jit is a short post. Immutable once created; replies, likes and favorites
// are separate child rows referencing it by id.
type Jit struct {
	gorm.Model
	UserID     uint   `json:"user_id" gorm:"index"`
	Content    string `json:"content" gorm:"type:varchar(322)"`
	Visibility string `json:"visibility" gorm:"type:varchar(20);default:'public';index"`

	Creator *User       `json:"creator,omitempty" gorm:"foreignKey:UserID"`
	Targets []JitTarget `json:"-"`
}

// JitTarget lists one recipient of an anonymous jit. Rows are written in the
// same transaction as the jit and never change afterwards.
type JitTarget struct {
	gorm.Model
	JitID  uint `json:"jit_id" gorm:"uniqueIndex:idx_jit_target;index"`
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_jit_target;index"`
}

type JitLike struct {
	gorm.Model
	JitID  uint `json:"jit_id" gorm:"uniqueIndex:idx_jit_like;index"`
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_jit_like"`
}

type JitFavorite struct {
	gorm.Model
	JitID  uint `json:"jit_id" gorm:"uniqueIndex:idx_jit_favorite;index"`
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_jit_favorite"`
}

type JitReply struct {
	gorm.Model
	JitID   uint   `json:"jit_id" gorm:"index"`
	UserID  uint   `json:"user_id" gorm:"index"`
	Content string `json:"content" gorm:"type:varchar(322)"`

	Replier *User `json:"replier,omitempty" gorm:"foreignKey:UserID"`
}

// CreateJitRequest defines the request body for posting a jit. A non-empty
// FriendIDs list makes the jit anonymous to everyone but those friends.
type CreateJitRequest struct {
	Content   string `json:"content" validate:"required,min=1,max=322"`
	FriendIDs []uint `json:"friendIds,omitempty" validate:"omitempty,min=1"`
}

type CreateJitReplyRequest struct {
	Content string `json:"content" validate:"required,min=1,max=322"`
}

// JitView is a jit as seen by one viewer. The counts and booleans are derived
// from the child tables on every read so they can not go stale.
type JitView struct {
	Jit
	LikeCount     int64 `json:"likeCount"`
	FavoriteCount int64 `json:"favoriteCount"`
	ReplyCount    int64 `json:"replyCount"`
	Liked         bool  `json:"liked"`
	Favorited     bool  `json:"favorited"`
	Replied       bool  `json:"replied"`
}

// JitFilter selects which jits a listing returns, before visibility is applied.
type JitFilter struct {
	Visibility string // VisibilityPublic, VisibilityAnonymous or "" for all
	AuthorID   uint   // restrict to one author when non-zero
	Search     string // match against author username/fullname/email
}
