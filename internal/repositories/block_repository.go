package repositories

import (
	"errors"
	"strings"

	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/jitterapp/backend/internal/models"
	"gorm.io/gorm"
)

// BlockRepository defines the interface for user-block operations. A block is
// directed; visibility checks look one way, friend-request checks look both.
type BlockRepository interface {
	Block(userID, blockedUserID uint) error
	Unblock(userID, blockedUserID uint) error
	IsBlocked(userID, blockedUserID uint) (bool, error)
	IsBlockedEither(a, b uint) (bool, error)
	GetBlockedUsers(userID uint, page, size int, search string) ([]models.UserBlock, int64, error)
}

type PostgresBlockRepository struct {
	db *gorm.DB
}

func NewPostgresBlockRepository(db *gorm.DB) *PostgresBlockRepository {
	return &PostgresBlockRepository{db: db}
}

func (r *PostgresBlockRepository) Block(userID, blockedUserID uint) error {
	block := &models.UserBlock{UserID: userID, BlockedUserID: blockedUserID}
	if err := r.db.Create(block).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresBlockRepository) Unblock(userID, blockedUserID uint) error {
	res := r.db.Unscoped().Where("user_id = ? AND blocked_user_id = ?", userID, blockedUserID).
		Delete(&models.UserBlock{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// IsBlocked reports whether userID blocks blockedUserID (one direction).
func (r *PostgresBlockRepository) IsBlocked(userID, blockedUserID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserBlock{}).
		Where("user_id = ? AND blocked_user_id = ?", userID, blockedUserID).
		Count(&count).Error
	return count > 0, err
}

// IsBlockedEither reports whether a block exists in either direction.
func (r *PostgresBlockRepository) IsBlockedEither(a, b uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserBlock{}).
		Where("(user_id = ? AND blocked_user_id = ?) OR (user_id = ? AND blocked_user_id = ?)",
			a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresBlockRepository) GetBlockedUsers(userID uint, page, size int, search string) ([]models.UserBlock, int64, error) {
	var blocks []models.UserBlock
	var total int64

	q := r.db.Model(&models.UserBlock{}).Where("user_blocks.user_id = ?", userID)
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Joins("JOIN users ON users.id = user_blocks.blocked_user_id").
			Where("LOWER(users.username) LIKE ? OR LOWER(users.fullname) LIKE ?", pattern, pattern)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("BlockedUser").
		Order("user_blocks.created_at DESC").
		Offset(page * size).Limit(size).
		Find(&blocks).Error
	return blocks, total, err
}
