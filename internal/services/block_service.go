package services

import (
	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/jitterapp/backend/internal/models"
	"github.com/jitterapp/backend/internal/repositories"
)

// BlockService manages one-way user blocks.
type BlockService struct {
	blocks repositories.BlockRepository
	users  repositories.UserRepository
}

func NewBlockService(blocks repositories.BlockRepository, users repositories.UserRepository) *BlockService {
	return &BlockService{blocks: blocks, users: users}
}

func (s *BlockService) Block(userID, blockedUserID uint) error {
	if userID == blockedUserID {
		return apperrors.ErrSelfReference
	}
	exists, err := s.users.Exists(blockedUserID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return s.blocks.Block(userID, blockedUserID)
}

func (s *BlockService) Unblock(userID, blockedUserID uint) error {
	return s.blocks.Unblock(userID, blockedUserID)
}

func (s *BlockService) IsBlocked(userID, blockedUserID uint) (bool, error) {
	return s.blocks.IsBlocked(userID, blockedUserID)
}

func (s *BlockService) GetBlockedUsers(userID uint, page, size int, search string) ([]models.UserBlock, int64, error) {
	return s.blocks.GetBlockedUsers(userID, page, size, search)
}
