package repositories

import (
	"errors"

	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/jitterapp/backend/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository is the durable ledger of friendship edges and pending
// requests. Every mutating operation is a single transaction so that two
// callers racing on the same pair see exactly one winner; the loser observes
// apperrors.ErrNotFound or apperrors.ErrDuplicateRequest, never a silent no-op.
type FriendshipRepository interface {
	CreateRequest(requesterID, requesteeID uint) (*models.FriendRequest, error)
	AcceptRequest(requesterID, accepterID uint) error
	DeleteRequest(requesterID, requesteeID uint) error
	DeleteFriend(userID, friendID uint) error
	IsFriend(userID, friendID uint) (bool, error)
	HasRequest(requesterID, requesteeID uint) (bool, error)
	GetFriends(userID uint, page, size int, search string) ([]models.Friend, int64, error)
	GetRequestsSent(userID uint, page, size int) ([]models.FriendRequest, int64, error)
	GetRequestsReceived(userID uint, page, size int) ([]models.FriendRequest, int64, error)
	RelationshipStatus(viewerID, subjectID uint) (*models.RelationshipStatus, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// CreateRequest persists one pending request for the ordered pair. The checks
// run inside the same transaction as the insert, and the unique index on
// (requester_id, requestee_id) backstops concurrent senders: the second of two
// racing calls gets apperrors.ErrDuplicateRequest from the constraint.
func (r *PostgresFriendshipRepository) CreateRequest(requesterID, requesteeID uint) (*models.FriendRequest, error) {
	req := &models.FriendRequest{RequesterID: requesterID, RequesteeID: requesteeID}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Friend{}).
			Where("user_id = ? AND friend_id = ?", requesterID, requesteeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrAlreadyFriends
		}

		if err := tx.Model(&models.FriendRequest{}).
			Where("(requester_id = ? AND requestee_id = ?) OR (requester_id = ? AND requestee_id = ?)",
				requesterID, requesteeID, requesteeID, requesterID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrDuplicateRequest
		}

		return tx.Create(req).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateRequest
		}
		return nil, err
	}
	return req, nil
}

// AcceptRequest turns the pending request (requesterID -> accepterID) into a
// confirmed friendship: within one transaction it deletes the request, deletes
// any stray mirror request, and inserts both directed edge rows. A concurrent
// reject or accept that already removed the request makes this return
// apperrors.ErrNotFound.
func (r *PostgresFriendshipRepository) AcceptRequest(requesterID, accepterID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Hard deletes throughout: the unique pair indexes cover soft-deleted
		// rows too, and a resolved request must not block a future one.
		res := tx.Unscoped().Where("requester_id = ? AND requestee_id = ?", requesterID, accepterID).
			Delete(&models.FriendRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}

		// mirror request, if the requestee had also sent one
		if err := tx.Unscoped().Where("requester_id = ? AND requestee_id = ?", accepterID, requesterID).
			Delete(&models.FriendRequest{}).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.Friend{UserID: requesterID, FriendID: accepterID}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Friend{UserID: accepterID, FriendID: requesterID}).Error
	})
}

// DeleteRequest removes the pending request for the ordered pair; used by both
// reject (requestee acting) and cancel (requester acting).
func (r *PostgresFriendshipRepository) DeleteRequest(requesterID, requesteeID uint) error {
	res := r.db.Unscoped().Where("requester_id = ? AND requestee_id = ?", requesterID, requesteeID).
		Delete(&models.FriendRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFriend removes both directed rows of the edge in one transaction.
func (r *PostgresFriendshipRepository) DeleteFriend(userID, friendID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().Where("user_id = ? AND friend_id = ?", userID, friendID).
			Delete(&models.Friend{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return tx.Unscoped().Where("user_id = ? AND friend_id = ?", friendID, userID).
			Delete(&models.Friend{}).Error
	})
}

func (r *PostgresFriendshipRepository) IsFriend(userID, friendID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Friend{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresFriendshipRepository) HasRequest(requesterID, requesteeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.FriendRequest{}).
		Where("requester_id = ? AND requestee_id = ?", requesterID, requesteeID).
		Count(&count).Error
	return count > 0, err
}

// GetFriends lists a user's friends, newest friendship first. An optional
// search narrows by the friend's username, fullname or email.
func (r *PostgresFriendshipRepository) GetFriends(userID uint, page, size int, search string) ([]models.Friend, int64, error) {
	var friends []models.Friend
	var total int64

	q := r.db.Model(&models.Friend{}).Where("friends.user_id = ?", userID)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Joins("JOIN users ON users.id = friends.friend_id").
			Where("users.username LIKE ? OR users.fullname LIKE ? OR users.email LIKE ?",
				pattern, pattern, pattern)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("FriendUser").
		Order("friends.created_at DESC").
		Offset(page * size).Limit(size).
		Find(&friends).Error
	return friends, total, err
}

func (r *PostgresFriendshipRepository) GetRequestsSent(userID uint, page, size int) ([]models.FriendRequest, int64, error) {
	var requests []models.FriendRequest
	var total int64

	q := r.db.Model(&models.FriendRequest{}).Where("requester_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Requestee").
		Order("created_at DESC").
		Offset(page * size).Limit(size).
		Find(&requests).Error
	return requests, total, err
}

func (r *PostgresFriendshipRepository) GetRequestsReceived(userID uint, page, size int) ([]models.FriendRequest, int64, error) {
	var requests []models.FriendRequest
	var total int64

	q := r.db.Model(&models.FriendRequest{}).Where("requestee_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Requester").
		Order("created_at DESC").
		Offset(page * size).Limit(size).
		Find(&requests).Error
	return requests, total, err
}

// RelationshipStatus computes the pair state fresh from the tables.
func (r *PostgresFriendshipRepository) RelationshipStatus(viewerID, subjectID uint) (*models.RelationshipStatus, error) {
	status := &models.RelationshipStatus{}

	isFriend, err := r.IsFriend(viewerID, subjectID)
	if err != nil {
		return nil, err
	}
	status.IsFriend = isFriend

	sent, err := r.HasRequest(viewerID, subjectID)
	if err != nil {
		return nil, err
	}
	status.RequestSent = sent

	received, err := r.HasRequest(subjectID, viewerID)
	if err != nil {
		return nil, err
	}
	status.RequestReceived = received

	return status, nil
}
