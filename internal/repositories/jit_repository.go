package repositories

import (
	"errors"
	"strings"

	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/jitterapp/backend/internal/models"
	"gorm.io/gorm"
)

// JitStats are the per-viewer derived fields of a jit, recomputed from the
// child tables on every read.
type JitStats struct {
	LikeCount     int64
	FavoriteCount int64
	ReplyCount    int64
	Liked         bool
	Favorited     bool
	Replied       bool
}

// JitRepository defines the interface for jit data operations.
type JitRepository interface {
	CreateJit(jit *models.Jit, targetIDs []uint) error
	GetJitByID(id uint) (*models.Jit, error)
	ListVisible(viewerID uint, filter models.JitFilter, page, size int) ([]models.Jit, int64, error)
	ListLiked(viewerID uint, page, size int) ([]models.Jit, int64, error)
	ListFavorited(viewerID uint, page, size int) ([]models.Jit, int64, error)
	Stats(jitID, viewerID uint) (*JitStats, error)
	CreateLike(userID, jitID uint) error
	DeleteLike(userID, jitID uint) error
	CreateFavorite(userID, jitID uint) error
	DeleteFavorite(userID, jitID uint) error
	CreateReply(reply *models.JitReply) error
	ListReplies(jitID uint, page, size int) ([]models.JitReply, int64, error)
}

// PostgresJitRepository implements JitRepository for PostgreSQL
type PostgresJitRepository struct {
	db *gorm.DB
}

// NewPostgresJitRepository creates a new PostgresJitRepository
func NewPostgresJitRepository(db *gorm.DB) *PostgresJitRepository {
	return &PostgresJitRepository{db: db}
}

// CreateJit inserts the jit and its target rows in one transaction, so a
// failed target insert never leaves a partially-addressed jit behind.
func (r *PostgresJitRepository) CreateJit(jit *models.Jit, targetIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(jit).Error; err != nil {
			return err
		}
		for _, targetID := range targetIDs {
			target := &models.JitTarget{JitID: jit.ID, UserID: targetID}
			if err := tx.Create(target).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresJitRepository) GetJitByID(id uint) (*models.Jit, error) {
	var jit models.Jit
	err := r.db.Preload("Creator").Preload("Targets").First(&jit, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &jit, nil
}

// visibleScope narrows a jit query to what viewerID may see: own jits, public
// jits from authors not blocking the viewer, and anonymous jits addressed to
// the viewer. The block veto is part of the query, not a post-filter, so
// pagination counts stay truthful.
func (r *PostgresJitRepository) visibleScope(viewerID uint) *gorm.DB {
	blockers := r.db.Model(&models.UserBlock{}).
		Select("user_id").
		Where("blocked_user_id = ?", viewerID)
	targeted := r.db.Model(&models.JitTarget{}).
		Select("jit_id").
		Where("user_id = ?", viewerID)

	return r.db.Model(&models.Jit{}).Where(
		r.db.Where("jits.user_id = ?", viewerID).
			Or(r.db.Where("jits.visibility = ?", models.VisibilityPublic).
				Where("jits.user_id NOT IN (?)", blockers)).
			Or(r.db.Where("jits.visibility = ?", models.VisibilityAnonymous).
				Where("jits.id IN (?)", targeted).
				Where("jits.user_id NOT IN (?)", blockers)),
	)
}

func (r *PostgresJitRepository) ListVisible(viewerID uint, filter models.JitFilter, page, size int) ([]models.Jit, int64, error) {
	q := r.visibleScope(viewerID)

	if filter.Visibility != "" {
		q = q.Where("jits.visibility = ?", filter.Visibility)
	}
	if filter.AuthorID != 0 {
		q = q.Where("jits.user_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Joins("JOIN users ON users.id = jits.user_id").
			Where("LOWER(users.username) LIKE ? OR LOWER(users.fullname) LIKE ? OR LOWER(users.email) LIKE ?",
				pattern, pattern, pattern)
	}

	return r.pageJits(q, page, size)
}

func (r *PostgresJitRepository) ListLiked(viewerID uint, page, size int) ([]models.Jit, int64, error) {
	q := r.visibleScope(viewerID).
		Joins("JOIN jit_likes ON jit_likes.jit_id = jits.id").
		Where("jit_likes.user_id = ?", viewerID)
	return r.pageJits(q, page, size)
}

func (r *PostgresJitRepository) ListFavorited(viewerID uint, page, size int) ([]models.Jit, int64, error) {
	q := r.visibleScope(viewerID).
		Joins("JOIN jit_favorites ON jit_favorites.jit_id = jits.id").
		Where("jit_favorites.user_id = ?", viewerID)
	return r.pageJits(q, page, size)
}

func (r *PostgresJitRepository) pageJits(q *gorm.DB, page, size int) ([]models.Jit, int64, error) {
	var jits []models.Jit
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Creator").
		Order("jits.created_at DESC").
		Offset(page * size).Limit(size).
		Find(&jits).Error
	return jits, total, err
}

// Stats recomputes the derived counts and viewer booleans for one jit.
func (r *PostgresJitRepository) Stats(jitID, viewerID uint) (*JitStats, error) {
	stats := &JitStats{}

	if err := r.db.Model(&models.JitLike{}).Where("jit_id = ?", jitID).Count(&stats.LikeCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.JitFavorite{}).Where("jit_id = ?", jitID).Count(&stats.FavoriteCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.JitReply{}).Where("jit_id = ?", jitID).Count(&stats.ReplyCount).Error; err != nil {
		return nil, err
	}

	var mine int64
	if err := r.db.Model(&models.JitLike{}).
		Where("jit_id = ? AND user_id = ?", jitID, viewerID).Count(&mine).Error; err != nil {
		return nil, err
	}
	stats.Liked = mine > 0

	if err := r.db.Model(&models.JitFavorite{}).
		Where("jit_id = ? AND user_id = ?", jitID, viewerID).Count(&mine).Error; err != nil {
		return nil, err
	}
	stats.Favorited = mine > 0

	if err := r.db.Model(&models.JitReply{}).
		Where("jit_id = ? AND user_id = ?", jitID, viewerID).Count(&mine).Error; err != nil {
		return nil, err
	}
	stats.Replied = mine > 0
	return stats, nil
}

func (r *PostgresJitRepository) CreateLike(userID, jitID uint) error {
	if err := r.db.Create(&models.JitLike{UserID: userID, JitID: jitID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresJitRepository) DeleteLike(userID, jitID uint) error {
	res := r.db.Unscoped().Where("user_id = ? AND jit_id = ?", userID, jitID).Delete(&models.JitLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresJitRepository) CreateFavorite(userID, jitID uint) error {
	if err := r.db.Create(&models.JitFavorite{UserID: userID, JitID: jitID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresJitRepository) DeleteFavorite(userID, jitID uint) error {
	res := r.db.Unscoped().Where("user_id = ? AND jit_id = ?", userID, jitID).Delete(&models.JitFavorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresJitRepository) CreateReply(reply *models.JitReply) error {
	return r.db.Create(reply).Error
}

func (r *PostgresJitRepository) ListReplies(jitID uint, page, size int) ([]models.JitReply, int64, error) {
	var replies []models.JitReply
	var total int64

	q := r.db.Model(&models.JitReply{}).Where("jit_id = ?", jitID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Replier").
		Order("created_at DESC").
		Offset(page * size).Limit(size).
		Find(&replies).Error
	return replies, total, err
}
