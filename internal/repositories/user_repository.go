package repositories

import (
	"errors"
	"strings"

	"github.com/jitterapp/backend/internal/apperrors"
	"github.com/jitterapp/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations. The ledger
// and resolver only depend on the identity-store subset (Exists, IsActive).
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateUser(user *models.User) error
	ActivateUser(token string) error
	SetBlockAnonymous(userID uint, block bool) error
	Exists(id uint) (bool, error)
	IsActive(id uint) (bool, error)
	SearchUsers(query string, page, size int) ([]models.User, int64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// ActivateUser flips the account matching token to active and consumes the
// token.
func (r *PostgresUserRepository) ActivateUser(token string) error {
	res := r.db.Model(&models.User{}).
		Where("activation_token = ? AND activation_token <> ''", token).
		Updates(map[string]interface{}{"inactive": false, "activation_token": ""})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) SetBlockAnonymous(userID uint, block bool) error {
	res := r.db.Model(&models.User{}).Where("id = ?", userID).Update("block_anonymous", block)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *PostgresUserRepository) IsActive(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("id = ? AND inactive = ?", id, false).Count(&count).Error
	return count > 0, err
}

// SearchUsers finds users matching query by username, fullname or email.
func (r *PostgresUserRepository) SearchUsers(query string, page, size int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	q := r.db.Model(&models.User{}).Where("inactive = ?", false)
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(username) LIKE ? OR LOWER(fullname) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(page * size).Limit(size).Find(&users).Error
	return users, total, err
}
