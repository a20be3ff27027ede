package repositories

import (
	"errors"

	"github.com/jitterapp/backend/internal/models"
	"gorm.io/gorm"
)

// DeviceRepository stores push-registration tokens for the FCM emitter.
type DeviceRepository interface {
	Register(userID uint, token string) error
	Unregister(userID uint, token string) error
	TokensForUser(userID uint) ([]string, error)
}

type PostgresDeviceRepository struct {
	db *gorm.DB
}

func NewPostgresDeviceRepository(db *gorm.DB) *PostgresDeviceRepository {
	return &PostgresDeviceRepository{db: db}
}

// Register stores the token for the user. Re-registering an existing token is
// not an error; the token just moves to the registering user.
func (r *PostgresDeviceRepository) Register(userID uint, token string) error {
	device := &models.DeviceToken{UserID: userID, Token: token}
	if err := r.db.Create(device).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.db.Model(&models.DeviceToken{}).
				Where("token = ?", token).
				Update("user_id", userID).Error
		}
		return err
	}
	return nil
}

func (r *PostgresDeviceRepository) Unregister(userID uint, token string) error {
	// Hard delete so the unique token index does not trip a later re-register.
	return r.db.Unscoped().Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.DeviceToken{}).Error
}

func (r *PostgresDeviceRepository) TokensForUser(userID uint) ([]string, error) {
	var tokens []string
	err := r.db.Model(&models.DeviceToken{}).
		Where("user_id = ?", userID).
		Pluck("token", &tokens).Error
	return tokens, err
}
