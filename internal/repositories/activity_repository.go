package repositories

import (
	"github.com/jitterapp/backend/internal/models"
	"gorm.io/gorm"
)

// ActivityRepository persists the notification feed. The engine itself never
// writes here; the activity emitter does.
type ActivityRepository interface {
	CreateActivity(activity *models.Activity) error
	GetByUserID(userID uint, page, size int) ([]models.Activity, int64, error)
}

type PostgresActivityRepository struct {
	db *gorm.DB
}

func NewPostgresActivityRepository(db *gorm.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) CreateActivity(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

func (r *PostgresActivityRepository) GetByUserID(userID uint, page, size int) ([]models.Activity, int64, error) {
	var activities []models.Activity
	var total int64

	q := r.db.Model(&models.Activity{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("FromUser").
		Order("created_at DESC").
		Offset(page * size).Limit(size).
		Find(&activities).Error
	return activities, total, err
}
