package repositories

import (
	"time"

	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceTokenRepository defines the interface for push target registration
type DeviceTokenRepository interface {
	// Upsert registers a device token keyed by device_id alone, so a
	// device's token always overwrites its prior record regardless of
	// login state changes.
	Upsert(t *models.DeviceToken) error
	ListByUser(userID string) ([]models.DeviceToken, error)
}

// PostgresDeviceTokenRepository implements DeviceTokenRepository for PostgreSQL
type PostgresDeviceTokenRepository struct {
	db *gorm.DB
}

// NewPostgresDeviceTokenRepository creates a new PostgresDeviceTokenRepository
func NewPostgresDeviceTokenRepository(db *gorm.DB) *PostgresDeviceTokenRepository {
	return &PostgresDeviceTokenRepository{db: db}
}

// Upsert inserts or overwrites the device's registration
func (r *PostgresDeviceTokenRepository) Upsert(t *models.DeviceToken) error {
	t.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"fcm_token", "user_id", "updated_at"}),
	}).Create(t).Error
}

// ListByUser returns all device tokens registered for a user
func (r *PostgresDeviceTokenRepository) ListByUser(userID string) ([]models.DeviceToken, error) {
	var tokens []models.DeviceToken
	if err := r.db.Where("user_id = ?", userID).Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}
