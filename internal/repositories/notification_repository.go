package repositories

import (
	"github.com/quangdm-dev/socialnews-backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// All reads and mutations are scoped to the owning user.
type NotificationRepository interface {
	Insert(n *models.Notification) error
	ListByUser(userID string, page, limit int) ([]models.Notification, bool, error)
	MarkRead(notificationID, userID string) error
	MarkAllRead(userID string) error
	UnreadCount(userID string) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Insert(n *models.Notification) error {
	return r.db.Create(n).Error
}

// ListByUser returns one page newest first. hasMore is derived from a full
// page coming back, so no count query is needed.
func (r *postgresNotificationRepository) ListByUser(userID string, page, limit int) ([]models.Notification, bool, error) {
	var notifications []models.Notification
	offset := page * limit
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, false, err
	}
	return notifications, len(notifications) == limit, nil
}

func (r *postgresNotificationRepository) MarkRead(notificationID, userID string) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) MarkAllRead(userID string) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) UnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}
