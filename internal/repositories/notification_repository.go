package repositories

import (
	"gorm.io/gorm"

	"github.com/chirper-app/backend/internal/models"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetNotificationByID(id uint) (*models.Notification, error)
	GetByReceiverID(receiverID uint) ([]models.Notification, error)
	GetUnreadByReceiverID(receiverID uint) ([]models.Notification, error)
	GetUnreadCount(receiverID uint) (int64, error)
	MarkAsRead(notificationID uint) error
	MarkAllAsRead(receiverID uint) (int64, error)
	DeleteNotification(notificationID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// CreateNotification inserts a fanout record. Replaying the same logical
// event hits the (sender, receiver, verb, target) unique index and
// surfaces gorm.ErrDuplicatedKey for the caller to swallow.
func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.Preload("Sender.Profile").First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) GetByReceiverID(receiverID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Preload("Sender.Profile").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadByReceiverID(receiverID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Preload("Sender.Profile").
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(receiverID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(notificationID uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", notificationID).Update("is_read", true).Error
}

// MarkAllAsRead flips every unread notification of a receiver in one
// statement and reports how many rows changed.
func (r *postgresNotificationRepository) MarkAllAsRead(receiverID uint) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *postgresNotificationRepository) DeleteNotification(notificationID uint) error {
	return r.db.Delete(&models.Notification{}, notificationID).Error
}
