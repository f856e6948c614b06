package repositories

import (
	"gorm.io/gorm"

	"github.com/stitchfold/backend/internal/models"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetNotificationsForUser(recipientUID string, limit int) ([]models.Notification, error)
	GetUnreadCount(recipientUID string) (int64, error)
	MarkRead(id uint, recipientUID string) error
	MarkAllRead(recipientUID string) error
}

// GormNotificationRepository implements NotificationRepository for the relational store
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *GormNotificationRepository) GetNotificationsForUser(recipientUID string, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []models.Notification
	err := r.db.Where("recipient_uid = ?", recipientUID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *GormNotificationRepository) GetUnreadCount(recipientUID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_uid = ? AND read = ?", recipientUID, false).
		Count(&count).Error
	return count, err
}

func (r *GormNotificationRepository) MarkRead(id uint, recipientUID string) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_uid = ?", id, recipientUID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormNotificationRepository) MarkAllRead(recipientUID string) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_uid = ? AND read = ?", recipientUID, false).
		Update("read", true).Error
}
