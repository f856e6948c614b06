package models

import "time"

// Notification types
const (
	NotificationTypeFollow = "follow"
	NotificationTypeLike   = "like"
	NotificationTypeOrder  = "order"
)

// Notification is an in-app notification for a recipient user.
type Notification struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Type         string    `json:"type" gorm:"not null"`
	ActorUID     string    `json:"actor_uid" gorm:"type:varchar(64);not null"`
	RecipientUID string    `json:"recipient_uid" gorm:"type:varchar(64);not null;index"`
	Message      string    `json:"message"`
	Read         bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
}
