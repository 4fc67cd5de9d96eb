package models

import "time"

// Notification types
const (
	NotificationLike       = "like"
	NotificationComment    = "comment"
	NotificationFollow     = "follow"
	NotificationMention    = "mention"
	NotificationReport     = "report"
	NotificationModeration = "moderation"
	NotificationRoleChange = "role_change"
)

// NotificationTypes lists every known type, in the order unread counts are
// reported.
var NotificationTypes = []string{
	NotificationLike,
	NotificationComment,
	NotificationFollow,
	NotificationMention,
	NotificationReport,
	NotificationModeration,
	NotificationRoleChange,
}

// Notification statuses
const (
	NotificationUnread  = "unread"
	NotificationRead    = "read"
	NotificationDeleted = "deleted"
)

// Notification records an action by one account relevant to another.
// Never created when recipient == actor.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	PostID      string    `json:"post_id,omitempty"` // related post, hex ObjectID
	Message     string    `json:"message"`
	Status      string    `json:"status" gorm:"size:10;default:unread;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
