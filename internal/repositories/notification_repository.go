package repositories

import (
	"gorm.io/gorm"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
)

// MaxNotificationPage caps the read view at the most recent notifications
const MaxNotificationPage = 50

// NotificationFilter narrows the notification read view
type NotificationFilter struct {
	Type       string // empty = all types
	UnreadOnly bool
}

// NotificationRepository defines the interface for notification operations.
// All reads and mutations are scoped to the recipient.
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint, filter NotificationFilter) ([]models.Notification, error)
	UnreadCountsByType(recipientID uint) (map[string]int64, error)
	MarkAsRead(notificationID, recipientID uint) error
	MarkAllAsRead(recipientID uint, typeFilter string) error
	DeleteNotification(notificationID, recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new NotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByRecipientID returns the newest notifications first, excluding deleted
// ones, capped at MaxNotificationPage.
func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, filter NotificationFilter) ([]models.Notification, error) {
	q := r.db.Where("recipient_id = ? AND status <> ?", recipientID, models.NotificationDeleted)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.UnreadOnly {
		q = q.Where("status = ?", models.NotificationUnread)
	}

	var notifications []models.Notification
	err := q.Order("created_at DESC").Limit(MaxNotificationPage).Find(&notifications).Error
	return notifications, err
}

// UnreadCountsByType aggregates unread counts per notification type
func (r *postgresNotificationRepository) UnreadCountsByType(recipientID uint) (map[string]int64, error) {
	type row struct {
		Type  string
		Count int64
	}
	var rows []row
	err := r.db.Model(&models.Notification{}).
		Select("type, COUNT(*) as count").
		Where("recipient_id = ? AND status = ?", recipientID, models.NotificationUnread).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Type] = rw.Count
	}
	return counts, nil
}

// MarkAsRead transitions one unread notification to read. A missing or
// foreign notification is ignored.
func (r *postgresNotificationRepository) MarkAsRead(notificationID, recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ? AND status = ?", notificationID, recipientID, models.NotificationUnread).
		Update("status", models.NotificationRead).Error
}

// MarkAllAsRead transitions every unread notification (optionally one type)
// to read.
func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint, typeFilter string) error {
	q := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND status = ?", recipientID, models.NotificationUnread)
	if typeFilter != "" {
		q = q.Where("type = ?", typeFilter)
	}
	return q.Update("status", models.NotificationRead).Error
}

// DeleteNotification transitions a notification to deleted, recipient-scoped
func (r *postgresNotificationRepository) DeleteNotification(notificationID, recipientID uint) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ? AND status <> ?", notificationID, recipientID, models.NotificationDeleted).
		Update("status", models.NotificationDeleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
