package repository

import (
	"context"

	"hackswipe/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationRepository stores read markers for derived notifications.
type NotificationRepository interface {
	// ReadSet returns which of ids the user has marked read.
	ReadSet(ctx context.Context, userID string, ids []string) (map[string]bool, error)
	MarkRead(ctx context.Context, userID string, ids []string) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository returns a new NotificationRepository implementation.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) ReadSet(ctx context.Context, userID string, ids []string) (map[string]bool, error) {
	ids = uniqueStrings(ids)
	out := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var read []string
	err := r.db.WithContext(ctx).Model(&models.NotificationRead{}).
		Where("user_id = ? AND notification_id IN ?", userID, ids).
		Pluck("notification_id", &read).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, id := range read {
		out[id] = true
	}
	return out, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID string, ids []string) error {
	ids = uniqueStrings(ids)
	if len(ids) == 0 {
		return nil
	}
	rows := make([]models.NotificationRead, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.NotificationRead{UserID: userID, NotificationID: id})
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
