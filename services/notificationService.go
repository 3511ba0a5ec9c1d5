package services

import (
	"MediSched/models"
	"context"
)

// NotificationStore is the persistence surface for notifications.
type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uint, userID string) error
}

type NotificationService struct {
	notifications NotificationStore
}

func NewNotificationService(notifications NotificationStore) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// Notify raises an in-app notification for a user. It satisfies the
// NotificationSink consumed by invoicing.
func (s *NotificationService) Notify(ctx context.Context, title, content, userID string) error {
	return s.notifications.Create(ctx, &models.Notification{
		UserID:  userID,
		Title:   title,
		Content: content,
	})
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint, userID string) error {
	return s.notifications.MarkRead(ctx, id, userID)
}
