package service

import (
	"context"
	"errors"

	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"gorm.io/gorm"
)

// NotificationService exposes the append-only notification feed.
type NotificationService interface {
	ListForUser(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
}

type notificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

func (s *notificationService) ListForUser(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.notifications.ListForUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	notification, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return err
	}
	if notification.UserID.String() != userID {
		return apperror.Forbidden("You can only mark your own notifications as read")
	}
	return s.notifications.MarkRead(ctx, notificationID)
}
