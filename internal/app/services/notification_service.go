package services

import (
	"context"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/repositories"
	"github.com/campuslink/jobportal/internal/pkg/helpers"
)

// NotificationService handles the per-user notification feed
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(notificationRepo *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns a page of the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID int64, page, size int) ([]models.Notification, dto.PaginationInfo, error) {
	_, limit := helpers.CalculateOffsetLimit(page, size)
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return notifications, helpers.NewPaginationInfo(total, page, limit), nil
}

// UnreadCount returns the user's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks every notification of the user read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
