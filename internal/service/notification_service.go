package service

import (
	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
)

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo}
}

type NotificationList struct {
	Notifications []model.Notification `json:"notifications"`
	Total         int64                `json:"total"`
	Unread        int64                `json:"unread"`
}

func (s *NotificationService) List(userID uint, page, pageSize int) (*NotificationList, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.NotificationRepo.FindByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	unread, err := s.NotificationRepo.CountUnread(userID)
	if err != nil {
		return nil, err
	}

	return &NotificationList{
		Notifications: notifications,
		Total:         total,
		Unread:        unread,
	}, nil
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.NotificationRepo.CountUnread(userID)
}

// MarkRead scopes the update to the owner, so a user can never mark another
// user's notification.
func (s *NotificationService) MarkRead(userID, notificationID uint) error {
	return s.NotificationRepo.MarkRead(userID, notificationID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.NotificationRepo.MarkAllRead(userID)
}
