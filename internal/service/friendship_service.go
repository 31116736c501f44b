package service

import (
	"fmt"

	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/util"
	"masomo_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FriendshipService struct {
	FriendshipRepo   *repository.FriendshipRepository
	UserRepo         *repository.UserRepository
	NotificationRepo *repository.NotificationRepository
	Gamification     *GamificationService
	Achievements     *AchievementService
}

func NewFriendshipService(
	friendshipRepo *repository.FriendshipRepository,
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	gamification *GamificationService,
	achievements *AchievementService,
) *FriendshipService {
	return &FriendshipService{
		FriendshipRepo:   friendshipRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		Gamification:     gamification,
		Achievements:     achievements,
	}
}

// SendRequest creates a pending friend request. Self-requests, requests to
// unknown or disabled users, duplicate pendings (either direction) and
// requests to existing friends are all rejected.
func (s *FriendshipService) SendRequest(senderID, receiverID uint, message string) (*model.FriendRequest, error) {
	if senderID == receiverID {
		return nil, util.ErrInvalidFriendTarget
	}

	receiver, err := s.UserRepo.FindByID(receiverID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if receiver.Disabled {
		return nil, util.ErrInvalidFriendTarget
	}

	already, err := s.FriendshipRepo.IsFriend(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, util.ErrAlreadyFriends
	}

	if _, err := s.FriendshipRepo.FindPendingBetween(senderID, receiverID); err == nil {
		return nil, util.ErrInvalidFriendTarget
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if _, err := s.FriendshipRepo.FindPendingBetween(receiverID, senderID); err == nil {
		return nil, util.ErrInvalidFriendTarget
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	sender, err := s.UserRepo.FindByID(senderID)
	if err != nil {
		return nil, err
	}

	req := &model.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    message,
	}
	if err := s.FriendshipRepo.CreateRequest(req); err != nil {
		return nil, err
	}

	s.notify(receiverID, model.NotificationFriendRequest,
		"New friend request",
		fmt.Sprintf("%s wants to be your friend", sender.Name))

	return req, nil
}

// AcceptRequest flips a pending request to accepted, writes the symmetric
// friendship rows and rewards both sides. Only the receiver may accept.
func (s *FriendshipService) AcceptRequest(requestID string, userID uint) error {
	req, err := s.FriendshipRepo.GetRequest(requestID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	if req.ReceiverID != userID {
		return util.ErrPermissionDenied
	}
	if req.Status != "pending" {
		return util.ErrRequestHandled
	}

	friendship := &model.Friendship{
		UserID:   req.SenderID,
		FriendID: req.ReceiverID,
		Status:   "accepted",
	}
	if err := s.FriendshipRepo.AcceptRequest(requestID, friendship); err != nil {
		return err
	}

	xp := XPForEvent(EventFriendAccepted)
	for _, id := range []uint{req.SenderID, req.ReceiverID} {
		if err := s.Gamification.Award(id, EventFriendAccepted, xp); err != nil {
			logger.Log.Error("friend XP award failed", zap.Error(err), zap.Uint("user", id))
		}
		_ = s.Achievements.AddProgress(id, model.AchievementFriendsMade, 1)
	}

	receiver, err := s.UserRepo.FindByID(req.ReceiverID)
	if err == nil {
		s.notify(req.SenderID, model.NotificationFriendAccept,
			"Friend request accepted",
			fmt.Sprintf("%s accepted your friend request", receiver.Name))
	}
	return nil
}

// RejectRequest marks a pending request rejected. Only the receiver may
// reject; the sender gets no notification.
func (s *FriendshipService) RejectRequest(requestID string, userID uint) error {
	req, err := s.FriendshipRepo.GetRequest(requestID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	if req.ReceiverID != userID {
		return util.ErrPermissionDenied
	}
	if req.Status != "pending" {
		return util.ErrRequestHandled
	}
	return s.FriendshipRepo.UpdateRequestStatus(requestID, "rejected")
}

func (s *FriendshipService) ListFriends(userID uint, query string) ([]model.User, error) {
	return s.FriendshipRepo.GetFriends(userID, query)
}

func (s *FriendshipService) ListPendingRequests(userID uint) ([]model.FriendRequest, error) {
	return s.FriendshipRepo.GetPendingRequests(userID)
}

func (s *FriendshipService) Unfriend(userID, friendID uint) error {
	isFriend, err := s.FriendshipRepo.IsFriend(userID, friendID)
	if err != nil {
		return err
	}
	if !isFriend {
		return util.ErrInvalidFriendTarget
	}
	return s.FriendshipRepo.DeleteFriendship(userID, friendID)
}

// FriendActivity is a lightweight social feed entry built from the friend's
// public stats.
type FriendActivity struct {
	UserID      uint   `json:"userId"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar,omitempty"`
	XP          int    `json:"xp"`
	StudyStreak int    `json:"studyStreak"`
	LastSeen    string `json:"lastSeen"`
}

func (s *FriendshipService) FriendActivityFeed(userID uint) ([]FriendActivity, error) {
	ids, err := s.FriendshipRepo.GetFriendIDsCached(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []FriendActivity{}, nil
	}

	friends, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	feed := make([]FriendActivity, 0, len(friends))
	for _, f := range friends {
		if f.Disabled {
			continue
		}
		feed = append(feed, FriendActivity{
			UserID:      f.ID,
			Name:        f.Name,
			Avatar:      f.Avatar,
			XP:          f.XP,
			StudyStreak: f.StudyStreak,
			LastSeen:    f.LastSeen.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return feed, nil
}

func (s *FriendshipService) notify(userID uint, kind model.NotificationType, title, body string) {
	n := &model.Notification{
		UserID: userID,
		Type:   kind,
		Title:  title,
		Body:   body,
	}
	if err := s.NotificationRepo.Create(n); err != nil {
		logger.Log.Warn("notification create failed", zap.Error(err), zap.Uint("user", userID))
	}
}
