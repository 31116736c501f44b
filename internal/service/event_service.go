package service

import (
	"time"

	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/util"

	"gorm.io/gorm"
)

type EventService struct {
	EventRepo      *repository.EventRepository
	FriendshipRepo *repository.FriendshipRepository
}

func NewEventService(eventRepo *repository.EventRepository, friendshipRepo *repository.FriendshipRepository) *EventService {
	return &EventService{EventRepo: eventRepo, FriendshipRepo: friendshipRepo}
}

type EventRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	Type         string    `json:"type" binding:"required,oneof=class assignment test study_group personal"`
	StartAt      time.Time `json:"startAt" binding:"required"`
	EndAt        time.Time `json:"endAt" binding:"required"`
	CourseID     *uint     `json:"courseId"`
	AssignmentID *uint     `json:"assignmentId"`
	TestID       *uint     `json:"testId"`
	Participants []uint    `json:"participants"`
}

// Create makes a calendar event. Invited participants must be friends of
// the creator; non-friends in the list are silently skipped. End must not
// precede start.
func (s *EventService) Create(creatorID uint, req EventRequest) (*model.Event, error) {
	if req.EndAt.Before(req.StartAt) {
		return nil, util.ErrInvalidEventTime
	}

	event := &model.Event{
		Title:        req.Title,
		Description:  req.Description,
		Type:         model.EventType(req.Type),
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		CourseID:     req.CourseID,
		AssignmentID: req.AssignmentID,
		TestID:       req.TestID,
		CreatorID:    creatorID,
	}
	if err := s.EventRepo.Create(event); err != nil {
		return nil, err
	}

	for _, participantID := range req.Participants {
		if participantID == creatorID {
			continue
		}
		isFriend, err := s.FriendshipRepo.IsFriend(creatorID, participantID)
		if err != nil || !isFriend {
			continue
		}
		_ = s.EventRepo.AddParticipant(event.ID, participantID)
	}

	return event, nil
}

// ListForRange returns the user's events (created or invited) inside
// [from, to).
func (s *EventService) ListForRange(userID uint, from, to time.Time) ([]model.Event, error) {
	if !to.After(from) {
		return []model.Event{}, nil
	}
	return s.EventRepo.FindForUser(userID, from, to)
}

// ListMonth is the calendar view: all events in the calendar month that
// contains anchor.
func (s *EventService) ListMonth(userID uint, anchor time.Time) ([]model.Event, error) {
	from := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	to := from.AddDate(0, 1, 0)
	return s.EventRepo.FindForUser(userID, from, to)
}

func (s *EventService) Upcoming(userID uint, limit int) ([]model.Event, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	return s.EventRepo.FindUpcoming(userID, limit)
}

func (s *EventService) Update(eventID, actorID uint, actorRole model.UserRole, req EventRequest) (*model.Event, error) {
	event, err := s.ownedEvent(eventID, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if req.EndAt.Before(req.StartAt) {
		return nil, util.ErrInvalidEventTime
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Type = model.EventType(req.Type)
	event.StartAt = req.StartAt
	event.EndAt = req.EndAt
	event.CourseID = req.CourseID
	event.AssignmentID = req.AssignmentID
	event.TestID = req.TestID

	if err := s.EventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(eventID, actorID uint, actorRole model.UserRole) error {
	if _, err := s.ownedEvent(eventID, actorID, actorRole); err != nil {
		return err
	}
	return s.EventRepo.Delete(eventID)
}

// Join adds the caller as a participant. Only a friend of the creator can
// join, mirroring the invite rule.
func (s *EventService) Join(eventID, userID uint) error {
	event, err := s.EventRepo.FindByID(eventID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrEventNotFound
	}
	if err != nil {
		return err
	}
	if event.CreatorID == userID {
		return nil
	}
	isFriend, err := s.FriendshipRepo.IsFriend(event.CreatorID, userID)
	if err != nil {
		return err
	}
	if !isFriend {
		return util.ErrPermissionDenied
	}
	return s.EventRepo.AddParticipant(eventID, userID)
}

// Leave removes the caller from an event they were invited to. The creator
// cannot leave their own event; they delete it instead.
func (s *EventService) Leave(eventID, userID uint) error {
	event, err := s.EventRepo.FindByID(eventID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrEventNotFound
	}
	if err != nil {
		return err
	}
	if event.CreatorID == userID {
		return util.ErrPermissionDenied
	}
	return s.EventRepo.RemoveParticipant(eventID, userID)
}

func (s *EventService) ownedEvent(eventID, actorID uint, actorRole model.UserRole) (*model.Event, error) {
	event, err := s.EventRepo.FindByID(eventID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if actorRole != model.Admin && event.CreatorID != actorID {
		return nil, util.ErrPermissionDenied
	}
	return event, nil
}
