package repository

import (
	"time"

	"masomo_backend/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(event *model.Event) error {
	return r.DB.Create(event).Error
}

func (r *EventRepository) FindByID(id uint) (*model.Event, error) {
	var event model.Event
	err := r.DB.First(&event, id).Error
	return &event, err
}

func (r *EventRepository) Update(event *model.Event) error {
	return r.DB.Save(event).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.EventParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, id).Error
	})
}

// FindForUser returns events the user created or participates in within the
// given range.
func (r *EventRepository) FindForUser(userID uint, from, to time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.DB.
		Joins("LEFT JOIN event_participants ON event_participants.event_id = events.id AND event_participants.user_id = ?", userID).
		Where("(events.creator_id = ? OR event_participants.user_id = ?)", userID, userID).
		Where("events.start_at >= ? AND events.start_at < ?", from, to).
		Group("events.id").
		Order("events.start_at ASC").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) FindUpcoming(userID uint, limit int) ([]model.Event, error) {
	var events []model.Event
	err := r.DB.
		Joins("LEFT JOIN event_participants ON event_participants.event_id = events.id AND event_participants.user_id = ?", userID).
		Where("(events.creator_id = ? OR event_participants.user_id = ?)", userID, userID).
		Where("events.start_at >= ?", time.Now()).
		Group("events.id").
		Order("events.start_at ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *EventRepository) AddParticipant(eventID, userID uint) error {
	return r.DB.Create(&model.EventParticipant{EventID: eventID, UserID: userID}).Error
}

func (r *EventRepository) RemoveParticipant(eventID, userID uint) error {
	return r.DB.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&model.EventParticipant{}).Error
}

func (r *EventRepository) GetParticipantIDs(eventID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Table("event_participants").
		Where("event_id = ?", eventID).
		Pluck("user_id", &ids).Error
	return ids, err
}
