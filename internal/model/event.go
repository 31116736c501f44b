package model

import "time"

type EventType string

const (
	EventClass      EventType = "class"
	EventAssignment EventType = "assignment"
	EventTest       EventType = "test"
	EventStudyGroup EventType = "study_group"
	EventPersonal   EventType = "personal"
)

// swagger:model Event
type Event struct {
	BaseModel
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Type         EventType `gorm:"size:20;not null;index" json:"type"`
	StartAt      time.Time `gorm:"not null;index" json:"startAt"`
	EndAt        time.Time `gorm:"not null" json:"endAt"`
	CourseID     *uint     `gorm:"type:bigint unsigned" json:"courseId,omitempty"`
	AssignmentID *uint     `gorm:"type:bigint unsigned" json:"assignmentId,omitempty"`
	TestID       *uint     `gorm:"type:bigint unsigned" json:"testId,omitempty"`
	CreatorID    uint      `gorm:"index;type:bigint unsigned;not null" json:"creatorId"`
}

func (Event) TableName() string {
	return "events"
}

type EventParticipant struct {
	EventID   uint      `gorm:"primaryKey" json:"eventId"`
	UserID    uint      `gorm:"primaryKey" json:"userId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (EventParticipant) TableName() string {
	return "event_participants"
}
