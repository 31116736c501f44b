package model

import "time"

// swagger:model Assignment
type Assignment struct {
	BaseModel
	CourseID    uint       `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     time.Time  `gorm:"not null" json:"dueDate"`
	TotalPoints int        `gorm:"default:0" json:"totalPoints"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatorID   uint       `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// swagger:model AssignmentQuestion
type AssignmentQuestion struct {
	BaseModel
	AssignmentID  uint     `gorm:"index;type:bigint unsigned;not null" json:"assignmentId"`
	Content       string   `gorm:"type:text;not null" json:"content"`
	Options       []string `gorm:"serializer:json;type:json" json:"options,omitempty"`
	CorrectAnswer string   `gorm:"type:text" json:"-"` // never serialized to students
	Points        int      `gorm:"default:1" json:"points"`
	Order         int      `gorm:"default:0" json:"order"`
	Explanation   string   `gorm:"type:text" json:"explanation,omitempty"`
}

func (AssignmentQuestion) TableName() string {
	return "assignment_questions"
}

func (q AssignmentQuestion) GetID() uint              { return q.ID }
func (q AssignmentQuestion) GetCorrectAnswer() string { return q.CorrectAnswer }
func (q AssignmentQuestion) GetPoints() int           { return q.Points }

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
	SubmissionLate      SubmissionStatus = "late"
)

// Submission is a user's graded response to an assignment. Status is stored
// explicitly and transitions on submit/grade; only the "no submission yet"
// states (pending/overdue) are derived at read time.
// swagger:model Submission
type Submission struct {
	UUIDBase
	AssignmentID uint             `gorm:"not null;type:bigint unsigned;uniqueIndex:idx_user_assignment" json:"assignmentId"`
	UserID       uint             `gorm:"not null;type:bigint unsigned;uniqueIndex:idx_user_assignment" json:"userId"`
	Score        int              `gorm:"default:0" json:"score"`
	TotalPoints  int              `gorm:"default:0" json:"totalPoints"`
	Percentage   float64          `gorm:"default:0" json:"percentage"`
	Status       SubmissionStatus `gorm:"size:20;default:'submitted'" json:"status"`
	SubmittedAt  time.Time        `json:"submittedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}

// swagger:model SubmissionAnswer
type SubmissionAnswer struct {
	UUIDBase
	SubmissionID string `gorm:"index;type:varchar(36);not null" json:"submissionId"`
	QuestionID   uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Answer       string `gorm:"type:text" json:"answer"`
	IsCorrect    bool   `gorm:"default:false" json:"isCorrect"`
	PointsEarned int    `gorm:"default:0" json:"pointsEarned"`
}

func (SubmissionAnswer) TableName() string {
	return "submission_answers"
}
