package model

import "time"

// swagger:model Test
type Test struct {
	BaseModel
	CourseID    uint       `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	TimeLimit   int        `gorm:"default:0" json:"timeLimit"` // minutes, 0 = unlimited
	TotalPoints int        `gorm:"default:0" json:"totalPoints"`
	IsPublished bool       `gorm:"default:false" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatorID   uint       `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Test) TableName() string {
	return "tests"
}

// swagger:model TestQuestion
type TestQuestion struct {
	BaseModel
	TestID        uint     `gorm:"index;type:bigint unsigned;not null" json:"testId"`
	Content       string   `gorm:"type:text;not null" json:"content"`
	Options       []string `gorm:"serializer:json;type:json" json:"options,omitempty"`
	CorrectAnswer string   `gorm:"type:text" json:"-"`
	Points        int      `gorm:"default:1" json:"points"`
	Order         int      `gorm:"default:0" json:"order"`
	Explanation   string   `gorm:"type:text" json:"explanation,omitempty"`
}

func (TestQuestion) TableName() string {
	return "test_questions"
}

func (q TestQuestion) GetID() uint              { return q.ID }
func (q TestQuestion) GetCorrectAnswer() string { return q.CorrectAnswer }
func (q TestQuestion) GetPoints() int           { return q.Points }

// swagger:model TestAttempt
type TestAttempt struct {
	UUIDBase
	TestID      uint       `gorm:"not null;type:bigint unsigned;uniqueIndex:idx_user_test" json:"testId"`
	UserID      uint       `gorm:"not null;type:bigint unsigned;uniqueIndex:idx_user_test" json:"userId"`
	Score       int        `gorm:"default:0" json:"score"`
	TotalPoints int        `gorm:"default:0" json:"totalPoints"`
	Percentage  float64    `gorm:"default:0" json:"percentage"`
	Status      string     `gorm:"size:20;default:'completed'" json:"status"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}

// swagger:model TestAttemptAnswer
type TestAttemptAnswer struct {
	UUIDBase
	AttemptID    string `gorm:"index;type:varchar(36);not null" json:"attemptId"`
	QuestionID   uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	Answer       string `gorm:"type:text" json:"answer"`
	IsCorrect    bool   `gorm:"default:false" json:"isCorrect"`
	PointsEarned int    `gorm:"default:0" json:"pointsEarned"`
}

func (TestAttemptAnswer) TableName() string {
	return "test_attempt_answers"
}
