package model

// swagger:model Course
type Course struct {
	BaseModel
	Title        string   `gorm:"size:255;not null" json:"title"`
	Description  string   `gorm:"type:text" json:"description"`
	InstructorID uint     `gorm:"index;type:bigint unsigned;not null" json:"instructorId"`
	Instructor   *User    `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Category     string   `gorm:"size:100;index" json:"category"`
	Subject      string   `gorm:"size:100;index" json:"subject"`
	Level        string   `gorm:"size:50" json:"level"` // beginner, intermediate, advanced
	Duration     int      `gorm:"default:0" json:"duration"` // minutes
	LessonCount  int      `gorm:"default:0" json:"lessonCount"`
	Price        float64  `gorm:"default:0" json:"price"`
	Tags         []string `gorm:"serializer:json;type:json" json:"tags"`
	IsPublished  bool     `gorm:"default:false" json:"isPublished"`
	Students     int      `gorm:"default:0" json:"students"`
}

func (Course) TableName() string {
	return "courses"
}
