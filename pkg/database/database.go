package database

import (
	"fmt"
	"log"

	"masomo_backend/internal/config"
	"masomo_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.UserPreferences{},
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.ProgressRecord{},
		&model.StudySession{},
		&model.Assignment{},
		&model.AssignmentQuestion{},
		&model.Submission{},
		&model.SubmissionAnswer{},
		&model.Test{},
		&model.TestQuestion{},
		&model.TestAttempt{},
		&model.TestAttemptAnswer{},
		&model.AchievementDefinition{},
		&model.UserAchievement{},
		&model.Friendship{},
		&model.FriendRequest{},
		&model.Event{},
		&model.EventParticipant{},
		&model.Notification{},
		&model.Checkin{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedAchievementDefinitions(db)

	return db, nil
}

// seedAchievementDefinitions inserts the default achievement rules when the
// table is empty so a fresh deployment has something to evaluate against.
func seedAchievementDefinitions(db *gorm.DB) {
	var count int64
	db.Model(&model.AchievementDefinition{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.AchievementDefinition{
		{Name: "First Steps", Description: "Enroll in your first course", Icon: "🎒", Type: model.AchievementCoursesEnrolled, Target: 1, XPReward: 50, IsActive: true},
		{Name: "Course Collector", Description: "Enroll in 5 courses", Icon: "📚", Type: model.AchievementCoursesEnrolled, Target: 5, XPReward: 100, IsActive: true},
		{Name: "Graduate", Description: "Complete your first course", Icon: "🎓", Type: model.AchievementCoursesCompleted, Target: 1, XPReward: 200, IsActive: true},
		{Name: "Scholar", Description: "Complete 10 courses", Icon: "🏆", Type: model.AchievementCoursesCompleted, Target: 10, XPReward: 500, IsActive: true},
		{Name: "Quick Learner", Description: "Complete 10 lessons", Icon: "⚡", Type: model.AchievementLessonsCompleted, Target: 10, XPReward: 100, IsActive: true},
		{Name: "Lesson Master", Description: "Complete 100 lessons", Icon: "🌟", Type: model.AchievementLessonsCompleted, Target: 100, XPReward: 400, IsActive: true},
		{Name: "Homework Hero", Description: "Submit 10 assignments", Icon: "📝", Type: model.AchievementAssignmentsComplete, Target: 10, XPReward: 150, IsActive: true},
		{Name: "Test Ace", Description: "Complete 10 tests", Icon: "💯", Type: model.AchievementTestsCompleted, Target: 10, XPReward: 150, IsActive: true},
		{Name: "Social Butterfly", Description: "Make 5 friends", Icon: "🤝", Type: model.AchievementFriendsMade, Target: 5, XPReward: 75, IsActive: true},
		{Name: "On Fire", Description: "Keep a 7-day study streak", Icon: "🔥", Type: model.AchievementStudyStreak, Target: 7, XPReward: 100, IsActive: true},
		{Name: "Marathon Learner", Description: "Study for 1000 minutes", Icon: "⏱️", Type: model.AchievementStudyTime, Target: 1000, XPReward: 200, IsActive: true},
	}
	for _, d := range defaults {
		db.Create(&d)
	}
}
