package service

import (
	"time"

	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"

	"gorm.io/gorm"
)

type DashboardService struct {
	UserRepo         *repository.UserRepository
	EnrollmentRepo   *repository.EnrollmentRepository
	ProgressRepo     *repository.ProgressRepository
	AssignmentSvc    *AssignmentService
	EventRepo        *repository.EventRepository
	NotificationRepo *repository.NotificationRepository
	Gamification     *GamificationService
	DB               *gorm.DB
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	assignmentSvc *AssignmentService,
	eventRepo *repository.EventRepository,
	notificationRepo *repository.NotificationRepository,
	gamification *GamificationService,
	db *gorm.DB,
) *DashboardService {
	return &DashboardService{
		UserRepo:         userRepo,
		EnrollmentRepo:   enrollmentRepo,
		ProgressRepo:     progressRepo,
		AssignmentSvc:    assignmentSvc,
		EventRepo:        eventRepo,
		NotificationRepo: notificationRepo,
		Gamification:     gamification,
		DB:               db,
	}
}

// Dashboard is the student home screen payload, assembled in one request so
// the client needs a single round trip.
type Dashboard struct {
	User               *model.User        `json:"user"`
	Level              int                `json:"level"`
	NextLevelXP        int                `json:"nextLevelXp"`
	Enrollments        []model.Enrollment `json:"enrollments"`
	PendingAssignments int                `json:"pendingAssignments"`
	UpcomingEvents     []model.Event      `json:"upcomingEvents"`
	UnreadCount        int64              `json:"unreadCount"`
	WeeklyStudyMins    int64              `json:"weeklyStudyMins"`
	Leaderboard        []LeaderboardEntry `json:"leaderboard"`
}

func (s *DashboardService) ForUser(userID uint) (*Dashboard, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.EnrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.AssignmentSvc.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	pending := 0
	for _, a := range assignments {
		if a.Status == "pending" {
			pending++
		}
	}

	events, err := s.EventRepo.FindUpcoming(userID, 5)
	if err != nil {
		return nil, err
	}

	unread, err := s.NotificationRepo.CountUnread(userID)
	if err != nil {
		return nil, err
	}

	weekly, err := s.ProgressRepo.SumSessionMinutes(userID, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	leaderboard, err := s.Gamification.GetLeaderboard(10)
	if err != nil {
		return nil, err
	}

	level, nextLevelXP := CalculateLevel(user.XP)

	return &Dashboard{
		User:               user,
		Level:              level,
		NextLevelXP:        nextLevelXP,
		Enrollments:        enrollments,
		PendingAssignments: pending,
		UpcomingEvents:     events,
		UnreadCount:        unread,
		WeeklyStudyMins:    weekly,
		Leaderboard:        leaderboard,
	}, nil
}

// AdminStats is the platform overview for the admin console.
type AdminStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	ActiveToday       int64 `json:"activeToday"`
	TotalCourses      int64 `json:"totalCourses"`
	PublishedCourses  int64 `json:"publishedCourses"`
	TotalEnrollments  int64 `json:"totalEnrollments"`
	TotalSubmissions  int64 `json:"totalSubmissions"`
	TotalTestAttempts int64 `json:"totalTestAttempts"`
}

func (s *DashboardService) ForAdmin() (*AdminStats, error) {
	stats := &AdminStats{}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, s.DB.Model(&model.User{})},
		{&stats.ActiveToday, s.DB.Model(&model.User{}).Where("last_seen >= ?", startOfToday())},
		{&stats.TotalCourses, s.DB.Model(&model.Course{})},
		{&stats.PublishedCourses, s.DB.Model(&model.Course{}).Where("is_published = ?", true)},
		{&stats.TotalEnrollments, s.DB.Model(&model.Enrollment{})},
		{&stats.TotalSubmissions, s.DB.Model(&model.Submission{})},
		{&stats.TotalTestAttempts, s.DB.Model(&model.TestAttempt{})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
