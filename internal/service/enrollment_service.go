package service

import (
	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/util"
	"masomo_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	Gamification   *GamificationService
	Achievements   *AchievementService
	DB             *gorm.DB
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	gamification *GamificationService,
	achievements *AchievementService,
	db *gorm.DB,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Gamification:   gamification,
		Achievements:   achievements,
		DB:             db,
	}
}

// Enroll creates a zero-progress enrollment, bumps the course student
// counter and awards the enrollment XP — all in one transaction. The
// pre-check gives a friendly error; the unique index on (user, course) is
// what actually prevents a duplicate slipping in between check and insert.
func (s *EnrollmentService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotPublished
	}

	exists, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}

	xp := XPForEvent(EventCourseEnrolled)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.EnrollmentRepo.Create(tx, enrollment); err != nil {
			if isDuplicateKey(err) {
				return util.ErrAlreadyEnrolled
			}
			return err
		}
		if err := s.CourseRepo.IncrementStudents(tx, courseID, 1); err != nil {
			return err
		}
		return s.Gamification.AwardInTx(tx, userID, EventCourseEnrolled, xp)
	})
	if err != nil {
		return nil, err
	}

	s.Gamification.Publish(userID, EventCourseEnrolled, xp)
	monitoring.Enrollments.Inc()

	// Achievement progress runs after the enrollment commits; a failure
	// here is logged by the evaluator and never unwinds the enrollment.
	_ = s.Achievements.AddProgress(userID, model.AchievementCoursesEnrolled, 1)

	return enrollment, nil
}

func (s *EnrollmentService) ListForUser(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.FindByUser(userID)
}

func (s *EnrollmentService) Get(userID, courseID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrNotEnrolled
	}
	return enrollment, err
}
