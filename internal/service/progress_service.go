package service

import (
	"time"

	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/util"
	"masomo_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo   *repository.ProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
	LessonRepo     *repository.LessonRepository
	CourseRepo     *repository.CourseRepository
	UserRepo       *repository.UserRepository
	Gamification   *GamificationService
	Achievements   *AchievementService
	DB             *gorm.DB
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	gamification *GamificationService,
	achievements *AchievementService,
	db *gorm.DB,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:   progressRepo,
		EnrollmentRepo: enrollmentRepo,
		LessonRepo:     lessonRepo,
		CourseRepo:     courseRepo,
		UserRepo:       userRepo,
		Gamification:   gamification,
		Achievements:   achievements,
		DB:             db,
	}
}

type ProgressUpdateRequest struct {
	CourseID             uint    `json:"courseId" binding:"required"`
	Type                 string  `json:"type" binding:"required,oneof=lesson module course"`
	LessonID             *uint   `json:"lessonId"`
	ModuleID             *uint   `json:"moduleId"`
	CompletionPercentage float64 `json:"completionPercentage" binding:"min=0"`
	TimeSpent            int     `json:"timeSpent" binding:"min=0"` // minutes since last report
}

// clampPercentage keeps reported completion in the 0-100 range. Completion
// is monotonic: a lower report never moves a record backwards.
func clampPercentage(current, reported float64) float64 {
	if reported > 100 {
		reported = 100
	}
	if reported < current {
		return current
	}
	return reported
}

// Record upserts one progress row. TimeSpent accumulates; the completion
// percentage only ever moves forward. The first time a lesson record hits
// 100% the completion chain runs: lesson XP, study-time stats, the
// enrollment's denormalized progress and, when it was the last lesson,
// course completion.
func (s *ProgressService) Record(userID uint, req ProgressUpdateRequest) (*model.ProgressRecord, error) {
	enrolled, err := s.EnrollmentRepo.Exists(userID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	progressType := model.ProgressType(req.Type)
	if progressType == model.ProgressLesson {
		if req.LessonID == nil {
			return nil, util.ErrLessonNotFound
		}
		lesson, err := s.LessonRepo.FindByID(*req.LessonID)
		if err != nil || lesson.CourseID != req.CourseID {
			return nil, util.ErrLessonNotFound
		}
	}

	key := repository.ProgressKey{
		UserID:   userID,
		CourseID: req.CourseID,
		Type:     progressType,
		LessonID: req.LessonID,
		ModuleID: req.ModuleID,
	}

	record, err := s.ProgressRepo.Find(key)
	if err == gorm.ErrRecordNotFound {
		record = &model.ProgressRecord{
			UserID:   userID,
			CourseID: req.CourseID,
			Type:     progressType,
			LessonID: req.LessonID,
			ModuleID: req.ModuleID,
		}
		if err := s.ProgressRepo.Create(record); err != nil {
			if !isDuplicateKey(err) {
				return nil, err
			}
			// Concurrent first report for the same key; re-read and merge.
			record, err = s.ProgressRepo.Find(key)
			if err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	wasCompleted := record.IsCompleted

	record.CompletionPercentage = clampPercentage(record.CompletionPercentage, req.CompletionPercentage)
	record.TimeSpent += req.TimeSpent
	record.LastAccessedAt = time.Now()
	if record.CompletionPercentage >= 100 {
		record.IsCompleted = true
	}

	if err := s.ProgressRepo.Update(record); err != nil {
		return nil, err
	}

	if req.TimeSpent > 0 {
		if err := s.UserRepo.IncrementStat(userID, "total_study_time", req.TimeSpent); err != nil {
			logger.Log.Warn("study time update failed", zap.Error(err), zap.Uint("user", userID))
		}
		session := &model.StudySession{
			UserID:    userID,
			CourseID:  req.CourseID,
			LessonID:  req.LessonID,
			Minutes:   req.TimeSpent,
			StudiedAt: time.Now(),
		}
		if err := s.ProgressRepo.CreateSession(session); err != nil {
			logger.Log.Warn("study session write failed", zap.Error(err), zap.Uint("user", userID))
		}
		// The study-time achievements track the lifetime total, so re-read
		// the user after the increment and report the absolute value.
		if user, err := s.UserRepo.FindByID(userID); err == nil {
			_ = s.Achievements.SetProgress(userID, model.AchievementStudyTime, user.TotalStudyTime)
		} else {
			logger.Log.Warn("study time achievement skipped", zap.Error(err), zap.Uint("user", userID))
		}
	}

	if progressType == model.ProgressLesson && record.IsCompleted && !wasCompleted {
		s.onLessonCompleted(userID, req.CourseID)
	}

	return record, nil
}

// onLessonCompleted awards the lesson XP, refreshes the enrollment's
// denormalized counters and closes out the course when the last lesson is
// done. Failures here are logged, not returned: the progress row is already
// saved and the client's report succeeded.
func (s *ProgressService) onLessonCompleted(userID, courseID uint) {
	if err := s.Gamification.Award(userID, EventLessonCompleted, XPForEvent(EventLessonCompleted)); err != nil {
		logger.Log.Error("lesson XP award failed", zap.Error(err), zap.Uint("user", userID))
	}
	_ = s.Achievements.AddProgress(userID, model.AchievementLessonsCompleted, 1)

	completed, err := s.ProgressRepo.CountCompletedLessons(userID, courseID)
	if err != nil {
		logger.Log.Error("completed lesson count failed", zap.Error(err), zap.Uint("course", courseID))
		return
	}
	total, err := s.LessonRepo.CountByCourse(courseID)
	if err != nil {
		logger.Log.Error("lesson count failed", zap.Error(err), zap.Uint("course", courseID))
		return
	}

	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total) * 100
	}
	courseDone := total > 0 && completed >= total

	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		logger.Log.Error("enrollment lookup failed", zap.Error(err), zap.Uint("user", userID))
		return
	}
	alreadyDone := enrollment.IsCompleted

	if err := s.EnrollmentRepo.UpdateLessonProgress(userID, courseID, int(completed), pct, courseDone); err != nil {
		logger.Log.Error("enrollment progress update failed", zap.Error(err), zap.Uint("user", userID))
		return
	}

	if courseDone && !alreadyDone {
		s.onCourseCompleted(userID)
	}
}

func (s *ProgressService) onCourseCompleted(userID uint) {
	if err := s.Gamification.Award(userID, EventCourseCompleted, XPForEvent(EventCourseCompleted)); err != nil {
		logger.Log.Error("course XP award failed", zap.Error(err), zap.Uint("user", userID))
	}
	if err := s.UserRepo.IncrementStat(userID, "courses_completed", 1); err != nil {
		logger.Log.Error("courses completed stat failed", zap.Error(err), zap.Uint("user", userID))
	}
	_ = s.Achievements.AddProgress(userID, model.AchievementCoursesCompleted, 1)
}

// CourseProgress is the per-course view: the enrollment summary plus every
// raw progress row.
type CourseProgress struct {
	Enrollment *model.Enrollment      `json:"enrollment"`
	Records    []model.ProgressRecord `json:"records"`
}

func (s *ProgressService) GetCourseProgress(userID, courseID uint) (*CourseProgress, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}

	records, err := s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	return &CourseProgress{Enrollment: enrollment, Records: records}, nil
}
