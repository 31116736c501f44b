package service

import (
	"time"

	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/util"

	"gorm.io/gorm"
)

type TestService struct {
	TestRepo       *repository.TestRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Gamification   *GamificationService
	Achievements   *AchievementService
	DB             *gorm.DB
}

func NewTestService(
	testRepo *repository.TestRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	gamification *GamificationService,
	achievements *AchievementService,
	db *gorm.DB,
) *TestService {
	return &TestService{
		TestRepo:       testRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		Gamification:   gamification,
		Achievements:   achievements,
		DB:             db,
	}
}

// TestView is a test as a student sees it, with their attempt if one exists.
type TestView struct {
	Test    model.Test         `json:"test"`
	Attempt *model.TestAttempt `json:"attempt,omitempty"`
}

func (s *TestService) ListForUser(userID uint) ([]TestView, error) {
	enrollments, err := s.EnrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]uint, len(enrollments))
	for i, e := range enrollments {
		courseIDs[i] = e.CourseID
	}

	tests, err := s.TestRepo.FindPublishedByCourses(courseIDs)
	if err != nil {
		return nil, err
	}
	return s.viewsFor(userID, tests)
}

// ListForCourse returns one course's published tests with the caller's
// attempts. Enrollment required.
func (s *TestService) ListForCourse(userID, courseID uint) ([]TestView, error) {
	if err := s.requireEnrolled(userID, courseID); err != nil {
		return nil, err
	}

	tests, err := s.TestRepo.FindPublishedByCourse(courseID)
	if err != nil {
		return nil, err
	}
	return s.viewsFor(userID, tests)
}

func (s *TestService) viewsFor(userID uint, tests []model.Test) ([]TestView, error) {
	attempts, err := s.TestRepo.FindAttemptsByUser(userID)
	if err != nil {
		return nil, err
	}
	byTest := make(map[uint]*model.TestAttempt, len(attempts))
	for i := range attempts {
		byTest[attempts[i].TestID] = &attempts[i]
	}

	views := make([]TestView, len(tests))
	for i, t := range tests {
		views[i] = TestView{Test: t, Attempt: byTest[t.ID]}
	}
	return views, nil
}

type TestDetail struct {
	Test      *model.Test          `json:"test"`
	Questions []model.TestQuestion `json:"questions"`
	Attempt   *model.TestAttempt   `json:"attempt,omitempty"`
}

func (s *TestService) Get(userID, testID uint) (*TestDetail, error) {
	test, err := s.loadPublished(testID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEnrolled(userID, test.CourseID); err != nil {
		return nil, err
	}

	questions, err := s.TestRepo.FindQuestions(testID)
	if err != nil {
		return nil, err
	}

	var attempt *model.TestAttempt
	found, err := s.TestRepo.FindAttempt(userID, testID)
	if err == nil {
		attempt = found
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	return &TestDetail{Test: test, Questions: questions, Attempt: attempt}, nil
}

type TestSubmitRequest struct {
	Answers   map[uint]string `json:"answers" binding:"required"`
	StartedAt time.Time       `json:"startedAt" binding:"required"`
}

type TestResult struct {
	Attempt  *model.TestAttempt        `json:"attempt"`
	Answers  []model.TestAttemptAnswer `json:"answers"`
	XPEarned int                       `json:"xpEarned"`
}

// Submit grades a single-attempt test. XP scales with the score and the
// stat bump rides the same transaction as the attempt row; the unique index
// on (user, test) rejects a concurrent second attempt.
func (s *TestService) Submit(userID, testID uint, req TestSubmitRequest) (*TestResult, error) {
	test, err := s.loadPublished(testID)
	if err != nil {
		return nil, err
	}
	if err := s.requireEnrolled(userID, test.CourseID); err != nil {
		return nil, err
	}

	taken, err := s.TestRepo.AttemptExists(userID, testID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrTestAlreadyTaken
	}

	rows, err := s.TestRepo.FindQuestions(testID)
	if err != nil {
		return nil, err
	}
	questions := make([]question, len(rows))
	for i, q := range rows {
		questions[i] = q
	}

	graded, score, total := gradeAnswers(questions, req.Answers)
	pct := percentage(score, total)

	now := time.Now()
	attempt := &model.TestAttempt{
		TestID:      testID,
		UserID:      userID,
		Score:       score,
		TotalPoints: total,
		Percentage:  pct,
		Status:      "completed",
		StartedAt:   req.StartedAt,
		CompletedAt: &now,
	}
	answers := make([]model.TestAttemptAnswer, len(graded))
	for i, g := range graded {
		answers[i] = model.TestAttemptAnswer{
			QuestionID:   g.QuestionID,
			Answer:       g.Answer,
			IsCorrect:    g.IsCorrect,
			PointsEarned: g.PointsEarned,
		}
	}

	xp := XPForTest(pct)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.TestRepo.CreateAttempt(tx, attempt, answers); err != nil {
			if isDuplicateKey(err) {
				return util.ErrTestAlreadyTaken
			}
			return err
		}
		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("tests_completed", gorm.Expr("tests_completed + ?", 1)).
			Error; err != nil {
			return err
		}
		return s.Gamification.AwardInTx(tx, userID, EventTestSubmitted, xp)
	})
	if err != nil {
		return nil, err
	}

	s.Gamification.Publish(userID, EventTestSubmitted, xp)
	_ = s.Achievements.AddProgress(userID, model.AchievementTestsCompleted, 1)

	return &TestResult{Attempt: attempt, Answers: answers, XPEarned: xp}, nil
}

type TestRequest struct {
	CourseID    uint   `json:"courseId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TimeLimit   int    `json:"timeLimit" binding:"min=0"`
}

func (s *TestService) Create(creatorID uint, creatorRole model.UserRole, req TestRequest) (*model.Test, error) {
	if err := s.checkCourseOwner(req.CourseID, creatorID, creatorRole); err != nil {
		return nil, err
	}

	test := &model.Test{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		TimeLimit:   req.TimeLimit,
		CreatorID:   creatorID,
	}
	if err := s.TestRepo.Create(test); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *TestService) AddQuestion(testID, actorID uint, actorRole model.UserRole, req QuestionRequest) (*model.TestQuestion, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkCourseOwner(test.CourseID, actorID, actorRole); err != nil {
		return nil, err
	}

	q := &model.TestQuestion{
		TestID:        testID,
		Content:       req.Content,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
		Order:         req.Order,
		Explanation:   req.Explanation,
	}
	if err := s.TestRepo.CreateQuestion(q); err != nil {
		return nil, err
	}

	if err := s.TestRepo.SetTotalPoints(testID, test.TotalPoints+req.Points); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *TestService) Publish(testID, actorID uint, actorRole model.UserRole) (*model.Test, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkCourseOwner(test.CourseID, actorID, actorRole); err != nil {
		return nil, err
	}

	if !test.IsPublished {
		now := time.Now()
		test.IsPublished = true
		test.PublishedAt = &now
		if err := s.TestRepo.Update(test); err != nil {
			return nil, err
		}
	}
	return test, nil
}

func (s *TestService) loadPublished(testID uint) (*model.Test, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrTestNotFound
	}
	if err != nil {
		return nil, err
	}
	if !test.IsPublished {
		return nil, util.ErrTestNotFound
	}
	return test, nil
}

func (s *TestService) requireEnrolled(userID, courseID uint) error {
	enrolled, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return util.ErrNotEnrolled
	}
	return nil
}

func (s *TestService) checkCourseOwner(courseID, actorID uint, actorRole model.UserRole) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrCourseNotFound
	}
	if err != nil {
		return err
	}
	if actorRole != model.Admin && course.InstructorID != actorID {
		return util.ErrPermissionDenied
	}
	return nil
}
