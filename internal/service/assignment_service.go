package service

import (
	"time"

	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/util"

	"gorm.io/gorm"
)

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	UserRepo       *repository.UserRepository
	Gamification   *GamificationService
	Achievements   *AchievementService
	DB             *gorm.DB
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
	gamification *GamificationService,
	achievements *AchievementService,
	db *gorm.DB,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		UserRepo:       userRepo,
		Gamification:   gamification,
		Achievements:   achievements,
		DB:             db,
	}
}

// deriveAssignmentStatus maps the absence of a submission to a display
// status. Stored submissions keep their own explicit status; only the
// "nothing submitted yet" states are computed at read time.
func deriveAssignmentStatus(sub *model.Submission, dueDate, now time.Time) string {
	if sub != nil {
		return string(sub.Status)
	}
	if now.After(dueDate) {
		return "overdue"
	}
	return "pending"
}

// AssignmentView is an assignment as a student sees it: the definition plus
// their submission state.
type AssignmentView struct {
	Assignment model.Assignment  `json:"assignment"`
	Status     string            `json:"status"`
	Submission *model.Submission `json:"submission,omitempty"`
}

// ListForUser returns every published assignment across the user's enrolled
// courses with per-assignment status.
func (s *AssignmentService) ListForUser(userID uint) ([]AssignmentView, error) {
	enrollments, err := s.EnrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]uint, len(enrollments))
	for i, e := range enrollments {
		courseIDs[i] = e.CourseID
	}

	assignments, err := s.AssignmentRepo.FindPublishedByCourses(courseIDs)
	if err != nil {
		return nil, err
	}
	return s.viewsFor(userID, assignments)
}

// ListForCourse returns one course's published assignments with the caller's
// per-assignment status. Enrollment required.
func (s *AssignmentService) ListForCourse(userID, courseID uint) ([]AssignmentView, error) {
	enrolled, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	assignments, err := s.AssignmentRepo.FindPublishedByCourse(courseID)
	if err != nil {
		return nil, err
	}
	return s.viewsFor(userID, assignments)
}

func (s *AssignmentService) viewsFor(userID uint, assignments []model.Assignment) ([]AssignmentView, error) {
	subs, err := s.AssignmentRepo.FindSubmissionsByUser(userID)
	if err != nil {
		return nil, err
	}
	byAssignment := make(map[uint]*model.Submission, len(subs))
	for i := range subs {
		byAssignment[subs[i].AssignmentID] = &subs[i]
	}

	now := time.Now()
	views := make([]AssignmentView, len(assignments))
	for i, a := range assignments {
		sub := byAssignment[a.ID]
		views[i] = AssignmentView{
			Assignment: a,
			Status:     deriveAssignmentStatus(sub, a.DueDate, now),
			Submission: sub,
		}
	}
	return views, nil
}

// AssignmentDetail includes the question list. Correct answers never reach
// the wire; the question model hides them from serialization.
type AssignmentDetail struct {
	Assignment *model.Assignment          `json:"assignment"`
	Questions  []model.AssignmentQuestion `json:"questions"`
	Status     string                     `json:"status"`
	Submission *model.Submission          `json:"submission,omitempty"`
}

func (s *AssignmentService) Get(userID, assignmentID uint) (*AssignmentDetail, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !assignment.IsPublished {
		return nil, util.ErrAssignmentNotFound
	}

	enrolled, err := s.EnrollmentRepo.Exists(userID, assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	questions, err := s.AssignmentRepo.FindQuestions(assignmentID)
	if err != nil {
		return nil, err
	}

	var sub *model.Submission
	found, err := s.AssignmentRepo.FindSubmission(userID, assignmentID)
	if err == nil {
		sub = found
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	return &AssignmentDetail{
		Assignment: assignment,
		Questions:  questions,
		Status:     deriveAssignmentStatus(sub, assignment.DueDate, time.Now()),
		Submission: sub,
	}, nil
}

type SubmitRequest struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

// SubmissionResult echoes the graded submission with per-question results so
// the client can show feedback immediately.
type SubmissionResult struct {
	Submission *model.Submission        `json:"submission"`
	Answers    []model.SubmissionAnswer `json:"answers"`
	XPEarned   int                      `json:"xpEarned"`
}

// Submit grades the answers and stores the submission, answers, stat bump
// and XP award in one transaction. A second submit is rejected; the unique
// index on (user, assignment) backs up the pre-check. Submissions after the
// due date are accepted but marked late.
func (s *AssignmentService) Submit(userID, assignmentID uint, req SubmitRequest) (*SubmissionResult, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !assignment.IsPublished {
		return nil, util.ErrAssignmentNotFound
	}

	enrolled, err := s.EnrollmentRepo.Exists(userID, assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	exists, err := s.AssignmentRepo.SubmissionExists(userID, assignmentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadySubmitted
	}

	rows, err := s.AssignmentRepo.FindQuestions(assignmentID)
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
	status := model.SubmissionGraded
	if now.After(assignment.DueDate) {
		status = model.SubmissionLate
	}

	sub := &model.Submission{
		AssignmentID: assignmentID,
		UserID:       userID,
		Score:        score,
		TotalPoints:  total,
		Percentage:   pct,
		Status:       status,
		SubmittedAt:  now,
	}
	answers := make([]model.SubmissionAnswer, len(graded))
	for i, g := range graded {
		answers[i] = model.SubmissionAnswer{
			QuestionID:   g.QuestionID,
			Answer:       g.Answer,
			IsCorrect:    g.IsCorrect,
			PointsEarned: g.PointsEarned,
		}
	}

	xp := XPForAssignment(pct)
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.AssignmentRepo.CreateSubmission(tx, sub, answers); err != nil {
			if isDuplicateKey(err) {
				return util.ErrAlreadySubmitted
			}
			return err
		}
		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("assignments_completed", gorm.Expr("assignments_completed + ?", 1)).
			Error; err != nil {
			return err
		}
		return s.Gamification.AwardInTx(tx, userID, EventAssignmentSubmitted, xp)
	})
	if err != nil {
		return nil, err
	}

	s.Gamification.Publish(userID, EventAssignmentSubmitted, xp)
	_ = s.Achievements.AddProgress(userID, model.AchievementAssignmentsComplete, 1)

	return &SubmissionResult{Submission: sub, Answers: answers, XPEarned: xp}, nil
}

type AssignmentRequest struct {
	CourseID    uint      `json:"courseId" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
}

func (s *AssignmentService) Create(creatorID uint, creatorRole model.UserRole, req AssignmentRequest) (*model.Assignment, error) {
	if err := s.checkCourseOwner(req.CourseID, creatorID, creatorRole); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CreatorID:   creatorID,
	}
	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

type QuestionRequest struct {
	Content       string   `json:"content" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
	Points        int      `json:"points" binding:"required,min=1"`
	Order         int      `json:"order"`
	Explanation   string   `json:"explanation"`
}

func (s *AssignmentService) AddQuestion(assignmentID, actorID uint, actorRole model.UserRole, req QuestionRequest) (*model.AssignmentQuestion, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkCourseOwner(assignment.CourseID, actorID, actorRole); err != nil {
		return nil, err
	}

	q := &model.AssignmentQuestion{
		AssignmentID:  assignmentID,
		Content:       req.Content,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
		Order:         req.Order,
		Explanation:   req.Explanation,
	}
	if err := s.AssignmentRepo.CreateQuestion(q); err != nil {
		return nil, err
	}

	// Keep the denormalized total in step with the question list.
	if err := s.AssignmentRepo.SetTotalPoints(assignmentID, assignment.TotalPoints+req.Points); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssignmentService) Publish(assignmentID, actorID uint, actorRole model.UserRole) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkCourseOwner(assignment.CourseID, actorID, actorRole); err != nil {
		return nil, err
	}

	if !assignment.IsPublished {
		now := time.Now()
		assignment.IsPublished = true
		assignment.PublishedAt = &now
		if err := s.AssignmentRepo.Update(assignment); err != nil {
			return nil, err
		}
	}
	return assignment, nil
}

// ListSubmissions lets the course instructor review every submission for an
// assignment.
func (s *AssignmentService) ListSubmissions(assignmentID, actorID uint, actorRole model.UserRole) ([]model.Submission, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.checkCourseOwner(assignment.CourseID, actorID, actorRole); err != nil {
		return nil, err
	}
	return s.AssignmentRepo.FindSubmissionsByAssignment(assignmentID)
}

func (s *AssignmentService) checkCourseOwner(courseID, actorID uint, actorRole model.UserRole) error {
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
