package service

import (
	"math"

	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	Storage        Storage
	DB             *gorm.DB
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	storage Storage,
	db *gorm.DB,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		Storage:        storage,
		DB:             db,
	}
}

type CourseListResult struct {
	Courses []model.Course `json:"courses"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Pages   int            `json:"pages"`
}

// ListPublished is the public catalog: published courses only, filtered and
// paginated, most popular first.
func (s *CourseService) ListPublished(filter repository.CourseFilter, page, pageSize int) (*CourseListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	courses, total, err := s.CourseRepo.FindPublished(filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &CourseListResult{
		Courses: courses,
		Total:   total,
		Page:    page,
		Pages:   int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// CourseDetail carries the course with its lesson list. Lesson content and
// video URLs are stripped for viewers who are neither enrolled nor staff,
// except for preview lessons.
type CourseDetail struct {
	Course     *model.Course  `json:"course"`
	Lessons    []model.Lesson `json:"lessons"`
	IsEnrolled bool           `json:"isEnrolled"`
}

// Get returns a course for the given viewer. Unpublished courses are visible
// only to their instructor and admins; viewerID 0 means anonymous.
func (s *CourseService) Get(courseID, viewerID uint, viewerRole model.UserRole) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	isStaff := viewerRole == model.Admin || (viewerRole == model.Instructor && course.InstructorID == viewerID)
	if !course.IsPublished && !isStaff {
		return nil, util.ErrCourseNotFound
	}

	lessons, err := s.LessonRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}

	isEnrolled := false
	if viewerID != 0 {
		isEnrolled, err = s.EnrollmentRepo.Exists(viewerID, courseID)
		if err != nil {
			return nil, err
		}
	}

	if !isEnrolled && !isStaff {
		for i := range lessons {
			if !lessons[i].IsPreview {
				lessons[i].Content = ""
				lessons[i].VideoURL = ""
				lessons[i].ResourceURL = ""
			}
		}
	}

	return &CourseDetail{Course: course, Lessons: lessons, IsEnrolled: isEnrolled}, nil
}

// GetLesson enforces sequential access: a lesson is locked until the
// previous lesson in the course is completed. Preview lessons and staff
// bypass the gate.
func (s *CourseService) GetLesson(lessonID, viewerID uint, viewerRole model.UserRole) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	course, err := s.CourseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, err
	}

	isStaff := viewerRole == model.Admin || (viewerRole == model.Instructor && course.InstructorID == viewerID)
	if isStaff || lesson.IsPreview {
		return lesson, nil
	}

	enrolled, err := s.EnrollmentRepo.Exists(viewerID, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	previous, err := s.LessonRepo.FindPrevious(lesson.CourseID, lesson.Order)
	if err == gorm.ErrRecordNotFound {
		return lesson, nil // first lesson is always open
	}
	if err != nil {
		return nil, err
	}

	done, err := s.ProgressRepo.IsLessonCompleted(viewerID, previous.ID)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, util.ErrLessonLocked
	}
	return lesson, nil
}

type CourseRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Subject     string   `json:"subject"`
	Level       string   `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Duration    int      `json:"duration" binding:"min=0"`
	Price       float64  `json:"price" binding:"min=0"`
	Tags        []string `json:"tags"`
}

func (s *CourseService) Create(instructorID uint, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: instructorID,
		Category:     req.Category,
		Subject:      req.Subject,
		Level:        req.Level,
		Duration:     req.Duration,
		Price:        req.Price,
		Tags:         req.Tags,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

// ownedCourse loads a course and checks the actor may modify it.
func (s *CourseService) ownedCourse(courseID, actorID uint, actorRole model.UserRole) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if actorRole != model.Admin && course.InstructorID != actorID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CourseService) Update(courseID, actorID uint, actorRole model.UserRole, req CourseRequest) (*model.Course, error) {
	course, err := s.ownedCourse(courseID, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Category = req.Category
	course.Subject = req.Subject
	course.Level = req.Level
	course.Duration = req.Duration
	course.Price = req.Price
	course.Tags = req.Tags

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) SetPublished(courseID, actorID uint, actorRole model.UserRole, published bool) (*model.Course, error) {
	course, err := s.ownedCourse(courseID, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	course.IsPublished = published
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ListByInstructor(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.FindByInstructor(instructorID)
}

type LessonRequest struct {
	Title       string `json:"title" binding:"required"`
	Order       int    `json:"order" binding:"required,min=1"`
	Duration    int    `json:"duration" binding:"min=0"`
	IsPreview   bool   `json:"isPreview"`
	Content     string `json:"content"`
	VideoURL    string `json:"videoUrl"`
	ResourceURL string `json:"resourceUrl"`
}

func (s *CourseService) AddLesson(courseID, actorID uint, actorRole model.UserRole, req LessonRequest) (*model.Lesson, error) {
	if _, err := s.ownedCourse(courseID, actorID, actorRole); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID:    courseID,
		Title:       req.Title,
		Order:       req.Order,
		Duration:    req.Duration,
		IsPreview:   req.IsPreview,
		Content:     req.Content,
		VideoURL:    req.VideoURL,
		ResourceURL: req.ResourceURL,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}

	s.refreshLessonCount(courseID)
	return lesson, nil
}

func (s *CourseService) UpdateLesson(lessonID, actorID uint, actorRole model.UserRole, req LessonRequest) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(lesson.CourseID, actorID, actorRole); err != nil {
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Order = req.Order
	lesson.Duration = req.Duration
	lesson.IsPreview = req.IsPreview
	lesson.Content = req.Content
	lesson.VideoURL = req.VideoURL
	lesson.ResourceURL = req.ResourceURL

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) DeleteLesson(lessonID, actorID uint, actorRole model.UserRole) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrLessonNotFound
	}
	if err != nil {
		return err
	}
	if _, err := s.ownedCourse(lesson.CourseID, actorID, actorRole); err != nil {
		return err
	}
	if err := s.LessonRepo.Delete(lessonID); err != nil {
		return err
	}

	s.refreshLessonCount(lesson.CourseID)
	return nil
}

// AttachVideo records an uploaded video on a lesson. When the file lives on
// local disk the real duration is probed instead of trusting the client.
func (s *CourseService) AttachVideo(lessonID, actorID uint, actorRole model.UserRole, videoPath string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(lesson.CourseID, actorID, actorRole); err != nil {
		return nil, err
	}

	lesson.VideoURL = videoPath
	if diskPath, ok := s.Storage.LocalPath(videoPath); ok {
		if info, err := util.GetVideoInfo(diskPath); err == nil && info.Duration > 0 {
			lesson.Duration = int(info.Duration/60) + 1
		}
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) refreshLessonCount(courseID uint) {
	if count, err := s.LessonRepo.CountByCourse(courseID); err == nil {
		_ = s.CourseRepo.SetLessonCount(courseID, int(count))
	}
}

// Reset wipes every enrollment and progress record of a course and zeroes
// its student counter, all in one transaction. Admin only; the router
// enforces the role. Returns how many students were unenrolled.
func (s *CourseService) Reset(courseID uint) (int64, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, util.ErrCourseNotFound
		}
		return 0, err
	}

	removed, err := s.EnrollmentRepo.CountByCourse(courseID)
	if err != nil {
		return 0, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.EnrollmentRepo.DeleteByCourse(tx, courseID); err != nil {
			return err
		}
		if err := s.ProgressRepo.DeleteByCourse(tx, courseID); err != nil {
			return err
		}
		return tx.Model(&model.Course{}).
			Where("id = ?", courseID).
			Update("students", 0).Error
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
