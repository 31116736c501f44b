package service

import (
	"time"

	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo     *repository.UserRepository
	CheckinRepo  *repository.CheckinRepository
	Gamification *GamificationService
	Achievements *AchievementService
}

func NewUserService(
	userRepo *repository.UserRepository,
	checkinRepo *repository.CheckinRepository,
	gamification *GamificationService,
	achievements *AchievementService,
) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		CheckinRepo:  checkinRepo,
		Gamification: gamification,
		Achievements: achievements,
	}
}

// Profile is the own-profile payload: the account plus lifetime counters
// that live outside the users table.
type Profile struct {
	User          *model.User `json:"user"`
	TotalCheckins int64       `json:"totalCheckins"`
}

func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	checkins, err := s.CheckinRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, TotalCheckins: checkins}, nil
}

type ProfileUpdateRequest struct {
	Name   string `json:"name" binding:"omitempty,min=2,max=100"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
	Grade  string `json:"grade"`
	School string `json:"school"`
}

func (s *UserService) UpdateProfile(userID uint, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	user.Avatar = req.Avatar
	user.Bio = req.Bio
	user.Grade = req.Grade
	user.School = req.School

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

type PreferencesRequest struct {
	Subjects      []string `json:"subjects"`
	Goals         []string `json:"goals"`
	StudyTime     string   `json:"studyTime"`
	Schedule      []string `json:"schedule"`
	Level         string   `json:"level"`
	DailyGoalMins int      `json:"dailyGoalMins" binding:"omitempty,min=5,max=600"`
}

// SavePreferences stores the onboarding questionnaire and marks onboarding
// complete on the first save.
func (s *UserService) SavePreferences(userID uint, req PreferencesRequest) (*model.UserPreferences, error) {
	prefs := &model.UserPreferences{
		UserID:        userID,
		Subjects:      req.Subjects,
		Goals:         req.Goals,
		StudyTime:     req.StudyTime,
		Schedule:      req.Schedule,
		Level:         req.Level,
		DailyGoalMins: req.DailyGoalMins,
	}
	if prefs.DailyGoalMins == 0 {
		prefs.DailyGoalMins = 30
	}
	if err := s.UserRepo.SavePreferences(prefs); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.OnboardingCompleted {
		user.OnboardingCompleted = true
		if err := s.UserRepo.Update(user); err != nil {
			return nil, err
		}
	}
	return prefs, nil
}

func (s *UserService) GetPreferences(userID uint) (*model.UserPreferences, error) {
	prefs, err := s.UserRepo.GetPreferences(userID)
	if err == gorm.ErrRecordNotFound {
		return &model.UserPreferences{UserID: userID, DailyGoalMins: 30}, nil
	}
	return prefs, err
}

// nextStreak computes the consecutive-day count for a check-in today, given
// the previous check-in. A gap of exactly one calendar day extends the
// streak; anything longer resets it to 1.
func nextStreak(previous *model.Checkin, now time.Time) int {
	if previous == nil {
		return 1
	}
	prevDay := time.Date(previous.CheckinAt.Year(), previous.CheckinAt.Month(), previous.CheckinAt.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch int(today.Sub(prevDay).Hours() / 24) {
	case 0:
		return previous.StreakDays
	case 1:
		return previous.StreakDays + 1
	default:
		return 1
	}
}

type CheckinResult struct {
	Checkin    *model.Checkin `json:"checkin"`
	StreakDays int            `json:"streakDays"`
	XPEarned   int            `json:"xpEarned"`
}

// Checkin records today's study day, at most once per calendar day, and
// updates the running streak and its achievements.
func (s *UserService) Checkin(userID uint) (*CheckinResult, error) {
	now := time.Now()

	if _, err := s.CheckinRepo.FindByUserAndDate(userID, now); err == nil {
		return nil, util.ErrAlreadyCheckedIn
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	var previous *model.Checkin
	latest, err := s.CheckinRepo.FindLatestByUser(userID)
	if err == nil {
		previous = latest
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	streak := nextStreak(previous, now)

	checkin := &model.Checkin{
		UserID:     userID,
		CheckinAt:  now,
		StreakDays: streak,
	}
	if err := s.CheckinRepo.Create(checkin); err != nil {
		return nil, err
	}

	if err := s.UserRepo.SetStreak(userID, streak); err != nil {
		return nil, err
	}

	xp := XPForEvent(EventDailyCheckin)
	if err := s.Gamification.Award(userID, EventDailyCheckin, xp); err != nil {
		return nil, err
	}
	_ = s.Achievements.SetProgress(userID, model.AchievementStudyStreak, streak)

	return &CheckinResult{Checkin: checkin, StreakDays: streak, XPEarned: xp}, nil
}

type UserListResult struct {
	Users []model.User `json:"users"`
	Total int64        `json:"total"`
}

func (s *UserService) ListUsers(query string, page, pageSize int) (*UserListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, total, err := s.UserRepo.FindAll(query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &UserListResult{Users: users, Total: total}, nil
}

// SetDisabled suspends or restores an account. A disabled user cannot log
// in and disappears from leaderboards and friend feeds.
func (s *UserService) SetDisabled(userID uint, disabled bool) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user.Disabled = disabled
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole promotes or demotes an account; admin only.
func (s *UserService) SetRole(userID uint, role model.UserRole) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
