package service

import (
	"fmt"

	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/internal/util"
	"masomo_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AchievementService struct {
	AchievementRepo  *repository.AchievementRepository
	UserRepo         *repository.UserRepository
	NotificationRepo *repository.NotificationRepository
	Gamification     *GamificationService
	DB               *gorm.DB
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	gamification *GamificationService,
	db *gorm.DB,
) *AchievementService {
	return &AchievementService{
		AchievementRepo:  achievementRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		Gamification:     gamification,
		DB:               db,
	}
}

// clampProgress applies value to current, never exceeding target, and
// reports whether the target has just been reached.
func clampProgress(current, value, target int) (next int, justCompleted bool) {
	next = current + value
	if next >= target {
		return target, current < target
	}
	if next < 0 {
		next = 0
	}
	return next, false
}

// AddProgress advances every active achievement of the given type for the
// user. Each definition is updated in its own transaction: the progress
// write, the completion flip, the one-shot notification (guarded by the
// notified flag) and the XP reward commit together.
func (s *AchievementService) AddProgress(userID uint, achievementType model.AchievementType, value int) error {
	defs, err := s.AchievementRepo.FindActiveByType(achievementType)
	if err != nil {
		return err
	}

	for _, def := range defs {
		if err := s.applyToDefinition(userID, def, value); err != nil {
			// One failed definition must not block the rest.
			logger.Log.Error("achievement progress update failed",
				zap.Error(err),
				zap.Uint("user", userID),
				zap.Uint("achievement", def.ID))
		}
	}
	return nil
}

// SetProgress moves a user's counter to an absolute value (streaks, study
// time) instead of adding a delta.
func (s *AchievementService) SetProgress(userID uint, achievementType model.AchievementType, value int) error {
	defs, err := s.AchievementRepo.FindActiveByType(achievementType)
	if err != nil {
		return err
	}

	for _, def := range defs {
		var awarded int
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			ua, err := s.loadOrCreate(tx, userID, def.ID)
			if err != nil {
				return err
			}
			delta := value - ua.Progress
			if delta <= 0 {
				return nil
			}
			awarded, err = s.advance(tx, ua, def, delta)
			return err
		})
		if err != nil {
			logger.Log.Error("achievement progress update failed",
				zap.Error(err),
				zap.Uint("user", userID),
				zap.Uint("achievement", def.ID))
			continue
		}
		s.Gamification.Publish(userID, EventAchievementEarned, awarded)
	}
	return nil
}

func (s *AchievementService) applyToDefinition(userID uint, def model.AchievementDefinition, value int) error {
	var awarded int
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		ua, err := s.loadOrCreate(tx, userID, def.ID)
		if err != nil {
			return err
		}
		awarded, err = s.advance(tx, ua, def, value)
		return err
	})
	if err != nil {
		return err
	}
	s.Gamification.Publish(userID, EventAchievementEarned, awarded)
	return nil
}

func (s *AchievementService) loadOrCreate(tx *gorm.DB, userID, achievementID uint) (*model.UserAchievement, error) {
	ua, err := s.AchievementRepo.FindUserAchievement(tx, userID, achievementID)
	if err == gorm.ErrRecordNotFound {
		ua = &model.UserAchievement{
			UserID:        userID,
			AchievementID: achievementID,
		}
		if err := s.AchievementRepo.CreateUserAchievement(tx, ua); err != nil {
			return nil, err
		}
		return ua, nil
	}
	if err != nil {
		return nil, err
	}
	return ua, nil
}

// advance applies the progress delta inside the caller's transaction and
// returns the XP rewarded on completion so the caller can publish it to the
// leaderboard after the commit.
func (s *AchievementService) advance(tx *gorm.DB, ua *model.UserAchievement, def model.AchievementDefinition, value int) (int, error) {
	next, justCompleted := clampProgress(ua.Progress, value, def.Target)
	if next == ua.Progress && !justCompleted {
		return 0, nil
	}

	ua.Progress = next
	if justCompleted {
		ua.IsCompleted = true
	}

	awarded := 0
	if justCompleted && !ua.Notified {
		ua.Notified = true

		notification := &model.Notification{
			UserID: ua.UserID,
			Type:   model.NotificationAchievement,
			Title:  "Achievement unlocked!",
			Body:   fmt.Sprintf("You earned %q: %s", def.Name, def.Description),
		}
		if err := s.NotificationRepo.CreateTx(tx, notification); err != nil {
			return 0, err
		}
		if err := s.Gamification.AwardInTx(tx, ua.UserID, EventAchievementEarned, def.XPReward); err != nil {
			return 0, err
		}
		awarded = def.XPReward
	}

	return awarded, s.AchievementRepo.SaveUserAchievement(tx, ua)
}

type UserAchievements struct {
	TotalXP        int                     `json:"totalXp"`
	CurrentLevel   int                     `json:"currentLevel"`
	NextLevelXP    int                     `json:"nextLevelXp"`
	CompletedCount int64                   `json:"completedCount"`
	Achievements   []model.UserAchievement `json:"achievements"`
	Leaderboard    []LeaderboardEntry      `json:"leaderboard"`
}

func (s *AchievementService) GetUserAchievements(userID uint) (*UserAchievements, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	achievements, err := s.AchievementRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.AchievementRepo.CountCompleted(userID)
	if err != nil {
		return nil, err
	}

	leaderboard, err := s.Gamification.GetLeaderboard(10)
	if err != nil {
		return nil, err
	}

	level, nextLevelXP := CalculateLevel(user.XP)

	return &UserAchievements{
		TotalXP:        user.XP,
		CurrentLevel:   level,
		NextLevelXP:    nextLevelXP,
		CompletedCount: completed,
		Achievements:   achievements,
		Leaderboard:    leaderboard,
	}, nil
}

func (s *AchievementService) ListDefinitions() ([]model.AchievementDefinition, error) {
	return s.AchievementRepo.FindAllDefinitions()
}

type AchievementDefinitionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Type        string `json:"type" binding:"required"`
	Target      int    `json:"target" binding:"required,min=1"`
	XPReward    int    `json:"xpReward" binding:"min=0"`
}

func (s *AchievementService) CreateDefinition(req AchievementDefinitionRequest) (*model.AchievementDefinition, error) {
	def := &model.AchievementDefinition{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Type:        model.AchievementType(req.Type),
		Target:      req.Target,
		XPReward:    req.XPReward,
		IsActive:    true,
	}
	if err := s.AchievementRepo.CreateDefinition(def); err != nil {
		return nil, err
	}
	return def, nil
}

// UpdateDefinition edits an existing rule in place. Lowering the target does
// not retroactively complete achievements; users cross the new target on
// their next progress event.
func (s *AchievementService) UpdateDefinition(id uint, req AchievementDefinitionRequest) (*model.AchievementDefinition, error) {
	def, err := s.AchievementRepo.FindDefinitionByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAchievementNotFound
	}
	if err != nil {
		return nil, err
	}

	def.Name = req.Name
	def.Description = req.Description
	def.Icon = req.Icon
	def.Type = model.AchievementType(req.Type)
	def.Target = req.Target
	def.XPReward = req.XPReward

	if err := s.AchievementRepo.UpdateDefinition(def); err != nil {
		return nil, err
	}
	return def, nil
}

func (s *AchievementService) SetDefinitionActive(id uint, active bool) error {
	return s.DB.Model(&model.AchievementDefinition{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
