package repository

import (
	"masomo_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindActiveByType(achievementType model.AchievementType) ([]model.AchievementDefinition, error) {
	var defs []model.AchievementDefinition
	err := r.DB.Where("type = ? AND is_active = ?", achievementType, true).Find(&defs).Error
	return defs, err
}

func (r *AchievementRepository) FindAllDefinitions() ([]model.AchievementDefinition, error) {
	var defs []model.AchievementDefinition
	err := r.DB.Order("type, target").Find(&defs).Error
	return defs, err
}

func (r *AchievementRepository) FindDefinitionByID(id uint) (*model.AchievementDefinition, error) {
	var def model.AchievementDefinition
	err := r.DB.First(&def, id).Error
	return &def, err
}

func (r *AchievementRepository) CreateDefinition(def *model.AchievementDefinition) error {
	return r.DB.Create(def).Error
}

func (r *AchievementRepository) UpdateDefinition(def *model.AchievementDefinition) error {
	return r.DB.Save(def).Error
}

func (r *AchievementRepository) FindUserAchievement(tx *gorm.DB, userID, achievementID uint) (*model.UserAchievement, error) {
	var ua model.UserAchievement
	err := tx.Where("user_id = ? AND achievement_id = ?", userID, achievementID).First(&ua).Error
	return &ua, err
}

func (r *AchievementRepository) CreateUserAchievement(tx *gorm.DB, ua *model.UserAchievement) error {
	return tx.Create(ua).Error
}

func (r *AchievementRepository) SaveUserAchievement(tx *gorm.DB, ua *model.UserAchievement) error {
	return tx.Save(ua).Error
}

func (r *AchievementRepository) FindByUser(userID uint) ([]model.UserAchievement, error) {
	var achievements []model.UserAchievement
	err := r.DB.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("is_completed DESC, progress DESC").
		Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) CountCompleted(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAchievement{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error
	return count, err
}
