package repository

import (
	"time"

	"masomo_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

// AddXP applies an atomic increment so two concurrent awards can never lose
// an update the way a read-modify-write of the whole stats row would.
func (r *UserRepository) AddXP(userID uint, xp int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("xp", gorm.Expr("xp + ?", xp)).
		Error
}

// IncrementStat atomically bumps one of the denormalized stat counters.
// column must be one of the fixed stat column names, never user input.
func (r *UserRepository) IncrementStat(userID uint, column string, delta int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update(column, gorm.Expr(column+" + ?", delta)).
		Error
}

// SetStreak overwrites the running streak; streaks reset rather than
// decrement, so an absolute write is correct here.
func (r *UserRepository) SetStreak(userID uint, days int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("study_streak", days).
		Error
}

func (r *UserRepository) FindTopByXP(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("disabled = ?", false).Order("xp DESC").Limit(limit).Find(&users).Error
	return users, err
}

func (r *UserRepository) FindByIDs(ids []uint) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// ResetLapsedStreaks zeroes the streak of everyone without a check-in since
// cutoff. Run periodically so missed days show up without waiting for the
// user's next check-in.
func (r *UserRepository) ResetLapsedStreaks(cutoff time.Time) (int64, error) {
	result := r.DB.Model(&model.User{}).
		Where("study_streak > 0").
		Where("id NOT IN (?)", r.DB.Table("checkins").
			Select("user_id").
			Where("checkin_at >= ?", cutoff)).
		Update("study_streak", 0)
	return result.RowsAffected, result.Error
}

// FindAll is the admin listing: optional name/email search, newest first.
func (r *UserRepository) FindAll(query string, limit, offset int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.DB.Model(&model.User{})
	if query != "" {
		searchTerm := "%" + query + "%"
		db = db.Where("name LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) GetPreferences(userID uint) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	err := r.DB.Where("user_id = ?", userID).First(&prefs).Error
	return &prefs, err
}

func (r *UserRepository) SavePreferences(prefs *model.UserPreferences) error {
	var existing model.UserPreferences
	err := r.DB.Where("user_id = ?", prefs.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(prefs).Error
	}
	if err != nil {
		return err
	}
	prefs.ID = existing.ID
	return r.DB.Save(prefs).Error
}
