package service

import (
	"testing"

	"masomo_backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

// newAchievementService wires an evaluator with all its collaborators onto
// one mocked connection. Redis is nil, so leaderboard publishes degrade to
// the metrics counter only.
func newAchievementService(db *gorm.DB) *AchievementService {
	userRepo := repository.NewUserRepository(db)
	gamification := NewGamificationService(userRepo, nil)
	return NewAchievementService(
		repository.NewAchievementRepository(db),
		userRepo,
		repository.NewNotificationRepository(db),
		gamification,
		db,
	)
}
