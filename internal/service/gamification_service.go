package service

import (
	"context"
	"strconv"

	"masomo_backend/internal/model"
	"masomo_backend/internal/repository"
	"masomo_backend/pkg/logger"
	"masomo_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// XPEvent names a qualifying event for experience points.
type XPEvent string

const (
	EventCourseEnrolled      XPEvent = "course_enrolled"
	EventLessonCompleted     XPEvent = "lesson_completed"
	EventCourseCompleted     XPEvent = "course_completed"
	EventAssignmentSubmitted XPEvent = "assignment_submitted"
	EventTestSubmitted       XPEvent = "test_submitted"
	EventFriendAccepted      XPEvent = "friend_accepted"
	EventDailyCheckin        XPEvent = "daily_checkin"
	EventAchievementEarned   XPEvent = "achievement_earned"
)

// Flat XP constants. Formula-based events (assignments, tests) are computed
// by the XPFor* helpers below. Keeping every formula here is deliberate:
// call sites must not embed their own arithmetic.
const (
	xpCourseEnrolled  = 100
	xpLessonCompleted = 25
	xpCourseCompleted = 200
	xpFriendAccepted  = 20
	xpDailyCheckin    = 10

	xpAssignmentBase     = 50
	xpAssignmentBonus    = 25
	xpAssignmentBonusPct = 90

	xpTestPerfectBonus = 50

	xpPerLevel = 200
)

const leaderboardKey = "leaderboard:xp"

// XPForEvent returns the flat award for events without a score component.
func XPForEvent(event XPEvent) int {
	switch event {
	case EventCourseEnrolled:
		return xpCourseEnrolled
	case EventLessonCompleted:
		return xpLessonCompleted
	case EventCourseCompleted:
		return xpCourseCompleted
	case EventFriendAccepted:
		return xpFriendAccepted
	case EventDailyCheckin:
		return xpDailyCheckin
	default:
		return 0
	}
}

// XPForAssignment is a flat base plus a bonus for scores of 90% or better.
func XPForAssignment(pct float64) int {
	xp := xpAssignmentBase
	if pct >= xpAssignmentBonusPct {
		xp += xpAssignmentBonus
	}
	return xp
}

// XPForTest scales with the score percentage, with a perfect-score bonus.
func XPForTest(pct float64) int {
	xp := int(pct / 2)
	if pct >= 100 {
		xp += xpTestPerfectBonus
	}
	return xp
}

// CalculateLevel derives the level and the XP bound of the next level.
func CalculateLevel(xp int) (level int, nextLevelXP int) {
	level = xp / xpPerLevel
	nextLevelXP = (level + 1) * xpPerLevel
	return level, nextLevelXP
}

// GamificationService is the single source of truth for XP. Every award is
// an atomic DB increment plus a leaderboard update; callers never touch the
// xp column directly.
type GamificationService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	ctx      context.Context
}

func NewGamificationService(userRepo *repository.UserRepository, rdb *redis.Client) *GamificationService {
	return &GamificationService{
		UserRepo: userRepo,
		Redis:    rdb,
		ctx:      context.Background(),
	}
}

// Award grants amount XP for event outside any caller transaction.
func (s *GamificationService) Award(userID uint, event XPEvent, amount int) error {
	if amount <= 0 {
		return nil
	}
	if err := s.UserRepo.AddXP(userID, amount); err != nil {
		return err
	}
	s.Publish(userID, event, amount)
	return nil
}

// AwardInTx grants XP as part of the caller's transaction so the award
// commits or rolls back with the triggering write. It touches the database
// only; the caller must Publish the award once its transaction commits,
// otherwise a rollback would leave the leaderboard inflated.
func (s *GamificationService) AwardInTx(tx *gorm.DB, userID uint, event XPEvent, amount int) error {
	if amount <= 0 {
		return nil
	}
	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		Update("xp", gorm.Expr("xp + ?", amount)).
		Error
}

// Publish mirrors a committed award into the metrics counter and the Redis
// leaderboard.
func (s *GamificationService) Publish(userID uint, event XPEvent, amount int) {
	if amount <= 0 {
		return
	}
	monitoring.XPAwarded.WithLabelValues(string(event)).Add(float64(amount))
	if s.Redis != nil {
		if err := s.Redis.ZIncrBy(s.ctx, leaderboardKey, float64(amount), strconv.FormatUint(uint64(userID), 10)).Err(); err != nil {
			logger.Log.Warn("leaderboard update failed", zap.Error(err), zap.Uint("user", userID))
		}
	}
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID uint   `json:"userId"`
	User   string `json:"user"`
	XP     int    `json:"xp"`
	Avatar string `json:"avatar,omitempty"`
}

// GetLeaderboard reads the Redis sorted set and resolves names from the DB,
// falling back to an ORDER BY xp scan when Redis is empty or unavailable.
func (s *GamificationService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.Redis != nil {
		entries, err := s.leaderboardFromRedis(limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
	}
	return s.leaderboardFromDB(limit)
}

func (s *GamificationService) leaderboardFromRedis(limit int) ([]LeaderboardEntry, error) {
	zs, err := s.Redis.ZRevRangeWithScores(s.ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil || len(zs) == 0 {
		return nil, err
	}

	ids := make([]uint, 0, len(zs))
	scores := make(map[uint]int, len(zs))
	for _, z := range zs {
		id, err := strconv.ParseUint(z.Member.(string), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
		scores[uint(id)] = int(z.Score)
	}

	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	entries := make([]LeaderboardEntry, 0, len(ids))
	for i, id := range ids {
		u, ok := byID[id]
		if !ok || u.Disabled {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			UserID: id,
			User:   u.Name,
			XP:     scores[id],
			Avatar: u.Avatar,
		})
	}
	return entries, nil
}

func (s *GamificationService) leaderboardFromDB(limit int) ([]LeaderboardEntry, error) {
	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:   i + 1,
			UserID: user.ID,
			User:   user.Name,
			XP:     user.XP,
			Avatar: user.Avatar,
		}
	}
	return entries, nil
}
