// services/walks.go - Walk Recording
package services

import (
	"errors"
	"log"
	"math"
	"time"

	"gowalking/metrics"
	"gowalking/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// CalculateCoins converts distance to WalkCoins: 1 coin per 0.5 km.
func CalculateCoins(distanceKm float64) int {
	return int(distanceKm * 2)
}

type RecordWalkInput struct {
	UserID          string          `json:"user_id"`
	RouteName       string          `json:"route_name"`
	DistanceKm      float64         `json:"distance_km"`
	DurationMinutes int             `json:"duration_minutes"`
	StartPoint      models.GeoPoint `json:"start_point"`
	EndPoint        models.GeoPoint `json:"end_point"`
	City            string          `json:"city"`
}

type WalkService struct {
	db           *gorm.DB
	achievements *AchievementService
	feed         *FeedHub
}

func NewWalkService(db *gorm.DB, achievements *AchievementService, feed *FeedHub) *WalkService {
	return &WalkService{db: db, achievements: achievements, feed: feed}
}

// RecordWalk persists a walk, credits the user's coin and distance counters,
// advances any active group-challenge participations, and then runs the
// achievement engine. The achievement pass is deliberately non-fatal: a walk
// is never rolled back because evaluation failed.
func (s *WalkService) RecordWalk(in RecordWalkInput) (*models.Walk, []models.UserAchievement, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", in.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	coins := CalculateCoins(in.DistanceKm)
	walk := models.Walk{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		RouteName:       in.RouteName,
		DistanceKm:      in.DistanceKm,
		DurationMinutes: in.DurationMinutes,
		CoinsEarned:     coins,
		StartPoint:      in.StartPoint,
		EndPoint:        in.EndPoint,
		City:            in.City,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&walk).Error; err != nil {
			return err
		}

		// Atomic increments keep the denormalized counters consistent under
		// concurrent walk posts.
		if err := tx.Model(&models.User{}).Where("id = ?", in.UserID).
			Updates(map[string]interface{}{
				"walk_coins":        gorm.Expr("walk_coins + ?", coins),
				"total_distance_km": gorm.Expr("total_distance_km + ?", in.DistanceKm),
			}).Error; err != nil {
			return err
		}

		return s.advanceChallenges(tx, in.UserID, in.DistanceKm)
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.WalksRecorded.Inc()

	newAchievements, evalErr := s.achievements.Evaluate(in.UserID)
	if evalErr != nil {
		// The walk is already committed; report and move on.
		log.Printf("achievement evaluation failed for user %s: %v", in.UserID, evalErr)
		newAchievements = []models.UserAchievement{}
	}

	s.broadcastWalk(user, walk, newAchievements)

	return &walk, newAchievements, nil
}

// ListByUser returns the user's walks, newest first.
func (s *WalkService) ListByUser(userID string, limit int) ([]models.Walk, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var walks []models.Walk
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&walks).Error
	return walks, err
}

// Leaderboard returns the top walkers by total distance.
func (s *WalkService) Leaderboard(limit int) ([]models.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var users []models.User
	err := s.db.Order("total_distance_km DESC").Limit(limit).Find(&users).Error
	return users, err
}

// advanceChallenges adds the walked distance to the user's participations in
// challenges that are active and inside their date window.
func (s *WalkService) advanceChallenges(tx *gorm.DB, userID string, distanceKm float64) error {
	now := time.Now().UTC()

	activeIDs := tx.Model(&models.GroupChallenge{}).
		Select("id").
		Where("status = ? AND start_date <= ? AND end_date >= ?", models.ChallengeStatusActive, now, now)

	var participants []models.ChallengeParticipant
	if err := tx.Preload("Challenge").
		Where("user_id = ? AND challenge_id IN (?)", userID, activeIDs).
		Find(&participants).Error; err != nil {
		return err
	}

	for i := range participants {
		p := &participants[i]
		p.ProgressKm += distanceKm
		if p.CompletedAt == nil && p.Challenge != nil &&
			p.ProgressKm >= p.Challenge.TargetDistanceKm-1e-9 {
			completed := now
			p.CompletedAt = &completed
		}
		if err := tx.Model(&models.ChallengeParticipant{}).Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"progress_km":  p.ProgressKm,
				"completed_at": p.CompletedAt,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *WalkService) broadcastWalk(user models.User, walk models.Walk, earned []models.UserAchievement) {
	if s.feed == nil {
		return
	}

	friendIDs, err := FriendIDsOf(s.db, user.ID)
	if err != nil {
		log.Printf("feed: failed to resolve friends of %s: %v", user.ID, err)
		return
	}

	s.feed.BroadcastTo(friendIDs, FeedEvent{
		Type:      FeedEventWalkCompleted,
		UserID:    user.ID,
		UserName:  user.Name,
		Payload:   walk,
		CreatedAt: time.Now().UTC(),
	})

	for _, ua := range earned {
		s.feed.BroadcastTo(friendIDs, FeedEvent{
			Type:      FeedEventAchievementEarned,
			UserID:    user.ID,
			UserName:  user.Name,
			Payload:   ua,
			CreatedAt: time.Now().UTC(),
		})
	}
}

// FriendIDsOf returns the ids of everyone the user has a friendship with.
func FriendIDsOf(db *gorm.DB, userID string) ([]string, error) {
	var friendships []models.Friendship
	if err := db.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Find(&friendships).Error; err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(friendships))
	for _, f := range friendships {
		if f.User1ID == userID {
			ids = append(ids, f.User2ID)
		} else {
			ids = append(ids, f.User1ID)
		}
	}
	return ids, nil
}

// RoundKm rounds a distance to 2 decimal places for responses.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
