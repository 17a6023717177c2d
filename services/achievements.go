// services/achievements.go - Achievement Engine
//
// The engine is three reads and one guarded write: aggregate a stat snapshot
// from the user's stored records, diff it against the catalog, persist newly
// satisfied achievements exactly once per user. A unique index on
// (user_id, achievement_id) backstops concurrent evaluations; a duplicate-key
// rejection is treated as "already earned", not an error.
package services

import (
	"errors"
	"time"

	"gowalking/metrics"
	"gowalking/models"

	"gorm.io/gorm"
)

// Snapshot maps metric names to the user's current values. It is computed
// fresh on every call and never persisted.
type Snapshot map[string]float64

// AchievementProgress is one catalog entry annotated with the user's progress.
type AchievementProgress struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	Tier               string     `json:"tier"`
	Icon               string     `json:"icon"`
	Points             int        `json:"points"`
	Earned             bool       `json:"earned"`
	EarnedAt           *time.Time `json:"earned_at,omitempty"`
	IsNew              bool       `json:"is_new,omitempty"`
	ProgressPercentage float64    `json:"progress_percentage"`
	CurrentValue       float64    `json:"current_value"`
	TargetValue        float64    `json:"target_value"`
}

type AchievementService struct {
	db      *gorm.DB
	catalog []models.Achievement
}

// NewAchievementService builds an engine over the given catalog. The catalog
// is injected rather than read from a global so tests can run alternates.
func NewAchievementService(db *gorm.DB, catalog []models.Achievement) *AchievementService {
	return &AchievementService{db: db, catalog: catalog}
}

// Catalog returns the definitions in catalog order.
func (s *AchievementService) Catalog() []models.Achievement {
	return s.catalog
}

// SeedCatalog inserts every catalog definition that is not already present.
// Safe to run on every startup.
func (s *AchievementService) SeedCatalog() error {
	for i := range s.catalog {
		definition := s.catalog[i]

		var count int64
		if err := s.db.Model(&models.Achievement{}).Where("id = ?", definition.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if err := s.db.Create(&definition).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return err
		}
	}
	return nil
}

// Snapshot aggregates the user's current metric values. An unknown user
// yields an empty snapshot and no error; callers treat that as "no
// achievements possible".
func (s *AchievementService) Snapshot(userID string) (Snapshot, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, nil
		}
		return nil, err
	}

	var cities []string
	if err := s.db.Model(&models.Walk{}).Where("user_id = ?", userID).Pluck("city", &cities).Error; err != nil {
		return nil, err
	}

	distinct := make(map[string]int)
	for _, city := range cities {
		distinct[city]++
	}
	maxInCity := 0
	for _, n := range distinct {
		if n > maxInCity {
			maxInCity = n
		}
	}

	var friends int64
	if err := s.db.Model(&models.Friendship{}).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Count(&friends).Error; err != nil {
		return nil, err
	}

	var invitations int64
	if err := s.db.Model(&models.WalkInvitation{}).
		Where("sender_id = ?", userID).
		Count(&invitations).Error; err != nil {
		return nil, err
	}

	return Snapshot{
		MetricWalksCompleted:    float64(len(cities)),
		MetricTotalDistanceKm:   user.TotalDistanceKm,
		MetricCitiesVisited:     float64(len(distinct)),
		MetricWalksInSingleCity: float64(maxInCity),
		MetricFriendsCount:      float64(friends),
		MetricInvitationsSent:   float64(invitations),
		MetricTotalCoinsEarned:  float64(user.WalkCoins),
		MetricBusinessesVisited: 0,
		MetricOffersRedeemed:    0,
		MetricConsecutiveDays:   0,
	}, nil
}

// Evaluate awards every not-yet-earned definition whose criteria the user's
// snapshot satisfies and returns the newly earned records. A second call with
// no intervening state change returns an empty slice.
func (s *AchievementService) Evaluate(userID string) ([]models.UserAchievement, error) {
	snapshot, err := s.Snapshot(userID)
	if err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		// unknown user
		return []models.UserAchievement{}, nil
	}

	var earnedIDs []string
	if err := s.db.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &earnedIDs).Error; err != nil {
		return nil, err
	}
	earned := make(map[string]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	newAchievements := []models.UserAchievement{}
	for i := range s.catalog {
		definition := s.catalog[i]
		if earned[definition.ID] {
			continue
		}
		if !criteriaMet(definition.Criteria, snapshot) {
			continue
		}

		record := models.UserAchievement{
			UserID:        userID,
			AchievementID: definition.ID,
			Name:          definition.Name,
			Description:   definition.Description,
			Category:      definition.Category,
			Tier:          definition.Tier,
			Icon:          definition.Icon,
			Points:        definition.Points,
			EarnedAt:      time.Now().UTC(),
			IsNew:         true,
		}

		if err := s.db.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// lost the race to a concurrent evaluation
				continue
			}
			return nil, err
		}

		newAchievements = append(newAchievements, record)
	}

	if len(newAchievements) > 0 {
		metrics.AchievementsAwarded.Add(float64(len(newAchievements)))
	}

	return newAchievements, nil
}

// Progress reports completion for every catalog definition in catalog order.
// Earned definitions report 100%; the rest report the minimum per-criterion
// percentage, clamped to 100, with the lagging criterion's current and target
// values exposed for display.
func (s *AchievementService) Progress(userID string) ([]AchievementProgress, error) {
	snapshot, err := s.Snapshot(userID)
	if err != nil {
		return nil, err
	}

	var earned []models.UserAchievement
	if err := s.db.Where("user_id = ?", userID).Find(&earned).Error; err != nil {
		return nil, err
	}
	earnedByID := make(map[string]models.UserAchievement, len(earned))
	for _, ua := range earned {
		earnedByID[ua.AchievementID] = ua
	}

	progress := make([]AchievementProgress, 0, len(s.catalog))
	for i := range s.catalog {
		definition := s.catalog[i]

		entry := AchievementProgress{
			ID:          definition.ID,
			Name:        definition.Name,
			Description: definition.Description,
			Category:    definition.Category,
			Tier:        definition.Tier,
			Icon:        definition.Icon,
			Points:      definition.Points,
		}

		current, target, pct := criteriaProgress(definition.Criteria, snapshot)
		entry.CurrentValue = current
		entry.TargetValue = target
		entry.ProgressPercentage = pct

		if ua, ok := earnedByID[definition.ID]; ok {
			entry.Earned = true
			earnedAt := ua.EarnedAt
			entry.EarnedAt = &earnedAt
			entry.IsNew = ua.IsNew
			entry.ProgressPercentage = 100
		}

		progress = append(progress, entry)
	}

	return progress, nil
}

// MarkSeen clears the is_new flag on the given earned achievements. An empty
// id list clears all of the user's flags.
func (s *AchievementService) MarkSeen(userID string, achievementIDs []string) error {
	query := s.db.Model(&models.UserAchievement{}).Where("user_id = ?", userID)
	if len(achievementIDs) > 0 {
		query = query.Where("achievement_id IN ?", achievementIDs)
	}
	return query.Update("is_new", false).Error
}

// criteriaMet checks all criteria against the snapshot (AND semantics).
// Missing metrics count as 0.
func criteriaMet(criteria models.CriteriaList, snapshot Snapshot) bool {
	if len(criteria) == 0 {
		return false
	}
	for _, criterion := range criteria {
		if snapshot[criterion.Metric] < criterion.Threshold {
			return false
		}
	}
	return true
}

// criteriaProgress returns the lagging criterion's current value, its
// threshold, and the overall percentage (minimum across criteria, clamped to
// 100). A zero threshold reports 0% rather than dividing by zero.
func criteriaProgress(criteria models.CriteriaList, snapshot Snapshot) (current, target, pct float64) {
	if len(criteria) == 0 {
		return 0, 0, 0
	}

	pct = -1
	for _, criterion := range criteria {
		value := snapshot[criterion.Metric]

		var p float64
		if criterion.Threshold > 0 {
			p = value / criterion.Threshold * 100
			if p > 100 {
				p = 100
			}
		}

		if pct < 0 || p < pct {
			pct = p
			current = value
			target = criterion.Threshold
		}
	}
	return current, target, pct
}
