// services/achievements_test.go
package services

import (
	"testing"

	"gowalking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSeedCatalogIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db, DefaultCatalog())

	require.NoError(t, svc.SeedCatalog())
	require.NoError(t, svc.SeedCatalog())

	var count int64
	require.NoError(t, db.Model(&models.Achievement{}).Count(&count).Error)
	assert.Equal(t, int64(len(DefaultCatalog())), count)
}

func TestSnapshotAggregatesWalkStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db, DefaultCatalog())

	user := createTestUser(t, db, "user-1", "Anna")
	createTestWalk(t, db, user.ID, "regensburg", 5)
	createTestWalk(t, db, user.ID, "regensburg", 3)
	createTestWalk(t, db, user.ID, "passau", 4)
	require.NoError(t, db.Model(&user).Updates(map[string]interface{}{
		"total_distance_km": 12.0,
		"walk_coins":        24,
	}).Error)

	snapshot, err := svc.Snapshot(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 3.0, snapshot[MetricWalksCompleted])
	assert.Equal(t, 12.0, snapshot[MetricTotalDistanceKm])
	assert.Equal(t, 2.0, snapshot[MetricCitiesVisited])
	assert.Equal(t, 2.0, snapshot[MetricWalksInSingleCity])
	assert.Equal(t, 24.0, snapshot[MetricTotalCoinsEarned])
	assert.Equal(t, 0.0, snapshot[MetricFriendsCount])
}

func TestSnapshotUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db, DefaultCatalog())

	snapshot, err := svc.Snapshot("nobody")
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}

func TestEvaluateFirstWalk(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db, DefaultCatalog())
	require.NoError(t, svc.SeedCatalog())

	user := createTestUser(t, db, "user-1", "Anna")
	createTestWalk(t, db, user.ID, "regensburg", 12)
	require.NoError(t, db.Model(&user).Updates(map[string]interface{}{
		"total_distance_km": 12.0,
		"walk_coins":        24,
	}).Error)

	newAchievements, err := svc.Evaluate(user.ID)
	require.NoError(t, err)

	// One 12 km walk satisfies first-steps and kilometer-king, nothing else.
	require.Len(t, newAchievements, 2)
	ids := []string{newAchievements[0].AchievementID, newAchievements[1].AchievementID}
	assert.Contains(t, ids, "first-steps")
	assert.Contains(t, ids, "kilometer-king")

	for _, ua := range newAchievements {
		assert.Equal(t, user.ID, ua.UserID)
		assert.True(t, ua.IsNew)
		assert.False(t, ua.EarnedAt.IsZero())
		assert.NotEmpty(t, ua.Name)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db, DefaultCatalog())
	require.NoError(t, svc.SeedCatalog())

	user := createTestUser(t, db, "user-1", "Anna")
	createTestWalk(t, db, user.ID, "regensburg", 12)
	require.NoError(t, db.Model(&user).Update("total_distance_km", 12.0).Error)

	first, err := svc.Evaluate(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := svc.Evaluate(user.ID)
	require.NoError(t, err)
	assert.Empty(t, second)

	var count int64
	require.NoError(t, db.Model(&models.UserAchievement{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(len(first)), count)
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db, DefaultCatalog())

	user := createTestUser(t, db, "user-1", "Anna")
	createTestWalk(t, db, user.ID, "regensburg", 10)
	require.NoError(t, db.Model(&user).Update("total_distance_km", 10.0).Error)

	newAchievements, err := svc.Evaluate(user.ID)
	require.NoError(t, err)

	ids := make([]string, 0, len(newAchievements))
	for _, ua := range newAchievements {
		ids = append(ids, ua.AchievementID)
	}
	// Exactly at the threshold counts as met.
	assert.Contains(t, ids, "kilometer-king")
	assert.NotContains(t, ids, "distance-champion")
}

func TestEvaluateUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db, DefaultCatalog())

	newAchievements, err := svc.Evaluate("nobody")
	require.NoError(t, err)
	assert.Empty(t, newAchievements)
}

func TestEvaluateMultiCriterionRequiresAll(t *testing.T) {
	db := newTestDB(t)

	catalog := []models.Achievement{
		{
			ID:       "all-rounder",
			Name:     "All Rounder",
			Category: models.CategoryDistance,
			Tier:     models.TierGold,
			Points:   100,
			Criteria: models.CriteriaList{
				{Metric: MetricTotalDistanceKm, Threshold: 10},
				{Metric: MetricFriendsCount, Threshold: 1},
			},
		},
	}
	svc := NewAchievementService(db, catalog)

	user := createTestUser(t, db, "user-1", "Anna")
	createTestWalk(t, db, user.ID, "regensburg", 15)
	require.NoError(t, db.Model(&user).Update("total_distance_km", 15.0).Error)

	// Distance satisfied, friends not: no award.
	newAchievements, err := svc.Evaluate(user.ID)
	require.NoError(t, err)
	assert.Empty(t, newAchievements)

	require.NoError(t, db.Create(&models.Friendship{
		ID:      "f-1",
		User1ID: user.ID,
		User2ID: "user-2",
	}).Error)

	newAchievements, err = svc.Evaluate(user.ID)
	require.NoError(t, err)
	require.Len(t, newAchievements, 1)
	assert.Equal(t, "all-rounder", newAchievements[0].AchievementID)
}

func TestEvaluateSwallowsDuplicateKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db, DefaultCatalog())

	user := createTestUser(t, db, "user-1", "Anna")
	createTestWalk(t, db, user.ID, "regensburg", 1)

	// Simulate a concurrent evaluation that already inserted the record but is
	// not yet visible through the earned-id read.
	require.NoError(t, db.Create(&models.UserAchievement{
		UserID:        user.ID,
		AchievementID: "first-steps",
		Name:          "First Steps",
		Category:      models.CategoryDistance,
		Tier:          models.TierBronze,
	}).Error)
	err := db.Create(&models.UserAchievement{
		UserID:        user.ID,
		AchievementID: "first-steps",
	}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	newAchievements, err := svc.Evaluate(user.ID)
	require.NoError(t, err)
	for _, ua := range newAchievements {
		assert.NotEqual(t, "first-steps", ua.AchievementID)
	}
}

func TestProgressReporting(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db, DefaultCatalog())

	user := createTestUser(t, db, "user-1", "Anna")
	createTestWalk(t, db, user.ID, "regensburg", 12)
	require.NoError(t, db.Model(&user).Update("total_distance_km", 12.0).Error)

	_, err := svc.Evaluate(user.ID)
	require.NoError(t, err)

	progress, err := svc.Progress(user.ID)
	require.NoError(t, err)
	require.Len(t, progress, len(DefaultCatalog()))

	byID := make(map[string]AchievementProgress, len(progress))
	for _, entry := range progress {
		byID[entry.ID] = entry
	}

	assert.True(t, byID["first-steps"].Earned)
	assert.Equal(t, 100.0, byID["first-steps"].ProgressPercentage)
	assert.NotNil(t, byID["first-steps"].EarnedAt)
	assert.True(t, byID["first-steps"].IsNew)

	champion := byID["distance-champion"]
	assert.False(t, champion.Earned)
	assert.Equal(t, 12.0, champion.CurrentValue)
	assert.Equal(t, 50.0, champion.TargetValue)
	assert.InDelta(t, 24.0, champion.ProgressPercentage, 0.001)
}

func TestProgressClampedAt100(t *testing.T) {
	db := newTestDB(t)

	catalog := []models.Achievement{
		{
			ID:       "slow-burn",
			Name:     "Slow Burn",
			Category: models.CategoryDistance,
			Tier:     models.TierBronze,
			Criteria: models.CriteriaList{
				{Metric: MetricTotalDistanceKm, Threshold: 10},
				{Metric: MetricFriendsCount, Threshold: 4},
			},
		},
	}
	svc := NewAchievementService(db, catalog)

	user := createTestUser(t, db, "user-1", "Anna")
	require.NoError(t, db.Model(&user).Update("total_distance_km", 80.0).Error)
	require.NoError(t, db.Create(&models.Friendship{
		ID:      "f-1",
		User1ID: user.ID,
		User2ID: "user-2",
	}).Error)

	progress, err := svc.Progress(user.ID)
	require.NoError(t, err)
	require.Len(t, progress, 1)

	// Distance overshoots its threshold but the friends criterion lags at 25%;
	// the entry reports the lagging criterion, never more than 100.
	entry := progress[0]
	assert.False(t, entry.Earned)
	assert.InDelta(t, 25.0, entry.ProgressPercentage, 0.001)
	assert.Equal(t, 1.0, entry.CurrentValue)
	assert.Equal(t, 4.0, entry.TargetValue)
}

func TestProgressZeroThreshold(t *testing.T) {
	db := newTestDB(t)

	catalog := []models.Achievement{
		{
			ID:       "misconfigured",
			Name:     "Misconfigured",
			Category: models.CategoryDistance,
			Tier:     models.TierBronze,
			Criteria: models.CriteriaList{{Metric: MetricTotalDistanceKm, Threshold: 0}},
		},
	}
	svc := NewAchievementService(db, catalog)

	user := createTestUser(t, db, "user-1", "Anna")
	require.NoError(t, db.Model(&user).Update("total_distance_km", 5.0).Error)

	progress, err := svc.Progress(user.ID)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 0.0, progress[0].ProgressPercentage)
}

func TestMarkSeen(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db, DefaultCatalog())

	user := createTestUser(t, db, "user-1", "Anna")
	createTestWalk(t, db, user.ID, "regensburg", 12)
	require.NoError(t, db.Model(&user).Update("total_distance_km", 12.0).Error)

	newAchievements, err := svc.Evaluate(user.ID)
	require.NoError(t, err)
	require.Len(t, newAchievements, 2)

	require.NoError(t, svc.MarkSeen(user.ID, []string{"first-steps"}))

	var records []models.UserAchievement
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&records).Error)
	for _, record := range records {
		if record.AchievementID == "first-steps" {
			assert.False(t, record.IsNew)
		} else {
			assert.True(t, record.IsNew)
		}
	}

	// Empty id list clears everything.
	require.NoError(t, svc.MarkSeen(user.ID, nil))
	var stillNew int64
	require.NoError(t, db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND is_new = ?", user.ID, true).Count(&stillNew).Error)
	assert.Zero(t, stillNew)
}

func TestCriteriaMetEmptyCriteria(t *testing.T) {
	assert.False(t, criteriaMet(models.CriteriaList{}, Snapshot{MetricTotalDistanceKm: 100}))
}
