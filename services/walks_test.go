// services/walks_test.go
package services

import (
	"testing"
	"time"

	"gowalking/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCoins(t *testing.T) {
	assert.Equal(t, 0, CalculateCoins(0))
	assert.Equal(t, 1, CalculateCoins(0.5))
	assert.Equal(t, 2, CalculateCoins(1.0))
	assert.Equal(t, 24, CalculateCoins(12.0))
	assert.Equal(t, 6, CalculateCoins(3.4)) // truncates, never rounds up
}

func TestRecordWalkCreditsCounters(t *testing.T) {
	db := newTestDB(t)
	achievements := NewAchievementService(db, DefaultCatalog())
	svc := NewWalkService(db, achievements, nil)

	user := createTestUser(t, db, "user-1", "Anna")

	walk, newAchievements, err := svc.RecordWalk(RecordWalkInput{
		UserID:          user.ID,
		RouteName:       "Danube loop",
		DistanceKm:      12,
		DurationMinutes: 144,
		StartPoint:      models.GeoPoint{12.0974, 49.0134},
		EndPoint:        models.GeoPoint{12.1016, 49.0180},
		City:            "regensburg",
	})
	require.NoError(t, err)
	require.NotNil(t, walk)
	assert.Equal(t, 24, walk.CoinsEarned)

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	assert.Equal(t, 24, updated.WalkCoins)
	assert.Equal(t, 12.0, updated.TotalDistanceKm)

	// First walk over 10 km unlocks two distance achievements right away.
	ids := make([]string, 0, len(newAchievements))
	for _, ua := range newAchievements {
		ids = append(ids, ua.AchievementID)
	}
	assert.ElementsMatch(t, []string{"first-steps", "kilometer-king"}, ids)
}

func TestRecordWalkAccumulates(t *testing.T) {
	db := newTestDB(t)
	achievements := NewAchievementService(db, DefaultCatalog())
	svc := NewWalkService(db, achievements, nil)

	user := createTestUser(t, db, "user-1", "Anna")

	for i := 0; i < 3; i++ {
		_, _, err := svc.RecordWalk(RecordWalkInput{
			UserID:     user.ID,
			DistanceKm: 4,
			City:       "passau",
		})
		require.NoError(t, err)
	}

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	assert.Equal(t, 24, updated.WalkCoins)
	assert.Equal(t, 12.0, updated.TotalDistanceKm)

	walks, err := svc.ListByUser(user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, walks, 3)
}

func TestRecordWalkSurvivesEvaluationFailure(t *testing.T) {
	db := newTestDB(t)
	achievements := NewAchievementService(db, DefaultCatalog())
	svc := NewWalkService(db, achievements, nil)

	user := createTestUser(t, db, "user-1", "Anna")

	// Break the award store so the evaluation pass fails after the walk
	// transaction commits.
	require.NoError(t, db.Migrator().DropTable(&models.UserAchievement{}))

	walk, newAchievements, err := svc.RecordWalk(RecordWalkInput{
		UserID:     user.ID,
		DistanceKm: 12,
		City:       "regensburg",
	})
	require.NoError(t, err)
	require.NotNil(t, walk)
	assert.Empty(t, newAchievements)

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	assert.Equal(t, 12.0, updated.TotalDistanceKm)
}

func TestRecordWalkUnknownUser(t *testing.T) {
	db := newTestDB(t)
	achievements := NewAchievementService(db, DefaultCatalog())
	svc := NewWalkService(db, achievements, nil)

	_, _, err := svc.RecordWalk(RecordWalkInput{
		UserID:     "nobody",
		DistanceKm: 5,
		City:       "regensburg",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecordWalkAdvancesChallenge(t *testing.T) {
	db := newTestDB(t)
	achievements := NewAchievementService(db, DefaultCatalog())
	walks := NewWalkService(db, achievements, nil)
	groups := NewGroupService(db)

	user := createTestUser(t, db, "user-1", "Anna")

	group, err := groups.CreateGroup("Morning Walkers", "", true, user.ID)
	require.NoError(t, err)

	now := time.Now().UTC()
	challenge, err := groups.CreateChallenge(group.ID, user.ID, "10k week", "",
		10, now.Add(-time.Hour), now.Add(7*24*time.Hour))
	require.NoError(t, err)

	_, _, err = walks.RecordWalk(RecordWalkInput{
		UserID:     user.ID,
		DistanceKm: 4,
		City:       "regensburg",
	})
	require.NoError(t, err)

	var participant models.ChallengeParticipant
	require.NoError(t, db.Where("challenge_id = ? AND user_id = ?", challenge.ID, user.ID).
		First(&participant).Error)
	assert.Equal(t, 4.0, participant.ProgressKm)
	assert.Nil(t, participant.CompletedAt)

	_, _, err = walks.RecordWalk(RecordWalkInput{
		UserID:     user.ID,
		DistanceKm: 6,
		City:       "regensburg",
	})
	require.NoError(t, err)

	require.NoError(t, db.Where("challenge_id = ? AND user_id = ?", challenge.ID, user.ID).
		First(&participant).Error)
	assert.Equal(t, 10.0, participant.ProgressKm)
	assert.NotNil(t, participant.CompletedAt)
}

func TestRecordWalkIgnoresExpiredChallenge(t *testing.T) {
	db := newTestDB(t)
	achievements := NewAchievementService(db, DefaultCatalog())
	walks := NewWalkService(db, achievements, nil)
	groups := NewGroupService(db)

	user := createTestUser(t, db, "user-1", "Anna")

	group, err := groups.CreateGroup("Morning Walkers", "", true, user.ID)
	require.NoError(t, err)

	now := time.Now().UTC()
	challenge, err := groups.CreateChallenge(group.ID, user.ID, "last week", "",
		10, now.Add(-14*24*time.Hour), now.Add(-7*24*time.Hour))
	require.NoError(t, err)

	_, _, err = walks.RecordWalk(RecordWalkInput{
		UserID:     user.ID,
		DistanceKm: 4,
		City:       "regensburg",
	})
	require.NoError(t, err)

	var participant models.ChallengeParticipant
	require.NoError(t, db.Where("challenge_id = ? AND user_id = ?", challenge.ID, user.ID).
		First(&participant).Error)
	assert.Equal(t, 0.0, participant.ProgressKm)
}

func TestLeaderboardOrder(t *testing.T) {
	db := newTestDB(t)
	achievements := NewAchievementService(db, DefaultCatalog())
	svc := NewWalkService(db, achievements, nil)

	for _, u := range []struct {
		id       string
		distance float64
	}{
		{"user-1", 5},
		{"user-2", 50},
		{"user-3", 20},
	} {
		user := createTestUser(t, db, u.id, u.id)
		require.NoError(t, db.Model(&user).Update("total_distance_km", u.distance).Error)
	}

	users, err := svc.Leaderboard(2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user-2", users[0].ID)
	assert.Equal(t, "user-3", users[1].ID)
}

func TestFriendIDsOf(t *testing.T) {
	db := newTestDB(t)

	createTestUser(t, db, "user-1", "Anna")
	createTestUser(t, db, "user-2", "Ben")
	createTestUser(t, db, "user-3", "Cleo")

	require.NoError(t, db.Create(&models.Friendship{ID: "f-1", User1ID: "user-1", User2ID: "user-2"}).Error)
	require.NoError(t, db.Create(&models.Friendship{ID: "f-2", User1ID: "user-3", User2ID: "user-1"}).Error)

	ids, err := FriendIDsOf(db, "user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user-2", "user-3"}, ids)

	ids, err = FriendIDsOf(db, "user-2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user-1"}, ids)
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 4.0, RoundKm(4.00217))
	assert.Equal(t, 12.35, RoundKm(12.345))
	assert.Equal(t, 0.0, RoundKm(0))
}
