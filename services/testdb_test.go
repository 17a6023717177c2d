// services/testdb_test.go
package services

import (
	"testing"

	"gowalking/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the same duplicate-key
// translation the production connection uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Walk{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Friendship{},
		&models.FriendRequest{},
		&models.WalkInvitation{},
		&models.WalkGroup{},
		&models.GroupMember{},
		&models.GroupChallenge{},
		&models.ChallengeParticipant{},
		&models.CachedPOI{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, id, name string) models.User {
	t.Helper()

	user := models.User{
		ID:    id,
		Name:  name,
		Email: id + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestWalk(t *testing.T, db *gorm.DB, userID, city string, distanceKm float64) models.Walk {
	t.Helper()

	walk := models.Walk{
		ID:         uuid.NewString(),
		UserID:     userID,
		DistanceKm: distanceKm,
		City:       city,
	}
	require.NoError(t, db.Create(&walk).Error)
	return walk
}
