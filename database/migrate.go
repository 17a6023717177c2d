// database/migrate.go - Database Migration Runner
package database

import (
	"gowalking/models"
	"log"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes AutoMigrate does not cover
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_distance ON users(total_distance_km DESC)")

	// Walk indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_walks_user ON walks(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_walks_city ON walks(city)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_walks_created ON walks(created_at DESC)")

	// Achievement indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id)")
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_user_achievement ON user_achievements(user_id, achievement_id)")

	// Friend indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_friendships_user1 ON friendships(user1_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_friendships_user2 ON friendships(user2_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_friend_requests_receiver ON friend_requests(receiver_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_friend_requests_sender ON friend_requests(sender_id)")

	// Invitation indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_walk_invitations_sender ON walk_invitations(sender_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_walk_invitations_receiver ON walk_invitations(receiver_id)")

	log.Println("✅ Indexes created successfully")
}
