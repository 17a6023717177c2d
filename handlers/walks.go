// handlers/walks.go
package handlers

import (
	"errors"

	"gowalking/services"

	"github.com/gofiber/fiber/v2"
)

// CreateWalk records a completed walk and returns it together with any
// achievements it unlocked
// POST /api/walks
func CreateWalk(c *fiber.Ctx) error {
	var req services.RecordWalkInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.UserID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "user_id is required"})
	}
	if req.DistanceKm <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "distance_km must be positive"})
	}

	walk, newAchievements, err := walkService.RecordWalk(req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record walk"})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"walk":             walk,
		"new_achievements": newAchievements,
	})
}

// GetUserWalks lists a user's walks, newest first
// GET /api/walks/user/:userID
func GetUserWalks(c *fiber.Ctx) error {
	walks, err := walkService.ListByUser(c.Params("userID"), c.QueryInt("limit", 100))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch walks"})
	}

	return c.JSON(walks)
}

// GetLeaderboard returns the top walkers by total distance
// GET /api/walks/leaderboard
func GetLeaderboard(c *fiber.Ctx) error {
	users, err := walkService.Leaderboard(c.QueryInt("limit", 10))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	entries := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		entries = append(entries, fiber.Map{
			"name":              user.Name,
			"total_distance_km": user.TotalDistanceKm,
			"walk_coins":        user.WalkCoins,
		})
	}

	return c.JSON(entries)
}
