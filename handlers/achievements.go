// handlers/achievements.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetUserAchievements returns progress for every catalog definition
// GET /api/achievements/:userID
func GetUserAchievements(c *fiber.Ctx) error {
	progress, err := achievementService.Progress(c.Params("userID"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	earned := 0
	for _, entry := range progress {
		if entry.Earned {
			earned++
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": progress,
		"total":        len(progress),
		"earned":       earned,
	})
}

// CheckAchievements runs an explicit evaluation pass for a user
// POST /api/achievements/check/:userID
func CheckAchievements(c *fiber.Ctx) error {
	newAchievements, err := achievementService.Evaluate(c.Params("userID"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check achievements"})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"new_achievements": newAchievements,
	})
}

// MarkAchievementsSeen acknowledges freshly earned achievements
// POST /api/achievements/seen/:userID
func MarkAchievementsSeen(c *fiber.Ctx) error {
	var req struct {
		AchievementIDs []string `json:"achievement_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := achievementService.MarkSeen(c.Params("userID"), req.AchievementIDs); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update achievements"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetAchievementCatalog returns the full catalog
// GET /api/achievements/catalog
func GetAchievementCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievementService.Catalog(),
	})
}
