// handlers/challenges.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type CreateChallengeRequest struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	TargetDistanceKm float64 `json:"target_distance_km"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	CreatorID        string  `json:"creator_id"`
}

// CreateGroupChallenge creates a distance challenge inside a group
// POST /api/groups/:id/challenges
func CreateGroupChallenge(c *fiber.Ctx) error {
	groupID, err := parseGroupID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid group id"})
	}

	var req CreateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.CreatorID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "creator_id is required"})
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "start_date must be RFC3339"})
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "end_date must be RFC3339"})
	}

	challenge, err := groupService.CreateChallenge(groupID, req.CreatorID,
		req.Name, req.Description, req.TargetDistanceKm, start, end)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"challenge": challenge,
	})
}

// GetGroupChallenges lists a group's challenges
// GET /api/groups/:id/challenges
func GetGroupChallenges(c *fiber.Ctx) error {
	groupID, err := parseGroupID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid group id"})
	}

	challenges, err := groupService.GetGroupChallenges(groupID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch challenges"})
	}
	return c.JSON(fiber.Map{"success": true, "challenges": challenges})
}

// GetChallenge returns a challenge with its participants and progress
// GET /api/challenges/:id
func GetChallenge(c *fiber.Ctx) error {
	challengeID, err := parseChallengeID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid challenge id"})
	}

	challenge, err := groupService.GetChallenge(challengeID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Challenge not found"})
	}
	return c.JSON(fiber.Map{"success": true, "challenge": challenge})
}

// JoinChallenge adds a group member to a challenge
// POST /api/challenges/:id/join?user_id=
func JoinChallenge(c *fiber.Ctx) error {
	challengeID, err := parseChallengeID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid challenge id"})
	}
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "user_id is required"})
	}

	participant, err := groupService.JoinChallenge(challengeID, userID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "participant": participant})
}

func parseChallengeID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}
