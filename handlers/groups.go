// handlers/groups.go
package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
	CreatorID   string `json:"creator_id"`
}

// CreateGroup creates a walking group with the caller as owner
// POST /api/groups
func CreateGroup(c *fiber.Ctx) error {
	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.CreatorID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "creator_id is required"})
	}

	group, err := groupService.CreateGroup(req.Name, req.Description, req.IsPublic, req.CreatorID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"group":   group,
	})
}

// GetPublicGroups lists active public groups
// GET /api/groups/public
func GetPublicGroups(c *fiber.Ctx) error {
	groups, err := groupService.GetPublicGroups(c.QueryInt("limit", 50))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch groups"})
	}
	return c.JSON(fiber.Map{"success": true, "groups": groups})
}

// GetUserGroups lists the groups a user belongs to
// GET /api/groups/user/:userID
func GetUserGroups(c *fiber.Ctx) error {
	groups, err := groupService.GetUserGroups(c.Params("userID"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch groups"})
	}
	return c.JSON(fiber.Map{"success": true, "groups": groups})
}

// GetGroup returns a single group with members
// GET /api/groups/:id
func GetGroup(c *fiber.Ctx) error {
	groupID, err := parseGroupID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid group id"})
	}

	group, err := groupService.GetGroupByID(groupID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Group not found"})
	}
	return c.JSON(fiber.Map{"success": true, "group": group})
}

type JoinGroupRequest struct {
	UserID    string `json:"user_id"`
	GroupCode string `json:"group_code"`
}

// JoinGroup joins a group by its join code
// POST /api/groups/join
func JoinGroup(c *fiber.Ctx) error {
	var req JoinGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID == "" || req.GroupCode == "" {
		return c.Status(400).JSON(fiber.Map{"error": "user_id and group_code are required"})
	}

	group, err := groupService.JoinGroup(req.UserID, req.GroupCode)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "group": group})
}

// LeaveGroup removes the caller from a group
// POST /api/groups/:id/leave?user_id=
func LeaveGroup(c *fiber.Ctx) error {
	groupID, err := parseGroupID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid group id"})
	}
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "user_id is required"})
	}

	if err := groupService.LeaveGroup(userID, groupID); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetGroupMembers lists a group's active members
// GET /api/groups/:id/members
func GetGroupMembers(c *fiber.Ctx) error {
	groupID, err := parseGroupID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid group id"})
	}

	members, err := groupService.GetMembers(groupID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch members"})
	}
	return c.JSON(fiber.Map{"success": true, "members": members})
}

// GetGroupLeaderboard ranks members by distance walked since joining
// GET /api/groups/:id/leaderboard
func GetGroupLeaderboard(c *fiber.Ctx) error {
	groupID, err := parseGroupID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid group id"})
	}

	entries, err := groupService.Leaderboard(groupID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}
	return c.JSON(fiber.Map{"success": true, "leaderboard": entries})
}

func parseGroupID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}
