// handlers/invitations.go
package handlers

import (
	"time"

	"gowalking/database"
	"gowalking/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SendInvitationBody struct {
	ReceiverID string          `json:"receiver_id"`
	RouteName  string          `json:"route_name"`
	StartPoint models.GeoPoint `json:"start_point"`
	EndPoint   models.GeoPoint `json:"end_point"`
	City       string          `json:"city"`
	DistanceKm float64         `json:"distance_km"`
	Message    string          `json:"message"`
}

// SendWalkInvitation invites a friend to walk a route together
// POST /api/walk-invitations?sender_id=
func SendWalkInvitation(c *fiber.Ctx) error {
	senderID := c.Query("sender_id")
	if senderID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "sender_id is required"})
	}

	var req SendInvitationBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ReceiverID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "receiver_id is required"})
	}
	if req.ReceiverID == senderID {
		return c.Status(400).JSON(fiber.Map{"error": "You cannot invite yourself"})
	}

	db := database.GetDB()

	var receiver models.User
	if err := db.First(&receiver, "id = ?", req.ReceiverID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	invitation := models.WalkInvitation{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		RouteName:  req.RouteName,
		StartPoint: req.StartPoint,
		EndPoint:   req.EndPoint,
		City:       req.City,
		DistanceKm: req.DistanceKm,
		Message:    req.Message,
		Status:     models.RequestStatusPending,
	}
	if err := db.Create(&invitation).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to send invitation"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"invitation": invitation,
	})
}

// GetWalkInvitations lists a user's sent and received invitations
// GET /api/walk-invitations/:userID
func GetWalkInvitations(c *fiber.Ctx) error {
	userID := c.Params("userID")
	db := database.GetDB()

	var sent []models.WalkInvitation
	if err := db.Where("sender_id = ?", userID).
		Order("created_at DESC").Find(&sent).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch invitations"})
	}

	var received []models.WalkInvitation
	if err := db.Where("receiver_id = ?", userID).
		Order("created_at DESC").Find(&received).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch invitations"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"sent":     sent,
		"received": received,
	})
}

// RespondWalkInvitation accepts or declines a pending invitation
// POST /api/walk-invitations/respond/:invitationID?action=accept|decline
func RespondWalkInvitation(c *fiber.Ctx) error {
	action := c.Query("action")
	if action != "accept" && action != "decline" {
		return c.Status(400).JSON(fiber.Map{"error": "action must be accept or decline"})
	}

	db := database.GetDB()

	var invitation models.WalkInvitation
	if err := db.First(&invitation, "id = ?", c.Params("invitationID")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Invitation not found"})
	}
	if invitation.Status != models.RequestStatusPending {
		return c.Status(400).JSON(fiber.Map{"error": "Invitation already handled"})
	}

	status := models.RequestStatusDeclined
	if action == "accept" {
		status = models.RequestStatusAccepted
	}
	now := time.Now().UTC()

	if err := db.Model(&models.WalkInvitation{}).Where("id = ?", invitation.ID).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": now,
		}).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to respond to invitation"})
	}

	invitation.Status = status
	invitation.RespondedAt = &now

	return c.JSON(fiber.Map{
		"success":    true,
		"invitation": invitation,
	})
}
