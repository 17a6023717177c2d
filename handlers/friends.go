// handlers/friends.go
package handlers

import (
	"errors"
	"sort"
	"strings"
	"time"

	"gowalking/database"
	"gowalking/models"
	"gowalking/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SendFriendRequestBody struct {
	ReceiverEmail string `json:"receiver_email"`
}

// SendFriendRequest sends a friend request, addressed by the receiver's email
// POST /api/friends/request?current_user_id=
func SendFriendRequest(c *fiber.Ctx) error {
	currentUserID := c.Query("current_user_id")
	if currentUserID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "current_user_id is required"})
	}

	var req SendFriendRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.ReceiverEmail = strings.ToLower(strings.TrimSpace(req.ReceiverEmail))
	if req.ReceiverEmail == "" {
		return c.Status(400).JSON(fiber.Map{"error": "receiver_email is required"})
	}

	db := database.GetDB()

	var sender models.User
	if err := db.First(&sender, "id = ?", currentUserID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var receiver models.User
	if err := db.First(&receiver, "email = ?", req.ReceiverEmail).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "No user with that email"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to send friend request"})
	}

	if receiver.ID == sender.ID {
		return c.Status(400).JSON(fiber.Map{"error": "You cannot add yourself"})
	}

	var friendCount int64
	db.Model(&models.Friendship{}).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			sender.ID, receiver.ID, receiver.ID, sender.ID).
		Count(&friendCount)
	if friendCount > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Already friends"})
	}

	var pendingCount int64
	db.Model(&models.FriendRequest{}).
		Where("status = ? AND ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))",
			models.RequestStatusPending, sender.ID, receiver.ID, receiver.ID, sender.ID).
		Count(&pendingCount)
	if pendingCount > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Friend request already pending"})
	}

	request := models.FriendRequest{
		ID:         uuid.NewString(),
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Status:     models.RequestStatusPending,
	}
	if err := db.Create(&request).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to send friend request"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"request": request,
	})
}

// RespondFriendRequest accepts or declines a pending friend request
// POST /api/friends/respond/:requestID?action=accept|decline
func RespondFriendRequest(c *fiber.Ctx) error {
	action := c.Query("action")
	if action != "accept" && action != "decline" {
		return c.Status(400).JSON(fiber.Map{"error": "action must be accept or decline"})
	}

	db := database.GetDB()

	var request models.FriendRequest
	if err := db.First(&request, "id = ?", c.Params("requestID")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Friend request not found"})
	}
	if request.Status != models.RequestStatusPending {
		return c.Status(400).JSON(fiber.Map{"error": "Friend request already handled"})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		status := models.RequestStatusDeclined
		if action == "accept" {
			status = models.RequestStatusAccepted
			friendship := models.Friendship{
				ID:      uuid.NewString(),
				User1ID: request.SenderID,
				User2ID: request.ReceiverID,
			}
			if err := tx.Create(&friendship).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.FriendRequest{}).Where("id = ?", request.ID).
			Update("status", status).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to respond to friend request"})
	}

	return c.JSON(fiber.Map{"success": true, "action": action})
}

// GetFriendRequests lists a user's pending requests, incoming and outgoing
// GET /api/friends/requests/:userID
func GetFriendRequests(c *fiber.Ctx) error {
	userID := c.Params("userID")
	db := database.GetDB()

	var incoming []models.FriendRequest
	if err := db.Where("receiver_id = ? AND status = ?", userID, models.RequestStatusPending).
		Order("created_at DESC").Find(&incoming).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch friend requests"})
	}

	var outgoing []models.FriendRequest
	if err := db.Where("sender_id = ? AND status = ?", userID, models.RequestStatusPending).
		Order("created_at DESC").Find(&outgoing).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch friend requests"})
	}

	// Attach sender names so the client can render incoming requests directly.
	entries := make([]fiber.Map, 0, len(incoming))
	for _, req := range incoming {
		var sender models.User
		db.First(&sender, "id = ?", req.SenderID)
		entries = append(entries, fiber.Map{
			"id":           req.ID,
			"sender_id":    req.SenderID,
			"sender_name":  sender.Name,
			"sender_email": sender.Email,
			"created_at":   req.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"incoming": entries,
		"outgoing": outgoing,
	})
}

// GetFriends returns the profiles of a user's friends
// GET /api/friends/:userID
func GetFriends(c *fiber.Ctx) error {
	db := database.GetDB()

	friendIDs, err := services.FriendIDsOf(db, c.Params("userID"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch friends"})
	}

	friends := []models.User{}
	if len(friendIDs) > 0 {
		if err := db.Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch friends"})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"friends": friends,
		"count":   len(friends),
	})
}

// FriendActivityEntry is one item in the merged friends activity feed.
type FriendActivityEntry struct {
	Type      string      `json:"type"`
	UserID    string      `json:"user_id"`
	UserName  string      `json:"user_name"`
	Payload   interface{} `json:"payload"`
	CreatedAt time.Time   `json:"created_at"`
}

// GetFriendsActivity merges the recent walks and achievement unlocks of a
// user's friends into one feed, newest first
// GET /api/friends/activity/:userID
func GetFriendsActivity(c *fiber.Ctx) error {
	db := database.GetDB()

	friendIDs, err := services.FriendIDsOf(db, c.Params("userID"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}
	if len(friendIDs) == 0 {
		return c.JSON(fiber.Map{"success": true, "activity": []FriendActivityEntry{}})
	}

	var friends []models.User
	if err := db.Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}
	names := make(map[string]string, len(friends))
	for _, f := range friends {
		names[f.ID] = f.Name
	}

	var walks []models.Walk
	if err := db.Where("user_id IN ?", friendIDs).
		Order("created_at DESC").Limit(20).Find(&walks).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	var earned []models.UserAchievement
	if err := db.Where("user_id IN ?", friendIDs).
		Order("earned_at DESC").Limit(20).Find(&earned).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch activity"})
	}

	activity := make([]FriendActivityEntry, 0, len(walks)+len(earned))
	for _, w := range walks {
		activity = append(activity, FriendActivityEntry{
			Type:      services.FeedEventWalkCompleted,
			UserID:    w.UserID,
			UserName:  names[w.UserID],
			Payload:   w,
			CreatedAt: w.CreatedAt,
		})
	}
	for _, ua := range earned {
		activity = append(activity, FriendActivityEntry{
			Type:      services.FeedEventAchievementEarned,
			UserID:    ua.UserID,
			UserName:  names[ua.UserID],
			Payload:   ua,
			CreatedAt: ua.EarnedAt,
		})
	}

	sort.Slice(activity, func(i, j int) bool {
		return activity[i].CreatedAt.After(activity[j].CreatedAt)
	})
	if len(activity) > 30 {
		activity = activity[:30]
	}

	return c.JSON(fiber.Map{"success": true, "activity": activity})
}
