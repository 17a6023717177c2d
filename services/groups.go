// services/groups.go - Walking Group Business Logic
package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gowalking/models"

	"gorm.io/gorm"
)

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// GroupLeaderboardEntry is one member's ranking inside a group.
type GroupLeaderboardEntry struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
	WalkCount  int     `json:"walk_count"`
}

// ================== GROUP CRUD OPERATIONS ==================

// CreateGroup creates a new walking group with the user as owner
func (s *GroupService) CreateGroup(name, description string, isPublic bool, creatorID string) (*models.WalkGroup, error) {
	if name == "" {
		return nil, errors.New("group name is required")
	}

	group := &models.WalkGroup{
		Name:        name,
		Description: description,
		GroupCode:   s.generateUniqueGroupCode(),
		IsPublic:    isPublic,
		CreatorID:   creatorID,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}

		member := &models.GroupMember{
			GroupID:  group.ID,
			UserID:   creatorID,
			Role:     models.GroupRoleOwner,
			JoinedAt: time.Now(),
			IsActive: true,
		}
		return tx.Create(member).Error
	})

	if err != nil {
		return nil, err
	}

	return group, nil
}

// GetGroupByID retrieves a group with members preloaded
func (s *GroupService) GetGroupByID(groupID uint) (*models.WalkGroup, error) {
	var group models.WalkGroup
	err := s.db.Where("id = ? AND is_active = ?", groupID, true).
		Preload("Members", "is_active = ?", true).
		Preload("Members.User").
		First(&group).Error

	if err != nil {
		return nil, errors.New("group not found")
	}

	return &group, nil
}

// GetPublicGroups lists active public groups
func (s *GroupService) GetPublicGroups(limit int) ([]models.WalkGroup, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var groups []models.WalkGroup
	err := s.db.Where("is_public = ? AND is_active = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&groups).Error
	return groups, err
}

// GetUserGroups retrieves all groups a user is a member of
func (s *GroupService) GetUserGroups(userID string) ([]models.WalkGroup, error) {
	var groups []models.WalkGroup
	err := s.db.Joins("JOIN group_members ON group_members.group_id = walk_groups.id").
		Where("group_members.user_id = ? AND group_members.is_active = ? AND walk_groups.is_active = ?",
			userID, true, true).
		Find(&groups).Error
	return groups, err
}

// ================== MEMBERSHIP OPERATIONS ==================

// JoinGroup adds a user to a group via its join code
func (s *GroupService) JoinGroup(userID, groupCode string) (*models.WalkGroup, error) {
	var group models.WalkGroup
	if err := s.db.Where("group_code = ? AND is_active = ?", groupCode, true).
		First(&group).Error; err != nil {
		return nil, errors.New("group not found or inactive")
	}

	if s.isMember(userID, group.ID) {
		return nil, errors.New("already a member of this group")
	}

	member := &models.GroupMember{
		GroupID:  group.ID,
		UserID:   userID,
		Role:     models.GroupRoleMember,
		JoinedAt: time.Now(),
		IsActive: true,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, err
	}

	return &group, nil
}

// LeaveGroup removes a user from a group
func (s *GroupService) LeaveGroup(userID string, groupID uint) error {
	var member models.GroupMember
	if err := s.db.Where("group_id = ? AND user_id = ? AND is_active = ?", groupID, userID, true).
		First(&member).Error; err != nil {
		return errors.New("not a member of this group")
	}

	if member.Role == models.GroupRoleOwner {
		return errors.New("group owner cannot leave the group")
	}

	return s.db.Model(&member).Update("is_active", false).Error
}

// GetMembers lists a group's active members
func (s *GroupService) GetMembers(groupID uint) ([]models.GroupMember, error) {
	var members []models.GroupMember
	err := s.db.Where("group_id = ? AND is_active = ?", groupID, true).
		Preload("User").
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}

// Leaderboard ranks active members by distance walked since they joined.
func (s *GroupService) Leaderboard(groupID uint) ([]GroupLeaderboardEntry, error) {
	members, err := s.GetMembers(groupID)
	if err != nil {
		return nil, err
	}

	entries := make([]GroupLeaderboardEntry, 0, len(members))
	for _, member := range members {
		var row struct {
			Total float64
			Count int
		}
		if err := s.db.Model(&models.Walk{}).
			Select("COALESCE(SUM(distance_km), 0) AS total, COUNT(*) AS count").
			Where("user_id = ? AND created_at >= ?", member.UserID, member.JoinedAt).
			Scan(&row).Error; err != nil {
			return nil, err
		}

		entry := GroupLeaderboardEntry{
			UserID:     member.UserID,
			DistanceKm: row.Total,
			WalkCount:  row.Count,
		}
		if member.User != nil {
			entry.Name = member.User.Name
		}
		entries = append(entries, entry)
	}

	// Highest distance first
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].DistanceKm > entries[i].DistanceKm {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}

	return entries, nil
}

// ================== CHALLENGE OPERATIONS ==================

// CreateChallenge creates a distance challenge inside a group. The creator
// automatically joins.
func (s *GroupService) CreateChallenge(groupID uint, creatorID, name, description string,
	targetKm float64, start, end time.Time) (*models.GroupChallenge, error) {

	if name == "" {
		return nil, errors.New("challenge name is required")
	}
	if targetKm <= 0 {
		return nil, errors.New("target distance must be positive")
	}
	if !end.After(start) {
		return nil, errors.New("challenge end must be after start")
	}
	if !s.isMember(creatorID, groupID) {
		return nil, errors.New("only group members can create challenges")
	}

	challenge := &models.GroupChallenge{
		GroupID:          groupID,
		Name:             name,
		Description:      description,
		TargetDistanceKm: targetKm,
		StartDate:        start,
		EndDate:          end,
		Status:           models.ChallengeStatusActive,
		CreatedBy:        creatorID,
		CreatedAt:        time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(challenge).Error; err != nil {
			return err
		}
		participant := &models.ChallengeParticipant{
			ChallengeID: challenge.ID,
			UserID:      creatorID,
			JoinedAt:    time.Now(),
		}
		return tx.Create(participant).Error
	})
	if err != nil {
		return nil, err
	}

	return challenge, nil
}

// GetGroupChallenges lists a group's challenges, newest first
func (s *GroupService) GetGroupChallenges(groupID uint) ([]models.GroupChallenge, error) {
	var challenges []models.GroupChallenge
	err := s.db.Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&challenges).Error
	return challenges, err
}

// GetChallenge retrieves a challenge with participants preloaded
func (s *GroupService) GetChallenge(challengeID uint) (*models.GroupChallenge, error) {
	var challenge models.GroupChallenge
	err := s.db.Preload("Participants").
		Preload("Participants.User").
		First(&challenge, challengeID).Error
	if err != nil {
		return nil, errors.New("challenge not found")
	}
	return &challenge, nil
}

// JoinChallenge adds a group member to a challenge
func (s *GroupService) JoinChallenge(challengeID uint, userID string) (*models.ChallengeParticipant, error) {
	var challenge models.GroupChallenge
	if err := s.db.First(&challenge, challengeID).Error; err != nil {
		return nil, errors.New("challenge not found")
	}

	if challenge.Status != models.ChallengeStatusActive {
		return nil, errors.New("challenge is not active")
	}
	if !s.isMember(userID, challenge.GroupID) {
		return nil, errors.New("only group members can join this challenge")
	}

	var count int64
	s.db.Model(&models.ChallengeParticipant{}).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Count(&count)
	if count > 0 {
		return nil, errors.New("already participating in this challenge")
	}

	participant := &models.ChallengeParticipant{
		ChallengeID: challengeID,
		UserID:      userID,
		JoinedAt:    time.Now(),
	}
	if err := s.db.Create(participant).Error; err != nil {
		return nil, err
	}

	return participant, nil
}

// ================== HELPERS ==================

func (s *GroupService) isMember(userID string, groupID uint) bool {
	var count int64
	s.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ? AND is_active = ?", groupID, userID, true).
		Count(&count)
	return count > 0
}

// generateUniqueGroupCode generates a unique 8-character hex join code
func (s *GroupService) generateUniqueGroupCode() string {
	for {
		bytes := make([]byte, 4)
		rand.Read(bytes)
		code := hex.EncodeToString(bytes)[:8]

		var count int64
		s.db.Model(&models.WalkGroup{}).Where("group_code = ?", code).Count(&count)

		if count == 0 {
			return code
		}
	}
}
