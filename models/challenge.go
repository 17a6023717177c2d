// models/challenge.go - Group Challenge Data Models
package models

import (
	"time"
)

// Challenge status constants
type ChallengeStatus string

const (
	ChallengeStatusPending   ChallengeStatus = "pending"
	ChallengeStatusActive    ChallengeStatus = "active"
	ChallengeStatusCompleted ChallengeStatus = "completed"
	ChallengeStatusCancelled ChallengeStatus = "cancelled"
)

// GroupChallenge is a distance goal a group walks toward within a time window.
type GroupChallenge struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	GroupID          uint            `json:"group_id" gorm:"not null;index"`
	Group            *WalkGroup      `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	Name             string          `json:"name" gorm:"not null;size:100"`
	Description      string          `json:"description" gorm:"type:text"`
	TargetDistanceKm float64         `json:"target_distance_km" gorm:"not null"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	Status           ChallengeStatus `json:"status" gorm:"not null;default:'active';index"`
	CreatedBy        string          `json:"created_by" gorm:"not null;size:36"`
	CreatedAt        time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Participants []ChallengeParticipant `json:"participants,omitempty" gorm:"foreignKey:ChallengeID"`
}

// ChallengeParticipant tracks one user's progress inside a challenge.
// ProgressKm is incremented by the walk-creation path while the challenge
// window is open.
type ChallengeParticipant struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ChallengeID uint            `json:"challenge_id" gorm:"not null;index"`
	Challenge   *GroupChallenge `json:"challenge,omitempty" gorm:"foreignKey:ChallengeID"`
	UserID      string          `json:"user_id" gorm:"not null;size:36;index"`
	User        *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ProgressKm  float64         `json:"progress_km" gorm:"default:0"`
	JoinedAt    time.Time       `json:"joined_at" gorm:"not null"`
	CompletedAt *time.Time      `json:"completed_at"`
}

func (GroupChallenge) TableName() string {
	return "group_challenges"
}

func (ChallengeParticipant) TableName() string {
	return "challenge_participants"
}
