// models/achievement.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Achievement categories
const (
	CategoryDistance = "distance"
	CategoryExplorer = "explorer"
	CategorySocial   = "social"
	CategoryBusiness = "business"
	CategoryStreak   = "streak"
	CategoryCoins    = "coins"
)

// Achievement tiers
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// Criterion is a single (metric, threshold) requirement. An achievement is
// satisfied when every criterion holds (AND semantics).
type Criterion struct {
	Metric    string  `json:"metric"`
	Threshold float64 `json:"threshold"`
}

// CriteriaList is stored as a JSON text column.
type CriteriaList []Criterion

func (c CriteriaList) Value() (driver.Value, error) {
	if c == nil {
		c = CriteriaList{}
	}
	return json.Marshal(c)
}

func (c *CriteriaList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = nil
		return nil
	default:
		return errors.New("unsupported type for CriteriaList")
	}
}

// Achievement is a catalog definition. The catalog is seeded once at startup
// and is read-only afterwards.
type Achievement struct {
	ID          string       `gorm:"primaryKey;size:64" json:"id"`
	Name        string       `gorm:"not null;uniqueIndex;size:100" json:"name"`
	Description string       `gorm:"not null" json:"description"`
	Category    string       `gorm:"not null;index;size:20" json:"category"`
	Tier        string       `gorm:"not null;size:20" json:"tier"`
	Icon        string       `gorm:"size:20" json:"icon"`
	Points      int          `gorm:"not null;default:0" json:"points"`
	Criteria    CriteriaList `gorm:"type:text;not null" json:"criteria"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserAchievement records an earned achievement. Name/description/icon/tier/
// category/points are denormalized copies so history survives catalog edits.
// The unique index on (user_id, achievement_id) is the authoritative guard
// against double awards.
type UserAchievement struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        string `gorm:"not null;size:36;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID string `gorm:"not null;size:64;uniqueIndex:idx_user_achievement" json:"achievement_id"`

	Name        string `gorm:"not null;size:100" json:"name"`
	Description string `json:"description"`
	Category    string `gorm:"size:20" json:"category"`
	Tier        string `gorm:"size:20" json:"tier"`
	Icon        string `gorm:"size:20" json:"icon"`
	Points      int    `json:"points"`

	EarnedAt time.Time `json:"earned_at"`
	IsNew    bool      `gorm:"default:true" json:"is_new"`
}

func (Achievement) TableName() string {
	return "achievements"
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
