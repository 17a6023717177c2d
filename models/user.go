// models/user.go
package models

import (
	"time"
)

type User struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Name  string `gorm:"not null;size:100" json:"name"`
	Email string `gorm:"uniqueIndex;not null;size:255" json:"email"`

	// Denormalized counters, maintained by the walk-creation path.
	// The achievement aggregator reads these as authoritative.
	WalkCoins       int     `gorm:"default:0" json:"walk_coins"`
	TotalDistanceKm float64 `gorm:"default:0" json:"total_distance_km"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Walks        []Walk            `gorm:"foreignKey:UserID" json:"walks,omitempty"`
	Achievements []UserAchievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
}

func (User) TableName() string {
	return "users"
}
