// models/walk.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// GeoPoint is a [lng, lat] coordinate pair stored as a JSON text column.
type GeoPoint []float64

func (p GeoPoint) Value() (driver.Value, error) {
	if p == nil {
		p = GeoPoint{}
	}
	return json.Marshal(p)
}

func (p *GeoPoint) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil
		return nil
	default:
		return errors.New("unsupported type for GeoPoint")
	}
}

// Walk is a completed walk recorded by a user.
type Walk struct {
	ID              string   `gorm:"primaryKey;size:36" json:"id"`
	UserID          string   `gorm:"not null;size:36;index" json:"user_id"`
	User            *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RouteName       string   `gorm:"size:200" json:"route_name"`
	DistanceKm      float64  `gorm:"not null" json:"distance_km"`
	DurationMinutes int      `json:"duration_minutes"`
	CoinsEarned     int      `json:"coins_earned"`
	StartPoint      GeoPoint `gorm:"type:text" json:"start_point"`
	EndPoint        GeoPoint `gorm:"type:text" json:"end_point"`
	City            string   `gorm:"size:100;index" json:"city"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Walk) TableName() string {
	return "walks"
}
