// models/poi.go
package models

import "time"

// Business is a point of interest returned by POI discovery. It is not a
// table of its own; result sets are cached as JSON in CachedPOI.
type Business struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	AmenityType   string    `json:"amenity_type"`
	City          string    `json:"city"`
	Coordinates   []float64 `json:"coordinates"` // [lng, lat]
	Cuisine       string    `json:"cuisine,omitempty"`
	OpeningHours  string    `json:"opening_hours,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Website       string    `json:"website,omitempty"`
	DiscountOffer string    `json:"discount_offer,omitempty"`
	CoinsRequired int       `json:"coins_required"`
}

// CachedPOI holds one city+amenity result set for the current day.
type CachedPOI struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	City        string    `gorm:"not null;size:100;uniqueIndex:idx_poi_cache" json:"city"`
	AmenityType string    `gorm:"not null;size:50;uniqueIndex:idx_poi_cache" json:"amenity_type"`
	Data        string    `gorm:"type:text" json:"-"`
	CachedAt    time.Time `json:"cached_at"`
}

func (CachedPOI) TableName() string {
	return "cached_pois"
}
