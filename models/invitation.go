// models/invitation.go
package models

import "time"

// WalkInvitation invites a friend to walk a specific route together.
// The route payload is copied onto the invitation so it stays displayable
// even if the sender never records the walk.
type WalkInvitation struct {
	ID         string   `gorm:"primaryKey;size:36" json:"id"`
	SenderID   string   `gorm:"not null;size:36;index" json:"sender_id"`
	ReceiverID string   `gorm:"not null;size:36;index" json:"receiver_id"`
	RouteName  string   `gorm:"size:200" json:"route_name"`
	StartPoint GeoPoint `gorm:"type:text" json:"start_point"`
	EndPoint   GeoPoint `gorm:"type:text" json:"end_point"`
	City       string   `gorm:"size:100" json:"city"`
	DistanceKm float64  `json:"distance_km"`
	Message    string   `gorm:"size:500" json:"message"`
	Status     string   `gorm:"default:'pending';size:20" json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

func (WalkInvitation) TableName() string {
	return "walk_invitations"
}
