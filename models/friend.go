// models/friend.go
package models

import "time"

// Friend request status constants
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusDeclined = "declined"
)

// Friendship links two users. User1ID/User2ID are stored in the order the
// friendship was created (sender first); lookups always match either column.
type Friendship struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	User1ID string `gorm:"not null;size:36;index" json:"user1_id"`
	User2ID string `gorm:"not null;size:36;index" json:"user2_id"`

	CreatedAt time.Time `json:"created_at"`
}

// FriendRequest is a pending friend request, addressed by receiver email.
type FriendRequest struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	SenderID   string `gorm:"not null;size:36;index" json:"sender_id"`
	ReceiverID string `gorm:"not null;size:36;index" json:"receiver_id"`
	Status     string `gorm:"default:'pending';size:20" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

func (Friendship) TableName() string {
	return "friendships"
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}
