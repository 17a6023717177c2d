// models/group.go
package models

import "time"

type GroupRole string

const (
	GroupRoleOwner  GroupRole = "owner"
	GroupRoleMember GroupRole = "member"
)

// WalkGroup is a walking group users join via an invite code.
type WalkGroup struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"not null;size:100"`
	Description string        `json:"description" gorm:"type:text"`
	GroupCode   string        `json:"group_code" gorm:"unique;size:10"`
	IsPublic    bool          `json:"is_public" gorm:"default:true"`
	IsActive    bool          `json:"is_active" gorm:"default:true;index"`
	CreatorID   string        `json:"creator_id" gorm:"not null;size:36"`
	Creator     *User         `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Members     []GroupMember `json:"members,omitempty" gorm:"foreignKey:GroupID"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type GroupMember struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	GroupID  uint       `json:"group_id" gorm:"not null;index"`
	Group    *WalkGroup `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	UserID   string     `json:"user_id" gorm:"not null;size:36;index"`
	User     *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Role     GroupRole  `json:"role" gorm:"not null;default:'member'"`
	JoinedAt time.Time  `json:"joined_at" gorm:"not null"`
	IsActive bool       `json:"is_active" gorm:"default:true;index"`
}

func (WalkGroup) TableName() string {
	return "walk_groups"
}

func (GroupMember) TableName() string {
	return "group_members"
}
