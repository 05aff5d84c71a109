package model

import (
	"time"
)

// ActivityType classifies a community feed entry
type ActivityType string

const (
	ActivityAdded   ActivityType = "added"
	ActivityTasted  ActivityType = "tasted"
	ActivityRemoved ActivityType = "removed"
	ActivityShared  ActivityType = "shared"
)

// CommunityActivity is an append-only feed entry. Rows are written once
// and never updated or deleted; the wine name is denormalized so the
// entry survives removal of the wine itself.
type CommunityActivity struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	ActivityType ActivityType `gorm:"type:varchar(20);not null" json:"activity_type"`
	WineID       *uint        `gorm:"index" json:"wine_id,omitempty"`
	WineName     string       `gorm:"not null" json:"wine_name"`
	Reason       string       `json:"reason,omitempty"`
	Rating       *int         `json:"rating,omitempty"`
	Notes        string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CommunityActivity) TableName() string {
	return "community_activities"
}
