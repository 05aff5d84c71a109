package model

import (
	"time"
)

// CellarSnapshot records a user's cellar size and estimated value at a
// point in time. Snapshots are written by the daily scheduler and feed
// the value-over-time statistic.
type CellarSnapshot struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_snapshot_user_date" json:"user_id"`
	BottleCount  int       `gorm:"not null" json:"bottle_count"`
	TotalValue   float64   `gorm:"not null" json:"total_value"`
	SnapshotDate time.Time `gorm:"not null;index:idx_snapshot_user_date" json:"snapshot_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func (CellarSnapshot) TableName() string {
	return "cellar_snapshots"
}
