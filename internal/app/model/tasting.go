package model

import (
	"time"

	"gorm.io/gorm"
)

// Tasting is a dated record of a tasting event. It is independent of
// ownership: a wine can accumulate tastings over time and keeps them
// even after the bottle leaves the cellar. Append-only from the API's
// point of view.
type Tasting struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	UserID            uint           `gorm:"not null;index" json:"user_id"`
	WineID            uint           `gorm:"not null;index" json:"wine_id"`
	Rating            *int           `json:"rating,omitempty"` // 1-5
	TastingDate       time.Time      `gorm:"not null" json:"tasting_date"`
	TastingNotes      string         `gorm:"type:text" json:"tasting_notes,omitempty"`
	ColorNotes        string         `gorm:"type:text" json:"color_notes,omitempty"`
	AromaNotes        string         `gorm:"type:text" json:"aroma_notes,omitempty"`
	TasteNotes        string         `gorm:"type:text" json:"taste_notes,omitempty"`
	FinishNotes       string         `gorm:"type:text" json:"finish_notes,omitempty"`
	OverallImpression string         `gorm:"type:text" json:"overall_impression,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Wine Wine `gorm:"foreignKey:WineID" json:"wine,omitempty"`
}

func (Tasting) TableName() string {
	return "tastings"
}

// CreateTastingRequest is the payload for recording a tasting
type CreateTastingRequest struct {
	WineID            uint       `json:"wine_id" binding:"required"`
	Rating            *int       `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	TastingDate       *time.Time `json:"tasting_date,omitempty"`
	TastingNotes      string     `json:"tasting_notes"`
	ColorNotes        string     `json:"color_notes"`
	AromaNotes        string     `json:"aroma_notes"`
	TasteNotes        string     `json:"taste_notes"`
	FinishNotes       string     `json:"finish_notes"`
	OverallImpression string     `json:"overall_impression"`
}
