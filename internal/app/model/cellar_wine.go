package model

import (
	"time"

	"gorm.io/gorm"
)

// CellarMode distinguishes bottles already tasted from bottles held for
// future tasting
type CellarMode string

const (
	ModeLibrary CellarMode = "library"
	ModeTasted  CellarMode = "tasted"
)

// RemovalReason is the fixed classification required before a bottle is
// removed from a cellar
type RemovalReason string

const (
	ReasonTasted  RemovalReason = "tasted"
	ReasonSold    RemovalReason = "sold"
	ReasonGifted  RemovalReason = "gifted"
	ReasonBroken  RemovalReason = "broken"
	ReasonSpoiled RemovalReason = "spoiled"
	ReasonOther   RemovalReason = "other"
)

// RemovalReasons lists the accepted reasons in display order
func RemovalReasons() []RemovalReason {
	return []RemovalReason{
		ReasonTasted,
		ReasonSold,
		ReasonGifted,
		ReasonBroken,
		ReasonSpoiled,
		ReasonOther,
	}
}

// IsValidRemovalReason reports whether r is one of the fixed reasons
func IsValidRemovalReason(r RemovalReason) bool {
	switch r {
	case ReasonTasted, ReasonSold, ReasonGifted, ReasonBroken, ReasonSpoiled, ReasonOther:
		return true
	}
	return false
}

// CellarWine is a user's ownership row linking to a catalog Wine and
// carrying personal metadata. Removing it never removes the underlying
// Wine or its tastings.
type CellarWine struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	WineID          uint           `gorm:"not null;index" json:"wine_id"`
	IsFavorite      bool           `gorm:"default:false" json:"is_favorite"`
	Quantity        int            `gorm:"default:1" json:"quantity"`
	PurchaseDate    *time.Time     `json:"purchase_date,omitempty"`
	StorageLocation string         `json:"storage_location,omitempty"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
	Mode            CellarMode     `gorm:"type:varchar(10);not null;default:'library'" json:"mode"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Association (loaded with Preload)
	Wine Wine `gorm:"foreignKey:WineID" json:"wine,omitempty"`
}

func (CellarWine) TableName() string {
	return "cellar_wines"
}

// UpdateCellarWineRequest is a partial patch of the ownership fields
type UpdateCellarWineRequest struct {
	IsFavorite      *bool       `json:"is_favorite,omitempty"`
	Quantity        *int        `json:"quantity,omitempty" binding:"omitempty,min=0"`
	PurchaseDate    *time.Time  `json:"purchase_date,omitempty"`
	StorageLocation *string     `json:"storage_location,omitempty"`
	Notes           *string     `json:"notes,omitempty"`
	Mode            *CellarMode `json:"mode,omitempty" binding:"omitempty,oneof=library tasted"`
}

// CellarListQuery carries the view parameters of the cellar listing
type CellarListQuery struct {
	Search string `form:"search"`
	Type   string `form:"type"`
	Sort   string `form:"sort" binding:"omitempty,oneof=name rating vintage price date"`
}
