package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// WineType classifies a catalog entry
type WineType string

const (
	TypeRed       WineType = "red"
	TypeWhite     WineType = "white"
	TypeRose      WineType = "rose"
	TypeSparkling WineType = "sparkling"
	TypeDessert   WineType = "dessert"
)

// IsValidWineType reports whether t is one of the known wine types
func IsValidWineType(t WineType) bool {
	switch t {
	case TypeRed, TypeWhite, TypeRose, TypeSparkling, TypeDessert:
		return true
	}
	return false
}

// Wine is the shared catalog description of a bottle, independent of any
// one user's cellar. Every add creates a new row; the catalog is not
// deduplicated by name or vintage.
type Wine struct {
	ID      uint     `gorm:"primarykey" json:"id"`
	Name    string   `gorm:"not null" json:"name"`
	Type    WineType `gorm:"type:varchar(20);not null" json:"type"`
	Vintage string   `json:"vintage,omitempty"`
	Country string   `json:"country,omitempty"`
	Region  string   `json:"region,omitempty"`
	Winery  string   `json:"winery,omitempty"`

	// Price is free text as entered by the user (e.g. "€45"), not a
	// numeric currency column.
	Price          string         `json:"price,omitempty"`
	ImageURL       string         `json:"image_url,omitempty"`
	GrapeVarieties pq.StringArray `gorm:"type:text[]" json:"grape_varieties,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Wine) TableName() string {
	return "wines"
}

// AddWineRequest is the payload for adding a bottle to the cellar. It
// creates the catalog row and the cellar row in one call.
type AddWineRequest struct {
	Name           string   `json:"name" binding:"required"`
	Type           WineType `json:"type" binding:"required,oneof=red white rose sparkling dessert"`
	Vintage        string   `json:"vintage"`
	Country        string   `json:"country"`
	Region         string   `json:"region"`
	Winery         string   `json:"winery"`
	Price          string   `json:"price"`
	ImageURL       string   `json:"image_url"`
	GrapeVarieties []string `json:"grape_varieties"`

	// Cellar-row fields
	Quantity        int    `json:"quantity"`
	StorageLocation string `json:"storage_location"`
	Notes           string `json:"notes"`
}
