package models

import (
	"time"
)

type Restaurant struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Tel          string    `json:"tel"`
	Address      string    `json:"address"`
	OpeningHours string    `json:"openingHours"`
	Description  string    `gorm:"type:text" json:"description"`
	Image        string    `json:"image"`
	ViewCounts   int       `gorm:"column:view_counts;default:0" json:"viewCounts"`
	CategoryID   uint      `gorm:"not null;index" json:"categoryId"`
	Category     Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Filled by the engagement layer when decorating query results.
	FavoritedCount int  `gorm:"-" json:"favoritedCount,omitempty"`
	IsFavorited    bool `gorm:"-" json:"isFavorited"`
	IsLiked        bool `gorm:"-" json:"isLiked"`
}
