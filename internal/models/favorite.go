package models

import (
	"time"
)

// Favorite marks a restaurant a user has favorited. The composite unique
// index is the correctness backstop for concurrent add attempts; the
// duplicate-key error it produces is treated as the authoritative
// already-exists signal.
type Favorite struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index;uniqueIndex:idx_fav_user_restaurant" json:"userId"`
	RestaurantID uint       `gorm:"not null;index;uniqueIndex:idx_fav_user_restaurant" json:"restaurantId"`
	Restaurant   Restaurant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"restaurant"`
	CreatedAt    time.Time  `json:"createdAt"`
}
