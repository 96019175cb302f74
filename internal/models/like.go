package models

import (
	"time"
)

// Like is independent of Favorite; a user can hold either or both toward a
// restaurant.
type Like struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index;uniqueIndex:idx_like_user_restaurant" json:"userId"`
	RestaurantID uint       `gorm:"not null;index;uniqueIndex:idx_like_user_restaurant" json:"restaurantId"`
	Restaurant   Restaurant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"restaurant"`
	CreatedAt    time.Time  `json:"createdAt"`
}
