package models

import (
	"time"
)

// Followship is directed: follower follows following.
type Followship struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"followerId"`
	FollowingID uint      `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}
