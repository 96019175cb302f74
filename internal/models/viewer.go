package models

// Viewer is the request-scoped view of the authenticated user. The id sets
// are resolved once at authentication time (session restore or bearer token
// verification) so handlers never re-derive them per lookup.
type Viewer struct {
	User
	FavoritedRestaurantIDs map[uint]bool
	LikedRestaurantIDs     map[uint]bool
	FollowerIDs            map[uint]bool
	FollowingIDs           map[uint]bool
}

func (v *Viewer) HasFavorited(restaurantID uint) bool {
	return v != nil && v.FavoritedRestaurantIDs[restaurantID]
}

func (v *Viewer) HasLiked(restaurantID uint) bool {
	return v != nil && v.LikedRestaurantIDs[restaurantID]
}

func (v *Viewer) IsFollowing(userID uint) bool {
	return v != nil && v.FollowingIDs[userID]
}
