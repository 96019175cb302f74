package services

import (
	"errors"
	"fmt"
	"sort"

	"forkful/internal/db"
	"forkful/internal/models"

	"gorm.io/gorm"
)

const topListSize = 10
const topDescriptionLength = 100

// EngagementService owns the Favorite/Like/Followship state machines and
// the viewer-relative rankings. Add is strict: a second add for the same
// pair fails with ErrAlreadyExists rather than no-oping, and the unique
// index is what decides the race between two concurrent adds.
type EngagementService struct{}

func NewEngagementService() *EngagementService {
	return &EngagementService{}
}

// RankedUser is a user decorated with follower count and the viewer's
// follow state for the top-users page.
type RankedUser struct {
	models.User
	FollowerCount int  `json:"followerCount"`
	IsFollowed    bool `json:"isFollowed"`
}

// Profile is the aggregate behind a user's profile page. CommentedRestaurants
// holds each restaurant the user commented on exactly once; its length is
// the profile comment number.
type Profile struct {
	User                 models.User
	FavoritedRestaurants []models.Restaurant
	Followers            []models.User
	Followings           []models.User
	CommentedRestaurants []models.Restaurant
}

func (p *Profile) CommentNumber() int             { return len(p.CommentedRestaurants) }
func (p *Profile) FavoritedRestaurantNumber() int { return len(p.FavoritedRestaurants) }
func (p *Profile) FollowerNumber() int            { return len(p.Followers) }
func (p *Profile) FollowingNumber() int           { return len(p.Followings) }

func (s *EngagementService) AddFavorite(userID, restaurantID uint) error {
	var restaurant models.Restaurant
	if err := db.DB.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: restaurant", ErrNotFound)
		}
		return err
	}

	favorite := models.Favorite{UserID: userID, RestaurantID: restaurantID}
	if err := db.DB.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: you have favorited this restaurant", ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (s *EngagementService) RemoveFavorite(userID, restaurantID uint) error {
	result := db.DB.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: you haven't favorited this restaurant", ErrNotFound)
	}
	return nil
}

func (s *EngagementService) AddLike(userID, restaurantID uint) error {
	var restaurant models.Restaurant
	if err := db.DB.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: restaurant", ErrNotFound)
		}
		return err
	}

	like := models.Like{UserID: userID, RestaurantID: restaurantID}
	if err := db.DB.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: you have liked this restaurant", ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (s *EngagementService) RemoveLike(userID, restaurantID uint) error {
	result := db.DB.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).Delete(&models.Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: you haven't liked this restaurant", ErrNotFound)
	}
	return nil
}

// Follow rejects self-follows outright; the original left that undecided.
func (s *EngagementService) Follow(followerID, followingID uint) error {
	if followerID == followingID {
		return fmt.Errorf("%w: cannot follow yourself", ErrValidation)
	}

	var user models.User
	if err := db.DB.First(&user, followingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user", ErrNotFound)
		}
		return err
	}

	followship := models.Followship{FollowerID: followerID, FollowingID: followingID}
	if err := db.DB.Create(&followship).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: you are already following this user", ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (s *EngagementService) Unfollow(followerID, followingID uint) error {
	result := db.DB.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Followship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: you haven't followed this user", ErrNotFound)
	}
	return nil
}

// Decorate fills the viewer-relative flags on a restaurant slice. A nil
// viewer leaves every flag false.
func (s *EngagementService) Decorate(restaurants []models.Restaurant, viewer *models.Viewer) {
	for i := range restaurants {
		restaurants[i].IsFavorited = viewer.HasFavorited(restaurants[i].ID)
		restaurants[i].IsLiked = viewer.HasLiked(restaurants[i].ID)
	}
}

// TopRestaurants ranks all restaurants by distinct favoriting users,
// descending, ties broken by id ascending, and keeps the first ten with
// descriptions cut to 100 characters.
func (s *EngagementService) TopRestaurants(viewer *models.Viewer) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := db.DB.Preload("Category").Find(&restaurants).Error; err != nil {
		return nil, err
	}

	counts, err := s.favoriteCounts()
	if err != nil {
		return nil, err
	}

	for i := range restaurants {
		restaurants[i].FavoritedCount = counts[restaurants[i].ID]
		restaurants[i].Description = truncate(restaurants[i].Description, topDescriptionLength)
	}
	s.Decorate(restaurants, viewer)

	sort.SliceStable(restaurants, func(i, j int) bool {
		if restaurants[i].FavoritedCount != restaurants[j].FavoritedCount {
			return restaurants[i].FavoritedCount > restaurants[j].FavoritedCount
		}
		return restaurants[i].ID < restaurants[j].ID
	})

	if len(restaurants) > topListSize {
		restaurants = restaurants[:topListSize]
	}
	return restaurants, nil
}

// TopUsers ranks all users by follower count, descending, ties broken by id
// ascending.
func (s *EngagementService) TopUsers(viewer *models.Viewer) ([]RankedUser, error) {
	var users []models.User
	if err := db.DB.Find(&users).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		FollowingID uint
		Count       int
	}
	var rows []countRow
	if err := db.DB.Model(&models.Followship{}).
		Select("following_id, COUNT(*) as count").
		Group("following_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.FollowingID] = r.Count
	}

	ranked := make([]RankedUser, 0, len(users))
	for _, u := range users {
		ranked = append(ranked, RankedUser{
			User:          u,
			FollowerCount: counts[u.ID],
			IsFollowed:    viewer.IsFollowing(u.ID),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].FollowerCount != ranked[j].FollowerCount {
			return ranked[i].FollowerCount > ranked[j].FollowerCount
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked, nil
}

// Feed returns the ten newest restaurants and the ten newest comments as two
// independent lists; no interleaving.
func (s *EngagementService) Feed() ([]models.Restaurant, []models.Comment, error) {
	var restaurants []models.Restaurant
	if err := db.DB.Preload("Category").
		Order("created_at DESC").
		Limit(topListSize).
		Find(&restaurants).Error; err != nil {
		return nil, nil, err
	}

	var comments []models.Comment
	if err := db.DB.Preload("User").Preload("Restaurant").
		Order("created_at DESC").
		Limit(topListSize).
		Find(&comments).Error; err != nil {
		return nil, nil, err
	}

	return restaurants, comments, nil
}

// GetProfile aggregates a user's profile page data. The comment number
// counts distinct restaurants the user commented on, not comment rows.
func (s *EngagementService) GetProfile(userID uint) (*Profile, error) {
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	profile := &Profile{User: user}

	var favorites []models.Favorite
	if err := db.DB.Preload("Restaurant").Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, err
	}
	for _, f := range favorites {
		profile.FavoritedRestaurants = append(profile.FavoritedRestaurants, f.Restaurant)
	}

	if err := db.DB.Select("users.*").
		Joins("JOIN followships ON followships.follower_id = users.id").
		Where("followships.following_id = ?", userID).
		Find(&profile.Followers).Error; err != nil {
		return nil, err
	}

	if err := db.DB.Select("users.*").
		Joins("JOIN followships ON followships.following_id = users.id").
		Where("followships.follower_id = ?", userID).
		Find(&profile.Followings).Error; err != nil {
		return nil, err
	}

	var restaurantIDs []uint
	if err := db.DB.Model(&models.Comment{}).
		Distinct("restaurant_id").
		Where("user_id = ?", userID).
		Pluck("restaurant_id", &restaurantIDs).Error; err != nil {
		return nil, err
	}
	if len(restaurantIDs) > 0 {
		if err := db.DB.Where("id IN ?", restaurantIDs).Find(&profile.CommentedRestaurants).Error; err != nil {
			return nil, err
		}
	}

	return profile, nil
}

func (s *EngagementService) favoriteCounts() (map[uint]int, error) {
	type countRow struct {
		RestaurantID uint
		Count        int
	}
	var rows []countRow
	if err := db.DB.Model(&models.Favorite{}).
		Select("restaurant_id, COUNT(DISTINCT user_id) as count").
		Group("restaurant_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.RestaurantID] = r.Count
	}
	return counts, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
