package services

import (
	"fmt"
	"strings"
	"testing"

	"forkful/internal/db"
	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteStateMachine(t *testing.T) {
	setupTestDB(t)
	engagement := NewEngagementService()
	auth := NewAuthService("test-secret", 0)

	user := createUser(t, "alice")
	category := createCategory(t, "Japanese cuisine")
	restaurant := createRestaurant(t, "Sushi Place", category.ID)

	// remove before add fails with NotFound
	err := engagement.RemoveFavorite(user.ID, restaurant.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// add succeeds and the flag flips
	require.NoError(t, engagement.AddFavorite(user.ID, restaurant.ID))
	viewer, err := auth.LoadViewer(user.ID)
	require.NoError(t, err)
	assert.True(t, viewer.HasFavorited(restaurant.ID))

	// double add fails with AlreadyExists, no no-op retries
	err = engagement.AddFavorite(user.ID, restaurant.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// remove succeeds and the flag flips back
	require.NoError(t, engagement.RemoveFavorite(user.ID, restaurant.ID))
	viewer, err = auth.LoadViewer(user.ID)
	require.NoError(t, err)
	assert.False(t, viewer.HasFavorited(restaurant.ID))

	// adding against a missing restaurant fails with NotFound
	err = engagement.AddFavorite(user.ID, restaurant.ID+999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeIsIndependentOfFavorite(t *testing.T) {
	setupTestDB(t)
	engagement := NewEngagementService()
	auth := NewAuthService("test-secret", 0)

	user := createUser(t, "bob")
	category := createCategory(t, "Italian cuisine")
	restaurant := createRestaurant(t, "Pasta Place", category.ID)

	require.NoError(t, engagement.AddLike(user.ID, restaurant.ID))

	viewer, err := auth.LoadViewer(user.ID)
	require.NoError(t, err)
	assert.True(t, viewer.HasLiked(restaurant.ID))
	assert.False(t, viewer.HasFavorited(restaurant.ID))

	err = engagement.AddLike(user.ID, restaurant.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	require.NoError(t, engagement.RemoveLike(user.ID, restaurant.ID))
	err = engagement.RemoveLike(user.ID, restaurant.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowshipStateMachine(t *testing.T) {
	setupTestDB(t)
	engagement := NewEngagementService()
	auth := NewAuthService("test-secret", 0)

	follower := createUser(t, "carol")
	followed := createUser(t, "dave")

	// self-follow is rejected outright
	err := engagement.Follow(follower.ID, follower.ID)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, engagement.Follow(follower.ID, followed.ID))

	err = engagement.Follow(follower.ID, followed.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// the relation is directed
	viewer, err := auth.LoadViewer(follower.ID)
	require.NoError(t, err)
	assert.True(t, viewer.IsFollowing(followed.ID))
	assert.False(t, viewer.FollowerIDs[followed.ID])

	other, err := auth.LoadViewer(followed.ID)
	require.NoError(t, err)
	assert.True(t, other.FollowerIDs[follower.ID])
	assert.False(t, other.IsFollowing(follower.ID))

	require.NoError(t, engagement.Unfollow(follower.ID, followed.ID))
	err = engagement.Unfollow(follower.ID, followed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = engagement.Follow(follower.ID, followed.ID+999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTopRestaurants(t *testing.T) {
	setupTestDB(t)
	engagement := NewEngagementService()

	category := createCategory(t, "American cuisine")

	users := make([]*models.User, 5)
	for i := range users {
		users[i] = createUser(t, fmt.Sprintf("user%d", i))
	}

	// 12 restaurants; restaurant i gets a favorite from users[0..i%5-1]
	restaurants := make([]*models.Restaurant, 12)
	for i := range restaurants {
		restaurants[i] = createRestaurant(t, fmt.Sprintf("restaurant%d", i), category.ID)
		for j := 0; j < i%5; j++ {
			require.NoError(t, engagement.AddFavorite(users[j].ID, restaurants[i].ID))
		}
	}
	// restaurant 3 has a long description
	longDescription := strings.Repeat("x", 250)
	require.NoError(t, db.DB.Model(restaurants[3]).Update("description", longDescription).Error)

	top, err := engagement.TopRestaurants(nil)
	require.NoError(t, err)

	assert.Len(t, top, 10)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].FavoritedCount, top[i].FavoritedCount, "descending by favorite count")
		if top[i-1].FavoritedCount == top[i].FavoritedCount {
			assert.Less(t, top[i-1].ID, top[i].ID, "ties broken by id ascending")
		}
	}
	for _, r := range top {
		assert.LessOrEqual(t, len([]rune(r.Description)), 100)
	}

	// restaurants 4 and 9 have four favorites each; 4 ranks first by id
	assert.Equal(t, restaurants[4].ID, top[0].ID)
	assert.Equal(t, restaurants[9].ID, top[1].ID)
	assert.Equal(t, 4, top[0].FavoritedCount)
}

func TestTopRestaurantsViewerFlags(t *testing.T) {
	setupTestDB(t)
	engagement := NewEngagementService()
	auth := NewAuthService("test-secret", 0)

	user := createUser(t, "erin")
	category := createCategory(t, "Korean cuisine")
	favorited := createRestaurant(t, "Favorited", category.ID)
	ignored := createRestaurant(t, "Ignored", category.ID)

	require.NoError(t, engagement.AddFavorite(user.ID, favorited.ID))

	viewer, err := auth.LoadViewer(user.ID)
	require.NoError(t, err)

	top, err := engagement.TopRestaurants(viewer)
	require.NoError(t, err)
	require.Len(t, top, 2)

	byID := map[uint]models.Restaurant{}
	for _, r := range top {
		byID[r.ID] = r
	}
	assert.True(t, byID[favorited.ID].IsFavorited)
	assert.False(t, byID[ignored.ID].IsFavorited)
}

func TestTopUsers(t *testing.T) {
	setupTestDB(t)
	engagement := NewEngagementService()
	auth := NewAuthService("test-secret", 0)

	popular := createUser(t, "popular")
	middling := createUser(t, "middling")
	nobody := createUser(t, "nobody")
	fans := []*models.User{createUser(t, "fan1"), createUser(t, "fan2")}

	for _, fan := range fans {
		require.NoError(t, engagement.Follow(fan.ID, popular.ID))
	}
	require.NoError(t, engagement.Follow(fans[0].ID, middling.ID))

	viewer, err := auth.LoadViewer(fans[0].ID)
	require.NoError(t, err)

	ranked, err := engagement.TopUsers(viewer)
	require.NoError(t, err)
	require.Len(t, ranked, 5)

	assert.Equal(t, popular.ID, ranked[0].ID)
	assert.Equal(t, 2, ranked[0].FollowerCount)
	assert.Equal(t, middling.ID, ranked[1].ID)
	assert.Equal(t, 1, ranked[1].FollowerCount)

	// zero-follower users tie and come back in id order
	assert.Equal(t, nobody.ID, ranked[2].ID)

	for _, r := range ranked {
		if r.ID == popular.ID || r.ID == middling.ID {
			assert.True(t, r.IsFollowed)
		} else {
			assert.False(t, r.IsFollowed)
		}
	}
}

func TestFeedReturnsTenNewestOfEach(t *testing.T) {
	setupTestDB(t)
	engagement := NewEngagementService()

	user := createUser(t, "frank")
	category := createCategory(t, "Mexican cuisine")

	for i := 0; i < 13; i++ {
		r := createRestaurant(t, fmt.Sprintf("restaurant%d", i), category.ID)
		comment := &models.Comment{Text: fmt.Sprintf("comment%d", i), UserID: user.ID, RestaurantID: r.ID}
		require.NoError(t, db.DB.Create(comment).Error)
	}

	restaurants, comments, err := engagement.Feed()
	require.NoError(t, err)

	assert.Len(t, restaurants, 10)
	assert.Len(t, comments, 10)
	for i := 1; i < len(restaurants); i++ {
		assert.False(t, restaurants[i-1].CreatedAt.Before(restaurants[i].CreatedAt), "newest first")
	}
	// comments carry their author and restaurant
	assert.Equal(t, user.ID, comments[0].User.ID)
	assert.NotZero(t, comments[0].Restaurant.ID)
}

func TestProfileCountsDistinctCommentedRestaurants(t *testing.T) {
	setupTestDB(t)
	engagement := NewEngagementService()

	user := createUser(t, "grace")
	category := createCategory(t, "Chinese cuisine")
	first := createRestaurant(t, "First", category.ID)
	second := createRestaurant(t, "Second", category.ID)

	// three comments on the same restaurant count once
	for i := 0; i < 3; i++ {
		comment := &models.Comment{Text: "tasty", UserID: user.ID, RestaurantID: first.ID}
		require.NoError(t, db.DB.Create(comment).Error)
	}
	comment := &models.Comment{Text: "also tasty", UserID: user.ID, RestaurantID: second.ID}
	require.NoError(t, db.DB.Create(comment).Error)

	require.NoError(t, engagement.AddFavorite(user.ID, first.ID))

	follower := createUser(t, "heidi")
	require.NoError(t, engagement.Follow(follower.ID, user.ID))

	profile, err := engagement.GetProfile(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, profile.CommentNumber())
	assert.Equal(t, 1, profile.FavoritedRestaurantNumber())
	assert.Equal(t, 1, profile.FollowerNumber())
	assert.Equal(t, 0, profile.FollowingNumber())

	_, err = engagement.GetProfile(user.ID + 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
