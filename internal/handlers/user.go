package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"forkful/internal/db"
	"forkful/internal/middleware"
	"forkful/internal/models"
	"forkful/internal/services"
	"forkful/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	engagement *services.EngagementService
	images     *services.ImageService
}

func NewUserHandler(engagement *services.EngagementService, images *services.ImageService) *UserHandler {
	return &UserHandler{
		engagement: engagement,
		images:     images,
	}
}

// Profile shows a user with their engagement cardinalities. The comment
// number counts distinct commented restaurants, not comment rows.
func (h *UserHandler) Profile(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))

	profile, err := h.engagement.GetProfile(id)
	if err != nil {
		handlePageError(c, err)
		return
	}

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"User":                      profile.User,
		"CommentNumber":             profile.CommentNumber(),
		"FavoritedRestaurantNumber": profile.FavoritedRestaurantNumber(),
		"FollowerNumber":            profile.FollowerNumber(),
		"FollowingNumber":           profile.FollowingNumber(),
		"CommentedRestaurants":      profile.CommentedRestaurants,
		"FavoritedRestaurants":      profile.FavoritedRestaurants,
		"Followers":                 profile.Followers,
		"Followings":                profile.Followings,
	})
}

func (h *UserHandler) ShowEdit(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handlePageError(c, fmt.Errorf("%w: user", services.ErrNotFound))
			return
		}
		handlePageError(c, err)
		return
	}

	Render(c, http.StatusOK, "user/edit.html", gin.H{"User": user})
}

// Update edits a profile. Only the owner may do it, and a missing upload
// keeps the current avatar.
func (h *UserHandler) Update(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))
	viewer := middleware.CurrentViewer(c)

	if viewer.ID != id {
		handlePageError(c, fmt.Errorf("%w: cannot edit another user's profile", services.ErrPermissionDenied))
		return
	}

	name := c.PostForm("name")
	if name == "" {
		flashError(c, "User name is required.")
		redirectBack(c)
		return
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		handlePageError(c, fmt.Errorf("%w: user", services.ErrNotFound))
		return
	}

	// FormFile errors just mean no new avatar was submitted.
	avatar := user.Avatar
	if header, err := c.FormFile("avatar"); err == nil {
		uploaded, err := h.images.HandleFile(header)
		if err != nil {
			handlePageError(c, err)
			return
		}
		if uploaded != "" {
			avatar = uploaded
		}
	}

	if err := db.DB.Model(&user).Updates(map[string]any{
		"name":   name,
		"avatar": avatar,
	}).Error; err != nil {
		handlePageError(c, err)
		return
	}

	flashSuccess(c, "Profile updated successfully.")
	c.Redirect(http.StatusFound, fmt.Sprintf("/users/%d", id))
}

func (h *UserHandler) Top(c *gin.Context) {
	users, err := h.engagement.TopUsers(middleware.CurrentViewer(c))
	if err != nil {
		handlePageError(c, err)
		return
	}

	Render(c, http.StatusOK, "user/top.html", gin.H{"Users": users})
}

func (h *UserHandler) AddFavorite(c *gin.Context) {
	viewer := middleware.CurrentViewer(c)
	restaurantID := uint(utils.StringToInt(c.Param("restaurantId")))

	if err := h.engagement.AddFavorite(viewer.ID, restaurantID); err != nil {
		handlePageError(c, err)
		return
	}
	redirectBack(c)
}

func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	viewer := middleware.CurrentViewer(c)
	restaurantID := uint(utils.StringToInt(c.Param("restaurantId")))

	if err := h.engagement.RemoveFavorite(viewer.ID, restaurantID); err != nil {
		handlePageError(c, err)
		return
	}
	redirectBack(c)
}

func (h *UserHandler) AddLike(c *gin.Context) {
	viewer := middleware.CurrentViewer(c)
	restaurantID := uint(utils.StringToInt(c.Param("restaurantId")))

	if err := h.engagement.AddLike(viewer.ID, restaurantID); err != nil {
		handlePageError(c, err)
		return
	}
	redirectBack(c)
}

func (h *UserHandler) RemoveLike(c *gin.Context) {
	viewer := middleware.CurrentViewer(c)
	restaurantID := uint(utils.StringToInt(c.Param("restaurantId")))

	if err := h.engagement.RemoveLike(viewer.ID, restaurantID); err != nil {
		handlePageError(c, err)
		return
	}
	redirectBack(c)
}

func (h *UserHandler) AddFollowing(c *gin.Context) {
	viewer := middleware.CurrentViewer(c)
	userID := uint(utils.StringToInt(c.Param("userId")))

	if err := h.engagement.Follow(viewer.ID, userID); err != nil {
		handlePageError(c, err)
		return
	}
	redirectBack(c)
}

func (h *UserHandler) RemoveFollowing(c *gin.Context) {
	viewer := middleware.CurrentViewer(c)
	userID := uint(utils.StringToInt(c.Param("userId")))

	if err := h.engagement.Unfollow(viewer.ID, userID); err != nil {
		handlePageError(c, err)
		return
	}
	redirectBack(c)
}
