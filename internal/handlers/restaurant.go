package handlers

import (
	"net/http"

	"forkful/internal/middleware"
	"forkful/internal/services"
	"forkful/internal/utils"

	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	restaurants *services.RestaurantService
	engagement  *services.EngagementService
}

func NewRestaurantHandler(restaurants *services.RestaurantService, engagement *services.EngagementService) *RestaurantHandler {
	return &RestaurantHandler{
		restaurants: restaurants,
		engagement:  engagement,
	}
}

// List renders one page of restaurants, optionally filtered by category.
func (h *RestaurantHandler) List(c *gin.Context) {
	params := services.ListParams{
		CategoryID: uint(utils.StringToInt(c.Query("categoryId"))),
		Page:       utils.StringToInt(c.DefaultQuery("page", "1")),
		Limit:      utils.StringToInt(c.DefaultQuery("limit", "0")),
	}

	result, err := h.restaurants.List(params, middleware.CurrentViewer(c))
	if err != nil {
		handlePageError(c, err)
		return
	}

	Render(c, http.StatusOK, "restaurant/list.html", gin.H{
		"Restaurants": result.Restaurants,
		"Categories":  result.Categories,
		"CategoryID":  result.CategoryID,
		"Pagination":  result.Pagination,
	})
}

// Detail increments the view counter before rendering; the count shown
// always includes this visit.
func (h *RestaurantHandler) Detail(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))

	restaurant, comments, err := h.restaurants.Get(id)
	if err != nil {
		handlePageError(c, err)
		return
	}

	viewer := middleware.CurrentViewer(c)
	Render(c, http.StatusOK, "restaurant/detail.html", gin.H{
		"Restaurant":  restaurant,
		"Comments":    comments,
		"IsFavorited": viewer.HasFavorited(restaurant.ID),
		"IsLiked":     viewer.HasLiked(restaurant.ID),
	})
}

func (h *RestaurantHandler) Dashboard(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))

	restaurant, commentCount, favoriteCount, err := h.restaurants.Dashboard(id)
	if err != nil {
		handlePageError(c, err)
		return
	}

	Render(c, http.StatusOK, "restaurant/dashboard.html", gin.H{
		"Restaurant":    restaurant,
		"CommentCount":  commentCount,
		"FavoriteCount": favoriteCount,
	})
}

// Feeds shows the ten newest restaurants and ten newest comments side by
// side.
func (h *RestaurantHandler) Feeds(c *gin.Context) {
	restaurants, comments, err := h.engagement.Feed()
	if err != nil {
		handlePageError(c, err)
		return
	}

	Render(c, http.StatusOK, "restaurant/feeds.html", gin.H{
		"Restaurants": restaurants,
		"Comments":    comments,
	})
}

func (h *RestaurantHandler) Top(c *gin.Context) {
	restaurants, err := h.engagement.TopRestaurants(middleware.CurrentViewer(c))
	if err != nil {
		handlePageError(c, err)
		return
	}

	Render(c, http.StatusOK, "restaurant/top.html", gin.H{
		"Restaurants": restaurants,
	})
}
