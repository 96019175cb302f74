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

// AdminHandler covers the admin back office: restaurant CRUD, category CRUD
// and the user admin toggle. Every route here sits behind AdminRequired.
type AdminHandler struct {
	restaurants *services.RestaurantService
	images      *services.ImageService
}

func NewAdminHandler(restaurants *services.RestaurantService, images *services.ImageService) *AdminHandler {
	return &AdminHandler{
		restaurants: restaurants,
		images:      images,
	}
}

func (h *AdminHandler) ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := db.DB.Preload("Category").Order("id ASC").Find(&restaurants).Error; err != nil {
		handlePageError(c, err)
		return
	}

	Render(c, http.StatusOK, "admin/restaurants.html", gin.H{"Restaurants": restaurants})
}

func (h *AdminHandler) ShowCreateRestaurant(c *gin.Context) {
	var categories []models.Category
	if err := db.DB.Find(&categories).Error; err != nil {
		handlePageError(c, err)
		return
	}

	Render(c, http.StatusOK, "admin/restaurant_form.html", gin.H{"Categories": categories})
}

func (h *AdminHandler) CreateRestaurant(c *gin.Context) {
	input, err := h.restaurantInput(c)
	if err != nil {
		handlePageError(c, err)
		return
	}

	if _, err := h.restaurants.Create(*input); err != nil {
		handlePageError(c, err)
		return
	}

	flashSuccess(c, "Restaurant was successfully created.")
	c.Redirect(http.StatusFound, "/admin/restaurants")
}

func (h *AdminHandler) ShowRestaurant(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))

	var restaurant models.Restaurant
	if err := db.DB.Preload("Category").First(&restaurant, id).Error; err != nil {
		handlePageError(c, fmt.Errorf("%w: restaurant", services.ErrNotFound))
		return
	}

	Render(c, http.StatusOK, "admin/restaurant.html", gin.H{"Restaurant": restaurant})
}

func (h *AdminHandler) ShowEditRestaurant(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))

	var restaurant models.Restaurant
	if err := db.DB.First(&restaurant, id).Error; err != nil {
		handlePageError(c, fmt.Errorf("%w: restaurant", services.ErrNotFound))
		return
	}

	var categories []models.Category
	if err := db.DB.Find(&categories).Error; err != nil {
		handlePageError(c, err)
		return
	}

	Render(c, http.StatusOK, "admin/restaurant_form.html", gin.H{
		"Restaurant": restaurant,
		"Categories": categories,
	})
}

func (h *AdminHandler) UpdateRestaurant(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))

	input, err := h.restaurantInput(c)
	if err != nil {
		handlePageError(c, err)
		return
	}

	if _, err := h.restaurants.Update(id, *input); err != nil {
		handlePageError(c, err)
		return
	}

	flashSuccess(c, "Restaurant was successfully updated.")
	c.Redirect(http.StatusFound, "/admin/restaurants")
}

func (h *AdminHandler) DeleteRestaurant(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))

	if err := h.restaurants.Delete(id); err != nil {
		handlePageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/restaurants")
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := db.DB.Order("id ASC").Find(&users).Error; err != nil {
		handlePageError(c, err)
		return
	}

	Render(c, http.StatusOK, "admin/users.html", gin.H{"Users": users})
}

// ToggleAdmin flips a user's admin flag. Admins cannot strip their own flag,
// so the back office can never lock itself out.
func (h *AdminHandler) ToggleAdmin(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))
	viewer := middleware.CurrentViewer(c)

	if viewer.ID == id {
		flashError(c, "You cannot change your own admin role.")
		c.Redirect(http.StatusFound, "/admin/users")
		return
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			handlePageError(c, fmt.Errorf("%w: user", services.ErrNotFound))
			return
		}
		handlePageError(c, err)
		return
	}

	if err := db.DB.Model(&user).Update("is_admin", !user.IsAdmin).Error; err != nil {
		handlePageError(c, err)
		return
	}

	flashSuccess(c, "User role was successfully updated.")
	c.Redirect(http.StatusFound, "/admin/users")
}

func (h *AdminHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := db.DB.Order("id ASC").Find(&categories).Error; err != nil {
		handlePageError(c, err)
		return
	}

	// The same page doubles as the edit form when an id is supplied.
	obj := gin.H{"Categories": categories}
	if id := utils.StringToInt(c.Query("id")); id > 0 {
		var category models.Category
		if err := db.DB.First(&category, id).Error; err == nil {
			obj["Category"] = category
		}
	}

	Render(c, http.StatusOK, "admin/categories.html", obj)
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		flashError(c, "Category name is required.")
		redirectBack(c)
		return
	}

	if err := db.DB.Create(&models.Category{Name: name}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			flashError(c, "Category already exists.")
			redirectBack(c)
			return
		}
		handlePageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/categories")
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))
	name := c.PostForm("name")
	if name == "" {
		flashError(c, "Category name is required.")
		redirectBack(c)
		return
	}

	result := db.DB.Model(&models.Category{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		handlePageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		handlePageError(c, fmt.Errorf("%w: category", services.ErrNotFound))
		return
	}
	c.Redirect(http.StatusFound, "/admin/categories")
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))

	result := db.DB.Delete(&models.Category{}, id)
	if result.Error != nil {
		handlePageError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		handlePageError(c, fmt.Errorf("%w: category", services.ErrNotFound))
		return
	}
	c.Redirect(http.StatusFound, "/admin/categories")
}

// restaurantInput collects the shared form fields and runs the optional
// image upload.
func (h *AdminHandler) restaurantInput(c *gin.Context) (*services.RestaurantInput, error) {
	input := services.RestaurantInput{
		Name:         c.PostForm("name"),
		Tel:          c.PostForm("tel"),
		Address:      c.PostForm("address"),
		OpeningHours: c.PostForm("openingHours"),
		Description:  c.PostForm("description"),
		CategoryID:   uint(utils.StringToInt(c.PostForm("categoryId"))),
	}

	if header, err := c.FormFile("image"); err == nil {
		uploaded, err := h.images.HandleFile(header)
		if err != nil {
			return nil, err
		}
		input.Image = uploaded
	}

	return &input, nil
}
