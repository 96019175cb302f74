package services

import (
	"errors"
	"fmt"

	"forkful/internal/db"
	"forkful/internal/models"
	"forkful/internal/utils"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const DefaultPageLimit = 9
const listDescriptionLength = 50

// RestaurantService handles the restaurant read surface shared by page and
// API routes, plus the admin-side writes. User-supplied text goes through
// bluemonday before it is stored.
type RestaurantService struct {
	sanitizer *bluemonday.Policy
}

func NewRestaurantService() *RestaurantService {
	return &RestaurantService{
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// ListParams are the raw query inputs for the paginated listing.
type ListParams struct {
	CategoryID uint
	Page       int
	Limit      int
}

// ListResult is serialized as-is by the API route and handed to the template
// by the page route.
type ListResult struct {
	Restaurants []models.Restaurant `json:"restaurants"`
	Categories  []models.Category   `json:"categories"`
	CategoryID  uint                `json:"categoryId"`
	Pagination  utils.Pagination    `json:"pagination"`
}

// List returns one page of restaurants with viewer-relative flags and
// descriptions cut to 50 characters.
func (s *RestaurantService) List(params ListParams, viewer *models.Viewer) (*ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = DefaultPageLimit
	}
	offset := utils.GetOffset(params.Limit, params.Page)

	query := db.DB.Model(&models.Restaurant{})
	if params.CategoryID != 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var restaurants []models.Restaurant
	if err := query.Preload("Category").
		Limit(params.Limit).
		Offset(offset).
		Find(&restaurants).Error; err != nil {
		return nil, err
	}

	for i := range restaurants {
		restaurants[i].Description = truncate(restaurants[i].Description, listDescriptionLength)
		restaurants[i].IsFavorited = viewer.HasFavorited(restaurants[i].ID)
		restaurants[i].IsLiked = viewer.HasLiked(restaurants[i].ID)
	}

	var categories []models.Category
	if err := db.DB.Find(&categories).Error; err != nil {
		return nil, err
	}

	return &ListResult{
		Restaurants: restaurants,
		Categories:  categories,
		CategoryID:  params.CategoryID,
		Pagination:  utils.GetPagination(params.Limit, params.Page, total),
	}, nil
}

// Get increments view_counts and re-reads the row, so the caller always sees
// its own increment. Comments come back newest first with their authors.
func (s *RestaurantService) Get(id uint) (*models.Restaurant, []models.Comment, error) {
	result := db.DB.Model(&models.Restaurant{}).
		Where("id = ?", id).
		UpdateColumn("view_counts", gorm.Expr("view_counts + 1"))
	if result.Error != nil {
		return nil, nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil, fmt.Errorf("%w: restaurant", ErrNotFound)
	}

	var restaurant models.Restaurant
	if err := db.DB.Preload("Category").First(&restaurant, id).Error; err != nil {
		return nil, nil, err
	}

	var comments []models.Comment
	if err := db.DB.Preload("User").
		Where("restaurant_id = ?", id).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, nil, err
	}

	return &restaurant, comments, nil
}

// Dashboard returns a restaurant with its comment and favorite cardinality.
func (s *RestaurantService) Dashboard(id uint) (*models.Restaurant, int64, int64, error) {
	var restaurant models.Restaurant
	if err := db.DB.Preload("Category").First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, 0, fmt.Errorf("%w: restaurant", ErrNotFound)
		}
		return nil, 0, 0, err
	}

	var commentCount, favoriteCount int64
	if err := db.DB.Model(&models.Comment{}).Where("restaurant_id = ?", id).Count(&commentCount).Error; err != nil {
		return nil, 0, 0, err
	}
	if err := db.DB.Model(&models.Favorite{}).Where("restaurant_id = ?", id).Count(&favoriteCount).Error; err != nil {
		return nil, 0, 0, err
	}

	return &restaurant, commentCount, favoriteCount, nil
}

// RestaurantInput carries the admin form fields.
type RestaurantInput struct {
	Name         string
	Tel          string
	Address      string
	OpeningHours string
	Description  string
	Image        string
	CategoryID   uint
}

func (s *RestaurantService) Create(input RestaurantInput) (*models.Restaurant, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: restaurant name is required", ErrValidation)
	}

	restaurant := models.Restaurant{
		Name:         input.Name,
		Tel:          input.Tel,
		Address:      input.Address,
		OpeningHours: input.OpeningHours,
		Description:  s.sanitizer.Sanitize(input.Description),
		Image:        input.Image,
		CategoryID:   input.CategoryID,
	}
	if err := db.DB.Create(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Update keeps the stored image when the input carries none.
func (s *RestaurantService) Update(id uint, input RestaurantInput) (*models.Restaurant, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: restaurant name is required", ErrValidation)
	}

	var restaurant models.Restaurant
	if err := db.DB.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: restaurant", ErrNotFound)
		}
		return nil, err
	}

	image := input.Image
	if image == "" {
		image = restaurant.Image
	}

	updates := map[string]any{
		"name":          input.Name,
		"tel":           input.Tel,
		"address":       input.Address,
		"opening_hours": input.OpeningHours,
		"description":   s.sanitizer.Sanitize(input.Description),
		"image":         image,
		"category_id":   input.CategoryID,
	}
	if err := db.DB.Model(&restaurant).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (s *RestaurantService) Delete(id uint) error {
	result := db.DB.Delete(&models.Restaurant{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: restaurant", ErrNotFound)
	}
	return nil
}
