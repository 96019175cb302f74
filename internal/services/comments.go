package services

import (
	"errors"
	"fmt"
	"strings"

	"forkful/internal/db"
	"forkful/internal/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// CommentService writes comments. Deletion is admin-only and gated at the
// route, not here.
type CommentService struct {
	sanitizer *bluemonday.Policy
}

func NewCommentService() *CommentService {
	return &CommentService{
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *CommentService) Create(userID, restaurantID uint, text string) (*models.Comment, error) {
	text = strings.TrimSpace(s.sanitizer.Sanitize(text))
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}

	var restaurant models.Restaurant
	if err := db.DB.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: restaurant", ErrNotFound)
		}
		return nil, err
	}

	comment := models.Comment{
		Text:         text,
		UserID:       userID,
		RestaurantID: restaurantID,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete returns the restaurant id of the removed comment so the handler can
// redirect back to its page.
func (s *CommentService) Delete(id uint) (uint, error) {
	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: comment", ErrNotFound)
		}
		return 0, err
	}
	if err := db.DB.Delete(&comment).Error; err != nil {
		return 0, err
	}
	return comment.RestaurantID, nil
}
