package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"forkful/internal/db"
	"forkful/internal/models"
	"forkful/internal/utils"

	"gorm.io/gorm"
)

// AuthService owns signup, credential verification, token issuance and
// viewer resolution. Secrets come in through the constructor, never from
// ambient state.
type AuthService struct {
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// SignUp creates a user with a hashed password. The duplicate-email check is
// the unique index on users.email; a racing insert loses there, not here.
func (s *AuthService) SignUp(name, email, password, passwordCheck string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if password != passwordCheck {
		return nil, fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already exists", ErrAlreadyExists)
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies email + password. The returned error is identical
// for an unknown email and a wrong password.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// IssueToken signs a bearer token carrying the user record minus the
// password hash.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return utils.GenerateToken(user, s.jwtSecret, s.jwtTTL)
}

// VerifyToken validates a bearer token and returns its claims.
func (s *AuthService) VerifyToken(tokenStr string) (*utils.Claims, error) {
	claims, err := utils.ParseToken(tokenStr, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return claims, nil
}

// LoadViewer re-fetches the user and resolves the favorited/liked restaurant
// id sets and the follower/following id sets once, so every downstream flag
// is a map lookup.
func (s *AuthService) LoadViewer(userID uint) (*models.Viewer, error) {
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	viewer := &models.Viewer{
		User:                   user,
		FavoritedRestaurantIDs: map[uint]bool{},
		LikedRestaurantIDs:     map[uint]bool{},
		FollowerIDs:            map[uint]bool{},
		FollowingIDs:           map[uint]bool{},
	}

	var favoriteIDs []uint
	if err := db.DB.Model(&models.Favorite{}).Where("user_id = ?", userID).Pluck("restaurant_id", &favoriteIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range favoriteIDs {
		viewer.FavoritedRestaurantIDs[id] = true
	}

	var likeIDs []uint
	if err := db.DB.Model(&models.Like{}).Where("user_id = ?", userID).Pluck("restaurant_id", &likeIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range likeIDs {
		viewer.LikedRestaurantIDs[id] = true
	}

	var followerIDs []uint
	if err := db.DB.Model(&models.Followship{}).Where("following_id = ?", userID).Pluck("follower_id", &followerIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range followerIDs {
		viewer.FollowerIDs[id] = true
	}

	var followingIDs []uint
	if err := db.DB.Model(&models.Followship{}).Where("follower_id = ?", userID).Pluck("following_id", &followingIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range followingIDs {
		viewer.FollowingIDs[id] = true
	}

	return viewer, nil
}
