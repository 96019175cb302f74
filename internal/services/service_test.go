package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"forkful/internal/db"
	"forkful/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// setupTestDB points the package-level pool at a fresh in-memory SQLite
// database. Each test gets its own named database so parallel packages never
// share state; TranslateError stays on because the services depend on
// gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	db.DB = conn
}

func createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed-password",
	}
	require.NoError(t, db.DB.Create(user).Error)
	return user
}

func createCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.DB.Create(category).Error)
	return category
}

func createRestaurant(t *testing.T, name string, categoryID uint) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name:        name,
		Description: "A place to eat",
		CategoryID:  categoryID,
	}
	require.NoError(t, db.DB.Create(restaurant).Error)
	return restaurant
}
