package db

import (
	"log"

	"forkful/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init opens the connection pool and migrates the schema. TranslateError is
// on so unique-index violations surface as gorm.ErrDuplicatedKey; the
// engagement layer relies on that instead of trusting its own existence
// checks.
func Init(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedCategories()
}

// Migrate is separated from Init so tests can run it against their own
// connection.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Restaurant{},
		&models.Comment{},
		&models.Favorite{},
		&models.Like{},
		&models.Followship{},
	)
}

func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		log.Println("Categories already seeded, skipping")
		return
	}

	categories := []models.Category{
		{Name: "Chinese cuisine"},
		{Name: "Japanese cuisine"},
		{Name: "Italian cuisine"},
		{Name: "Mexican cuisine"},
		{Name: "Vegetarian cuisine"},
		{Name: "American cuisine"},
		{Name: "Korean cuisine"},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			log.Printf("Failed to create category %s: %v", category.Name, err)
		}
	}
	log.Println("Initial categories created successfully")
}
