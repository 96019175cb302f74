package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process needs from the environment. It is
// built once in main and handed to whoever needs it; nothing reads env vars
// after startup.
type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	JWTSecret     string
	JWTTTL        time.Duration
	ImgurClientID string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	return &Config{
		Port:          getEnv("PORT", "3000"),
		DatabaseURL:   getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=forkful port=5432 sslmode=disable"),
		SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),
		JWTSecret:     getEnv("JWT_SECRET", "jwt_secret_change_me"),
		JWTTTL:        30 * 24 * time.Hour,
		ImgurClientID: os.Getenv("IMGUR_CLIENT_ID"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
