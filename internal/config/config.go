package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// UploadDir is the filesystem root for product images and the store
	// logo; served publicly under /uploads.
	UploadDir string

	// EnforceStock turns on the atomic conditional stock decrement during
	// sale completion. Off by default: the base contract allows under-stock
	// sales.
	EnforceStock bool

	AdminPassword string
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return Config{
		Port:          getEnv("PORT", "3000"),
		DatabaseURL:   getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=pos port=5432 sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		UploadDir:     getEnv("UPLOAD_DIR", "./public/uploads"),
		EnforceStock:  strings.EqualFold(os.Getenv("ENFORCE_STOCK"), "true"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin@123"),
	}
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
