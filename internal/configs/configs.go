package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RateLimit              int
	RedisAddr              string
	ShutdownTimeoutSeconds int

	StorageProvider string
	StorageBucket   string
	StorageID       string
	StorageSecret   string
	StorageRegion   string
	StorageEndpoint string

	MaxUploadFiles     int
	MaxUploadSizeBytes int64
	AllowedMimeTypes   []string

	GPSWarnDistanceMeters float64
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "fieldservice.db"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),

		StorageProvider: getEnv("STORAGE_PROVIDER", "filesystem"),
		StorageBucket:   getEnv("STORAGE_BUCKET", "uploads"),
		StorageID:       getEnv("STORAGE_ID", ""),
		StorageSecret:   getEnv("STORAGE_SECRET", ""),
		StorageRegion:   getEnv("STORAGE_REGION", ""),
		StorageEndpoint: getEnv("STORAGE_ENDPOINT", ""),

		MaxUploadFiles:     getEnvAsInt("MAX_UPLOAD_FILES", 10),
		MaxUploadSizeBytes: int64(getEnvAsInt("MAX_UPLOAD_SIZE_BYTES", 10<<20)),
		AllowedMimeTypes: strings.Split(
			getEnv("ALLOWED_MIME_TYPES", "image/jpeg,image/png,image/webp,application/pdf"),
			",",
		),

		GPSWarnDistanceMeters: getEnvAsFloat("GPS_WARN_DISTANCE_METERS", 100),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.StorageProvider == "" {
		log.Fatal("STORAGE_PROVIDER must not be empty")
	}
	if cfg.MaxUploadFiles <= 0 {
		log.Fatal("MAX_UPLOAD_FILES must be greater than 0")
	}
	if cfg.MaxUploadSizeBytes <= 0 {
		log.Fatal("MAX_UPLOAD_SIZE_BYTES must be greater than 0")
	}
	if cfg.GPSWarnDistanceMeters <= 0 {
		log.Fatal("GPS_WARN_DISTANCE_METERS must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatalf("invalid float value for %s", key)
		}
		return f
	}
	return defaultVal
}
