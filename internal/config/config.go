package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// StorageBackendDB keeps lessons in Postgres.
	StorageBackendDB = "db"
	// StorageBackendFile keeps lessons in per-wiki JSON files under DataDir.
	StorageBackendFile = "file"
)

type Config struct {
	// Database
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Storage
	StorageBackend string
	DataDir        string

	// Redis
	EnableRedis bool
	RedisURL    string

	// JWT
	JWTSecret string

	// Server
	Port        string
	Environment string

	// CORS
	CORSOrigins []string

	// Upload
	UploadDir     string
	MaxUploadSize int64

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int

	// Features
	EnableCache   bool
	EnableMetrics bool

	// Site Meta
	SiteName string
	SiteURL  string
}

func New() *Config {
	c := &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "wikiuser"),
		DBPassword: getEnv("DB_PASSWORD", "wikipassword"),
		DBName:     getEnv("DB_NAME", "wikidb"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Storage
		StorageBackend: normalizeBackend(getEnv("STORAGE_BACKEND", StorageBackendDB)),
		DataDir:        getEnv("DATA_DIR", "./data"),

		// Redis
		EnableRedis: getEnvAsBool("ENABLE_REDIS", true),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// CORS
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		// Upload
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: 10 * 1024 * 1024, // 10MB

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),

		// Features
		EnableCache:   getEnvAsBool("ENABLE_CACHE", true),
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		// Site Meta
		SiteName: getEnv("SITE_NAME", "Lesson Wiki"),
		SiteURL:  getEnv("SITE_URL", "http://localhost:8080"),
	}

	// Build DSN
	c.DatabaseURL = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)

	return c
}

func (c *Config) UsesDatabase() bool {
	return c.StorageBackend == StorageBackendDB
}

func normalizeBackend(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case StorageBackendFile:
		return StorageBackendFile
	default:
		return StorageBackendDB
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
