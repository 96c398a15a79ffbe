package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis (rate-limit windows)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Identity
	IdentitySalt string

	// Message lifecycle
	MessageTTL        time.Duration
	PurgeInterval     time.Duration
	NicknameMinLength int
	NicknameMaxLength int
	MessageMaxLength  int
	ReasonMaxLength   int

	// Moderation
	AutoHideThreshold int

	// Rate limiting (per identity hash)
	RateLimitWindow     time.Duration
	RateLimitMaxPosts   int
	RateLimitMaxReports int

	// Geolocation
	GeoAPIBaseURL string
	GeoTimeout    time.Duration
	GeoCacheTTL   time.Duration
	GeoCacheSize  int

	// Admin
	AdminToken string

	// Logging
	LogRetentionDays int

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "emberwall"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       parseInt(getEnv("REDIS_DB", "0"), 0),

		IdentitySalt: getEnv("IDENTITY_SALT", ""),

		MessageTTL:        parseDuration(getEnv("MESSAGE_TTL", "24h"), 24*time.Hour),
		PurgeInterval:     parseDuration(getEnv("PURGE_INTERVAL", "5m"), 5*time.Minute),
		NicknameMinLength: parseInt(getEnv("NICKNAME_MIN_LENGTH", "2"), 2),
		NicknameMaxLength: parseInt(getEnv("NICKNAME_MAX_LENGTH", "20"), 20),
		MessageMaxLength:  parseInt(getEnv("MESSAGE_MAX_LENGTH", "400"), 400),
		ReasonMaxLength:   parseInt(getEnv("REPORT_REASON_MAX_LENGTH", "200"), 200),

		AutoHideThreshold: parseInt(getEnv("AUTO_HIDE_REPORT_THRESHOLD", "5"), 5),

		RateLimitWindow:     parseDuration(getEnv("RATE_LIMIT_WINDOW", "1h"), time.Hour),
		RateLimitMaxPosts:   parseInt(getEnv("RATE_LIMIT_MAX_POSTS", "5"), 5),
		RateLimitMaxReports: parseInt(getEnv("RATE_LIMIT_MAX_REPORTS", "10"), 10),

		GeoAPIBaseURL: getEnv("GEO_API_BASE_URL", "http://ip-api.com/json"),
		GeoTimeout:    parseDuration(getEnv("GEO_TIMEOUT", "3s"), 3*time.Second),
		GeoCacheTTL:   parseDuration(getEnv("GEO_CACHE_TTL", "1h"), time.Hour),
		GeoCacheSize:  parseInt(getEnv("GEO_CACHE_SIZE", "16384"), 16384),

		AdminToken: getEnv("ADMIN_TOKEN", ""),

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
