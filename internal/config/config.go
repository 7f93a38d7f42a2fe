package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port               string
	Environment        string
	FrontendURL        string
	AllowedOrigins     []string
	MatchmakingTimeout time.Duration

	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int

	RedisAddr     string
	RedisPassword string

	JWTSecret          string
	JWTExpirationHours int

	OAuth OAuthConfig
}

var AppConfig *Config

func LoadConfig() *Config {
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")

	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // local development
	}
	if extra := GetEnv("ALLOWED_ORIGINS", ""); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	AppConfig = &Config{
		Port:               GetEnv("PORT", "8080"),
		Environment:        GetEnv("ENVIRONMENT", "development"),
		FrontendURL:        frontendURL,
		AllowedOrigins:     allowedOrigins,
		MatchmakingTimeout: time.Duration(GetEnvAsInt("MATCHMAKING_TIMEOUT_SECONDS", 300)) * time.Second,

		DatabaseURL:          GetEnv("DATABASE_URL", ""),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),

		RedisAddr:     GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),

		JWTSecret:          GetEnv("JWT_SECRET", "change-this-in-production"),
		JWTExpirationHours: GetEnvAsInt("JWT_EXPIRATION_HOURS", 72),

		OAuth: LoadOAuthConfig(),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).
			Msg("invalid integer env value, using default")
		return defaultValue
	}
	return value
}
