package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
}

type Config struct {
	Environment        string
	DatabaseURL        string
	DBMaxIdleConns     int
	DBMaxOpenConns     int
	Port               string
	JWTSecret          string
	JWTPublicKey       string
	JWTIssuer          string
	ClerkWebhookSecret string
	SentryDSN          string
	LogLevel           string
	CORSOrigins        []string
	UploadsDir         string
	SharedRateLimit    int
	Redis              RedisConfig
}

func init() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()
}

func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", "boardly.db"),
		DBMaxIdleConns:     getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:     getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		Port:               getEnv("PORT", "8080"),
		JWTSecret:          getEnv("AUTH_JWT_SECRET", "your-secret-key-change-in-production"),
		JWTPublicKey:       getEnv("AUTH_JWT_PUBLIC_KEY", ""),
		JWTIssuer:          getEnv("AUTH_JWT_ISSUER", ""),
		ClerkWebhookSecret: getEnv("CLERK_WEBHOOK_SECRET", ""),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSOrigins:        getEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
		UploadsDir:         getEnv("UPLOADS_DIR", "uploads"),
		SharedRateLimit:    getEnvAsInt("SHARED_RATE_LIMIT", 60),
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsSlice(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
