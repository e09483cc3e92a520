package ioc

import (
	"os"
	"strconv"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
)

const (
	defaultTokenTTLDays        = 30
	defaultRefreshIntervalDays = 3
)

func envDays(key string, fallbackDays int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallbackDays) * 24 * time.Hour
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return time.Duration(fallbackDays) * 24 * time.Hour
	}
	return time.Duration(days) * 24 * time.Hour
}

func EnvironmentConfig() (common.Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	config := common.Config{
		Port: port,
		Auth: common.AuthConfig{
			JWTSecretKey:    os.Getenv("JWT_SECRET_KEY"),
			TokenTTL:        envDays("JWT_TOKEN_TTL_DAYS", defaultTokenTTLDays),
			RefreshInterval: envDays("JWT_REFRESH_INTERVAL_DAYS", defaultRefreshIntervalDays),
		},
		MongoDB: common.MongoDBConfig{
			URI:    os.Getenv("MONGO_URL"),
			DBName: os.Getenv("DATABASE_NAME"),
		},
		Email: common.EmailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			FromAddress:  os.Getenv("EMAIL_FROM_ADDRESS"),
		},
		CORS: common.CORSConfig{
			AllowOriginRegex: os.Getenv("CORS_ALLOW_ORIGIN_REGEX"),
		},
	}

	return config, nil
}

// BcryptCost resolves the configured bcrypt work factor, falling back to
// bcrypt's own default when unset or invalid.
func BcryptCost() int {
	cost, err := strconv.Atoi(os.Getenv("BCRYPT_COST"))
	if err != nil {
		return 0
	}
	return cost
}
