package config

import (
	"time"

	"github.com/kongenga/kongenga/internal/flagx"
)

// dotEnvFiles are loaded (when present) before reading the environment.
var dotEnvFiles = []string{".env"}

// parseEnv overlays Config with KONGENGA_* environment variables, after
// loading dotEnvFiles. Malformed durations panic, like the other loaders.
func parseEnv(cfg *Config) {
	if err := flagx.LoadDotEnv(dotEnvFiles...); err != nil {
		panic(err)
	}

	flagx.EnvString("KONGENGA_ADDR", &cfg.EndpointAddrHTTP)
	flagx.EnvString("KONGENGA_DATABASE_DSN", &cfg.DatabaseDSN)
	flagx.EnvString("KONGENGA_SECRET_KEY", &cfg.SecretKey)
	flagx.EnvString("KONGENGA_LOG_LEVEL", &cfg.LogLevel)
	flagx.EnvString("KONGENGA_REDIS_URL", &cfg.RedisURL)
	flagx.EnvString("KONGENGA_STATS_SCHEDULE", &cfg.StatsRefreshSchedule)
	flagx.EnvString("KONGENGA_ADMIN_NAME", &cfg.AdminName)
	flagx.EnvString("KONGENGA_ADMIN_EMAIL", &cfg.AdminEmail)
	flagx.EnvString("KONGENGA_ADMIN_PASSWORD", &cfg.AdminPassword)
	flagx.EnvString("KONGENGA_S3_ROOT_USER", &cfg.S3RootUser)
	flagx.EnvString("KONGENGA_S3_ROOT_PASSWORD", &cfg.S3RootPassword)
	flagx.EnvString("KONGENGA_S3_BUCKET", &cfg.S3Bucket)
	flagx.EnvString("KONGENGA_S3_REGION", &cfg.S3Region)
	flagx.EnvString("KONGENGA_S3_BASE_ENDPOINT", &cfg.S3BaseEndpoint)

	for key, dst := range map[string]*time.Duration{
		"KONGENGA_ACCESS_TOKEN_TTL":  &cfg.AccessTokenValidityDuration,
		"KONGENGA_CACHE_TTL":         &cfg.CacheTTL,
		"KONGENGA_AVATAR_URL_EXPIRY": &cfg.AvatarURLExpiry,
	} {
		if err := flagx.EnvDuration(key, dst); err != nil {
			panic(err)
		}
	}
}
