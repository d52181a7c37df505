package config

import (
	"strings"
	"time"

	"apartium-backend/utils"
)

type Config struct {
	AppName     string
	Port        string
	CORSOrigins []string
	RedisURL    string
	CacheTTL    time.Duration
	SeedDemo    bool
}

func Load() *Config {
	return &Config{
		AppName:     utils.EnvOrDefault("APP_NAME", "apartium-api"),
		Port:        utils.EnvOrDefault("PORT", "8080"),
		CORSOrigins: parseCorsOrigins(utils.EnvOrDefault("CORS_ORIGINS", "")),
		RedisURL:    utils.EnvOrDefault("REDIS_URL", ""),
		CacheTTL:    utils.EnvDuration("CACHE_TTL", 5*time.Minute),
		SeedDemo:    utils.EnvBool("SEED_DEMO_DATA", true),
	}
}

func parseCorsOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
