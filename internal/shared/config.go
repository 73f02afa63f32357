package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// Identity provider. Mode "provider" verifies tokens over HTTP;
	// "local" parses HS256 JWTs with IdentitySecret (dev/tests).
	IdentityMode   string
	IdentityBase   string
	IdentityCreds  string // base64-encoded service account JSON blob
	IdentitySecret string

	CORSOrigins []string
	CacheTTL    time.Duration
	Workers     int
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":"+env("PORT", "3000")),
		MetricsAddr:    env("METRICS_ADDR", ""),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/homenest?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		IdentityMode:   env("IDENTITY_MODE", "provider"),
		IdentityBase:   env("IDENTITY_BASE_URL", "https://identitytoolkit.example.com/v1"),
		IdentityCreds:  env("IDENTITY_ADMIN_SDK_KEY", ""),
		IdentitySecret: env("IDENTITY_LOCAL_SECRET", ""),
		CORSOrigins:    splitCSV(env("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174")),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		Workers:        atoi("RECONCILE_WORKERS", 8),
	}
	if c.IdentityMode == "provider" && c.IdentityCreds == "" {
		log.Warn().Msg("IDENTITY_ADMIN_SDK_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
