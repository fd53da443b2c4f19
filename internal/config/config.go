package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret is only acceptable in dev.
const DefaultJWTSecret = "supersecretkey"

// MinBcryptCost is the lowest bcrypt cost the API will hash passwords with.
const MinBcryptCost = 10

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	JWTSecret string

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default,
	// and error bodies never carry internal detail.
	Env string

	// BcryptCost is the password hashing cost. Values below MinBcryptCost are raised to it.
	BcryptCost int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json".
	LogFormat string

	// CORSAllowedOrigins is set via CORS_ALLOWED_ORIGINS (comma-separated).
	CORSAllowedOrigins []string

	// RedisAddr enables the upstream response cache when set (e.g. localhost:6379).
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	FootballAPIURL string
	FootballAPIKey string

	LiveScoresAPIURL  string
	LiveScoresAPIKey  string
	LiveScoresAPIHost string

	NewsAPIURL string
	NewsAPIKey string

	UploadDir string

	// StandingsRefreshCron is a cron expression for warming cached standings; empty disables it.
	StandingsRefreshCron string
	StandingsLeagues     []string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "5000"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "sidelines"),
		DBUser: getEnv("DB_USER", "sidelines"),
		DBPass: getEnv("DB_PASS", "sidelines"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret:  getEnv("JWT_SECRET", DefaultJWTSecret),
		Env:        getEnv("ENV", "dev"),
		BcryptCost: clampCost(getEnvInt("BCRYPT_COST", MinBcryptCost)),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),

		FootballAPIURL: getEnv("FOOTBALL_API_URL", "https://api.football-data.org/v4"),
		FootballAPIKey: getEnv("FOOTBALL_API_KEY", ""),

		LiveScoresAPIURL:  getEnv("LIVE_SCORES_API_URL", "https://v3.football.api-sports.io"),
		LiveScoresAPIKey:  getEnv("LIVE_SCORES_API_KEY", ""),
		LiveScoresAPIHost: getEnv("LIVE_SCORES_API_HOST", "v3.football.api-sports.io"),

		NewsAPIURL: getEnv("NEWS_API_URL", "https://newsapi.org/v2/everything"),
		NewsAPIKey: getEnv("NEWS_API_KEY", ""),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		StandingsRefreshCron: getEnv("STANDINGS_REFRESH_CRON", ""),
		StandingsLeagues:     splitList(getEnv("STANDINGS_LEAGUES", "PL,BL1,PD,SA,FL1")),
	}
}

// Validate reports configuration that must not reach production.
func (c Config) Validate() error {
	if c.Env == "prod" && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value when ENV=prod")
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return nil
}

// Debug reports whether error responses may include internal detail.
func (c Config) Debug() bool {
	return c.Env != "prod"
}

// DSN is the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPass,
	)
}

// DatabaseURL is the postgres URL form used by migrations.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func clampCost(cost int) int {
	if cost < MinBcryptCost {
		return MinBcryptCost
	}
	return cost
}

// splitList splits a comma-separated list and trims spaces. Empty strings are omitted.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
