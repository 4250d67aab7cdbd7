package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Relay   RelayConfig
	Form    FormConfig
	Admin   AdminConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port                string
	Host                string
	Env                 string // "development" or "production"
	CORSOrigins         []string
	// TrustedProxies lists the proxy IPs/CIDRs allowed to set X-Forwarded-For.
	// Empty means the socket peer is the client.
	TrustedProxies      []string
	RateLimitPerMinute  int
	ShutdownGracePeriod time.Duration
}

type StorageConfig struct {
	DBPath     string
	ArchiveDir string
}

// RelayConfig configures the outbound form relay. An empty URL disables it.
type RelayConfig struct {
	URL      string
	Timeout  time.Duration
	Location string
}

type FormConfig struct {
	SubmitDelay       time.Duration
	SuccessResetDelay time.Duration
}

type AdminConfig struct {
	// Panel gates every admin route. Defaults to on outside production.
	Panel     bool
	Username  string
	Password  string
	JWTSecret string
	TokenTTL  time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level string
}

// Load reads an optional .env file, then builds the configuration from
// environment variables with defaults. Variables already set win over .env.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// 파일이 없으면 무시
		_ = godotenv.Load(f)
	}

	env := getEnv("APP_ENV", "development")
	return &Config{
		Server: ServerConfig{
			Port:                getEnv("PORT", "8080"),
			Host:                getEnv("HOST", "0.0.0.0"),
			Env:                 env,
			CORSOrigins:         getEnvList("CORS_ORIGINS"),
			TrustedProxies:      getEnvList("TRUSTED_PROXIES"),
			RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 10),
			ShutdownGracePeriod: getEnvDuration("SHUTDOWN_GRACE_PERIOD", 30*time.Second),
		},
		Storage: StorageConfig{
			DBPath:     getEnv("DB_PATH", "./medai_site.db"),
			ArchiveDir: getEnv("ARCHIVE_DIR", "data/archive"),
		},
		Relay: RelayConfig{
			URL:      getEnv("RELAY_URL", ""),
			Timeout:  getEnvDuration("RELAY_TIMEOUT", 10*time.Second),
			Location: getEnv("RELAY_TIMEZONE", "Europe/Amsterdam"),
		},
		Form: FormConfig{
			SubmitDelay:       getEnvDuration("SUBMIT_DELAY", 0),
			SuccessResetDelay: getEnvDuration("SUCCESS_RESET_DELAY", 2*time.Second),
		},
		Admin: AdminConfig{
			Panel:     getEnvBool("ADMIN_PANEL", env != "production"),
			Username:  getEnv("ADMIN_USERNAME", "admin"),
			Password:  getEnv("ADMIN_PASSWORD", ""),
			JWTSecret: getEnv("JWT_SECRET_KEY", ""),
			TokenTTL:  getEnvDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// RelayLocation resolves the relay display timezone, falling back to UTC.
func (c *Config) RelayLocation() *time.Location {
	loc, err := time.LoadLocation(c.Relay.Location)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("1500ms") or plain milliseconds ("1500").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
