package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPITimeout bounds list reads and control writes.
	DefaultAPITimeout = 10 * time.Second

	// DefaultStatusTimeout bounds live battery status reads.
	DefaultStatusTimeout = 5 * time.Second

	// DefaultNatsSubject is where operation mode changes are published.
	DefaultNatsSubject = "assetbot.operation_mode.changed"

	// DefaultSendRate is the outbound Telegram request budget per second.
	DefaultSendRate = 20.0
)

// Config holds everything read from the environment at startup.
type Config struct {
	// REST API
	APIBaseURL    string
	APIToken      string
	APITimeout    time.Duration
	StatusTimeout time.Duration
	APIRetries    int

	// Chat transport
	TransportToken string
	SendRate       float64

	// Market prices
	CountriesFile string

	// Optional audit events
	NatsURL     string
	NatsSubject string

	// Ops HTTP endpoint; empty disables it
	HealthAddr string

	LogLevel string
}

// LoadEnvFile loads variables from the given .env files (default ".env")
// into the process environment. Missing files are not an error; variables
// already set in the environment win.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		APIBaseURL:    strings.TrimRight(getEnv("API_BASE_URL", os.Getenv("NGROK_URL")), "/"),
		APIToken:      getEnv("API_TOKEN", ""),
		APITimeout:    getDurationEnv("API_TIMEOUT", DefaultAPITimeout),
		StatusTimeout: getDurationEnv("API_STATUS_TIMEOUT", DefaultStatusTimeout),
		APIRetries:    getIntEnv("API_RETRIES", 0),

		TransportToken: getEnv("TELEGRAM_TOKEN", ""),
		SendRate:       getFloatEnv("TELEGRAM_SEND_RATE", DefaultSendRate),

		CountriesFile: getEnv("COUNTRIES_FILE", ""),

		NatsURL:     getEnv("NATS_URL", ""),
		NatsSubject: getEnv("NATS_SUBJECT", DefaultNatsSubject),

		HealthAddr: getEnv("HEALTH_ADDR", ""),

		LogLevel: getEnv("ASSETBOT_LOG_LEVEL", ""),
	}
}

// Validate reports every missing required value. The transport credential is
// only required when the bot talks to the chat platform.
func (c *Config) Validate(requireTransport bool) error {
	var errs []error
	if requireTransport && c.TransportToken == "" {
		errs = append(errs, errors.New("TELEGRAM_TOKEN environment variable is required"))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL (or NGROK_URL) environment variable is required"))
	}
	if c.APITimeout <= 0 || c.StatusTimeout <= 0 {
		errs = append(errs, errors.New("API timeouts must be positive"))
	}
	if c.APIRetries < 0 {
		errs = append(errs, errors.New("API_RETRIES must not be negative"))
	}
	if c.SendRate <= 0 {
		errs = append(errs, errors.New("TELEGRAM_SEND_RATE must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
