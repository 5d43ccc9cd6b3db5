package params

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Server holds the market-data edge's listen configuration.
type Server struct {
	ListenAddr             string
	MetricsAddr            string
	ShutdownTimeoutSeconds int
}

// Storage holds the trade journal's on-disk configuration.
type Storage struct {
	JournalPath string
}

// Logging holds the structured logger's output configuration.
type Logging struct {
	LogFile string
}

type Config struct {
	Server  Server
	Storage Storage
	Logging Logging
}

func Default() Config {
	return Config{
		Server: Server{
			ListenAddr:             ":8080",
			MetricsAddr:            ":9090",
			ShutdownTimeoutSeconds: 5,
		},
		Storage: Storage{
			JournalPath: "data/journal",
		},
		Logging: Logging{
			LogFile: "data/matchengine.log",
		},
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	cfg.Server.ListenAddr = getEnv("LISTEN_ADDR", cfg.Server.ListenAddr)
	cfg.Server.MetricsAddr = getEnv("METRICS_ADDR", cfg.Server.MetricsAddr)
	cfg.Server.ShutdownTimeoutSeconds = getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", cfg.Server.ShutdownTimeoutSeconds)
	cfg.Storage.JournalPath = getEnv("JOURNAL_PATH", cfg.Storage.JournalPath)
	cfg.Logging.LogFile = getEnv("LOG_FILE", cfg.Logging.LogFile)

	return cfg
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer environment variable, falling back to
// defaultValue on absence or parse failure.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
