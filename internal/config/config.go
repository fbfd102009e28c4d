package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config aggregates the runtime settings of the ddt binary.
type Config struct {
	DBPath     string
	ReportsDir string
	ReportTopN int // 0 = use the stored report_top_n setting
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env).
// defaultDBPath is used when DDT_DB_PATH is unset.
func Load(defaultDBPath string) Config {
	_ = godotenv.Load(".env")

	return Config{
		DBPath:     getString("DDT_DB_PATH", defaultDBPath),
		ReportsDir: getString("DDT_REPORTS_DIR", "reports"),
		ReportTopN: getInt("DDT_REPORT_TOP_N", 0),
		Logger: LoggerConfig{
			Level:    getString("DDT_LOG_LEVEL", "warn"),
			Encoding: getString("DDT_LOG_ENCODING", "console"),
		},
	}
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}
