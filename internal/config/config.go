package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds all settings, populated from environment variables.
type Config struct {
	DataDir         string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// LoadReportDelay is how long after loading starts the failed files are
	// reported, all at once.
	LoadReportDelay time.Duration

	YearMin        int
	YearMax        int
	ViewportWidth  float64
	ViewportHeight float64

	// CycloneSignedHemispheres negates W/S storm coordinates instead of only
	// stripping the suffix.
	CycloneSignedHemispheres bool

	// Kafka snapshot export.
	KafkaExportEnabled bool
	KafkaBrokers       []string
	KafkaExportTopic   string
}

// LoadEnvFile reads KEY=value pairs from path into the environment without
// overriding variables that are already set. An empty path is a no-op.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	reportDelay, err := time.ParseDuration(sharedcfg.EnvOrDefault("LOAD_REPORT_DELAY", "2s"))
	if err != nil || reportDelay < 0 {
		return nil, errors.New("invalid LOAD_REPORT_DELAY")
	}

	yearMin, err := parseInt("YEAR_MIN", "1918")
	if err != nil {
		return nil, err
	}
	yearMax, err := parseInt("YEAR_MAX", "2018")
	if err != nil {
		return nil, err
	}
	width, err := parsePositive("VIEWPORT_WIDTH", "960")
	if err != nil {
		return nil, err
	}
	height, err := parsePositive("VIEWPORT_HEIGHT", "500")
	if err != nil {
		return nil, err
	}
	signed, err := parseBool("CYCLONE_SIGNED_HEMISPHERES")
	if err != nil {
		return nil, err
	}
	exportEnabled, err := parseBool("KAFKA_EXPORT_ENABLED")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:                  sharedcfg.EnvOrDefault("DATA_DIR", "data/mock"),
		HTTPAddr:                 sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:                 sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:                sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:          shutdownTimeout,
		LoadReportDelay:          reportDelay,
		YearMin:                  yearMin,
		YearMax:                  yearMax,
		ViewportWidth:            width,
		ViewportHeight:           height,
		CycloneSignedHemispheres: signed,
		KafkaExportEnabled:       exportEnabled,
		KafkaBrokers:             sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaExportTopic:         sharedcfg.EnvOrDefault("KAFKA_EXPORT_TOPIC", "natural-disaster-events"),
	}

	if cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR is required")
	}
	if cfg.YearMin > cfg.YearMax {
		return nil, errors.New("YEAR_MIN must not exceed YEAR_MAX")
	}
	if cfg.KafkaExportEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_EXPORT_ENABLED is true")
		}
		if cfg.KafkaExportTopic == "" {
			return nil, errors.New("KAFKA_EXPORT_TOPIC is required when KAFKA_EXPORT_ENABLED is true")
		}
	}

	return cfg, nil
}

func parseInt(key, def string) (int, error) {
	n, err := strconv.Atoi(sharedcfg.EnvOrDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parsePositive(key, def string) (float64, error) {
	v, err := strconv.ParseFloat(sharedcfg.EnvOrDefault(key, def), 64)
	if err != nil || !(v > 0) {
		return 0, fmt.Errorf("invalid %s: must be a positive number", key)
	}
	return v, nil
}

func parseBool(key string) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return b, nil
}
