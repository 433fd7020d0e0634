package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers       []string
	KafkaReportTopic   string
	KafkaGroupID       string
	BatchSize          int
	BatchFlushInterval time.Duration

	// Alert dispatcher.
	AlertsEnabled bool
	AlertMinLevel domain.AlertLevel

	// Expo push service.
	ExpoBaseURL     string
	ExpoAccessToken string
	ExpoTimeout     time.Duration

	// Nominatim geocoding.
	NominatimEnabled   bool
	NominatimBaseURL   string
	NominatimUserAgent string
	NominatimRegion    string
	NominatimTimeout   time.Duration
	NominatimCacheSize int

	FloodAreaWindow time.Duration

	TracingEnabled      bool
	TracingExporter     string
	TracingOTLPEndpoint string
	TracingSampleRatio  float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	redisDB, err := parseNonNegativeInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	alertMinLevel, err := domain.ParseAlertLevel(sharedcfg.EnvOrDefault("ALERT_MIN_LEVEL", "moderate"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALERT_MIN_LEVEL: %w", err)
	}

	expoTimeout, err := parsePositiveDuration("EXPO_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	nominatimTimeout, err := parsePositiveDuration("NOMINATIM_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	floodAreaWindow, err := parsePositiveDuration("FLOOD_AREA_WINDOW", "24h")
	if err != nil {
		return nil, err
	}

	sampleRatio, err := parseSampleRatio()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),

		RedisAddr:     sharedcfg.EnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportTopic:   sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "flood-reports"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "rain-alert-dispatcher"),
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		AlertsEnabled: parseBool("ALERTS_ENABLED", true),
		AlertMinLevel: alertMinLevel,

		ExpoBaseURL:     sharedcfg.EnvOrDefault("EXPO_BASE_URL", "https://exp.host/--/api/v2/push/send"),
		ExpoAccessToken: os.Getenv("EXPO_ACCESS_TOKEN"),
		ExpoTimeout:     expoTimeout,

		NominatimEnabled:   parseBool("NOMINATIM_ENABLED", true),
		NominatimBaseURL:   sharedcfg.EnvOrDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: sharedcfg.EnvOrDefault("NOMINATIM_USER_AGENT", "rain-alert-service/1.0"),
		NominatimRegion:    sharedcfg.EnvOrDefault("NOMINATIM_REGION", ", San Fernando, Pampanga, Philippines"),
		NominatimTimeout:   nominatimTimeout,
		NominatimCacheSize: parseCacheSize(),

		FloodAreaWindow: floodAreaWindow,

		TracingEnabled:      parseBool("TRACING_ENABLED", false),
		TracingExporter:     strings.ToLower(sharedcfg.EnvOrDefault("TRACING_EXPORTER", "stdout")),
		TracingOTLPEndpoint: sharedcfg.EnvOrDefault("TRACING_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRatio:  sampleRatio,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaReportTopic == "" {
		return nil, errors.New("KAFKA_REPORT_TOPIC is required")
	}
	if cfg.TracingExporter != "stdout" && cfg.TracingExporter != "otlp" {
		return nil, errors.New("invalid TRACING_EXPORTER: must be stdout or otlp")
	}
	if cfg.NominatimEnabled && cfg.NominatimUserAgent == "" {
		return nil, errors.New("NOMINATIM_ENABLED is true but NOMINATIM_USER_AGENT is not set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseNonNegativeInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true"
	}
	return def
}

func parseSampleRatio() (float64, error) {
	s := os.Getenv("TRACING_SAMPLE_RATIO")
	if s == "" {
		return 1, nil
	}
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r < 0 || r > 1 {
		return 0, errors.New("invalid TRACING_SAMPLE_RATIO: must be between 0 and 1")
	}
	return r, nil
}

func parseCacheSize() int {
	if s := os.Getenv("NOMINATIM_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
