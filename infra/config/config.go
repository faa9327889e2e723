package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAddr                   = ":8000"
	defaultStaticDir              = "static"
	defaultGreeting               = "Greetings from Salford, UK on this fine Tuesday evening!"
	defaultKafkaTopic             = "items.events"
	defaultServiceName            = "items"
	defaultShutdownTimeoutSeconds = 5
)

type Config struct {
	Addr            string
	GinMode         string
	StaticDir       string
	Greeting        string
	RedisAddr       string
	KafkaBrokers    []string
	KafkaTopic      string
	LokiURL         string
	OTLPEndpoint    string
	ServiceName     string
	ShutdownTimeout time.Duration
}

// Load reads the service configuration from the environment.
// Unset or malformed values fall back to defaults.
func Load() Config {
	return Config{
		Addr:            getEnv("ADDR", defaultAddr),
		GinMode:         os.Getenv("GIN_MODE"),
		StaticDir:       getEnv("STATIC_DIR", defaultStaticDir),
		Greeting:        getEnv("GREETING", defaultGreeting),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", defaultKafkaTopic),
		LokiURL:         os.Getenv("LOKI_URL"),
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:     getEnv("SERVICE_NAME", defaultServiceName),
		ShutdownTimeout: time.Duration(getPositiveInt("SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSeconds)) * time.Second,
	}
}

func getEnv(key string, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getPositiveInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
