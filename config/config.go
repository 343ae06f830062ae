package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Observ  ObservabilityConfig
	Search  SearchConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers     []string
	TopicOrders string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type SearchConfig struct {
	DebounceWindow time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	backendTimeout, _ := strconv.Atoi(getEnv("BACKEND_TIMEOUT_SECONDS", "10"))
	debounceMs, _ := strconv.Atoi(getEnv("SEARCH_DEBOUNCE_MS", "500"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8082/api/v1"),
			Timeout: time.Duration(backendTimeout) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicOrders: getEnv("KAFKA_TOPIC_ORDER_EVENTS", "storefront-order-events"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Search: SearchConfig{
			DebounceWindow: time.Duration(debounceMs) * time.Millisecond,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s, backend=%s", cfg.Server.Env, cfg.Server.Port, cfg.Backend.BaseURL)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
