package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// Storage Configuration
	StorageDriver  string // sqlite, redis or memory
	StorageKey     string
	SQLitePath     string
	PersistRetries int
	// Redis Configuration (when StorageDriver is redis)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	// Kafka Configuration (optional - mutation events)
	UseKafka        bool
	KafkaBrokers    []string
	KafkaTopicItems string
	KafkaTopicStock string
	KafkaClientID   string
	KafkaAcks       string
	KafkaRetries    int
	// Idempotency window for repeated X-Request-ID writes
	IdempotencyTTLSeconds int
}

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Parse Kafka brokers (comma-separated)
	kafkaBrokersStr := getEnv("KAFKA_BROKERS", "localhost:9093")
	kafkaBrokers := strings.Split(kafkaBrokersStr, ",")
	for i, broker := range kafkaBrokers {
		kafkaBrokers[i] = strings.TrimSpace(broker)
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		// Storage Configuration
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", StorageSQLite)),
		StorageKey:     getEnv("STORAGE_KEY", "fridge.items"),
		SQLitePath:     getEnv("SQLITE_PATH", "./fridge.db"),
		PersistRetries: getEnvAsInt("PERSIST_RETRIES", 3),
		// Redis Configuration
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		// Kafka Configuration
		UseKafka:        getEnvAsBool("USE_KAFKA", false),
		KafkaBrokers:    kafkaBrokers,
		KafkaTopicItems: getEnv("KAFKA_TOPIC_ITEMS", "fridge.items"),
		KafkaTopicStock: getEnv("KAFKA_TOPIC_STOCK", "fridge.stock"),
		KafkaClientID:   getEnv("KAFKA_CLIENT_ID", "fridge-service"),
		KafkaAcks:       getEnv("KAFKA_ACKS", "all"),
		KafkaRetries:    getEnvAsInt("KAFKA_RETRIES", 3),
		// Idempotency
		IdempotencyTTLSeconds: getEnvAsInt("IDEMPOTENCY_TTL_SECONDS", 300),
	}
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
