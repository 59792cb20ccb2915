package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Firebase FirebaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Sync     SyncConfig
	QRSecret string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type FirebaseConfig struct {
	ProjectID       string
	WebAPIKey       string
	CredentialsFile string
}

type RedisConfig struct {
	Addr            string
	ProfileCacheTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topics  TopicConfig
	Enabled bool
}

type TopicConfig struct {
	OrderCompleted       string
	ReservationCompleted string
}

type SyncConfig struct {
	// AutoCompleteReservations gates the write-on-read behavior where the
	// reservation synchronizer completes stale reservations as a side effect
	// of receiving a snapshot.
	AutoCompleteReservations bool
	AutoCompleteAfter        time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0, // SSE streams must not be cut off by a write deadline
			IdleTimeout:  60 * time.Second,
		},
		Firebase: FirebaseConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			WebAPIKey:       getEnv("FIREBASE_WEB_API_KEY", ""),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", "localhost:6379"),
			ProfileCacheTTL: time.Duration(getEnvInt("PROFILE_CACHE_TTL_MINUTES", 5)) * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Topics: TopicConfig{
				OrderCompleted:       getEnv("KAFKA_TOPIC_ORDER_COMPLETED", "order-completed"),
				ReservationCompleted: getEnv("KAFKA_TOPIC_RESERVATION_COMPLETED", "reservation-completed"),
			},
		},
		Sync: SyncConfig{
			AutoCompleteReservations: getEnvBool("AUTO_COMPLETE_RESERVATIONS", true),
			AutoCompleteAfter:        time.Duration(getEnvInt("AUTO_COMPLETE_AFTER_MINUTES", 30)) * time.Minute,
		},
		QRSecret: getEnv("QR_SECRET", "dev-only-secret"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
