package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	RedisAddr               string
	RedisPassword           string
	RedisDB                 int
	// NotificationWindowSeconds is how long the aggregator waits after the
	// first event of a window before running the aggregation pass.
	NotificationWindowSeconds int
	// EventTTLSeconds bounds the lifetime of an event buffer; it must be
	// larger than the notification window.
	EventTTLSeconds int
	CacheTTLSeconds int
}

func Load() *Config {
	return &Config{
		Port:                      getEnv("PORT", "8080"),
		Env:                       getEnv("ENV", "development"),
		FirebaseCredentialsPath:   getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		PostgresConnStr:           getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                  getEnv("MONGO_URI", ""),
		MongoDatabase:             getEnv("MONGO_DATABASE", "socialnews"),
		RedisAddr:                 getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:             getEnv("REDIS_PASSWORD", ""),
		RedisDB:                   getEnvInt("REDIS_DB", 0),
		NotificationWindowSeconds: getEnvInt("NOTIFICATION_WINDOW_SECONDS", 30),
		EventTTLSeconds:           getEnvInt("EVENT_TTL_SECONDS", 300),
		CacheTTLSeconds:           getEnvInt("CACHE_TTL_SECONDS", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
