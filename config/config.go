package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	CORS_ORIGIN  string
	APP_BASE_URL string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	// Blob storage (MinIO / S3-compatible)
	MINIO_ENDPOINT   string
	MINIO_ACCESS_KEY string
	MINIO_SECRET_KEY string
	MINIO_BUCKET     string
	MINIO_USE_SSL    bool
	MINIO_URL_TTL    string

	// Task queue (asynq / Redis)
	REDIS_ADDR     string
	REDIS_PASSWORD string
	WORKER_POOL    string

	// AI stage adapters: "mock" is the only provider wired today
	AI_PROVIDER     string
	TARGET_LANGUAGE string

	// Lifecycle event export; empty broker list disables the producer
	KAFKA_BROKERS string
	KAFKA_TOPIC   string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")
	APP_BASE_URL = getEnv("APP_BASE_URL", "http://localhost:8080")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	MINIO_ENDPOINT = mustEnv("MINIO_ENDPOINT")
	MINIO_ACCESS_KEY = mustEnv("MINIO_ACCESS_KEY")
	MINIO_SECRET_KEY = mustEnv("MINIO_SECRET_KEY")
	MINIO_BUCKET = getEnv("MINIO_BUCKET", "kalaconnect")
	MINIO_USE_SSL = getEnv("MINIO_USE_SSL", "false") == "true"
	MINIO_URL_TTL = getEnv("MINIO_URL_TTL", "15m")

	REDIS_ADDR = getEnv("REDIS_ADDR", "localhost:6379")
	REDIS_PASSWORD = getEnv("REDIS_PASSWORD", "")
	WORKER_POOL = getEnv("WORKER_POOL", "4")

	AI_PROVIDER = getEnv("AI_PROVIDER", "mock")
	TARGET_LANGUAGE = getEnv("TARGET_LANGUAGE", "en")

	KAFKA_BROKERS = getEnv("KAFKA_BROKERS", "")
	KAFKA_TOPIC = getEnv("KAFKA_TOPIC", "craft-events")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
