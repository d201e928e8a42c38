package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Remote RemoteConfig
	Cache  CacheConfig
	Upload UploadConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

// RemoteConfig holds the two external collaborators. Both URLs are injected
// into their clients at construction; nothing reads them as globals.
type RemoteConfig struct {
	ChatBackendURL  string
	SessionStoreURL string
	TimeoutSeconds  int
}

type CacheConfig struct {
	// FilePath is where the summary list persists. Empty means in-memory
	// only (history lost on restart).
	FilePath string
}

type UploadConfig struct {
	MaxBytes int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3100"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/shell.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Remote: RemoteConfig{
			ChatBackendURL:  getEnv("CHAT_BACKEND_URL", "http://localhost:8000"),
			SessionStoreURL: getEnv("SESSION_STORE_URL", "http://localhost:8000"),
			TimeoutSeconds:  getEnvAsInt("REMOTE_TIMEOUT_SECONDS", 30),
		},
		Cache: CacheConfig{
			FilePath: getEnv("CACHE_FILE_PATH", "data/sessions.json"),
		},
		Upload: UploadConfig{
			MaxBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10*1024*1024)),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
