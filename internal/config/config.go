package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Analysis AnalysisConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
	DataDir     string
}

type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type AnalysisConfig struct {
	TextTickInterval  time.Duration // progress cadence for text analysis
	MediaTickInterval time.Duration // progress cadence for file/video analysis
	MinTextLength     int
	ResultCacheTTL    time.Duration
}

type ChatConfig struct {
	Mode          string
	DetachTimeout time.Duration // budget for the fire-and-forget clear
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "logs/biaspro.log"),
			DataDir:     getEnv("DATA_DIR", defaultDataDir()),
		},
		API: APIConfig{
			BaseURL:        getEnv("BIASPRO_API_BASE_URL", "http://localhost:3000/api"),
			RequestTimeout: getEnvAsDuration("BIASPRO_REQUEST_TIMEOUT", 120*time.Second),
		},
		Analysis: AnalysisConfig{
			TextTickInterval:  getEnvAsDuration("ANALYSIS_TEXT_TICK", 400*time.Millisecond),
			MediaTickInterval: getEnvAsDuration("ANALYSIS_MEDIA_TICK", 3*time.Second),
			MinTextLength:     getEnvAsInt("ANALYSIS_MIN_TEXT_LENGTH", 10),
			ResultCacheTTL:    getEnvAsDuration("ANALYSIS_RESULT_CACHE_TTL", 1*time.Hour),
		},
		Chat: ChatConfig{
			Mode:          getEnv("CHAT_MODE", "creator"),
			DetachTimeout: getEnvAsDuration("CHAT_DETACH_TIMEOUT", 3*time.Second),
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".biaspro"
	}
	return filepath.Join(home, ".biaspro")
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
