package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr     string
	BackendURL     string
	BackendToken   string
	DBPath         string
	PhotoCachePath string
	DebounceDelay  time.Duration
	ClaudeAPIKey   string
	ClaudeModel    string
	LogLevel       string
	LogFile        string
}

func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":3000"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8080/api"),
		BackendToken:   getEnv("BACKEND_TOKEN", ""),
		DBPath:         getEnv("DB_PATH", "/data/homesheet.db"),
		PhotoCachePath: getEnv("PHOTO_CACHE_PATH", "/data/photocache"),
		DebounceDelay:  time.Duration(getEnvInt("DEBOUNCE_MS", 300)) * time.Millisecond,
		ClaudeAPIKey:   getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:    getEnv("CLAUDE_MODEL", "claude-3-5-sonnet-latest"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
