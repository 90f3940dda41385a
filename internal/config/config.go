package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Detection DetectionConfig
	Sync      SyncConfig
	Backend   BackendConfig
	Ai        AIConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
}

type DatabaseConfig struct {
	// Path to the local sqlite file holding the offline queue and cache.
	Path string `validate:"required"`
}

// DetectionConfig carries the context-detection tunables. The reference
// values are empirically chosen defaults, not load-bearing constants.
type DetectionConfig struct {
	TickInterval          time.Duration `validate:"gt=0"`
	DebounceInterval      time.Duration `validate:"gt=0"`
	WatchInterval         time.Duration `validate:"gt=0"`
	ClipboardPollInterval time.Duration `validate:"gt=0"`
	ClipboardHistoryCap   int           `validate:"gt=0"`
	AccessibilityTimeout  time.Duration `validate:"gt=0"`
	SelectionDelta        int           `validate:"gte=0"`
	MaxSuggestedTools     int           `validate:"gt=0"`
	MaxQuickActions       int           `validate:"gt=0"`
	SummaryMaxSentences   int           `validate:"gt=0"`
}

type SyncConfig struct {
	MaxRetries              int           `validate:"gt=0"`
	BackoffBase             time.Duration `validate:"gt=0"`
	ReachabilityProbe       time.Duration `validate:"gt=0"`
	ReachabilityDialTimeout time.Duration `validate:"gt=0"`
	ConflictStrategy        string        `validate:"oneof=server_wins client_wins last_write_wins merge"`
}

type BackendConfig struct {
	BaseURL         string `validate:"required,url"`
	Timeout         time.Duration
	APIKey          string
	CatalogCacheTTL time.Duration `validate:"gt=0"`
}

type AIConfig struct {
	LLMProvider   string
	LLMModel      string
	OllamaBaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "assistant.log"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "assistant.db"),
		},
		Detection: DetectionConfig{
			TickInterval:          getEnvAsDuration("DETECTION_TICK_INTERVAL", 5*time.Second),
			DebounceInterval:      getEnvAsDuration("DETECTION_DEBOUNCE_INTERVAL", 400*time.Millisecond),
			WatchInterval:         getEnvAsDuration("DETECTION_WATCH_INTERVAL", time.Second),
			ClipboardPollInterval: getEnvAsDuration("CLIPBOARD_POLL_INTERVAL", 500*time.Millisecond),
			ClipboardHistoryCap:   getEnvAsInt("CLIPBOARD_HISTORY_CAP", 20),
			AccessibilityTimeout:  getEnvAsDuration("ACCESSIBILITY_TIMEOUT", 500*time.Millisecond),
			SelectionDelta:        getEnvAsInt("SELECTION_SIGNIFICANCE_DELTA", 50),
			MaxSuggestedTools:     getEnvAsInt("MAX_SUGGESTED_TOOLS", 6),
			MaxQuickActions:       getEnvAsInt("MAX_QUICK_ACTIONS", 4),
			SummaryMaxSentences:   getEnvAsInt("SUMMARY_MAX_SENTENCES", 3),
		},
		Sync: SyncConfig{
			MaxRetries:              getEnvAsInt("SYNC_MAX_RETRIES", 3),
			BackoffBase:             getEnvAsDuration("SYNC_BACKOFF_BASE", 2*time.Second),
			ReachabilityProbe:       getEnvAsDuration("REACHABILITY_PROBE_INTERVAL", 5*time.Second),
			ReachabilityDialTimeout: getEnvAsDuration("REACHABILITY_DIAL_TIMEOUT", 2*time.Second),
			ConflictStrategy:        getEnv("SYNC_CONFLICT_STRATEGY", "server_wins"),
		},
		Backend: BackendConfig{
			BaseURL:         getEnv("BACKEND_BASE_URL", "http://localhost:8080"),
			Timeout:         getEnvAsDuration("BACKEND_TIMEOUT", 15*time.Second),
			APIKey:          getEnv("BACKEND_API_KEY", ""),
			CatalogCacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", time.Hour),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
	}
}

// Validate checks the loaded tunables. Call once from the composition root.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
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
