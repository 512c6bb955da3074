package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App        AppConfig
	Paths      PathsConfig
	Creatomate CreatomateConfig
	Instagram  InstagramConfig
	OpenAI     OpenAIConfig
	Scraper    ScraperConfig
	Ingest     IngestConfig
}

type AppConfig struct {
	Version  string
	Port     string
	Debug    bool
	BasePath string
}

type PathsConfig struct {
	Data     string
	Content  string
	Images   string
	Articles string
	Storages string
}

type CreatomateConfig struct {
	APIKey     string
	BaseURL    string
	TemplateID string

	VideoWidth    int
	VideoHeight   int
	VideoFPS      int
	VideoDuration int

	DefaultMusic      string
	DefaultTransition string

	// Render polling: fixed interval, bounded attempts. The worst-case wait
	// is PollAttempts * PollInterval.
	PollInterval time.Duration
	PollAttempts int
}

type InstagramConfig struct {
	AccessToken string
	AccountID   string
	PageID      string
	BaseURL     string
}

type OpenAIConfig struct {
	APIKey string
}

type ScraperConfig struct {
	MagazineURL  string
	ArticleLimit int
	HTTPTimeout  time.Duration
}

type IngestConfig struct {
	// Cron spec for the periodic ingest-and-merge cycle.
	CronSpec     string
	RunOnStartup bool
}

// Global provides access to the loaded configuration.
var Global *Config

// LoadConfig builds the configuration from environment variables with the
// defaults the studibuch deployment runs on.
func LoadConfig() *Config {
	dataDir := getEnv("RIONA_DATA_DIR", "data")

	cfg := &Config{
		App: AppConfig{
			Version:  "v1.0.0",
			Port:     getEnv("APP_PORT", "3000"),
			Debug:    getEnvBool("APP_DEBUG", false),
			BasePath: getEnv("APP_BASE_PATH", ""),
		},
		Paths: PathsConfig{
			Data:     dataDir,
			Content:  dataDir + "/content",
			Images:   dataDir + "/images",
			Articles: dataDir + "/articles",
			Storages: getEnv("RIONA_STORAGES_DIR", "storages"),
		},
		Creatomate: CreatomateConfig{
			APIKey:            os.Getenv("CREATOMATE_API_KEY"),
			BaseURL:           getEnv("CREATOMATE_BASE_URL", "https://api.creatomate.com/v1"),
			TemplateID:        getEnv("CREATOMATE_TEMPLATE_ID", "867374af-946c-44b4-88a3-8d36e3e51d8e"),
			VideoWidth:        1080,
			VideoHeight:       1920,
			VideoFPS:          30,
			VideoDuration:     getEnvInt("CREATOMATE_VIDEO_DURATION", 30),
			DefaultMusic:      "background-music-1",
			DefaultTransition: "fade",
			PollInterval:      getEnvDuration("CREATOMATE_POLL_INTERVAL", 10*time.Second),
			PollAttempts:      getEnvInt("CREATOMATE_POLL_ATTEMPTS", 30),
		},
		Instagram: InstagramConfig{
			AccessToken: os.Getenv("INSTAGRAM_ACCESS_TOKEN"),
			AccountID:   os.Getenv("INSTAGRAM_ACCOUNT_ID"),
			PageID:      os.Getenv("FACEBOOK_PAGE_ID"),
			BaseURL:     getEnv("INSTAGRAM_BASE_URL", "https://graph.facebook.com/v18.0"),
		},
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
		},
		Scraper: ScraperConfig{
			MagazineURL:  getEnv("MAGAZINE_URL", "https://studibuch.de/magazin/"),
			ArticleLimit: getEnvInt("MAGAZINE_ARTICLE_LIMIT", 15),
			HTTPTimeout:  getEnvDuration("MAGAZINE_HTTP_TIMEOUT", 15*time.Second),
		},
		Ingest: IngestConfig{
			CronSpec:     getEnv("INGEST_CRON_SPEC", "@every 24h"),
			RunOnStartup: getEnvBool("INGEST_RUN_ON_STARTUP", true),
		},
	}

	Global = cfg
	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
