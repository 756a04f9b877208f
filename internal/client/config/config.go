package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings of the tripdiary client.
type Config struct {
	BaseURL    string
	FolderPath string
	DiaryPath  string
	FeedPath   string

	ListTimeout   time.Duration
	CreateTimeout time.Duration
	DetailTimeout time.Duration
	HealthTimeout time.Duration
	// UploadTimeout bounds a diary upload; 0 waits indefinitely.
	UploadTimeout time.Duration

	OnlineCheckInterval time.Duration

	RequestsPerSecond float64
	Burst             int

	// DatabaseDSN is the SQLite snapshot file; empty keeps everything in memory.
	DatabaseDSN string
	// WorkDir holds temporary files such as downscaled photos.
	WorkDir string

	MaxUploadBytes    int64
	MaxImageDimension int

	LogLevel string
}

// LoadDefaults populates c with the production defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://travel-journal-ai.onrender.com"
	c.FolderPath = "/api/folder"
	c.DiaryPath = "/api/diary"
	c.FeedPath = "/diaries/public"

	c.ListTimeout = 15 * time.Second
	c.CreateTimeout = 10 * time.Second
	c.DetailTimeout = 10 * time.Second
	c.HealthTimeout = 10 * time.Second
	c.UploadTimeout = 0

	c.OnlineCheckInterval = 3 * time.Second

	c.RequestsPerSecond = 5
	c.Burst = 10

	c.DatabaseDSN = "diary.db"
	c.WorkDir = ""

	c.MaxUploadBytes = 5 << 20
	c.MaxImageDimension = 2048

	c.LogLevel = "info"
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.UploadTimeout < 0 {
		return fmt.Errorf("upload timeout must not be negative, got %s", c.UploadTimeout)
	}
	return nil
}

// LoadConfig applies, in order: defaults, environment (.env included),
// the JSON file named by -c/-config, and command-line flags. Later sources
// win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
