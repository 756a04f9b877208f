package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/tripdiary/internal/flagx"
	"github.com/dmitrijs2005/tripdiary/internal/timex"
)

// JSONConfig is the file layout. Pointer fields tell "absent" from zero, so
// a file can set upload_timeout to 0 explicitly. Durations are strings like
// "15s" or integer nanoseconds.
type JSONConfig struct {
	BaseURL    *string `json:"base_url"`
	FolderPath *string `json:"folder_path"`
	DiaryPath  *string `json:"diary_path"`
	FeedPath   *string `json:"feed_path"`

	ListTimeout   *timex.Duration `json:"list_timeout"`
	CreateTimeout *timex.Duration `json:"create_timeout"`
	DetailTimeout *timex.Duration `json:"detail_timeout"`
	HealthTimeout *timex.Duration `json:"health_timeout"`
	UploadTimeout *timex.Duration `json:"upload_timeout"`

	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`

	RequestsPerSecond *float64 `json:"requests_per_second"`
	Burst             *int     `json:"burst"`

	DatabaseDSN *string `json:"database_dsn"`
	WorkDir     *string `json:"work_dir"`

	MaxUploadBytes    *int64 `json:"max_upload_bytes"`
	MaxImageDimension *int   `json:"max_image_dimension"`

	LogLevel *string `json:"log_level"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	jc.apply(cfg)
	return nil
}

func (jc JSONConfig) apply(cfg *Config) {
	overlay(&cfg.BaseURL, jc.BaseURL)
	overlay(&cfg.FolderPath, jc.FolderPath)
	overlay(&cfg.DiaryPath, jc.DiaryPath)
	overlay(&cfg.FeedPath, jc.FeedPath)

	overlayDuration(&cfg.ListTimeout, jc.ListTimeout)
	overlayDuration(&cfg.CreateTimeout, jc.CreateTimeout)
	overlayDuration(&cfg.DetailTimeout, jc.DetailTimeout)
	overlayDuration(&cfg.HealthTimeout, jc.HealthTimeout)
	overlayDuration(&cfg.UploadTimeout, jc.UploadTimeout)
	overlayDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)

	overlay(&cfg.RequestsPerSecond, jc.RequestsPerSecond)
	overlay(&cfg.Burst, jc.Burst)
	overlay(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlay(&cfg.WorkDir, jc.WorkDir)
	overlay(&cfg.MaxUploadBytes, jc.MaxUploadBytes)
	overlay(&cfg.MaxImageDimension, jc.MaxImageDimension)
	overlay(&cfg.LogLevel, jc.LogLevel)
}

func overlay[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func overlayDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
