package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "TRIPDIARY_"

// parseEnv loads envFile (when it exists) into the process environment and
// overlays cfg with TRIPDIARY_* variables. Variables already set in the
// environment take precedence over the file.
func parseEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var errs []error
	setString(&cfg.BaseURL, "BASE_URL")
	setString(&cfg.FolderPath, "FOLDER_PATH")
	setString(&cfg.DiaryPath, "DIARY_PATH")
	setString(&cfg.FeedPath, "FEED_PATH")
	errs = append(errs,
		setDuration(&cfg.ListTimeout, "LIST_TIMEOUT"),
		setDuration(&cfg.CreateTimeout, "CREATE_TIMEOUT"),
		setDuration(&cfg.DetailTimeout, "DETAIL_TIMEOUT"),
		setDuration(&cfg.HealthTimeout, "HEALTH_TIMEOUT"),
		setDuration(&cfg.UploadTimeout, "UPLOAD_TIMEOUT"),
		setDuration(&cfg.OnlineCheckInterval, "ONLINE_CHECK_INTERVAL"),
		setFloat(&cfg.RequestsPerSecond, "REQUESTS_PER_SECOND"),
		setInt(&cfg.Burst, "BURST"),
		setInt64(&cfg.MaxUploadBytes, "MAX_UPLOAD_BYTES"),
		setInt(&cfg.MaxImageDimension, "MAX_IMAGE_DIMENSION"),
	)
	setString(&cfg.DatabaseDSN, "DATABASE_DSN")
	setString(&cfg.WorkDir, "WORK_DIR")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	return errors.Join(errs...)
}

func lookup(key string) (string, bool) {
	return os.LookupEnv(envPrefix + key)
}

// setString accepts an explicitly empty value, so TRIPDIARY_DATABASE_DSN=""
// turns persistence off.
func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = d
	return nil
}

func setInt(dst *int, key string) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = n
	return nil
}

func setInt64(dst *int64, key string) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = f
	return nil
}
