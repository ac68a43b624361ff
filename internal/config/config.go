package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Audit
		Sessions
		QuoteSync
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Audit struct {
		Dir           string
		RetentionDays int // Days to keep archived import payloads (default: 30)
	}
	Sessions struct {
		Lifetime      time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS
	}
	QuoteSync struct {
		Enabled    bool
		Interval   time.Duration // Fixed interval between sync rounds
		Endpoint   string
		FetchLimit int
		Category   string // Category assigned to fetched quotes
		Timeout    time.Duration
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("audit_dir", DefaultAuditDir)
	v.SetDefault("audit_retention_days", 30)

	// Session defaults
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("secure_cookies", false)

	// Quote sync defaults
	v.SetDefault("quote_sync_enabled", true)
	v.SetDefault("quote_sync_interval", "30s")
	v.SetDefault("quote_sync_endpoint", "https://jsonplaceholder.typicode.com/posts")
	v.SetDefault("quote_sync_fetch_limit", 5)
	v.SetDefault("quote_sync_category", "Server")
	v.SetDefault("quote_sync_timeout", "10s")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Audit: Audit{
			Dir:           v.GetString("AUDIT_DIR"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Sessions: Sessions{
			Lifetime:      v.GetDuration("SESSION_LIFETIME"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		QuoteSync: QuoteSync{
			Enabled:    v.GetBool("QUOTE_SYNC_ENABLED"),
			Interval:   v.GetDuration("QUOTE_SYNC_INTERVAL"),
			Endpoint:   v.GetString("QUOTE_SYNC_ENDPOINT"),
			FetchLimit: v.GetInt("QUOTE_SYNC_FETCH_LIMIT"),
			Category:   v.GetString("QUOTE_SYNC_CATEGORY"),
			Timeout:    v.GetDuration("QUOTE_SYNC_TIMEOUT"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
