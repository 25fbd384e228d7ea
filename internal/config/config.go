package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DBPath               string `toml:"db_path"`
	ReminderLedgerPath   string `toml:"reminder_ledger_path"`
	SoundAssetPath       string `toml:"sound_asset_path"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
	SchedulerBuffer      int    `toml:"scheduler_buffer"`
	SessionTTLHours      int    `toml:"session_ttl_hours"`
	LogLevel             string `toml:"log_level"`
	LogFormat            string `toml:"log_format"`
}

func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".taskflow")
	return Config{
		DBPath:               filepath.Join(dir, "taskflow.db"),
		ReminderLedgerPath:   filepath.Join(dir, "reminders.json"),
		SoundAssetPath:       "",
		DesktopNotifications: true,
		SchedulerBuffer:      64,
		SessionTTLHours:      72,
		LogLevel:             "info",
		LogFormat:            "text",
	}
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".taskflow", "config.toml")
}

// Load layers defaults, the TOML file (when present), and TASKFLOW_*
// environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	return FromEnv(cfg), nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_REMINDER_LEDGER_PATH")); v != "" {
		cfg.ReminderLedgerPath = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_SOUND_ASSET_PATH")); v != "" {
		cfg.SoundAssetPath = v
	}
	if v, ok := getEnvBool("TASKFLOW_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TASKFLOW_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("TASKFLOW_SESSION_TTL_HOURS"); ok && v > 0 {
		cfg.SessionTTLHours = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKFLOW_LOG_FORMAT")); v != "" {
		cfg.LogFormat = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
