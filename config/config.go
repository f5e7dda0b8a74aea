// Package config loads mdview settings from defaults, an optional YAML file,
// MDVIEW_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const EnvPrefix = "MDVIEW"

// Config represents the complete mdview configuration
type Config struct {
	// Addr is the listen address of the command transport. Loopback by default.
	Addr string `mapstructure:"addr"`
	// Token authenticates the front-end. Empty means one is generated per run.
	Token   string `mapstructure:"token"`
	DevMode bool   `mapstructure:"dev_mode"`
	// QR prints a QR code of the connection URL when stdout is a terminal.
	QR bool `mapstructure:"qr"`
	// DialogPath replaces the native file dialog with a fixed answer (headless runs).
	DialogPath string    `mapstructure:"dialog_path"`
	Log        LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	// Level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Format: "text" or "json"
	Format string `mapstructure:"format"`
	// File, when set, receives log output instead of stderr.
	File string `mapstructure:"file"`
}

func Default() *Config {
	return &Config{
		Addr: "127.0.0.1:6420",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("token", defaults.Token)
	v.SetDefault("dev_mode", defaults.DevMode)
	v.SetDefault("qr", defaults.QR)
	v.SetDefault("dialog_path", defaults.DialogPath)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.file", defaults.Log.File)
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mdview")
}

// Load reads configuration into v and returns the validated result.
// A missing config file is fine unless cfgFile names it explicitly.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := ConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	// e.g. MDVIEW_LOG_LEVEL for log.level
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return decode(v)
}

// Watch reloads the config file on change and hands the new config to
// onChange. It does nothing when no config file was loaded.
func Watch(v *viper.Viper, onChange func(*Config)) {
	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			slog.Warn("ignoring invalid config change", "file", e.Name, "error", err)
			return
		}
		slog.Info("config reloaded", "file", e.Name, "op", e.Op.String())
		onChange(cfg)
	})
	v.WatchConfig()
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
