package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// isolate keeps the developer's real config directory out of the search path.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Default()
	if cfg.Addr != want.Addr {
		t.Errorf("expected addr %q, got %q", want.Addr, cfg.Addr)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Token != "" || cfg.DialogPath != "" || cfg.QR || cfg.DevMode {
		t.Errorf("expected zero values, got %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MDVIEW_ADDR", "127.0.0.1:9999")
	t.Setenv("MDVIEW_LOG_LEVEL", "debug")
	t.Setenv("MDVIEW_DEV_MODE", "true")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr != "127.0.0.1:9999" {
		t.Errorf("expected env addr, got %q", cfg.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected env log level, got %q", cfg.Log.Level)
	}
	if !cfg.DevMode {
		t.Error("expected dev mode from env")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "mdview.yaml")
	content := "addr: 127.0.0.1:7000\ntoken: secret\nlog:\n  format: json\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	v := viper.New()
	cfg, err := Load(v, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr != "127.0.0.1:7000" || cfg.Token != "secret" || cfg.Log.Format != "json" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default level to survive, got %q", cfg.Log.Level)
	}
	if v.ConfigFileUsed() != path {
		t.Errorf("expected config file %q, got %q", path, v.ConfigFileUsed())
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	isolate(t)
	t.Setenv("MDVIEW_LOG_FORMAT", "xml")

	_, err := Load(viper.New(), "")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"uppercase level", func(c *Config) { c.Log.Level = "WARN" }, false},
		{"empty addr", func(c *Config) { c.Addr = " " }, true},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWatch_NoConfigFile(t *testing.T) {
	isolate(t)
	v := viper.New()
	if _, err := Load(v, ""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Without a loaded file there is nothing to watch; must not panic or block.
	Watch(v, func(*Config) { t.Error("unexpected reload") })
}
