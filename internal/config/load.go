package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("backend.base_url", cfg.Backend.BaseURL)
	v.SetDefault("backend.timeout_seconds", cfg.Backend.TimeoutSeconds)
	v.SetDefault("backend.allowed_hosts", cfg.Backend.AllowedHosts)
	v.SetDefault("share.base_url", cfg.Share.BaseURL)
	v.SetDefault("editor.kind", cfg.Editor.Kind)
	v.SetDefault("editor.keybinding", cfg.Editor.Keybinding)
	v.SetDefault("editor.theme", cfg.Editor.Theme)
	v.SetDefault("editor.pair_characters", cfg.Editor.PairCharacters)
	v.SetDefault("editor.orientation", cfg.Editor.Orientation)
	v.SetDefault("editor.primary_action", cfg.Editor.PrimaryAction)
	v.SetDefault("build.channel", cfg.Build.Channel)
	v.SetDefault("build.mode", cfg.Build.Mode)
	v.SetDefault("build.edition", cfg.Build.Edition)
	v.SetDefault("build.backtrace", cfg.Build.Backtrace)
	v.SetDefault("output.drop_stale_responses", cfg.Output.DropStaleResponses)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	configLoaded := false
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else {
			configLoaded = true
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if got := v.GetInt("config_version"); got != CurrentConfigVersion {
			return Config{}, fmt.Errorf("%w %d; expected %d", ErrUnsupportedVersion, got, CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Logging.File = expandEnv(cfg.Logging.File)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	for key, raw := range map[string]string{
		"backend.base_url": cfg.Backend.BaseURL,
		"share.base_url":   cfg.Share.BaseURL,
	} {
		parsed, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s must include scheme and host (e.g. https://example.com)", key)
		}
	}
	if cfg.Backend.TimeoutSeconds < 0 {
		return fmt.Errorf("backend.timeout_seconds must not be negative")
	}
	c := cfg.Configuration()
	checks := []struct {
		key   string
		value string
		ok    bool
	}{
		{"editor.kind", cfg.Editor.Kind, c.Editor.Valid()},
		{"editor.pair_characters", cfg.Editor.PairCharacters, c.PairCharacters.Valid()},
		{"editor.orientation", cfg.Editor.Orientation, c.Orientation.Valid()},
		{"editor.primary_action", cfg.Editor.PrimaryAction, c.PrimaryAction.Valid()},
		{"build.channel", cfg.Build.Channel, c.Channel.Valid()},
		{"build.mode", cfg.Build.Mode, c.Mode.Valid()},
		{"build.edition", cfg.Build.Edition, c.Edition.Valid()},
		{"build.backtrace", cfg.Build.Backtrace, c.Backtrace.Valid()},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("unsupported %s %q", ch.key, ch.value)
		}
	}
	return nil
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
