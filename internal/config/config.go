// Package config loads the client configuration.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

var (
	// ErrUnsupportedVersion is returned for a config_version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported config_version")
)

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// Config is the top-level client configuration.
type Config struct {
	ConfigVersion int           `mapstructure:"config_version" yaml:"config_version"`
	Backend       BackendConfig `mapstructure:"backend" yaml:"backend"`
	Share         ShareConfig   `mapstructure:"share" yaml:"share"`
	Editor        EditorConfig  `mapstructure:"editor" yaml:"editor"`
	Build         BuildConfig   `mapstructure:"build" yaml:"build"`
	Output        OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging       LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// BackendConfig points at the playground service.
type BackendConfig struct {
	BaseURL        string   `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	AllowedHosts   []string `mapstructure:"allowed_hosts" yaml:"allowed_hosts"`
}

// ShareConfig controls permalink construction.
type ShareConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// EditorConfig seeds the editor part of the session configuration.
type EditorConfig struct {
	Kind           string `mapstructure:"kind" yaml:"kind"`
	Keybinding     string `mapstructure:"keybinding" yaml:"keybinding"`
	Theme          string `mapstructure:"theme" yaml:"theme"`
	PairCharacters string `mapstructure:"pair_characters" yaml:"pair_characters"`
	Orientation    string `mapstructure:"orientation" yaml:"orientation"`
	PrimaryAction  string `mapstructure:"primary_action" yaml:"primary_action"`
}

// BuildConfig seeds the build part of the session configuration.
type BuildConfig struct {
	Channel   string `mapstructure:"channel" yaml:"channel"`
	Mode      string `mapstructure:"mode" yaml:"mode"`
	Edition   string `mapstructure:"edition" yaml:"edition"`
	Backtrace string `mapstructure:"backtrace" yaml:"backtrace"`
}

// OutputConfig controls how resolutions are applied.
type OutputConfig struct {
	DropStaleResponses bool `mapstructure:"drop_stale_responses" yaml:"drop_stale_responses"`
}

// LoggingConfig controls the diagnostic log.
type LoggingConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	c := store.DefaultConfiguration()
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Backend: BackendConfig{
			BaseURL:        "http://127.0.0.1:5000",
			TimeoutSeconds: 30,
			AllowedHosts:   []string{},
		},
		Share: ShareConfig{
			BaseURL: "https://play.example.org/",
		},
		Editor: EditorConfig{
			Kind:           string(c.Editor),
			Keybinding:     c.Keybinding,
			Theme:          c.Theme,
			PairCharacters: string(c.PairCharacters),
			Orientation:    string(c.Orientation),
			PrimaryAction:  string(c.PrimaryAction),
		},
		Build: BuildConfig{
			Channel:   string(c.Channel),
			Mode:      string(c.Mode),
			Edition:   string(c.Edition),
			Backtrace: string(c.Backtrace),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "playpen", "config.yaml"), nil
}

// Timeout is the per-request transport timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// Configuration converts the editor and build sections into the session's
// initial configuration.
func (c Config) Configuration() store.Configuration {
	return store.Configuration{
		Editor:         types.Editor(c.Editor.Kind),
		Keybinding:     c.Editor.Keybinding,
		Theme:          c.Editor.Theme,
		PairCharacters: types.PairCharacters(c.Editor.PairCharacters),
		Orientation:    types.Orientation(c.Editor.Orientation),
		PrimaryAction:  types.PrimaryAction(c.Editor.PrimaryAction),
		Channel:        types.Channel(c.Build.Channel),
		Mode:           types.Mode(c.Build.Mode),
		Edition:        types.Edition(c.Build.Edition),
		Backtrace:      types.Backtrace(c.Build.Backtrace),
	}
}

// InitialState builds the first snapshot of a session.
func (c Config) InitialState() store.State {
	s := store.Initial()
	s.Configuration = c.Configuration()
	s.GlobalConfiguration = store.GlobalConfiguration{BaseURL: c.Share.BaseURL}
	return s
}

// StoreOptions returns the store options this configuration asks for.
func (c Config) StoreOptions() []store.Option {
	opts := []store.Option{store.WithState(c.InitialState())}
	if c.Output.DropStaleResponses {
		opts = append(opts, store.WithStaleGuard())
	}
	return opts
}
