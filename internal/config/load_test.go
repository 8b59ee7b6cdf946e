package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/interpretive-systems/playpen/internal/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://127.0.0.1:5000" || cfg.Backend.TimeoutSeconds != 30 {
		t.Fatalf("unexpected backend defaults %+v", cfg.Backend)
	}
	if cfg.Editor.PrimaryAction != "auto" || cfg.Build.Edition != "2018" {
		t.Fatalf("unexpected defaults %+v %+v", cfg.Editor, cfg.Build)
	}
}

func TestLoadRejectsUnsupportedConfigVersion(t *testing.T) {
	path := writeConfig(t, "config_version: 7\n")
	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestLoadRequiresConfigVersion(t *testing.T) {
	path := writeConfig(t, "backend:\n  base_url: http://localhost:5000\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "config_version is required") {
		t.Fatalf("expected config_version error, got %v", err)
	}
}

func TestLoadOverridesAndExpandsEnv(t *testing.T) {
	t.Setenv("PLAYPEN_TEST_LOGDIR", "/tmp/playpen-logs")
	path := writeConfig(t, `
config_version: 1
backend:
  base_url: https://play.example.org/api
  timeout_seconds: 5
  allowed_hosts: [mirror.example.org]
editor:
  primary_action: compile
  orientation: vertical
build:
  channel: nightly
  edition: "2021"
output:
  drop_stale_responses: true
logging:
  file: ${PLAYPEN_TEST_LOGDIR}/client.log
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.File != "/tmp/playpen-logs/client.log" {
		t.Fatalf("logging.file = %q", cfg.Logging.File)
	}
	if cfg.Timeout().Seconds() != 5 || len(cfg.Backend.AllowedHosts) != 1 {
		t.Fatalf("backend = %+v", cfg.Backend)
	}
	c := cfg.Configuration()
	if c.PrimaryAction != types.PrimaryActionCompile || c.Channel != types.ChannelNightly || c.Edition != types.Edition2021 {
		t.Fatalf("configuration = %+v", c)
	}
	if c.Keybinding != "ace" || c.Mode != types.ModeDebug {
		t.Fatalf("unset keys should keep defaults: %+v", c)
	}
	if len(cfg.StoreOptions()) != 2 {
		t.Fatalf("expected state and stale guard options")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"config_version: 1\nbackend:\n  base_url: not-a-url\n": "backend.base_url must include scheme and host",
		"config_version: 1\nbuild:\n  channel: canary\n":       "unsupported build.channel",
		"config_version: 1\neditor:\n  primary_action: lint\n": "unsupported editor.primary_action",
	}
	for body, want := range cases {
		_, err := Load(writeConfig(t, body))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q, got %v", want, err)
		}
	}
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if written != path {
		t.Fatalf("written = %q", written)
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load written default: %v", err)
	}
	if cfg.Share.BaseURL != DefaultConfig().Share.BaseURL {
		t.Fatalf("share.base_url = %q", cfg.Share.BaseURL)
	}
}

func TestInitialState(t *testing.T) {
	s := DefaultConfig().InitialState()
	if s.GlobalConfiguration.BaseURL != "https://play.example.org/" {
		t.Fatalf("base url = %q", s.GlobalConfiguration.BaseURL)
	}
	if s.Configuration.PrimaryAction != types.PrimaryActionAuto {
		t.Fatalf("primary action = %q", s.Configuration.PrimaryAction)
	}
}
