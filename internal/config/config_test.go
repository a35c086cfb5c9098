package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bareos-mcp.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("", env(nil))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Bconsole.Path != "bconsole" {
		t.Errorf("expected default binary bconsole, got %q", cfg.Bconsole.Path)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected log defaults %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
bconsole:
  path: /opt/bareos/bin/bconsole
  encoding: latin1
tools:
  enabled: ["list_*", "get_job_status"]
`)

	cfg, err := Load(path, env(nil))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Bconsole.Path != "/opt/bareos/bin/bconsole" {
		t.Errorf("unexpected path %q", cfg.Bconsole.Path)
	}
	if cfg.Bconsole.Encoding != "latin1" {
		t.Errorf("unexpected encoding %q", cfg.Bconsole.Encoding)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("keys missing from the file should keep defaults, got %q", cfg.Log.Format)
	}
	if len(cfg.Tools.Enabled) != 2 {
		t.Errorf("unexpected tools %v", cfg.Tools.Enabled)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}
}

func TestLoadFileFromEnvironment(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")

	cfg, err := Load("", env(map[string]string{EnvConfigFile: path}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected level from file named by %s, got %q", EnvConfigFile, cfg.Log.Level)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "bconsole:\n  path: /from/file\n")

	cfg, err := Load(path, env(map[string]string{
		EnvBconsolePath:   "/from/env",
		EnvBconsoleConfig: "/etc/bareos/bconsole.conf",
		EnvLogLevel:       "warn",
	}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Bconsole.Path != "/from/env" {
		t.Errorf("expected env to win, got %q", cfg.Bconsole.Path)
	}
	if cfg.Bconsole.Config != "/etc/bareos/bconsole.conf" {
		t.Errorf("unexpected bconsole config %q", cfg.Bconsole.Config)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("unexpected level %q", cfg.Log.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), env(nil)); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "bconsole: [unclosed\n")
	if _, err := Load(path, env(nil)); err == nil {
		t.Error("expected parse error")
	}
}

func TestSetEnabledTools(t *testing.T) {
	cfg := Default()
	cfg.SetEnabledTools(" list_* , ,show_job")
	if strings.Join(cfg.Tools.Enabled, "|") != "list_*|show_job" {
		t.Errorf("unexpected patterns %v", cfg.Tools.Enabled)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Bconsole.Path = " "
	cfg.Bconsole.Encoding = "ebcdic"
	cfg.Log.Level = "chatty"
	cfg.Log.Format = "xml"
	cfg.Tools.Enabled = []string{"list_[jobs"}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, field := range []string{"bconsole.path", "bconsole.encoding", "log.level", "log.format", "tools.enabled"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected %s in %q", field, err.Error())
		}
	}
}
