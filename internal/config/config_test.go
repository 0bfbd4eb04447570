package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bryanchriswhite/WindowScout/internal/window"
)

func TestNewManagerCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg := m.Get()
	if *cfg != *Defaults() {
		t.Errorf("Get() = %+v, want defaults %+v", cfg, Defaults())
	}
	mode, err := cfg.Mode()
	if err != nil || mode != window.ExcludeMinimized {
		t.Errorf("Mode() = %v, %v; want ExcludeMinimized", mode, err)
	}
	if cfg.PollInterval() != time.Second {
		t.Errorf("PollInterval() = %v, want 1s", cfg.PollInterval())
	}
	if m.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", m.GetConfigPath(), path)
	}
}

func TestNewManagerReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "search_mode: include-minimized\nserver_port: 9191\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	cfg := m.Get()
	if cfg.SearchMode != "include-minimized" || cfg.ServerPort != 9191 || cfg.LogLevel != "debug" {
		t.Errorf("Get() = %+v", cfg)
	}
	if cfg.PollIntervalMS != 1000 {
		t.Errorf("PollIntervalMS = %d, want default 1000", cfg.PollIntervalMS)
	}
}

func TestNewManagerRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("search_mode: sideways\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewManager(path); err == nil {
		t.Fatal("NewManager() accepted an invalid search mode")
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{KeySearchMode, "include", false},
		{KeySearchMode, "everything", true},
		{KeyServerPort, "9090", false},
		{KeyServerPort, "0", true},
		{KeyServerPort, "http", true},
		{KeyLogLevel, "DEBUG", false},
		{KeyLogLevel, "loud", true},
		{KeyLogPretty, "true", false},
		{KeyLogPretty, "maybe", true},
		{KeyPollIntervalMS, "250", false},
		{KeyPollIntervalMS, "-1", true},
		{"virtual_display.width", "1920", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			m, err := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			err = m.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestSetNormalizesAndSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Set(KeySearchMode, "Include"); err != nil {
		t.Fatal(err)
	}
	if err := m.Set(KeyLogLevel, "WARN"); err != nil {
		t.Fatal(err)
	}
	if err := m.Set(KeyPollIntervalMS, "250"); err != nil {
		t.Fatal(err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"search_mode: include-minimized", "log_level: warn", "poll_interval_ms: 250"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("saved config missing %q:\n%s", want, data)
		}
	}

	reloaded, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.Get().PollInterval(); got != 250*time.Millisecond {
		t.Errorf("reloaded PollInterval() = %v, want 250ms", got)
	}
}

func TestLookup(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	v, err := m.Lookup(KeyServerPort)
	if err != nil {
		t.Fatalf("Lookup(server_port) error = %v", err)
	}
	if v != 8080 {
		t.Errorf("Lookup(server_port) = %v (%T), want 8080", v, v)
	}

	if _, err := m.Lookup("no_such_key"); err == nil {
		t.Error("Lookup(no_such_key) returned nil error")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("WINDOWSCOUT_SERVER_PORT", "7070")

	m, err := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Get().ServerPort; got != 7070 {
		t.Errorf("ServerPort = %d, want env override 7070", got)
	}
}

func TestSaveDoesNotPersistEnvOverrides(t *testing.T) {
	t.Setenv("WINDOWSCOUT_SERVER_PORT", "9000")
	path := filepath.Join(t.TempDir(), "config.yaml")

	m, err := NewManager(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Set(KeyLogLevel, "debug"); err != nil {
		t.Fatal(err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"server_port: 8080", "log_level: debug"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("saved config missing %q:\n%s", want, data)
		}
	}
	if strings.Contains(string(data), "9000") {
		t.Errorf("saved config contains env override:\n%s", data)
	}
	if got := m.Get().ServerPort; got != 9000 {
		t.Errorf("ServerPort = %d, want env override 9000 in memory", got)
	}
}
