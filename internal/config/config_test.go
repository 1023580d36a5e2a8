package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("Port = %d, want %d", cfg.Port, defaultPort)
	}
	if cfg.Host != "" {
		t.Fatalf("Host = %q, want empty", cfg.Host)
	}
	if cfg.ScanHost != defaultScanHost {
		t.Fatalf("ScanHost = %q, want %q", cfg.ScanHost, defaultScanHost)
	}
	if cfg.ScanDelay != defaultScanDelay {
		t.Fatalf("ScanDelay = %v, want %v", cfg.ScanDelay, defaultScanDelay)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %v, want 0", cfg.RequestTimeout)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
host = "  10.0.0.5  "
port = 9090
scan_host = " 10.0.0.9 "
scan_delay = "250ms"
request_timeout = "3s"
catalog = "  ~/catalogs/ps4.yaml  "
log_file = "~/logs/pkgdrop.log"
log_level = " DEBUG "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Host != "10.0.0.5" {
		t.Fatalf("Host = %q, want %q", cfg.Host, "10.0.0.5")
	}
	if cfg.Port != 9090 {
		t.Fatalf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.ScanHost != "10.0.0.9" {
		t.Fatalf("ScanHost = %q, want %q", cfg.ScanHost, "10.0.0.9")
	}
	if cfg.ScanDelay != 250*time.Millisecond {
		t.Fatalf("ScanDelay = %v, want 250ms", cfg.ScanDelay)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if cfg.CatalogPath != filepath.Join(home, "catalogs/ps4.yaml") {
		t.Fatalf("CatalogPath = %q, want it under HOME %q", cfg.CatalogPath, home)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
scan_host = "   "
scan_delay = ""
log_level = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ScanHost != defaultScanHost {
		t.Fatalf("ScanHost = %q, want %q", cfg.ScanHost, defaultScanHost)
	}
	if cfg.ScanDelay != defaultScanDelay {
		t.Fatalf("ScanDelay = %v, want %v", cfg.ScanDelay, defaultScanDelay)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("Port = %d, want %d", cfg.Port, defaultPort)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad toml", `host = [`, "parse config"},
		{"bad port", `port = 70000`, "out of range"},
		{"bad duration", `scan_delay = "soon"`, "scan_delay"},
		{"negative timeout", `request_timeout = "-1s"`, "must not be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load returned nil error, want error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
