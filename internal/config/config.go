package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything pkgdrop reads from config.toml.
type Config struct {
	Host           string
	Port           int
	ScanHost       string
	ScanDelay      time.Duration
	RequestTimeout time.Duration
	CatalogPath    string
	LogFile        string
	LogLevel       string
}

const (
	defaultConfigPath = "~/.config/pkgdrop/config.toml"
	defaultLogFile    = "~/.local/state/pkgdrop/pkgdrop.log"
	defaultPort       = 12801
	defaultScanHost   = "192.168.1.50"
	defaultScanDelay  = 1500 * time.Millisecond
	defaultLogLevel   = "info"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Port:      defaultPort,
		ScanHost:  defaultScanHost,
		ScanDelay: defaultScanDelay,
		LogFile:   mustExpand(defaultLogFile),
		LogLevel:  defaultLogLevel,
	}
}

// Load locates and parses the pkgdrop config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Host           string `toml:"host"`
		Port           int    `toml:"port"`
		ScanHost       string `toml:"scan_host"`
		ScanDelay      string `toml:"scan_delay"`
		RequestTimeout string `toml:"request_timeout"`
		Catalog        string `toml:"catalog"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Host = strings.TrimSpace(raw.Host)

	if raw.Port < 0 || raw.Port > 65535 {
		return Config{}, fmt.Errorf("parse config: port %d out of range", raw.Port)
	}
	if raw.Port > 0 {
		cfg.Port = raw.Port
	}

	if scanHost := strings.TrimSpace(raw.ScanHost); scanHost != "" {
		cfg.ScanHost = scanHost
	}

	if cfg.ScanDelay, err = parseDuration("scan_delay", raw.ScanDelay, defaultScanDelay); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, 0); err != nil {
		return Config{}, err
	}

	if catalog := strings.TrimSpace(raw.Catalog); catalog != "" {
		cfg.CatalogPath = mustExpand(catalog)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	return cfg, nil
}

// DefaultPath returns the config location used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", field)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
