// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aishort/showcase-server/internal/domain"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Catalog   CatalogConfig
	Server    ServerConfig
	Auth      AuthConfig
	CopyCount CopyCountConfig
	Showcase  ShowcaseConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds persistent storage configuration.
type DataConfig struct {
	// BasePath holds the database and the token key (default: ~/Showcase/data)
	BasePath string
}

// CatalogConfig holds prompt catalog configuration.
type CatalogConfig struct {
	// Path to a YAML or JSON catalog. Empty uses the embedded catalog.
	Path string
	// DefaultLocale is used when a request names no supported locale (default: zh)
	DefaultLocale domain.Locale
	// Watch reloads the catalog when the file changes (default: true)
	Watch bool
	// SettleDelay waits for writes to finish before reloading (default: 500ms)
	SettleDelay time.Duration
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Name         string
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed browser origins (default: *)
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key for access tokens (32 bytes)
	AccessTokenKey []byte
	// AccessTokenDuration is the token lifetime, e.g. 24h
	AccessTokenDuration time.Duration
}

// CopyCountConfig holds copy counter configuration.
type CopyCountConfig struct {
	// RemoteURL points a client at another showcase server. Empty uses the local store.
	RemoteURL string
	// FetchTimeout bounds the one-time counter fetch (default: 5s)
	FetchTimeout time.Duration
}

// ShowcaseConfig holds filtering and disclosure settings.
type ShowcaseConfig struct {
	PageSize          int           // Collapsed length of the "other" bucket (default: 24)
	LoadMoreThreshold int           // Bucket length above which it is truncated (default: 50)
	SearchDebounce    time.Duration // Quiescence period before search text reaches the URL (default: 1s)
}

// RateLimitConfig holds request rate limits.
type RateLimitConfig struct {
	CopyPerSecond float64 // Copy events per second per client (default: 5)
	CopyBurst     int     // Copy burst size (default: 10)
	AuthPerMinute float64 // Login and register attempts per minute per client (default: 10)
}

// LoadConfig loads configuration from the process arguments. See Load.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("showcase", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Base path for persistent data")
	serverName := fs.String("server-name", "", "Name for the server")

	// Catalog flags
	catalogPath := fs.String("catalog", "", "Path to the prompt catalog (default: embedded)")
	defaultLocale := fs.String("default-locale", "", "Locale used when none is requested (default: zh)")
	watchCatalog := fs.String("watch-catalog", "", "Reload the catalog on change (default: true)")
	settleDelay := fs.String("catalog-settle-delay", "", "Delay before reloading a changed catalog (default: 500ms)")

	// Auth flags
	accessTokenDuration := fs.String("access-token-duration", "", "Access token lifetime (e.g., 24h)")

	// Server flags
	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma separated allowed origins (default: *)")

	// Copy count flags
	copyCountURL := fs.String("copy-count-url", "", "Remote copy count service")
	fetchTimeout := fs.String("copy-count-timeout", "", "Copy count fetch timeout (default: 5s)")

	// Showcase flags
	pageSize := fs.String("page-size", "", "Collapsed page size (default: 24)")
	threshold := fs.String("load-more-threshold", "", "Bucket size that triggers load more (default: 50)")
	searchDebounce := fs.String("search-debounce", "", "Search debounce (default: 1s)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Catalog: CatalogConfig{
			Path:          getConfigValue(*catalogPath, "CATALOG_PATH", ""),
			DefaultLocale: domain.Locale(strings.ToLower(getConfigValue(*defaultLocale, "DEFAULT_LOCALE", string(domain.DefaultLocale)))),
			Watch:         getBoolConfigValue(*watchCatalog, "CATALOG_WATCH", true),
		},
		Server: ServerConfig{
			Name:        getConfigValue(*serverName, "SERVER_NAME", "Prompt Showcase"),
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Auth: AuthConfig{
			AccessTokenKey: nil, // Will be set by auth.LoadOrGenerateKey in main
		},
		CopyCount: CopyCountConfig{
			RemoteURL: getConfigValue(*copyCountURL, "COPY_COUNT_URL", ""),
		},
		Showcase: ShowcaseConfig{
			PageSize:          getIntConfigValue(*pageSize, "PAGE_SIZE", 24),
			LoadMoreThreshold: getIntConfigValue(*threshold, "LOAD_MORE_THRESHOLD", 50),
		},
		RateLimit: RateLimitConfig{
			CopyPerSecond: getFloatConfigValue("", "RATE_LIMIT_COPY_PER_SECOND", 5),
			CopyBurst:     getIntConfigValue("", "RATE_LIMIT_COPY_BURST", 10),
			AuthPerMinute: getFloatConfigValue("", "RATE_LIMIT_AUTH_PER_MINUTE", 10),
		},
	}

	durations := []struct {
		dst      *time.Duration
		flag     string
		envKey   string
		fallback string
		name     string
	}{
		{&cfg.Catalog.SettleDelay, *settleDelay, "CATALOG_SETTLE_DELAY", "500ms", "catalog settle delay"},
		{&cfg.Auth.AccessTokenDuration, *accessTokenDuration, "ACCESS_TOKEN_DURATION", "24h", "access token duration"},
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s", "read timeout"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "15s", "write timeout"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", "idle timeout"},
		{&cfg.CopyCount.FetchTimeout, *fetchTimeout, "COPY_COUNT_TIMEOUT", "5s", "copy count timeout"},
		{&cfg.Showcase.SearchDebounce, *searchDebounce, "SEARCH_DEBOUNCE", "1s", "search debounce"},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flag, d.envKey, d.fallback)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.name, raw, err)
		}
		*d.dst = parsed
	}

	// Expand and validate data path.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	// Expand the catalog path when one is set.
	if cfg.Catalog.Path != "" {
		expanded, err := expandPath(cfg.Catalog.Path, "")
		if err != nil {
			return nil, fmt.Errorf("invalid catalog path: %w", err)
		}
		cfg.Catalog.Path = expanded
	}

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	if !c.Catalog.DefaultLocale.Valid() {
		return fmt.Errorf("unsupported default locale: %s", c.Catalog.DefaultLocale)
	}

	if c.Showcase.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.Showcase.PageSize)
	}
	if c.Showcase.LoadMoreThreshold < c.Showcase.PageSize {
		return fmt.Errorf("load more threshold %d must not be below page size %d",
			c.Showcase.LoadMoreThreshold, c.Showcase.PageSize)
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Showcase", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// splitList splits a comma separated value and drops blanks.
func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
