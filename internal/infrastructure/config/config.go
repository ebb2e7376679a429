package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/office-mcp/internal/shared/paths"
)

// EnvPrefix prefixes every environment variable, e.g. OFFICE365_MCP_LOG_LEVEL
const EnvPrefix = "OFFICE365_MCP"

// FileEnvVar names the config file when no -config flag is given
const FileEnvVar = EnvPrefix + "_CONFIG_FILE"

// Transport modes
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
	TransportBoth  = "both"
)

// ErrUnsupportedFormat is returned for config files that are not JSON, YAML or TOML
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server" toml:"server"`
	Office    OfficeConfig    `json:"office" yaml:"office" toml:"office"`
	Logging   LogConfig       `json:"logging" yaml:"logging" toml:"logging"`
	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit" toml:"rate_limit"`
	Fetch     FetchConfig     `json:"fetch" yaml:"fetch" toml:"fetch"`
}

// ServerConfig holds transport configuration.
type ServerConfig struct {
	Host      string `envconfig:"HTTP_HOST" json:"host" yaml:"host" toml:"host"`
	Port      string `envconfig:"HTTP_PORT" json:"port" yaml:"port" toml:"port"`
	Transport string `envconfig:"TRANSPORT" json:"transport" yaml:"transport" toml:"transport"`
	// CORSOrigins lists browser origins allowed to call the HTTP API.
	// Empty means loopback only.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" json:"cors_origins,omitempty" yaml:"cors_origins,omitempty" toml:"cors_origins,omitempty"`
}

// OfficeConfig holds document workspace and automation settings.
type OfficeConfig struct {
	TempDir            string `envconfig:"TEMP_DIR" json:"temp_dir" yaml:"temp_dir" toml:"temp_dir"`
	TemplatesDir       string `envconfig:"TEMPLATES_DIR" json:"templates_dir" yaml:"templates_dir" toml:"templates_dir"`
	MaxPresentations   int    `envconfig:"MAX_PRESENTATIONS" json:"max_presentations" yaml:"max_presentations" toml:"max_presentations"`
	MaxDocuments       int    `envconfig:"MAX_DOCUMENTS" json:"max_documents" yaml:"max_documents" toml:"max_documents"`
	MaxWorkbooks       int    `envconfig:"MAX_WORKBOOKS" json:"max_workbooks" yaml:"max_workbooks" toml:"max_workbooks"`
	EnableAppleScript  bool   `envconfig:"ENABLE_APPLESCRIPT" json:"enable_applescript" yaml:"enable_applescript" toml:"enable_applescript"`
	EnableCloudAPI     bool   `envconfig:"ENABLE_CLOUD_API" json:"enable_cloud_api" yaml:"enable_cloud_api" toml:"enable_cloud_api"`
	AppleScriptTimeout int    `envconfig:"APPLESCRIPT_TIMEOUT" json:"applescript_timeout_seconds" yaml:"applescript_timeout_seconds" toml:"applescript_timeout_seconds"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" json:"level" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" json:"development" yaml:"development" toml:"development"`
	File        string `envconfig:"LOG_FILE" json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"`
}

// RateLimitConfig holds HTTP API rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" json:"requests_per_second" yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" json:"burst" yaml:"burst" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" json:"enabled" yaml:"enabled" toml:"enabled"`
	// Global shares one bucket across all clients instead of one per IP
	Global bool `envconfig:"RATE_LIMIT_GLOBAL" json:"global" yaml:"global" toml:"global"`
}

// FetchConfig holds remote image download settings.
type FetchConfig struct {
	TimeoutSeconds    int   `envconfig:"FETCH_TIMEOUT" json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	MaxRetries        int   `envconfig:"FETCH_MAX_RETRIES" json:"max_retries" yaml:"max_retries" toml:"max_retries"`
	MaxBytes          int64 `envconfig:"FETCH_MAX_BYTES" json:"max_bytes" yaml:"max_bytes" toml:"max_bytes"`
	RequestsPerSecond int   `envconfig:"FETCH_RPS" json:"requests_per_second" yaml:"requests_per_second" toml:"requests_per_second"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "127.0.0.1",
			Port:      "8000",
			Transport: TransportStdio,
		},
		Office: OfficeConfig{
			TempDir:            "~/tmp/office365_mcp",
			TemplatesDir:       "templates",
			MaxPresentations:   10,
			MaxDocuments:       10,
			MaxWorkbooks:       10,
			EnableAppleScript:  true,
			EnableCloudAPI:     false,
			AppleScriptTimeout: 30,
		},
		Logging: LogConfig{
			Level:       "INFO",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Fetch: FetchConfig{
			TimeoutSeconds:    30,
			MaxRetries:        3,
			MaxBytes:          20 << 20,
			RequestsPerSecond: 5,
		},
	}
}

// Load builds configuration from defaults, then the config file at path
// (or $OFFICE365_MCP_CONFIG_FILE), then environment variables.
// A missing file is an error only when path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(FileEnvVar)
	}
	if path != "" {
		if err := cfg.overlayFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := cfg.overlayEnv(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from file and environment or returns default.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio, TransportHTTP, TransportBoth:
	default:
		return fmt.Errorf("invalid transport %q: must be stdio, http or both", c.Server.Transport)
	}
	if c.Office.TempDir == "" {
		return fmt.Errorf("temp_dir cannot be empty")
	}
	if c.Office.MaxPresentations < 1 || c.Office.MaxDocuments < 1 || c.Office.MaxWorkbooks < 1 {
		return fmt.Errorf("max_presentations, max_documents and max_workbooks must be at least 1")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond < 1 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate limit requires positive requests_per_second and burst")
	}
	if c.Fetch.MaxBytes <= 0 {
		return fmt.Errorf("fetch max_bytes must be positive")
	}
	return nil
}

// Save writes the configuration to path in the format implied by its extension.
func (c *Config) Save(path string) error {
	resolved, err := paths.PrepareOutput(path)
	if err != nil {
		return err
	}

	var data []byte
	switch paths.Ext(resolved) {
	case ".json":
		data, err = sonic.MarshalIndent(c, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".toml":
		data, err = toml.Marshal(c)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(resolved))
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", resolved, err)
	}
	return nil
}

// ExpandPath resolves ~ and relative paths.
func ExpandPath(path string) (string, error) {
	return paths.Expand(path)
}

func (c *Config) overlayFile(path string) error {
	resolved, err := paths.Expand(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return fmt.Errorf("read config %s: %w", resolved, err)
	}

	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".json":
		err = sonic.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(resolved))
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", resolved, err)
	}
	return nil
}

// overlayEnv applies only the variables that are set; no default tags are
// used so file values survive.
func (c *Config) overlayEnv() error {
	sections := []interface{}{&c.Server, &c.Office, &c.Logging, &c.RateLimit, &c.Fetch}
	for _, section := range sections {
		if err := envconfig.Process(EnvPrefix, section); err != nil {
			return err
		}
	}
	return nil
}
