package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)

	assert.Equal(t, "~/tmp/office365_mcp", cfg.Office.TempDir)
	assert.Equal(t, 10, cfg.Office.MaxPresentations)
	assert.Equal(t, 10, cfg.Office.MaxDocuments)
	assert.Equal(t, 10, cfg.Office.MaxWorkbooks)
	assert.True(t, cfg.Office.EnableAppleScript)
	assert.False(t, cfg.Office.EnableCloudAPI)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.NoError(t, cfg.Validate())
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	t.Setenv("OFFICE365_MCP_LOG_LEVEL", "DEBUG")
	t.Setenv("OFFICE365_MCP_TEMP_DIR", "/tmp/office")
	t.Setenv("OFFICE365_MCP_MAX_PRESENTATIONS", "3")
	t.Setenv("OFFICE365_MCP_MAX_DOCUMENTS", "4")
	t.Setenv("OFFICE365_MCP_ENABLE_APPLESCRIPT", "false")
	t.Setenv("OFFICE365_MCP_ENABLE_CLOUD_API", "true")
	t.Setenv("OFFICE365_MCP_HTTP_PORT", "9100")
	t.Setenv("OFFICE365_MCP_TRANSPORT", "both")
	t.Setenv("OFFICE365_MCP_RATE_LIMIT_RPS", "5")
	t.Setenv("OFFICE365_MCP_CORS_ORIGINS", "http://localhost:3000,https://office.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "/tmp/office", cfg.Office.TempDir)
	assert.Equal(t, 3, cfg.Office.MaxPresentations)
	assert.Equal(t, 4, cfg.Office.MaxDocuments)
	assert.Equal(t, 10, cfg.Office.MaxWorkbooks)
	assert.False(t, cfg.Office.EnableAppleScript)
	assert.True(t, cfg.Office.EnableCloudAPI)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, TransportBoth, cfg.Server.Transport)
	assert.Equal(t, 5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"http://localhost:3000", "https://office.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoadInvalidEnvironment(t *testing.T) {
	t.Setenv("OFFICE365_MCP_MAX_DOCUMENTS", "many")
	_, err := Load("")
	assert.Error(t, err)

	cfg := LoadOrDefault("")
	assert.Equal(t, 10, cfg.Office.MaxDocuments)
}

func TestLoadFileFormats(t *testing.T) {
	files := map[string]string{
		"config.json": `{"office": {"temp_dir": "/data/office", "max_documents": 2}, "logging": {"level": "WARN"}}`,
		"config.yaml": "office:\n  temp_dir: /data/office\n  max_documents: 2\nlogging:\n  level: WARN\n",
		"config.toml": "[office]\ntemp_dir = \"/data/office\"\nmax_documents = 2\n\n[logging]\nlevel = \"WARN\"\n",
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "/data/office", cfg.Office.TempDir)
			assert.Equal(t, 2, cfg.Office.MaxDocuments)
			assert.Equal(t, 10, cfg.Office.MaxPresentations)
			assert.Equal(t, "WARN", cfg.Logging.Level)
		})
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"office": {"max_presentations": 2}}`), 0o644))
	t.Setenv(FileEnvVar, path)
	t.Setenv("OFFICE365_MCP_MAX_PRESENTATIONS", "7")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Office.MaxPresentations)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	ini := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(ini, []byte("x=1"), 0o644))
	_, err = Load(ini)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	t.Setenv(FileEnvVar, filepath.Join(dir, "absent.yaml"))
	_, err = Load("")
	assert.NoError(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			cfg := Default()
			cfg.Office.TempDir = "/srv/office"
			cfg.Office.MaxWorkbooks = 4
			cfg.Server.Transport = TransportHTTP

			path := filepath.Join(t.TempDir(), "nested", "config"+ext)
			require.NoError(t, cfg.Save(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}

	assert.ErrorIs(t, Default().Save(filepath.Join(t.TempDir(), "config.xml")), ErrUnsupportedFormat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad transport", func(c *Config) { c.Server.Transport = "grpc" }},
		{"empty temp dir", func(c *Config) { c.Office.TempDir = "" }},
		{"zero limit", func(c *Config) { c.Office.MaxWorkbooks = 0 }},
		{"rate limit", func(c *Config) { c.RateLimit.Burst = 0 }},
		{"fetch bytes", func(c *Config) { c.Fetch.MaxBytes = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/tmp/office365_mcp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tmp", "office365_mcp"), got)
}
