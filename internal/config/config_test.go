// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000/api", cfg.API.BaseURL)
	assert.Equal(t, 9, cfg.List.Limit)
	assert.Equal(t, 1500*time.Millisecond, cfg.Workflow.SuccessDelay)
	assert.Empty(t, cfg.Tracing.Endpoint)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookhouse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://library.example.com/api
list:
  limit: 24
workflow:
  success_delay: 10ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://library.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 24, cfg.List.Limit)
	assert.Equal(t, 10*time.Millisecond, cfg.Workflow.SuccessDelay)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BOOKHOUSE_API_BASE_URL", "http://staging.example.com/api")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://staging.example.com/api", cfg.API.BaseURL)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
