// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the client configuration, loaded from an optional YAML
// file with BOOKHOUSE_* environment overrides.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	List     ListConfig     `mapstructure:"list"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	RateBurst int           `mapstructure:"rate_burst"`
}

type ListConfig struct {
	Limit int `mapstructure:"limit"`
}

type WorkflowConfig struct {
	SuccessDelay time.Duration `mapstructure:"success_delay"`
}

type TracingConfig struct {
	// Endpoint is the OTLP HTTP endpoint; empty disables export.
	Endpoint string `mapstructure:"endpoint"`
}

// Load reads configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:4000/api")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.rate_limit", 20.0)
	v.SetDefault("api.rate_burst", 10)
	v.SetDefault("list.limit", 9)
	v.SetDefault("workflow.success_delay", 1500*time.Millisecond)
	v.SetDefault("tracing.endpoint", "")

	v.SetEnvPrefix("BOOKHOUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
