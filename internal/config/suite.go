package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// SuiteConfig holds settings for the browser test suite
type SuiteConfig struct {
	BaseURL             string  `toml:"base_url"`
	Username            string  `toml:"username"`
	Password            string  `toml:"password"`
	Headless            bool    `toml:"headless"`
	SlowMo              float64 `toml:"slow_mo"`
	ActionTimeoutMS     float64 `toml:"action_timeout_ms"`
	NavigationTimeoutMS float64 `toml:"navigation_timeout_ms"`
	DataFile            string  `toml:"data_file"`
	CaptureDir          string  `toml:"capture_dir"`
}

// NewDefaultSuiteConfig returns suite settings for a local headless run
func NewDefaultSuiteConfig() *SuiteConfig {
	return &SuiteConfig{
		Headless:            true,
		ActionTimeoutMS:     5000,
		NavigationTimeoutMS: 30000,
		DataFile:            "testdata/cases.json",
		CaptureDir:          "captures",
	}
}

// LoadSuiteConfig loads suite configuration with priority: defaults, then
// the TOML file, then environment variables. A missing file is not an
// error; the suite runs on defaults plus environment overrides. An empty
// BaseURL means the suite boots the application in-process.
func LoadSuiteConfig(getenv func(string) string, path string) (*SuiteConfig, error) {
	config := NewDefaultSuiteConfig()

	if p := getenv("E2E_CONFIG"); p != "" {
		path = p
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse suite config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read suite config %s: %w", path, err)
		}
	}

	// Environment overrides file values
	if v := getenv("BASE_URL"); v != "" {
		config.BaseURL = v
	}
	if v := getenv("TEST_USERNAME"); v != "" {
		config.Username = v
	}
	if v := getenv("TEST_PASSWORD"); v != "" {
		config.Password = v
	}
	if getenv("HEADFUL") != "" {
		config.Headless = false
	}

	return config, nil
}

// External reports whether the suite targets an already-running deployment
func (c *SuiteConfig) External() bool {
	return c.BaseURL != ""
}
