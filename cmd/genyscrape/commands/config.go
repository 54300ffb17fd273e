package commands

import (
	"os"
	"time"

	"genyscrape/internal/geny"
	"genyscrape/internal/report"
	"genyscrape/lib/configutil"
	"genyscrape/lib/telemetry"
)

const DefaultConfigName = "genyscrape.json5"

const (
	envBaseURL   = "GENYSCRAPE_BASE_URL"
	envOutputDir = "GENYSCRAPE_OUTPUT_DIR"
)

type Config struct {
	BaseURL          string `json:"base_url"`
	Host             string `json:"host"`
	UserAgent        string `json:"user_agent"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	Concurrency      int    `json:"concurrency"`
	RetryCount       int    `json:"retry_count"`
	BypassCloudflare bool   `json:"bypass_cloudflare"`

	OutputDir        string `json:"output_dir"`
	Format           string `json:"format"`
	SaveRetrySeconds int    `json:"save_retry_seconds"`
	// SaveMaxAttempts bounds the attempts at saving a busy file, 0 means forever.
	SaveMaxAttempts int `json:"save_max_attempts"`

	// Database is the sqlite file (or libsql:// url) scrape runs are stored to,
	// empty disables storage.
	Database    string           `json:"database"`
	HttpDumpDir string           `json:"http_dump_dir"`
	Telemetry   telemetry.Config `json:"telemetry"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:          geny.DefaultBaseURL,
		Host:             geny.DefaultHost,
		TimeoutSeconds:   30,
		Concurrency:      8,
		OutputDir:        ".",
		Format:           string(report.FormatXLSX),
		SaveRetrySeconds: 5,
	}
}

// LoadConfig reads the config file over the defaults, then applies environment overrides.
func LoadConfig(path string) (Config, error) {
	config, err := configutil.ReadWithDefaults(path, DefaultConfig())
	if err != nil {
		return Config{}, err
	}
	if value, ok := os.LookupEnv(envBaseURL); ok && value != "" {
		config.BaseURL = value
	}
	if value, ok := os.LookupEnv(envOutputDir); ok && value != "" {
		config.OutputDir = value
	}
	return config, nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) SaveRetryInterval() time.Duration {
	return time.Duration(c.SaveRetrySeconds) * time.Second
}
