// Package config provides configuration management for degportal.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Significance: p_value, log_fc
//   - Browse: page_size, debounce_ms
//   - Server: port
//   - Fetch: timeout_sec, use_cache
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use DEGPORTAL_ prefix with underscores for nesting:
//
//	DEGPORTAL_SIGNIFICANCE_P_VALUE=0.05
//	DEGPORTAL_BROWSE_PAGE_SIZE=25
//	DEGPORTAL_SERVER_PORT=8080
//	DEGPORTAL_LOG_LEVEL=info
package config

import (
	"runtime"

	"github.com/gnames/degportal/pkg/record"
)

// Config represents the complete degportal configuration.
type Config struct {
	// Significance contains thresholds that decide if an observation
	// is significant.
	Significance SignificanceConfig `mapstructure:"significance" yaml:"significance"`

	// Browse contains settings of interactive views.
	Browse BrowseConfig `mapstructure:"browse" yaml:"browse"`

	// Server contains settings of the HTTP bridge.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Fetch contains settings for loading catalog documents.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of documents fetched concurrently.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// SignificanceConfig keeps thresholds of the significance composite:
// an observation is significant when its adjusted p-value is below PValue
// and its absolute log fold change is above LogFC.
type SignificanceConfig struct {
	// PValue is the exclusive upper bound for the adjusted p-value.
	PValue float64 `mapstructure:"p_value" yaml:"p_value"`

	// LogFC is the exclusive lower bound for |log fold change|.
	LogFC float64 `mapstructure:"log_fc" yaml:"log_fc"`
}

// BrowseConfig contains settings for paginated views.
type BrowseConfig struct {
	// PageSize is the number of records per page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// DebounceMs is the quiet period in milliseconds before a burst of
	// input changes triggers one rebuild of a view.
	DebounceMs int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
}

// ServerConfig contains settings of the HTTP bridge.
type ServerConfig struct {
	// Port to listen on.
	Port int `mapstructure:"port" yaml:"port"`
}

// FetchConfig contains settings for reading catalog documents.
type FetchConfig struct {
	// TimeoutSec limits a single HTTP fetch.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// UseCache enables the local document cache. Fetched documents are
	// saved to the cache, and a cached copy is used when a fetch fails.
	UseCache *bool `mapstructure:"use_cache" yaml:"use_cache"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	useCache := true
	res := &Config{
		Significance: SignificanceConfig{
			PValue: 0.05,
			LogFC:  0.5,
		},
		Browse: BrowseConfig{
			PageSize:   25,
			DebounceMs: 300,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Fetch: FetchConfig{
			TimeoutSec: 30,
			UseCache:   &useCache,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// CacheEnabled reports if the document cache is on.
func (c *Config) CacheEnabled() bool {
	return c.Fetch.UseCache == nil || *c.Fetch.UseCache
}

// Thresholds returns the significance thresholds of observations.
func (c *Config) Thresholds() record.Thresholds {
	return record.Thresholds{
		PValue: c.Significance.PValue,
		LogFC:  c.Significance.LogFC,
	}
}
