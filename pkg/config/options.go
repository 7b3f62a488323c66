package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptSignificancePValue sets the adjusted p-value threshold.
// Valid values are in (0, 1].
func OptSignificancePValue(f float64) Option {
	return func(c *Config) {
		if isValidProbability("Significance P-Value", f) {
			c.Significance.PValue = f
		}
	}
}

// OptSignificanceLogFC sets the |log fold change| threshold.
// Zero is allowed and means any non-zero change qualifies.
func OptSignificanceLogFC(f float64) Option {
	return func(c *Config) {
		if isValidNonNegative("Significance LogFC", f) {
			c.Significance.LogFC = f
		}
	}
}

// OptBrowsePageSize sets the number of records per page.
func OptBrowsePageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Page Size", i) {
			c.Browse.PageSize = i
		}
	}
}

// OptBrowseDebounceMs sets the debounce quiet period in milliseconds.
// Zero disables debouncing.
func OptBrowseDebounceMs(i int) Option {
	return func(c *Config) {
		if isValidNonNegative("Debounce Ms", float64(i)) {
			c.Browse.DebounceMs = i
		}
	}
}

// OptServerPort sets the port of the HTTP bridge.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptFetchTimeoutSec sets the timeout of a single HTTP fetch.
func OptFetchTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Timeout", i) {
			c.Fetch.TimeoutSec = i
		}
	}
}

// OptFetchUseCache enables or disables the document cache.
// Uses pointer to distinguish between unset (nil) and false.
func OptFetchUseCache(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Fetch.UseCache = b
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of documents fetched concurrently.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
