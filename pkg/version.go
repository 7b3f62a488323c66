// Package degportal is the root package of the differential expression
// data portal. It carries version information set at build time.
package degportal

var (
	// Version of the application, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
