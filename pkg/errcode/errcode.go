// Package errcode enumerates error codes of degportal user-facing errors.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Catalog errors
	CatalogLoadError
	CatalogInvalidError
	CatalogNoDocumentsError

	// Fetch errors
	FetchTransportError
	FetchStatusError
	FetchLocalFileError
	FetchReadError
	DocumentParseError
	DocumentEmptyError

	// Cache errors
	CacheOpenError
	CacheReadError
	CacheWriteError

	// Export errors
	ExportWriteError
	ExportFormatError

	// Server errors
	ServerLoadError
	ServerStartError
)
