package iocatalog

import (
	"fmt"

	"github.com/gnames/degportal/pkg/errcode"
	"github.com/gnames/gn"
)

// CatalogLoadError creates an error for when catalog.yaml cannot be read.
func CatalogLoadError(path string, err error) error {
	msg := `Cannot load catalog

<em>Catalog file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Run any degportal command once to create the default catalog`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.CatalogLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load catalog: %w", err),
	}
}

// CatalogInvalidError creates an error for a catalog that cannot be
// parsed or does not validate.
func CatalogInvalidError(path string, err error) error {
	msg := `Invalid catalog <em>%s</em>

<em>Problem:</em> %s

<em>How to fix:</em>
  Every document needs a unique <em>name</em>, a <em>kind</em>
  (genes or publications) and a <em>location</em> (path or http(s) URL)`

	vars := []any{path, err.Error()}

	return &gn.Error{
		Code: errcode.CatalogInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid catalog %s: %w", path, err),
	}
}
