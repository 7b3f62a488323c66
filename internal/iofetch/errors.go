package iofetch

import (
	"fmt"
	"net/http"

	"github.com/gnames/degportal/pkg/catalog"
	"github.com/gnames/degportal/pkg/errcode"
	"github.com/gnames/gn"
)

// FetchTransportError is returned when an HTTP request fails before a
// response arrives.
func FetchTransportError(doc catalog.Document, err error) error {
	msg := `Cannot fetch <em>%s</em> from %s

<em>How to fix:</em>
  1. Check the URL in catalog.yaml
  2. Check that the data server is running and reachable`

	vars := []any{doc.Name, doc.Location}

	return &gn.Error{
		Code: errcode.FetchTransportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("fetch %s: %w", doc.Location, err),
	}
}

// FetchStatusError is returned for a non-2xx response.
func FetchStatusError(doc catalog.Document, status int) error {
	msg := `Server answered <em>%d %s</em> for <em>%s</em>

<em>How to fix:</em>
  Check the location <em>%s</em> in catalog.yaml`

	vars := []any{status, http.StatusText(status), doc.Name, doc.Location}

	return &gn.Error{
		Code: errcode.FetchStatusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("fetch %s: unexpected status %d", doc.Location, status),
	}
}

// FetchLocalFileError is returned for file:// locations.
func FetchLocalFileError(doc catalog.Document) error {
	msg := `Cannot fetch <em>%s</em> from a file:// location

<em>How to fix:</em>
  Serve the data over HTTP, not as a local file,
  or use a plain file path as the location`

	vars := []any{doc.Name}

	return &gn.Error{
		Code: errcode.FetchLocalFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("fetch %s: file:// locations are not supported", doc.Location),
	}
}

// FetchReadError is returned when a file or a response body cannot be
// read.
func FetchReadError(doc catalog.Document, err error) error {
	msg := "Cannot read <em>%s</em> from %s"
	vars := []any{doc.Name, doc.Location}

	return &gn.Error{
		Code: errcode.FetchReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("read %s: %w", doc.Location, err),
	}
}

// DocumentParseError is returned for a malformed document body.
func DocumentParseError(doc catalog.Document, err error) error {
	msg := `Document <em>%s</em> is not valid JSON

<em>How to fix:</em>
  Check that %s returns the exported JSON document,
  not an HTML error page`

	vars := []any{doc.Name, doc.Location}

	return &gn.Error{
		Code: errcode.DocumentParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("parse %s: %w", doc.Name, err),
	}
}

// DocumentEmptyError is returned when a document lacks its records array.
func DocumentEmptyError(doc catalog.Document, key string) error {
	msg := "Document <em>%s</em> has no <em>%s</em> array"
	vars := []any{doc.Name, key}

	return &gn.Error{
		Code: errcode.DocumentEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("document %s: missing %q", doc.Name, key),
	}
}

// NoDocumentsError is returned when the catalog has no documents of a
// kind.
func NoDocumentsError(kind catalog.Kind) error {
	msg := `Catalog has no <em>%s</em> documents

<em>How to fix:</em>
  Add a document with <em>kind: %s</em> to catalog.yaml`

	vars := []any{kind, kind}

	return &gn.Error{
		Code: errcode.CatalogNoDocumentsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no documents of kind %s", kind),
	}
}
