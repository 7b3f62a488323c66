// Package iocatalog reads catalog.yaml from the configuration directory.
package iocatalog

import (
	"log/slog"
	"os"

	"github.com/gnames/degportal/pkg/catalog"
	"github.com/gnames/degportal/pkg/config"
	"github.com/gnames/gn"
	"gopkg.in/yaml.v3"
)

type iocatalog struct {
	path string
}

// New creates a loader of the catalog of the user's home directory.
func New(cfg *config.Config) catalog.Loader {
	return NewFromFile(config.CatalogFilePath(cfg.HomeDir))
}

// NewFromFile creates a loader of a catalog file at path.
func NewFromFile(path string) catalog.Loader {
	return &iocatalog{path: path}
}

func (c *iocatalog) Load() (*catalog.Catalog, error) {
	bs, err := os.ReadFile(c.path)
	if err != nil {
		return nil, CatalogLoadError(c.path, err)
	}

	res, err := Parse(bs)
	if err != nil {
		return nil, CatalogInvalidError(c.path, err)
	}

	for _, w := range res.Warnings {
		gn.Warn("Document <em>%s</em>: %s. %s", w.Document, w.Message, w.Suggestion)
		slog.Warn("Catalog warning", "document", w.Document, "issue", w.Message)
	}
	return res, nil
}

// Parse decodes and validates catalog YAML.
func Parse(bs []byte) (*catalog.Catalog, error) {
	var res catalog.Catalog
	if err := yaml.Unmarshal(bs, &res); err != nil {
		return nil, err
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return &res, nil
}
