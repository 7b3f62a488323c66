// Package iotesting provides shared fixtures for tests that load catalog
// documents: a temporary home directory, sample documents, a document
// server and a catalog file that points to it.
package iotesting

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gnames/degportal/internal/iofs"
	"github.com/gnames/degportal/pkg/catalog"
	"github.com/gnames/degportal/pkg/config"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// GenesJSON is a gene document with two genes observed in one dataset.
const GenesJSON = `{
  "metadata": {"title": "bulk"},
  "genes": [
    {"primary_symbol": "Scn1a", "is_seizure_gene": true,
     "datasets": {"bulk": {"logFC": 2.1, "adj_p_val": 0.001}}},
    {"primary_symbol": "Cacna1g",
     "datasets": {"bulk": {"logFC": -0.8, "adj_p_val": 0.04}}}
  ]
}`

// SpatialJSON is a gene document that repeats Scn1a.
const SpatialJSON = `{
  "genes": [
    {"primary_symbol": "Scn1a",
     "datasets": {"spatial": {"log2fc": 0.2, "padj": 0.5}}},
    {"primary_symbol": "Grin2b",
     "datasets": {"spatial": {"log2fc": 1.4, "padj": 0.01}}}
  ]
}`

// PublicationsJSON is a publication document with two publications.
const PublicationsJSON = `{
  "publications": [
    {"id": 1, "title": "Fenfluramine for Dravet syndrome", "year": 2020,
     "sjr_quartile": "Q1", "study_type": "RCT", "citations": 120},
    {"id": 2, "title": "Scn1a mouse model", "year": 2018,
     "sjr_quartile": "Q2", "study_type": "Animal Study"}
  ]
}`

// Config returns a configuration with a fresh home directory that has
// all degportal directories. Logs go to stderr.
func Config(t testing.TB) *config.Config {
	t.Helper()
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptJobsNumber(4),
		config.OptFetchTimeoutSec(5),
		config.OptLogDestination("stderr"),
	})
	return cfg
}

// Server serves documents by URL path, for example "/genes.json".
// Unknown paths answer 404.
func Server(t testing.TB, docs map[string]string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

// WriteCatalog saves documents as catalog.yaml of the configuration.
func WriteCatalog(t testing.TB, cfg *config.Config, docs []catalog.Document) {
	t.Helper()
	bs, err := yaml.Marshal(catalog.Catalog{Documents: docs})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(config.CatalogFilePath(cfg.HomeDir), bs, 0644))
}
