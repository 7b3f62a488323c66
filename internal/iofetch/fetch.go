// Package iofetch reads catalog documents from files or over HTTP, keeps
// copies of them in the document cache, and loads them into record stores.
package iofetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/degportal/internal/iocache"
	"github.com/gnames/degportal/internal/iometrics"
	"github.com/gnames/degportal/pkg/catalog"
	"github.com/gnames/degportal/pkg/config"
	"github.com/gnames/degportal/pkg/record"
	"github.com/gnames/gn"
)

// Cache stores document bodies between runs. *iocache.Cache implements it.
type Cache interface {
	Put(ctx context.Context, name, location string, body []byte) error
	Get(ctx context.Context, name string) (iocache.Entry, bool, error)
}

// Result is a fetched document.
type Result struct {
	Document  catalog.Document
	Body      []byte
	FromCache bool
	FetchedAt time.Time
}

// Fetcher reads catalog documents.
type Fetcher struct {
	client  *http.Client
	cache   Cache
	homeDir string
	jobs    int
}

// New creates a Fetcher. The cache can be nil.
func New(cfg *config.Config, cache Cache) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: time.Duration(cfg.Fetch.TimeoutSec) * time.Second,
		},
		cache:   cache,
		homeDir: cfg.HomeDir,
		jobs:    max(1, cfg.JobsNumber),
	}
}

// Fetch reads a document. A body that does not parse as a document of its
// kind counts as a failed read. When reading fails and the cache has a
// usable copy of the document, the copy is returned with a warning. Only a
// body that parses refreshes the cached copy.
func (f *Fetcher) Fetch(ctx context.Context, doc catalog.Document) (Result, error) {
	return f.fetch(ctx, doc, func(body []byte) error {
		return check(doc, body)
	})
}

// fetch reads a document and keeps it only if accept succeeds on its body.
func (f *Fetcher) fetch(
	ctx context.Context,
	doc catalog.Document,
	accept func([]byte) error,
) (Result, error) {
	start := time.Now()
	body, outcome, err := f.read(ctx, doc)
	iometrics.DocumentFetchDuration.WithLabelValues(doc.Name).
		Observe(time.Since(start).Seconds())
	if err == nil {
		err = accept(body)
	}

	if err == nil {
		iometrics.DocumentFetches.WithLabelValues(doc.Name, outcome).Inc()
		f.store(ctx, doc, body)
		return Result{Document: doc, Body: body, FetchedAt: time.Now()}, nil
	}

	if res, ok := f.fromCache(ctx, doc, err, accept); ok {
		iometrics.DocumentFetches.WithLabelValues(doc.Name, iometrics.FetchCache).Inc()
		return res, nil
	}
	iometrics.DocumentFetches.WithLabelValues(doc.Name, iometrics.FetchFailed).Inc()
	return Result{}, err
}

// check parses a body according to the kind of the document. Documents
// without a known kind are not checked.
func check(doc catalog.Document, body []byte) error {
	var err error
	switch doc.Kind {
	case catalog.Genes:
		_, err = ParseGenes(doc, body, record.Thresholds{})
	case catalog.Publications:
		_, err = ParsePublications(doc, body)
	}
	return err
}

func (f *Fetcher) read(
	ctx context.Context,
	doc catalog.Document,
) ([]byte, string, error) {
	switch {
	case doc.IsFileURL():
		return nil, "", FetchLocalFileError(doc)
	case doc.IsRemote():
		body, err := f.get(ctx, doc)
		return body, iometrics.FetchNetwork, err
	default:
		body, err := os.ReadFile(f.path(doc.Location))
		if err != nil {
			return nil, "", FetchReadError(doc, err)
		}
		return body, iometrics.FetchFile, nil
	}
}

func (f *Fetcher) get(ctx context.Context, doc catalog.Document) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, doc.Location, nil)
	if err != nil {
		return nil, FetchTransportError(doc, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, FetchTransportError(doc, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, FetchStatusError(doc, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, FetchReadError(doc, err)
	}
	return body, nil
}

// path expands a leading ~ to the home directory.
func (f *Fetcher) path(loc string) string {
	if loc == "~" {
		return f.homeDir
	}
	if rest, ok := strings.CutPrefix(loc, "~/"); ok && f.homeDir != "" {
		return filepath.Join(f.homeDir, rest)
	}
	return loc
}

func (f *Fetcher) store(ctx context.Context, doc catalog.Document, body []byte) {
	if f.cache == nil {
		return
	}
	if err := f.cache.Put(ctx, doc.Name, doc.Location, body); err != nil {
		slog.Warn("Cannot cache document", "document", doc.Name, "error", err)
	}
}

func (f *Fetcher) fromCache(
	ctx context.Context,
	doc catalog.Document,
	cause error,
	accept func([]byte) error,
) (Result, bool) {
	if f.cache == nil {
		return Result{}, false
	}
	entry, ok, err := f.cache.Get(ctx, doc.Name)
	if err != nil {
		slog.Warn("Cannot read document cache", "document", doc.Name, "error", err)
		return Result{}, false
	}
	if !ok {
		return Result{}, false
	}
	if err = accept(entry.Body); err != nil {
		slog.Warn("Cached document is not usable", "document", doc.Name, "error", err)
		return Result{}, false
	}

	slog.Warn("Fetch failed, using cached document",
		"document", doc.Name,
		"fetched_at", entry.FetchedAt,
		"error", cause,
	)
	gn.Warn(
		"Cannot fetch <em>%s</em>, using a copy cached on %s",
		doc.Name, entry.FetchedAt.Format(time.DateTime),
	)
	return Result{
		Document:  doc,
		Body:      entry.Body,
		FromCache: true,
		FetchedAt: entry.FetchedAt,
	}, true
}
