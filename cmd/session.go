/*
Copyright © 2026 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/degportal/internal/iocache"
	"github.com/gnames/degportal/internal/iocatalog"
	"github.com/gnames/degportal/internal/iofetch"
	"github.com/gnames/degportal/internal/ioweb"
	"github.com/gnames/degportal/pkg/catalog"
	"github.com/gnames/degportal/pkg/config"
	"github.com/gnames/degportal/pkg/record"
	"github.com/gnames/gnfmt"
)

// session is a loaded catalog with a fetcher that can read its documents.
type session struct {
	catalog *catalog.Catalog
	fetcher *iofetch.Fetcher
	cache   *iocache.Cache
	th      record.Thresholds
}

// openSession loads catalog.yaml and opens the document cache when it is
// enabled. A cache that cannot be opened is skipped with a warning.
func openSession(ctx context.Context, cfg *config.Config) (*session, error) {
	cat, err := iocatalog.New(cfg).Load()
	if err != nil {
		return nil, err
	}

	res := &session{catalog: cat, th: cfg.Thresholds()}
	var cache iofetch.Cache
	if cfg.CacheEnabled() {
		c, err := iocache.Open(ctx, config.CacheFilePath(cfg.HomeDir))
		if err != nil {
			slog.Warn("Document cache is disabled", "error", err)
		} else {
			res.cache = c
			cache = c
		}
	}
	res.fetcher = iofetch.New(cfg, cache)
	return res, nil
}

func (s *session) Close() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Close(); err != nil {
		slog.Warn("Cannot close document cache", "error", err)
	}
}

func (s *session) genes(ctx context.Context) (*record.Store[record.Gene], error) {
	start := time.Now()
	res, err := s.fetcher.LoadGenes(ctx, s.catalog, s.th)
	if err != nil {
		return nil, err
	}
	slog.Info("Genes ready", "duration", gnfmt.TimeString(time.Since(start).Seconds()))
	return res.Store, nil
}

func (s *session) publications(ctx context.Context) (*record.Store[record.Publication], error) {
	start := time.Now()
	res, err := s.fetcher.LoadPublications(ctx, s.catalog)
	if err != nil {
		return nil, err
	}
	slog.Info("Publications ready",
		"duration", gnfmt.TimeString(time.Since(start).Seconds()))
	return res.Store, nil
}

// loadAll loads both kinds of records for the HTTP bridge. A failure of
// one kind keeps the other available.
func (s *session) loadAll(ctx context.Context) *ioweb.Data {
	var res ioweb.Data
	genes, err := s.fetcher.LoadGenes(ctx, s.catalog, s.th)
	if err != nil {
		res.GenesErr = ioweb.ServerLoadError(string(catalog.Genes), err)
	} else {
		res.Genes = genes
	}

	pubs, err := s.fetcher.LoadPublications(ctx, s.catalog)
	if err != nil {
		res.PublicationsErr = ioweb.ServerLoadError(string(catalog.Publications), err)
	} else {
		res.Publications = pubs
	}
	return &res
}
