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
	"fmt"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/degportal/internal/iofetch"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getFetchCmd returns the fetch command.
func getFetchCmd() *cobra.Command {
	var (
		list bool
		drop []string
	)

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download catalog documents into the local cache",
		Long: `Fetch every document listed in catalog.yaml and store a copy in
the document cache (~/.cache/degportal/documents.sqlite).

When a document cannot be fetched later, the cached copy is used with a
warning, so the portal keeps working while the data server is down.

Examples:
  degportal fetch
  degportal fetch --list
  degportal fetch --drop spatial_transcriptomics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(list, drop)
		},
	}

	fetchCmd.Flags().BoolVarP(&list, "list", "l", false,
		"list cached documents without fetching")
	fetchCmd.Flags().StringSliceVar(&drop, "drop", nil,
		"remove documents from the cache without fetching")

	return fetchCmd
}

func runFetch(list bool, drop []string) error {
	ctx := context.Background()

	s, err := openSession(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	if s.cache == nil {
		gn.Warn("Document cache is off, documents are fetched without caching")
	}

	switch {
	case list:
		return listCache(ctx, s)
	case len(drop) > 0:
		return dropCache(ctx, s, drop)
	}

	start := time.Now()
	docs := s.catalog.Documents
	bar := pb.Full.Start(len(docs))
	bar.Set("prefix", "Fetching documents ")
	bar.Set(pb.CleanOnFinish, true)

	var failed []error
	var cached, size int
	err = s.fetcher.FetchAll(ctx, docs, func(res iofetch.Result, err error) {
		bar.Increment()
		if err != nil {
			failed = append(failed, err)
			return
		}
		size += len(res.Body)
		if res.FromCache {
			cached++
		}
	})
	bar.Finish()

	for _, v := range failed {
		gn.PrintErrorMessage(v)
	}

	gn.Info("Fetched <em>%d</em> of %d documents (%s) in %s",
		len(docs)-len(failed), len(docs),
		humanize.Bytes(uint64(size)),
		gnfmt.TimeString(time.Since(start).Seconds()))
	if cached > 0 {
		gn.Warn("%d documents came from the cache", cached)
	}
	return err
}

func listCache(ctx context.Context, s *session) error {
	if s.cache == nil {
		return nil
	}
	entries, err := s.cache.List(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if len(entries) == 0 {
		gn.Info("Document cache is empty")
		return nil
	}
	for _, v := range entries {
		fmt.Fprintf(os.Stdout, "%-28s %s  %s\n",
			v.Name, v.FetchedAt.Format(time.DateTime), v.Location)
	}
	return nil
}

func dropCache(ctx context.Context, s *session, names []string) error {
	if s.cache == nil {
		return nil
	}
	for _, v := range names {
		if err := s.cache.Delete(ctx, v); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("Removed <em>%s</em> from the document cache", v)
	}
	return nil
}
