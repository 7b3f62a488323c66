package iofetch

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gnames/degportal/internal/iometrics"
	"github.com/gnames/degportal/pkg/catalog"
	"github.com/gnames/degportal/pkg/normalize"
	"github.com/gnames/degportal/pkg/record"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

// Report describes one loaded document.
type Report struct {
	Document  catalog.Document `json:"document"`
	Records   int              `json:"records"`
	FromCache bool             `json:"from_cache"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
}

// Loaded is a store built from all documents of one kind.
type Loaded[T record.Keyed[T]] struct {
	Store   *record.Store[T]
	Reports []Report
}

type parser[T record.Keyed[T]] func(
	doc catalog.Document,
	body []byte,
) (record.Batch[T], error)

// LoadGenes fetches all gene documents of the catalog concurrently and
// merges them in catalog order.
func (f *Fetcher) LoadGenes(
	ctx context.Context,
	cat *catalog.Catalog,
	th record.Thresholds,
) (*Loaded[record.Gene], error) {
	parse := func(doc catalog.Document, body []byte) (record.Batch[record.Gene], error) {
		return ParseGenes(doc, body, th)
	}
	return load(ctx, f, cat.ByKind(catalog.Genes), catalog.Genes, parse)
}

// LoadPublications fetches all publication documents of the catalog
// concurrently and merges them in catalog order.
func (f *Fetcher) LoadPublications(
	ctx context.Context,
	cat *catalog.Catalog,
) (*Loaded[record.Publication], error) {
	return load(ctx, f, cat.ByKind(catalog.Publications), catalog.Publications,
		ParsePublications)
}

func load[T record.Keyed[T]](
	ctx context.Context,
	f *Fetcher,
	docs []catalog.Document,
	kind catalog.Kind,
	parse parser[T],
) (*Loaded[T], error) {
	if len(docs) == 0 {
		return nil, NoDocumentsError(kind)
	}

	batches := make([]record.Batch[T], len(docs))
	reports := make([]Report, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.jobs)
	for i, doc := range docs {
		g.Go(func() error {
			var batch record.Batch[T]
			res, err := f.fetch(ctx, doc, func(body []byte) error {
				var err error
				batch, err = parse(doc, body)
				return err
			})
			if err != nil {
				return err
			}
			batches[i] = batch
			reports[i] = Report{
				Document:  doc,
				Records:   len(batch.Records),
				FromCache: res.FromCache,
				Metadata:  batch.Metadata,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	store := record.NewStore(batches...)
	iometrics.RecordsLoaded.WithLabelValues(string(kind)).Set(float64(store.Len()))
	iometrics.DuplicateRecords.WithLabelValues(string(kind)).
		Set(float64(store.Duplicates()))

	slog.Info("Loaded records",
		"kind", kind,
		"documents", len(docs),
		"records", humanize.Comma(int64(store.Len())),
		"duplicates", store.Duplicates(),
	)
	return &Loaded[T]{Store: store, Reports: reports}, nil
}

// ParseGenes decodes a gene document and normalizes its records.
func ParseGenes(
	doc catalog.Document,
	body []byte,
	th record.Thresholds,
) (record.Batch[record.Gene], error) {
	var raw normalize.GeneDocument
	enc := gnfmt.GNjson{}
	if err := enc.Decode(body, &raw); err != nil {
		return record.Batch[record.Gene]{}, DocumentParseError(doc, err)
	}
	if raw.Genes == nil {
		return record.Batch[record.Gene]{}, DocumentEmptyError(doc, "genes")
	}
	return record.Batch[record.Gene]{
		Source:   doc.Name,
		Metadata: raw.Metadata,
		Records:  normalize.Genes(raw.Genes, th),
	}, nil
}

// ParsePublications decodes a publication document and normalizes its
// records.
func ParsePublications(
	doc catalog.Document,
	body []byte,
) (record.Batch[record.Publication], error) {
	var raw normalize.PublicationDocument
	enc := gnfmt.GNjson{}
	if err := enc.Decode(body, &raw); err != nil {
		return record.Batch[record.Publication]{}, DocumentParseError(doc, err)
	}
	if raw.Publications == nil {
		return record.Batch[record.Publication]{},
			DocumentEmptyError(doc, "publications")
	}
	return record.Batch[record.Publication]{
		Source:   doc.Name,
		Metadata: raw.Metadata,
		Records:  normalize.Publications(raw.Publications),
	}, nil
}

// FetchAll fetches documents concurrently. A failed document does not stop
// the others, done is called once per document. The returned error joins
// all failures.
func (f *Fetcher) FetchAll(
	ctx context.Context,
	docs []catalog.Document,
	done func(Result, error),
) error {
	var mu sync.Mutex
	var errs []error

	g := &errgroup.Group{}
	g.SetLimit(f.jobs)
	for _, doc := range docs {
		g.Go(func() error {
			res, err := f.Fetch(ctx, doc)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
			}
			if done != nil {
				done(res, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
