package ioweb

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gnames/degportal/internal/iometrics"
	"github.com/gnames/degportal/pkg/catalog"
	"github.com/gnames/degportal/pkg/chart"
	"github.com/gnames/degportal/pkg/export"
	"github.com/gnames/degportal/pkg/filter"
	"github.com/gnames/degportal/pkg/paginate"
	"github.com/gnames/degportal/pkg/record"
	"github.com/gnames/degportal/pkg/sorter"
	"github.com/gnames/gnfmt"
)

// pageResponse is the JSON answer of a view request.
type pageResponse[T any] struct {
	Records  []T            `json:"records"`
	Page     paginate.State `json:"page"`
	Range    string         `json:"range"`
	Sort     sorter.State   `json:"sort"`
	Filtered int            `json:"filtered"`
	Total    int            `json:"total"`
}

// view filters, sorts and paginates records for one request.
func view[T any](
	records []T,
	q query,
	apply func([]T, filter.Criteria) []T,
	value sorter.Accessor[T],
	total int,
) pageResponse[T] {
	res := sorter.Apply(apply(records, q.criteria), q.sort, value)
	p := paginate.New(res, q.pageSize)
	if q.page != 1 {
		p.GoToPage(q.page)
	}
	return pageResponse[T]{
		Records:  p.Page(),
		Page:     p.State(),
		Range:    p.Range(),
		Sort:     q.sort,
		Filtered: len(res),
		Total:    total,
	}
}

func (s *Server) geneStore(w http.ResponseWriter) (*record.Store[record.Gene], []string, bool) {
	loaded, d, datasets := s.snapshot()
	if !loaded {
		writeLoading(w)
		return nil, nil, false
	}
	if d.Genes == nil {
		writeLoadFailed(w, catalog.Genes, d.GenesErr)
		return nil, nil, false
	}
	return d.Genes.Store, datasets, true
}

func (s *Server) publicationStore(w http.ResponseWriter) (*record.Store[record.Publication], bool) {
	loaded, d, _ := s.snapshot()
	if !loaded {
		writeLoading(w)
		return nil, false
	}
	if d.Publications == nil {
		writeLoadFailed(w, catalog.Publications, d.PublicationsErr)
		return nil, false
	}
	return d.Publications.Store, true
}

func (s *Server) genes(w http.ResponseWriter, r *http.Request) {
	store, datasets, ok := s.geneStore(w)
	if !ok {
		return
	}
	q := parseQuery(r.URL.Query(), geneCategories, datasets, s.cfg.Browse.PageSize)
	writeJSON(w, http.StatusOK,
		view(store.Records(), q, filter.Genes, record.GeneField, store.Len()))
}

func (s *Server) publications(w http.ResponseWriter, r *http.Request) {
	store, ok := s.publicationStore(w)
	if !ok {
		return
	}
	q := parseQuery(r.URL.Query(), publicationCategories, nil, s.cfg.Browse.PageSize)
	writeJSON(w, http.StatusOK,
		view(store.Records(), q, filter.Publications, record.PublicationField, store.Len()))
}

func (s *Server) exportGenes(w http.ResponseWriter, r *http.Request) {
	store, datasets, ok := s.geneStore(w)
	if !ok {
		return
	}
	f, ok := exportFormat(w, r)
	if !ok {
		return
	}
	q := parseQuery(r.URL.Query(), geneCategories, datasets, s.cfg.Browse.PageSize)
	res := sorter.Apply(filter.Genes(store.Records(), q.criteria), q.sort, record.GeneField)
	s.writeExport(w, "genes", f, func() error {
		return export.Write(w, res, export.GeneColumns(datasets), record.GeneField, export.Separator(f))
	})
}

func (s *Server) exportPublications(w http.ResponseWriter, r *http.Request) {
	store, ok := s.publicationStore(w)
	if !ok {
		return
	}
	f, ok := exportFormat(w, r)
	if !ok {
		return
	}
	q := parseQuery(r.URL.Query(), publicationCategories, nil, s.cfg.Browse.PageSize)
	res := sorter.Apply(filter.Publications(store.Records(), q.criteria), q.sort,
		record.PublicationField)
	s.writeExport(w, "publications", f, func() error {
		return export.Write(w, res, export.PublicationColumns(), record.PublicationField,
			export.Separator(f))
	})
}

func exportFormat(w http.ResponseWriter, r *http.Request) (gnfmt.Format, bool) {
	s := r.URL.Query().Get("format")
	if s == "" {
		return gnfmt.CSV, true
	}
	f, err := export.ParseFormat(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return gnfmt.FormatNone, false
	}
	return f, true
}

func (s *Server) writeExport(
	w http.ResponseWriter,
	kind string,
	f gnfmt.Format,
	write func() error,
) {
	name := export.FileName(kind, s.now(), f)
	w.Header().Set("Content-Type", export.ContentType(f))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := write(); err != nil {
		logError("Cannot write export", err)
		return
	}
	iometrics.Exports.WithLabelValues(kind, export.Extension(f)).Inc()
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	var cfg chart.Config
	viewID := r.PathValue("view")

	switch viewID {
	case "volcano", "regulation":
		store, datasets, ok := s.geneStore(w)
		if !ok {
			return
		}
		q := parseQuery(v, geneCategories, datasets, s.cfg.Browse.PageSize)
		genes := filter.Genes(store.Records(), q.criteria)
		if viewID == "regulation" {
			cfg = chart.RegulationSummary(genes, datasets)
			break
		}
		ds := v.Get("dataset")
		if ds == "" && len(datasets) > 0 {
			ds = datasets[0]
		}
		if !slices.Contains(datasets, ds) {
			writeError(w, http.StatusNotFound, fmt.Errorf("unknown dataset %q", ds))
			return
		}
		viewID += ":" + ds
		cfg = chart.Volcano(genes, ds, s.cfg.Thresholds())
	case "years", "quartiles", "study_types":
		store, ok := s.publicationStore(w)
		if !ok {
			return
		}
		q := parseQuery(v, publicationCategories, nil, s.cfg.Browse.PageSize)
		pubs := filter.Publications(store.Records(), q.criteria)
		switch viewID {
		case "years":
			cfg = chart.PublicationsByYear(pubs)
		case "quartiles":
			cfg = chart.QuartileDistribution(pubs)
		default:
			cfg = chart.StudyTypeDistribution(pubs)
		}
	default:
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown chart %q", viewID))
		return
	}

	h, err := s.charts.Replace(viewID, cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Config())
}

type datasetsResponse struct {
	Datasets     []string         `json:"datasets"`
	Genes        int              `json:"genes"`
	Publications int              `json:"publications"`
	Documents    []documentStatus `json:"documents"`
}

type documentStatus struct {
	Name        string         `json:"name"`
	Kind        catalog.Kind   `json:"kind"`
	Description string         `json:"description,omitempty"`
	Records     int            `json:"records"`
	FromCache   bool           `json:"from_cache"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func (s *Server) datasetsInfo(w http.ResponseWriter, _ *http.Request) {
	loaded, d, datasets := s.snapshot()
	if !loaded {
		writeLoading(w)
		return
	}

	res := datasetsResponse{Datasets: datasets, Documents: []documentStatus{}}
	if res.Datasets == nil {
		res.Datasets = []string{}
	}
	if d.Genes != nil {
		res.Genes = d.Genes.Store.Len()
		for _, v := range d.Genes.Reports {
			res.Documents = append(res.Documents, status(v.Document, v.Records, v.FromCache, v.Metadata))
		}
	}
	if d.Publications != nil {
		res.Publications = d.Publications.Store.Len()
		for _, v := range d.Publications.Reports {
			res.Documents = append(res.Documents, status(v.Document, v.Records, v.FromCache, v.Metadata))
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func status(
	doc catalog.Document,
	n int,
	cached bool,
	meta map[string]any,
) documentStatus {
	return documentStatus{
		Name:        doc.Name,
		Kind:        doc.Kind,
		Description: doc.Description,
		Records:     n,
		FromCache:   cached,
		Metadata:    meta,
	}
}
