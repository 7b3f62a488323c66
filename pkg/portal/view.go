// Package portal ties the store, filters, sorting and pagination of one
// record collection into an interactive View. Every change of criteria or
// sort state rebuilds the derived view from the read-only store. When
// rebuilds overlap, the last one wins.
package portal

import (
	"slices"
	"sync"
	"time"

	"github.com/gnames/degportal/pkg/debounce"
	"github.com/gnames/degportal/pkg/export"
	"github.com/gnames/degportal/pkg/filter"
	"github.com/gnames/degportal/pkg/paginate"
	"github.com/gnames/degportal/pkg/record"
	"github.com/gnames/degportal/pkg/sorter"
)

// Control keys of the debouncer.
const (
	controlSearch   = "search"
	controlDatasets = "datasets"
)

// FilterFunc applies criteria to records, for example filter.Genes.
type FilterFunc[T any] func(records []T, c filter.Criteria) []T

// Snapshot is the published state of a View.
type Snapshot[T any] struct {
	// Generation increases with every rebuild.
	Generation uint64
	// Records of the current page.
	Records []T
	// Page is the pagination state.
	Page paginate.State
	// Range describes the shown records, "showing 1-25 of 300".
	Range string
	// Sort is the sort state.
	Sort sorter.State
	// Criteria the records were filtered with.
	Criteria filter.Criteria
	// Filtered is the number of records that passed the filters.
	Filtered int
	// Total is the number of records in the store.
	Total int
}

// View is an interactive projection of a Store.
type View[T record.Keyed[T]] struct {
	mu        sync.Mutex
	store     *record.Store[T]
	apply     FilterFunc[T]
	value     sorter.Accessor[T]
	criteria  filter.Criteria
	applied   filter.Criteria
	sorter    *sorter.Sorter[T]
	pager     *paginate.Paginator[T]
	debouncer *debounce.Debouncer
	filtered  []T
	gen       uint64
	observers []func(Snapshot[T])
}

// New creates a View over a loaded store and builds the initial view
// synchronously.
func New[T record.Keyed[T]](
	store *record.Store[T],
	apply FilterFunc[T],
	value sorter.Accessor[T],
	opts ...Option,
) *View[T] {
	cfg := settings{pageSize: paginate.DefaultPageSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	res := &View[T]{
		store:     store,
		apply:     apply,
		value:     value,
		criteria:  cfg.criteria,
		sorter:    sorter.New(value),
		pager:     paginate.New([]T{}, cfg.pageSize),
		debouncer: debounce.New(cfg.debounce),
	}
	if cfg.sort.Column != "" {
		res.sorter.Set(cfg.sort.Column, cfg.sort.Direction)
	}
	res.rebuild()
	return res
}

// NewGeneView creates a View of genes.
func NewGeneView(store *record.Store[record.Gene], opts ...Option) *View[record.Gene] {
	return New(store, filter.Genes, record.GeneField, opts...)
}

// NewPublicationView creates a View of publications.
func NewPublicationView(
	store *record.Store[record.Publication],
	opts ...Option,
) *View[record.Publication] {
	return New(store, filter.Publications, record.PublicationField, opts...)
}

// Subscribe registers a function that receives every published snapshot.
func (v *View[T]) Subscribe(fn func(Snapshot[T])) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.observers = append(v.observers, fn)
}

// Criteria returns the latest criteria, including changes that wait for
// their rebuild.
func (v *View[T]) Criteria() filter.Criteria {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.criteria
}

// SetSearchTerm changes the search term.
func (v *View[T]) SetSearchTerm(term string) {
	v.change(controlSearch, func(c filter.Criteria) filter.Criteria {
		c.SearchTerm = term
		return c
	})
}

// SetCategory changes a categorical filter, filter.All disables it.
func (v *View[T]) SetCategory(field, value string) {
	v.change("category:"+field, func(c filter.Criteria) filter.Criteria {
		return c.SetCategory(field, value)
	})
}

// SetRange changes the bounds of a numeric filter, nil bounds are open.
func (v *View[T]) SetRange(field string, lo, hi *float64) {
	v.change("range:"+field, func(c filter.Criteria) filter.Criteria {
		return c.SetRange(field, lo, hi)
	})
}

// SetDatasets replaces all dataset toggles.
func (v *View[T]) SetDatasets(toggles map[string]bool) {
	v.change(controlDatasets, func(c filter.Criteria) filter.Criteria {
		c.Datasets = make(map[string]bool, len(toggles))
		for k, on := range toggles {
			c.Datasets[k] = on
		}
		return c
	})
}

// ToggleDataset switches one dataset on or off. The other datasets given
// in names keep their state, datasets without a toggle start enabled.
func (v *View[T]) ToggleDataset(names []string, name string, on bool) {
	v.change(controlDatasets, func(c filter.Criteria) filter.Criteria {
		ds := make(map[string]bool, len(names))
		for _, n := range names {
			state, ok := c.Datasets[n]
			ds[n] = !ok || state
		}
		ds[name] = on
		c.Datasets = ds
		return c
	})
}

// ResetFilters drops all criteria and rebuilds at once.
func (v *View[T]) ResetFilters() {
	v.mu.Lock()
	v.criteria = filter.Criteria{}
	v.mu.Unlock()
	v.rebuild()
}

// Sort toggles the sort of a column and rebuilds at once.
func (v *View[T]) Sort(column string) {
	v.sorter.Toggle(column)
	v.rebuild()
}

// SortBy sets the sort state and rebuilds at once.
func (v *View[T]) SortBy(column string, dir sorter.Direction) {
	v.sorter.Set(column, dir)
	v.rebuild()
}

// GoToPage moves to a page, invalid pages change nothing.
func (v *View[T]) GoToPage(n int) bool {
	return v.navigate(func() bool { return v.pager.GoToPage(n) })
}

// Next moves one page forward.
func (v *View[T]) Next() bool {
	return v.navigate(v.pager.Next)
}

// Previous moves one page back.
func (v *View[T]) Previous() bool {
	return v.navigate(v.pager.Previous)
}

// ChangePageSize changes the page size and returns to the first page.
func (v *View[T]) ChangePageSize(n int) bool {
	return v.navigate(func() bool { return v.pager.ChangePageSize(n) })
}

// Flush runs waiting rebuilds now.
func (v *View[T]) Flush() {
	v.debouncer.Flush()
}

// Close cancels waiting rebuilds. The View stays readable.
func (v *View[T]) Close() {
	v.debouncer.Stop()
}

// Snapshot returns the current published state.
func (v *View[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot()
}

// Records returns all filtered and sorted records of the view.
func (v *View[T]) Records() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.filtered)
}

// Export serializes the filtered and sorted records, not only the
// current page.
func (v *View[T]) Export(columns []export.Column, sep rune) (string, error) {
	return export.ToDelimitedText(v.Records(), columns, export.Value[T](v.value), sep)
}

func (v *View[T]) change(control string, fn func(filter.Criteria) filter.Criteria) {
	v.mu.Lock()
	v.criteria = fn(v.criteria)
	v.mu.Unlock()
	v.debouncer.Do(control, v.rebuild)
}

func (v *View[T]) navigate(fn func() bool) bool {
	if !fn() {
		return false
	}
	v.publish()
	return true
}

// rebuild filters the store with the latest criteria and applies the
// current sort. A rebuild that was overtaken by a newer one is dropped.
func (v *View[T]) rebuild() {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	crit := v.criteria
	v.mu.Unlock()

	res := v.apply(v.store.Records(), crit)
	res = v.sorter.Reapply(res)

	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		return
	}
	v.filtered = res
	v.applied = crit
	v.pager.UpdateData(res)
	snap := v.snapshot()
	observers := slices.Clone(v.observers)
	v.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (v *View[T]) publish() {
	v.mu.Lock()
	snap := v.snapshot()
	observers := slices.Clone(v.observers)
	v.mu.Unlock()
	for _, fn := range observers {
		fn(snap)
	}
}

func (v *View[T]) snapshot() Snapshot[T] {
	return Snapshot[T]{
		Generation: v.gen,
		Records:    v.pager.Page(),
		Page:       v.pager.State(),
		Range:      v.pager.Range(),
		Sort:       v.sorter.State(),
		Criteria:   v.applied,
		Filtered:   len(v.filtered),
		Total:      v.store.Len(),
	}
}

type settings struct {
	pageSize int
	debounce time.Duration
	criteria filter.Criteria
	sort     sorter.State
}

// Option changes the initial settings of a View.
type Option func(*settings)

// OptPageSize sets the initial page size.
func OptPageSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// OptDebounce sets the quiet period of text and range controls.
func OptDebounce(d time.Duration) Option {
	return func(s *settings) {
		s.debounce = d
	}
}

// OptCriteria sets the initial criteria.
func OptCriteria(c filter.Criteria) Option {
	return func(s *settings) {
		s.criteria = c
	}
}

// OptSort sets the initial sort.
func OptSort(column string, dir sorter.Direction) Option {
	return func(s *settings) {
		s.sort = sorter.State{Column: column, Direction: dir}
	}
}
