// Package paginate slices an ordered sequence into fixed-size pages.
package paginate

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// DefaultPageSize is used when a Paginator is created without a valid size.
const DefaultPageSize = 25

// State is the navigation state exposed to renderers.
type State struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	PageSize    int  `json:"page_size"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// Paginator holds one ordered sequence and the current page. The current
// page is always within [1, max(1, TotalPages)].
type Paginator[T any] struct {
	mu        sync.RWMutex
	data      []T
	size      int
	current   int
	observers []func(State)
}

// New creates a Paginator on the first page.
func New[T any](data []T, pageSize int) *Paginator[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator[T]{data: data, size: pageSize, current: 1}
}

// Subscribe registers a function that receives the state after every
// change.
func (p *Paginator[T]) Subscribe(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, fn)
}

// CurrentPage is 1-indexed.
func (p *Paginator[T]) CurrentPage() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// TotalPages is ceil(TotalItems/PageSize), 0 for an empty sequence.
func (p *Paginator[T]) TotalPages() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.totalPages()
}

// PageSize is the number of records per page.
func (p *Paginator[T]) PageSize() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.size
}

// TotalItems is the length of the current sequence.
func (p *Paginator[T]) TotalItems() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.data)
}

// HasNext is false on the last page, and when there are no pages.
func (p *Paginator[T]) HasNext() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current < p.totalPages()
}

// HasPrevious is false on the first page.
func (p *Paginator[T]) HasPrevious() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current > 1
}

// State returns a snapshot of the navigation state.
func (p *Paginator[T]) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state()
}

// Page returns a copy of the records of the current page.
func (p *Paginator[T]) Page() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	start, end := p.bounds()
	return slices.Clone(p.data[start:end])
}

// Range describes the records of the current page, for example
// "showing 11-20 of 53".
func (p *Paginator[T]) Range() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.data) == 0 {
		return "showing 0 of 0"
	}
	start, end := p.bounds()
	return fmt.Sprintf("showing %d-%d of %d", start+1, end, len(p.data))
}

// GoToPage moves to page n. An invalid page number changes nothing and
// returns false.
func (p *Paginator[T]) GoToPage(n int) bool {
	p.mu.Lock()
	total := p.totalPages()
	if n < 1 || n > total {
		p.mu.Unlock()
		slog.Warn("Page is out of range", "page", n, "total_pages", total)
		return false
	}
	p.current = n
	st, obs := p.changed()
	p.mu.Unlock()
	notify(obs, st)
	return true
}

// Next moves one page forward. It is a no-op on the last page.
func (p *Paginator[T]) Next() bool {
	if !p.HasNext() {
		return false
	}
	return p.GoToPage(p.CurrentPage() + 1)
}

// Previous moves one page back. It is a no-op on the first page.
func (p *Paginator[T]) Previous() bool {
	if !p.HasPrevious() {
		return false
	}
	return p.GoToPage(p.CurrentPage() - 1)
}

// UpdateData replaces the sequence and resets to page 1.
func (p *Paginator[T]) UpdateData(data []T) {
	p.mu.Lock()
	p.data = data
	p.current = 1
	st, obs := p.changed()
	p.mu.Unlock()
	notify(obs, st)
}

// ChangePageSize sets a new page size and resets to page 1. A non-positive
// size changes nothing and returns false.
func (p *Paginator[T]) ChangePageSize(n int) bool {
	if n <= 0 {
		slog.Warn("Page size must be positive", "page_size", n)
		return false
	}
	p.mu.Lock()
	p.size = n
	p.current = 1
	st, obs := p.changed()
	p.mu.Unlock()
	notify(obs, st)
	return true
}

func (p *Paginator[T]) totalPages() int {
	return (len(p.data) + p.size - 1) / p.size
}

func (p *Paginator[T]) bounds() (int, int) {
	start := min((p.current-1)*p.size, len(p.data))
	end := min(start+p.size, len(p.data))
	return start, end
}

func (p *Paginator[T]) state() State {
	total := p.totalPages()
	return State{
		CurrentPage: p.current,
		TotalPages:  total,
		PageSize:    p.size,
		TotalItems:  len(p.data),
		HasPrevious: p.current > 1,
		HasNext:     p.current < total,
	}
}

func (p *Paginator[T]) changed() (State, []func(State)) {
	return p.state(), slices.Clone(p.observers)
}

func notify(obs []func(State), st State) {
	for _, fn := range obs {
		fn(st)
	}
}
