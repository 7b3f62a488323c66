// Package sorter orders records by a column. It infers the kind of
// comparison from the data, keeps absent values last in both directions
// and never breaks the relative order of equal keys.
package sorter

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection converts user input to a Direction. Anything that is not
// a form of "desc" is ascending.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending", "d", "-":
		return Desc
	default:
		return Asc
	}
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// State is the current sort of a view. An empty Column means unsorted.
type State struct {
	Column    string    `json:"column,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// Accessor returns the value of a column for a record, nil if the record
// has no value.
type Accessor[T any] func(rec T, column string) any

// Sorter keeps the sort state of one view.
type Sorter[T any] struct {
	mu        sync.Mutex
	state     State
	value     Accessor[T]
	observers []func(State)
}

// New creates an unsorted Sorter.
func New[T any](value Accessor[T]) *Sorter[T] {
	return &Sorter[T]{value: value}
}

// State returns the current sort state.
func (s *Sorter[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a function that receives the state after every sort.
func (s *Sorter[T]) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Sort orders records by column. Sorting by the current column again
// toggles the direction, a new column starts ascending.
func (s *Sorter[T]) Sort(records []T, column string) []T {
	st := s.Toggle(column)
	return Apply(records, st, s.value)
}

// SortBy orders records by column in the given direction. It returns a new
// slice and leaves the input alone.
func (s *Sorter[T]) SortBy(records []T, column string, dir Direction) []T {
	st := s.Set(column, dir)
	return Apply(records, st, s.value)
}

// Toggle changes the state the way Sort does, without sorting.
func (s *Sorter[T]) Toggle(column string) State {
	s.mu.Lock()
	dir := Asc
	if s.state.Column == column {
		dir = s.state.Direction.Opposite()
	}
	s.mu.Unlock()
	return s.Set(column, dir)
}

// Set changes the state and notifies observers.
func (s *Sorter[T]) Set(column string, dir Direction) State {
	if dir != Desc {
		dir = Asc
	}
	st := State{Column: column, Direction: dir}

	s.mu.Lock()
	s.state = st
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(st)
	}
	return st
}

// Reapply orders records by the current state without changing it. An
// unsorted state returns a copy in the original order.
func (s *Sorter[T]) Reapply(records []T) []T {
	return Apply(records, s.State(), s.value)
}

// Reset clears the sort state.
func (s *Sorter[T]) Reset() {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()
}

type keyed[T any] struct {
	rec    T
	num    float64
	str    string
	absent bool
}

// Apply sorts a copy of records by a state. It is the stateless core of
// Sorter.
func Apply[T any](records []T, st State, value Accessor[T]) []T {
	res := slices.Clone(records)
	if st.Column == "" || len(res) < 2 {
		return res
	}

	numeric := isNumeric(records, st.Column, value)
	keys := make([]keyed[T], len(records))
	for i, r := range records {
		keys[i] = key(r, value(r, st.Column), numeric)
	}

	coll := collate.New(language.English, collate.IgnoreCase)
	cmp := func(a, b keyed[T]) int {
		switch {
		case a.absent && b.absent:
			return 0
		case a.absent:
			return 1
		case b.absent:
			return -1
		}
		var c int
		if numeric {
			c = compareFloat(a.num, b.num)
		} else {
			c = coll.CompareString(a.str, b.str)
		}
		if st.Direction == Desc {
			c = -c
		}
		return c
	}
	slices.SortStableFunc(keys, cmp)

	for i := range keys {
		res[i] = keys[i].rec
	}
	return res
}

// isNumeric looks at the first non-nil value of the column.
func isNumeric[T any](records []T, column string, value Accessor[T]) bool {
	for _, r := range records {
		v := value(r, column)
		if v == nil {
			continue
		}
		_, ok := toFloat(v)
		return ok
	}
	return false
}

func key[T any](rec T, v any, numeric bool) keyed[T] {
	res := keyed[T]{rec: rec}
	if v == nil {
		res.absent = true
		return res
	}
	if numeric {
		f, ok := toFloat(v)
		res.num, res.absent = f, !ok
		return res
	}
	res.str = fmt.Sprint(v)
	return res
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
