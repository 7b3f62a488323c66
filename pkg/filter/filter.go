// Package filter implements the search and filter engine of the portal.
// Filters are pure predicates over records; all active filters combine
// with AND. Applying filters never reorders, duplicates or changes records.
package filter

import (
	"maps"
	"math"
	"strconv"
	"strings"
)

// All is the categorical value that disables a category filter.
const All = "all"

// Predicate reports if a record passes a filter.
type Predicate[T any] func(T) bool

// Apply returns a new slice with the records that pass all predicates,
// in their original relative order. The input slice is not modified.
func Apply[T any](records []T, preds ...Predicate[T]) []T {
	res := make([]T, 0, len(records))
	for _, r := range records {
		if passes(r, preds) {
			res = append(res, r)
		}
	}
	return res
}

func passes[T any](r T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

// Category is an exact-match filter on a categorical attribute.
type Category struct {
	Field string
	Value string
}

// Active reports if the filter does anything.
func (c Category) Active() bool {
	v := strings.TrimSpace(c.Value)
	return v != "" && !strings.EqualFold(v, All)
}

// Range is a closed numeric interval on an attribute. A nil bound is
// unbounded, a range without bounds is inactive.
type Range struct {
	Field string
	Min   *float64
	Max   *float64
}

// Active reports if the range has at least one bound.
func (r Range) Active() bool {
	return r.Min != nil || r.Max != nil
}

// Contains reports if a value is within the range.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Criteria is the complete filter configuration of a view. The zero value
// filters nothing.
type Criteria struct {
	// SearchTerm is matched case-insensitively as a substring of the
	// searchable text fields. Empty matches everything.
	SearchTerm string
	// Categories are exact-match filters.
	Categories []Category
	// Datasets toggles datasets on and off (gene views only). An empty map
	// or a map with every toggle on disables the presence filter.
	Datasets map[string]bool
	// Ranges are numeric interval filters.
	Ranges []Range
}

// IsDefault reports if no filter of the criteria is active.
func (c Criteria) IsDefault() bool {
	if normTerm(c.SearchTerm) != "" || !c.allDatasetsEnabled() {
		return false
	}
	for _, v := range c.Categories {
		if v.Active() {
			return false
		}
	}
	for _, v := range c.Ranges {
		if v.Active() {
			return false
		}
	}
	return true
}

// SetCategory replaces the value of a category filter, adding it if the
// field has none yet. The receiver is not modified.
func (c Criteria) SetCategory(field, value string) Criteria {
	res := c.clone()
	for i := range res.Categories {
		if res.Categories[i].Field == field {
			res.Categories[i].Value = value
			return res
		}
	}
	res.Categories = append(res.Categories, Category{Field: field, Value: value})
	return res
}

// SetRange replaces the bounds of a range filter, adding it if the field
// has none yet. The receiver is not modified.
func (c Criteria) SetRange(field string, lo, hi *float64) Criteria {
	res := c.clone()
	for i := range res.Ranges {
		if res.Ranges[i].Field == field {
			res.Ranges[i].Min, res.Ranges[i].Max = lo, hi
			return res
		}
	}
	res.Ranges = append(res.Ranges, Range{Field: field, Min: lo, Max: hi})
	return res
}

func (c Criteria) clone() Criteria {
	res := c
	res.Categories = append([]Category(nil), c.Categories...)
	res.Ranges = append([]Range(nil), c.Ranges...)
	res.Datasets = maps.Clone(c.Datasets)
	return res
}

func (c Criteria) allDatasetsEnabled() bool {
	for _, on := range c.Datasets {
		if !on {
			return false
		}
	}
	return true
}

// datasetEnabled reports if a dataset takes part in per-dataset filters.
func (c Criteria) datasetEnabled(name string) bool {
	return c.allDatasetsEnabled() || c.Datasets[name]
}

// ParseBound converts user input of a numeric filter field. Empty or
// non-numeric input returns nil, which disables that bound.
func ParseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	return &f
}

func normTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsAny reports if any of the fields contains the lowercase term.
func containsAny(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
