package record

import (
	"maps"
	"slices"
)

// Keyed is a record with an identity key that can produce an independent
// copy of itself.
type Keyed[T any] interface {
	Key() string
	Clone() T
}

// Batch is a set of records that came from one source document.
type Batch[T Keyed[T]] struct {
	// Source is the document name.
	Source string
	// Metadata is the document's metadata block, kept as is.
	Metadata map[string]any
	// Records in document order.
	Records []T
}

// Store is an ordered sequence of records with unique identity keys.
// It is built once and never changes afterwards, so it can be shared by
// any number of concurrent readers.
type Store[T Keyed[T]] struct {
	items      []T
	index      map[string]int
	metadata   map[string]map[string]any
	sources    []string
	duplicates int
}

// NewStore merges batches in the given order. When a key repeats, the first
// occurrence wins and later ones are counted as duplicates.
func NewStore[T Keyed[T]](batches ...Batch[T]) *Store[T] {
	res := &Store[T]{
		index:    make(map[string]int),
		metadata: make(map[string]map[string]any),
	}
	for _, b := range batches {
		res.sources = append(res.sources, b.Source)
		if b.Metadata != nil {
			res.metadata[b.Source] = maps.Clone(b.Metadata)
		}
		for _, v := range b.Records {
			key := v.Key()
			if _, ok := res.index[key]; ok {
				res.duplicates++
				continue
			}
			res.index[key] = len(res.items)
			res.items = append(res.items, v.Clone())
		}
	}
	return res
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Records returns copies of all records in store order. Changes to the
// result never reach the store.
func (s *Store[T]) Records() []T {
	res := make([]T, len(s.items))
	for i := range s.items {
		res[i] = s.items[i].Clone()
	}
	return res
}

// Get returns a copy of the record with the given key.
func (s *Store[T]) Get(key string) (T, bool) {
	idx, ok := s.index[key]
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[idx].Clone(), true
}

// Duplicates returns how many records were dropped because their key was
// already taken.
func (s *Store[T]) Duplicates() int {
	return s.duplicates
}

// Sources returns names of merged documents in merge order.
func (s *Store[T]) Sources() []string {
	return slices.Clone(s.sources)
}

// Metadata returns the metadata block of a source document.
func (s *Store[T]) Metadata(source string) map[string]any {
	return maps.Clone(s.metadata[source])
}

// DatasetNames returns the sorted names of all datasets any gene in the
// store is observed in.
func DatasetNames(s *Store[Gene]) []string {
	set := make(map[string]struct{})
	for i := range s.items {
		for k := range s.items[i].Datasets {
			set[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}
