package content

import (
	"iter"
	"maps"
	"slices"
)

// Store is a sparse, typed property bag belonging to one owner (a row,
// a layout field, or a form). Entries are keyed by (column, property).
//
// Store is not safe for concurrent use.
type Store struct {
	cols    *Columns
	entries map[Key]Value
}

// NewStore creates an empty store that names columns through cols.
// A nil registry gets a private one.
func NewStore(cols *Columns) *Store {
	if cols == nil {
		cols = NewColumns()
	}
	return &Store{cols: cols}
}

// Columns returns the column registry the store names columns through.
func (s *Store) Columns() *Columns {
	return s.cols
}

// Get returns the entry for (column, prop). A column name the registry
// has never seen is reported as absent without allocating an id.
func (s *Store) Get(column string, prop PropertyID) (Value, bool) {
	id, ok := s.cols.Lookup(column)
	if !ok {
		return Value{}, false
	}
	return s.GetID(id, prop)
}

// GetID returns the entry for (column id, prop).
func (s *Store) GetID(column ColumnID, prop PropertyID) (Value, bool) {
	v, ok := s.entries[MakeKey(column, prop)]
	return v, ok
}

// Set stores v under (column, prop). Setting the absent value removes the
// entry; removing never allocates a column id.
func (s *Store) Set(column string, prop PropertyID, v Value) error {
	if v.IsAbsent() {
		if id, ok := s.cols.Lookup(column); ok {
			s.SetID(id, prop, v)
		}
		return nil
	}
	id, err := s.cols.Allocate(column)
	if err != nil {
		return err
	}
	s.SetID(id, prop, v)
	return nil
}

// SetID stores v under (column id, prop). Setting the absent value removes
// the entry.
func (s *Store) SetID(column ColumnID, prop PropertyID, v Value) {
	k := MakeKey(column, prop)
	if v.IsAbsent() {
		delete(s.entries, k)
		return
	}
	if s.entries == nil {
		s.entries = make(map[Key]Value)
	}
	s.entries[k] = v
}

// Has reports whether an entry exists for (column, prop).
func (s *Store) Has(column string, prop PropertyID) bool {
	_, ok := s.Get(column, prop)
	return ok
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// All iterates entries in ascending key order.
func (s *Store) All() iter.Seq2[Key, Value] {
	return func(yield func(Key, Value) bool) {
		for _, k := range slices.Sorted(maps.Keys(s.entries)) {
			if !yield(k, s.entries[k]) {
				return
			}
		}
	}
}

// Clear removes every entry. Allocated column ids are kept.
func (s *Store) Clear() {
	clear(s.entries)
}
