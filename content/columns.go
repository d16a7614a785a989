package content

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

// ColumnID identifies a named data column. Zero means "no column".
type ColumnID uint16

// NoColumn is the column id of shared, column-less entries.
const NoColumn ColumnID = 0

// MaxColumns is the number of allocatable column ids.
const MaxColumns = 1<<16 - 1

var (
	// ErrColumnsLocked is returned when the naming mode is changed after
	// a column id has been allocated.
	ErrColumnsLocked = errors.New("content: column naming mode is locked")

	// ErrTooManyColumns is returned when every column id is in use.
	ErrTooManyColumns = errors.New("content: column ids exhausted")
)

// Columns allocates column ids for column names. One registry is shared by
// every store of a form so that ids agree across rows, fields and the form.
//
// Columns is not safe for concurrent use.
type Columns struct {
	exact bool
	ids   map[string]ColumnID
	names []string
	fold  cases.Caser
}

// NewColumns creates an empty registry that folds names.
func NewColumns() *Columns {
	return &Columns{
		ids:  make(map[string]ColumnID),
		fold: cases.Fold(),
	}
}

// SetExact switches between exact and folded name matching. The mode can
// only change while no id has been allocated.
func (c *Columns) SetExact(exact bool) error {
	if exact == c.exact {
		return nil
	}
	if len(c.names) > 0 {
		return ErrColumnsLocked
	}
	c.exact = exact
	return nil
}

// Exact reports whether names are matched exactly.
func (c *Columns) Exact() bool {
	return c.exact
}

// normalize maps a column name to its registry spelling.
func (c *Columns) normalize(name string) string {
	if c.exact {
		return name
	}
	return c.fold.String(strings.TrimSpace(name))
}

// Lookup returns the id of name without allocating. The empty name maps
// to NoColumn.
func (c *Columns) Lookup(name string) (ColumnID, bool) {
	n := c.normalize(name)
	if n == "" {
		return NoColumn, true
	}
	id, ok := c.ids[n]
	return id, ok
}

// Allocate returns the id of name, allocating one on first use.
func (c *Columns) Allocate(name string) (ColumnID, error) {
	n := c.normalize(name)
	if n == "" {
		return NoColumn, nil
	}
	if id, ok := c.ids[n]; ok {
		return id, nil
	}
	if len(c.names) >= MaxColumns {
		return NoColumn, ErrTooManyColumns
	}
	c.names = append(c.names, n)
	id := ColumnID(len(c.names)) //nolint:gosec // bounded by MaxColumns
	c.ids[n] = id
	return id, nil
}

// Name returns the registered spelling of id.
func (c *Columns) Name(id ColumnID) (string, bool) {
	if id == NoColumn || int(id) > len(c.names) {
		return "", false
	}
	return c.names[id-1], true
}

// Len returns the number of allocated ids.
func (c *Columns) Len() int {
	return len(c.names)
}
