package content

// Level names the store a resolved value came from.
type Level uint8

// Resolution levels, highest precedence first.
const (
	LevelNone Level = iota
	LevelRow
	LevelField
	LevelFormOverride
	LevelFormDefault
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelRow:
		return "row"
	case LevelField:
		return "field"
	case LevelFormOverride:
		return "form-override"
	case LevelFormDefault:
		return "form-default"
	default:
		return "none"
	}
}

// Chain resolves effective property values for one cell. Any store may be
// nil; a nil store contributes nothing.
type Chain struct {
	// Row holds per-row overrides keyed by column.
	Row *Store
	// Field holds the layout field's column-less defaults.
	Field *Store
	// Form holds form-wide overrides keyed by column and defaults without one.
	Form *Store
	// Column is the data column the cell is bound to.
	Column string
}

// Resolve returns the effective value of prop and the level it came from.
// Order: row override, field default, form override, form default.
// An explicit Null stops resolution at its level.
func (c Chain) Resolve(prop PropertyID) (Value, Level) {
	if c.Row != nil && c.Column != "" {
		if v, ok := c.Row.Get(c.Column, prop); ok {
			return v, LevelRow
		}
	}
	if c.Field != nil {
		if v, ok := c.Field.GetID(NoColumn, prop); ok {
			return v, LevelField
		}
	}
	if c.Form != nil {
		if c.Column != "" {
			if v, ok := c.Form.Get(c.Column, prop); ok {
				return v, LevelFormOverride
			}
		}
		if v, ok := c.Form.GetID(NoColumn, prop); ok {
			return v, LevelFormDefault
		}
	}
	return Value{}, LevelNone
}

// Value returns only the effective value of prop.
func (c Chain) Value(prop PropertyID) Value {
	v, _ := c.Resolve(prop)
	return v
}

// String returns the effective value of prop as a string, or def.
func (c Chain) String(prop PropertyID, def string) string {
	if s, ok := c.Value(prop).Str(); ok {
		return s
	}
	return def
}

// Bool returns the effective value of prop as a bool, or def.
func (c Chain) Bool(prop PropertyID, def bool) bool {
	if b, ok := c.Value(prop).AsBool(); ok {
		return b
	}
	return def
}

// Float returns the effective value of prop as a float, or def.
func (c Chain) Float(prop PropertyID, def float64) float64 {
	if f, ok := c.Value(prop).AsFloat(); ok {
		return f
	}
	return def
}

// Int returns the effective value of prop as an int, or def.
func (c Chain) Int(prop PropertyID, def int64) int64 {
	if i, ok := c.Value(prop).AsInt(); ok {
		return i
	}
	return def
}
