package layout

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
)

var (
	// ErrDuplicateName is returned when a node name is already used in the form.
	ErrDuplicateName = errors.New("layout: duplicate node name")

	// ErrUnknownNode is returned when a name does not refer to a node.
	ErrUnknownNode = errors.New("layout: unknown node")
)

// noParent marks the root container.
const noParent = -1

// Field is one visual field of the form. A Field is shared by every row:
// per-row data lives in the row's content store under the field's column.
type Field struct {
	name     string
	kind     string
	column   string
	anchor   Anchor
	store    *content.Store
	parent   int
	tabIndex int
	tabStop  bool
	order    int
}

// Name returns the field name, unique within its form.
func (f *Field) Name() string { return f.name }

// Kind returns the editor kind name.
func (f *Field) Kind() string { return f.kind }

// Column returns the data column the field is bound to, or "".
func (f *Field) Column() string { return f.column }

// Anchor returns the field's anchor.
func (f *Field) Anchor() Anchor { return f.anchor }

// Store returns the field's default property values.
func (f *Field) Store() *content.Store { return f.store }

// TabIndex returns the field's explicit tab position.
func (f *Field) TabIndex() int { return f.tabIndex }

// TabStop reports whether keyboard traversal stops at the field.
func (f *Field) TabStop() bool { return f.tabStop }

// Order returns the field's position in document order.
func (f *Field) Order() int { return f.order }

// Container groups fields and nested containers.
type Container struct {
	name          string
	anchor        Anchor
	parent        int
	index         int
	children      []any // *Field or *Container, document order
	sizeDependent bool
	tabIndex      int

	sizeVersion uint64
	size        formgrid.Size
	tabVersion  uint64
	tabOrder    []*Field
}

// Name returns the container name.
func (c *Container) Name() string { return c.name }

// Anchor returns the container's anchor within its parent.
func (c *Container) Anchor() Anchor { return c.anchor }

// SizeDependent reports whether the container reflows with the viewport.
func (c *Container) SizeDependent() bool { return c.sizeDependent }

// SetSizeDependent declares whether the container reflows when the host
// viewport is resized. Containers are independent by default.
func (c *Container) SetSizeDependent(v bool) { c.sizeDependent = v }

// FieldOptions are optional attributes of a new field.
type FieldOptions struct {
	Column   string
	TabIndex int
	// NoTabStop excludes the field from keyboard traversal.
	NoTabStop bool
}

// Form is the layout model: a container tree plus form-level defaults.
//
// Form is not safe for concurrent use.
type Form struct {
	name       string
	size       formgrid.Size
	viewport   formgrid.Size
	cols       *content.Columns
	store      *content.Store
	containers []*Container
	fields     []*Field
	byName     map[string]any

	version       uint64
	boundsVersion uint64
	bounds        map[*Field]boundsEntry
}

type boundsEntry struct {
	rect formgrid.Rect
	err  error
}

// NewForm creates a form whose root container has the given layout size.
func NewForm(name string, size formgrid.Size) *Form {
	cols := content.NewColumns()
	f := &Form{
		name:   name,
		size:   size,
		cols:   cols,
		store:  content.NewStore(cols),
		byName: make(map[string]any),
	}
	root := &Container{name: name, parent: noParent, index: 0}
	f.containers = append(f.containers, root)
	f.version = 1
	return f
}

// Name returns the form name.
func (f *Form) Name() string { return f.name }

// Root returns the root container.
func (f *Form) Root() *Container { return f.containers[0] }

// Columns returns the column registry shared by every store of the form.
func (f *Form) Columns() *content.Columns { return f.cols }

// Store returns the form-level property store.
func (f *Form) Store() *content.Store { return f.store }

// Size returns the layout size of the root container.
func (f *Form) Size() formgrid.Size { return f.size }

// Fields returns every field in document order. The slice must not be modified.
func (f *Form) Fields() []*Field { return f.fields }

// Field looks up a field by name.
func (f *Form) Field(name string) (*Field, bool) {
	fl, ok := f.byName[name].(*Field)
	return fl, ok
}

// Container looks up a container by name.
func (f *Form) Container(name string) (*Container, bool) {
	c, ok := f.byName[name].(*Container)
	return c, ok
}

// Parent returns the container holding fl.
func (f *Form) Parent(fl *Field) *Container {
	return f.containers[fl.parent]
}

// ContainerParent returns the parent of c, or nil for the root.
func (f *Form) ContainerParent(c *Container) *Container {
	if c.parent == noParent {
		return nil
	}
	return f.containers[c.parent]
}

// AddField appends a field to parent.
func (f *Form) AddField(parent *Container, name, kind string, a Anchor, opts FieldOptions) (*Field, error) {
	if _, dup := f.byName[name]; dup || name == f.name {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	fl := &Field{
		name:     name,
		kind:     kind,
		column:   opts.Column,
		anchor:   a,
		store:    content.NewStore(f.cols),
		parent:   parent.index,
		tabIndex: opts.TabIndex,
		tabStop:  !opts.NoTabStop,
	}
	parent.children = append(parent.children, fl)
	f.byName[name] = fl
	f.reindex()
	return fl, nil
}

// AddContainer appends a nested container to parent.
func (f *Form) AddContainer(parent *Container, name string, a Anchor) (*Container, error) {
	if _, dup := f.byName[name]; dup || name == f.name {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	c := &Container{name: name, anchor: a, parent: parent.index, index: len(f.containers)}
	f.containers = append(f.containers, c)
	parent.children = append(parent.children, c)
	f.byName[name] = c
	f.changed()
	return c, nil
}

// Remove deletes the field named name. Containers cannot be removed.
func (f *Form) Remove(name string) error {
	fl, ok := f.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	parent := f.containers[fl.parent]
	parent.children = slices.DeleteFunc(parent.children, func(n any) bool { return n == fl })
	delete(f.byName, name)
	f.reindex()
	return nil
}

// SetAnchor changes the anchor of the field or container named name.
func (f *Form) SetAnchor(name string, a Anchor) error {
	switch n := f.byName[name].(type) {
	case *Field:
		n.anchor = a
	case *Container:
		n.anchor = a
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	f.changed()
	return nil
}

// SetSize changes the layout size of the root container.
func (f *Form) SetSize(s formgrid.Size) {
	f.size = s
	f.changed()
}

// SetViewportSize tells the form the host viewport changed. Cached geometry
// is only invalidated when some container declared size dependence; a
// size-dependent root takes the viewport width.
func (f *Form) SetViewportSize(s formgrid.Size) {
	f.viewport = s
	for _, c := range f.containers {
		if c.sizeDependent {
			f.changed()
			return
		}
	}
}

// Version changes whenever cached geometry is invalidated.
func (f *Form) Version() uint64 { return f.version }

func (f *Form) changed() {
	f.version++
}

// reindex recomputes document order after the field set changed.
func (f *Form) reindex() {
	f.fields = make([]*Field, 0, len(f.fields)+1)
	var walk func(c *Container)
	walk = func(c *Container) {
		for _, n := range c.children {
			switch n := n.(type) {
			case *Field:
				n.order = len(f.fields)
				f.fields = append(f.fields, n)
			case *Container:
				walk(n)
			}
		}
	}
	walk(f.Root())
	f.changed()
}

// rootRect returns the rectangle the root container lays out in.
func (f *Form) rootRect() formgrid.Rect {
	w := f.size.W
	if f.Root().sizeDependent && f.viewport.W > 0 {
		w = f.viewport.W
	}
	return formgrid.Rect{W: w, H: f.size.H}
}

// containerRect returns the absolute rectangle of c. An unresolvable
// container collapses to a zero-size rectangle at its parent's origin.
func (f *Form) containerRect(c *Container) formgrid.Rect {
	if c.parent == noParent {
		return f.rootRect()
	}
	parent := f.containerRect(f.containers[c.parent])
	r, err := ResolveBounds(c.anchor, parent)
	if err != nil {
		return formgrid.Rect{X: parent.X, Y: parent.Y}
	}
	return r
}

// Bounds returns the absolute bounds of fl within one row. On an invalid
// anchor it returns a zero-size placeholder at the parent origin together
// with an error wrapping formgrid.ErrInvalidLayoutSpec.
func (f *Form) Bounds(fl *Field) (formgrid.Rect, error) {
	if f.boundsVersion != f.version || f.bounds == nil {
		f.bounds = make(map[*Field]boundsEntry, len(f.fields))
		f.boundsVersion = f.version
	}
	if e, ok := f.bounds[fl]; ok {
		return e.rect, e.err
	}
	parent := f.containerRect(f.containers[fl.parent])
	r, err := ResolveBounds(fl.anchor, parent)
	if err != nil {
		var se *SpecError
		if errors.As(err, &se) {
			se.Field = fl.name
		}
		r = formgrid.Rect{X: parent.X, Y: parent.Y}
		formgrid.Logger().Warn("layout: invalid anchor, using placeholder",
			"form", f.name, "field", fl.name, "err", err)
	}
	f.bounds[fl] = boundsEntry{rect: r, err: err}
	return r, err
}

// DesignSize returns the extent of c's content: the union of its children's
// resolved bounds, measured from c's origin. The result is cached until the
// tree changes.
func (f *Form) DesignSize(c *Container) formgrid.Size {
	if c.sizeVersion == f.version {
		return c.size
	}
	self := f.containerRect(c)
	var u formgrid.Rect
	for _, n := range c.children {
		var r formgrid.Rect
		switch n := n.(type) {
		case *Field:
			r, _ = f.Bounds(n)
		case *Container:
			r = f.containerRect(n)
		}
		u = u.Union(r)
	}
	c.size = formgrid.Size{}
	if !u.IsEmpty() {
		c.size = formgrid.Size{W: u.Right() - self.X, H: u.Bottom() - self.Y}
	}
	c.sizeVersion = f.version
	return c.size
}

// TabOrder returns the tab stops of c's subtree ordered by tab index, then
// document order. The result is cached until the tree changes and must not
// be modified.
func (f *Form) TabOrder(c *Container) []*Field {
	if c.tabVersion == f.version {
		return c.tabOrder
	}
	var out []*Field
	var walk func(c *Container)
	walk = func(c *Container) {
		for _, n := range c.children {
			switch n := n.(type) {
			case *Field:
				if n.tabStop {
					out = append(out, n)
				}
			case *Container:
				walk(n)
			}
		}
	}
	walk(c)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].tabIndex != out[j].tabIndex {
			return out[i].tabIndex < out[j].tabIndex
		}
		return out[i].order < out[j].order
	})
	c.tabOrder = out
	c.tabVersion = f.version
	return out
}
