package layout

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
)

// ErrTemplateCycle is returned when templates include each other.
var ErrTemplateCycle = errors.New("layout: template include cycle")

// NodeType tags a NodeSpec.
type NodeType uint8

// Node types.
const (
	NodeField NodeType = iota
	NodeContainer
	NodeInclude
)

// NodeSpec is one node of a parsed template. Parsing the template markup
// is the loader's job; the layout package only assembles the tree.
type NodeSpec struct {
	Type   NodeType
	Name   string
	Anchor Anchor

	// Field attributes.
	Kind      string
	Column    string
	TabIndex  int
	NoTabStop bool
	Defaults  map[content.PropertyID]content.Value

	// Container attributes.
	Children      []NodeSpec
	SizeDependent bool

	// Template names the sub-template of an include node.
	Template string
}

// Template is a parsed form definition.
type Template struct {
	Name  string
	Size  formgrid.Size
	Nodes []NodeSpec
	// Defaults are form-level property defaults.
	Defaults map[content.PropertyID]content.Value
}

// Loader resolves template names. Implementations report unknown names
// with an error wrapping formgrid.ErrNestedTemplateMissing.
type Loader interface {
	Template(name string) (*Template, error)
}

// MapLoader serves templates from memory.
type MapLoader map[string]*Template

// Template implements Loader.
func (m MapLoader) Template(name string) (*Template, error) {
	t, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("layout: template %q: %w", name, formgrid.ErrNestedTemplateMissing)
	}
	return t, nil
}

// Load builds the form named name, resolving include nodes through loader.
// Names inside an included template are qualified with the include node's
// name ("address.street"). Any missing sub-template aborts the load.
func Load(name string, loader Loader) (*Form, error) {
	t, err := loader.Template(name)
	if err != nil {
		return nil, err
	}
	f := NewForm(t.Name, t.Size)
	for prop, v := range t.Defaults {
		f.store.SetID(content.NoColumn, prop, v)
	}
	b := builder{form: f, loader: loader, stack: []string{t.Name}}
	if err := b.nodes(f.Root(), "", t.Nodes); err != nil {
		return nil, err
	}
	formgrid.Logger().Info("layout: template loaded",
		"form", f.name, "fields", len(f.fields), "containers", len(f.containers))
	return f, nil
}

type builder struct {
	form   *Form
	loader Loader
	stack  []string
}

func (b *builder) nodes(parent *Container, prefix string, specs []NodeSpec) error {
	for i := range specs {
		if err := b.node(parent, prefix, &specs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) node(parent *Container, prefix string, spec *NodeSpec) error {
	name := qualify(prefix, spec.Name)
	switch spec.Type {
	case NodeField:
		fl, err := b.form.AddField(parent, name, spec.Kind, spec.Anchor, FieldOptions{
			Column:    spec.Column,
			TabIndex:  spec.TabIndex,
			NoTabStop: spec.NoTabStop,
		})
		if err != nil {
			return err
		}
		for prop, v := range spec.Defaults {
			fl.store.SetID(content.NoColumn, prop, v)
		}
		return nil

	case NodeContainer:
		c, err := b.form.AddContainer(parent, name, spec.Anchor)
		if err != nil {
			return err
		}
		c.sizeDependent = spec.SizeDependent
		return b.nodes(c, prefix, spec.Children)

	case NodeInclude:
		if slices.Contains(b.stack, spec.Template) {
			return fmt.Errorf("%w: %s -> %s", ErrTemplateCycle, strings.Join(b.stack, " -> "), spec.Template)
		}
		t, err := b.loader.Template(spec.Template)
		if err != nil {
			return fmt.Errorf("layout: include %q in %q: %w", spec.Template, b.stack[len(b.stack)-1], err)
		}
		if name == "" {
			name = qualify(prefix, t.Name)
		}
		c, err := b.form.AddContainer(parent, name, spec.Anchor)
		if err != nil {
			return err
		}
		c.sizeDependent = spec.SizeDependent
		b.stack = append(b.stack, spec.Template)
		err = b.nodes(c, name, t.Nodes)
		b.stack = b.stack[:len(b.stack)-1]
		return err

	default:
		return fmt.Errorf("layout: node %q: unknown type %d", name, spec.Type)
	}
}

func qualify(prefix, name string) string {
	if prefix == "" || name == "" {
		return name
	}
	return prefix + "." + name
}
