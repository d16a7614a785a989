package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
	"gopkg.in/yaml.v3"
)

// ErrTemplateSyntax is returned for a template document that decodes but
// does not describe a valid node tree.
var ErrTemplateSyntax = errors.New("layout: malformed template")

// FSLoader reads templates from "<name>.yaml" files in FS.
type FSLoader struct {
	FS fs.FS
}

// Template implements Loader.
func (l FSLoader) Template(name string) (*Template, error) {
	data, err := fs.ReadFile(l.FS, name+".yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("layout: template %q: %w", name, formgrid.ErrNestedTemplateMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("layout: read template %q: %w", name, err)
	}
	t, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("layout: template %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	return t, nil
}

// ParseYAML decodes one template document:
//
//	name: order
//	width: 600
//	height: 28
//	defaults: {font-color: "#202020"}
//	nodes:
//	  - field: qty
//	    kind: textbox
//	    column: qty
//	    left: 100
//	    top: 4
//	    width: 60
//	    height: 20
//	  - include: shipping
//	    name: ship
//	    left: 252
//	    width: 260
//	    height: 28
//
// Each node sets exactly one of field, container or include. Property
// defaults are keyed by property name; colors are hex strings and
// font-style is a space-separated list of bold, italic, underline and
// strikeout.
func ParseYAML(data []byte) (*Template, error) {
	var doc yamlTemplate
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateSyntax, err)
	}
	defaults, err := yamlDefaults(doc.Defaults)
	if err != nil {
		return nil, err
	}
	nodes, err := yamlNodes(doc.Nodes)
	if err != nil {
		return nil, err
	}
	return &Template{
		Name:     doc.Name,
		Size:     formgrid.Sz(doc.Width, doc.Height),
		Nodes:    nodes,
		Defaults: defaults,
	}, nil
}

type yamlTemplate struct {
	Name     string               `yaml:"name"`
	Width    float64              `yaml:"width"`
	Height   float64              `yaml:"height"`
	Defaults map[string]yaml.Node `yaml:"defaults"`
	Nodes    []yamlNode           `yaml:"nodes"`
}

type yamlNode struct {
	Field     string `yaml:"field"`
	Container string `yaml:"container"`
	Include   string `yaml:"include"`
	Name      string `yaml:"name"`

	Kind      string `yaml:"kind"`
	Column    string `yaml:"column"`
	TabIndex  int    `yaml:"tab-index"`
	NoTabStop bool   `yaml:"no-tab-stop"`

	SizeDependent bool `yaml:"size-dependent"`

	Left   *float64 `yaml:"left"`
	Top    *float64 `yaml:"top"`
	Right  *float64 `yaml:"right"`
	Bottom *float64 `yaml:"bottom"`
	Width  *float64 `yaml:"width"`
	Height *float64 `yaml:"height"`

	Defaults map[string]yaml.Node `yaml:"defaults"`
	Children []yamlNode           `yaml:"children"`
}

func (n *yamlNode) anchor() Anchor {
	opt := func(p *float64) Length {
		if p == nil {
			return Length{}
		}
		return L(*p)
	}
	return Anchor{
		Left: opt(n.Left), Top: opt(n.Top), Right: opt(n.Right), Bottom: opt(n.Bottom),
		Width: opt(n.Width), Height: opt(n.Height),
	}
}

func yamlNodes(in []yamlNode) ([]NodeSpec, error) {
	out := make([]NodeSpec, 0, len(in))
	for i := range in {
		spec, err := in[i].spec()
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

func (n *yamlNode) spec() (NodeSpec, error) {
	set := 0
	for _, s := range []string{n.Field, n.Container, n.Include} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return NodeSpec{}, fmt.Errorf("%w: node must set one of field, container or include (field=%q container=%q include=%q)",
			ErrTemplateSyntax, n.Field, n.Container, n.Include)
	}

	spec := NodeSpec{Anchor: n.anchor(), SizeDependent: n.SizeDependent}
	switch {
	case n.Field != "":
		if n.Kind == "" {
			return NodeSpec{}, fmt.Errorf("%w: field %q has no kind", ErrTemplateSyntax, n.Field)
		}
		defaults, err := yamlDefaults(n.Defaults)
		if err != nil {
			return NodeSpec{}, fmt.Errorf("field %q: %w", n.Field, err)
		}
		spec.Type, spec.Name = NodeField, n.Field
		spec.Kind, spec.Column = n.Kind, n.Column
		spec.TabIndex, spec.NoTabStop = n.TabIndex, n.NoTabStop
		spec.Defaults = defaults

	case n.Container != "":
		children, err := yamlNodes(n.Children)
		if err != nil {
			return NodeSpec{}, err
		}
		spec.Type, spec.Name, spec.Children = NodeContainer, n.Container, children

	default:
		spec.Type, spec.Name, spec.Template = NodeInclude, n.Name, n.Include
	}
	return spec, nil
}

func yamlDefaults(in map[string]yaml.Node) (map[content.PropertyID]content.Value, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[content.PropertyID]content.Value, len(in))
	for name, node := range in {
		prop, ok := content.ParseProperty(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown property %q", ErrTemplateSyntax, name)
		}
		v, err := yamlValue(prop, &node)
		if err != nil {
			return nil, fmt.Errorf("%w: property %q: %w", ErrTemplateSyntax, name, err)
		}
		out[prop] = v
	}
	return out, nil
}

var fontStyleNames = map[string]formgrid.FontStyle{
	"bold":      formgrid.FontBold,
	"italic":    formgrid.FontItalic,
	"underline": formgrid.FontUnderline,
	"strikeout": formgrid.FontStrikeout,
}

// yamlValue converts a node to a property value using the node's resolved
// tag, with property-specific forms for colors and font styles.
func yamlValue(prop content.PropertyID, n *yaml.Node) (content.Value, error) {
	if n.Kind == yaml.SequenceNode {
		var ss []string
		if err := n.Decode(&ss); err != nil {
			return content.Value{}, err
		}
		return content.Strings(ss), nil
	}
	if n.Kind != yaml.ScalarNode {
		return content.Value{}, fmt.Errorf("unsupported %s node", kindName(n.Kind))
	}

	switch prop {
	case content.PropFontColor, content.PropBackground:
		return content.Color(formgrid.Hex(n.Value)), nil
	case content.PropFontStyle:
		if n.ShortTag() == "!!int" {
			break
		}
		var fs formgrid.FontStyle
		for _, w := range strings.Fields(n.Value) {
			bit, ok := fontStyleNames[w]
			if !ok {
				return content.Value{}, fmt.Errorf("unknown font style %q", w)
			}
			fs |= bit
		}
		return content.Int(int64(fs)), nil
	}

	switch n.ShortTag() {
	case "!!null":
		return content.Null(), nil
	case "!!bool":
		var b bool
		err := n.Decode(&b)
		return content.Bool(b), err
	case "!!int":
		var i int64
		err := n.Decode(&i)
		return content.Int(i), err
	case "!!float":
		var f float64
		err := n.Decode(&f)
		return content.Float(f), err
	default:
		return content.String(n.Value), nil
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "unknown"
	}
}
