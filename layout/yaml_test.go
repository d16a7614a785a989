package layout

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
)

var yamlFS = fstest.MapFS{
	"order.yaml": {Data: []byte(`
width: 300
height: 40
defaults:
  font-color: "#336699"
  font-size-ratio: 1.5
nodes:
  - field: qty
    kind: textbox
    column: qty
    tab-index: 2
    left: 0
    top: 0
    width: 60
    height: 20
    defaults:
      font-style: bold underline
      enabled: false
  - field: mode
    kind: combo
    column: mode
    width: 80
    height: 20
    defaults:
      items: [low, high]
  - container: side
    right: 0
    top: 0
    width: 100
    height: 40
    children:
      - field: note
        kind: label
        no-tab-stop: true
        left: 0
        top: 0
        width: 100
        height: 20
        defaults:
          caption: Note
  - include: address
    name: ship
    left: 0
    top: 20
    width: 200
    height: 20
`)},
	"address.yaml": {Data: []byte(`
nodes:
  - field: street
    kind: textbox
    column: street
    left: 0
    top: 0
    width: 120
    height: 20
`)},
	"broken.yaml": {Data: []byte(`
nodes:
  - include: nowhere
    name: x
`)},
}

func TestFSLoaderBuildsForm(t *testing.T) {
	f, err := Load("order", FSLoader{FS: yamlFS})
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if f.Name() != "order" || f.Size() != formgrid.Sz(300, 40) {
		t.Errorf("form = %q %v", f.Name(), f.Size())
	}
	if v, _ := f.Store().Get("", content.PropFontColor); !v.Equal(content.Color(formgrid.Hex("#336699"))) {
		t.Errorf("form font-color = %v", v)
	}
	if v, _ := f.Store().Get("", content.PropFontSizeRatio); !v.Equal(content.Float(1.5)) {
		t.Errorf("form font-size-ratio = %v", v)
	}

	qty, ok := f.Field("qty")
	if !ok {
		t.Fatal("missing field qty")
	}
	if qty.Kind() != "textbox" || qty.Column() != "qty" || qty.TabIndex() != 2 {
		t.Errorf("qty = %q %q %d", qty.Kind(), qty.Column(), qty.TabIndex())
	}
	style, _ := qty.Store().Get("", content.PropFontStyle)
	if want := content.Int(int64(formgrid.FontBold | formgrid.FontUnderline)); !style.Equal(want) {
		t.Errorf("qty font-style = %v, want %v", style, want)
	}
	if v, _ := qty.Store().Get("", content.PropEnabled); !v.Equal(content.Bool(false)) {
		t.Errorf("qty enabled = %v", v)
	}

	mode, _ := f.Field("mode")
	if got, _ := f.Bounds(mode); got != formgrid.R(110, 10, 80, 20) {
		t.Errorf("Bounds(mode) = %v, want centered", got)
	}
	if v, _ := mode.Store().Get("", content.PropItems); !v.Equal(content.Strings([]string{"low", "high"})) {
		t.Errorf("mode items = %v", v)
	}

	note, _ := f.Field("note")
	if got, _ := f.Bounds(note); got != formgrid.R(200, 0, 100, 20) {
		t.Errorf("Bounds(note) = %v", got)
	}
	if note.TabStop() {
		t.Error("note is a tab stop")
	}

	street, ok := f.Field("ship.street")
	if !ok {
		t.Fatal("missing included field ship.street")
	}
	if got, _ := f.Bounds(street); got != formgrid.R(0, 20, 120, 20) {
		t.Errorf("Bounds(ship.street) = %v", got)
	}
}

func TestFSLoaderMissingTemplate(t *testing.T) {
	_, err := Load("broken", FSLoader{FS: yamlFS})
	if !errors.Is(err, formgrid.ErrNestedTemplateMissing) {
		t.Errorf("Load(broken) = %v, want ErrNestedTemplateMissing", err)
	}
	_, err = FSLoader{FS: yamlFS}.Template("absent")
	if !errors.Is(err, formgrid.ErrNestedTemplateMissing) {
		t.Errorf("Template(absent) = %v, want ErrNestedTemplateMissing", err)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "nodes: [unclosed"},
		{"two node types", "nodes: [{field: a, container: b, kind: label}]"},
		{"no node type", "nodes: [{kind: label}]"},
		{"field without kind", "nodes: [{field: a}]"},
		{"unknown property", "defaults: {shininess: 3}"},
		{"unknown font style", "nodes: [{field: a, kind: label, defaults: {font-style: wavy}}]"},
		{"mapping value", "defaults: {caption: {a: b}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.doc)); !errors.Is(err, ErrTemplateSyntax) {
				t.Errorf("ParseYAML() error = %v, want ErrTemplateSyntax", err)
			}
		})
	}
}

func TestParseYAMLScalarTypes(t *testing.T) {
	tmpl, err := ParseYAML([]byte(`
defaults:
  value: 42
  caption: "7"
  visible: true
  tab-index: ~
`))
	if err != nil {
		t.Fatal(err)
	}
	want := map[content.PropertyID]content.Value{
		content.PropValue:    content.Int(42),
		content.PropCaption:  content.String("7"),
		content.PropVisible:  content.Bool(true),
		content.PropTabIndex: content.Null(),
	}
	for prop, w := range want {
		if got := tmpl.Defaults[prop]; !got.Equal(w) {
			t.Errorf("Defaults[%v] = %v, want %v", prop, got, w)
		}
	}
}
