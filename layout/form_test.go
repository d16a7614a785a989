package layout

import (
	"errors"
	"testing"

	"github.com/gogpu/formgrid"
)

func buildForm(t *testing.T) *Form {
	t.Helper()
	f := NewForm("order", formgrid.Sz(200, 20))
	mustField(t, f, f.Root(), "name", Fixed(0, 0, 100, 20), FieldOptions{Column: "name"})
	mustField(t, f, f.Root(), "qty", Fixed(100, 0, 50, 20), FieldOptions{Column: "qty", TabIndex: 2})
	mustField(t, f, f.Root(), "ok", Anchor{Width: L(30), Right: L(0), Top: L(0), Height: L(20)}, FieldOptions{TabIndex: 1})
	return f
}

func mustField(t *testing.T, f *Form, parent *Container, name string, a Anchor, opts FieldOptions) *Field {
	t.Helper()
	fl, err := f.AddField(parent, name, "textbox", a, opts)
	if err != nil {
		t.Fatalf("AddField(%q) = %v", name, err)
	}
	return fl
}

func TestFormBounds(t *testing.T) {
	f := buildForm(t)
	ok, _ := f.Field("ok")
	got, err := f.Bounds(ok)
	if err != nil {
		t.Fatal(err)
	}
	if want := formgrid.R(170, 0, 30, 20); got != want {
		t.Errorf("Bounds(ok) = %v, want %v", got, want)
	}
}

func TestFormBoundsPlaceholder(t *testing.T) {
	f := NewForm("f", formgrid.Sz(200, 20))
	box, err := f.AddContainer(f.Root(), "box", Fixed(40, 2, 100, 16))
	if err != nil {
		t.Fatal(err)
	}
	bad := mustField(t, f, box, "bad", Anchor{Left: L(1)}, FieldOptions{})

	r, err := f.Bounds(bad)
	if !errors.Is(err, formgrid.ErrInvalidLayoutSpec) {
		t.Fatalf("Bounds() error = %v, want ErrInvalidLayoutSpec", err)
	}
	if want := formgrid.R(40, 2, 0, 0); r != want {
		t.Errorf("placeholder = %v, want %v", r, want)
	}
	var se *SpecError
	if errors.As(err, &se) && se.Field != "bad" {
		t.Errorf("SpecError.Field = %q, want bad", se.Field)
	}
}

func TestFormNestedBounds(t *testing.T) {
	f := NewForm("f", formgrid.Sz(300, 40))
	box, _ := f.AddContainer(f.Root(), "box", Fixed(100, 10, 100, 20))
	inner := mustField(t, f, box, "inner", Anchor{Width: L(50), Height: L(10)}, FieldOptions{})
	got, _ := f.Bounds(inner)
	if want := formgrid.R(125, 15, 50, 10); got != want {
		t.Errorf("Bounds(inner) = %v, want %v", got, want)
	}
}

func TestFormDesignSizeInvalidatedOnChange(t *testing.T) {
	f := buildForm(t)
	if got := f.DesignSize(f.Root()); got != formgrid.Sz(200, 20) {
		t.Fatalf("DesignSize() = %v, want 200x20", got)
	}
	if err := f.SetAnchor("qty", Fixed(100, 0, 50, 35)); err != nil {
		t.Fatal(err)
	}
	if got := f.DesignSize(f.Root()); got != formgrid.Sz(200, 35) {
		t.Errorf("DesignSize() after SetAnchor = %v, want 200x35", got)
	}
	if err := f.Remove("qty"); err != nil {
		t.Fatal(err)
	}
	if got := f.DesignSize(f.Root()); got != formgrid.Sz(200, 20) {
		t.Errorf("DesignSize() after Remove = %v, want 200x20", got)
	}
}

func TestFormViewportIndependentByDefault(t *testing.T) {
	f := buildForm(t)
	v := f.Version()
	f.SetViewportSize(formgrid.Sz(800, 600))
	if f.Version() != v {
		t.Error("independent form must not invalidate on viewport resize")
	}
}

func TestFormViewportSizeDependentRoot(t *testing.T) {
	f := buildForm(t)
	f.Root().SetSizeDependent(true)
	f.SetViewportSize(formgrid.Sz(400, 600))
	ok, _ := f.Field("ok")
	got, _ := f.Bounds(ok)
	if got.X != 370 {
		t.Errorf("Bounds(ok).X = %v, want 370 after reflow", got.X)
	}
}

func TestFormTabOrder(t *testing.T) {
	f := buildForm(t)
	mustField(t, f, f.Root(), "skip", Fixed(0, 0, 1, 1), FieldOptions{NoTabStop: true})
	order := f.TabOrder(f.Root())
	var names []string
	for _, fl := range order {
		names = append(names, fl.Name())
	}
	want := []string{"name", "ok", "qty"}
	if len(names) != len(want) {
		t.Fatalf("TabOrder() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("TabOrder()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFormDuplicateName(t *testing.T) {
	f := buildForm(t)
	if _, err := f.AddField(f.Root(), "qty", "textbox", Fixed(0, 0, 1, 1), FieldOptions{}); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("AddField(duplicate) = %v, want ErrDuplicateName", err)
	}
}

func TestFormDocumentOrder(t *testing.T) {
	f := NewForm("f", formgrid.Sz(100, 10))
	a := mustField(t, f, f.Root(), "a", Fixed(0, 0, 1, 1), FieldOptions{})
	box, _ := f.AddContainer(f.Root(), "box", Fixed(0, 0, 10, 10))
	b := mustField(t, f, box, "b", Fixed(0, 0, 1, 1), FieldOptions{})
	c := mustField(t, f, f.Root(), "c", Fixed(0, 0, 1, 1), FieldOptions{})
	for i, fl := range []*Field{a, b, c} {
		if fl.Order() != i {
			t.Errorf("%s.Order() = %d, want %d", fl.Name(), fl.Order(), i)
		}
	}
	if f.Parent(b) != box {
		t.Error("Parent(b) should be box")
	}
}
