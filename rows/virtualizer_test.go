package rows

import (
	"slices"
	"testing"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/layout"
)

func testForm(t testing.TB) *layout.Form {
	t.Helper()
	f := layout.NewForm("grid", formgrid.Sz(100, 20))
	if _, err := f.AddField(f.Root(), "name", "textbox", layout.Fixed(0, 0, 60, 20), layout.FieldOptions{Column: "name"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.AddField(f.Root(), "ok", "checkbox", layout.Fixed(60, 0, 40, 20), layout.FieldOptions{}); err != nil {
		t.Fatal(err)
	}
	return f
}

func newRows(t testing.TB, n int) *Virtualizer {
	t.Helper()
	v := New(testForm(t))
	for range n {
		v.Add()
	}
	return v
}

func TestPrepareBandsScenario(t *testing.T) {
	v := newRows(t, 3)
	if err := v.SetVisible(v.Rows()[1].ID(), false); err != nil {
		t.Fatal(err)
	}
	v.PrepareBands(formgrid.Sz(100, 20))

	want := []struct{ top, bottom float64 }{{0, 20}, {20, 20}, {20, 40}}
	for i, r := range v.Rows() {
		b := r.Band()
		if b.Y != want[i].top || b.Bottom() != want[i].bottom {
			t.Errorf("band[%d] = [%v,%v), want [%v,%v)", i, b.Y, b.Bottom(), want[i].top, want[i].bottom)
		}
	}
	if got := v.ContentSize(); got != formgrid.Sz(100, 40) {
		t.Errorf("ContentSize() = %v, want 100x40", got)
	}
}

func TestPrepareBandsMonotone(t *testing.T) {
	v := newRows(t, 50)
	for i, r := range v.Rows() {
		if i%3 == 0 {
			_ = v.SetVisible(r.ID(), false)
		}
	}
	v.PrepareBands(formgrid.Sz(100, 17))

	var prevBottom float64
	for i, r := range v.Rows() {
		b := r.Band()
		if b.Y > b.Bottom() {
			t.Fatalf("band[%d] inverted: %v", i, b)
		}
		if b.Y < prevBottom {
			t.Fatalf("band[%d] top %v < previous bottom %v", i, b.Y, prevBottom)
		}
		if !r.Visible() && b.H != 0 {
			t.Fatalf("invisible row %d has height %v", i, b.H)
		}
		prevBottom = b.Bottom()
	}
}

func ids(rows []*Row) []RowID {
	out := make([]RowID, len(rows))
	for i, r := range rows {
		out[i] = r.ID()
	}
	return out
}

func TestRowsInRange(t *testing.T) {
	v := newRows(t, 10)
	v.PrepareBands(formgrid.Sz(100, 20))

	r := Range{Start: 30, End: 70}
	got := ids(v.RowsInRange(&r))
	want := []RowID{2, 3, 4}
	if !slices.Equal(got, want) {
		t.Errorf("RowsInRange([30,70)) = %v, want %v", got, want)
	}
	if r.Start != 30 || r.End != 70 {
		t.Errorf("fixed range modified: %+v", r)
	}
}

func TestRowsInRangeIdempotent(t *testing.T) {
	v := newRows(t, 100)
	_ = v.SetVisible(5, false)
	v.PrepareBands(formgrid.Sz(100, 20))

	r1 := Range{Start: 55, End: 333}
	r2 := r1
	a := ids(v.RowsInRange(&r1))
	b := ids(v.RowsInRange(&r2))
	if !slices.Equal(a, b) {
		t.Errorf("RowsInRange not idempotent: %v vs %v", a, b)
	}
}

func TestRowsInRangeSkipsInvisible(t *testing.T) {
	v := newRows(t, 3)
	_ = v.SetVisible(2, false)
	v.PrepareBands(formgrid.Sz(100, 20))

	r := Range{Start: 0, End: 40}
	if got := ids(v.RowsInRange(&r)); !slices.Equal(got, []RowID{1, 3}) {
		t.Errorf("RowsInRange() = %v, want [1 3]", got)
	}
}

func TestRowsInRangeUnrestricted(t *testing.T) {
	v := newRows(t, 4)
	_ = v.SetVisible(4, false)
	v.PrepareBands(formgrid.Sz(100, 20))

	r := Unrestricted()
	got := v.RowsInRange(&r)
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
	if r.Start != 0 || r.End != 60 {
		t.Errorf("sentinel replaced with %+v, want [0,60)", r)
	}
}

func TestRowsInRangeAdjustable(t *testing.T) {
	v := newRows(t, 10)
	v.PrepareBands(formgrid.Sz(100, 20))

	r := Range{Start: 25, End: 45, Adjustable: true}
	got := ids(v.RowsInRange(&r))
	if !slices.Equal(got, []RowID{2, 3}) {
		t.Fatalf("RowsInRange() = %v", got)
	}
	if r.Start != 20 || r.End != 60 {
		t.Errorf("adjusted range = [%v,%v), want [20,60)", r.Start, r.End)
	}
}

func TestRowsInRangeEmpty(t *testing.T) {
	v := New(testForm(t))
	v.PrepareBands(formgrid.Sz(100, 20))
	r := Unrestricted()
	if got := v.RowsInRange(&r); len(got) != 0 {
		t.Errorf("got %d rows from empty set", len(got))
	}
	if r.Height() != 0 {
		t.Errorf("range height = %v, want 0", r.Height())
	}
}

func TestRowsRecomputeAfterMutation(t *testing.T) {
	v := newRows(t, 2)
	v.PrepareBands(formgrid.Sz(100, 20))
	v.Insert(0)
	if got := v.ContentSize().H; got != 60 {
		t.Errorf("ContentSize().H = %v after insert, want 60", got)
	}
	if !v.Remove(1) {
		t.Fatal("Remove(1) = false")
	}
	if _, ok := v.Row(1); ok {
		t.Error("row 1 still present")
	}
	if i, _ := v.Index(2); i != 1 {
		t.Errorf("Index(2) = %d, want 1", i)
	}
}

func TestRowIDsNeverReused(t *testing.T) {
	v := newRows(t, 2)
	v.Clear()
	if r := v.Add(); r.ID() != 3 {
		t.Errorf("new row id = %d, want 3", r.ID())
	}
}

func BenchmarkRowsInRange(b *testing.B) {
	v := newRows(b, 100_000)
	v.PrepareBands(formgrid.Sz(100, 20))
	b.ReportAllocs()
	for b.Loop() {
		r := Range{Start: 1_000_000, End: 1_000_600}
		_ = v.RowsInRange(&r)
	}
}
