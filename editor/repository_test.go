package editor

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
	"github.com/gogpu/formgrid/layout"
	"github.com/gogpu/formgrid/rows"
)

type fakeControl struct {
	kind  string
	state formgrid.ControlState
}

func (c *fakeControl) Kind() string                    { return c.kind }
func (c *fakeControl) SetState(s formgrid.ControlState) { c.state = s }
func (c *fakeControl) State() formgrid.ControlState     { return c.state }

// fakeHost records every host call.
type fakeHost struct {
	created    map[string]int
	rasterized int
	placed     map[formgrid.Control]formgrid.Rect
	drawn      []*formgrid.Bitmap
	rects      int
	texts      []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		created: make(map[string]int),
		placed:  make(map[formgrid.Control]formgrid.Rect),
	}
}

func (h *fakeHost) NewControl(kind string) (formgrid.Control, error) {
	h.created[kind]++
	return &fakeControl{kind: kind}, nil
}

func (h *fakeHost) Rasterize(c formgrid.Control, size formgrid.Size) (*formgrid.Bitmap, error) {
	h.rasterized++
	return formgrid.NewBitmap(int(size.W), int(size.H)), nil
}

func (h *fakeHost) PlaceControl(c formgrid.Control, r formgrid.Rect) { h.placed[c] = r }
func (h *fakeHost) RemoveControl(c formgrid.Control)                 { delete(h.placed, c) }
func (h *fakeHost) DrawBitmap(b *formgrid.Bitmap, _ formgrid.Rect)   { h.drawn = append(h.drawn, b) }
func (h *fakeHost) DrawRectangle(formgrid.Rect, color.NRGBA, color.NRGBA) {
	h.rects++
}
func (h *fakeHost) DrawText(s string, _ formgrid.Rect, _ formgrid.TextStyle) {
	h.texts = append(h.texts, s)
}

// newCells builds n rows of a form holding a single field of the given kind.
func newCells(t *testing.T, kind string, n int) []*rows.Cell {
	t.Helper()
	f := layout.NewForm("f", formgrid.Sz(100, 20))
	if _, err := f.AddField(f.Root(), "fld", kind, layout.Fixed(0, 0, 80, 20), layout.FieldOptions{Column: "c"}); err != nil {
		t.Fatal(err)
	}
	v := rows.New(f)
	for range n {
		v.Add()
	}
	v.PrepareBands(formgrid.Sz(100, 20))
	return v.Cells(v.Rows())
}

func render(t *testing.T, r *Repository, c *rows.Cell, s formgrid.ControlState) {
	t.Helper()
	err := r.Render(Request{Cell: c, State: s, Dest: c.Bounds, Displayed: true})
	if err != nil {
		t.Fatalf("Render(%v) error = %v", c.ID, err)
	}
}

func hoverKind() Kind {
	return Kind{Name: KindTextBox, Mode: ManagerCache, Interactive: true, HoverLive: true, PoolSize: 1}
}

func TestPoolCapacityOneEvictsLRU(t *testing.T) {
	h := newFakeHost()
	r := New(h, []Kind{hoverKind()})
	cells := newCells(t, KindTextBox, 2)
	a, b := cells[0], cells[1]
	s := baseState()

	a.State = rows.StateHovered
	render(t, r, a, s)
	if !a.Live {
		t.Fatal("first hovered cell should be live")
	}
	if _, ok := r.Live(a.ID); !ok {
		t.Fatal("Live(a) not found")
	}

	b.State = rows.StateHovered
	render(t, r, b, s)
	if !b.Live {
		t.Fatal("second hovered cell should be live")
	}
	if _, ok := r.Live(a.ID); ok {
		t.Error("first cell should have been evicted")
	}
	if got := h.created[KindTextBox]; got != 1 {
		t.Errorf("live instances created = %d, want 1", got)
	}

	a.State = 0
	render(t, r, a, s)
	if a.Live {
		t.Error("evicted cell should paint from bitmap")
	}
	if a.ImageID == 0 || len(h.drawn) != 1 {
		t.Errorf("ImageID = %d, drawn = %d, want cached bitmap drawn once", a.ImageID, len(h.drawn))
	}
	st := r.Stats()
	if st.PoolEvictions != 1 || st.Promotions != 2 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestPoolExhaustedFallsBackToBitmap(t *testing.T) {
	h := newFakeHost()
	r := New(h, []Kind{hoverKind()})
	cells := newCells(t, KindTextBox, 2)
	s := baseState()

	cells[0].State = rows.StateFocused
	render(t, r, cells[0], s)
	cells[1].State = rows.StateFocused
	render(t, r, cells[1], s)

	if !cells[0].Live {
		t.Error("focused owner must not be evicted")
	}
	if cells[1].Live {
		t.Error("second focused cell should fall back to a bitmap")
	}
	if len(h.drawn) != 1 {
		t.Errorf("drawn = %d, want 1", len(h.drawn))
	}
	if got := r.Stats().Fallbacks; got != 1 {
		t.Errorf("Fallbacks = %d, want 1", got)
	}
}

func TestSharedCacheHitAcrossCells(t *testing.T) {
	h := newFakeHost()
	r := New(h, StandardKinds())
	cells := newCells(t, KindCheckBox, 3)
	s := baseState()

	for _, c := range cells {
		render(t, r, c, s)
	}
	if h.rasterized != 1 {
		t.Errorf("rasterized = %d, want 1", h.rasterized)
	}
	if cells[0].ImageID != cells[2].ImageID {
		t.Errorf("ImageID %d != %d for equal keys", cells[0].ImageID, cells[2].ImageID)
	}
	if got := h.created[KindCheckBox]; got != 1 {
		t.Errorf("paint instances = %d, want 1", got)
	}
	if _, ok := r.Live(cells[0].ID); ok {
		t.Error("unfocused checkbox should not be live")
	}

	s.Value = content.String("other")
	render(t, r, cells[1], s)
	if h.rasterized != 2 {
		t.Errorf("rasterized after value change = %d, want 2", h.rasterized)
	}
	st := r.Stats().Cache
	if st.Hits != 2 || st.Misses != 2 {
		t.Errorf("cache hits/misses = %d/%d, want 2/2", st.Hits, st.Misses)
	}
}

func TestWarmupDiscardsFirstRender(t *testing.T) {
	h := newFakeHost()
	r := New(h, StandardKinds())
	cells := newCells(t, KindCombo, 2)
	s := baseState()
	s.Items = []string{"a", "b"}

	render(t, r, cells[0], s)
	render(t, r, cells[1], s)
	if h.rasterized != 2 {
		t.Errorf("rasterized = %d, want warm-up + one miss", h.rasterized)
	}
	if got := r.Stats().Warmups; got != 1 {
		t.Errorf("Warmups = %d, want 1", got)
	}
}

func TestDegenerateKeyUsesPrivateImage(t *testing.T) {
	h := newFakeHost()
	r := New(h, StandardKinds(), WithMaxKeyText(8))
	cells := newCells(t, KindTextBox, 2)
	s := baseState()
	s.Value = content.String(strings.Repeat("x", 20))

	render(t, r, cells[0], s)
	render(t, r, cells[0], s)
	if h.rasterized != 1 {
		t.Errorf("rasterized = %d, want private image reused", h.rasterized)
	}
	if cells[0].ImageID != 0 {
		t.Errorf("ImageID = %d, want 0 for private image", cells[0].ImageID)
	}
	if got := r.Stats().Cache.Len; got != 0 {
		t.Errorf("shared cache len = %d, want 0", got)
	}

	r.Invalidate(cells[0].ID)
	render(t, r, cells[0], s)
	if h.rasterized != 2 {
		t.Errorf("rasterized after Invalidate = %d, want 2", h.rasterized)
	}
}

func TestDegenerateKeyManagerCacheRasterizesEveryPaint(t *testing.T) {
	h := newFakeHost()
	r := New(h, StandardKinds(), WithMaxKeyText(8))
	cells := newCells(t, KindCheckBox, 1)
	s := baseState()
	s.Caption = strings.Repeat("y", 20)

	render(t, r, cells[0], s)
	render(t, r, cells[0], s)
	if h.rasterized != 2 {
		t.Errorf("rasterized = %d, want 2", h.rasterized)
	}
}

func TestDirectPaintNeverCaches(t *testing.T) {
	h := newFakeHost()
	r := New(h, StandardKinds())
	cells := newCells(t, KindLabel, 1)
	s := baseState()
	s.Caption = "Name"

	render(t, r, cells[0], s)
	render(t, r, cells[0], s)
	if h.rasterized != 0 || len(h.drawn) != 0 {
		t.Errorf("rasterized = %d, drawn = %d, want 0", h.rasterized, len(h.drawn))
	}
	if len(h.texts) != 2 || h.texts[0] != "Name" {
		t.Errorf("texts = %v", h.texts)
	}
	if h.rects != 2 {
		t.Errorf("rects = %d, want background twice", h.rects)
	}
}

func TestNeedsLiveControl(t *testing.T) {
	r := New(newFakeHost(), StandardKinds())
	button := newCells(t, KindButton, 1)[0]
	text := newCells(t, KindTextBox, 1)[0]
	label := newCells(t, KindLabel, 1)[0]

	tests := []struct {
		name      string
		cell      *rows.Cell
		state     rows.CellState
		displayed bool
		urgent    bool
		want      bool
	}{
		{"focused", text, rows.StateFocused, true, true, true},
		{"idle", button, 0, true, false, false},
		{"hover live kind", button, rows.StateHovered, true, false, true},
		{"hover urgent", button, rows.StateHovered, true, true, false},
		{"hover offscreen", button, rows.StateHovered, false, false, false},
		{"hover plain kind", text, rows.StateHovered, true, false, false},
		{"direct paint", label, rows.StateFocused, true, false, false},
		{"disabled", text, rows.StateFocused | rows.StateDisabled, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cell.State = tt.state
			if got := r.NeedsLiveControl(tt.cell, tt.displayed, tt.urgent); got != tt.want {
				t.Errorf("NeedsLiveControl() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDemoteReturnsEditedState(t *testing.T) {
	h := newFakeHost()
	r := New(h, StandardKinds())
	c := newCells(t, KindTextBox, 1)[0]
	c.State = rows.StateFocused
	render(t, r, c, baseState())

	ctl, ok := r.Live(c.ID)
	if !ok {
		t.Fatal("focused cell not live")
	}
	if _, placed := h.placed[ctl]; !placed {
		t.Error("live control not placed")
	}
	edited := ctl.State()
	edited.Value = content.String("typed")
	ctl.SetState(edited)

	// Repainting a focused control must not overwrite the edit.
	render(t, r, c, baseState())
	if got := ctl.State().Value; !got.Equal(content.String("typed")) {
		t.Errorf("value after repaint = %v, want typed", got)
	}

	st, ok := r.Demote(c.ID)
	if !ok || !st.Value.Equal(content.String("typed")) {
		t.Errorf("Demote() = %v, %v", st.Value, ok)
	}
	if len(h.placed) != 0 {
		t.Error("demoted control still placed")
	}
	if _, ok := r.Demote(c.ID); ok {
		t.Error("second Demote() should report nothing to demote")
	}
}

func TestReleaseOffscreenAndForgetRow(t *testing.T) {
	h := newFakeHost()
	r := New(h, []Kind{{Name: KindButton, Mode: ManagerCache, Interactive: true, HoverLive: true}})
	cells := newCells(t, KindButton, 2)
	cells[0].State = rows.StateHovered
	cells[1].State = rows.StateFocused
	render(t, r, cells[0], baseState())
	render(t, r, cells[1], baseState())
	if got := r.LiveCount(KindButton); got != 2 {
		t.Fatalf("LiveCount = %d, want 2", got)
	}

	r.ReleaseOffscreen(map[rows.CellID]bool{})
	if _, ok := r.Live(cells[0].ID); ok {
		t.Error("offscreen hovered control should be demoted")
	}
	if _, ok := r.Live(cells[1].ID); !ok {
		t.Error("offscreen focused control should stay live")
	}

	r.ForgetRow(cells[1].ID.Row)
	if got := r.LiveCount(KindButton); got != 0 {
		t.Errorf("LiveCount after ForgetRow = %d, want 0", got)
	}
}

func TestReleaseOffscreenDropsRecords(t *testing.T) {
	h := newFakeHost()
	r := New(h, StandardKinds(), WithMaxKeyText(8))
	cells := newCells(t, KindTextBox, 50)
	s := baseState()
	s.Value = content.String(strings.Repeat("x", 40))

	for _, c := range cells {
		render(t, r, c, s)
		r.ReleaseOffscreen(nil)
	}
	if got := r.Records(); got != 0 {
		t.Errorf("Records() = %d after scrolling every cell away, want 0", got)
	}

	render(t, r, cells[0], s)
	render(t, r, cells[1], s)
	r.ReleaseOffscreen(map[rows.CellID]bool{cells[0].ID: true})
	if got := r.Records(); got != 1 {
		t.Errorf("Records() = %d, want only the visible cell", got)
	}
	before := h.rasterized
	render(t, r, cells[0], s)
	if h.rasterized != before {
		t.Error("visible cell lost its private image")
	}
	render(t, r, cells[1], s)
	if h.rasterized != before+1 {
		t.Error("offscreen cell kept its private image")
	}
}

func TestUrgentThreshold(t *testing.T) {
	h := newFakeHost()
	r := New(h, []Kind{{Name: KindButton, Mode: ManagerCache, Interactive: true, HoverLive: true}},
		WithUrgentThreshold(1))
	cells := newCells(t, KindButton, 2)
	cells[0].State = rows.StateHovered
	cells[1].State = rows.StateHovered

	render(t, r, cells[0], baseState())
	render(t, r, cells[1], baseState())
	if !cells[0].Live || cells[1].Live {
		t.Errorf("Live = %v, %v, want only the first under pressure", cells[0].Live, cells[1].Live)
	}
	// The owner itself is not demoted by its own pressure.
	render(t, r, cells[0], baseState())
	if !cells[0].Live {
		t.Error("owner lost its control")
	}
}

func TestRenderUnknownKind(t *testing.T) {
	r := New(newFakeHost(), nil)
	c := newCells(t, "mystery", 1)[0]
	err := r.Render(Request{Cell: c, Dest: c.Bounds})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Render() error = %v, want ErrUnknownKind", err)
	}
}

func BenchmarkRenderCached(b *testing.B) {
	h := newFakeHost()
	r := New(h, StandardKinds())
	f := layout.NewForm("f", formgrid.Sz(100, 20))
	_, _ = f.AddField(f.Root(), "fld", KindCheckBox, layout.Fixed(0, 0, 80, 20), layout.FieldOptions{})
	v := rows.New(f)
	v.Add()
	v.PrepareBands(formgrid.Sz(100, 20))
	c := v.Cells(v.Rows())[0]
	s := baseState()
	for b.Loop() {
		h.drawn = h.drawn[:0]
		_ = r.Render(Request{Cell: c, State: s, Dest: c.Bounds, Displayed: true})
	}
}
