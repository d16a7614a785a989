package editor

import (
	"errors"
	"fmt"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/cache"
	"github.com/gogpu/formgrid/rows"
)

// ErrUnknownKind is returned when a cell names a kind that was never registered.
var ErrUnknownKind = errors.New("editor: unknown kind")

// Host is the part of the host toolkit the repository uses.
type Host interface {
	formgrid.ControlFactory
	formgrid.Rasterizer
	formgrid.ControlHost
	formgrid.Canvas
}

// Stats counts repository activity.
type Stats struct {
	Cache cache.Stats

	Rasterizations uint64
	Warmups        uint64
	PrivateImages  uint64
	Promotions     uint64
	Demotions      uint64
	PoolEvictions  uint64
	Fallbacks      uint64
}

// record is the repository's per-cell memory, keyed by CellID so it
// survives the Cell objects that come and go with visibility.
type record struct {
	imageID    int
	private    *formgrid.Bitmap
	privateSum uint64
	slot       *slot
}

// kindState holds the scratch paint instance and the live pool of a kind.
type kindState struct {
	kind    Kind
	scratch formgrid.Control
	slots   []*slot
}

// Repository decides, per cell, between direct painting, a cached bitmap
// and a pooled live control.
//
// Repository is not safe for concurrent use.
type Repository struct {
	host    Host
	opts    options
	keys    KeyBuilder
	kinds   map[string]*kindState
	bitmaps *cache.Bitmaps
	records map[rows.CellID]*record
	tick    uint64
	stats   Stats
}

// New creates a repository that renders through host.
func New(host Host, kinds []Kind, opts ...Option) *Repository {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Repository{
		host:    host,
		opts:    o,
		keys:    KeyBuilder{MaxText: o.maxKeyText},
		kinds:   make(map[string]*kindState, len(kinds)),
		bitmaps: cache.NewBitmaps(o.cacheCapacity),
		records: make(map[rows.CellID]*record),
	}
	for _, k := range kinds {
		r.Register(k)
	}
	return r
}

// Register adds or replaces a kind.
func (r *Repository) Register(k Kind) {
	if old, ok := r.kinds[k.Name]; ok {
		r.dropKind(old)
	}
	r.kinds[k.Name] = &kindState{kind: k}
}

// Kind returns the registered kind named name.
func (r *Repository) Kind(name string) (Kind, bool) {
	ks, ok := r.kinds[name]
	if !ok {
		return Kind{}, false
	}
	return ks.kind, true
}

// Request is one cell to render in the current frame.
type Request struct {
	Cell  *rows.Cell
	State formgrid.ControlState
	// Dest is the cell's rectangle in host coordinates.
	Dest formgrid.Rect
	// Displayed reports whether the cell is inside the viewport.
	Displayed bool
	// Urgent narrows promotion to focused cells.
	Urgent bool
}

// NeedsLiveControl reports whether a cell must be backed by a live control:
// when it holds focus, or, unless urgent, when a hover-live kind is hovered
// on screen.
func (r *Repository) NeedsLiveControl(c *rows.Cell, displayed, urgent bool) bool {
	ks, ok := r.kinds[c.Field.Kind()]
	if !ok || !ks.kind.Interactive || ks.kind.Mode == DirectPaint || c.State.Has(rows.StateDisabled) {
		return false
	}
	if c.State.Has(rows.StateFocused) {
		return true
	}
	return !urgent && displayed && ks.kind.HoverLive && c.State.Has(rows.StateHovered)
}

// Urgent reports whether the kind is under pool pressure according to the
// configured threshold.
func (r *Repository) Urgent(kind string) bool {
	if r.opts.urgentThreshold == 0 {
		return false
	}
	return r.LiveCount(kind) >= r.opts.urgentThreshold
}

// Render paints one cell. Pool exhaustion and degenerate keys degrade to
// bitmap rendering; only host failures are returned.
func (r *Repository) Render(req Request) error {
	r.tick++
	c := req.Cell
	ks, ok := r.kinds[c.Field.Kind()]
	if !ok {
		return fmt.Errorf("%w: %q (field %q)", ErrUnknownKind, c.Field.Kind(), c.Field.Name())
	}
	req.State.Size = req.Dest.Size()
	req.State.Focused = c.State.Has(rows.StateFocused)

	if ks.kind.Mode == DirectPaint {
		c.Live, c.ImageID = false, 0
		if ks.kind.Paint != nil {
			ks.kind.Paint(r.host, req.State, req.Dest)
		}
		return nil
	}

	rec := r.record(c.ID)
	urgent := req.Urgent || (rec.slot == nil && r.Urgent(ks.kind.Name))
	if r.NeedsLiveControl(c, req.Displayed, urgent) {
		err := r.promote(ks, rec, c.ID, req.State, req.Dest)
		if err == nil {
			c.Live = true
			return nil
		}
		if !errors.Is(err, formgrid.ErrControlPoolExhausted) {
			return err
		}
		r.stats.Fallbacks++
		formgrid.Logger().Warn("editor: control pool exhausted, drawing bitmap",
			"kind", ks.kind.Name, "row", c.ID.Row, "field", c.ID.Field)
	} else if rec.slot != nil {
		r.Demote(c.ID)
	}

	c.Live = false
	bm, err := r.bitmap(ks, rec, req.State)
	if err != nil {
		return err
	}
	c.ImageID = rec.imageID
	r.host.DrawBitmap(bm, req.Dest)
	return nil
}

// bitmap returns the bitmap for a cell, from the shared cache, the cell's
// private image, or a fresh rasterization.
func (r *Repository) bitmap(ks *kindState, rec *record, s formgrid.ControlState) (*formgrid.Bitmap, error) {
	var sig string
	if ks.kind.Signature != nil {
		sig = ks.kind.Signature(s)
	}
	key, err := r.keys.CreateKey(ks.kind.Name, s, sig)
	switch {
	case err == nil:
		if e, ok := r.bitmaps.Lookup(key); ok {
			rec.imageID = e.ID
			return e.Bitmap, nil
		}
		bm, err := r.rasterize(ks, s)
		if err != nil {
			return nil, err
		}
		rec.imageID = r.bitmaps.Put(key, bm).ID
		rec.private = nil
		formgrid.Logger().Debug("editor: cache miss", "kind", ks.kind.Name, "id", rec.imageID)
		return bm, nil

	case errors.Is(err, formgrid.ErrCacheKeyDegenerate):
		rec.imageID = 0
		if ks.kind.Mode != ManagerCacheWithItemImage {
			return r.rasterize(ks, s)
		}
		sum := Fingerprint(ks.kind.Name, s, sig)
		if rec.private != nil && rec.privateSum == sum {
			return rec.private, nil
		}
		bm, err := r.rasterize(ks, s)
		if err != nil {
			return nil, err
		}
		rec.private, rec.privateSum = bm, sum
		r.stats.PrivateImages++
		return bm, nil

	default:
		return nil, err
	}
}

// rasterize renders s with the kind's shared paint instance.
func (r *Repository) rasterize(ks *kindState, s formgrid.ControlState) (*formgrid.Bitmap, error) {
	sc, err := r.scratch(ks)
	if err != nil {
		return nil, err
	}
	sc.SetState(s)
	bm, err := r.host.Rasterize(sc, s.Size)
	if err != nil {
		return nil, fmt.Errorf("editor: rasterize %q: %w", ks.kind.Name, err)
	}
	r.stats.Rasterizations++
	return bm, nil
}

// scratch returns the kind's shared paint instance, creating it on first
// use. The instance is never placed in the host control tree.
func (r *Repository) scratch(ks *kindState) (formgrid.Control, error) {
	if ks.scratch != nil {
		return ks.scratch, nil
	}
	c, err := r.host.NewControl(ks.kind.Name)
	if err != nil {
		return nil, fmt.Errorf("editor: create paint instance %q: %w", ks.kind.Name, err)
	}
	if ks.kind.NeedsWarmup {
		// The first render after construction is unreliable; discard it.
		if _, err := r.host.Rasterize(c, formgrid.Sz(1, 1)); err != nil {
			return nil, fmt.Errorf("editor: warm up %q: %w", ks.kind.Name, err)
		}
		r.stats.Warmups++
	}
	ks.scratch = c
	return c, nil
}

// Invalidate forgets the cached image of a cell so the next paint
// recomputes its key and regenerates the bitmap on a miss.
func (r *Repository) Invalidate(id rows.CellID) {
	rec, ok := r.records[id]
	if !ok {
		return
	}
	rec.imageID = 0
	rec.private = nil
	rec.privateSum = 0
}

// ForgetRow drops every record of a removed row and returns its live
// controls to their pools.
func (r *Repository) ForgetRow(row rows.RowID) {
	for id := range r.records {
		if id.Row == row {
			r.Demote(id)
			delete(r.records, id)
		}
	}
}

// Clear drops every cached bitmap and record and unplaces every live control.
func (r *Repository) Clear() {
	r.DemoteAll()
	r.bitmaps.Clear()
	clear(r.records)
}

// Stats returns activity counters.
func (r *Repository) Stats() Stats {
	s := r.stats
	s.Cache = r.bitmaps.Stats()
	return s
}

func (r *Repository) record(id rows.CellID) *record {
	rec, ok := r.records[id]
	if !ok {
		rec = &record{}
		r.records[id] = rec
	}
	return rec
}

func (r *Repository) dropKind(ks *kindState) {
	for _, s := range ks.slots {
		if !s.owner.IsZero() {
			r.Demote(s.owner)
		}
	}
}
