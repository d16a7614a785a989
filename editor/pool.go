package editor

import (
	"fmt"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/rows"
)

// slot is one pooled live control. A zero owner means the slot is free.
type slot struct {
	control  formgrid.Control
	owner    rows.CellID
	focused  bool
	lastUsed uint64
	bounds   formgrid.Rect
	// offscreen is set by ReleaseOffscreen when the owner scrolled away.
	offscreen bool
}

func (r *Repository) poolSize(ks *kindState) int {
	if ks.kind.PoolSize > 0 {
		return ks.kind.PoolSize
	}
	return r.opts.poolSize
}

// promote binds a live control to the cell and places it at dest. The cell
// keeps its slot across frames; a new slot is taken from the free list,
// created while the pool has room, or evicted from the least recently used
// non-focused owner.
func (r *Repository) promote(ks *kindState, rec *record, id rows.CellID, s formgrid.ControlState, dest formgrid.Rect) error {
	sl := rec.slot
	if sl == nil {
		var err error
		sl, err = r.acquire(ks)
		if err != nil {
			return err
		}
		sl.owner = id
		rec.slot = sl
		r.stats.Promotions++
		formgrid.Logger().Debug("editor: promoted", "kind", ks.kind.Name, "row", id.Row, "field", id.Field)
	}
	sl.lastUsed = r.tick
	sl.offscreen = false

	// A focused control owns its value while editing; only refresh it when
	// it is first bound or not being edited.
	if !sl.focused || !s.Focused {
		sl.control.SetState(s)
	}
	sl.focused = s.Focused
	if sl.bounds != dest {
		sl.bounds = dest
		r.host.PlaceControl(sl.control, dest)
	}
	return nil
}

func (r *Repository) acquire(ks *kindState) (*slot, error) {
	for _, sl := range ks.slots {
		if sl.owner.IsZero() {
			return sl, nil
		}
	}
	if len(ks.slots) < r.poolSize(ks) {
		c, err := r.host.NewControl(ks.kind.Name)
		if err != nil {
			return nil, fmt.Errorf("editor: create live %q: %w", ks.kind.Name, err)
		}
		sl := &slot{control: c}
		ks.slots = append(ks.slots, sl)
		return sl, nil
	}
	victim := evictionVictim(ks.slots)
	if victim == nil {
		return nil, fmt.Errorf("%w: kind %q, %d focused", formgrid.ErrControlPoolExhausted, ks.kind.Name, len(ks.slots))
	}
	formgrid.Logger().Debug("editor: evicting live control",
		"kind", ks.kind.Name, "row", victim.owner.Row, "field", victim.owner.Field)
	r.stats.PoolEvictions++
	r.Demote(victim.owner)
	return victim, nil
}

// evictionVictim picks the least recently used non-focused slot, preferring
// offscreen owners.
func evictionVictim(slots []*slot) *slot {
	var best *slot
	for _, sl := range slots {
		if sl.focused {
			continue
		}
		switch {
		case best == nil:
			best = sl
		case sl.offscreen != best.offscreen:
			if sl.offscreen {
				best = sl
			}
		case sl.lastUsed < best.lastUsed:
			best = sl
		}
	}
	return best
}

// Demote unplaces the live control of a cell and returns it to the pool.
// The control's final state is returned so the caller can commit an edit.
// The cell's cached image is invalidated since its value may have changed.
func (r *Repository) Demote(id rows.CellID) (formgrid.ControlState, bool) {
	rec, ok := r.records[id]
	if !ok || rec.slot == nil {
		return formgrid.ControlState{}, false
	}
	sl := rec.slot
	st := sl.control.State()
	r.host.RemoveControl(sl.control)
	*sl = slot{control: sl.control}
	rec.slot = nil
	r.Invalidate(id)
	r.stats.Demotions++
	return st, true
}

// DemoteAll demotes every live control.
func (r *Repository) DemoteAll() {
	for id, rec := range r.records {
		if rec.slot != nil {
			r.Demote(id)
		}
	}
}

// ReleaseOffscreen forgets every cell not in visible. Non-focused live
// controls are demoted and the cell's record, with any private image, is
// dropped. A focused control stays bound but is marked offscreen, making
// it the first eviction candidate once it loses focus.
func (r *Repository) ReleaseOffscreen(visible map[rows.CellID]bool) {
	for id, rec := range r.records {
		if visible[id] {
			continue
		}
		if rec.slot != nil && rec.slot.focused {
			rec.slot.offscreen = true
			continue
		}
		r.Demote(id)
		delete(r.records, id)
	}
}

// Records returns the number of cells the repository holds state for.
func (r *Repository) Records() int { return len(r.records) }

// Live returns the live control bound to a cell.
func (r *Repository) Live(id rows.CellID) (formgrid.Control, bool) {
	rec, ok := r.records[id]
	if !ok || rec.slot == nil {
		return nil, false
	}
	return rec.slot.control, true
}

// LiveCount returns the number of bound live controls of a kind.
func (r *Repository) LiveCount(kind string) int {
	ks, ok := r.kinds[kind]
	if !ok {
		return 0
	}
	n := 0
	for _, sl := range ks.slots {
		if !sl.owner.IsZero() {
			n++
		}
	}
	return n
}
