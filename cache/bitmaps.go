package cache

import "github.com/gogpu/formgrid"

// Entry is one cached bitmap together with the key that produced it.
type Entry struct {
	ID     int
	Key    string
	Bitmap *formgrid.Bitmap
}

// Bitmaps is a bidirectional bitmap cache: entries are found by key or by
// id. Ids are assigned from a counter that never repeats, so a stale id held
// by a cell simply misses after its entry is evicted or replaced.
//
// Bitmaps is not safe for concurrent use.
type Bitmaps struct {
	byID   *LRU[int, *Entry]
	byKey  map[string]int
	nextID int

	hits, misses uint64
}

// NewBitmaps creates a bitmap cache holding at most capacity entries.
func NewBitmaps(capacity int) *Bitmaps {
	b := &Bitmaps{
		byKey:  make(map[string]int),
		nextID: 1,
	}
	b.byID = NewLRU(capacity, func(_ int, e *Entry) {
		delete(b.byKey, e.Key)
		formgrid.Logger().Debug("cache: bitmap evicted", "id", e.ID, "key_len", len(e.Key))
	})
	return b
}

// Lookup returns the entry for key and marks it recently used.
func (b *Bitmaps) Lookup(key string) (*Entry, bool) {
	if id, ok := b.byKey[key]; ok {
		if e, ok := b.byID.Get(id); ok {
			b.hits++
			return e, true
		}
	}
	b.misses++
	return nil, false
}

// ByID returns the entry with the given id and marks it recently used.
func (b *Bitmaps) ByID(id int) (*Entry, bool) {
	return b.byID.Get(id)
}

// Put stores bm under key with a fresh id. An existing entry for key is
// replaced and its id retired.
func (b *Bitmaps) Put(key string, bm *formgrid.Bitmap) *Entry {
	if old, ok := b.byKey[key]; ok {
		b.byID.Delete(old)
	}
	e := &Entry{ID: b.nextID, Key: key, Bitmap: bm}
	b.nextID++
	b.byKey[key] = e.ID
	b.byID.Set(e.ID, e)
	return e
}

// Remove deletes the entry for key.
func (b *Bitmaps) Remove(key string) bool {
	id, ok := b.byKey[key]
	if !ok {
		return false
	}
	delete(b.byKey, key)
	return b.byID.Delete(id)
}

// RemoveID deletes the entry with the given id.
func (b *Bitmaps) RemoveID(id int) bool {
	e, ok := b.byID.Peek(id)
	if !ok {
		return false
	}
	delete(b.byKey, e.Key)
	return b.byID.Delete(id)
}

// Clear removes every entry. Ids keep increasing.
func (b *Bitmaps) Clear() {
	b.byID.Clear()
	clear(b.byKey)
}

// Len returns the number of entries.
func (b *Bitmaps) Len() int {
	return len(b.byKey)
}

// Stats returns key lookup statistics.
func (b *Bitmaps) Stats() Stats {
	s := b.byID.Stats()
	return newStats(len(b.byKey), s.Capacity, b.hits, b.misses, s.Evictions)
}
