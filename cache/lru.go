package cache

// lruNode links one key into a recency ring.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList orders keys by recency. It is a circular list around a sentinel:
// root.next is the most recently used key, root.prev the least.
// Not safe for concurrent use.
type lruList[K comparable] struct {
	root lruNode[K]
	len  int
}

func newLRUList[K comparable]() *lruList[K] {
	l := &lruList[K]{}
	l.Clear()
	return l
}

// Len returns the number of keys.
func (l *lruList[K]) Len() int { return l.len }

// PushFront inserts key as the most recently used.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	n := &lruNode[K]{key: key}
	l.insertAfter(n, &l.root)
	return n
}

// MoveToFront marks n as the most recently used.
func (l *lruList[K]) MoveToFront(n *lruNode[K]) {
	if n == nil || n.next == nil || l.root.next == n {
		return
	}
	l.unlink(n)
	l.insertAfter(n, &l.root)
}

// Remove unlinks n. Removing a node twice is a no-op.
func (l *lruList[K]) Remove(n *lruNode[K]) {
	if n == nil || n.next == nil {
		return
	}
	l.unlink(n)
}

// Oldest returns the least recently used key.
func (l *lruList[K]) Oldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	return l.root.prev.key, true
}

// RemoveOldest unlinks and returns the least recently used key.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	k, ok := l.Oldest()
	if ok {
		l.unlink(l.root.prev)
	}
	return k, ok
}

// Clear empties the list. Nodes handed out earlier must not be reused.
func (l *lruList[K]) Clear() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}

// each visits keys from least to most recently used until fn returns false.
func (l *lruList[K]) each(fn func(K) bool) {
	for n := l.root.prev; n != &l.root; n = n.prev {
		if !fn(n.key) {
			return
		}
	}
}

func (l *lruList[K]) insertAfter(n, at *lruNode[K]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
	l.len++
}

func (l *lruList[K]) unlink(n *lruNode[K]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.len--
}
