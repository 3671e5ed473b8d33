// Package arena stores short-lived simulation entities keyed by stable IDs.
//
// Destruction only flips a liveness flag; the backing slice is pruned by an
// explicit Compact pass that the tick loop runs between phases, never while
// another phase is iterating.
package arena

// ID identifies an entity for its whole lifetime. IDs are never reused within
// one arena; the zero ID is never issued.
type ID uint64

type slot[T any] struct {
	id    ID
	alive bool
	val   *T
}

// Arena owns a set of entities of type T.
type Arena[T any] struct {
	slots []slot[T]
	index map[ID]int
	next  ID
}

// New returns an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{index: make(map[ID]int)}
}

// Spawn takes ownership of v and returns its ID.
func (a *Arena[T]) Spawn(v *T) ID {
	a.next++
	id := a.next
	a.index[id] = len(a.slots)
	a.slots = append(a.slots, slot[T]{id: id, alive: true, val: v})
	return id
}

// Get returns the entity for id while it is alive.
func (a *Arena[T]) Get(id ID) (*T, bool) {
	i, ok := a.index[id]
	if !ok || !a.slots[i].alive {
		return nil, false
	}
	return a.slots[i].val, true
}

// Alive reports whether id refers to a live entity.
func (a *Arena[T]) Alive(id ID) bool {
	_, ok := a.Get(id)
	return ok
}

// Destroy marks id dead. It reports whether this call performed the
// transition; destroying an unknown or already-dead entity is a no-op.
func (a *Arena[T]) Destroy(id ID) bool {
	i, ok := a.index[id]
	if !ok || !a.slots[i].alive {
		return false
	}
	a.slots[i].alive = false
	return true
}

// Each calls fn for every live entity in spawn order. Entities destroyed
// during the walk are skipped once they are marked dead.
func (a *Arena[T]) Each(fn func(id ID, v *T)) {
	for i := range a.slots {
		s := a.slots[i]
		if !s.alive {
			continue
		}
		fn(s.id, s.val)
	}
}

// Compact drops dead entries in a single O(n) pass and returns how many were
// removed.
func (a *Arena[T]) Compact() int {
	kept := a.slots[:0]
	removed := 0
	for _, s := range a.slots {
		if !s.alive {
			delete(a.index, s.id)
			removed++
			continue
		}
		a.index[s.id] = len(kept)
		kept = append(kept, s)
	}
	for i := len(kept); i < len(a.slots); i++ {
		a.slots[i] = slot[T]{}
	}
	a.slots = kept
	return removed
}

// Len returns the number of live entities.
func (a *Arena[T]) Len() int {
	n := 0
	for _, s := range a.slots {
		if s.alive {
			n++
		}
	}
	return n
}

// Clear removes every entity. IDs keep increasing afterwards.
func (a *Arena[T]) Clear() {
	for i := range a.slots {
		a.slots[i] = slot[T]{}
	}
	a.slots = a.slots[:0]
	clear(a.index)
}
