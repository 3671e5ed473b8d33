package arena

import "testing"

type thing struct{ n int }

func TestDestroyIsIdempotent(t *testing.T) {
	a := New[thing]()
	id := a.Spawn(&thing{n: 1})
	if !a.Destroy(id) {
		t.Fatal("first destroy should report the transition")
	}
	if a.Destroy(id) {
		t.Fatal("second destroy must be a no-op")
	}
	if a.Destroy(ID(999)) {
		t.Fatal("destroying an unknown id must be a no-op")
	}
	if _, ok := a.Get(id); ok {
		t.Fatal("dead entity must not be returned")
	}
}

func TestEachSkipsDeadAndCompactPrunes(t *testing.T) {
	a := New[thing]()
	ids := make([]ID, 5)
	for i := range ids {
		ids[i] = a.Spawn(&thing{n: i})
	}
	a.Destroy(ids[1])
	a.Destroy(ids[3])

	var seen []int
	a.Each(func(_ ID, v *thing) { seen = append(seen, v.n) })
	if len(seen) != 3 || seen[0] != 0 || seen[1] != 2 || seen[2] != 4 {
		t.Fatalf("unexpected live walk %v", seen)
	}

	if removed := a.Compact(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if a.Len() != 3 {
		t.Fatalf("expected 3 live, got %d", a.Len())
	}
	v, ok := a.Get(ids[4])
	if !ok || v.n != 4 {
		t.Fatal("index must follow entries moved by compaction")
	}
}

func TestDestroyDuringWalkHidesLaterEntries(t *testing.T) {
	a := New[thing]()
	first := a.Spawn(&thing{n: 0})
	second := a.Spawn(&thing{n: 1})
	_ = first

	visits := 0
	a.Each(func(id ID, _ *thing) {
		visits++
		if id == first {
			a.Destroy(second)
		}
	})
	if visits != 1 {
		t.Fatalf("entity destroyed mid-walk should not be visited, got %d visits", visits)
	}
}

func TestIDsAreNotReused(t *testing.T) {
	a := New[thing]()
	id1 := a.Spawn(&thing{})
	a.Destroy(id1)
	a.Compact()
	a.Clear()
	id2 := a.Spawn(&thing{})
	if id2 == id1 {
		t.Fatal("ids must not be reused")
	}
}
