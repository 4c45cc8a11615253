package particle

import (
	"errors"
	"testing"
)

func TestStore(t *testing.T) {
	st := NewStore()

	// Set and Get
	if err := st.Set(Particle{ID: 1, Type: 2}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	p, ok := st.Get(1)
	if !ok || p.Type != 2 {
		t.Fatalf("Get failed: got %+v, ok=%v", p, ok)
	}

	// Get non-existent
	if _, ok := st.Get(999); ok {
		t.Fatal("Get should return false for non-existent ID")
	}

	// BatchSet
	if err := st.BatchSet([]Particle{{ID: 2}, {ID: 3}, {ID: 4}}); err != nil {
		t.Fatalf("BatchSet failed: %v", err)
	}
	if st.Len() != 4 {
		t.Fatalf("Len should be 4, got %d", st.Len())
	}

	// IDs are ascending
	ids := st.IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("IDs not ascending: %v", ids)
		}
	}

	// Delete
	if err := st.Delete(1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if st.Has(1) {
		t.Fatal("Has should return false after Delete")
	}
	if err := st.Delete(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete non-existent: expected ErrNotFound, got %v", err)
	}

	// Clear
	if err := st.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("Len after Clear should be 0, got %d", st.Len())
	}
}

func TestStoreAll(t *testing.T) {
	st := NewStore()
	if err := st.BatchSet([]Particle{{ID: 3}, {ID: 1}, {ID: 2}}); err != nil {
		t.Fatalf("BatchSet failed: %v", err)
	}

	var got []ID
	for p := range st.All() {
		got = append(got, p.ID)
	}

	want := []ID{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("All yielded %d particles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("All order: got %v, want %v", got, want)
		}
	}
}

func TestBonded(t *testing.T) {
	p := Particle{ID: 1, Bonds: []Bond{{Type: 7, Partner: 2}}}

	if !p.Bonded(7, 2) {
		t.Fatal("expected bond (7, 2)")
	}
	if p.Bonded(7, 3) {
		t.Fatal("unexpected bond (7, 3)")
	}
	if p.Bonded(8, 2) {
		t.Fatal("unexpected bond type 8")
	}
}
