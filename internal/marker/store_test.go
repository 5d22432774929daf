package marker

import (
	"sort"
	"testing"
)

func TestInsertKeepsSorted(t *testing.T) {
	s := NewStore()
	for _, y := range []float64{90, 10, 50, 30, 70} {
		s.Insert(y, y*2)
	}

	all := s.All()
	if len(all) != 5 {
		t.Fatalf("expected 5 markers, got %d", len(all))
	}
	if !sort.SliceIsSorted(all, func(i, j int) bool { return all[i].Y < all[j].Y }) {
		t.Errorf("markers not sorted by Y: %v", all)
	}
}

func TestInsertDuplicateY(t *testing.T) {
	s := NewStore()
	s.Insert(40, 25)
	s.Insert(40, 35)

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected both duplicate-Y markers retained, got %d", len(all))
	}
	// Stable sort keeps placement order for equal Y.
	if all[0].KDa != 25 || all[1].KDa != 35 {
		t.Errorf("duplicate-Y markers reordered: %v", all)
	}
}

func TestRemoveLastUsesPlacementOrder(t *testing.T) {
	s := NewStore()
	s.Insert(100, 15) // A
	s.Insert(20, 250) // B sorts before A

	removed, ok := s.RemoveLast()
	if !ok {
		t.Fatal("RemoveLast returned false on non-empty store")
	}
	if removed.Y != 20 || removed.KDa != 250 {
		t.Errorf("expected most recently placed marker removed, got %+v", removed)
	}

	all := s.All()
	if len(all) != 1 || all[0].Y != 100 {
		t.Errorf("expected only the first marker to remain, got %v", all)
	}
}

func TestRemoveLastEmpty(t *testing.T) {
	s := NewStore()
	if _, ok := s.RemoveLast(); ok {
		t.Error("RemoveLast on empty store should return false")
	}
}

func TestRemoveLastWithDuplicates(t *testing.T) {
	s := NewStore()
	s.Insert(40, 25)
	s.Insert(40, 35)

	removed, _ := s.RemoveLast()
	if removed.KDa != 35 {
		t.Errorf("expected second duplicate removed, got %+v", removed)
	}
	all := s.All()
	if len(all) != 1 || all[0].KDa != 25 {
		t.Errorf("expected first duplicate to remain, got %v", all)
	}
}

func TestQueryInclusive(t *testing.T) {
	s := NewStore()
	s.Insert(10, 250)
	s.Insert(50, 100)
	s.Insert(90, 37)

	got := s.Query(20, 90)
	if len(got) != 2 {
		t.Fatalf("expected 2 markers in [20,90], got %d", len(got))
	}
	if got[0].Y != 50 || got[1].Y != 90 {
		t.Errorf("expected markers at 50 and 90 in order, got %v", got)
	}

	// Both endpoints are inclusive.
	if got := s.Query(10, 10); len(got) != 1 || got[0].Y != 10 {
		t.Errorf("query [10,10] should return the marker at 10, got %v", got)
	}
}

func TestQueryEmpty(t *testing.T) {
	s := NewStore()
	if got := s.Query(0, 1000); got != nil {
		t.Errorf("query on empty store should return nil, got %v", got)
	}
}

func TestClearIdempotent(t *testing.T) {
	s := NewStore()
	s.Insert(10, 20)
	s.Clear()
	s.Clear() // second clear on empty store must not panic
	if s.Len() != 0 {
		t.Errorf("expected empty store after clear, got %d markers", s.Len())
	}
	if _, ok := s.RemoveLast(); ok {
		t.Error("undo after clear should find nothing")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Insert(10, 20)

	all := s.All()
	all[0].Y = 999
	if s.All()[0].Y != 10 {
		t.Error("mutating All() result changed store contents")
	}
}
