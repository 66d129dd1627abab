package core

import "testing"

func TestSparseTableInsertHasRemove(t *testing.T) {
	t.Parallel()
	st := NewSparseTable[int](4, 64)

	a, err := st.Insert()
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	b, err := st.Insert()
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct ids, got %d and %d", a, b)
	}
	if !st.Has(a) || !st.Has(b) {
		t.Fatalf("expected both ids live")
	}
	if st.Has(NullID) {
		t.Error("NullID must never be live")
	}

	*st.Row(a) = 99
	if got := *st.Row(a); got != 99 {
		t.Errorf("Row(a) = %d, want 99", got)
	}

	st.Remove(a)
	if st.Has(a) {
		t.Error("removed id should no longer be live")
	}
	if !st.Has(b) {
		t.Error("b should remain live after removing a")
	}
	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1", st.Len())
	}
}

func TestSparseTableCapacityExceeded(t *testing.T) {
	t.Parallel()
	st := NewSparseTable[int](2, 64)
	if _, err := st.Insert(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := st.Insert(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := st.Insert(); err != ErrCapacityExceeded {
		t.Fatalf("Insert() error = %v, want ErrCapacityExceeded", err)
	}
}

func TestSparseTableIDReuse(t *testing.T) {
	t.Parallel()
	st := NewSparseTable[int](4, 8)

	a, _ := st.Insert()
	st.Remove(a)

	// Ids handed out while others are live are never duplicated.
	seen := map[uint32]bool{}
	for i := 0; i < 3; i++ {
		id, err := st.Insert()
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("id %d reused while still live", id)
		}
		seen[id] = true
	}

	// Free every row and keep inserting until the id cursor wraps past
	// maxIDRange-1 back to 1 — exercising the "ids are eventually reused"
	// clause of spec.md §4.1: a's id comes back.
	for id := range seen {
		st.Remove(id)
	}
	var got []uint32
	for i := 0; i < 4; i++ {
		id, err := st.Insert()
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		st.Remove(id)
		got = append(got, id)
	}
	if got[3] != a {
		t.Errorf("ids after wrap = %v, want the cursor to hand out %d again", got, a)
	}
}

func TestSparseTableIndexOfUnknownPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("IndexOf on unknown id should panic")
		}
	}()
	st := NewSparseTable[int](4, 64)
	st.IndexOf(42)
}

func TestSparseTableRelabel(t *testing.T) {
	t.Parallel()
	st := NewSparseTable[int](4, 64)
	a, _ := st.Insert()
	*st.Row(a) = 5

	if err := st.Relabel(a, 50); err != nil {
		t.Fatalf("Relabel() error = %v", err)
	}
	if st.Has(a) {
		t.Error("old id should no longer be live after relabel")
	}
	if !st.Has(50) {
		t.Fatal("new id should be live after relabel")
	}
	if got := *st.Row(50); got != 5 {
		t.Errorf("relabeled row = %d, want 5", got)
	}
}

func TestSparseTableForEachRow(t *testing.T) {
	t.Parallel()
	st := NewSparseTable[int](4, 64)
	ids := make([]uint32, 0, 3)
	for i := 0; i < 3; i++ {
		id, _ := st.Insert()
		*st.Row(id) = i
		ids = append(ids, id)
	}

	visited := map[uint32]int{}
	st.ForEachRow(func(id uint32, row *int) bool {
		visited[id] = *row
		return true
	})
	if len(visited) != 3 {
		t.Fatalf("visited %d rows, want 3", len(visited))
	}

	count := 0
	st.ForEachRow(func(id uint32, row *int) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("early stop should visit exactly 1 row, got %d", count)
	}
}
