package pattern

import (
	"testing"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry(4)
	r.Register("test", Corners(4))

	got, ok := r.Get("test")
	if !ok {
		t.Fatal("expected to find registered pattern")
	}
	if got.Kind() != FourCorners {
		t.Fatalf("expected four corners, got %s", got.Kind())
	}

	_, ok = r.Get("nonexistent")
	if ok {
		t.Fatal("expected not found for unregistered pattern")
	}
}

func TestRegistryGetIsCaseInsensitive(t *testing.T) {
	r := NewStandardRegistry(4)
	if _, ok := r.Get("  FullCard "); !ok {
		t.Fatal("expected FullCard to resolve")
	}
}

func TestRegistryAliases(t *testing.T) {
	r := NewStandardRegistry(4)
	horizontal, ok := r.Get("horizontal")
	if !ok {
		t.Fatal("expected horizontal alias")
	}
	row1, _ := r.Get("row1")
	if horizontal.Name() != row1.Name() {
		t.Fatalf("expected horizontal to alias row1, got %s", horizontal.Name())
	}
	if _, ok := r.Get("vertical"); !ok {
		t.Fatal("expected vertical alias")
	}
}

func TestRegistryListEmpty(t *testing.T) {
	r := NewRegistry(4)
	if len(r.List()) != 0 {
		t.Fatalf("expected 0 patterns, got %d", len(r.List()))
	}
}

func TestStandardRegistryEvenSize(t *testing.T) {
	r := NewStandardRegistry(4)
	keys := r.Keys()
	// 4 rows + 4 cols + 2 diagonals + corners + full + x + border
	if len(keys) != 14 {
		t.Fatalf("expected 14 keys, got %d: %v", len(keys), keys)
	}
	if _, ok := r.Get("cross"); ok {
		t.Fatal("cross should not exist on an even board")
	}
	if _, ok := r.Get("center"); ok {
		t.Fatal("center should not exist on an even board")
	}
}

func TestStandardRegistryOddSize(t *testing.T) {
	r := NewStandardRegistry(5)
	for _, key := range []string{"cross", "center", "row5", "col5"} {
		if _, ok := r.Get(key); !ok {
			t.Fatalf("expected %s on a 5x5 board", key)
		}
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewStandardRegistry(3)
	entries := r.List()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key >= entries[i].Key {
			t.Fatalf("entries not sorted: %s before %s", entries[i-1].Key, entries[i].Key)
		}
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry(4)
	r.Register("test", Corners(4))

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	r.Register("TEST", FullBoard(4)) // should panic
}

func TestRegistryOversizedPatternPanics(t *testing.T) {
	r := NewRegistry(3)
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for a pattern larger than the board")
		}
	}()
	r.Register("big", FullBoard(4))
}
