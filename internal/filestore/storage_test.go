package filestore

import "testing"

func TestMemoryStorageGrowPreservesData(t *testing.T) {
	ms, err := NewMemoryStorage(16)
	if err != nil {
		t.Fatal(err)
	}
	copy(ms.Slice(0, 16), "0123456789abcdef")

	if err := ms.Grow(64); err != nil {
		t.Fatal(err)
	}
	if ms.Size() != 64 {
		t.Fatalf("size: got %d want 64", ms.Size())
	}
	if got := string(ms.Slice(0, 16)); got != "0123456789abcdef" {
		t.Fatalf("data not preserved: got %q", got)
	}
}

func TestMemoryStorageSliceOutOfBounds(t *testing.T) {
	ms, err := NewMemoryStorage(16)
	if err != nil {
		t.Fatal(err)
	}
	if s := ms.Slice(10, 10); s != nil {
		t.Fatalf("expected nil for out-of-bounds slice, got %v", s)
	}
}
