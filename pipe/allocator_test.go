package pipe

import (
	"bytes"
	"testing"
)

func TestAllocatorsZeroFill(t *testing.T) {
	allocs := map[string]Allocator{
		"heap": HeapAllocator{},
		"mmap": NewMmapAllocator(),
	}
	for name, a := range allocs {
		t.Run(name, func(t *testing.T) {
			for _, size := range []int{0, 1, 64, 4064} {
				b, err := a.Alloc(size)
				if err != nil {
					t.Fatalf("Alloc(%d): %v", size, err)
				}
				if len(b) != size {
					t.Fatalf("len = %d, want %d", len(b), size)
				}
				if !bytes.Equal(b, make([]byte, size)) {
					t.Errorf("Alloc(%d) not zeroed", size)
				}
				for i := range b {
					b[i] = 0xFF
				}
				a.Free(b)
			}
		})
	}
}

func TestChannelOnMmapStorage(t *testing.T) {
	c := New(WithAllocator(NewMmapAllocator()))
	if err := c.Init(256); err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	msg := []byte("mapped pipe payload")
	for i := 0; i < 40; i++ {
		if _, err := c.Write(msg, uint64(len(msg))); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		got, err := c.Read(uint64(len(msg)))
		if err != nil || !bytes.Equal(got, msg) {
			t.Fatalf("iteration %d: %q, %v", i, got, err)
		}
	}
}
