package pool

import "testing"

func TestBufferPoolGetGrowsToRequestedCapacity(t *testing.T) {
	bp := NewBufferPool(16)

	buf := bp.Get(1024)
	if cap(*buf) < 1024 {
		t.Fatalf("expected capacity >= 1024, got %d", cap(*buf))
	}
	if len(*buf) != 0 {
		t.Fatalf("expected empty buffer, got len %d", len(*buf))
	}

	*buf = append(*buf, "héllo"...)
	bp.Put(buf)

	again := bp.Get(4)
	if len(*again) != 0 {
		t.Fatalf("expected reset buffer, got len %d", len(*again))
	}
}

func TestBufferPoolDropsOversizedBuffers(t *testing.T) {
	bp := NewBufferPool(1)
	big := make([]byte, 0, 1024)

	bp.Put(&big)
	bp.Put(nil)

	// A retained buffer would come back with its 1024-byte capacity.
	if got := bp.Get(0); cap(*got) >= 1024 {
		t.Fatalf("expected oversized buffer to be dropped, got capacity %d", cap(*got))
	}
}
