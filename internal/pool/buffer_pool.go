package pool

import "sync"

// BufferPool implements a pool of byte slices for decode scratch space
type BufferPool struct {
	pool sync.Pool
	// maxRetained caps the capacity of buffers returned to the pool
	maxRetained int
}

// NewBufferPool creates a new buffer pool with buffers of the specified initial size.
// Buffers that grew beyond 64 times that size are dropped instead of being reused.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		maxRetained: size * 64,
	}
}

// Get retrieves an empty buffer with at least n bytes of capacity
func (bp *BufferPool) Get(n int) *[]byte {
	buffer := bp.pool.Get().(*[]byte)
	if cap(*buffer) < n {
		*buffer = make([]byte, 0, n)
	}
	*buffer = (*buffer)[:0]
	return buffer
}

// Put returns a buffer to the pool for reuse
func (bp *BufferPool) Put(buffer *[]byte) {
	if buffer == nil || cap(*buffer) > bp.maxRetained {
		return
	}
	// Reset buffer length but keep capacity
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}
