// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
//
// Fixed-class byte buffers for read destinations in the transport shell.

package pool

// BytePool hands out buffers of up to size bytes backed by a SyncPool.
// Larger requests are served by plain allocation and never pooled.
type BytePool struct {
	pool *SyncPool[*[]byte]
	size int
}

// NewBytePool creates a pool whose buffers have capacity size.
func NewBytePool(size int) *BytePool {
	return &BytePool{
		pool: NewSyncPool(
			func() *[]byte {
				b := make([]byte, size)
				return &b
			},
			func(p *[]byte) (*[]byte, bool) {
				if cap(*p) != size {
					return nil, false
				}
				*p = (*p)[:size]
				return p, true
			},
		),
		size: size,
	}
}

// Size returns the pooled buffer capacity.
func (b *BytePool) Size() int {
	return b.size
}

// GetBuffer returns a buffer of exactly n bytes.
func (b *BytePool) GetBuffer(n int) []byte {
	if n > b.size {
		return make([]byte, n)
	}
	p := b.pool.Get()
	return (*p)[:n]
}

// PutBuffer returns buf to the pool. Foreign-sized buffers are dropped.
func (b *BytePool) PutBuffer(buf []byte) {
	b.pool.Put(&buf)
}
