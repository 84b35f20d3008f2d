// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package pool

import "sync"

// ObjectPool is a generic object pool.
type ObjectPool[T any] interface {
	Get() T
	Put(T)
}

// SyncPool is a typed sync.Pool. An optional reset hook normalizes
// objects on Put; returning false drops the object instead of pooling it.
type SyncPool[T any] struct {
	pool  sync.Pool
	reset func(T) (T, bool)
}

var _ ObjectPool[*[]byte] = (*SyncPool[*[]byte])(nil)

// NewSyncPool creates a pool that builds new objects with creator.
func NewSyncPool[T any](creator func() T, reset func(T) (T, bool)) *SyncPool[T] {
	sp := &SyncPool[T]{reset: reset}
	sp.pool.New = func() any { return creator() }
	return sp
}

func (sp *SyncPool[T]) Get() T {
	return sp.pool.Get().(T)
}

func (sp *SyncPool[T]) Put(obj T) {
	if sp.reset != nil {
		var ok bool
		if obj, ok = sp.reset(obj); !ok {
			return
		}
	}
	sp.pool.Put(obj)
}
