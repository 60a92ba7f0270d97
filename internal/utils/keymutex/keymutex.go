// Package keymutex provides a mutex keyed by campaign id, so mutations of
// distinct campaigns proceed in parallel while mutations of the same campaign
// are serialized.
package keymutex

import "sync"

// KeyMutex is a set of lazily created mutexes addressed by a uint64 key.
// The zero value is not usable; call New.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

// New returns an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[uint64]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use.
// Per-key mutexes are never discarded; the key space here is campaign ids,
// which grow slowly and are retained for history anyway.
func (k *KeyMutex) Lock(key uint64) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
}

// Unlock releases the mutex for key. It panics if Lock was not called first,
// matching sync.Mutex semantics.
func (k *KeyMutex) Unlock(key uint64) {
	k.mu.Lock()
	m, ok := k.locks[key]
	k.mu.Unlock()
	if !ok {
		panic("keymutex: unlock of unknown key")
	}
	m.Unlock()
}
