// Package util provides small helpers shared across components.
package util

import "sync"

// KeyedMutex provides per-key locking so operations on the same key
// serialize while operations on different keys proceed in parallel.
// Mutexes are retained for the process lifetime; the key space (one entry
// per conversation) is small and bounded in practice.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns the unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
