// Package keymutex provides per-key mutual exclusion. The record-scan use
// case uses it to linearize writes for a single part while scans for
// different parts proceed in parallel.
package keymutex

import "sync"

// KeyMutex hands out one mutex per string key. Mutexes are created lazily
// and kept for the lifetime of the KeyMutex; the key space here (part ids
// seen by one process) is small enough that eviction is not needed.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key, blocking until it is available.
func (k *KeyMutex) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key. Calling Unlock for a key that is not
// locked panics, same as sync.Mutex.
func (k *KeyMutex) Unlock(key string) {
	k.get(key).Unlock()
}

func (k *KeyMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
