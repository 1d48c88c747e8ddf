// Package keyedmutex provides striped mutual exclusion keyed by string.
// It serializes critical sections that are scoped to a single entity (for
// example one courier's capacity check-then-write) without serializing
// unrelated entities against each other.
package keyedmutex

import "sync"

// KeyedMutex maintains one mutex per key. Mutexes are created on first use
// and retained for the lifetime of the KeyedMutex; the expected key space
// (courier identifiers) is small and long-lived.
//
// The zero value is ready to use.
type KeyedMutex struct {
	locks sync.Map // string -> *sync.Mutex
}

// Lock acquires the mutex for the given key, blocking until it is free.
func (m *KeyedMutex) Lock(key string) {
	m.mutex(key).Lock()
}

// Unlock releases the mutex for the given key.
// Unlocking a key that was never locked panics, as with sync.Mutex.
func (m *KeyedMutex) Unlock(key string) {
	m.mutex(key).Unlock()
}

func (m *KeyedMutex) mutex(key string) *sync.Mutex {
	if lock, ok := m.locks.Load(key); ok {
		return lock.(*sync.Mutex)
	}

	lock, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
