package main

import "sync"

// keyedMutex serializes work per key. Ticket creation locks on
// (guild, user) so two near-simultaneous menu selections cannot both pass
// the open-ticket existence check.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[string]*lockEntry),
	}
}

// Lock locks the mutex for key and returns the unlock function. Entries are
// dropped once the last holder unlocks, so the map does not grow unbounded.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = new(lockEntry)
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
