package main

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerialisesSameKey(t *testing.T) {
	m := newKeyedMutex()

	const workers = 16
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock("G1:U1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	require.Equal(t, workers, counter)
}

func TestKeyedMutex_DistinctKeysIndependent(t *testing.T) {
	m := newKeyedMutex()

	unlockA := m.Lock("a")

	done := make(chan struct{})
	go func() {
		unlockB := m.Lock("b")
		unlockB()
		close(done)
	}()

	// Holding "a" must not block "b".
	<-done
	unlockA()
}

func TestKeyedMutex_EntriesReleased(t *testing.T) {
	m := newKeyedMutex()

	unlock := m.Lock("a")
	unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	require.Empty(t, m.locks)
}
