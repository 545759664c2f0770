package service

import "sync"

// collectionLocks serializes operations touching the same collection.
// Operations on different collections run in parallel.
type collectionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newCollectionLocks() *collectionLocks {
	return &collectionLocks{locks: make(map[string]*sync.Mutex)}
}

// lock blocks until the collection is free and returns the release func.
func (l *collectionLocks) lock(collectionID string) func() {
	l.mu.Lock()
	m, ok := l.locks[collectionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[collectionID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
