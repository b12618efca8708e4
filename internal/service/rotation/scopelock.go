package rotation

import (
	"sync"

	"github.com/google/uuid"
)

// scopeLock provides mutual exclusion keyed by (userID, topic) scope.
// Locks for distinct scopes are independent, so concurrent draws for
// different users or topics never block each other. Entries are reference
// counted and removed once the last holder releases, keeping the map bounded
// by the number of in-flight requests.
type scopeLock struct {
	mu     sync.Mutex
	scopes map[string]*scopeEntry
}

type scopeEntry struct {
	mu   sync.Mutex
	refs int
}

func newScopeLock() *scopeLock {
	return &scopeLock{scopes: make(map[string]*scopeEntry)}
}

// scopeKey builds the map key for a (userID, topic) pair.
func scopeKey(userID uuid.UUID, topic string) string {
	return userID.String() + "/" + topic
}

// Lock acquires the lock for the given scope, blocking until it is available.
func (l *scopeLock) Lock(userID uuid.UUID, topic string) {
	key := scopeKey(userID, topic)

	l.mu.Lock()
	entry, ok := l.scopes[key]
	if !ok {
		entry = &scopeEntry{}
		l.scopes[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

// Unlock releases the lock for the given scope. It must only be called by a
// goroutine that currently holds the scope's lock.
func (l *scopeLock) Unlock(userID uuid.UUID, topic string) {
	key := scopeKey(userID, topic)

	l.mu.Lock()
	entry, ok := l.scopes[key]
	if !ok {
		l.mu.Unlock()
		panic("rotation: unlock of unheld scope " + key)
	}
	entry.refs--
	if entry.refs == 0 {
		delete(l.scopes, key)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
