package rotation

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeLockSerializesSameScope(t *testing.T) {
	locks := newScopeLock()
	userID := uuid.New()

	const workers = 8
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock(userID, "algorithms")
			defer locks.Unlock(userID, "algorithms")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestScopeLockIndependentScopes(t *testing.T) {
	locks := newScopeLock()
	userID := uuid.New()

	// Holding one scope must not block a different scope.
	locks.Lock(userID, "algorithms")
	defer locks.Unlock(userID, "algorithms")

	done := make(chan struct{})
	go func() {
		locks.Lock(userID, "databases")
		locks.Unlock(userID, "databases")
		close(done)
	}()

	<-done
}

func TestScopeLockReleasesEntries(t *testing.T) {
	locks := newScopeLock()
	userID := uuid.New()

	locks.Lock(userID, "algorithms")
	locks.Unlock(userID, "algorithms")

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.scopes, "released scopes must not accumulate")
}

func TestScopeLockUnlockUnheldPanics(t *testing.T) {
	locks := newScopeLock()

	require.Panics(t, func() {
		locks.Unlock(uuid.New(), "algorithms")
	})
}
