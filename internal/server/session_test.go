// internal/server/session_test.go
package server

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/components/wizard"
	"fostercare-intake/internal/ui"
	"fostercare-intake/pkg/registry"
)

func newStoreWizard(t *testing.T) *wizard.Wizard {
	schemas, err := registry.Load()
	require.NoError(t, err)
	log := logger.NewTestLogger(t)
	return wizard.New(nil, ui.NewLogPresenter(log, true), schemas, log)
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store := NewSessionStore(time.Hour, logger.NewTestLogger(t))

	session := store.Create(newStoreWizard(t))

	require.NotEmpty(t, session.ID)
	assert.Same(t, session, store.Get(session.ID))
	assert.Equal(t, 1, store.Len())

	second := store.Create(newStoreWizard(t))
	assert.NotEqual(t, session.ID, second.ID)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStore_GetUnknown(t *testing.T) {
	store := NewSessionStore(time.Hour, logger.NewTestLogger(t))

	assert.Nil(t, store.Get("nope"))
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore(time.Hour, logger.NewTestLogger(t))
	session := store.Create(newStoreWizard(t))

	store.Delete(session.ID)

	assert.Nil(t, store.Get(session.ID))
	assert.Equal(t, 0, store.Len())

	// Double delete is a no-op.
	store.Delete(session.ID)
}

func TestSessionStore_SweepExpiresIdleSessions(t *testing.T) {
	store := NewSessionStore(10*time.Millisecond, logger.NewTestLogger(t))
	stale := store.Create(newStoreWizard(t))

	time.Sleep(25 * time.Millisecond)
	fresh := store.Create(newStoreWizard(t))

	swept := store.Sweep()

	assert.Equal(t, 1, swept)
	assert.Nil(t, store.Get(stale.ID))
	assert.NotNil(t, store.Get(fresh.ID))
}

func TestSessionStore_ConcurrentTouchAndLookup(t *testing.T) {
	store := NewSessionStore(time.Hour, logger.NewTestLogger(t))
	session := store.Create(newStoreWizard(t))

	// Request handlers touch the session while the store reads its idle
	// time; run both sides concurrently so the race detector can see them.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			session.Lock()
			session.Unlock()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			assert.NotNil(t, store.Get(session.ID))
			store.Sweep()
		}
	}()
	wg.Wait()

	assert.NotNil(t, store.Get(session.ID))
}

func TestSessionStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewSessionStore(0, logger.NewTestLogger(t))
	session := store.Create(newStoreWizard(t))

	assert.Zero(t, store.Sweep())
	assert.NotNil(t, store.Get(session.ID))
}
