package keymutex_test

import (
	"sync"
	"testing"
	"time"

	"github.com/OpenPledge/crowdfund_ledger/internal/utils/keymutex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	km := keymutex.New()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			km.Lock(7)
			counter++
			km.Unlock(7)
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyMutex_IndependentKeys(t *testing.T) {
	km := keymutex.New()

	km.Lock(1)
	done := make(chan struct{})
	go func() {
		// Must not block on a different key.
		km.Lock(2)
		km.Unlock(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on a different key blocked")
	}
	km.Unlock(1)
}

func TestKeyMutex_UnlockUnknownKeyPanics(t *testing.T) {
	km := keymutex.New()
	require.Panics(t, func() { km.Unlock(99) })
}
