package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/gift-tracker/internal/store"
)

func TestHandle_ConcurrentFirstCallsShareOneOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gifts.db")

	var opens atomic.Int32
	release := make(chan struct{})
	h := store.NewHandleWithOpener(func(context.Context) (*store.SQLiteStore, error) {
		opens.Add(1)
		<-release
		return store.NewSQLiteStore(path)
	})
	t.Cleanup(func() { h.Close() })

	const callers = 8
	results := make([]*store.SQLiteStore, callers)
	errs := make([]error, callers)

	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i], errs[i] = h.Store(context.Background())
		}(i)
	}
	started.Wait()
	close(release)
	done.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
	// Late joiners may miss the in-flight call but then see the memoized store.
	assert.Equal(t, int32(1), opens.Load())

	var versions int
	require.NoError(t, results[0].DB().Get(&versions, "SELECT COUNT(*) FROM schema_version"))
	assert.Equal(t, 1, versions)
}

func TestHandle_FailedOpenIsRetried(t *testing.T) {
	var attempts int
	h := store.NewHandleWithOpener(func(context.Context) (*store.SQLiteStore, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("disk unavailable")
		}
		return store.NewSQLiteStore(":memory:")
	})
	t.Cleanup(func() { h.Close() })

	_, err := h.Store(context.Background())
	require.EqualError(t, err, "disk unavailable")

	s1, err := h.Store(context.Background())
	require.NoError(t, err)
	s2, err := h.Store(context.Background())
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.Equal(t, 2, attempts)
}

func TestHandle_CloseBeforeOpen(t *testing.T) {
	h := store.NewHandle(filepath.Join(t.TempDir(), "unused.db"))
	assert.NoError(t, h.Close())
}
