package store

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Opener opens and initializes a store.
type Opener func(ctx context.Context) (*SQLiteStore, error)

// Handle lazily opens one shared store for the whole process. Concurrent
// first callers wait on a single open; a successful result is reused by
// every later call, a failed one is not remembered.
type Handle struct {
	open  Opener
	group singleflight.Group

	mu    sync.RWMutex
	store *SQLiteStore
}

// NewHandle returns a Handle that opens the SQLite database at dbPath on
// first use.
func NewHandle(dbPath string) *Handle {
	return NewHandleWithOpener(func(context.Context) (*SQLiteStore, error) {
		return NewSQLiteStore(dbPath)
	})
}

// NewHandleWithOpener returns a Handle backed by a custom opener.
func NewHandleWithOpener(open Opener) *Handle {
	return &Handle{open: open}
}

// Store returns the shared store, opening it on the first call.
func (h *Handle) Store(ctx context.Context) (*SQLiteStore, error) {
	h.mu.RLock()
	s := h.store
	h.mu.RUnlock()
	if s != nil {
		return s, nil
	}

	v, err, _ := h.group.Do("store", func() (interface{}, error) {
		h.mu.RLock()
		existing := h.store
		h.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		opened, err := h.open(ctx)
		if err != nil {
			return nil, err
		}

		h.mu.Lock()
		h.store = opened
		h.mu.Unlock()
		return opened, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*SQLiteStore), nil
}

// Close closes the store if it was opened.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.store == nil {
		return nil
	}
	err := h.store.Close()
	h.store = nil
	return err
}
