// Package settings holds the application settings in memory. Reads are
// served from memory; updates are written through to a local cache file
// and the settings table in the background, best effort.
package settings

import (
	"context"
	"sync"

	"github.com/nhle/gift-tracker/internal/logger"
	"github.com/nhle/gift-tracker/internal/model"
)

// Store is the process-wide settings cell.
type Store struct {
	cache     Cache
	persister Persister
	log       *logger.Logger

	mu      sync.RWMutex
	current model.AppSettings
	// gens counts updates per key; pending counts unfinished table writes.
	gens    map[model.SettingKey]uint64
	pending map[model.SettingKey]int

	subMu sync.Mutex
	subs  []chan model.AppSettings

	saveMu sync.Mutex
	putMu  sync.Mutex
	wg     sync.WaitGroup
}

// New returns a Store initialized from the local cache. Cache errors are
// logged and the defaults are used.
func New(cache Cache, persister Persister, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		cache:     cache,
		persister: persister,
		log:       log.With("component", "settings"),
		current:   model.DefaultSettings(),
		gens:      make(map[model.SettingKey]uint64),
		pending:   make(map[model.SettingKey]int),
	}

	if cache != nil {
		loaded, err := cache.Load()
		if err != nil {
			s.log.Warn("loading settings cache", "error", err)
		}
		s.current = loaded
	}
	return s
}

// Get returns a snapshot of the current settings.
func (s *Store) Get() model.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates and applies a single setting. The new value is visible
// to Get immediately; the cache and table writes happen in the background
// and their failures are only logged.
func (s *Store) Update(key model.SettingKey, value string) error {
	s.mu.Lock()
	next := s.current
	if err := next.Apply(key, value); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = next
	s.gens[key]++
	if s.persister != nil {
		s.pending[key]++
	}
	s.mu.Unlock()

	s.notify(next)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.saveCache()
	}()
	go func() {
		defer s.wg.Done()
		s.persist(key)
	}()
	return nil
}

// Reconcile loads the settings table in the background and overwrites the
// in-memory values of the keys present there. Keys updated after Reconcile
// starts, or still waiting on their table write, keep the in-memory value.
func (s *Store) Reconcile(ctx context.Context) {
	if s.persister == nil {
		return
	}

	s.mu.RLock()
	gens := make(map[model.SettingKey]uint64, len(s.gens))
	for k, v := range s.gens {
		gens[k] = v
	}
	busy := make(map[model.SettingKey]bool, len(s.pending))
	for k, n := range s.pending {
		busy[k] = n > 0
	}
	s.mu.RUnlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		stored, err := s.persister.GetSettings(ctx)
		if err != nil {
			s.log.Error("loading settings", "error", err)
			return
		}

		s.mu.Lock()
		next := s.current
		for _, key := range model.SettingKeys {
			value, ok := stored[string(key)]
			if !ok {
				continue
			}
			if busy[key] || s.gens[key] != gens[key] {
				s.log.Debug("keeping newer setting", "key", key)
				continue
			}
			if err := next.Apply(key, value); err != nil {
				s.log.Warn("ignoring stored setting", "key", key, "error", err)
			}
		}
		s.current = next
		s.mu.Unlock()

		s.notify(next)
		s.saveCache()
	}()
}

// Subscribe returns a channel receiving the settings after each change.
// A slow reader only sees the latest value.
func (s *Store) Subscribe() <-chan model.AppSettings {
	ch := make(chan model.AppSettings, 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

// Wait blocks until every background write has finished.
func (s *Store) Wait() {
	s.wg.Wait()
}

func (s *Store) notify(v model.AppSettings) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- v:
			continue
		default:
		}
		// Drop the stale value so the newest one is delivered.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

// persist writes the latest in-memory value of key to the settings table.
// Writes are serialized, so the last one to run stores the newest value.
func (s *Store) persist(key model.SettingKey) {
	if s.persister == nil {
		return
	}
	s.putMu.Lock()
	defer s.putMu.Unlock()

	value := s.Get().Value(key)
	if err := s.persister.PutSetting(context.Background(), string(key), value); err != nil {
		s.log.Error("persisting setting", "key", key, "error", err)
	}

	s.mu.Lock()
	s.pending[key]--
	s.mu.Unlock()
}

// saveCache writes the latest in-memory settings to the cache.
func (s *Store) saveCache() {
	if s.cache == nil {
		return
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := s.cache.Save(s.Get()); err != nil {
		s.log.Error("saving settings cache", "error", err)
	}
}
