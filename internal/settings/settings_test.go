package settings

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nhle/gift-tracker/internal/logger"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/testutil"
)

type memPersister struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	putErr error
	puts   int
}

func (p *memPersister) GetSettings(context.Context) (map[string]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.getErr != nil {
		return nil, p.getErr
	}
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out, nil
}

func (p *memPersister) PutSetting(_ context.Context, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.puts++
	if p.putErr != nil {
		return p.putErr
	}
	if p.values == nil {
		p.values = make(map[string]string)
	}
	p.values[key] = value
	return nil
}

// gatedPersister holds its calls open until the test closes the gates.
type gatedPersister struct {
	memPersister
	getStarted chan struct{}
	getGate    chan struct{}
	putGate    chan struct{}
}

func (p *gatedPersister) GetSettings(ctx context.Context) (map[string]string, error) {
	if p.getStarted != nil {
		close(p.getStarted)
	}
	if p.getGate != nil {
		<-p.getGate
	}
	return p.memPersister.GetSettings(ctx)
}

func (p *gatedPersister) PutSetting(ctx context.Context, key, value string) error {
	if p.putGate != nil {
		<-p.putGate
	}
	return p.memPersister.PutSetting(ctx, key, value)
}

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestStore_UpdateVisibleImmediately(t *testing.T) {
	cache := NewFileCache(filepath.Join(t.TempDir(), "settings.yaml"))
	p := &gatedPersister{putGate: make(chan struct{})}
	s := New(cache, p, logger.Nop())

	require.NoError(t, s.Update(model.SettingTheme, "dark"))
	assert.Equal(t, model.ThemeDark, s.Get().Theme)

	p.mu.Lock()
	assert.Zero(t, p.puts)
	p.mu.Unlock()

	close(p.putGate)
	s.Wait()
	assert.Equal(t, "dark", p.values["theme"])

	cached, err := cache.Load()
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, cached.Theme)
}

func TestStore_RepeatedUpdatesStoreLatest(t *testing.T) {
	themes := []string{"dark", "light", "system", "dark", "light"}

	for trial := 0; trial < 20; trial++ {
		st := testutil.NewTestStore(t)
		s := New(nil, HandlePersister{Handle: testutil.NewTestHandle(t, st)}, logger.Nop())

		for _, theme := range themes {
			require.NoError(t, s.Update(model.SettingTheme, theme))
		}
		s.Wait()

		stored, err := st.GetSettings(context.Background())
		require.NoError(t, err)
		require.Equal(t, string(s.Get().Theme), stored["theme"], "trial %d", trial)
		require.Equal(t, "light", stored["theme"])
	}
}

func TestStore_UpdateRejectsInvalid(t *testing.T) {
	s := New(nil, &memPersister{}, logger.Nop())

	err := s.Update(model.SettingTheme, "neon")
	assert.ErrorIs(t, err, model.ErrInvalidSetting)

	err = s.Update("font_size", "12")
	assert.ErrorIs(t, err, model.ErrInvalidSetting)

	err = s.Update(model.SettingDefaultReminderDays, "soon")
	assert.ErrorIs(t, err, model.ErrInvalidSetting)

	assert.Equal(t, model.ThemeSystem, s.Get().Theme)
}

func TestStore_PersistFailureIsLoggedNotRolledBack(t *testing.T) {
	log, logs := observedLogger()
	p := &memPersister{putErr: errors.New("database is locked")}
	s := New(nil, p, log)

	require.NoError(t, s.Update(model.SettingCurrency, "EUR"))
	s.Wait()

	assert.Equal(t, "EUR", s.Get().Currency)
	assert.Equal(t, 1, p.puts)
	entries := logs.FilterMessage("persisting setting").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestStore_ReconcileOverwritesOnlyPresentKeys(t *testing.T) {
	p := &memPersister{values: map[string]string{
		"theme":        "light",
		"current_year": "2023",
	}}
	s := New(nil, p, logger.Nop())
	require.NoError(t, s.Update(model.SettingCurrency, "GBP"))
	s.Wait()

	s.Reconcile(context.Background())
	s.Wait()

	got := s.Get()
	assert.Equal(t, model.ThemeLight, got.Theme)
	assert.Equal(t, 2023, got.CurrentYear)
	assert.Equal(t, "GBP", got.Currency)
	assert.Equal(t, model.DefaultDateFormat, got.DateFormat)
}

func TestStore_ReconcileKeepsConcurrentUpdate(t *testing.T) {
	p := &gatedPersister{
		memPersister: memPersister{values: map[string]string{
			"theme":        "light",
			"current_year": "2023",
		}},
		getStarted: make(chan struct{}),
		getGate:    make(chan struct{}),
	}
	s := New(nil, p, logger.Nop())

	s.Reconcile(context.Background())
	<-p.getStarted
	require.NoError(t, s.Update(model.SettingTheme, "dark"))
	close(p.getGate)
	s.Wait()

	got := s.Get()
	assert.Equal(t, model.ThemeDark, got.Theme)
	assert.Equal(t, 2023, got.CurrentYear)
	assert.Equal(t, "dark", p.values["theme"])
}

func TestStore_ReconcileKeepsUnwrittenUpdate(t *testing.T) {
	p := &gatedPersister{
		memPersister: memPersister{values: map[string]string{"currency": "USD"}},
		putGate:      make(chan struct{}),
	}
	s := New(nil, p, logger.Nop())

	require.NoError(t, s.Update(model.SettingCurrency, "EUR"))
	s.Reconcile(context.Background())
	close(p.putGate)
	s.Wait()

	assert.Equal(t, "EUR", s.Get().Currency)
	assert.Equal(t, "EUR", p.values["currency"])
}

func TestStore_ReconcileFailureKeepsCurrent(t *testing.T) {
	log, logs := observedLogger()
	p := &memPersister{getErr: errors.New("no such table: settings")}
	s := New(nil, p, log)

	s.Reconcile(context.Background())
	s.Wait()

	assert.Equal(t, model.DefaultSettings().Theme, s.Get().Theme)
	assert.Equal(t, 1, logs.FilterMessage("loading settings").Len())
}

func TestStore_InitializesFromCache(t *testing.T) {
	cache := NewFileCache(filepath.Join(t.TempDir(), "nested", "settings.yaml"))
	saved := model.DefaultSettings()
	saved.Theme = model.ThemeDark
	saved.SidebarCollapsed = true
	saved.DefaultReminderDays = 14
	require.NoError(t, cache.Save(saved))

	s := New(cache, nil, logger.Nop())
	got := s.Get()
	assert.Equal(t, model.ThemeDark, got.Theme)
	assert.True(t, got.SidebarCollapsed)
	assert.Equal(t, 14, got.DefaultReminderDays)
}

func TestFileCache_MissingFileYieldsDefaults(t *testing.T) {
	cache := NewFileCache(filepath.Join(t.TempDir(), "absent.yaml"))
	got, err := cache.Load()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), got)
}

func TestStore_SubscribeReceivesLatest(t *testing.T) {
	s := New(nil, nil, logger.Nop())
	ch := s.Subscribe()

	require.NoError(t, s.Update(model.SettingTheme, "dark"))
	require.NoError(t, s.Update(model.SettingTheme, "light"))

	select {
	case got := <-ch:
		assert.Equal(t, model.ThemeLight, got.Theme)
	case <-time.After(time.Second):
		t.Fatal("no settings notification")
	}
	s.Wait()
}

func TestHandlePersister_RoundTrip(t *testing.T) {
	st := testutil.NewTestStore(t)
	p := HandlePersister{Handle: testutil.NewTestHandle(t, st)}
	s := New(nil, p, logger.Nop())

	require.NoError(t, s.Update(model.SettingDateFormat, "YYYY-MM-DD"))
	s.Wait()

	stored, err := st.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "YYYY-MM-DD", stored["date_format"])

	fresh := New(nil, p, logger.Nop())
	fresh.Reconcile(context.Background())
	fresh.Wait()
	assert.Equal(t, "YYYY-MM-DD", fresh.Get().DateFormat)
}
