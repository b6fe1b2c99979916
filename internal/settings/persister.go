package settings

import (
	"context"

	"github.com/nhle/gift-tracker/internal/store"
)

// Persister is the durable settings table.
type Persister interface {
	GetSettings(ctx context.Context) (map[string]string, error)
	PutSetting(ctx context.Context, key, value string) error
}

// HandlePersister stores settings through the shared store handle.
type HandlePersister struct {
	Handle *store.Handle
}

func (p HandlePersister) GetSettings(ctx context.Context) (map[string]string, error) {
	s, err := p.Handle.Store(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetSettings(ctx)
}

func (p HandlePersister) PutSetting(ctx context.Context, key, value string) error {
	s, err := p.Handle.Store(ctx)
	if err != nil {
		return err
	}
	return s.PutSetting(ctx, key, value)
}
