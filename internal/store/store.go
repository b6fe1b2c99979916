package store

import (
	"context"

	"github.com/nhle/gift-tracker/internal/model"
)

// Store defines the persistence interface for recipients, gifts, ideas,
// reference lookups and settings. Records passed to Create* are complete:
// ids, timestamps and defaults are assigned by the caller.
type Store interface {
	// === Recipients ===

	CreateRecipient(ctx context.Context, r model.Recipient) error
	GetRecipients(ctx context.Context) ([]model.Recipient, error)

	// === Gifts ===

	// CreateGift inserts the gift and its contributors atomically.
	CreateGift(ctx context.Context, g model.Gift) error
	GetGifts(ctx context.Context) ([]model.Gift, error)

	// === Ideas ===

	CreateIdea(ctx context.Context, i model.Idea) error
	GetIdeas(ctx context.Context) ([]model.Idea, error)

	// === Lookups ===

	GetOccasions(ctx context.Context) ([]model.Occasion, error)
	GetCategories(ctx context.Context) ([]model.Category, error)

	// === Settings ===

	GetSettings(ctx context.Context) (map[string]string, error)
	PutSetting(ctx context.Context, key, value string) error
}
