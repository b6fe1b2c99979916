// Package service holds the entity services the UI talks to. Each call
// fetches the shared store from the handle, runs one store operation and
// logs failures before returning them unchanged.
package service

import (
	"time"

	"github.com/nhle/gift-tracker/internal/logger"
	"github.com/nhle/gift-tracker/internal/store"
)

// base carries the dependencies shared by every service.
type base struct {
	handle *store.Handle
	log    *logger.Logger
	now    func() time.Time
}

func newBase(h *store.Handle, log *logger.Logger, name string) base {
	if log == nil {
		log = logger.Nop()
	}
	return base{
		handle: h,
		log:    log.With("service", name),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Services bundles the entity services built on one handle.
type Services struct {
	Recipients *RecipientService
	Gifts      *GiftService
	Ideas      *IdeaService
	Lookups    *LookupService
}

// New builds every service on the shared handle.
func New(h *store.Handle, log *logger.Logger) *Services {
	return &Services{
		Recipients: NewRecipientService(h, log),
		Gifts:      NewGiftService(h, log),
		Ideas:      NewIdeaService(h, log),
		Lookups:    NewLookupService(h, log),
	}
}
