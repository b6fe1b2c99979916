package service

import (
	"context"

	"github.com/nhle/gift-tracker/internal/logger"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/store"
)

// LookupService serves the seeded occasion and category lists.
type LookupService struct {
	base
}

// NewLookupService returns a LookupService on the shared handle.
func NewLookupService(h *store.Handle, log *logger.Logger) *LookupService {
	return &LookupService{base: newBase(h, log, "lookups")}
}

func (s *LookupService) Occasions(ctx context.Context) ([]model.Occasion, error) {
	st, err := s.handle.Store(ctx)
	if err != nil {
		s.log.Error("opening store", "error", err)
		return nil, err
	}
	occasions, err := st.GetOccasions(ctx)
	if err != nil {
		s.log.Error("listing occasions", "error", err)
		return nil, err
	}
	return occasions, nil
}

func (s *LookupService) Categories(ctx context.Context) ([]model.Category, error) {
	st, err := s.handle.Store(ctx)
	if err != nil {
		s.log.Error("opening store", "error", err)
		return nil, err
	}
	categories, err := st.GetCategories(ctx)
	if err != nil {
		s.log.Error("listing categories", "error", err)
		return nil, err
	}
	return categories, nil
}
