package service

import (
	"context"

	"github.com/nhle/gift-tracker/internal/idgen"
	"github.com/nhle/gift-tracker/internal/logger"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/store"
)

// GiftService reads and creates gifts.
type GiftService struct {
	base
}

// NewGiftService returns a GiftService on the shared handle.
func NewGiftService(h *store.Handle, log *logger.Logger) *GiftService {
	return &GiftService{base: newBase(h, log, "gifts")}
}

// GetAll returns every non-deleted gift, newest first, with contributors.
func (s *GiftService) GetAll(ctx context.Context) ([]model.Gift, error) {
	st, err := s.handle.Store(ctx)
	if err != nil {
		s.log.Error("opening store", "error", err)
		return nil, err
	}
	gifts, err := st.GetGifts(ctx)
	if err != nil {
		s.log.Error("listing gifts", "error", err)
		return nil, err
	}
	return gifts, nil
}

// Create stores a gift and its contributors. A missing status becomes
// purchased and a missing year becomes the current year.
func (s *GiftService) Create(ctx context.Context, in model.Gift) (model.Gift, error) {
	now := s.now()
	g := in
	g.ID = idgen.New(idgen.PrefixGift)
	g.CreatedAt = now
	g.UpdatedAt = now
	g.DeletedAt = nil
	if g.Status == "" {
		g.Status = model.GiftPurchased
	}
	if g.Year == 0 {
		g.Year = now.Year()
	}

	contributors := make([]model.GiftContributor, 0, len(in.Contributors))
	for _, c := range in.Contributors {
		c.ID = idgen.New(idgen.PrefixContributor)
		c.GiftID = g.ID
		c.CreatedAt = now
		c.UpdatedAt = now
		contributors = append(contributors, c)
	}
	g.Contributors = contributors

	st, err := s.handle.Store(ctx)
	if err != nil {
		s.log.Error("opening store", "error", err)
		return model.Gift{}, err
	}
	if err := st.CreateGift(ctx, g); err != nil {
		s.log.Error("creating gift", "name", g.Name, "recipient_id", g.RecipientID, "error", err)
		return model.Gift{}, err
	}
	return g, nil
}
