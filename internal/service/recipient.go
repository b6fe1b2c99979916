package service

import (
	"context"

	"github.com/nhle/gift-tracker/internal/idgen"
	"github.com/nhle/gift-tracker/internal/logger"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/store"
)

// RecipientService reads and creates recipients.
type RecipientService struct {
	base
}

// NewRecipientService returns a RecipientService on the shared handle.
func NewRecipientService(h *store.Handle, log *logger.Logger) *RecipientService {
	return &RecipientService{base: newBase(h, log, "recipients")}
}

// GetAll returns every non-deleted recipient ordered by name.
func (s *RecipientService) GetAll(ctx context.Context) ([]model.Recipient, error) {
	st, err := s.handle.Store(ctx)
	if err != nil {
		s.log.Error("opening store", "error", err)
		return nil, err
	}
	recipients, err := st.GetRecipients(ctx)
	if err != nil {
		s.log.Error("listing recipients", "error", err)
		return nil, err
	}
	return recipients, nil
}

// Create assigns an id and timestamps to in, stores it and returns the
// stored value. The recipient's variant decides which detail columns are
// written.
func (s *RecipientService) Create(ctx context.Context, in model.Recipient) (model.Recipient, error) {
	now := s.now()
	r := in
	r.ID = idgen.New(idgen.PrefixRecipient)
	r.CreatedAt = now
	r.UpdatedAt = now
	r.DeletedAt = nil
	if r.Country == "" {
		r.Country = model.DefaultCountry
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if fam, ok := r.Family(); ok && fam.FamilyMembers == nil {
		fam.FamilyMembers = []string{}
		r.Details = fam
	}

	st, err := s.handle.Store(ctx)
	if err != nil {
		s.log.Error("opening store", "error", err)
		return model.Recipient{}, err
	}
	if err := st.CreateRecipient(ctx, r); err != nil {
		s.log.Error("creating recipient", "name", r.Name, "type", r.Type(), "error", err)
		return model.Recipient{}, err
	}
	return r, nil
}
