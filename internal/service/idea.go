package service

import (
	"context"

	"github.com/nhle/gift-tracker/internal/idgen"
	"github.com/nhle/gift-tracker/internal/logger"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/store"
)

// IdeaService reads and creates gift ideas.
type IdeaService struct {
	base
}

// NewIdeaService returns an IdeaService on the shared handle.
func NewIdeaService(h *store.Handle, log *logger.Logger) *IdeaService {
	return &IdeaService{base: newBase(h, log, "ideas")}
}

// GetAll returns every non-deleted idea, newest first.
func (s *IdeaService) GetAll(ctx context.Context) ([]model.Idea, error) {
	st, err := s.handle.Store(ctx)
	if err != nil {
		s.log.Error("opening store", "error", err)
		return nil, err
	}
	ideas, err := st.GetIdeas(ctx)
	if err != nil {
		s.log.Error("listing ideas", "error", err)
		return nil, err
	}
	return ideas, nil
}

// Create stores an idea. The "none" recipient or category selection is
// stored as no reference, and a zero priority becomes the default.
func (s *IdeaService) Create(ctx context.Context, in model.Idea) (model.Idea, error) {
	now := s.now()
	i := in
	i.ID = idgen.New(idgen.PrefixIdea)
	i.CreatedAt = now
	i.UpdatedAt = now
	i.DeletedAt = nil
	if i.RecipientID == model.NoneSentinel {
		i.RecipientID = ""
	}
	if i.CategoryID == model.NoneSentinel {
		i.CategoryID = ""
	}
	if i.Priority == 0 {
		i.Priority = model.DefaultPriority
	}
	if i.Tags == nil {
		i.Tags = []string{}
	}

	st, err := s.handle.Store(ctx)
	if err != nil {
		s.log.Error("opening store", "error", err)
		return model.Idea{}, err
	}
	if err := st.CreateIdea(ctx, i); err != nil {
		s.log.Error("creating idea", "name", i.Name, "error", err)
		return model.Idea{}, err
	}
	return i, nil
}
