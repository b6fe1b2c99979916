package store

import (
	"context"
	"fmt"

	"github.com/nhle/gift-tracker/internal/model"
)

// CreateIdea inserts an idea.
func (s *SQLiteStore) CreateIdea(ctx context.Context, i model.Idea) error {
	tags, err := encodeList(i.Tags)
	if err != nil {
		return fmt.Errorf("encoding idea tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ideas (
			id, recipient_id, category_id, name, description,
			estimated_price, source_url, priority,
			converted_to_gift_id, converted_at, notes, tags,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, nullString(i.RecipientID), nullString(i.CategoryID), i.Name, nullString(i.Description),
		nullFloat(i.EstimatedPrice), nullString(i.SourceURL), i.Priority,
		nullString(i.ConvertedToGiftID), nullString(i.ConvertedAt), nullString(i.Notes), tags,
		formatTime(i.CreatedAt), formatTime(i.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("creating idea: %w", err)
	}
	return nil
}

// GetIdeas returns all non-deleted ideas, newest first.
func (s *SQLiteStore) GetIdeas(ctx context.Context) ([]model.Idea, error) {
	rows, err := s.selectRows(ctx,
		"SELECT * FROM ideas WHERE deleted_at IS NULL ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("listing ideas: %w", err)
	}

	ideas := make([]model.Idea, 0, len(rows))
	for _, row := range rows {
		i, err := MapIdeaRow(row)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, i)
	}
	return ideas, nil
}
