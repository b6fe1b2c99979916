package store

import (
	"context"
	"fmt"

	"github.com/nhle/gift-tracker/internal/model"
)

// GetOccasions returns the non-deleted occasions in display order.
func (s *SQLiteStore) GetOccasions(ctx context.Context) ([]model.Occasion, error) {
	rows, err := s.selectRows(ctx,
		"SELECT * FROM occasions WHERE deleted_at IS NULL ORDER BY sort_order ASC, name ASC")
	if err != nil {
		return nil, fmt.Errorf("listing occasions: %w", err)
	}

	occasions := make([]model.Occasion, 0, len(rows))
	for _, row := range rows {
		occasions = append(occasions, MapOccasionRow(row))
	}
	return occasions, nil
}

// GetCategories returns the non-deleted categories in display order.
func (s *SQLiteStore) GetCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.selectRows(ctx,
		"SELECT * FROM categories WHERE deleted_at IS NULL ORDER BY sort_order ASC, name ASC")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	categories := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, MapCategoryRow(row))
	}
	return categories, nil
}
