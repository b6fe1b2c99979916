package store

import (
	"context"
	"fmt"

	"github.com/nhle/gift-tracker/internal/model"
)

// CreateGift inserts a gift and its contributors in one transaction.
func (s *SQLiteStore) CreateGift(ctx context.Context, g model.Gift) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO gifts (
			id, recipient_id, occasion_id, category_id,
			name, description, year,
			purchase_price, purchase_location, purchase_date, purchase_url,
			status, wrapped_date, shipped_date, delivered_date,
			thank_you_received, thank_you_date,
			carrier, tracking_number, expected_delivery,
			is_tax_deductible, tax_category,
			is_split_gift, total_gift_cost, user_contribution,
			receipt_image_path, receipt_text, notes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.RecipientID, nullString(g.OccasionID), nullString(g.CategoryID),
		g.Name, nullString(g.Description), g.Year,
		g.PurchasePrice, nullString(g.PurchaseLocation), nullString(g.PurchaseDate), nullString(g.PurchaseURL),
		string(g.Status), nullString(g.WrappedDate), nullString(g.ShippedDate), nullString(g.DeliveredDate),
		boolToInt(g.ThankYouReceived), nullString(g.ThankYouDate),
		nullString(g.Carrier), nullString(g.TrackingNumber), nullString(g.ExpectedDelivery),
		boolToInt(g.IsTaxDeductible), nullString(g.TaxCategory),
		boolToInt(g.IsSplitGift), nullFloat(g.TotalGiftCost), nullFloat(g.UserContribution),
		nullString(g.ReceiptImagePath), nullString(g.ReceiptText), nullString(g.Notes),
		formatTime(g.CreatedAt), formatTime(g.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("creating gift: %w", err)
	}

	for _, c := range g.Contributors {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO gift_contributors (
				id, gift_id, contributor_name, contribution_amount,
				is_current_user, has_paid, notes, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, g.ID, c.ContributorName, c.ContributionAmount,
			boolToInt(c.IsCurrentUser), boolToInt(c.HasPaid), nullString(c.Notes),
			formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("creating contributor for gift %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing gift: %w", err)
	}
	return nil
}

// GetGifts returns all non-deleted gifts, newest first, with their
// contributors attached.
func (s *SQLiteStore) GetGifts(ctx context.Context) ([]model.Gift, error) {
	rows, err := s.selectRows(ctx,
		"SELECT * FROM gifts WHERE deleted_at IS NULL ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("listing gifts: %w", err)
	}

	gifts := make([]model.Gift, 0, len(rows))
	for _, row := range rows {
		g, err := MapGiftRow(row)
		if err != nil {
			return nil, err
		}
		g.Contributors = []model.GiftContributor{}
		gifts = append(gifts, g)
	}
	if len(gifts) == 0 {
		return gifts, nil
	}

	byGift, err := s.contributorsByGift(ctx)
	if err != nil {
		return nil, err
	}
	for i := range gifts {
		if cs, ok := byGift[gifts[i].ID]; ok {
			gifts[i].Contributors = cs
		}
	}
	return gifts, nil
}

// contributorsByGift loads every contributor grouped by gift id.
func (s *SQLiteStore) contributorsByGift(
	ctx context.Context,
) (map[string][]model.GiftContributor, error) {
	rows, err := s.selectRows(ctx,
		"SELECT * FROM gift_contributors ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing contributors: %w", err)
	}

	out := make(map[string][]model.GiftContributor)
	for _, row := range rows {
		c, err := MapContributorRow(row)
		if err != nil {
			return nil, err
		}
		out[c.GiftID] = append(out[c.GiftID], c)
	}
	return out, nil
}
