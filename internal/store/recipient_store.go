package store

import (
	"context"
	"fmt"

	"github.com/nhle/gift-tracker/internal/model"
)

// CreateRecipient inserts a recipient. Only the columns of the recipient's
// variant are written; the others stay NULL.
func (s *SQLiteStore) CreateRecipient(ctx context.Context, r model.Recipient) error {
	variant, err := recipientVariantColumns(r)
	if err != nil {
		return fmt.Errorf("creating recipient: %w", err)
	}
	tags, err := encodeList(r.Tags)
	if err != nil {
		return fmt.Errorf("encoding recipient tags: %w", err)
	}

	args := []interface{}{
		r.ID, string(r.Type()), r.Name,
		nullString(r.Email), nullString(r.Phone),
		nullString(r.AddressLine1), nullString(r.AddressLine2),
		nullString(r.City), nullString(r.State), nullString(r.PostalCode),
		nullString(r.Country),
	}
	args = append(args, variant...)
	args = append(args,
		nullFloat(r.BudgetLimit), nullString(r.Interests), tags,
		nullString(r.AvatarPath), boolToInt(r.IsActive), nullString(r.Notes),
		formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
	)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recipients (
			id, type, name, email, phone,
			address_line1, address_line2, city, state, postal_code, country,
			birthday, relationship, family_members, primary_contact,
			organization_type, tax_id, contact_person, contact_title,
			budget_limit, interests, tags, avatar_path, is_active, notes,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("creating recipient: %w", err)
	}
	return nil
}

// GetRecipients returns all non-deleted recipients ordered by name.
func (s *SQLiteStore) GetRecipients(ctx context.Context) ([]model.Recipient, error) {
	rows, err := s.selectRows(ctx,
		"SELECT * FROM recipients WHERE deleted_at IS NULL ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("listing recipients: %w", err)
	}

	recipients := make([]model.Recipient, 0, len(rows))
	for _, row := range rows {
		r, err := MapRecipientRow(row)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, r)
	}
	return recipients, nil
}
