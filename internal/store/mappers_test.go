package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/gift-tracker/internal/model"
)

func TestMapRecipientRow_Variants(t *testing.T) {
	base := func(typ string) Row {
		return Row{
			"id":         "rec_1",
			"type":       typ,
			"name":       "Alice",
			"is_active":  int64(1),
			"created_at": "2025-01-02T03:04:05.000000000Z",
			"updated_at": "2025-01-02T03:04:05.000000000Z",
		}
	}

	t.Run("individual", func(t *testing.T) {
		row := base("individual")
		row["birthday"] = "1990-05-01"
		row["relationship"] = "Friend"

		r, err := MapRecipientRow(row)
		require.NoError(t, err)
		assert.Equal(t, model.RecipientIndividual, r.Type())
		d, ok := r.Individual()
		require.True(t, ok)
		assert.Equal(t, "1990-05-01", d.Birthday)
		assert.Equal(t, "Friend", d.Relationship)
		assert.True(t, r.IsActive)
		assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), r.CreatedAt)
	})

	t.Run("family", func(t *testing.T) {
		row := base("family")
		row["family_members"] = `["Bob","Carol"]`
		row["primary_contact"] = "Bob"

		r, err := MapRecipientRow(row)
		require.NoError(t, err)
		d, ok := r.Family()
		require.True(t, ok)
		assert.Equal(t, []string{"Bob", "Carol"}, d.FamilyMembers)
		assert.Equal(t, "Bob", d.PrimaryContact)
	})

	t.Run("organization", func(t *testing.T) {
		row := base("organization")
		row["organization_type"] = "charity"
		row["tax_id"] = "12-345"
		row["contact_person"] = "Dana"
		row["contact_title"] = "Director"

		r, err := MapRecipientRow(row)
		require.NoError(t, err)
		d, ok := r.Organization()
		require.True(t, ok)
		assert.Equal(t, model.OrganizationDetails{
			OrganizationType: "charity",
			TaxID:            "12-345",
			ContactPerson:    "Dana",
			ContactTitle:     "Director",
		}, d)
	})
}

func TestMapRecipientRow_Defaults(t *testing.T) {
	r, err := MapRecipientRow(Row{
		"id":   "rec_1",
		"type": "individual",
		"name": "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, model.DefaultCountry, r.Country)
	assert.NotNil(t, r.Tags)
	assert.Empty(t, r.Tags)
	assert.False(t, r.IsActive)
	assert.Nil(t, r.BudgetLimit)
	assert.Nil(t, r.DeletedAt)
	assert.Equal(t, "", r.Email)
}

func TestMapRecipientRow_UnknownType(t *testing.T) {
	_, err := MapRecipientRow(Row{"id": "rec_1", "type": "robot", "name": "R2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownRecipientType)
	assert.Contains(t, err.Error(), "robot")
}

func TestMapRecipientRow_MalformedTags(t *testing.T) {
	_, err := MapRecipientRow(Row{
		"id":   "rec_1",
		"type": "individual",
		"name": "Alice",
		"tags": "not json",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tags")
}

func TestMapGiftRow_Booleans(t *testing.T) {
	tests := []struct {
		name string
		val  interface{}
		want bool
	}{
		{"one", int64(1), true},
		{"zero", int64(0), false},
		{"null", nil, false},
		{"other non-zero", int64(7), true},
		{"float", float64(1), true},
		{"text", "1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := MapGiftRow(Row{
				"id":                "gift_1",
				"is_tax_deductible": tt.val,
				"is_split_gift":     tt.val,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.IsTaxDeductible)
			assert.Equal(t, tt.want, g.IsSplitGift)
		})
	}
}

func TestMapGiftRow_Fields(t *testing.T) {
	g, err := MapGiftRow(Row{
		"id":              "gift_1",
		"recipient_id":    "rec_1",
		"name":            "Scarf",
		"year":            int64(2024),
		"purchase_price":  float64(19.99),
		"status":          "shipped",
		"carrier":         "ups",
		"total_gift_cost": int64(100),
		"created_at":      "2024-12-01 10:00:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "rec_1", g.RecipientID)
	assert.Equal(t, 2024, g.Year)
	assert.InDelta(t, 19.99, g.PurchasePrice, 0.0001)
	assert.Equal(t, model.GiftShipped, g.Status)
	require.NotNil(t, g.TotalGiftCost)
	assert.Equal(t, 100.0, *g.TotalGiftCost)
	assert.Nil(t, g.UserContribution)
	assert.Equal(t, time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC), g.CreatedAt)
}

func TestMapIdeaRow_Defaults(t *testing.T) {
	i, err := MapIdeaRow(Row{"id": "idea_1", "name": "Book"})
	require.NoError(t, err)

	assert.Equal(t, model.DefaultPriority, i.Priority)
	assert.NotNil(t, i.Tags)
	assert.Empty(t, i.Tags)
	assert.True(t, i.IsGeneral())
	assert.Nil(t, i.EstimatedPrice)
}

func TestMapIdeaRow_Tags(t *testing.T) {
	i, err := MapIdeaRow(Row{
		"id":       "idea_1",
		"name":     "Book",
		"priority": int64(5),
		"tags":     []byte(`["reading","fiction"]`),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, i.Priority)
	assert.Equal(t, []string{"reading", "fiction"}, i.Tags)
}

func TestMapLookupRows(t *testing.T) {
	o := MapOccasionRow(Row{
		"id":            "occ_christmas",
		"name":          "Christmas",
		"is_recurring":  int64(1),
		"default_month": int64(12),
		"sort_order":    int64(1),
	})
	assert.True(t, o.IsRecurring)
	assert.Equal(t, 12, o.DefaultMonth)

	c := MapCategoryRow(Row{"id": "cat_books", "name": "Books & Media", "sort_order": int64(5)})
	assert.Equal(t, "Books & Media", c.Name)
	assert.Equal(t, 5, c.SortOrder)
}

func TestRecipientVariantColumns(t *testing.T) {
	cols, err := recipientVariantColumns(model.Recipient{
		Details: model.FamilyDetails{PrimaryContact: "Bob"},
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{nil, nil, "[]", "Bob", nil, nil, nil, nil}, cols)

	_, err = recipientVariantColumns(model.Recipient{})
	assert.ErrorIs(t, err, model.ErrUnknownRecipientType)
}
