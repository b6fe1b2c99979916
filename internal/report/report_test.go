package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/gift-tracker/internal/model"
)

func ptr(f float64) *float64 { return &f }

func recipient(id, name string, budget *float64) model.Recipient {
	return model.Recipient{
		RecipientBase: model.RecipientBase{ID: id, Name: name, BudgetLimit: budget},
		Details:       model.IndividualDetails{},
	}
}

func gift(id, recipientID string, price float64, status model.GiftStatus, year int) model.Gift {
	return model.Gift{ID: id, RecipientID: recipientID, Name: id, PurchasePrice: price, Status: status, Year: year}
}

func TestSpendingByRecipient(t *testing.T) {
	recipients := []model.Recipient{
		recipient("rec_a", "Alice", nil),
		recipient("rec_b", "Bob", nil),
		recipient("rec_c", "Cara", nil),
		recipient("rec_d", "Dev", nil),
	}
	gifts := []model.Gift{
		gift("g1", "rec_a", 10, model.GiftPurchased, 2025),
		gift("g2", "rec_a", 20, model.GiftWrapped, 2025),
		gift("g3", "rec_a", 5.50, model.GiftDelivered, 2025),
		gift("g4", "rec_b", 100, model.GiftShipped, 2025),
		gift("g5", "rec_d", 35.50, model.GiftPurchased, 2025),
	}

	got := SpendingByRecipient(recipients, gifts)
	require.Len(t, got, 3)

	assert.Equal(t, RecipientTotal{RecipientID: "rec_b", Name: "Bob", Total: 100}, got[0])
	assert.Equal(t, RecipientTotal{RecipientID: "rec_a", Name: "Alice", Total: 35.50}, got[1])
	assert.Equal(t, RecipientTotal{RecipientID: "rec_d", Name: "Dev", Total: 35.50}, got[2])
}

func TestStatusCounts(t *testing.T) {
	gifts := []model.Gift{
		gift("g1", "r", 1, model.GiftDelivered, 2025),
		gift("g2", "r", 1, "", 2025),
		gift("g3", "r", 1, model.GiftPurchased, 2025),
		gift("g4", "r", 1, model.GiftShipped, 2025),
	}

	assert.Equal(t, []StatusCount{
		{Status: model.GiftPurchased, Count: 2},
		{Status: model.GiftShipped, Count: 1},
		{Status: model.GiftDelivered, Count: 1},
	}, StatusCounts(gifts))

	assert.Empty(t, StatusCounts(nil))
}

func TestDashboard(t *testing.T) {
	recipients := []model.Recipient{
		recipient("rec_a", "Alice", ptr(100)),
		recipient("rec_b", "Bob", ptr(50)),
		recipient("rec_c", "Cara", nil),
	}
	deductible := gift("g3", "rec_b", 30, model.GiftDelivered, 2025)
	deductible.IsTaxDeductible = true
	gifts := []model.Gift{
		gift("g1", "rec_a", 40, model.GiftDelivered, 2025),
		gift("g2", "rec_a", 20, model.GiftWrapped, 2025),
		deductible,
		gift("g4", "rec_c", 999, model.GiftDelivered, 2024),
	}
	ideas := []model.Idea{
		{ID: "i1", Name: "Hat"},
		{ID: "i2", Name: "Mug", ConvertedToGiftID: "g2"},
	}

	stats := Dashboard(recipients, gifts, ideas, 2025)

	assert.Equal(t, 3, stats.TotalRecipients)
	assert.Equal(t, 3, stats.TotalGifts)
	assert.Equal(t, 90.0, stats.TotalSpent)
	assert.Equal(t, 30.0, stats.TaxDeductibleTotal)
	assert.Equal(t, 150.0, stats.BudgetTotal)
	assert.Equal(t, 60.0, stats.BudgetRemaining)
	assert.InDelta(t, 60.0, stats.BudgetPercent, 0.001)
	assert.Equal(t, 1, stats.RecipientsComplete)
	assert.Equal(t, 1, stats.OpenIdeas)
}

func TestRecipientsWithStats(t *testing.T) {
	recipients := []model.Recipient{
		recipient("rec_a", "Alice", ptr(50)),
		recipient("rec_b", "Bob", nil),
	}
	gifts := []model.Gift{
		gift("g1", "rec_a", 12.25, model.GiftDelivered, 2025),
		gift("g2", "rec_a", 7.75, model.GiftPurchased, 2025),
	}

	got := RecipientsWithStats(recipients, gifts)
	require.Len(t, got, 2)

	alice := got[0]
	assert.Equal(t, 2, alice.TotalGifts)
	assert.Equal(t, 1, alice.GiftsDelivered)
	assert.Equal(t, 20.0, alice.TotalSpent)
	require.NotNil(t, alice.BudgetRemaining)
	assert.Equal(t, 30.0, *alice.BudgetRemaining)
	assert.Equal(t, 50.0, alice.CompletionPercent)

	bob := got[1]
	assert.Zero(t, bob.TotalGifts)
	assert.Nil(t, bob.BudgetRemaining)
	assert.Zero(t, bob.CompletionPercent)
}

func TestFilterGifts(t *testing.T) {
	a := gift("g1", "rec_a", 10, model.GiftPurchased, 2025)
	a.Name = "Wool Scarf"
	a.OccasionID = "occ_christmas"
	b := gift("g2", "rec_b", 10, model.GiftShipped, 2025)
	b.Name = "Headphones"
	b.PurchaseLocation = "Electronics Barn"
	b.IsTaxDeductible = true
	c := gift("g3", "rec_a", 10, model.GiftPurchased, 2024)
	c.Name = "Scarf clip"
	gifts := []model.Gift{a, b, c}

	yes := true
	tests := []struct {
		name   string
		filter GiftFilter
		want   []string
	}{
		{"no filter", GiftFilter{}, []string{"g1", "g2", "g3"}},
		{"year", GiftFilter{Year: 2025}, []string{"g1", "g2"}},
		{"recipient", GiftFilter{RecipientID: "rec_a"}, []string{"g1", "g3"}},
		{"occasion", GiftFilter{OccasionID: "occ_christmas"}, []string{"g1"}},
		{"status", GiftFilter{Status: model.GiftShipped}, []string{"g2"}},
		{"tax deductible", GiftFilter{TaxDeductible: &yes}, []string{"g2"}},
		{"query name", GiftFilter{Query: "SCARF"}, []string{"g1", "g3"}},
		{"query location", GiftFilter{Query: "barn"}, []string{"g2"}},
		{"combined", GiftFilter{Year: 2024, Query: "scarf"}, []string{"g3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterGifts(gifts, tt.filter)
			ids := make([]string, len(got))
			for i, g := range got {
				ids[i] = g.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
