package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/gift-tracker/internal/model"
)

func TestModel_LoadingUntilData(t *testing.T) {
	m := New(120, 40)
	assert.True(t, m.Loading())
	assert.Contains(t, m.View(), "Loading dashboard")
}

func TestModel_SetData(t *testing.T) {
	budget := 100.0
	settings := model.DefaultSettings()
	settings.CurrentYear = 2025
	now := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)

	m := New(120, 40)
	m.SetData(Data{
		Recipients: []model.Recipient{{
			RecipientBase: model.RecipientBase{ID: "rec_1", Name: "Alice", BudgetLimit: &budget, IsActive: true},
			Details:       model.IndividualDetails{Birthday: "1990-12-22"},
		}},
		Gifts: []model.Gift{
			{ID: "g1", RecipientID: "rec_1", Name: "Scarf", Year: 2025, PurchasePrice: 10, Status: model.GiftPurchased},
			{ID: "g2", RecipientID: "rec_1", Name: "Book", Year: 2025, PurchasePrice: 20, Status: model.GiftPurchased},
			{ID: "g3", RecipientID: "rec_1", Name: "Mug", Year: 2024, PurchasePrice: 5.5, Status: model.GiftDelivered},
		},
		Ideas:    []model.Idea{{ID: "i1", Name: "Kite"}},
		Settings: settings,
		Now:      now,
	})

	assert.False(t, m.Loading())
	stats := m.Stats()
	assert.Equal(t, 2, stats.TotalGifts)
	assert.Equal(t, 30.0, stats.TotalSpent)
	assert.Equal(t, 1, stats.OpenIdeas)

	view := m.View()
	assert.Contains(t, view, "$30.00")
	assert.Contains(t, view, "Scarf")
	assert.Contains(t, view, "Alice's birthday")
}
