package reports

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/nhle/gift-tracker/internal/model"
)

func testData() ([]model.Recipient, []model.Gift) {
	budget := 50.0
	recipients := []model.Recipient{
		{RecipientBase: model.RecipientBase{ID: "rec_a", Name: "Alice", BudgetLimit: &budget}, Details: model.IndividualDetails{}},
		{RecipientBase: model.RecipientBase{ID: "rec_b", Name: "Bob"}, Details: model.IndividualDetails{}},
		{RecipientBase: model.RecipientBase{ID: "rec_c", Name: "Cleo"}, Details: model.FamilyDetails{}},
	}
	gifts := []model.Gift{
		{RecipientID: "rec_a", Year: 2025, PurchasePrice: 10, Status: model.GiftPurchased},
		{RecipientID: "rec_a", Year: 2025, PurchasePrice: 20, Status: model.GiftDelivered},
		{RecipientID: "rec_b", Year: 2025, PurchasePrice: 5.5, Status: model.GiftShipped},
		{RecipientID: "rec_c", Year: 2024, PurchasePrice: 99, Status: model.GiftDelivered},
	}
	return recipients, gifts
}

func TestSpendingTable(t *testing.T) {
	recipients, gifts := testData()
	out := SpendingTable(recipients, gifts[:3], "USD").Render()

	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "$30.00")
	assert.Contains(t, out, "$20.00")
	assert.Contains(t, out, "$5.50")
	assert.Contains(t, out, "$35.50")
	assert.NotContains(t, out, "Cleo")
}

func TestModel_YearNavigation(t *testing.T) {
	recipients, gifts := testData()
	m := New(100, 40)
	assert.Contains(t, m.View(), "Loading reports")

	m.SetData(recipients, gifts)
	m.SetPreferences(2025, "USD")
	assert.Contains(t, m.View(), "Alice")
	assert.NotContains(t, m.View(), "Cleo")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2024, m.Year())
	view := m.View()
	assert.Contains(t, view, "Cleo")
	assert.Contains(t, view, "Delivered")
}
