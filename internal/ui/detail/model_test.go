package detail

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/gift-tracker/internal/keys"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/report"
)

var testContext = Context{
	Currency:   "USD",
	DateFormat: "YYYY-MM-DD",
	Now:        time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
	Recipients: map[string]string{"rec_1": "Alice"},
	Occasions:  map[string]string{"occ_christmas": "Christmas"},
	Categories: map[string]string{},
}

func fieldValue(s Sheet, label string) string {
	for _, f := range s.Fields {
		if f.Label == label {
			return f.Value
		}
	}
	return ""
}

func TestGiftSheet(t *testing.T) {
	total := 90.0
	s := GiftSheet(model.Gift{
		RecipientID:   "rec_1",
		OccasionID:    "occ_christmas",
		Name:          "Cookbook",
		Year:          2025,
		PurchasePrice: 1234.5,
		Status:        model.GiftShipped,
		Carrier:       model.CarrierUPS,
		IsSplitGift:   true,
		TotalGiftCost: &total,
		Contributors: []model.GiftContributor{
			{ContributorName: "Bob", ContributionAmount: 60, HasPaid: true},
		},
	}, testContext)

	assert.Equal(t, "Cookbook", s.Title)
	assert.Equal(t, "Alice", fieldValue(s, "For"))
	assert.Equal(t, "Christmas", fieldValue(s, "Occasion"))
	assert.Equal(t, "$1,234.50", fieldValue(s, "Price"))
	assert.Equal(t, "UPS", fieldValue(s, "Carrier"))
	assert.Equal(t, "$90.00", fieldValue(s, "Total cost"))
	require.NotEmpty(t, s.Sections)
	assert.Equal(t, "Contributors", s.Sections[0].Title)
	assert.Contains(t, s.Sections[0].Rows[0], "Bob")
	assert.Empty(t, s.RecipientID)
}

func TestRecipientSheet_Birthday(t *testing.T) {
	rec := model.Recipient{
		RecipientBase: model.RecipientBase{ID: "rec_1", Name: "Alice", IsActive: true},
		Details:       model.IndividualDetails{Birthday: "1990-12-25", Relationship: "Sister"},
	}
	gifts := []model.Gift{{RecipientID: "rec_1", Name: "Scarf", Year: 2025, PurchasePrice: 20, Status: model.GiftDelivered}}
	stats := report.RecipientsWithStats([]model.Recipient{rec}, gifts)[0]

	s := RecipientSheet(stats, gifts, testContext)
	assert.Equal(t, "rec_1", s.RecipientID)
	assert.Equal(t, "1990-12-25 (in 5 days)", fieldValue(s, "Birthday"))
	assert.Equal(t, "1 (1 delivered)", fieldValue(s, "Gifts"))
	assert.Equal(t, "Gifts", s.Sections[0].Title)
	assert.Len(t, s.Sections[0].Rows, 1)
}

func TestIdeaSheet_General(t *testing.T) {
	s := IdeaSheet(model.Idea{Name: "Kite", Priority: 4}, testContext)
	assert.Equal(t, "General idea", fieldValue(s, "For"))
	assert.Empty(t, s.RecipientID)
}

func TestModel_Keys(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	assert.Contains(t, m.View(), "Nothing selected")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())

	m.SetSheet(Sheet{Title: "Alice", RecipientID: "rec_1", Fields: []Field{{"Email", "a@example.com"}, {"Phone", ""}}})
	view := m.View()
	assert.Contains(t, view, "Alice")
	assert.Contains(t, view, "a@example.com")
	assert.NotContains(t, view, "Phone")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	require.NotNil(t, cmd)
	assert.Equal(t, NewGiftForMsg{RecipientID: "rec_1"}, cmd())
}
