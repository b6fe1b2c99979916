package reports

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/gift-tracker/internal/format"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/report"
	"github.com/nhle/gift-tracker/internal/theme"
)

// Model is the reports view: spending per recipient and the status mix for
// the selected year.
type Model struct {
	loading    bool
	recipients []model.Recipient
	gifts      []model.Gift
	year       int
	currency   string
	width      int
	height     int
}

// New creates the reports view in its loading state.
func New(width, height int) Model {
	return Model{
		loading:  true,
		currency: model.DefaultCurrency,
		width:    width,
		height:   height,
	}
}

// SetData replaces the data the reports are computed from.
func (m *Model) SetData(recipients []model.Recipient, gifts []model.Gift) {
	m.loading = false
	m.recipients = recipients
	m.gifts = gifts
}

// SetPreferences sets the reported year (0 for all years) and currency.
func (m *Model) SetPreferences(year int, currency string) {
	m.year = year
	m.currency = currency
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the reports view. The year can be stepped
// with the arrow keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.year != 0 {
		switch msg.String() {
		case "left", "h":
			m.year--
		case "right", "l":
			m.year++
		}
	}
	return m, nil
}

// Year returns the reported year.
func (m Model) Year() int {
	return m.year
}

// View renders the reports.
func (m Model) View() string {
	if m.loading {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Loading reports...")
	}

	gifts := report.FilterGifts(m.gifts, report.GiftFilter{Year: m.year})

	title := "All years"
	if m.year != 0 {
		title = strconv.Itoa(m.year) + theme.HelpStyle.Render("  ←/→ change year")
	}

	sections := []string{
		theme.SectionTitleStyle.Render("Spending " + title),
		SpendingTable(m.recipients, gifts, m.currency).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
			StyleFunc(func(row, col int) lipgloss.Style {
				s := lipgloss.NewStyle().Padding(0, 1)
				if row == table.HeaderRow {
					return s.Bold(true).Foreground(theme.ColorBlue)
				}
				if col >= 2 {
					return s.Align(lipgloss.Right)
				}
				return s
			}).
			Render(),
		"",
		theme.SectionTitleStyle.Render("Status"),
	}

	counts := report.StatusCounts(gifts)
	if len(counts) == 0 {
		sections = append(sections, theme.MutedStyle.Render("No gifts in this period."))
	}
	barWidth := max(min(m.width-30, 40), 10)
	for _, c := range counts {
		sections = append(sections, fmt.Sprintf("%-10s %s %d",
			c.Status.Label(),
			theme.Bar(float64(c.Count)/float64(len(gifts)), barWidth, theme.StatusColor(c.Status)),
			c.Count,
		))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SpendingTable tabulates spending per recipient, biggest first, with a
// total row. gifts should already be narrowed to the reported period.
func SpendingTable(recipients []model.Recipient, gifts []model.Gift, currency string) *table.Table {
	stats := make(map[string]report.RecipientStats, len(recipients))
	for _, rs := range report.RecipientsWithStats(recipients, gifts) {
		stats[rs.Recipient.ID] = rs
	}

	t := table.New().Headers("Recipient", "Type", "Gifts", "Spent", "Remaining")

	var total float64
	var count int
	for _, rt := range report.SpendingByRecipient(recipients, gifts) {
		rs := stats[rt.RecipientID]
		remaining := ""
		if rs.BudgetRemaining != nil {
			remaining = format.Currency(*rs.BudgetRemaining, currency)
		}
		t.Row(
			rt.Name,
			rs.Recipient.Type().Label(),
			strconv.Itoa(rs.TotalGifts),
			format.Currency(rt.Total, currency),
			remaining,
		)
		total += rt.Total
		count += rs.TotalGifts
	}
	t.Row("Total", "", strconv.Itoa(count), format.Currency(total, currency), "")
	return t
}
