package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/format"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/report"
	"github.com/nhle/gift-tracker/internal/theme"
)

// recentCount is how many of the newest gifts the dashboard lists.
const recentCount = 5

// Data is everything the dashboard summarizes.
type Data struct {
	Recipients []model.Recipient
	Gifts      []model.Gift
	Ideas      []model.Idea
	Occasions  []model.Occasion
	Settings   model.AppSettings
	Now        time.Time
}

// Model is the dashboard view.
type Model struct {
	loading  bool
	stats    report.DashboardStats
	recent   []model.Gift
	upcoming []report.Reminder
	names    map[string]string
	settings model.AppSettings
	now      time.Time
	width    int
	height   int
}

// New creates a dashboard in its loading state.
func New(width, height int) Model {
	return Model{
		loading:  true,
		settings: model.DefaultSettings(),
		width:    width,
		height:   height,
	}
}

// SetData recomputes the dashboard.
func (m *Model) SetData(d Data) {
	m.loading = false
	m.settings = d.Settings
	m.now = d.Now
	m.stats = report.Dashboard(d.Recipients, d.Gifts, d.Ideas, d.Settings.CurrentYear)

	m.names = make(map[string]string, len(d.Recipients))
	for _, r := range d.Recipients {
		m.names[r.ID] = r.Name
	}

	// gifts arrive newest first
	m.recent = d.Gifts
	if len(m.recent) > recentCount {
		m.recent = m.recent[:recentCount]
	}
	m.upcoming = report.Upcoming(d.Recipients, d.Occasions, d.Now, d.Settings.DefaultReminderDays)
}

// Stats returns the computed headline numbers.
func (m Model) Stats() report.DashboardStats {
	return m.stats
}

// Loading reports whether data has not arrived yet.
func (m Model) Loading() bool {
	return m.loading
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) money(v float64) string {
	return format.Currency(v, m.settings.Currency)
}

// View renders the dashboard.
func (m Model) View() string {
	if m.loading {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Loading dashboard...")
	}

	s := m.stats
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Spent in "+fmt.Sprint(s.Year), m.money(s.TotalSpent)),
		card("Gifts", format.Number(float64(s.TotalGifts))),
		card("Recipients", fmt.Sprintf("%d (%d done)", s.TotalRecipients, s.RecipientsComplete)),
		card("Open ideas", format.Number(float64(s.OpenIdeas))),
		card("Tax deductible", m.money(s.TaxDeductibleTotal)),
	)

	sections := []string{cards, ""}

	if s.BudgetTotal > 0 {
		ratio := s.TotalSpent / s.BudgetTotal
		label := fmt.Sprintf(" %s of %s budget", format.Percent(ratio, 0), m.money(s.BudgetTotal))
		if s.BudgetRemaining < 0 {
			label += lipgloss.NewStyle().Foreground(theme.ColorRed).
				Render(fmt.Sprintf(" (%s over)", m.money(-s.BudgetRemaining)))
		}
		sections = append(sections,
			theme.SectionTitleStyle.Render("Budget"),
			theme.Bar(ratio, max(min(m.width-40, 50), 10), theme.ColorGreen)+label,
			"",
		)
	}

	sections = append(sections, theme.SectionTitleStyle.Render("Recent gifts"))
	if len(m.recent) == 0 {
		sections = append(sections, theme.MutedStyle.Render("No gifts recorded yet."))
	}
	for _, g := range m.recent {
		sections = append(sections, fmt.Sprintf("%s %10s  %s %s",
			theme.StatusStyle(g.Status).Render(fmt.Sprintf("%-9s", g.Status.Label())),
			m.money(g.PurchasePrice),
			format.Truncate(g.Name, 36),
			theme.MutedStyle.Render("for "+m.names[g.RecipientID]+" · "+format.Relative(g.CreatedAt, m.now)),
		))
	}

	sections = append(sections, "", theme.SectionTitleStyle.Render(
		fmt.Sprintf("Coming up in the next %s", format.Pluralize(m.settings.DefaultReminderDays, "day", "days"))))
	if len(m.upcoming) == 0 {
		sections = append(sections, theme.MutedStyle.Render("Nothing coming up."))
	}
	for _, r := range m.upcoming {
		when := "today"
		if r.Days > 0 {
			when = "in " + format.Pluralize(r.Days, "day", "days")
		}
		sections = append(sections, fmt.Sprintf("%-28s %s  %s",
			r.Label,
			format.DateOf(r.Date, m.settings.DateFormat),
			theme.MutedStyle.Render(when),
		))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n"))
}

func card(label, value string) string {
	return theme.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		theme.MutedStyle.Render(label),
		lipgloss.NewStyle().Bold(true).Render(value),
	))
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
