package recipientlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/format"
	"github.com/nhle/gift-tracker/internal/keys"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/report"
	"github.com/nhle/gift-tracker/internal/theme"
)

// SelectedRecipientMsg is sent when the user opens a recipient.
type SelectedRecipientMsg struct {
	Stats report.RecipientStats
}

// RecipientItem wraps a recipient and its gift totals for a bubbles/list.
type RecipientItem struct {
	Stats    report.RecipientStats
	Currency string
}

// FilterValue returns the string used for filtering.
func (i RecipientItem) FilterValue() string {
	r := i.Stats.Recipient
	return strings.Join(append([]string{r.Name, r.Email, r.Interests}, r.Tags...), " ")
}

// Title returns the recipient name.
func (i RecipientItem) Title() string { return i.Stats.Recipient.Name }

// Description returns the gift summary line.
func (i RecipientItem) Description() string {
	return fmt.Sprintf("%s | %s",
		format.Pluralize(i.Stats.TotalGifts, "gift", "gifts"),
		format.Currency(i.Stats.TotalSpent, i.Currency),
	)
}

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(RecipientItem)
	if !ok {
		return
	}
	r := ri.Stats.Recipient

	badge := theme.RecipientTypeStyle(r.Type()).Render(fmt.Sprintf("%-12s", r.Type().Label()))

	budget := ""
	if ri.Stats.BudgetRemaining != nil {
		color := theme.ColorGreen
		if *ri.Stats.BudgetRemaining < 0 {
			color = theme.ColorRed
		}
		budget = lipgloss.NewStyle().Foreground(color).
			Render("  " + format.Currency(*ri.Stats.BudgetRemaining, ri.Currency) + " left")
	}

	inactive := ""
	if !r.IsActive {
		inactive = theme.MutedStyle.Render(" inactive")
	}

	line := fmt.Sprintf("%s %s%s  %s%s",
		badge, format.Truncate(r.Name, 32), inactive,
		theme.MutedStyle.Render(ri.Description()), budget,
	)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

// Model is the recipient list view.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	searchMode  bool
	searchInput textinput.Model
	query       string
	loading     bool

	stats    []report.RecipientStats
	currency string

	width  int
	height int
}

// New creates a recipient list in its loading state.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, itemDelegate{}, width, height-2)
	l.Title = "Recipients"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search recipients..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		searchInput: si,
		loading:     true,
		currency:    model.DefaultCurrency,
		width:       width,
		height:      height,
	}
}

// SetData replaces the recipients shown, with totals over gifts.
func (m *Model) SetData(recipients []model.Recipient, gifts []model.Gift) tea.Cmd {
	m.loading = false
	m.stats = report.RecipientsWithStats(recipients, gifts)
	return m.refresh()
}

// SetCurrency changes the currency totals are shown in.
func (m *Model) SetCurrency(code string) tea.Cmd {
	m.currency = code
	return m.refresh()
}

// Loading reports whether the recipients have not been loaded yet.
func (m Model) Loading() bool {
	return m.loading
}

func (m *Model) refresh() tea.Cmd {
	q := strings.ToLower(strings.TrimSpace(m.query))
	var items []list.Item
	for _, s := range m.stats {
		item := RecipientItem{Stats: s, Currency: m.currency}
		if q != "" && !strings.Contains(strings.ToLower(item.FilterValue()), q) {
			continue
		}
		items = append(items, item)
	}
	return m.list.SetItems(items)
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the recipient list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			switch msg.String() {
			case "enter":
				m.searchMode = false
				m.query = m.searchInput.Value()
				return m, m.refresh()
			case "esc":
				m.searchMode = false
				m.searchInput.Reset()
				m.query = ""
				return m, m.refresh()
			}
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.Select):
			item, ok := m.list.SelectedItem().(RecipientItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return SelectedRecipientMsg{Stats: item.Stats}
			}
		case key.Matches(msg, m.keys.Search):
			m.searchMode = true
			m.searchInput.Reset()
			return m, m.searchInput.Focus()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// View renders the recipient list.
func (m Model) View() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.loading {
		return style.Render("Loading recipients...")
	}
	if m.searchMode {
		searchBar := lipgloss.NewStyle().Padding(0, 1).Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}
	if len(m.list.Items()) == 0 {
		if m.query != "" {
			return style.Render("No matching recipients.")
		}
		return style.Render("No recipients yet.\n\nPress n to add one.")
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
