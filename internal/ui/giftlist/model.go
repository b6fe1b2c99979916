package giftlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/keys"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/report"
	"github.com/nhle/gift-tracker/internal/theme"
)

// SelectedGiftMsg is sent when the user opens a gift.
type SelectedGiftMsg struct {
	Gift model.Gift
}

// statusModes is the cycle of status filters; "" shows every status.
var statusModes = append([]model.GiftStatus{""}, model.GiftStatuses...)

// Model is the gift list view.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	filter      report.GiftFilter
	statusIndex int
	searchMode  bool
	searchInput textinput.Model
	loading     bool

	gifts    []model.Gift
	names    map[string]string
	currency string

	width  int
	height int
}

// New creates a gift list in its loading state.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Gifts"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search gifts..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		searchInput: si,
		loading:     true,
		names:       map[string]string{},
		currency:    model.DefaultCurrency,
		width:       width,
		height:      height,
	}
}

// SetData replaces the gifts shown and ends the loading state.
func (m *Model) SetData(gifts []model.Gift, recipients []model.Recipient) tea.Cmd {
	m.loading = false
	m.gifts = gifts
	m.names = make(map[string]string, len(recipients))
	for _, r := range recipients {
		m.names[r.ID] = r.Name
	}
	return m.refresh()
}

// SetYear limits the list to gifts of year; 0 shows every year.
func (m *Model) SetYear(year int) tea.Cmd {
	m.filter.Year = year
	return m.refresh()
}

// SetCurrency changes the currency prices are shown in.
func (m *Model) SetCurrency(code string) tea.Cmd {
	m.currency = code
	return m.refresh()
}

// SetStatus filters on status; "" clears the filter.
func (m *Model) SetStatus(status model.GiftStatus) tea.Cmd {
	m.filter.Status = status
	m.statusIndex = 0
	for i, s := range statusModes {
		if s == status {
			m.statusIndex = i
		}
	}
	return m.refresh()
}

// Filter returns the active filter.
func (m Model) Filter() report.GiftFilter {
	return m.filter
}

// Loading reports whether the gifts have not been loaded yet.
func (m Model) Loading() bool {
	return m.loading
}

// Visible returns the gifts currently listed.
func (m Model) Visible() []model.Gift {
	items := m.list.Items()
	out := make([]model.Gift, 0, len(items))
	for _, it := range items {
		if gi, ok := it.(GiftItem); ok {
			out = append(out, gi.Gift)
		}
	}
	return out
}

func (m *Model) refresh() tea.Cmd {
	filtered := report.FilterGifts(m.gifts, m.filter)
	items := make([]list.Item, len(filtered))
	for i, g := range filtered {
		name := m.names[g.RecipientID]
		if name == "" {
			name = "unknown recipient"
		}
		items[i] = GiftItem{Gift: g, RecipientName: name, Currency: m.currency}
	}
	m.list.Title = m.title()
	return m.list.SetItems(items)
}

func (m Model) title() string {
	title := "Gifts"
	if m.filter.Year != 0 {
		title = fmt.Sprintf("Gifts %d", m.filter.Year)
	}
	if m.filter.Status != "" {
		title += " · " + m.filter.Status.Label()
	}
	return title
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the gift list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.filter.Query = m.searchInput.Value()
		return m, m.refresh()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = ""
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(GiftItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedGiftMsg{Gift: item.Gift}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleStatus):
		m.statusIndex = (m.statusIndex + 1) % len(statusModes)
		m.filter.Status = statusModes[m.statusIndex]
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// View renders the gift list.
func (m Model) View() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.loading {
		return style.Render("Loading gifts...")
	}

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		if len(m.gifts) > 0 {
			return style.Render("No matching gifts.\nPress tab to change the status filter or / to search.")
		}
		return style.Render("No gifts yet.\n\nPress n to record one.")
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
