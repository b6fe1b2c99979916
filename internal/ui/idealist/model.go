package idealist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/format"
	"github.com/nhle/gift-tracker/internal/keys"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/theme"
)

// SelectedIdeaMsg is sent when the user opens an idea.
type SelectedIdeaMsg struct {
	Idea model.Idea
}

// IdeaItem wraps an idea for a bubbles/list.
type IdeaItem struct {
	Idea          model.Idea
	RecipientName string
	Currency      string
}

// FilterValue returns the string used for filtering.
func (i IdeaItem) FilterValue() string { return i.Idea.Name }

// Title returns the idea name.
func (i IdeaItem) Title() string { return i.Idea.Name }

// Description returns the recipient and price summary.
func (i IdeaItem) Description() string {
	who := i.RecipientName
	if i.Idea.IsGeneral() {
		who = "General"
	}
	if i.Idea.EstimatedPrice == nil {
		return who
	}
	return who + " | ~" + format.Currency(*i.Idea.EstimatedPrice, i.Currency)
}

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ii, ok := item.(IdeaItem)
	if !ok {
		return
	}

	stars := strings.Repeat("★", ii.Idea.Priority) + strings.Repeat("☆", model.PriorityMax-ii.Idea.Priority)
	pri := theme.PriorityStyle(ii.Idea.Priority).Render(stars)

	converted := ""
	if ii.Idea.ConvertedToGiftID != "" {
		converted = lipgloss.NewStyle().Foreground(theme.ColorGreen).Render(" bought")
	}

	line := fmt.Sprintf("%s %s%s  %s",
		pri, format.Truncate(ii.Idea.Name, 40), converted,
		theme.MutedStyle.Render(ii.Description()),
	)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

// Model is the idea list view.
type Model struct {
	list    list.Model
	keys    *keys.KeyMap
	loading bool

	ideas    []model.Idea
	names    map[string]string
	currency string

	width  int
	height int
}

// New creates an idea list in its loading state.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, itemDelegate{}, width, height-2)
	l.Title = "Ideas"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:     l,
		keys:     k,
		loading:  true,
		names:    map[string]string{},
		currency: model.DefaultCurrency,
		width:    width,
		height:   height,
	}
}

// SetData replaces the ideas shown.
func (m *Model) SetData(ideas []model.Idea, recipients []model.Recipient) tea.Cmd {
	m.loading = false
	m.ideas = ideas
	m.names = make(map[string]string, len(recipients))
	for _, r := range recipients {
		m.names[r.ID] = r.Name
	}
	return m.refresh()
}

// SetCurrency changes the currency prices are shown in.
func (m *Model) SetCurrency(code string) tea.Cmd {
	m.currency = code
	return m.refresh()
}

// Loading reports whether the ideas have not been loaded yet.
func (m Model) Loading() bool {
	return m.loading
}

func (m *Model) refresh() tea.Cmd {
	items := make([]list.Item, len(m.ideas))
	for i, idea := range m.ideas {
		items[i] = IdeaItem{Idea: idea, RecipientName: m.names[idea.RecipientID], Currency: m.currency}
	}
	return m.list.SetItems(items)
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the idea list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Select) {
		item, ok := m.list.SelectedItem().(IdeaItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedIdeaMsg{Idea: item.Idea}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the idea list.
func (m Model) View() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.loading {
		return style.Render("Loading ideas...")
	}
	if len(m.list.Items()) == 0 {
		return style.Render("No ideas yet.\n\nPress n to jot one down.")
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
