package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/keys"
	"github.com/nhle/gift-tracker/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// NewGiftForMsg asks the parent to open the gift form for a recipient.
type NewGiftForMsg struct {
	RecipientID string
}

// Field is one label/value row of a sheet. Empty values are skipped.
type Field struct {
	Label string
	Value string
}

// Section is a titled block of free text or rows below the fields.
type Section struct {
	Title string
	Body  string
	Rows  []string
}

// Sheet is everything the detail view shows about one record.
type Sheet struct {
	Title       string
	Badges      []string
	Fields      []Field
	Sections    []Section
	RecipientID string
}

// Model is the detail view component.
type Model struct {
	sheet    *Sheet
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.New):
			if m.sheet != nil && m.sheet.RecipientID != "" {
				id := m.sheet.RecipientID
				return m, func() tea.Msg {
					return NewGiftForMsg{RecipientID: id}
				}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.sheet == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Nothing selected")
	}
	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	s := m.sheet
	if s == nil {
		return ""
	}

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(s.Title))
	if len(s.Badges) > 0 {
		sections = append(sections, strings.Join(s.Badges, "  "))
	}
	sections = append(sections, "")

	labelWidth := 0
	for _, f := range s.Fields {
		if f.Value != "" && len(f.Label) > labelWidth {
			labelWidth = len(f.Label)
		}
	}
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	for _, f := range s.Fields {
		if f.Value == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("%s  %s",
			metaStyle.Render(fmt.Sprintf("%-*s", labelWidth+1, f.Label+":")),
			valStyle.Render(f.Value),
		))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 0)))
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	for _, sec := range s.Sections {
		if sec.Body == "" && len(sec.Rows) == 0 {
			continue
		}
		sections = append(sections, "", separator, "", headerStyle.Render(sec.Title), "")
		if sec.Body != "" {
			sections = append(sections, sec.Body)
		}
		sections = append(sections, sec.Rows...)
	}

	if s.RecipientID != "" {
		sections = append(sections, "", theme.HelpStyle.Render("n: new gift for this recipient"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSheet updates the record being displayed and re-renders the content.
func (m *Model) SetSheet(s Sheet) {
	m.sheet = &s
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.sheet != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
