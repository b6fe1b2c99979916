package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/theme"
)

// Command describes one palette command.
type Command struct {
	Name  string
	Usage string
	Help  string
}

// Commands lists the palette commands, used for completion and the help view.
var Commands = []Command{
	{Name: "dashboard", Help: "show the dashboard"},
	{Name: "recipients", Help: "list recipients"},
	{Name: "gifts", Help: "list gifts"},
	{Name: "ideas", Help: "list gift ideas"},
	{Name: "reports", Help: "spending reports"},
	{Name: "settings", Help: "edit preferences"},
	{Name: "receipts", Help: "import a gift from a receipt email"},
	{Name: "new recipient", Help: "add a recipient"},
	{Name: "new gift", Help: "record a gift"},
	{Name: "new idea", Help: "save a gift idea"},
	{Name: "year", Usage: "<yyyy|all>", Help: "switch the current year"},
	{Name: "status", Usage: "<name|all>", Help: "filter gifts by status"},
	{Name: "refresh", Help: "reload from the database"},
	{Name: "quit", Help: "exit"},
}

// Names returns the command names for completion.
func Names() []string {
	out := make([]string, len(Commands))
	for i, c := range Commands {
		out[i] = c.Name
	}
	return out
}

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Name returns the first word of the command, lowercased.
func (c CommandMsg) Name() string {
	fields := strings.Fields(string(c))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Args returns the words following the command name.
func (c CommandMsg) Args() []string {
	fields := strings.Fields(string(c))
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Names())
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if cmd != "" {
				return m, func() tea.Msg {
					return CommandMsg(cmd)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	input := m.input.View()
	hint := theme.HelpStyle.Render("tab completes · year <yyyy> · status <name|all>")

	content := lipgloss.JoinVertical(lipgloss.Left, title, input, "", hint)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
