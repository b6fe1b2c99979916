package receipts

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/format"
	"github.com/nhle/gift-tracker/internal/keys"
	"github.com/nhle/gift-tracker/internal/receipt"
	"github.com/nhle/gift-tracker/internal/theme"
)

// ReceiptsLoadedMsg carries the result of a mailbox scan.
type ReceiptsLoadedMsg struct {
	Receipts []receipt.Receipt
	Err      error
}

// ReceiptSelectedMsg is sent when the user picks a receipt to turn into a
// gift.
type ReceiptSelectedMsg struct {
	Receipt receipt.Receipt
}

// ReceiptItem wraps a receipt for a bubbles/list.
type ReceiptItem struct {
	Receipt  receipt.Receipt
	Currency string
}

// FilterValue returns the string used for filtering.
func (i ReceiptItem) FilterValue() string { return i.Receipt.Subject }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(ReceiptItem)
	if !ok {
		return
	}
	r := ri.Receipt

	amount := ""
	if v := receipt.Amount(r.Text); v > 0 {
		amount = format.Currency(v, ri.Currency)
	}
	from := r.From
	if from == "" {
		from = r.FromAddress
	}

	line := fmt.Sprintf("%s %10s  %s  %s",
		theme.MutedStyle.Render(r.Date.Format("Jan 02")),
		lipgloss.NewStyle().Foreground(theme.ColorGreen).Render(amount),
		format.Truncate(r.Subject, 50),
		theme.MutedStyle.Render(format.Truncate(from, 24)),
	)
	if files := r.AttachmentSummary(); files != "" {
		line += "  " + theme.MutedStyle.Render(format.Truncate(files, 32))
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

// Model lists receipt emails found in the configured mailbox.
type Model struct {
	list     list.Model
	spinner  spinner.Model
	keys     *keys.KeyMap
	loading  bool
	err      error
	enabled  bool
	currency string
	width    int
	height   int
}

// New creates the receipts view. enabled is false when no mailbox is
// configured.
func New(k *keys.KeyMap, enabled bool, width, height int) Model {
	l := list.New([]list.Item{}, itemDelegate{}, width, height-2)
	l.Title = "Receipts"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		list:     l,
		spinner:  sp,
		keys:     k,
		enabled:  enabled,
		currency: "USD",
		width:    width,
		height:   height,
	}
}

// StartLoading marks a scan as in flight.
func (m *Model) StartLoading() tea.Cmd {
	m.loading = true
	m.err = nil
	return m.spinner.Tick
}

// SetCurrency changes the currency amounts are shown in.
func (m *Model) SetCurrency(code string) {
	m.currency = code
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the receipts view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReceiptsLoadedMsg:
		m.loading = false
		m.err = msg.Err
		items := make([]list.Item, len(msg.Receipts))
		for i, r := range msg.Receipts {
			items[i] = ReceiptItem{Receipt: r, Currency: m.currency}
		}
		return m, m.list.SetItems(items)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Select) {
			item, ok := m.list.SelectedItem().(ReceiptItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return ReceiptSelectedMsg{Receipt: item.Receipt}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the receipts view.
func (m Model) View() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	switch {
	case !m.enabled:
		return style.Render("No receipt mailbox configured.\n\n" +
			"Set receipts.host and receipts.username in config.yaml,\n" +
			"then store the password with: gifttracker -set-password")
	case m.loading:
		return style.Render(m.spinner.View() + " Checking mailbox...")
	case m.err != nil:
		return style.Render(theme.AlertStyle.Render(m.err.Error()) + "\n\nPress r to retry.")
	case len(m.list.Items()) == 0:
		return style.Render("No receipts found.")
	}
	return m.list.View()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
