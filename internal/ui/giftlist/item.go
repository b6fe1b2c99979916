package giftlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/format"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/theme"
)

// GiftItem wraps a model.Gift so it can be used in a bubbles/list.
type GiftItem struct {
	Gift          model.Gift
	RecipientName string
	Currency      string
}

// FilterValue returns the string used for filtering.
func (i GiftItem) FilterValue() string { return i.Gift.Name }

// Title returns the gift name for the list.
func (i GiftItem) Title() string { return i.Gift.Name }

// Description returns a short summary line for the list.
func (i GiftItem) Description() string {
	parts := []string{
		i.RecipientName,
		i.Gift.Status.Label(),
		format.Currency(i.Gift.PurchasePrice, i.Currency),
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering gift rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single gift line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	gi, ok := item.(GiftItem)
	if !ok {
		return
	}
	g := gi.Gift

	statusBadge := theme.StatusStyle(g.Status).Render(fmt.Sprintf("%-9s", g.Status.Label()))

	price := lipgloss.NewStyle().
		Foreground(theme.ColorGreen).
		Render(fmt.Sprintf("%10s", format.Currency(g.PurchasePrice, gi.Currency)))

	recipient := theme.MutedStyle.Render("for " + gi.RecipientName)

	extras := ""
	if g.IsSplitGift {
		extras += lipgloss.NewStyle().Foreground(theme.ColorMagenta).Render(" split")
	}
	if g.IsTaxDeductible {
		extras += lipgloss.NewStyle().Foreground(theme.ColorYellow).Render(" tax")
	}

	line := fmt.Sprintf("%s %s %s %s%s  %s",
		statusBadge, price, format.Truncate(g.Name, 40), recipient, extras,
		theme.MutedStyle.Render(fmt.Sprint(g.Year)),
	)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
