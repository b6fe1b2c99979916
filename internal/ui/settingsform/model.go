package settingsform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/format"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/theme"
	"github.com/nhle/gift-tracker/internal/ui/formkit"
)

// SettingsSavedMsg carries the settings the user changed, as stored values.
type SettingsSavedMsg struct {
	Changes map[model.SettingKey]string
}

// SettingsFormCancelMsg is dispatched when the user leaves without saving.
type SettingsFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	theme        string
	currency     string
	dateFormat   string
	reminderDays string
	compact      bool
	currentYear  string
}

func bindingsFrom(s model.AppSettings) formBindings {
	return formBindings{
		theme:        string(s.Theme),
		currency:     s.Currency,
		dateFormat:   s.DateFormat,
		reminderDays: strconv.Itoa(s.DefaultReminderDays),
		compact:      s.SidebarCollapsed,
		currentYear:  strconv.Itoa(s.CurrentYear),
	}
}

func (fb formBindings) values() map[model.SettingKey]string {
	return map[model.SettingKey]string{
		model.SettingTheme:               fb.theme,
		model.SettingCurrency:            fb.currency,
		model.SettingDateFormat:          fb.dateFormat,
		model.SettingDefaultReminderDays: strings.TrimSpace(fb.reminderDays),
		model.SettingSidebarCollapsed:    strconv.FormatBool(fb.compact),
		model.SettingCurrentYear:         strings.TrimSpace(fb.currentYear),
	}
}

// Model is the settings form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	current model.AppSettings
	alert   string
	width   int
	height  int
}

// New creates a settings form model.
func New(width, height int) Model {
	return Model{fb: &formBindings{}, current: model.DefaultSettings(), width: width, height: height}
}

// Start opens the form on the current settings.
func (m *Model) Start(current model.AppSettings) tea.Cmd {
	m.current = current
	*m.fb = bindingsFrom(current)
	m.alert = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// ShowError reopens the form with an alert for a rejected value.
func (m *Model) ShowError(err error) tea.Cmd {
	m.alert = err.Error()
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		diff := changes(m.current, *m.fb)
		return m, func() tea.Msg { return SettingsSavedMsg{Changes: diff} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return SettingsFormCancelMsg{} }
	}

	return m, cmd
}

// changes returns the entries of fb that differ from current.
func changes(current model.AppSettings, fb formBindings) map[model.SettingKey]string {
	out := make(map[model.SettingKey]string)
	for k, v := range fb.values() {
		if current.Value(k) != v {
			out[k] = v
		}
	}
	return out
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Settings") + "\n"
	if m.alert != "" {
		content += theme.AlertStyle.Render(m.alert) + "\n"
	}
	content += m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fb := m.fb

	currencyOpts := make([]huh.Option[string], len(format.Currencies))
	for i, c := range format.Currencies {
		currencyOpts[i] = huh.NewOption(fmt.Sprintf("%s %s (%s)", c.Code, c.Name, c.Symbol), c.Code)
	}
	dateOpts := make([]huh.Option[string], len(format.DateFormats))
	for i, f := range format.DateFormats {
		dateOpts[i] = huh.NewOption(f, f)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("System", string(model.ThemeSystem)),
					huh.NewOption("Light", string(model.ThemeLight)),
					huh.NewOption("Dark", string(model.ThemeDark)),
				).
				Value(&fb.theme),
			huh.NewSelect[string]().
				Title("Currency").
				Options(currencyOpts...).
				Value(&fb.currency),
			huh.NewSelect[string]().
				Title("Date format").
				Options(dateOpts...).
				Value(&fb.dateFormat),
			huh.NewInput().
				Title("Remind me days ahead").
				Value(&fb.reminderDays).
				Validate(validateDays),
			huh.NewInput().
				Title("Current year").
				Value(&fb.currentYear).
				Validate(formkit.Year),
			huh.NewConfirm().
				Title("Compact header").
				Description("Hide the view tabs").
				Value(&fb.compact),
		),
	).WithWidth(formkit.Width(m.width)).WithHeight(formkit.Height(m.height))
}

func validateDays(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 365 {
		return errors.New("enter a number of days between 0 and 365")
	}
	return nil
}
