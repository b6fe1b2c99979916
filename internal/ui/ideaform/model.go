package ideaform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/theme"
	"github.com/nhle/gift-tracker/internal/ui/formkit"
)

// IdeaCreatedMsg is dispatched when the form is submitted.
type IdeaCreatedMsg struct {
	Idea model.Idea
}

// IdeaFormCancelMsg is dispatched when the user cancels the form.
type IdeaFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies. The selectors use
// model.NoneSentinel for "no selection".
type formBindings struct {
	name        string
	description string
	recipientID string
	categoryID  string
	price       string
	sourceURL   string
	priority    int
	tags        string
	notes       string
}

func (fb *formBindings) reset() {
	*fb = formBindings{
		recipientID: model.NoneSentinel,
		categoryID:  model.NoneSentinel,
		priority:    model.DefaultPriority,
	}
}

// Model is the Bubble Tea model for the new idea form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	alert      string
	recipients []model.Recipient
	categories []model.Category
	width      int
	height     int
}

// New creates a new idea form model.
func New(width, height int) Model {
	fb := &formBindings{}
	fb.reset()
	return Model{fb: fb, width: width, height: height}
}

// SetOptions sets the recipients and categories offered by the selectors.
func (m *Model) SetOptions(recipients []model.Recipient, categories []model.Category) {
	m.recipients = recipients
	m.categories = categories
}

// StartCreate initializes an empty form.
func (m *Model) StartCreate() tea.Cmd {
	m.fb.reset()
	m.alert = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// ShowError reopens the form with the entered values and an alert, after a
// failed create.
func (m *Model) ShowError(err error) tea.Cmd {
	m.alert = err.Error()
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the idea form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return IdeaFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the idea form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Idea") + "\n"
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

	recipientOpts := []huh.Option[string]{huh.NewOption("General idea", model.NoneSentinel)}
	for _, r := range m.recipients {
		recipientOpts = append(recipientOpts, huh.NewOption(r.Name, r.ID))
	}
	categoryOpts := []huh.Option[string]{huh.NewOption("None", model.NoneSentinel)}
	for _, c := range m.categories {
		categoryOpts = append(categoryOpts, huh.NewOption(c.Name, c.ID))
	}
	priorityOpts := make([]huh.Option[int], 0, model.PriorityMax)
	for p := model.PriorityMax; p >= model.PriorityMin; p-- {
		priorityOpts = append(priorityOpts, huh.NewOption(fmt.Sprintf("%d - %s", p, model.PriorityLabel(p)), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Idea").
				Value(&fb.name).
				Validate(formkit.Required("Idea")),
			huh.NewSelect[string]().
				Title("For").
				Options(recipientOpts...).
				Value(&fb.recipientID),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOpts...).
				Value(&fb.categoryID),
			huh.NewSelect[int]().
				Title("Priority").
				Options(priorityOpts...).
				Value(&fb.priority),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Estimated price").
				Placeholder("optional").
				Value(&fb.price).
				Validate(formkit.OptionalAmount),
			huh.NewInput().Title("Link").Value(&fb.sourceURL),
			huh.NewText().Title("Description").Value(&fb.description),
			huh.NewInput().
				Title("Tags").
				Placeholder("comma separated").
				Value(&fb.tags),
			huh.NewText().Title("Notes").Value(&fb.notes),
		),
	).WithWidth(formkit.Width(m.width)).WithHeight(formkit.Height(m.height))
}

func (m Model) handleSubmit() tea.Cmd {
	idea := build(*m.fb)
	return func() tea.Msg { return IdeaCreatedMsg{Idea: idea} }
}

// build converts the entered values into an idea. The none sentinel is
// passed through; the idea service maps it to an absent reference.
func build(fb formBindings) model.Idea {
	return model.Idea{
		Name:           strings.TrimSpace(fb.name),
		Description:    strings.TrimSpace(fb.description),
		RecipientID:    fb.recipientID,
		CategoryID:     fb.categoryID,
		EstimatedPrice: formkit.AmountPtr(fb.price),
		SourceURL:      strings.TrimSpace(fb.sourceURL),
		Priority:       fb.priority,
		Tags:           formkit.SplitList(fb.tags),
		Notes:          strings.TrimSpace(fb.notes),
	}
}
