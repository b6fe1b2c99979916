package recipientform

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/theme"
	"github.com/nhle/gift-tracker/internal/ui/formkit"
)

// RecipientCreatedMsg is dispatched when the form is submitted.
type RecipientCreatedMsg struct {
	Recipient model.Recipient
}

// RecipientFormCancelMsg is dispatched when the user cancels the form.
type RecipientFormCancelMsg struct{}

// Organization kinds offered by the form.
var organizationTypes = []huh.Option[string]{
	huh.NewOption("Charity", "charity"),
	huh.NewOption("Business", "business"),
	huh.NewOption("School", "school"),
	huh.NewOption("Church", "church"),
	huh.NewOption("Other", "other"),
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	recipientType string

	name       string
	email      string
	phone      string
	address1   string
	address2   string
	city       string
	state      string
	postalCode string
	country    string
	budget     string
	interests  string
	tags       string
	notes      string

	birthday     string
	relationship string

	familyMembers  string
	primaryContact string

	organizationType string
	taxID            string
	contactPerson    string
	contactTitle     string
}

func (fb *formBindings) reset() {
	*fb = formBindings{
		recipientType:    string(model.RecipientIndividual),
		country:          model.DefaultCountry,
		organizationType: "charity",
	}
}

// Model is the Bubble Tea model for the new recipient form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	alert  string
	width  int
	height int
}

// New creates a new recipient form model.
func New(width, height int) Model {
	fb := &formBindings{}
	fb.reset()
	return Model{fb: fb, width: width, height: height}
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

// Update handles messages for the recipient form.
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
		return m, func() tea.Msg { return RecipientFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the recipient form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Recipient") + "\n"
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

	typeOpts := make([]huh.Option[string], len(model.RecipientTypes))
	for i, t := range model.RecipientTypes {
		typeOpts[i] = huh.NewOption(t.Label(), string(t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(typeOpts...).
				Value(&fb.recipientType),
			huh.NewInput().
				Title("Name").
				Value(&fb.name).
				Validate(formkit.Required("Name")),
			huh.NewInput().Title("Email").Value(&fb.email),
			huh.NewInput().Title("Phone").Value(&fb.phone),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Birthday").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&fb.birthday).
				Validate(formkit.OptionalDate),
			huh.NewInput().
				Title("Relationship").
				Placeholder("Friend, Sister, Coworker...").
				Value(&fb.relationship),
		).WithHideFunc(func() bool { return fb.recipientType != string(model.RecipientIndividual) }),
		huh.NewGroup(
			huh.NewInput().
				Title("Family members").
				Placeholder("comma separated").
				Value(&fb.familyMembers),
			huh.NewInput().Title("Primary contact").Value(&fb.primaryContact),
		).WithHideFunc(func() bool { return fb.recipientType != string(model.RecipientFamily) }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Organization type").
				Options(organizationTypes...).
				Value(&fb.organizationType),
			huh.NewInput().Title("Tax ID").Value(&fb.taxID),
			huh.NewInput().Title("Contact person").Value(&fb.contactPerson),
			huh.NewInput().Title("Contact title").Value(&fb.contactTitle),
		).WithHideFunc(func() bool { return fb.recipientType != string(model.RecipientOrganization) }),
		huh.NewGroup(
			huh.NewInput().Title("Address line 1").Value(&fb.address1),
			huh.NewInput().Title("Address line 2").Value(&fb.address2),
			huh.NewInput().Title("City").Value(&fb.city),
			huh.NewInput().Title("State").Value(&fb.state),
			huh.NewInput().Title("Postal code").Value(&fb.postalCode),
			huh.NewInput().Title("Country").Value(&fb.country),
		).Title("Address"),
		huh.NewGroup(
			huh.NewInput().
				Title("Budget").
				Placeholder("optional").
				Value(&fb.budget).
				Validate(formkit.OptionalAmount),
			huh.NewInput().Title("Interests").Value(&fb.interests),
			huh.NewInput().
				Title("Tags").
				Placeholder("comma separated").
				Value(&fb.tags),
			huh.NewText().Title("Notes").Value(&fb.notes),
		),
	).WithWidth(formkit.Width(m.width)).WithHeight(formkit.Height(m.height))
}

func (m Model) handleSubmit() tea.Cmd {
	rec := build(*m.fb)
	return func() tea.Msg { return RecipientCreatedMsg{Recipient: rec} }
}

// build converts the entered values into a recipient.
func build(fb formBindings) model.Recipient {
	rec := model.Recipient{
		RecipientBase: model.RecipientBase{
			Name:         strings.TrimSpace(fb.name),
			Email:        strings.TrimSpace(fb.email),
			Phone:        strings.TrimSpace(fb.phone),
			AddressLine1: strings.TrimSpace(fb.address1),
			AddressLine2: strings.TrimSpace(fb.address2),
			City:         strings.TrimSpace(fb.city),
			State:        strings.TrimSpace(fb.state),
			PostalCode:   strings.TrimSpace(fb.postalCode),
			Country:      strings.TrimSpace(fb.country),
			BudgetLimit:  formkit.AmountPtr(fb.budget),
			Interests:    strings.TrimSpace(fb.interests),
			Tags:         formkit.SplitList(fb.tags),
			IsActive:     true,
			Notes:        strings.TrimSpace(fb.notes),
		},
	}

	switch model.RecipientType(fb.recipientType) {
	case model.RecipientFamily:
		rec.Details = model.FamilyDetails{
			FamilyMembers:  formkit.SplitList(fb.familyMembers),
			PrimaryContact: strings.TrimSpace(fb.primaryContact),
		}
	case model.RecipientOrganization:
		rec.Details = model.OrganizationDetails{
			OrganizationType: fb.organizationType,
			TaxID:            strings.TrimSpace(fb.taxID),
			ContactPerson:    strings.TrimSpace(fb.contactPerson),
			ContactTitle:     strings.TrimSpace(fb.contactTitle),
		}
	default:
		rec.Details = model.IndividualDetails{
			Birthday:     strings.TrimSpace(fb.birthday),
			Relationship: strings.TrimSpace(fb.relationship),
		}
	}
	return rec
}
