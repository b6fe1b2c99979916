package giftform

import (
	"errors"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/theme"
	"github.com/nhle/gift-tracker/internal/ui/formkit"
)

// GiftCreatedMsg is dispatched when the form is submitted.
type GiftCreatedMsg struct {
	Gift model.Gift
}

// GiftFormCancelMsg is dispatched when the user cancels the form.
type GiftFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	recipientID string
	occasionID  string
	categoryID  string

	name        string
	description string
	year        string
	price       string
	location    string
	date        string
	url         string

	status        string
	statusDate    string
	carrier       string
	tracking      string
	expected      string
	thankYou      bool
	taxDeductible bool
	taxCategory   string

	split        bool
	totalCost    string
	contribution string
	others       string

	receiptText string
	notes       string
}

// Model is the Bubble Tea model for the new gift form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	alert      string
	source     string
	recipients []model.Recipient
	occasions  []model.Occasion
	categories []model.Category
	now        func() time.Time
	width      int
	height     int
}

// New creates a new gift form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		now:    time.Now,
		width:  width,
		height: height,
	}
}

// SetOptions sets the recipients and lookup values offered by the selectors.
func (m *Model) SetOptions(recipients []model.Recipient, occasions []model.Occasion, categories []model.Category) {
	m.recipients = recipients
	m.occasions = occasions
	m.categories = categories
}

// StartCreate initializes an empty form for year.
func (m *Model) StartCreate(year int) tea.Cmd {
	if year == 0 {
		year = m.now().Year()
	}
	return m.StartCreateFrom(model.Gift{Year: year}, "")
}

// StartCreateFrom initializes the form from a draft, such as one built from
// an imported receipt. source is shown under the title.
func (m *Model) StartCreateFrom(draft model.Gift, source string) tea.Cmd {
	*m.fb = bindingsFrom(draft)
	if m.fb.year == "0" {
		m.fb.year = strconv.Itoa(m.now().Year())
	}
	if m.fb.recipientID == "" && len(m.recipients) > 0 {
		m.fb.recipientID = m.recipients[0].ID
	}
	m.alert = ""
	m.source = source
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

func bindingsFrom(g model.Gift) formBindings {
	fb := formBindings{
		recipientID:   g.RecipientID,
		occasionID:    g.OccasionID,
		categoryID:    g.CategoryID,
		name:          g.Name,
		description:   g.Description,
		year:          strconv.Itoa(g.Year),
		location:      g.PurchaseLocation,
		date:          g.PurchaseDate,
		url:           g.PurchaseURL,
		status:        string(g.Status),
		carrier:       g.Carrier,
		tracking:      g.TrackingNumber,
		expected:      g.ExpectedDelivery,
		thankYou:      g.ThankYouReceived,
		taxDeductible: g.IsTaxDeductible,
		taxCategory:   g.TaxCategory,
		split:         g.IsSplitGift,
		totalCost:     formkit.FormatAmount(g.TotalGiftCost),
		contribution:  formkit.FormatAmount(g.UserContribution),
		receiptText:   g.ReceiptText,
		notes:         g.Notes,
	}
	if g.PurchasePrice > 0 {
		fb.price = strconv.FormatFloat(g.PurchasePrice, 'f', 2, 64)
	}
	if fb.status == "" {
		fb.status = string(model.GiftPurchased)
	}
	return fb
}

// Update handles messages for the gift form.
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
		return m, func() tea.Msg { return GiftFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the gift form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Gift") + "\n"
	if m.source != "" {
		content += theme.MutedStyle.Render("from "+m.source) + "\n"
	}
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

	statusOpts := make([]huh.Option[string], len(model.GiftStatuses))
	for i, s := range model.GiftStatuses {
		statusOpts[i] = huh.NewOption(s.Label(), string(s))
	}
	carrierOpts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, c := range model.Carriers {
		carrierOpts = append(carrierOpts, huh.NewOption(strings.ToUpper(c), c))
	}

	notShipped := func() bool {
		return fb.status != string(model.GiftShipped) && fb.status != string(model.GiftDelivered)
	}

	return huh.NewForm(
		huh.NewGroup(
			m.recipientField(),
			huh.NewInput().
				Title("Gift").
				Placeholder("What did you buy?").
				Value(&fb.name).
				Validate(formkit.Required("Gift name")),
			huh.NewInput().
				Title("Price").
				Value(&fb.price).
				Validate(formkit.RequiredAmount("Price")),
			huh.NewInput().
				Title("Year").
				Value(&fb.year).
				Validate(formkit.Year),
			m.occasionField(),
			m.categoryField(),
		),
		huh.NewGroup(
			huh.NewText().Title("Description").Value(&fb.description),
			huh.NewInput().Title("Purchased at").Value(&fb.location),
			huh.NewInput().
				Title("Purchase date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&fb.date).
				Validate(formkit.OptionalDate),
			huh.NewInput().Title("Link").Value(&fb.url),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(&fb.status),
		),
		huh.NewGroup(
			huh.NewInput().
				TitleFunc(func() string {
					return model.GiftStatus(fb.status).Label() + " on"
				}, &fb.status).
				Placeholder("YYYY-MM-DD (optional)").
				Value(&fb.statusDate).
				Validate(formkit.OptionalDate),
		).WithHideFunc(func() bool { return fb.status == string(model.GiftPurchased) }),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Carrier").
				Options(carrierOpts...).
				Value(&fb.carrier),
			huh.NewInput().Title("Tracking number").Value(&fb.tracking),
			huh.NewInput().
				Title("Expected delivery").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&fb.expected).
				Validate(formkit.OptionalDate),
		).WithHideFunc(notShipped),
		huh.NewGroup(
			huh.NewConfirm().Title("Thank-you received?").Value(&fb.thankYou),
			huh.NewConfirm().Title("Tax deductible?").Value(&fb.taxDeductible),
			huh.NewConfirm().Title("Split with others?").Value(&fb.split),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Tax category").
				Options(
					huh.NewOption("Charity", model.TaxCharity),
					huh.NewOption("Business", model.TaxBusiness),
				).
				Value(&fb.taxCategory),
		).WithHideFunc(func() bool { return !fb.taxDeductible }),
		huh.NewGroup(
			huh.NewInput().
				Title("Total gift cost").
				Value(&fb.totalCost).
				Validate(formkit.OptionalAmount),
			huh.NewInput().
				Title("Your contribution").
				Value(&fb.contribution).
				Validate(formkit.OptionalAmount),
			huh.NewInput().
				Title("Other contributors").
				Placeholder("Ben 40, Ana 20").
				Value(&fb.others).
				Validate(formkit.ValidateShares),
		).WithHideFunc(func() bool { return !fb.split }),
		huh.NewGroup(
			huh.NewText().Title("Notes").Value(&fb.notes),
		),
	).WithWidth(formkit.Width(m.width)).WithHeight(formkit.Height(m.height))
}

func (m *Model) recipientField() huh.Field {
	opts := make([]huh.Option[string], 0, len(m.recipients))
	for _, r := range m.recipients {
		opts = append(opts, huh.NewOption(r.Name, r.ID))
	}
	return huh.NewSelect[string]().
		Title("Recipient").
		Options(opts...).
		Value(&m.fb.recipientID).
		Validate(func(id string) error {
			if id == "" {
				return errors.New("add a recipient first")
			}
			return nil
		})
}

func (m *Model) occasionField() huh.Field {
	opts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, o := range m.occasions {
		opts = append(opts, huh.NewOption(o.Name, o.ID))
	}
	return huh.NewSelect[string]().
		Title("Occasion").
		Options(opts...).
		Value(&m.fb.occasionID)
}

func (m *Model) categoryField() huh.Field {
	opts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, c := range m.categories {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}
	return huh.NewSelect[string]().
		Title("Category").
		Options(opts...).
		Value(&m.fb.categoryID)
}

func (m Model) handleSubmit() tea.Cmd {
	g := build(*m.fb)
	return func() tea.Msg { return GiftCreatedMsg{Gift: g} }
}

// build converts the entered values into a gift. Only the date of the chosen
// status is kept.
func build(fb formBindings) model.Gift {
	year, _ := strconv.Atoi(strings.TrimSpace(fb.year))
	price, _ := formkit.ParseAmount(fb.price)

	g := model.Gift{
		RecipientID:      fb.recipientID,
		OccasionID:       fb.occasionID,
		CategoryID:       fb.categoryID,
		Name:             strings.TrimSpace(fb.name),
		Description:      strings.TrimSpace(fb.description),
		Year:             year,
		PurchasePrice:    price,
		PurchaseLocation: strings.TrimSpace(fb.location),
		PurchaseDate:     strings.TrimSpace(fb.date),
		PurchaseURL:      strings.TrimSpace(fb.url),
		Status:           model.GiftStatus(fb.status),
		ThankYouReceived: fb.thankYou,
		IsTaxDeductible:  fb.taxDeductible,
		IsSplitGift:      fb.split,
		ReceiptText:      fb.receiptText,
		Notes:            strings.TrimSpace(fb.notes),
	}

	date := strings.TrimSpace(fb.statusDate)
	switch g.Status {
	case model.GiftWrapped:
		g.WrappedDate = date
	case model.GiftShipped:
		g.ShippedDate = date
	case model.GiftDelivered:
		g.DeliveredDate = date
	}

	if g.Status == model.GiftShipped || g.Status == model.GiftDelivered {
		g.Carrier = fb.carrier
		g.TrackingNumber = strings.TrimSpace(fb.tracking)
		g.ExpectedDelivery = strings.TrimSpace(fb.expected)
	}
	if g.IsTaxDeductible {
		g.TaxCategory = fb.taxCategory
	}

	if g.IsSplitGift {
		g.TotalGiftCost = formkit.AmountPtr(fb.totalCost)
		g.UserContribution = formkit.AmountPtr(fb.contribution)
		if g.UserContribution != nil {
			g.Contributors = append(g.Contributors, model.GiftContributor{
				ContributorName:    "Me",
				ContributionAmount: *g.UserContribution,
				IsCurrentUser:      true,
				HasPaid:            true,
			})
		}
		shares, _ := formkit.ParseShares(fb.others)
		for _, s := range shares {
			g.Contributors = append(g.Contributors, model.GiftContributor{
				ContributorName:    s.Name,
				ContributionAmount: s.Amount,
			})
		}
	}
	return g
}
