package detail

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/gift-tracker/internal/format"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/report"
	"github.com/nhle/gift-tracker/internal/theme"
)

// Context carries the display preferences and lookup names the sheets need.
type Context struct {
	Currency   string
	DateFormat string
	Now        time.Time
	Recipients map[string]string
	Occasions  map[string]string
	Categories map[string]string
}

func (c Context) money(v float64) string {
	return format.Currency(v, c.Currency)
}

func (c Context) moneyPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return c.money(*v)
}

func (c Context) date(iso string) string {
	return format.Date(iso, c.DateFormat)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// GiftSheet describes a gift.
func GiftSheet(g model.Gift, c Context) Sheet {
	s := Sheet{
		Title:  g.Name,
		Badges: []string{theme.StatusStyle(g.Status).Render(g.Status.Label())},
		Fields: []Field{
			{"For", c.Recipients[g.RecipientID]},
			{"Occasion", c.Occasions[g.OccasionID]},
			{"Category", c.Categories[g.CategoryID]},
			{"Year", strconv.Itoa(g.Year)},
			{"Price", c.money(g.PurchasePrice)},
			{"Purchased at", g.PurchaseLocation},
			{"Purchased on", c.date(g.PurchaseDate)},
			{"Link", g.PurchaseURL},
			{"Wrapped", c.date(g.WrappedDate)},
			{"Shipped", c.date(g.ShippedDate)},
			{"Delivered", c.date(g.DeliveredDate)},
			{"Carrier", strings.ToUpper(g.Carrier)},
			{"Tracking", g.TrackingNumber},
			{"Track at", format.TrackingURL(g.Carrier, g.TrackingNumber)},
			{"Expected", c.date(g.ExpectedDelivery)},
			{"Thank-you", yesNo(g.ThankYouReceived)},
			{"Added", format.Relative(g.CreatedAt, c.Now)},
		},
	}
	if g.IsTaxDeductible {
		s.Badges = append(s.Badges, theme.MutedStyle.Render("tax deductible"))
		s.Fields = append(s.Fields, Field{"Tax category", g.TaxCategory})
	}
	if g.IsSplitGift {
		s.Badges = append(s.Badges, theme.MutedStyle.Render("split"))
		s.Fields = append(s.Fields,
			Field{"Total cost", c.moneyPtr(g.TotalGiftCost)},
			Field{"Your share", c.moneyPtr(g.UserContribution)},
		)
		var rows []string
		for _, gc := range g.Contributors {
			paid := "owes"
			if gc.HasPaid {
				paid = "paid"
			}
			rows = append(rows, fmt.Sprintf("%-20s %10s  %s", gc.ContributorName, c.money(gc.ContributionAmount), paid))
		}
		s.Sections = append(s.Sections, Section{Title: "Contributors", Rows: rows})
	}
	s.Sections = append(s.Sections,
		Section{Title: "Description", Body: g.Description},
		Section{Title: "Notes", Body: g.Notes},
		Section{Title: "Receipt", Body: format.Truncate(g.ReceiptText, 600)},
	)
	return s
}

// RecipientSheet describes a recipient with its gifts for the context year.
func RecipientSheet(rs report.RecipientStats, gifts []model.Gift, c Context) Sheet {
	r := rs.Recipient
	s := Sheet{
		Title:       r.Name,
		Badges:      []string{theme.RecipientTypeStyle(r.Type()).Render(r.Type().Label())},
		RecipientID: r.ID,
		Fields: []Field{
			{"Email", r.Email},
			{"Phone", format.Phone(r.Phone)},
			{"Address", format.Address(r.RecipientBase)},
			{"Budget", c.moneyPtr(r.BudgetLimit)},
			{"Remaining", c.moneyPtr(rs.BudgetRemaining)},
			{"Spent", c.money(rs.TotalSpent)},
			{"Gifts", fmt.Sprintf("%d (%d delivered)", rs.TotalGifts, rs.GiftsDelivered)},
			{"Interests", r.Interests},
			{"Tags", strings.Join(r.Tags, ", ")},
		},
	}
	if !r.IsActive {
		s.Badges = append(s.Badges, theme.MutedStyle.Render("inactive"))
	}

	switch d := r.Details.(type) {
	case model.IndividualDetails:
		birthday := c.date(d.Birthday)
		if n := format.DaysUntilNext(d.Birthday, c.Now); n >= 0 {
			birthday += fmt.Sprintf(" (in %s)", format.Pluralize(n, "day", "days"))
		}
		s.Fields = append(s.Fields,
			Field{"Relationship", d.Relationship},
			Field{"Birthday", birthday},
		)
	case model.FamilyDetails:
		s.Fields = append(s.Fields,
			Field{"Members", strings.Join(d.FamilyMembers, ", ")},
			Field{"Primary", d.PrimaryContact},
		)
	case model.OrganizationDetails:
		contact := d.ContactPerson
		if d.ContactTitle != "" && contact != "" {
			contact += ", " + d.ContactTitle
		}
		s.Fields = append(s.Fields,
			Field{"Kind", d.OrganizationType},
			Field{"Tax ID", d.TaxID},
			Field{"Contact", contact},
		)
	}

	var rows []string
	for _, g := range report.FilterGifts(gifts, report.GiftFilter{RecipientID: r.ID}) {
		rows = append(rows, fmt.Sprintf("%d  %-9s %10s  %s",
			g.Year, g.Status.Label(), c.money(g.PurchasePrice), g.Name))
	}
	s.Sections = append(s.Sections,
		Section{Title: "Gifts", Rows: rows},
		Section{Title: "Notes", Body: r.Notes},
	)
	return s
}

// IdeaSheet describes an idea.
func IdeaSheet(i model.Idea, c Context) Sheet {
	who := c.Recipients[i.RecipientID]
	if i.IsGeneral() {
		who = "General idea"
	}
	s := Sheet{
		Title:       i.Name,
		Badges:      []string{theme.PriorityStyle(i.Priority).Render(model.PriorityLabel(i.Priority))},
		RecipientID: i.RecipientID,
		Fields: []Field{
			{"For", who},
			{"Category", c.Categories[i.CategoryID]},
			{"Estimate", c.moneyPtr(i.EstimatedPrice)},
			{"Link", i.SourceURL},
			{"Tags", strings.Join(i.Tags, ", ")},
			{"Added", format.Relative(i.CreatedAt, c.Now)},
		},
		Sections: []Section{
			{Title: "Description", Body: i.Description},
			{Title: "Notes", Body: i.Notes},
		},
	}
	if i.ConvertedToGiftID != "" {
		s.Badges = append(s.Badges, theme.MutedStyle.Render("bought"))
	}
	return s
}
