// Package report computes the dashboard and report aggregates from the
// loaded recipients, gifts and ideas.
package report

import (
	"math"
	"sort"
	"strings"

	"github.com/nhle/gift-tracker/internal/model"
)

// RecipientTotal is the amount spent on one recipient.
type RecipientTotal struct {
	RecipientID string
	Name        string
	Total       float64
}

// StatusCount is the number of gifts in one status.
type StatusCount struct {
	Status model.GiftStatus
	Count  int
}

// DashboardStats are the headline numbers for one year.
type DashboardStats struct {
	Year               int
	TotalRecipients    int
	TotalGifts         int
	TotalSpent         float64
	TaxDeductibleTotal float64
	BudgetTotal        float64
	BudgetRemaining    float64
	BudgetPercent      float64
	RecipientsComplete int
	OpenIdeas          int
}

// RecipientStats decorates a recipient with its gift totals.
type RecipientStats struct {
	model.Recipient
	TotalGifts        int
	GiftsDelivered    int
	TotalSpent        float64
	BudgetRemaining   *float64
	CompletionPercent float64
}

// roundCents rounds an amount to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// SpendingByRecipient sums purchase prices per recipient. Recipients with
// nothing spent are left out. The result is ordered by total descending,
// then by name.
func SpendingByRecipient(recipients []model.Recipient, gifts []model.Gift) []RecipientTotal {
	spent := make(map[string]float64)
	for _, g := range gifts {
		spent[g.RecipientID] += g.PurchasePrice
	}

	out := make([]RecipientTotal, 0, len(recipients))
	for _, r := range recipients {
		total := roundCents(spent[r.ID])
		if total <= 0 {
			continue
		}
		out = append(out, RecipientTotal{RecipientID: r.ID, Name: r.Name, Total: total})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// StatusCounts counts gifts per status in lifecycle order. A gift without
// a status counts as purchased. Statuses with no gifts are omitted.
func StatusCounts(gifts []model.Gift) []StatusCount {
	counts := make(map[model.GiftStatus]int)
	for _, g := range gifts {
		status := g.Status
		if status == "" {
			status = model.GiftPurchased
		}
		counts[status]++
	}

	out := make([]StatusCount, 0, len(counts))
	for _, s := range model.GiftStatuses {
		if n := counts[s]; n > 0 {
			out = append(out, StatusCount{Status: s, Count: n})
		}
	}
	return out
}

// Dashboard computes the headline stats for year. A zero year covers all
// gifts.
func Dashboard(
	recipients []model.Recipient,
	gifts []model.Gift,
	ideas []model.Idea,
	year int,
) DashboardStats {
	stats := DashboardStats{Year: year, TotalRecipients: len(recipients)}

	inYear := FilterGifts(gifts, GiftFilter{Year: year})
	stats.TotalGifts = len(inYear)
	for _, g := range inYear {
		stats.TotalSpent += g.PurchasePrice
		if g.IsTaxDeductible {
			stats.TaxDeductibleTotal += g.PurchasePrice
		}
	}
	for _, r := range recipients {
		if r.BudgetLimit != nil {
			stats.BudgetTotal += *r.BudgetLimit
		}
	}

	stats.TotalSpent = roundCents(stats.TotalSpent)
	stats.TaxDeductibleTotal = roundCents(stats.TaxDeductibleTotal)
	stats.BudgetTotal = roundCents(stats.BudgetTotal)
	stats.BudgetRemaining = roundCents(stats.BudgetTotal - stats.TotalSpent)
	stats.BudgetPercent = percent(stats.TotalSpent, stats.BudgetTotal)

	for _, rs := range RecipientsWithStats(recipients, inYear) {
		if rs.TotalGifts > 0 && rs.GiftsDelivered == rs.TotalGifts {
			stats.RecipientsComplete++
		}
	}

	for _, i := range ideas {
		if i.ConvertedToGiftID == "" {
			stats.OpenIdeas++
		}
	}
	return stats
}

// RecipientsWithStats pairs each recipient with the totals of its gifts.
func RecipientsWithStats(recipients []model.Recipient, gifts []model.Gift) []RecipientStats {
	byRecipient := make(map[string][]model.Gift)
	for _, g := range gifts {
		byRecipient[g.RecipientID] = append(byRecipient[g.RecipientID], g)
	}

	out := make([]RecipientStats, 0, len(recipients))
	for _, r := range recipients {
		rs := RecipientStats{Recipient: r}
		for _, g := range byRecipient[r.ID] {
			rs.TotalGifts++
			rs.TotalSpent += g.PurchasePrice
			if g.Status == model.GiftDelivered {
				rs.GiftsDelivered++
			}
		}
		rs.TotalSpent = roundCents(rs.TotalSpent)
		if r.BudgetLimit != nil {
			remaining := roundCents(*r.BudgetLimit - rs.TotalSpent)
			rs.BudgetRemaining = &remaining
		}
		rs.CompletionPercent = percent(float64(rs.GiftsDelivered), float64(rs.TotalGifts))
		out = append(out, rs)
	}
	return out
}

// GiftFilter narrows a gift list. Zero-valued fields match everything.
type GiftFilter struct {
	Year          int
	RecipientID   string
	OccasionID    string
	CategoryID    string
	Status        model.GiftStatus
	TaxDeductible *bool
	Query         string
}

// FilterGifts returns the gifts matching f, keeping their order. The query
// matches name, description, purchase location and notes, ignoring case.
func FilterGifts(gifts []model.Gift, f GiftFilter) []model.Gift {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]model.Gift, 0, len(gifts))
	for _, g := range gifts {
		switch {
		case f.Year != 0 && g.Year != f.Year:
			continue
		case f.RecipientID != "" && g.RecipientID != f.RecipientID:
			continue
		case f.OccasionID != "" && g.OccasionID != f.OccasionID:
			continue
		case f.CategoryID != "" && g.CategoryID != f.CategoryID:
			continue
		case f.Status != "" && g.Status != f.Status:
			continue
		case f.TaxDeductible != nil && g.IsTaxDeductible != *f.TaxDeductible:
			continue
		}
		if query != "" && !matchesQuery(g, query) {
			continue
		}
		out = append(out, g)
	}
	return out
}

func matchesQuery(g model.Gift, query string) bool {
	for _, field := range []string{g.Name, g.Description, g.PurchaseLocation, g.Notes} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// percent returns value as a percentage of total, or 0 when total is 0.
func percent(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total * 100
}
