package report

import (
	"sort"
	"time"

	"github.com/nhle/gift-tracker/internal/model"
)

// Reminder is an upcoming date worth buying a gift for.
type Reminder struct {
	Label       string
	RecipientID string
	Date        time.Time
	Days        int
}

// Upcoming lists the birthdays of active individual recipients and the
// recurring occasions that fall within the next days, soonest first.
// Occasions only carry a month, so they are placed on its first day and
// listed while that month is current or ahead.
func Upcoming(recipients []model.Recipient, occasions []model.Occasion, now time.Time, days int) []Reminder {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	horizon := today.AddDate(0, 0, days)

	var out []Reminder
	for _, r := range recipients {
		d, ok := r.Individual()
		if !ok || !r.IsActive || d.Birthday == "" {
			continue
		}
		born, err := time.Parse("2006-01-02", d.Birthday)
		if err != nil {
			continue
		}
		next := time.Date(today.Year(), born.Month(), born.Day(), 0, 0, 0, 0, time.UTC)
		if next.Before(today) {
			next = next.AddDate(1, 0, 0)
		}
		if next.After(horizon) {
			continue
		}
		out = append(out, Reminder{
			Label:       r.Name + "'s birthday",
			RecipientID: r.ID,
			Date:        next,
			Days:        int(next.Sub(today).Hours() / 24),
		})
	}

	for _, o := range occasions {
		if !o.IsRecurring || o.DefaultMonth < 1 || o.DefaultMonth > 12 {
			continue
		}
		start := time.Date(today.Year(), time.Month(o.DefaultMonth), 1, 0, 0, 0, 0, time.UTC)
		if start.AddDate(0, 1, 0).Before(today) || start.AddDate(0, 1, 0).Equal(today) {
			start = start.AddDate(1, 0, 0)
		}
		if start.After(horizon) {
			continue
		}
		daysLeft := int(start.Sub(today).Hours() / 24)
		if daysLeft < 0 {
			daysLeft = 0
		}
		out = append(out, Reminder{Label: o.Name, Date: start, Days: daysLeft})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Days != out[j].Days {
			return out[i].Days < out[j].Days
		}
		return out[i].Label < out[j].Label
	})
	return out
}
