// Package formkit holds the validators and parsers shared by the huh forms.
package formkit

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Width clamps a form width to the terminal.
func Width(termWidth int) int {
	w := termWidth - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

// Height clamps a form height to the terminal.
func Height(termHeight int) int {
	h := termHeight - 6
	if h < 10 {
		h = 10
	}
	return h
}

// Required rejects blank input.
func Required(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

// OptionalDate accepts blank input or a YYYY-MM-DD date.
func OptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return errors.New("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

// OptionalAmount accepts blank input or a non-negative amount.
func OptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := ParseAmount(s)
	return err
}

// RequiredAmount accepts a non-negative amount.
func RequiredAmount(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		_, err := ParseAmount(s)
		return err
	}
}

// Year accepts a four digit year.
func Year(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1900 || n > 2200 {
		return errors.New("enter a year such as 2025")
	}
	return nil
}

// ParseAmount parses a money amount, ignoring a leading currency symbol and
// thousands separators.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£¥₹")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errors.New("enter an amount such as 24.99")
	}
	if v < 0 {
		return 0, errors.New("amount cannot be negative")
	}
	return v, nil
}

// AmountPtr parses an optional amount; blank or invalid input yields nil.
func AmountPtr(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := ParseAmount(s)
	if err != nil {
		return nil
	}
	return &v
}

// FormatAmount renders an optional amount back into an input value.
func FormatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// SplitList splits comma separated input into trimmed, non-empty entries.
// The result is never nil.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Share is one "name amount" entry of a contributor list.
type Share struct {
	Name   string
	Amount float64
}

// ParseShares parses "Ben 40, Ana 20.50" into shares. An entry without an
// amount gets zero.
func ParseShares(s string) ([]Share, error) {
	var out []Share
	for _, entry := range SplitList(s) {
		fields := strings.Fields(entry)
		share := Share{Name: entry}
		if len(fields) > 1 {
			if v, err := ParseAmount(fields[len(fields)-1]); err == nil {
				share.Name = strings.Join(fields[:len(fields)-1], " ")
				share.Amount = v
			}
		}
		if share.Name == "" {
			return nil, fmt.Errorf("contributor %q has no name", entry)
		}
		out = append(out, share)
	}
	return out, nil
}

// ValidateShares is the huh validator for ParseShares input.
func ValidateShares(s string) error {
	_, err := ParseShares(s)
	return err
}
