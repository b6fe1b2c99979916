// Package receipt scans a mailbox for purchase receipts and turns them into
// gift drafts.
package receipt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nhle/gift-tracker/internal/model"
)

// Receipt is a message that may describe a purchase.
type Receipt struct {
	UID         uint32
	MessageID   string
	Subject     string
	From        string
	FromAddress string
	Date        time.Time
	Text        string
	Attachments []Attachment
}

// Attachment holds metadata about a message attachment.
type Attachment struct {
	Filename string
	Size     int64
	MIMEType string
}

// AttachmentSummary names the first attachment and counts the rest, e.g.
// "invoice.pdf (48 kB) +1". It is empty when there are none.
func (r Receipt) AttachmentSummary() string {
	if len(r.Attachments) == 0 {
		return ""
	}
	first := r.Attachments[0]
	name := first.Filename
	if name == "" {
		name = first.MIMEType
	}
	out := fmt.Sprintf("%s (%s)", name, humanize.Bytes(uint64(first.Size)))
	if rest := len(r.Attachments) - 1; rest > 0 {
		out += fmt.Sprintf(" +%d", rest)
	}
	return out
}

var subjectPrefixes = []string{"re:", "fw:", "fwd:", "your order of", "your order:", "order confirmation:", "receipt for"}

// amountPattern finds currency amounts such as "$1,234.56".
var amountPattern = regexp.MustCompile(`[$€£]\s?([0-9][0-9,]*\.[0-9]{2})`)

// totalLinePattern matches a line naming the order total.
var totalLinePattern = regexp.MustCompile(`(?i)^\s*(order |grand )?total\b`)

// GiftDraft pre-fills a gift from the receipt. The recipient, occasion
// and category are left for the user to choose.
func (r Receipt) GiftDraft() model.Gift {
	g := model.Gift{
		Name:             cleanSubject(r.Subject),
		PurchaseLocation: r.From,
		Status:           model.GiftPurchased,
		ReceiptText:      strings.TrimSpace(r.Text),
		PurchasePrice:    Amount(r.Text),
	}
	if g.PurchaseLocation == "" {
		g.PurchaseLocation = r.FromAddress
	}
	if !r.Date.IsZero() {
		g.PurchaseDate = r.Date.Format("2006-01-02")
		g.Year = r.Date.Year()
	}
	return g
}

// cleanSubject strips reply and order prefixes from a subject line.
func cleanSubject(subject string) string {
	s := strings.TrimSpace(subject)
	for changed := true; changed; {
		changed = false
		lower := strings.ToLower(s)
		for _, p := range subjectPrefixes {
			if strings.HasPrefix(lower, p) {
				s = strings.TrimSpace(s[len(p):])
				changed = true
				break
			}
		}
	}
	return strings.Trim(s, `"' `)
}

// Amount returns the order total found in text: the amount on the first
// "Total" line, or else the largest amount in the text. It returns 0 when
// there is none.
func Amount(text string) float64 {
	for _, line := range strings.Split(text, "\n") {
		if !totalLinePattern.MatchString(line) {
			continue
		}
		if m := amountPattern.FindStringSubmatch(line); m != nil {
			return parseAmount(m[1])
		}
	}

	var max float64
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		if v := parseAmount(m[1]); v > max {
			max = v
		}
	}
	return max
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML turns an HTML body into readable plain text.
func stripHTML(html string) string {
	if html == "" {
		return ""
	}

	result := html
	for _, tag := range []string{
		"<br>", "<br/>", "<br />", "</p>", "</div>", "</li>", "</tr>",
	} {
		result = strings.ReplaceAll(result, tag, "\n")
	}

	result = htmlTagPattern.ReplaceAllString(result, "")

	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	result = replacer.Replace(result)

	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(result)
}
