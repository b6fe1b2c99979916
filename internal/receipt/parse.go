package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message/mail"
)

// Parse reads a raw RFC 5322 message into a Receipt. The plain-text part
// is preferred; an HTML-only message is converted to text.
func Parse(raw []byte) (Receipt, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return Receipt{}, fmt.Errorf("reading message: %w", err)
	}
	defer mr.Close()

	var r Receipt
	h := mr.Header
	r.Subject, _ = h.Subject()
	r.MessageID, _ = h.MessageID()
	r.Date, _ = h.Date()
	if from, err := h.AddressList("From"); err == nil && len(from) > 0 {
		r.From = from[0].Name
		r.FromAddress = from[0].Address
	}

	text, html, attachments, err := readParts(mr)
	if err != nil {
		return Receipt{}, err
	}
	r.Text = text
	if strings.TrimSpace(r.Text) == "" && html != "" {
		r.Text = stripHTML(html)
	}
	r.Attachments = attachments
	return r, nil
}

// readParts walks the message parts and collects the first text/plain and
// text/html bodies plus attachment metadata.
func readParts(mr *mail.Reader) (text, html string, attachments []Attachment, err error) {
	for {
		part, perr := mr.NextPart()
		if errors.Is(perr, io.EOF) {
			break
		}
		if perr != nil {
			return "", "", nil, fmt.Errorf("reading message part: %w", perr)
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			body, readErr := io.ReadAll(part.Body)
			if readErr != nil {
				continue
			}

			switch {
			case strings.HasPrefix(contentType, "text/plain") && text == "":
				text = string(body)
			case strings.HasPrefix(contentType, "text/html") && html == "":
				html = string(body)
			}

		case *mail.AttachmentHeader:
			filename, _ := h.Filename()
			contentType, _, _ := h.ContentType()

			n, readErr := io.Copy(io.Discard, part.Body)
			if readErr != nil {
				continue
			}
			attachments = append(attachments, Attachment{
				Filename: filename,
				Size:     n,
				MIMEType: contentType,
			})
		}
	}
	return text, html, attachments, nil
}
