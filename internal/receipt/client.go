package receipt

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/nhle/gift-tracker/internal/config"
	"github.com/nhle/gift-tracker/internal/logger"
)

// Client reads receipts from an IMAP mailbox. It never modifies the
// mailbox: bodies are fetched with PEEK so messages stay unread.
type Client struct {
	cfg      config.ReceiptsConfig
	password string
	log      *logger.Logger
	now      func() time.Time
}

// NewClient returns a client for the configured mailbox.
func NewClient(cfg config.ReceiptsConfig, password string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		cfg:      cfg,
		password: password,
		log:      log.With("component", "receipts"),
		now:      time.Now,
	}
}

// connect dials the server and logs in. The caller must log out.
func (c *Client) connect(_ context.Context) (*imapclient.Client, error) {
	addr := c.cfg.Host + ":" + c.cfg.Port

	var (
		client *imapclient.Client
		err    error
	)
	if c.cfg.TLS {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(c.cfg.Username, c.password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("authenticating %s: %w", c.cfg.Username, err)
	}
	return client, nil
}

// searchSince is the start of the look-back window.
func (c *Client) searchSince() time.Time {
	days := c.cfg.LookbackDays
	if days <= 0 {
		days = 30
	}
	return c.now().AddDate(0, 0, -days)
}

// List returns the receipts received within the look-back window, newest
// first, at most cfg.Limit of them.
func (c *Client) List(ctx context.Context) ([]Receipt, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Logout().Wait() }()

	mailbox := c.cfg.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}
	if _, err := client.Select(mailbox, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		return nil, fmt.Errorf("selecting %s: %w", mailbox, err)
	}

	searchData, err := client.UIDSearch(&imap.SearchCriteria{Since: c.searchSince()}, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching messages: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return []Receipt{}, nil
	}
	if c.cfg.Limit > 0 && len(uids) > c.cfg.Limit {
		uids = uids[len(uids)-c.cfg.Limit:]
	}

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := client.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	})
	defer fetchCmd.Close()

	receipts := make([]Receipt, 0, len(uids))
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}

		buf, err := msg.Collect()
		if err != nil {
			c.log.Warn("collecting message", "error", err)
			continue
		}

		raw := buf.FindBodySection(bodySection)
		if raw == nil {
			continue
		}
		r, err := Parse(raw)
		if err != nil {
			c.log.Warn("parsing message", "uid", buf.UID, "error", err)
			continue
		}
		r.UID = uint32(buf.UID)
		receipts = append(receipts, r)
	}

	if err := fetchCmd.Close(); err != nil {
		return receipts, fmt.Errorf("fetching messages: %w", err)
	}

	sort.SliceStable(receipts, func(i, j int) bool {
		return receipts[i].Date.After(receipts[j].Date)
	})
	c.log.Info("listed receipts", "mailbox", mailbox, "count", len(receipts))
	return receipts, nil
}
