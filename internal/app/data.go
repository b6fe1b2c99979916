package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/receipt"
	"github.com/nhle/gift-tracker/internal/service"
	"github.com/nhle/gift-tracker/internal/ui/receipts"
)

// ReceiptLister scans a mailbox for receipts.
type ReceiptLister interface {
	List(ctx context.Context) ([]receipt.Receipt, error)
}

// dataLoadedMsg carries one load of every collection. Each collection
// succeeds or fails on its own.
type dataLoadedMsg struct {
	recipients    []model.Recipient
	recipientsErr error
	gifts         []model.Gift
	giftsErr      error
	ideas         []model.Idea
	ideasErr      error
	occasions     []model.Occasion
	occasionsErr  error
	categories    []model.Category
	categoriesErr error
}

// recipientCreatedResultMsg is sent after a recipient create finishes.
type recipientCreatedResultMsg struct {
	recipient model.Recipient
	err       error
}

// giftCreatedResultMsg is sent after a gift create finishes.
type giftCreatedResultMsg struct {
	gift model.Gift
	err  error
}

// ideaCreatedResultMsg is sent after an idea create finishes.
type ideaCreatedResultMsg struct {
	idea model.Idea
	err  error
}

// settingsChangedMsg carries settings published by the settings store.
type settingsChangedMsg struct {
	settings model.AppSettings
}

// loadData reads every collection concurrently.
func loadData(svc *service.Services) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var msg dataLoadedMsg
		var g errgroup.Group

		g.Go(func() error {
			msg.recipients, msg.recipientsErr = svc.Recipients.GetAll(ctx)
			return nil
		})
		g.Go(func() error {
			msg.gifts, msg.giftsErr = svc.Gifts.GetAll(ctx)
			return nil
		})
		g.Go(func() error {
			msg.ideas, msg.ideasErr = svc.Ideas.GetAll(ctx)
			return nil
		})
		g.Go(func() error {
			msg.occasions, msg.occasionsErr = svc.Lookups.Occasions(ctx)
			return nil
		})
		g.Go(func() error {
			msg.categories, msg.categoriesErr = svc.Lookups.Categories(ctx)
			return nil
		})
		_ = g.Wait()

		return msg
	}
}

func createRecipient(svc *service.Services, r model.Recipient) tea.Cmd {
	return func() tea.Msg {
		created, err := svc.Recipients.Create(context.Background(), r)
		return recipientCreatedResultMsg{recipient: created, err: err}
	}
}

func createGift(svc *service.Services, g model.Gift) tea.Cmd {
	return func() tea.Msg {
		created, err := svc.Gifts.Create(context.Background(), g)
		return giftCreatedResultMsg{gift: created, err: err}
	}
}

func createIdea(svc *service.Services, i model.Idea) tea.Cmd {
	return func() tea.Msg {
		created, err := svc.Ideas.Create(context.Background(), i)
		return ideaCreatedResultMsg{idea: created, err: err}
	}
}

// scanReceipts lists the receipt mailbox.
func scanReceipts(l ReceiptLister) tea.Cmd {
	return func() tea.Msg {
		list, err := l.List(context.Background())
		return receipts.ReceiptsLoadedMsg{Receipts: list, Err: err}
	}
}

// waitForSettings blocks until the settings store publishes a change.
func waitForSettings(ch <-chan model.AppSettings) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return settingsChangedMsg{settings: s}
	}
}
