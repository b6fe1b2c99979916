package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nhle/gift-tracker/internal/app"
	"github.com/nhle/gift-tracker/internal/config"
	"github.com/nhle/gift-tracker/internal/credential"
	"github.com/nhle/gift-tracker/internal/logger"
	"github.com/nhle/gift-tracker/internal/receipt"
	"github.com/nhle/gift-tracker/internal/report"
	"github.com/nhle/gift-tracker/internal/service"
	"github.com/nhle/gift-tracker/internal/settings"
	"github.com/nhle/gift-tracker/internal/store"
	"github.com/nhle/gift-tracker/internal/ui/reports"
)

func main() {
	var (
		configPath    string
		dbPath        string
		printReport   bool
		setPassword   bool
		clearPassword bool
	)
	flag.StringVar(&configPath, "config", config.DefaultPath(), "path to config.yaml")
	flag.StringVar(&dbPath, "db", "", "path to the SQLite database (overrides database.path)")
	flag.BoolVar(&printReport, "report", false, "print the spending report for the current year and exit")
	flag.BoolVar(&setPassword, "set-password", false, "store the receipt mailbox password in the system keyring")
	flag.BoolVar(&clearPassword, "clear-password", false, "remove the receipt mailbox password from the system keyring")
	flag.Parse()

	if err := run(configPath, dbPath, printReport, setPassword, clearPassword); err != nil {
		fmt.Fprintf(os.Stderr, "gifttracker: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dbPath string, printReport, setPassword, clearPassword bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if setPassword {
		return storePassword(cfg.Receipts)
	}
	if clearPassword {
		return removePassword(cfg.Receipts)
	}

	logPath := cfg.Log.File
	if printReport {
		logPath = ""
	}
	log, err := logger.New(cfg.Log.Level, logPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	handle := store.NewHandle(cfg.Database.Path)
	defer handle.Close()

	svc := service.New(handle, log)
	prefs := settings.New(
		settings.NewFileCache(config.SettingsCachePath(configPath)),
		settings.HandlePersister{Handle: handle},
		log,
	)
	defer prefs.Wait()

	if printReport {
		prefs.Reconcile(context.Background())
		prefs.Wait()
		current := prefs.Get()
		return writeReport(svc, current.CurrentYear, current.Currency)
	}

	opts := app.Options{
		Services: svc,
		Settings: prefs,
		Log:      log,
	}
	if cfg.Receipts.Enabled() {
		password, err := credential.MailboxPassword(cfg.Receipts.Username)
		switch {
		case err == nil:
			opts.Receipts = receipt.NewClient(cfg.Receipts, password, log)
		case errors.Is(err, credential.ErrNotFound):
			log.Warn("receipt mailbox configured without a password", "username", cfg.Receipts.Username)
		default:
			log.Error("reading mailbox password", "error", err)
		}
	}

	// The root model subscribes to settings, so reconcile after creating it.
	root := app.New(opts)
	prefs.Reconcile(context.Background())

	log.Info("starting", "db", cfg.Database.Path)
	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// writeReport prints the spending table for year to stdout.
func writeReport(svc *service.Services, year int, currency string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	recipients, err := svc.Recipients.GetAll(ctx)
	if err != nil {
		return err
	}
	gifts, err := svc.Gifts.GetAll(ctx)
	if err != nil {
		return err
	}

	ofYear := report.FilterGifts(gifts, report.GiftFilter{Year: year})

	fmt.Printf("Spending %d\n", year)
	fmt.Println(reports.SpendingTable(recipients, ofYear, currency).Render())
	return nil
}

// storePassword prompts for the mailbox password and saves it in the
// keyring.
func storePassword(cfg config.ReceiptsConfig) error {
	if cfg.Username == "" {
		return errors.New("receipts.username is not set in the config file")
	}

	fmt.Printf("Password for %s@%s: ", cfg.Username, cfg.Host)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimSpace(string(raw))
	if password == "" {
		return errors.New("empty password")
	}

	if err := credential.Set(credential.MailboxKey(cfg.Username), password); err != nil {
		return err
	}
	fmt.Println("Password saved to the system keyring.")
	return nil
}

// removePassword deletes the stored mailbox password, if any.
func removePassword(cfg config.ReceiptsConfig) error {
	if cfg.Username == "" {
		return errors.New("receipts.username is not set in the config file")
	}

	err := credential.Delete(credential.MailboxKey(cfg.Username))
	switch {
	case errors.Is(err, credential.ErrNotFound):
		fmt.Println("No password stored for " + cfg.Username + ".")
	case err != nil:
		return err
	default:
		fmt.Println("Password removed from the system keyring.")
	}
	return nil
}
