package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/gift-tracker/internal/keys"
	"github.com/nhle/gift-tracker/internal/logger"
	"github.com/nhle/gift-tracker/internal/model"
	"github.com/nhle/gift-tracker/internal/service"
	"github.com/nhle/gift-tracker/internal/settings"
	"github.com/nhle/gift-tracker/internal/theme"
	"github.com/nhle/gift-tracker/internal/ui"
	"github.com/nhle/gift-tracker/internal/ui/command"
	"github.com/nhle/gift-tracker/internal/ui/dashboard"
	"github.com/nhle/gift-tracker/internal/ui/detail"
	"github.com/nhle/gift-tracker/internal/ui/giftform"
	"github.com/nhle/gift-tracker/internal/ui/giftlist"
	helpview "github.com/nhle/gift-tracker/internal/ui/help"
	"github.com/nhle/gift-tracker/internal/ui/ideaform"
	"github.com/nhle/gift-tracker/internal/ui/idealist"
	"github.com/nhle/gift-tracker/internal/ui/receipts"
	"github.com/nhle/gift-tracker/internal/ui/recipientform"
	"github.com/nhle/gift-tracker/internal/ui/recipientlist"
	"github.com/nhle/gift-tracker/internal/ui/reports"
	"github.com/nhle/gift-tracker/internal/ui/settingsform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewRecipients
	ViewGifts
	ViewIdeas
	ViewReports
	ViewSettings
	ViewReceipts
	ViewDetail
	ViewHelp
	ViewCommand
	ViewRecipientCreate
	ViewGiftCreate
	ViewIdeaCreate
)

// tabs are the top-level views reachable with the number keys.
var tabs = []struct {
	view  ViewState
	key   string
	label string
}{
	{ViewDashboard, "1", "Dashboard"},
	{ViewRecipients, "2", "Recipients"},
	{ViewGifts, "3", "Gifts"},
	{ViewIdeas, "4", "Ideas"},
	{ViewReports, "5", "Reports"},
	{ViewSettings, "6", "Settings"},
}

// Options are the dependencies of the root model. Receipts is nil when no
// mailbox is configured.
type Options struct {
	Services *service.Services
	Settings *settings.Store
	Receipts ReceiptLister
	Log      *logger.Logger
}

type loadedSet struct {
	recipients bool
	gifts      bool
	ideas      bool
	occasions  bool
	categories bool
}

// Model is the root Bubble Tea model that manages view routing, layout and
// access to the services.
type Model struct {
	currentView  ViewState
	previousView ViewState
	// detailReturn is the view the detail sheet was opened from.
	detailReturn ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	services   *service.Services
	settings   *settings.Store
	settingsCh <-chan model.AppSettings
	receipts   ReceiptLister
	log        *logger.Logger
	now        func() time.Time
	prefs      model.AppSettings

	recipients []model.Recipient
	gifts      []model.Gift
	ideas      []model.Idea
	occasions  []model.Occasion
	categories []model.Category
	loaded     loadedSet

	dashboard     dashboard.Model
	recipientList recipientlist.Model
	giftList      giftlist.Model
	ideaList      idealist.Model
	reportsView   reports.Model
	settingsForm  settingsform.Model
	receiptsView  receipts.Model
	detail        detail.Model
	helpView      helpview.Model
	commandView   command.Model
	recipientForm recipientform.Model
	giftForm      giftform.Model
	ideaForm      ideaform.Model

	ready          bool
	receiptsLoaded bool
	notice         string
}

// New creates the root application model.
func New(opts Options) Model {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	k := keys.DefaultKeyMap()

	m := Model{
		currentView:   ViewDashboard,
		keys:          k,
		services:      opts.Services,
		settings:      opts.Settings,
		settingsCh:    opts.Settings.Subscribe(),
		receipts:      opts.Receipts,
		log:           log.With("component", "app"),
		now:           time.Now,
		dashboard:     dashboard.New(80, 24),
		recipientList: recipientlist.New(k, 80, 24),
		giftList:      giftlist.New(k, 80, 24),
		ideaList:      idealist.New(k, 80, 24),
		reportsView:   reports.New(80, 24),
		settingsForm:  settingsform.New(80, 24),
		receiptsView:  receipts.New(k, opts.Receipts != nil, 80, 24),
		detail:        detail.New(k, 80, 24),
		helpView:      helpview.New(k, 80, 24),
		commandView:   command.New(80, 24),
		recipientForm: recipientform.New(80, 24),
		giftForm:      giftform.New(80, 24),
		ideaForm:      ideaform.New(80, 24),
	}
	m.applySettings(opts.Settings.Get(), true)
	return m
}

// Init loads every collection and starts listening for settings changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadData(m.services),
		waitForSettings(m.settingsCh),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.dashboard.SetSize(w, h)
		m.recipientList.SetSize(w, h)
		m.giftList.SetSize(w, h)
		m.ideaList.SetSize(w, h)
		m.reportsView.SetSize(w, h)
		m.settingsForm.SetSize(w, h)
		m.receiptsView.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		m.recipientForm.SetSize(w, h)
		m.giftForm.SetSize(w, h)
		m.ideaForm.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case dataLoadedMsg:
		m.applyData(msg)
		return m, m.refreshViews()

	case settingsChangedMsg:
		return m, tea.Batch(
			m.applySettings(msg.settings, false),
			m.refreshViews(),
			waitForSettings(m.settingsCh),
		)

	case recipientlist.SelectedRecipientMsg:
		m.detail.SetSheet(detail.RecipientSheet(msg.Stats, m.gifts, m.detailContext()))
		m.switchTo(ViewDetail)
		return m, nil

	case giftlist.SelectedGiftMsg:
		m.detail.SetSheet(detail.GiftSheet(msg.Gift, m.detailContext()))
		m.switchTo(ViewDetail)
		return m, nil

	case idealist.SelectedIdeaMsg:
		m.detail.SetSheet(detail.IdeaSheet(msg.Idea, m.detailContext()))
		m.switchTo(ViewDetail)
		return m, nil

	case detail.BackMsg:
		m.switchTo(m.detailReturn)
		return m, nil

	case detail.NewGiftForMsg:
		m.switchTo(ViewGiftCreate)
		return m, m.giftForm.StartCreateFrom(model.Gift{
			RecipientID: msg.RecipientID,
			Year:        m.prefs.CurrentYear,
		}, "")

	case recipientform.RecipientCreatedMsg:
		return m, createRecipient(m.services, msg.Recipient)

	case giftform.GiftCreatedMsg:
		return m, createGift(m.services, msg.Gift)

	case ideaform.IdeaCreatedMsg:
		return m, createIdea(m.services, msg.Idea)

	case recipientform.RecipientFormCancelMsg, giftform.GiftFormCancelMsg, ideaform.IdeaFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case recipientCreatedResultMsg:
		if msg.err != nil {
			return m, m.recipientForm.ShowError(msg.err)
		}
		m.notice = "Added recipient " + msg.recipient.Name
		m.currentView = m.previousView
		return m, loadData(m.services)

	case giftCreatedResultMsg:
		if msg.err != nil {
			return m, m.giftForm.ShowError(msg.err)
		}
		m.notice = "Added gift " + msg.gift.Name
		m.currentView = m.previousView
		return m, loadData(m.services)

	case ideaCreatedResultMsg:
		if msg.err != nil {
			return m, m.ideaForm.ShowError(msg.err)
		}
		m.notice = "Added idea " + msg.idea.Name
		m.currentView = m.previousView
		return m, loadData(m.services)

	case settingsform.SettingsSavedMsg:
		for _, k := range model.SettingKeys {
			v, ok := msg.Changes[k]
			if !ok {
				continue
			}
			if err := m.settings.Update(k, v); err != nil {
				m.log.Warn("rejected setting", "key", k, "error", err)
				return m, m.settingsForm.ShowError(err)
			}
		}
		if len(msg.Changes) > 0 {
			m.notice = "Settings saved"
		}
		m.currentView = m.previousView
		return m, nil

	case settingsform.SettingsFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case receipts.ReceiptsLoadedMsg:
		if msg.Err != nil {
			m.log.Error("scanning receipts", "error", msg.Err)
		}
		m.receiptsLoaded = msg.Err == nil
		var cmd tea.Cmd
		m.receiptsView, cmd = m.receiptsView.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.receiptsView, cmd = m.receiptsView.Update(msg)
		return m, cmd

	case receipts.ReceiptSelectedMsg:
		m.switchTo(ViewGiftCreate)
		return m, m.giftForm.StartCreateFrom(msg.Receipt.GiftDraft(), "receipt: "+msg.Receipt.Subject)

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.capturesKeys() {
			if m.currentView == ViewCommand && key.Matches(msg, m.keys.Back) {
				m.currentView = m.previousView
				return m, nil
			}
			break
		}
		m.notice = ""
		if next, cmd, ok := m.handleGlobalKey(msg); ok {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// capturesKeys reports whether the active view consumes every key, so the
// global shortcuts must not fire.
func (m Model) capturesKeys() bool {
	switch m.currentView {
	case ViewCommand, ViewSettings, ViewRecipientCreate, ViewGiftCreate, ViewIdeaCreate:
		return true
	case ViewRecipients:
		return m.recipientList.Searching()
	case ViewGifts:
		return m.giftList.Searching()
	}
	return false
}

// handleGlobalKey runs the shortcuts shared by every non-input view.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.currentView != ViewDetail && m.currentView != ViewHelp {
			return m, tea.Quit, true
		}

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.switchTo(ViewHelp)
		return m, nil, true

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewHelp || m.currentView == ViewReceipts {
			m.currentView = m.previousView
			return m, nil, true
		}

	case key.Matches(msg, m.keys.Command):
		m.switchTo(ViewCommand)
		return m, m.commandView.Focus(), true

	case key.Matches(msg, m.keys.Refresh):
		if m.currentView == ViewReceipts {
			return m, m.startReceiptScan(), true
		}
		return m, loadData(m.services), true

	case key.Matches(msg, m.keys.Receipts):
		return m, m.openReceipts(), true

	case key.Matches(msg, m.keys.New):
		if m.currentView == ViewDetail {
			break
		}
		return m, m.openCreateForm(m.currentView), true
	}

	if v, ok := m.tabFor(msg); ok {
		return m, m.openTab(v), true
	}
	return m, nil, false
}

// tabFor maps the number keys to their top-level view.
func (m Model) tabFor(msg tea.KeyMsg) (ViewState, bool) {
	switch {
	case key.Matches(msg, m.keys.Dashboard):
		return ViewDashboard, true
	case key.Matches(msg, m.keys.Recipients):
		return ViewRecipients, true
	case key.Matches(msg, m.keys.Gifts):
		return ViewGifts, true
	case key.Matches(msg, m.keys.Ideas):
		return ViewIdeas, true
	case key.Matches(msg, m.keys.Reports):
		return ViewReports, true
	case key.Matches(msg, m.keys.Settings):
		return ViewSettings, true
	}
	return 0, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewRecipients:
		m.recipientList, cmd = m.recipientList.Update(msg)
	case ViewGifts:
		m.giftList, cmd = m.giftList.Update(msg)
	case ViewIdeas:
		m.ideaList, cmd = m.ideaList.Update(msg)
	case ViewReports:
		m.reportsView, cmd = m.reportsView.Update(msg)
	case ViewSettings:
		m.settingsForm, cmd = m.settingsForm.Update(msg)
	case ViewReceipts:
		m.receiptsView, cmd = m.receiptsView.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewRecipientCreate:
		m.recipientForm, cmd = m.recipientForm.Update(msg)
	case ViewGiftCreate:
		m.giftForm, cmd = m.giftForm.Update(msg)
	case ViewIdeaCreate:
		m.ideaForm, cmd = m.ideaForm.Update(msg)
	}

	return m, cmd
}

// switchTo makes v the active view, remembering where to return.
func (m *Model) switchTo(v ViewState) {
	if m.currentView == v {
		return
	}
	if v == ViewDetail {
		m.detailReturn = m.currentView
	}
	m.previousView = m.currentView
	m.currentView = v
}

// openTab switches to a top-level view.
func (m *Model) openTab(v ViewState) tea.Cmd {
	m.switchTo(v)
	if v == ViewSettings {
		return m.settingsForm.Start(m.settings.Get())
	}
	return nil
}

// openCreateForm opens the create form matching the view: recipients and
// ideas get their own form, everything else creates a gift.
func (m *Model) openCreateForm(from ViewState) tea.Cmd {
	switch from {
	case ViewRecipients:
		m.switchTo(ViewRecipientCreate)
		return m.recipientForm.StartCreate()
	case ViewIdeas:
		m.switchTo(ViewIdeaCreate)
		return m.ideaForm.StartCreate()
	default:
		return m.openGiftForm()
	}
}

func (m *Model) openGiftForm() tea.Cmd {
	if len(m.recipients) == 0 {
		m.notice = "Add a recipient before recording gifts"
		return nil
	}
	m.switchTo(ViewGiftCreate)
	return m.giftForm.StartCreate(m.prefs.CurrentYear)
}

// openReceipts shows the receipts view, scanning the mailbox the first
// time.
func (m *Model) openReceipts() tea.Cmd {
	m.switchTo(ViewReceipts)
	if m.receiptsLoaded {
		return nil
	}
	return m.startReceiptScan()
}

func (m *Model) startReceiptScan() tea.Cmd {
	if m.receipts == nil {
		return nil
	}
	return tea.Batch(m.receiptsView.StartLoading(), scanReceipts(m.receipts))
}

// applyData stores the collections that loaded. Failed collections are
// logged and keep their previous contents.
func (m *Model) applyData(msg dataLoadedMsg) {
	check := func(name string, err error) bool {
		if err != nil {
			m.log.Error("loading data", "collection", name, "error", err)
			return false
		}
		return true
	}

	if check("recipients", msg.recipientsErr) {
		m.recipients = msg.recipients
		m.loaded.recipients = true
	}
	if check("gifts", msg.giftsErr) {
		m.gifts = msg.gifts
		m.loaded.gifts = true
	}
	if check("ideas", msg.ideasErr) {
		m.ideas = msg.ideas
		m.loaded.ideas = true
	}
	if check("occasions", msg.occasionsErr) {
		m.occasions = msg.occasions
		m.loaded.occasions = true
	}
	if check("categories", msg.categoriesErr) {
		m.categories = msg.categories
		m.loaded.categories = true
	}
}

// refreshViews hands the cached collections to every view whose inputs
// have loaded. Views missing an input stay in their loading state.
func (m *Model) refreshViews() tea.Cmd {
	var cmds []tea.Cmd
	l := m.loaded

	if l.recipients && l.gifts {
		cmds = append(cmds,
			m.giftList.SetData(m.gifts, m.recipients),
			m.recipientList.SetData(m.recipients, m.gifts),
		)
		m.reportsView.SetData(m.recipients, m.gifts)
	}
	if l.recipients && l.ideas {
		cmds = append(cmds, m.ideaList.SetData(m.ideas, m.recipients))
	}
	if l.recipients && l.gifts && l.ideas && l.occasions {
		m.dashboard.SetData(dashboard.Data{
			Recipients: m.recipients,
			Gifts:      m.gifts,
			Ideas:      m.ideas,
			Occasions:  m.occasions,
			Settings:   m.prefs,
			Now:        m.now(),
		})
	}
	if l.recipients {
		m.giftForm.SetOptions(m.recipients, m.occasions, m.categories)
		m.ideaForm.SetOptions(m.recipients, m.categories)
	}

	return tea.Batch(cmds...)
}

// applySettings pushes display preferences into the views.
func (m *Model) applySettings(s model.AppSettings, initial bool) tea.Cmd {
	prev := m.prefs
	m.prefs = s

	if initial || prev.Theme != s.Theme {
		theme.Apply(s.Theme)
	}
	cmds := []tea.Cmd{
		m.giftList.SetCurrency(s.Currency),
		m.recipientList.SetCurrency(s.Currency),
		m.ideaList.SetCurrency(s.Currency),
	}
	m.receiptsView.SetCurrency(s.Currency)
	m.reportsView.SetPreferences(s.CurrentYear, s.Currency)
	if initial || prev.CurrentYear != s.CurrentYear {
		cmds = append(cmds, m.giftList.SetYear(s.CurrentYear))
	}
	return tea.Batch(cmds...)
}

// detailContext collects the preferences and names the detail sheets show.
func (m Model) detailContext() detail.Context {
	c := detail.Context{
		Currency:   m.prefs.Currency,
		DateFormat: m.prefs.DateFormat,
		Now:        m.now(),
		Recipients: make(map[string]string, len(m.recipients)),
		Occasions:  make(map[string]string, len(m.occasions)),
		Categories: make(map[string]string, len(m.categories)),
	}
	for _, r := range m.recipients {
		c.Recipients[r.ID] = r.Name
	}
	for _, o := range m.occasions {
		c.Occasions[o.ID] = o.Name
	}
	for _, cat := range m.categories {
		c.Categories[cat.ID] = cat.Name
	}
	return c
}

// executeCommand handles a command from the command palette.
func (m *Model) executeCommand(cmd command.CommandMsg) tea.Cmd {
	args := cmd.Args()

	switch cmd.Name() {
	case "dashboard":
		return m.openTab(ViewDashboard)
	case "recipients":
		return m.openTab(ViewRecipients)
	case "gifts":
		return m.openTab(ViewGifts)
	case "ideas":
		return m.openTab(ViewIdeas)
	case "reports":
		return m.openTab(ViewReports)
	case "settings":
		return m.openTab(ViewSettings)
	case "receipts":
		return m.openReceipts()
	case "new":
		if len(args) == 0 {
			break
		}
		switch strings.ToLower(args[0]) {
		case "recipient":
			return m.openCreateForm(ViewRecipients)
		case "idea":
			return m.openCreateForm(ViewIdeas)
		case "gift":
			return m.openGiftForm()
		}
	case "year":
		return m.yearCommand(args)
	case "status":
		return m.statusCommand(args)
	case "refresh":
		return loadData(m.services)
	case "quit", "q":
		return tea.Quit
	}

	m.notice = fmt.Sprintf("unknown command: %s", string(cmd))
	return nil
}

// yearCommand switches the current year setting, or with "all" lists gifts
// of every year.
func (m *Model) yearCommand(args []string) tea.Cmd {
	if len(args) == 0 {
		m.notice = "usage: year <yyyy|all>"
		return nil
	}
	m.switchTo(ViewGifts)
	if strings.EqualFold(args[0], "all") {
		return m.giftList.SetYear(0)
	}
	if _, err := strconv.Atoi(args[0]); err != nil {
		m.notice = "usage: year <yyyy|all>"
		return nil
	}
	if err := m.settings.Update(model.SettingCurrentYear, args[0]); err != nil {
		m.notice = err.Error()
		return nil
	}
	return nil
}

// statusCommand filters the gift list by status.
func (m *Model) statusCommand(args []string) tea.Cmd {
	if len(args) == 0 {
		m.notice = "usage: status <name|all>"
		return nil
	}
	name := strings.ToLower(args[0])
	if name == "all" {
		m.switchTo(ViewGifts)
		return m.giftList.SetStatus("")
	}
	for _, s := range model.GiftStatuses {
		if string(s) == name {
			m.switchTo(ViewGifts)
			return m.giftList.SetStatus(s)
		}
	}
	m.notice = "unknown status: " + args[0]
	return nil
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var headerTabs []ui.Tab
	if !m.prefs.SidebarCollapsed {
		for _, t := range tabs {
			headerTabs = append(headerTabs, ui.Tab{
				Key:    t.key,
				Label:  t.label,
				Active: m.currentView == t.view,
			})
		}
	}
	status := fmt.Sprintf("%d · %s", m.prefs.CurrentYear, m.prefs.Currency)
	header := m.layout.RenderHeader("Gift Tracker", headerTabs, status)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.View()
	case ViewRecipients:
		return m.recipientList.View()
	case ViewGifts:
		return m.giftList.View()
	case ViewIdeas:
		return m.ideaList.View()
	case ViewReports:
		return m.reportsView.View()
	case ViewSettings:
		return m.settingsForm.View()
	case ViewReceipts:
		return m.receiptsView.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewRecipientCreate:
		return m.recipientForm.View()
	case ViewGiftCreate:
		return m.giftForm.View()
	case ViewIdeaCreate:
		return m.ideaForm.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.notice != "" {
		return m.notice
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewDetail:
		return "esc back | n new gift | j/k scroll"
	case ViewSettings, ViewRecipientCreate, ViewGiftCreate, ViewIdeaCreate:
		return "enter submit | esc cancel"
	case ViewReceipts:
		return "enter create gift | r rescan | esc back"
	case ViewReports:
		return "←/→ year | 1-6 views | q quit"
	case ViewGifts:
		return "q quit | ? help | n new | / search | tab status | enter open"
	case ViewRecipients:
		return "q quit | ? help | n new | / search | enter open"
	default:
		return "q quit | ? help | : command | n new | i receipts | 1-6 views"
	}
}
