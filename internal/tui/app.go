// Package tui provides the interactive Bubble Tea dashboard for fintrack.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
	"github.com/theirongolddev/fintrack/internal/view"
)

// Tab indexes, in components.Tabs order.
const (
	tabOverview = iota
	tabCashflow
	tabSavings
	tabTargets
	tabGoal
	tabTasks
	numTabs
)

// ViewMsg carries a freshly recomputed view model.
type ViewMsg struct {
	View view.ViewModel
	Err  error
}

type tickMsg time.Time

// Options configures the dashboard.
type Options struct {
	Currency        string
	ShowCompleted   bool
	DueSoon         time.Duration
	RefreshInterval time.Duration
	NeedSetup       bool
}

// App is the root Bubble Tea model.
type App struct {
	ledger *ledger.Ledger
	opts   Options

	// Data
	vm     view.ViewModel
	loaded bool
	err    error
	status string

	// UI state
	width     int
	height    int
	activeTab int
	cursors   [numTabs]int
	showHelp  bool

	// Add/edit form (huh)
	form     *huh.Form
	formKind formKind
	formVals *formValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5
)

// NewApp creates a new dashboard over l.
func NewApp(l *ledger.Ledger, opts Options) App {
	if opts.RefreshInterval < time.Second {
		opts.RefreshInterval = 60 * time.Second
	}
	if opts.Currency == "" {
		opts.Currency = "INR"
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		ledger:  l,
		opts:    opts,
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		renderCmd(a.ledger, a.viewOptions()),
		tickCmd(a.opts.RefreshInterval),
	)
}

func (a App) viewOptions() view.Options {
	return view.Options{
		Now:           a.ledger.Now(),
		ShowCompleted: a.opts.ShowCompleted,
		DueSoon:       a.opts.DueSoon,
	}
}

func renderCmd(l *ledger.Ledger, opts view.Options) tea.Cmd {
	return func() tea.Msg {
		vm, err := l.Render(opts)
		return ViewMsg{View: vm, Err: err}
	}
}

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// reload re-reads every collection and recomputes every view.
func (a *App) reload() {
	vm, err := a.ledger.Render(a.viewOptions())
	a.applyView(vm, err)
}

func (a *App) applyView(vm view.ViewModel, err error) {
	if err != nil {
		a.err = err
		return
	}
	a.vm = vm
	a.err = nil
	for tab := range a.cursors {
		n := len(a.rowIDs(tab))
		if a.cursors[tab] >= n {
			a.cursors[tab] = n - 1
		}
		if a.cursors[tab] < 0 {
			a.cursors[tab] = 0
		}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, 72))
		}
		return a, nil

	case ViewMsg:
		a.loaded = true
		a.applyView(msg.View, msg.Err)

		if a.opts.NeedSetup && a.setupForm == nil {
			cfg, _ := config.Load()
			a.setupVals = SetupValuesFrom(cfg)
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case tickMsg:
		// Due-soon and overdue flags depend on the clock, so re-render on
		// every tick even when nothing was written.
		if a.loaded {
			a.reload()
		}
		return a, tickCmd(a.opts.RefreshInterval)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		return a.updateKey(msg)
	}

	// Forward unhandled messages to an open form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + numTabs) % numTabs
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % numTabs
	case "j", "down":
		if a.cursors[a.activeTab] < len(a.rowIDs(a.activeTab))-1 {
			a.cursors[a.activeTab]++
		}
	case "k", "up":
		if a.cursors[a.activeTab] > 0 {
			a.cursors[a.activeTab]--
		}
	case "g":
		a.cursors[a.activeTab] = 0
	case "G":
		a.cursors[a.activeTab] = max(0, len(a.rowIDs(a.activeTab))-1)
	case "r":
		a.reload()
		a.status = "Refreshed"
	case "d", "x", "delete":
		a.removeSelected()
	case " ", "enter":
		if a.activeTab == tabTasks {
			a.toggleSelected()
		}
	case "h":
		if a.activeTab == tabTasks {
			a.opts.ShowCompleted = !a.opts.ShowCompleted
			a.reload()
		}
	case "a":
		return a.openForm(a.addKindForTab())
	case "e":
		if a.activeTab == tabGoal {
			return a.openForm(formGoal)
		}
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.cursors[a.activeTab] > 0 {
			a.cursors[a.activeTab]--
		}
	case tea.MouseButtonWheelDown:
		if a.cursors[a.activeTab] < len(a.rowIDs(a.activeTab))-1 {
			a.cursors[a.activeTab]++
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// rowIDs returns the ids of the selectable rows on a tab, in display order.
func (a App) rowIDs(tab int) []string {
	var ids []string
	switch tab {
	case tabOverview:
		for _, f := range a.vm.Portfolio.Funds {
			ids = append(ids, f.ID)
		}
	case tabCashflow:
		for _, r := range a.vm.Cashflow.Rows {
			ids = append(ids, r.ID)
		}
	case tabSavings:
		for _, r := range a.vm.Savings.Rows {
			ids = append(ids, r.ID)
		}
	case tabTargets:
		for _, r := range a.vm.Targets.Rows {
			ids = append(ids, r.ID)
		}
	case tabTasks:
		for _, r := range a.vm.Tasks.Rows {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func (a App) selectedID() (string, bool) {
	ids := a.rowIDs(a.activeTab)
	c := a.cursors[a.activeTab]
	if c < 0 || c >= len(ids) {
		return "", false
	}
	return ids[c], true
}

func (a *App) removeSelected() {
	id, ok := a.selectedID()
	if !ok {
		return
	}

	var err error
	switch a.activeTab {
	case tabOverview:
		err = a.ledger.RemoveFund(id)
	case tabCashflow:
		err = a.ledger.RemoveCashflow(id)
	case tabSavings:
		err = a.ledger.RemoveSavings(id)
	case tabTargets:
		err = a.ledger.RemoveTarget(id)
	case tabTasks:
		err = a.ledger.RemoveTask(id)
	default:
		return
	}
	a.setResult("Removed", err)
	a.reload()
}

func (a *App) toggleSelected() {
	id, ok := a.selectedID()
	if !ok {
		return
	}
	t, err := a.ledger.ToggleTask(id)
	msg := "Reopened " + t.Title
	if t.Completed {
		msg = "Completed " + t.Title
	}
	a.setResult(msg, err)
	a.reload()
}

func (a *App) setResult(ok string, err error) {
	switch {
	case err == nil:
		a.status = ok
	case errors.Is(err, ledger.ErrNotFound):
		a.status = "Already gone (changed elsewhere)"
	case errors.Is(err, ledger.ErrIncomplete):
		a.status = "Missing a required field"
	default:
		a.status = "Error: " + err.Error()
	}
}

func (a App) addKindForTab() formKind {
	switch a.activeTab {
	case tabOverview:
		return formFund
	case tabCashflow:
		return formCashflow
	case tabSavings:
		return formSavings
	case tabTargets:
		return formTarget
	case tabGoal:
		return formGoal
	case tabTasks:
		return formTask
	}
	return formNone
}

func (a App) openForm(kind formKind) (tea.Model, tea.Cmd) {
	if kind == formNone {
		return a, nil
	}
	vals := newFormValues(a.ledger.Now())
	switch kind {
	case formSavings:
		vals.Kind = "fd"
	case formGoal:
		g := a.vm.Goal.Goal
		vals.Amount = g.TargetAmount.String()
		vals.Date = g.TargetDate.String()
		vals.Saved = g.CurrentSaved.String()
		vals.Monthly = g.MonthlyAdd.String()
	}

	a.formKind = kind
	a.formVals = vals
	a.form = newAddForm(kind, vals)
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width, 72))
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.form = nil
		a.status = "Cancelled"
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		status, err := submitForm(a.ledger, a.formKind, a.formVals)
		a.setResult(status, err)
		a.form = nil
		a.reload()
		return a, nil
	case huh.StateAborted:
		a.form = nil
		a.status = "Cancelled"
		return a, nil
	}
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg, _ := config.Load()
		a.setupVals.Apply(&cfg)
		if err := config.Save(cfg); err != nil {
			a.status = "Could not save config: " + err.Error()
		} else {
			a.status = "Saved " + config.Path()
		}
		theme.SetActive(cfg.Appearance.Theme)
		a.opts.Currency = cfg.General.Currency
		a.opts.DueSoon = time.Duration(cfg.Reminders.DueSoonHours) * time.Hour
		a.opts.NeedSetup = false
		a.setupForm = nil
		a.reload()
		return a, nil
	case huh.StateAborted:
		a.opts.NeedSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  fintrack needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 4).
		Render(a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(" Loading ledger..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	bindings := []struct{ key, desc string }{
		{"1-6 ← →", "Switch tab"},
		{"j k", "Move selection"},
		{"a", "Add a record on this tab"},
		{"e", "Edit the savings goal"},
		{"d", "Remove the selected record"},
		{"space", "Complete / reopen a reminder"},
		{"h", "Show or hide completed reminders"},
		{"r", "Reload from storage"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	right := a.status
	if a.err != nil {
		right = "Error: " + a.err.Error()
	}
	if right == "" {
		right = "Updated " + a.vm.At.Format("15:04")
	}
	statusBar := components.RenderStatusBar(w, a.hints(), right)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	if a.form != nil {
		content = components.ContentCard(a.formTitle(), a.form.View(), min(cw, 76))
	} else {
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabCashflow:
			content = a.renderCashflowTab(cw)
		case tabSavings:
			content = a.renderSavingsTab(cw)
		case tabTargets:
			content = a.renderTargetsTab(cw)
		case tabGoal:
			content = a.renderGoalTab(cw)
		case tabTasks:
			content = a.renderTasksTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) hints() string {
	if a.form != nil {
		return "[enter]next  [esc]cancel"
	}
	switch a.activeTab {
	case tabTasks:
		return "[a]dd  [space]done  [d]el  [h]ide done  [?]help  [q]uit"
	case tabGoal:
		return "[e]dit  [?]help  [q]uit"
	case tabOverview:
		return "[a]dd fund  [d]el fund  [?]help  [q]uit"
	}
	return "[a]dd  [d]el  [?]help  [q]uit"
}

func (a App) formTitle() string {
	switch a.formKind {
	case formCashflow:
		return "Add cashflow"
	case formSavings:
		return "Log savings"
	case formTarget:
		return "Add target"
	case formFund:
		return "Add fund"
	case formTask:
		return "Add reminder"
	case formGoal:
		return "Savings goal"
	}
	return ""
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
