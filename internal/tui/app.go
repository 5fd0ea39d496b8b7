// Package tui provides the interactive Bubble Tea dashboard for finburn.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finburn/internal/model"
	"github.com/theirongolddev/finburn/internal/store"
	"github.com/theirongolddev/finburn/internal/tui/components"
	"github.com/theirongolddev/finburn/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
)

// Source supplies the screens. *pipeline.Loader satisfies it.
type Source interface {
	Dashboard(ctx context.Context, month time.Time) (model.Dashboard, error)
	Budgets(ctx context.Context, month time.Time) (model.BudgetOverview, error)
	Goals(ctx context.Context) (model.GoalOverview, error)
	Bills(ctx context.Context) (model.BillOverview, error)
}

// Recorder accepts new transactions and announces writes. *store.Store
// satisfies it.
type Recorder interface {
	InsertTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error)
	Subscribe(buffer int) (<-chan store.Change, func())
}

// Options configures NewApp.
type Options struct {
	Currency  string
	Month     time.Time
	NeedSetup bool
}

type snapshot struct {
	dash    model.Dashboard
	budgets model.BudgetOverview
	goals   model.GoalOverview
	bills   model.BillOverview
}

type dataLoadedMsg struct {
	month time.Time
	snap  snapshot
	err   error
	took  time.Duration
}

type storeChangedMsg struct {
	change store.Change
}

type savedMsg struct {
	tx  model.Transaction
	err error
}

// App is the root Bubble Tea model.
type App struct {
	src     Source
	rec     Recorder
	changes <-chan store.Change
	cancel  func()

	currency string
	month    time.Time

	// Data
	snap     snapshot
	loaded   bool
	loading  bool
	pending  bool // a reload was requested while one was in flight
	loadErr  error
	loadTime time.Duration
	note     string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	scroll    int
	spinner   spinner.Model

	// Forms
	form      *huh.Form
	formKind  formKind
	txVals    *txValues
	setupVals *setupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
	changeBuffer     = 32
	loadTimeout      = 10 * time.Second
)

// NewApp creates a new TUI app model.
func NewApp(src Source, rec Recorder, opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	month := opts.Month
	if month.IsZero() {
		now := time.Now()
		month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	}
	currency := opts.Currency
	if currency == "" {
		currency = "$"
	}

	a := App{
		src:       src,
		rec:       rec,
		currency:  currency,
		month:     month,
		spinner:   sp,
		loading:   true,
		needSetup: opts.NeedSetup,
	}
	if rec != nil {
		a.changes, a.cancel = rec.Subscribe(changeBuffer)
	}
	return a
}

// Close releases the change subscription.
func (a App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadCmd(a.src, a.month),
		waitForChange(a.changes),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.showHelp || !a.loaded {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scrollBy(-1)
		case tea.MouseButtonWheelDown:
			a.scrollBy(1)
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.switchTab(tab)
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		if !a.loaded {
			return a, nil
		}
		return a.handleKey(msg.String())

	case dataLoadedMsg:
		// Results for a stale month, or from before a write, are dropped
		// and the current month is fetched again.
		if a.pending || !msg.month.Equal(a.month) {
			a.pending = false
			return a, loadCmd(a.src, a.month)
		}
		a.loading = false
		a.loadTime = msg.took
		if msg.err != nil {
			a.loadErr = msg.err
			a.loaded = true
			return a, nil
		}
		a.loadErr = nil
		a.snap = msg.snap
		a.loaded = true

		if a.needSetup && a.form == nil {
			return a, a.openSetupForm()
		}
		return a, nil

	case storeChangedMsg:
		cmds := []tea.Cmd{waitForChange(a.changes)}
		if a.loading {
			a.pending = true
		} else {
			a.loading = true
			cmds = append(cmds, loadCmd(a.src, a.month))
		}
		return a, tea.Batch(cmds...)

	case savedMsg:
		if msg.err != nil {
			a.note = "save failed: " + msg.err.Error()
		} else {
			a.note = fmt.Sprintf("saved %s %s", strings.ToLower(string(msg.tx.Type)), msg.tx.Amount.StringFixed(2))
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to an open form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) handleKey(key string) (tea.Model, tea.Cmd) {
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
	case "r":
		return a.reload()
	case "n":
		return a, a.openTransactionForm()
	case "<", "h":
		a.month = a.month.AddDate(0, -1, 0)
		return a.reload()
	case ">", "l":
		a.month = a.month.AddDate(0, 1, 0)
		return a.reload()
	case "j", "down":
		a.scrollBy(1)
	case "k", "up":
		a.scrollBy(-1)
	case "left", "shift+tab":
		a.switchTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
	case "right", "tab":
		a.switchTab((a.activeTab + 1) % len(components.Tabs))
	default:
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.switchTab(idx)
			}
		}
	}
	return a, nil
}

func (a App) reload() (tea.Model, tea.Cmd) {
	a.note = ""
	if a.loading {
		a.pending = true
		return a, nil
	}
	a.loading = true
	return a, loadCmd(a.src, a.month)
}

func (a *App) switchTab(idx int) {
	if idx != a.activeTab {
		a.activeTab = idx
		a.scroll = 0
	}
}

func (a *App) scrollBy(n int) {
	a.scroll += n
	if a.scroll < 0 {
		a.scroll = 0
	}
}

func (a App) contentWidth() int {
	if a.width > maxContentWidth {
		return maxContentWidth
	}
	return a.width
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  finburn needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if a.form != nil {
		return a.form.View()
	}
	if !a.loaded {
		return a.viewLoading()
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
		Padding(2, 4)
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logo.Render("◈ finburn") + muted.Render(" · personal finance") + "\n\n" +
		a.spinner.View() + muted.Render(" Loading "+a.month.Format("January 2006")+"...")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	title := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	bindings := []struct{ key, desc string }{
		{"o b g i a", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"< >", "Previous / Next month"},
		{"j k", "Scroll"},
		{"n", "New transaction"},
		{"r", "Reload"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(title.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", bind.key)), desc.Render(bind.desc))
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w, h, cw := a.width, a.height, a.contentWidth()

	pill := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	monthRow := lipgloss.NewStyle().Background(t.Surface).Width(w).
		Render(pill.Render(" ‹ ") + accent.Render(a.month.Format("January 2006")) + pill.Render(" › "))
	header := components.RenderTabBar(a.activeTab, w) + "\n" + monthRow

	note, isErr := a.statusNote()
	statusBar := components.RenderStatusBar(w, note, isErr)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	if a.loadErr != nil {
		content = components.ContentCard("Error", a.loadErr.Error(), cw)
	} else {
		switch a.activeTab {
		case 0:
			content = a.renderOverviewTab(cw)
		case 1:
			content = a.renderBudgetsTab(cw)
		case 2:
			content = a.renderGoalsTab(cw)
		case 3:
			content = a.renderBillsTab(cw)
		case 4:
			content = a.renderAdviceTab(cw)
		}
	}

	content = padHeight(truncateHeight(scrollLines(content, a.scroll), contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) statusNote() (string, bool) {
	switch {
	case a.loadErr != nil:
		return "load failed", true
	case a.note != "":
		return a.note, strings.HasPrefix(a.note, "save failed")
	case a.loading:
		return "refreshing...", false
	default:
		return fmt.Sprintf("loaded in %dms", a.loadTime.Milliseconds()), false
	}
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

// ─── Commands ───────────────────────────────────────────────────

// loadCmd fetches every screen for month concurrently.
func loadCmd(src Source, month time.Time) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		var snap snapshot
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) { snap.dash, err = src.Dashboard(ctx, month); return })
		g.Go(func() (err error) { snap.budgets, err = src.Budgets(ctx, month); return })
		g.Go(func() (err error) { snap.goals, err = src.Goals(ctx); return })
		g.Go(func() (err error) { snap.bills, err = src.Bills(ctx); return })
		if err := g.Wait(); err != nil {
			return dataLoadedMsg{month: month, err: err, took: time.Since(start)}
		}
		return dataLoadedMsg{month: month, snap: snap, took: time.Since(start)}
	}
}

// waitForChange blocks until the store reports a write. A nil or closed
// channel ends the subscription.
func waitForChange(ch <-chan store.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{change: c}
	}
}

func saveTransactionCmd(rec Recorder, tx model.Transaction) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		saved, err := rec.InsertTransaction(ctx, tx)
		return savedMsg{tx: saved, err: err}
	}
}

// ─── Layout helpers ─────────────────────────────────────────────

func scrollLines(s string, offset int) string {
	if offset <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if offset >= len(lines) {
		offset = len(lines) - 1
	}
	return strings.Join(lines[offset:], "\n")
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
