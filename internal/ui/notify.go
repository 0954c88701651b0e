package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/leo/creators-guide/internal/update"
)

// Opener hands a URL to the platform's default handler.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

// Open calls f(url).
func (f OpenerFunc) Open(url string) error { return f(url) }

// Action is what the user chose in the notification.
type Action int

const (
	ActionNone Action = iota
	ActionDismiss
	ActionDownload
)

func (a Action) String() string {
	switch a {
	case ActionDismiss:
		return "dismiss"
	case ActionDownload:
		return "download"
	default:
		return "none"
	}
}

// NotifyOptions configures the interactive notification.
type NotifyOptions struct {
	Checker update.Runner
	Opener  Opener
	// Copy writes text to the clipboard; defaults to atotto/clipboard.
	Copy    func(string) error
	NoColor bool
	Width   int
}

type notifyKeyMap struct {
	Download key.Binding
	Copy     key.Binding
	Dismiss  key.Binding
}

// ShortHelp implements help.KeyMap
func (k notifyKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Download, k.Copy, k.Dismiss}
}

// FullHelp implements help.KeyMap
func (k notifyKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newNotifyKeyMap() notifyKeyMap {
	return notifyKeyMap{
		Download: key.NewBinding(
			key.WithKeys("d", "enter"),
			key.WithHelp("d/enter", "download"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy link"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("l", "esc", "q", "ctrl+c"),
			key.WithHelp("l/esc", "later"),
		),
	}
}

type checkDoneMsg update.Result

type openDoneMsg struct {
	url string
	err error
}

type copyDoneMsg struct {
	url string
	err error
}

// NotifyModel is the bubbletea model behind `creators-guide notify`.
type NotifyModel struct {
	ctx     context.Context
	opts    NotifyOptions
	keys    notifyKeyMap
	help    help.Model
	spinner spinner.Model
	styles  notifyStyles

	loading bool
	result  update.Result
	action  Action
	status  string
	err     error
	width   int
}

// NewNotifyModel creates the model. The check starts from Init.
func NewNotifyModel(ctx context.Context, opts NotifyOptions) *NotifyModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &NotifyModel{
		ctx:     ctx,
		opts:    opts,
		keys:    newNotifyKeyMap(),
		help:    help.New(),
		spinner: s,
		styles:  newNotifyStyles(opts.NoColor),
		loading: true,
		width:   opts.Width,
	}
}

// Result returns the check result (zero until the check finished).
func (m *NotifyModel) Result() update.Result { return m.result }

// Action returns what the user chose.
func (m *NotifyModel) Action() Action { return m.action }

// Err returns the last open or copy failure.
func (m *NotifyModel) Err() error { return m.err }

// Loading reports whether the check is still running.
func (m *NotifyModel) Loading() bool { return m.loading }

// Init implements tea.Model
func (m *NotifyModel) Init() tea.Cmd {
	m.spinner.Style = m.styles.spinner
	return tea.Batch(m.spinner.Tick, m.checkCmd())
}

func (m *NotifyModel) checkCmd() tea.Cmd {
	runner, ctx := m.opts.Checker, m.ctx
	return func() tea.Msg {
		if runner == nil {
			return checkDoneMsg(update.Result{Status: update.StatusUpToDate})
		}
		return checkDoneMsg(runner.Check(ctx))
	}
}

func (m *NotifyModel) openCmd(url string) tea.Cmd {
	opener := m.opts.Opener
	return func() tea.Msg {
		if opener == nil {
			return openDoneMsg{url: url, err: fmt.Errorf("no handler to open %s", url)}
		}
		return openDoneMsg{url: url, err: opener.Open(url)}
	}
}

func (m *NotifyModel) copyCmd(url string) tea.Cmd {
	copyFn := m.opts.Copy
	return func() tea.Msg {
		return copyDoneMsg{url: url, err: copyFn(url)}
	}
}

// Update implements tea.Model
func (m *NotifyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case checkDoneMsg:
		m.loading = false
		m.result = update.Result(msg)
		return m, nil

	case openDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.action = ActionNone
			m.status = "Could not open the link. Press c to copy it instead."
			return m, nil
		}
		return m, tea.Quit

	case copyDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = "Clipboard unavailable: " + msg.url
			return m, nil
		}
		m.err = nil
		m.status = "Copied download link to clipboard."
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *NotifyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Dismiss) {
		m.action = ActionDismiss
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}

	if !m.result.UpdateAvailable() {
		// Only "Dismiss" is offered outside the available state.
		if msg.Type == tea.KeyEnter {
			m.action = ActionDismiss
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Download):
		m.action = ActionDownload
		m.err = nil
		m.status = "Opening " + m.result.TargetURL()
		return m, m.openCmd(m.result.TargetURL())
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyCmd(m.result.TargetURL())
	}
	return m, nil
}

// View implements tea.Model
func (m *NotifyModel) View() string {
	width := m.width - 4
	if width > 76 {
		width = 76
	}
	if width < 30 {
		width = 30
	}

	var body string
	switch {
	case m.loading:
		body = lipgloss.JoinHorizontal(lipgloss.Center,
			m.spinner.View(), " ", m.styles.info.Render(TitleChecking))

	case m.result.Status == update.StatusDisabled:
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.title.Render(TitleDisabled),
			"",
			m.styles.muted.Width(width-6).Render(bodyDisabled),
			"",
			m.styles.button.Render("enter Dismiss"),
		)

	case m.result.UpdateAvailable():
		parts := []string{
			m.styles.available.Render(TitleAvailable),
			m.styles.text.Render(AvailableLine(m.result)),
		}
		if notes := RenderNotes(m.result.ReleaseNotes, width-6, m.opts.NoColor); notes != "" {
			parts = append(parts, "", notes)
		}
		parts = append(parts,
			"",
			m.styles.link.Render(m.result.TargetURL()),
			"",
			lipgloss.JoinHorizontal(lipgloss.Top,
				m.styles.button.Render("l Later"), "  ",
				m.styles.primary.Render("d Download")),
		)
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)

	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.success.Render(TitleUpToDate),
			m.styles.muted.Render("Current version: "+m.result.CurrentVersion),
			"",
			m.styles.button.Render("enter Dismiss"),
		)
	}

	var b strings.Builder
	b.WriteString(m.styles.card.Width(width).Render(body))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.muted.Render(m.status))
		b.WriteString("\n")
	}
	if !m.loading && m.result.UpdateAvailable() {
		b.WriteString(m.help.View(m.keys))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderNotes renders markdown release notes for the terminal, truncated to
// a compact card. It falls back to the trimmed plain text.
func RenderNotes(notes string, width int, noColor bool) string {
	notes = TrimNotes(notes, maxNoteLines)
	if notes == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	style := "dark"
	if noColor {
		style = "notty"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return notes
	}
	out, err := renderer.Render(notes)
	if err != nil {
		return notes
	}
	return strings.Trim(out, "\n")
}

// RunNotify runs the notification until the user picks an action.
func RunNotify(ctx context.Context, opts NotifyOptions) (*NotifyModel, error) {
	InitTerminal()
	m := NewNotifyModel(ctx, opts)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	final, err := p.Run()
	ResetTerminalAfterTUI()
	if err != nil {
		return m, fmt.Errorf("notification: %w", err)
	}
	if fm, ok := final.(*NotifyModel); ok {
		return fm, nil
	}
	return m, nil
}

type notifyStyles struct {
	card      lipgloss.Style
	title     lipgloss.Style
	available lipgloss.Style
	success   lipgloss.Style
	info      lipgloss.Style
	text      lipgloss.Style
	muted     lipgloss.Style
	link      lipgloss.Style
	button    lipgloss.Style
	primary   lipgloss.Style
	spinner   lipgloss.Style
}

func newNotifyStyles(noColor bool) notifyStyles {
	color := func(s lipgloss.Style, c string) lipgloss.Style {
		if noColor {
			return s
		}
		return s.Foreground(lipgloss.Color(c))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2)
	if !noColor {
		card = card.BorderForeground(lipgloss.Color("205"))
	}

	primary := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if !noColor {
		primary = primary.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42"))
	}

	return notifyStyles{
		card:      card,
		title:     color(lipgloss.NewStyle().Bold(true), "241"),
		available: color(lipgloss.NewStyle().Bold(true), "214"),
		success:   color(lipgloss.NewStyle().Bold(true), "42"),
		info:      color(lipgloss.NewStyle().Bold(true), "39"),
		text:      lipgloss.NewStyle(),
		muted:     color(lipgloss.NewStyle(), "241"),
		link:      color(lipgloss.NewStyle().Underline(true), "39"),
		button:    color(lipgloss.NewStyle().Padding(0, 1), "241"),
		primary:   primary,
		spinner:   color(lipgloss.NewStyle(), "205"),
	}
}
