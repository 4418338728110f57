package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/no111u3/automatic/internal/domain"
)

var (
	// Colors
	colorActiveBlue = lipgloss.Color("39")  // selected item
	colorDimGray    = lipgloss.Color("240") // captured output, timestamps
	colorGreen      = lipgloss.Color("42")
	colorRed        = lipgloss.Color("196")
	colorYellow     = lipgloss.Color("220") // running
	colorWhite      = lipgloss.Color("255")
	colorLightGray  = lipgloss.Color("250")

	// Text Styles
	styleBoldWhite = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	styleDim       = lipgloss.NewStyle().Foreground(colorDimGray)
	styleActive    = lipgloss.NewStyle().Foreground(colorActiveBlue).Bold(true)
	styleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailure   = lipgloss.NewStyle().Foreground(colorRed)
	stylePending   = lipgloss.NewStyle().Foreground(colorDimGray)
	styleRunning   = lipgloss.NewStyle().Foreground(colorYellow)

	// Footer Styles
	styleHelpKey  = lipgloss.NewStyle().Foreground(colorLightGray)
	styleHelpText = lipgloss.NewStyle().Foreground(colorDimGray)

	// Layout Styles
	styleSidebar = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	styleMain    = lipgloss.NewStyle().PaddingLeft(4)
	styleFooter  = lipgloss.NewStyle().PaddingTop(1).PaddingLeft(1).PaddingBottom(1)
	styleScreen  = lipgloss.NewStyle().Margin(1, 2)
)

// itemStatus is the sidebar state of one list item. Items left pending
// when the list aborts are shown as skipped.
type itemStatus int

const (
	statusPending itemStatus = iota
	statusRunning
	statusSuccess
	statusFailed
	statusSkipped
)

type TUIFormatter struct {
	model   *Model
	program *tea.Program
	options []tea.ProgramOption
	ready   chan struct{}
	once    sync.Once
}

type startMsg struct{ index int }
type completeMsg struct{ result domain.RunResult }
type finishMsg struct{ summary domain.Summary }

type itemState struct {
	item       domain.RunItem
	status     itemStatus
	detail     string
	duration   time.Duration
	startedAt  time.Time
	finishedAt time.Time
}

type Model struct {
	scriptPath          string
	kind                domain.ListKind
	completed           int
	finished            bool
	summary             domain.Summary
	quit                bool
	width               int
	height              int
	items               []itemState
	selected            int
	logs                map[int][]string // captured output per item, pre-styled
	scrollOffset        int
	sidebarScrollOffset int
	autoScroll          bool
	now                 time.Time
	spinner             spinner.Model
	mu                  sync.Mutex
}

func NewModel(scriptPath string, list domain.List) *Model {
	items := make([]itemState, len(list.Items))
	for i, it := range list.Items {
		items[i] = itemState{item: it}
	}

	return &Model{
		scriptPath: scriptPath,
		kind:       list.Kind,
		items:      items,
		logs:       make(map[int][]string),
		autoScroll: true,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styleRunning),
		),
	}
}

// NewTUIFormatter builds the interactive report. Extra program options
// are applied after the defaults, e.g. to swap the terminal for a reader.
func NewTUIFormatter(scriptPath string, list domain.List, opts ...tea.ProgramOption) *TUIFormatter {
	return &TUIFormatter{model: NewModel(scriptPath, list), options: opts, ready: make(chan struct{})}
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		m.mu.Lock()
		if msg.index < len(m.items) {
			m.items[msg.index].status = statusRunning
			m.items[msg.index].startedAt = time.Now()
			m.selected = msg.index
			m.autoScroll = true
		}
		m.mu.Unlock()

	case completeMsg:
		m.mu.Lock()
		m.completed++
		if i := msg.result.Index; i < len(m.items) {
			st := &m.items[i]
			switch {
			case msg.result.Error != nil:
				st.status = statusFailed
				st.detail = msg.result.Error.Error()
			case !msg.result.Status.Success():
				st.status = statusFailed
				st.detail = msg.result.Status.String()
			default:
				st.status = statusSuccess
				st.detail = msg.result.Status.String()
			}
			st.duration = msg.result.Duration
			st.finishedAt = msg.result.FinishedAt
			m.appendOutput(i, msg.result)
		}
		m.mu.Unlock()

	case finishMsg:
		m.mu.Lock()
		m.finished = true
		m.summary = msg.summary
		for i := range m.items {
			if m.items[i].status == statusPending {
				m.items[i].status = statusSkipped
			}
		}
		m.mu.Unlock()
		return m, nil

	case spinner.TickMsg:
		m.mu.Lock()
		m.now = time.Now()
		done := m.finished
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.mu.Unlock()
		if done {
			return m, nil
		}
		return m, cmd

	case tea.KeyMsg:
		m.mu.Lock()
		defer m.mu.Unlock()
		switch msg.String() {
		case "ctrl+c", "q":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.autoScroll = true
				if m.selected < m.sidebarScrollOffset {
					m.sidebarScrollOffset = m.selected
				}
			}
		case "down", "j":
			if m.selected < len(m.items)-1 {
				m.selected++
				m.autoScroll = true
			}
		case "home":
			m.scrollOffset = 0
			m.autoScroll = false
		case "end":
			m.autoScroll = true
		case "pgup":
			m.scrollOffset = max(0, m.scrollOffset-10)
			m.autoScroll = false
		case "pgdown":
			m.scrollOffset += 10
			m.autoScroll = false
		}

	case tea.WindowSizeMsg:
		m.mu.Lock()
		m.width = msg.Width
		m.height = msg.Height
		m.mu.Unlock()
	}

	return m, nil
}

func (m *Model) View() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.width == 0 {
		return "Initializing..."
	}

	availWidth := max(20, m.width-4)
	availHeight := max(10, m.height-2)
	sidebarW := max(30, availWidth/4)
	mainW := availWidth - sidebarW - 1
	footerHeight := 3
	contentH := max(10, availHeight-footerHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(sidebarW, contentH), m.renderMainPanel(mainW, contentH))
	screen := lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter(availWidth))

	return styleScreen.Render(screen)
}

func (m *Model) renderSidebar(width, height int) string {
	var sb strings.Builder

	sb.WriteString(styleBoldWhite.Render(strings.ToUpper(string(m.kind)) + " LIST"))
	sb.WriteString("\n\n")

	visibleLines := height - 4
	if m.selected >= m.sidebarScrollOffset+visibleLines {
		m.sidebarScrollOffset = m.selected - visibleLines + 1
	}

	startIdx := m.sidebarScrollOffset
	endIdx := min(len(m.items), startIdx+visibleLines)

	if startIdx > 0 {
		sb.WriteString(styleDim.Render("  ▲ more above"))
		sb.WriteString("\n")
	}
	for i := startIdx; i < endIdx; i++ {
		sb.WriteString(m.renderItemLine(i))
		sb.WriteString("\n")
	}
	if endIdx < len(m.items) {
		sb.WriteString(styleDim.Render("  ▼ more below"))
	}

	return styleSidebar.Width(width).MaxWidth(width).Height(height).Render(sb.String())
}

func (m *Model) renderItemLine(index int) string {
	st := m.items[index]
	icon, style := m.statusDisplay(st)

	rowLeft := fmt.Sprintf("#%02d %s %s", index+1, icon, st.item.Name)
	timeStr := ""
	if !st.startedAt.IsZero() {
		timeStr = st.startedAt.Format("15:04:05")
	}

	prefix := "  "
	if index == m.selected {
		prefix = "┃ "
		style = styleActive
	}
	if timeStr != "" {
		return style.Render(fmt.Sprintf("%s%-18s %s", prefix, rowLeft, timeStr))
	}
	return style.Render(prefix + rowLeft)
}

func (m *Model) statusDisplay(st itemState) (string, lipgloss.Style) {
	switch st.status {
	case statusSuccess:
		return "✓", styleSuccess
	case statusFailed:
		return "✗", styleFailure
	case statusRunning:
		return m.spinner.View(), styleRunning
	case statusSkipped:
		return "·", stylePending
	default:
		return "-", stylePending
	}
}

func (m *Model) renderMainPanel(width, height int) string {
	if m.selected >= len(m.items) {
		return styleMain.Width(width).Render(styleDim.Render("empty list, nothing to run"))
	}

	var main strings.Builder
	st := m.items[m.selected]

	main.WriteString(styleBoldWhite.Render(fmt.Sprintf("ITEM DETAILS: #%02d", m.selected+1)))
	main.WriteString("\n\n")

	main.WriteString(styleBoldWhite.Render("Command"))
	fmt.Fprintf(&main, "\n  > %s\n\n", st.item)

	m.renderStatusSection(&main, st)
	m.renderDurationSection(&main, st)
	m.renderLogsSection(&main, height)

	return styleMain.Width(width).Height(height).Render(main.String())
}

func (m *Model) renderStatusSection(w *strings.Builder, st itemState) {
	w.WriteString(styleBoldWhite.Render("Status") + "\n")

	var text string
	switch st.status {
	case statusSuccess:
		text = styleSuccess.Render("Success (" + st.detail + ")")
	case statusFailed:
		text = styleFailure.Render("Failed (" + st.detail + ")")
	case statusRunning:
		text = styleRunning.Render("Running...")
	case statusSkipped:
		text = stylePending.Render("Not run")
	default:
		text = "Pending"
	}

	w.WriteString("  " + text + "\n\n")
}

func (m *Model) renderDurationSection(w *strings.Builder, st itemState) {
	dur := st.duration
	if dur == 0 && st.status == statusRunning {
		now := m.now
		if now.IsZero() {
			now = time.Now()
		}
		dur = now.Sub(st.startedAt)
	}

	w.WriteString(styleBoldWhite.Render("Duration") + "\n")
	if dur > 0 {
		fmt.Fprintf(w, "  %s\n\n", dur.Round(time.Millisecond))
	} else {
		w.WriteString("  -\n\n")
	}
}

func (m *Model) renderLogsSection(w *strings.Builder, contentHeight int) {
	w.WriteString(styleBoldWhite.Render("OUTPUT"))
	w.WriteString("\n")

	lines := m.logs[m.selected]

	logAreaHeight := max(5, contentHeight-15)
	total := len(lines)

	if m.autoScroll && total > logAreaHeight {
		m.scrollOffset = total - logAreaHeight
	}

	start := max(0, min(m.scrollOffset, total-logAreaHeight))
	end := min(total, start+logAreaHeight)

	rendered := 0
	for i := start; i < end; i++ {
		w.WriteString(lines[i] + "\n")
		rendered++
	}
	for rendered < logAreaHeight {
		w.WriteString("\n")
		rendered++
	}

	if end < total {
		w.WriteString(styleDim.Render("... (scroll down for more) ..."))
	} else {
		w.WriteString(" ")
	}
}

func (m *Model) renderFooter(width int) string {
	state := "Active"
	if m.finished {
		if m.summary.Success() {
			state = styleSuccess.Render("Complete")
		} else {
			state = styleFailure.Render("Aborted")
		}
	}
	left := styleHelpText.Render(fmt.Sprintf("%d/%d ", m.completed, len(m.items))) + state

	helpItems := []string{
		styleHelpKey.Render("↑/k") + styleHelpText.Render(" navigate"),
		styleHelpKey.Render("pgup/pgdn") + styleHelpText.Render(" scroll"),
		styleHelpKey.Render("q") + styleHelpText.Render(" quit"),
	}
	right := strings.Join(helpItems, "   ")

	spacer := strings.Repeat(" ", max(2, width-lipgloss.Width(left)-lipgloss.Width(right)-4))
	return styleFooter.Width(width).Render(left + spacer + right)
}

// appendOutput stores an item's captured output. Caller holds m.mu.
func (m *Model) appendOutput(index int, result domain.RunResult) {
	add := func(text []byte, style lipgloss.Style) {
		for _, line := range strings.Split(strings.TrimRight(string(text), "\n"), "\n") {
			if line == "" {
				continue
			}
			m.logs[index] = append(m.logs[index], style.Render(line))
		}
	}
	add(result.Stdout, styleDim)
	add(result.Stderr, styleFailure)
}

func (f *TUIFormatter) Run(ctx context.Context) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if ctx != nil {
		opts = append(opts, tea.WithContext(ctx))
	}
	opts = append(opts, f.options...)

	f.program = tea.NewProgram(f.model, opts...)
	f.once.Do(func() { close(f.ready) })

	_, err := f.program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func (f *TUIFormatter) WaitReady(ctx context.Context) error {
	select {
	case <-f.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *TUIFormatter) send(msg tea.Msg) {
	if f.program != nil {
		f.program.Send(msg)
	}
}

func (f *TUIFormatter) OnStart(index int, item domain.RunItem) {
	f.send(startMsg{index: index})
}

func (f *TUIFormatter) OnComplete(result domain.RunResult) {
	f.send(completeMsg{result: result})
}

func (f *TUIFormatter) OnFinish(summary domain.Summary) {
	f.send(finishMsg{summary: summary})
}
