package ui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/josephgoksu/Taskify/internal/easteregg"
	"github.com/josephgoksu/Taskify/internal/quotes"
	"github.com/josephgoksu/Taskify/internal/settings"
	"github.com/josephgoksu/Taskify/internal/task"
)

// TUIConfig wires the interactive screen to the stores.
type TUIConfig struct {
	Store     *task.Store
	Submitter *task.Submitter
	Settings  settings.AppSettings
	// QuoteIdle is the inactivity period before the quote popup.
	QuoteIdle time.Duration
	Rand      *rand.Rand
	Now       func() time.Time
}

type focus int

const (
	focusInput focus = iota
	focusList
)

// Messages delivered to the model from outside the key loop.
type (
	submitDoneMsg struct {
		res task.SubmitResult
		err error
	}
	externalChangeMsg struct{}
	quoteMsg          struct{}
)

// TUIModel is the bubbletea model of the tui command.
type TUIModel struct {
	cfg    TUIConfig
	ctx    context.Context
	input  textinput.Model
	focus  focus
	cursor int
	busy   bool
	notice string
	failed bool
	quote  *quotes.Quote
	idle   *quotes.IdleTimer
	width  int
	quit   bool
}

// NewTUIModel builds the model with the input focused.
func NewTUIModel(ctx context.Context, cfg TUIConfig) TUIModel {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200
	ti.Prompt = "> "
	ti.Focus()

	return TUIModel{cfg: cfg, ctx: ctx, input: ti, width: 80}
}

// RunTUI runs the interactive screen until the user quits or ctx ends.
func RunTUI(ctx context.Context, cfg TUIConfig) error {
	var p *tea.Program
	m := NewTUIModel(ctx, cfg)
	if cfg.Settings.EnableQuotes {
		m.idle = quotes.NewIdleTimer(cfg.QuoteIdle, func() { p.Send(quoteMsg{}) })
		defer m.idle.Stop()
	}
	p = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	cfg.Store.OnChange(func() { p.Send(externalChangeMsg{}) })

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (m TUIModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m TUIModel) visible() []task.Task {
	return m.cfg.Store.FilteredTasks()
}

func (m TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case submitDoneMsg:
		m.busy = false
		m.applySubmitResult(msg)
		return m, nil

	case externalChangeMsg:
		m.clampCursor()
		m.setNotice("Updated from another window", false)
		return m, nil

	case quoteMsg:
		q := quotes.For(m.cfg.Now(), m.cfg.Rand)
		m.quote = &q
		return m, nil

	case tea.KeyMsg:
		if m.idle != nil {
			m.idle.Reset()
		}
		if msg.Type == tea.KeyCtrlC {
			m.quit = true
			return m, tea.Quit
		}
		if m.quote != nil {
			m.quote = nil
			return m, nil
		}
		if msg.Type == tea.KeyTab {
			m.toggleFocus()
			return m, nil
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *TUIModel) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m TUIModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.busy {
			m.setNotice("Still adding the last task...", false)
			return m, nil
		}
		title := m.input.Value()
		if strings.TrimSpace(title) == "" {
			m.setNotice("Type a title first", true)
			return m, nil
		}
		m.busy = true
		return m, m.submit(title)
	case tea.KeyEsc:
		m.input.Reset()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m TUIModel) submit(title string) tea.Cmd {
	submitter, ctx := m.cfg.Submitter, m.ctx
	return func() tea.Msg {
		res, err := submitter.Submit(ctx, task.SubmitInput{Title: title})
		return submitDoneMsg{res: res, err: err}
	}
}

func (m *TUIModel) applySubmitResult(msg submitDoneMsg) {
	switch {
	case errors.Is(msg.err, task.ErrSubmitInProgress):
		m.setNotice("Still adding the last task...", false)
	case msg.err != nil:
		m.setNotice(fmt.Sprintf("Could not add task: %v", msg.err), true)
	case msg.res.EasterEgg != easteregg.None:
		m.input.Reset()
		m.setNotice(easteregg.Describe(msg.res.EasterEgg), false)
	case msg.res.Task != nil:
		m.input.Reset()
		m.setNotice("Added "+msg.res.Task.Title, false)
	}
}

func (m TUIModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.visible()
	var selected *task.Task
	if m.cursor < len(tasks) {
		selected = &tasks[m.cursor]
	}

	switch msg.String() {
	case "q", "esc":
		m.quit = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case " ", "x":
		if selected != nil {
			m.cfg.Store.ToggleTask(selected.ID)
		}
	case "d", "delete":
		if selected != nil && m.cfg.Store.DeleteTask(selected.ID) {
			m.setNotice("Deleted "+selected.Title, false)
		}
	case "f":
		m.cfg.Store.SetFilter(nextFilter(m.cfg.Store.State().Filter))
	case "c":
		if n := m.cfg.Store.ClearCompleted(); n > 0 {
			m.setNotice(fmt.Sprintf("Cleared %d completed", n), false)
		}
	case "K", "shift+up":
		m.move(selected, -1)
	case "J", "shift+down":
		m.move(selected, 1)
	case "i", "a":
		m.toggleFocus()
	}
	m.clampCursor()
	return m, nil
}

func (m *TUIModel) move(selected *task.Task, delta int) {
	if selected == nil || !m.cfg.Settings.EnableDragAndDrop {
		return
	}
	all := m.cfg.Store.Tasks()
	from := -1
	for i, t := range all {
		if t.ID == selected.ID {
			from = i
			break
		}
	}
	to := from + delta
	if from < 0 || to < 0 || to >= len(all) {
		return
	}
	if m.cfg.Store.ReorderTask(from, to) {
		m.cursor += delta
	}
}

func nextFilter(f task.Filter) task.Filter {
	switch f {
	case task.FilterAll:
		return task.FilterActive
	case task.FilterActive:
		return task.FilterCompleted
	default:
		return task.FilterAll
	}
}

func (m *TUIModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *TUIModel) setNotice(s string, failed bool) {
	m.notice, m.failed = s, failed
}

func (m TUIModel) View() string {
	if m.quit {
		return ""
	}
	var sb strings.Builder
	state := m.cfg.Store.State()

	sb.WriteString(StyleHeader.Render("Taskify") + StyleSubtle.Render(" "+Label(string(state.Filter))) + "\n\n")

	box := StyleInputBox
	if m.busy {
		box = StyleBusyBox
	}
	sb.WriteString(box.Width(min(m.width-4, 60)).Render(m.input.View()) + "\n\n")

	tasks := m.visible()
	if len(tasks) == 0 {
		msg := "Nothing to do. Enjoy the quiet."
		if len(state.Tasks) > 0 {
			msg = "No tasks match the current filter."
		}
		sb.WriteString(StyleSubtle.Render("  "+msg) + "\n")
	}
	for i, t := range tasks {
		marker := "  "
		if m.focus == focusList && i == m.cursor {
			marker = StyleCursor.Render("> ")
		}
		title := Truncate(t.Title, max(m.width-30, 20))
		if t.Completed {
			title = StyleCompleted.Render(title)
		}
		line := fmt.Sprintf("%s%s %s", marker, Checkbox(t.Completed), title)
		if t.DueDate != "" {
			line += StyleSubtle.Render("  due " + t.DueDate)
		}
		if t.Priority != task.PriorityNone {
			line += "  " + PriorityStyle(t.Priority).Render(Label(string(t.Priority)))
		}
		if done, total := task.SubtaskProgress(t); total > 0 {
			line += StyleSubtle.Render(fmt.Sprintf("  %d/%d", done, total))
		}
		sb.WriteString(line + "\n")
	}

	if m.cfg.Settings.ShowProgressBar {
		sb.WriteString("\n  " + ProgressBar(task.Progress(state.Tasks), 30) + "\n")
	}

	if m.notice != "" {
		style := StyleSuccess
		if m.failed {
			style = StyleError
		}
		sb.WriteString("\n  " + style.Render(m.notice) + "\n")
	}

	if m.quote != nil {
		sb.WriteString("\n" + RenderQuote(*m.quote) + "\n")
	}

	help := "enter add • tab list • ctrl+c quit"
	if m.focus == focusList {
		help = "space toggle • d delete • f filter • c clear done • J/K move • tab add • q quit"
	}
	sb.WriteString("\n" + StyleSubtle.Render(help) + "\n")
	return sb.String()
}
