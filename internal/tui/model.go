package tui

import (
	"errors"
	"fmt"
	"strings"

	"palabra/internal/domain"
	"palabra/internal/service"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// addStep is the field the add word input is collecting
type addStep int

const (
	addNone addStep = iota
	addWord
	addMeaning
	addExample
)

var addPrompts = map[addStep]string{
	addWord:    "New word",
	addMeaning: "Meaning",
	addExample: "Example (several separated by |, empty to skip)",
}

// Model is the Bubble Tea model of the study screen
type Model struct {
	scheduler *service.Scheduler
	stats     *service.StatsService
	logger    *zap.Logger

	mode    domain.Mode
	word    string
	reveal  *domain.Reveal
	confirm bool // Don't know pressed, waiting for enter
	due     map[domain.Mode]int
	status  string
	err     error

	step  addStep
	draft domain.Record
	ti    textinput.Model

	keys  keyMap
	help  help.Model
	width int
}

// New creates the model and loads the first card of the default mode
func New(scheduler *service.Scheduler, stats *service.StatsService, logger *zap.Logger) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 500

	m := Model{
		scheduler: scheduler,
		stats:     stats,
		logger:    logger,
		mode:      domain.DefaultMode(),
		ti:        ti,
		keys:      newKeyMap(),
		help:      help.New(),
	}
	return m.next()
}

// Run starts the terminal UI and blocks until the user quits
func Run(scheduler *service.Scheduler, stats *service.StatsService, logger *zap.Logger) error {
	p := tea.NewProgram(New(scheduler, stats, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.step != addNone {
			return m.updateAdd(msg)
		}
		return m.updateStudy(msg)
	}
	return m, nil
}

func (m Model) updateStudy(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Modes):
		idx := int(msg.String()[0] - '1')
		m.mode = domain.Modes[idx]
		return m.next(), nil

	case key.Matches(msg, m.keys.Reload):
		return m.next(), nil

	case key.Matches(msg, m.keys.Add):
		m.step = addWord
		m.draft = domain.Record{}
		m.ti.SetValue("")
		m.ti.Placeholder = addPrompts[addWord]
		m.ti.Focus()
		return m, textinput.Blink
	}

	if m.word == "" {
		return m, nil
	}

	if m.confirm {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			return m.respond(domain.DontKnow), nil
		case key.Matches(msg, m.keys.Cancel):
			m.confirm = false
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Know):
		return m.respond(domain.Know), nil
	case key.Matches(msg, m.keys.Hint):
		return m.show(m.scheduler.ShowHint), nil
	case key.Matches(msg, m.keys.Verify):
		return m.show(m.scheduler.ShowVerify), nil
	case key.Matches(msg, m.keys.DontKnow):
		m = m.show(m.scheduler.ShowVerify)
		m.confirm = m.err == nil
		return m, nil
	}
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.step = addNone
		m.ti.Blur()
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.ti.Value())
		switch m.step {
		case addWord:
			if value == "" {
				m.status = "The word cannot be empty"
				return m, nil
			}
			m.draft.Word = value
		case addMeaning:
			if value == "" {
				m.status = "The meaning cannot be empty"
				return m, nil
			}
			m.draft.Meaning = value
		case addExample:
			m.draft.Example = value
			m.step = addNone
			m.ti.Blur()
			if err := m.scheduler.AddNewWord(m.draft); err != nil {
				m.logger.Error("Failed to add new word", zap.Error(err))
				m.err = err
				return m, nil
			}
			m.status = fmt.Sprintf("Added %q to New words", m.draft.Word)
			m.refreshDue()
			return m, nil
		}
		m.step++
		m.status = ""
		m.ti.SetValue("")
		m.ti.Placeholder = addPrompts[m.step]
		return m, nil
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// next loads a fresh card of the current mode
func (m Model) next() Model {
	m.word, m.reveal, m.confirm, m.err = "", nil, false, nil

	rec, err := m.scheduler.PickDue(m.mode)
	switch {
	case errors.Is(err, domain.ErrEmptyPool):
		m.status = fmt.Sprintf("You have reviewed everything in %s", m.mode.Title())
	case err != nil:
		m.logger.Error("Failed to pick next word", zap.String("mode", string(m.mode)), zap.Error(err))
		m.err = err
	default:
		m.word = rec.Word
		m.status = ""
	}
	m.refreshDue()
	return m
}

func (m Model) respond(outcome domain.Outcome) Model {
	err := m.scheduler.Respond(m.mode, m.word, outcome)
	if err != nil && !errors.Is(err, domain.ErrWordNotFound) {
		m.logger.Error("Failed to respond",
			zap.String("mode", string(m.mode)),
			zap.String("word", m.word),
			zap.Error(err),
		)
		m.err = err
		m.confirm = false
		return m
	}
	m.logger.Info("Card answered",
		zap.String("mode", string(m.mode)),
		zap.String("word", m.word),
		zap.String("outcome", outcome.String()),
	)
	return m.next()
}

func (m Model) show(reveal func(domain.Mode, string) (domain.Reveal, error)) Model {
	r, err := reveal(m.mode, m.word)
	if err != nil {
		m.err = err
		return m
	}
	m.reveal = &r
	m.err = nil
	return m
}

func (m *Model) refreshDue() {
	due, err := m.stats.DueCounts()
	if err != nil {
		m.logger.Warn("Failed to count due words", zap.Error(err))
		return
	}
	m.due = due
}

func (m Model) View() string {
	var b strings.Builder

	tabs := make([]string, 0, len(domain.Modes))
	for i, mode := range domain.Modes {
		label := fmt.Sprintf("%d %s (%d)", i+1, mode.Title(), m.due[mode])
		if mode == m.mode {
			tabs = append(tabs, activeModeStyle.Render(label))
		} else {
			tabs = append(tabs, modeStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	if m.word != "" {
		b.WriteString(wordStyle.Render(m.word))
		b.WriteString("\n")
	}
	if m.reveal != nil {
		if m.reveal.Meaning != "" {
			b.WriteString(meaningStyle.Render(m.reveal.Meaning))
			b.WriteString("\n")
		}
		if len(m.reveal.Examples) == 0 {
			b.WriteString(mutedStyle.Render("(no examples)"))
			b.WriteString("\n")
		}
		for _, example := range m.reveal.Examples {
			b.WriteString(exampleStyle.Render("• " + example))
			b.WriteString("\n")
		}
	}
	if m.confirm {
		b.WriteString(statusStyle.Render("Press enter to continue"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("✖ " + m.err.Error()))
		b.WriteString("\n")
	}

	if m.step != addNone {
		b.WriteString(inputStyle.Render(titleStyle.Render(addPrompts[m.step]) + "\n" + m.ti.View()))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return panelStyle.Render(b.String())
}
