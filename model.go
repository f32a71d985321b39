package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusState focus = iota
	focusScript
	focusMenu
)

// Model represents the TUI application state.
type Model struct {
	cfg        Config
	logger     *log.Logger
	editor     textarea.Model
	report     *Report // last successful or partial run
	runErr     error   // error of the last run, if any
	lastScript string  // editor contents of the last run
	focus      focus
	width      int
	height     int
	statusMsg  string // transient status message (e.g. save confirmation)

	// Menu state
	menu     []menuCategory
	menuCat  int
	menuItem int
}

func initialModel(cfg Config, logger *log.Logger) Model {
	ta := textarea.New()
	ta.Placeholder = "H 1\nCNOT 1 2\nmeasure ZZ"
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		cfg:    cfg,
		logger: logger,
		editor: ta,
		focus:  focusState,
		menu:   buildMenu(cfg.Qubits),
	}

	src, err := os.ReadFile(cfg.ScriptPath)
	switch {
	case err == nil:
		m.editor.SetValue(string(src))
		m.statusMsg = "Loaded " + cfg.ScriptPath
	case errors.Is(err, fs.ErrNotExist):
		m.editor.SetValue(defaultScript)
	default:
		m.editor.SetValue(defaultScript)
		m.statusMsg = fmt.Sprintf("Load error: %v", err)
	}

	m.runScript()
	return m
}

// runScript parses and runs the editor contents, keeping whatever the run
// produced before a failure.
func (m *Model) runScript() {
	src := m.editor.Value()
	m.lastScript = src

	prog, err := ParseScript(src, m.cfg.Qubits)
	if err != nil {
		m.runErr = err
		m.logger.Warn("script rejected", "err", err)
		return
	}
	report, err := Run(prog, m.cfg, m.logger)
	if report != nil {
		m.report = report
		m.menu = buildMenu(report.Register.NumQubits())
		m.menuCat = min(m.menuCat, len(m.menu)-1)
	}
	m.runErr = err
	if err != nil {
		m.logger.Warn("script failed", "err", err)
	}
}

func (m *Model) saveScript() {
	if err := os.WriteFile(m.cfg.ScriptPath, []byte(m.editor.Value()), 0644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.statusMsg = "Saved " + m.cfg.ScriptPath
}

func (m *Model) loadScript() {
	src, err := os.ReadFile(m.cfg.ScriptPath)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Load error: %v", err)
		return
	}
	m.editor.SetValue(string(src))
	m.statusMsg = "Loaded " + m.cfg.ScriptPath
	m.runScript()
}

// insertStatement adds a line to the editor below the cursor line.
func (m *Model) insertStatement(stmt string) {
	lines := strings.Split(m.editor.Value(), "\n")
	row := m.editor.Line()
	m.editor.CursorEnd()
	if row < len(lines) && strings.TrimSpace(lines[row]) != "" {
		m.editor.InsertString("\n")
	}
	m.editor.InsertString(stmt)
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		scriptW := max(msg.Width/3-6, 20)
		m.editor.SetWidth(scriptW)
		mainH := msg.Height - controlsH - 2
		m.editor.SetHeight(max(mainH-6, 4))

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch key {
		case "ctrl+r":
			m.statusMsg = ""
			m.runScript()
			return m, nil
		case "ctrl+s":
			m.saveScript()
			return m, nil
		case "ctrl+o":
			m.loadScript()
			return m, nil
		}

		switch m.focus {
		case focusState:
			m.statusMsg = ""
			switch key {
			case "q":
				return m, tea.Quit
			case "tab", "e":
				m.focus = focusScript
				cmds = append(cmds, m.editor.Focus())
			case "a":
				if len(m.menu) > 0 {
					m.focus = focusMenu
					m.menuItem = 0
				}
			}

		case focusScript:
			switch key {
			case "tab", "esc":
				m.focus = focusState
				m.editor.Blur()
			default:
				var cmd tea.Cmd
				m.editor, cmd = m.editor.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusMenu:
			cat := m.menu[m.menuCat]
			switch key {
			case "esc", "q":
				m.focus = focusState
			case "left", "h":
				m.menuCat = (m.menuCat + len(m.menu) - 1) % len(m.menu)
				m.menuItem = 0
			case "right", "l":
				m.menuCat = (m.menuCat + 1) % len(m.menu)
				m.menuItem = 0
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(cat.items)-1 {
					m.menuItem++
				}
			case "enter":
				item := cat.items[m.menuItem]
				m.insertStatement(item.template)
				m.statusMsg = "Inserted " + item.template
				m.focus = focusScript
				cmds = append(cmds, m.editor.Focus())
			}
		}

	default:
		if m.focus == focusScript {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	scriptW := m.width / 3
	stateW := m.width - scriptW
	mainH := m.height - controlsH - 2

	state := m.renderStatePanel(stateW-2, mainH)
	script := m.renderScriptPanel(scriptW-2, mainH)
	top := lipgloss.JoinHorizontal(lipgloss.Top, state, script)
	controls := m.renderControlsPanel(m.width-2, controlsH)
	view := lipgloss.JoinVertical(lipgloss.Left, top, controls)

	if m.focus == focusMenu {
		popup := m.renderMenu()
		x := max((stateW-lipgloss.Width(popup))/2, 0)
		y := max((mainH-lipgloss.Height(popup))/2, 0)
		view = overlayAt(view, popup, x, y)
	}
	return view
}
