// Package tui is an interactive terminal browser for a search result: the
// final program's diagram, its QASM, the recovered codewords and the raw
// observations.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qcodeword/qcodeword/grover"
)

// focus represents which panel has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusSide
)

// page selects the side panel's content.
type page int

const (
	pageSummary page = iota
	pageObservations
	pageQASM
)

var pages = []page{pageSummary, pageObservations, pageQASM}

func (p page) String() string {
	switch p {
	case pageObservations:
		return "Observations"
	case pageQASM:
		return "QASM"
	}
	return "Summary"
}

// Model is the bubbletea model of the result browser.
type Model struct {
	result *grover.Result
	grid   grid

	cursorQubit    int
	cursorStep     int
	viewStartStep  int
	viewStartQubit int
	width          int
	height         int

	focus    focus
	page     page
	side     viewport.Model
	help     help.Model
	keys     keyMap
	showHelp bool

	qasmPath  string
	statusMsg string
}

// Option configures a Model.
type Option func(*Model)

// WithQASMPath sets where ^S writes the program. Default "grover.qasm".
func WithQASMPath(path string) Option {
	return func(m *Model) { m.qasmPath = path }
}

// New builds a browser for res.
func New(res *grover.Result, opts ...Option) Model {
	m := Model{
		result:   res,
		grid:     newGrid(res.Program),
		side:     viewport.New(sideMinW, 10),
		help:     help.New(),
		keys:     defaultKeyMap(),
		qasmPath: "grover.qasm",
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.syncPage()
	return m
}

// Run opens the browser on the terminal and blocks until the user quits.
func Run(res *grover.Result, opts ...Option) error {
	_, err := tea.NewProgram(New(res, opts...), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) syncPage() {
	switch m.page {
	case pageObservations:
		m.side.SetContent(observationsPage(m.result))
	case pageQASM:
		m.side.SetContent(qasmPage(m.result))
	default:
		m.side.SetContent(summaryPage(m.result))
	}
	m.side.GotoTop()
}

func (m Model) panelSizes() (circuitW, sideW, panelH int) {
	sideW = max(m.width/3, sideMinW)
	circuitW = max(m.width-sideW-4, cellW)
	panelH = max(m.height-controlsH-2, 6)
	return
}

// scrollIntoView keeps the cursor inside the visible window.
func (m *Model) scrollIntoView() {
	circuitW, _, panelH := m.panelSizes()
	cols := m.visibleColumns(circuitW)
	rows := visibleQubits(panelH)

	if m.cursorStep < m.viewStartStep {
		m.viewStartStep = m.cursorStep
	}
	if m.cursorStep >= m.viewStartStep+cols {
		m.viewStartStep = m.cursorStep - cols + 1
	}
	if m.cursorQubit < m.viewStartQubit {
		m.viewStartQubit = m.cursorQubit
	}
	if m.cursorQubit >= m.viewStartQubit+rows {
		m.viewStartQubit = m.cursorQubit - rows + 1
	}
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
		_, sideW, panelH := m.panelSizes()
		m.side.Width = max(sideW-4, 10)
		m.side.Height = max(panelH-4, 3)
		m.help.Width = m.width - 4
		m.scrollIntoView()

	case tea.KeyMsg:
		m.statusMsg = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Focus):
			if m.focus == focusCircuit {
				m.focus = focusSide
			} else {
				m.focus = focusCircuit
			}
			return m, nil
		case key.Matches(msg, m.keys.NextPage):
			m.page = (m.page + 1) % page(len(pages))
			m.syncPage()
			return m, nil
		case key.Matches(msg, m.keys.PrevPage):
			m.page = (m.page + page(len(pages)) - 1) % page(len(pages))
			m.syncPage()
			return m, nil
		case key.Matches(msg, m.keys.Save):
			m.saveQASM()
			return m, nil
		}

		if m.focus == focusSide {
			var cmd tea.Cmd
			m.side, cmd = m.side.Update(msg)
			cmds = append(cmds, cmd)
			break
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursorQubit > 0 {
				m.cursorQubit--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursorQubit < m.grid.numQubits()-1 {
				m.cursorQubit++
			}
		case key.Matches(msg, m.keys.Left):
			if m.cursorStep > 0 {
				m.cursorStep--
			}
		case key.Matches(msg, m.keys.Right):
			if m.cursorStep < m.grid.columns-1 {
				m.cursorStep++
			}
		case key.Matches(msg, m.keys.Home):
			m.cursorStep = 0
		case key.Matches(msg, m.keys.End):
			m.cursorStep = max(m.grid.columns-1, 0)
		}
		m.scrollIntoView()
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) saveQASM() {
	if m.result.Program == nil {
		m.statusMsg = "Nothing to save"
		return
	}
	if err := os.WriteFile(m.qasmPath, []byte(m.result.Program.ToQASM()), 0644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.statusMsg = "Saved " + m.qasmPath
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	circuitW, sideW, panelH := m.panelSizes()
	circuitPanel := m.renderCircuitPanel(circuitW, panelH)
	sidePanel := m.renderSidePanel(sideW, panelH)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsH-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, sidePanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.showHelp {
		frame = overlayAt(frame, m.renderHelpOverlay(), 2, 2)
	}
	return frame
}
