package ui

import (
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quickfind/internal/ui/services/query"
	"quickfind/internal/ui/views"
)

const placeholder = "Type here to find products"

// Options configures a Model
type Options struct {
	Seed  string // initial query, searched on start when non-empty
	Pager Pager  // nil disables ctrl+o
}

// Model represents the UI state
type Model struct {
	query *query.Service
	keys  KeyMap

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	renderer *views.Renderer
	docs     *DocumentRenderer
	pager    Pager

	// layout of the last rendered frame, used for mouse hit-testing
	layout views.Layout

	width       int
	height      int
	spinning    bool
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(svc *query.Service, opts Options) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.Focus()
	if opts.Seed != "" {
		ti.SetValue(opts.Seed)
		ti.CursorEnd()
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("33"))),
	)

	return &Model{
		query:    svc,
		keys:     DefaultKeyMap(),
		input:    ti,
		spinner:  sp,
		help:     help.New(),
		renderer: views.NewRenderer(),
		docs:     NewDocumentRenderer(),
		pager:    opts.Pager,
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if ov, ok := m.pager.(*OvPager); ok {
		ov.SetProgram(p)
	}
}

// Link returns the shareable link for the current query
func (m *Model) Link() string {
	return m.query.Link()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if seed := m.input.Value(); seed != "" {
		cmds = append(cmds, m.query.SetQuery(seed))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-len(m.input.Prompt)-8)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case query.DebounceMsg:
		return m, m.withSpinner(m.query.HandleDebounce(msg))

	case query.ResultMsg:
		m.query.HandleResult(msg)
		return m, nil

	case spinner.TickMsg:
		// the tick loop ends when nothing is loading
		if m.inPagerMode || !m.query.State().Loading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.withSpinner(nil)
	}

	// cursor blink and friends
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.query.Stop()
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil

	case key.Matches(msg, m.keys.Reset):
		return m.reset()

	case key.Matches(msg, m.keys.Pager):
		return m.openPager()

	case key.Matches(msg, m.keys.Down):
		_, cmd := m.query.OnKey(query.KeyDown)
		return cmd

	case key.Matches(msg, m.keys.Up):
		_, cmd := m.query.OnKey(query.KeyUp)
		return cmd

	case key.Matches(msg, m.keys.Select):
		handled, cmd := m.query.OnKey(query.KeyEnter)
		if handled {
			m.syncInput()
		}
		return cmd

	case key.Matches(msg, m.keys.Close):
		_, cmd := m.query.OnKey(query.KeyEscape)
		return cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		return tea.Batch(cmd, m.query.SetQuery(value))
	}
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.query.Hover(m.layout.ResultAt(msg.X, msg.Y))

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if m.layout.OnClear(msg.X, msg.Y) {
			return m.reset()
		}
		if i := m.layout.ResultAt(msg.X, msg.Y); i >= 0 {
			cmd := m.query.Commit(i)
			m.syncInput()
			return cmd
		}
	}
	return nil
}

func (m *Model) reset() tea.Cmd {
	m.input.Reset()
	return m.query.Reset()
}

// syncInput copies the controller's query into the text input
func (m *Model) syncInput() {
	m.input.SetValue(m.query.Query())
	m.input.CursorEnd()
}

// withSpinner starts the spinner loop alongside cmd when a search is loading
func (m *Model) withSpinner(cmd tea.Cmd) tea.Cmd {
	if m.spinning || !m.query.State().Loading {
		return cmd
	}
	m.spinning = true
	return tea.Batch(cmd, m.spinner.Tick)
}

// openPager shows the results, or the key reference when there are none
func (m *Model) openPager() tea.Cmd {
	if m.pager == nil {
		return nil
	}

	st := m.query.State()
	content := m.docs.Help(m.keys)
	if len(st.Results) > 0 {
		content = m.docs.Results(st.Query, st.Results)
	}

	program, pager := m.program, m.pager
	return func() tea.Msg {
		if program != nil {
			program.Send(pauseRenderingMsg{})
		}
		err := pager.Show(content)
		if program != nil {
			program.Send(resumeRenderingMsg{})
		}
		return pagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	st := m.query.State()
	out, layout := m.renderer.Render(views.ViewState{
		Width:       m.width,
		Height:      m.height,
		InputView:   m.input.View(),
		Query:       st.Query,
		Loading:     st.Loading,
		SpinnerView: m.spinner.View(),
		Error:       st.Error,
		Results:     st.Results,
		Highlight:   st.Highlight,
		Link:        m.query.Link(),
		HelpView:    m.help.View(m.keys),
	})
	m.layout = layout
	return out
}
