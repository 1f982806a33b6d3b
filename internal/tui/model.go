// Package tui renders a portfolio page in the terminal. Keys and the mouse
// drive the same page operations the browser front end relays over HTTP.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/traysir/portfolio/internal/content"
	"github.com/traysir/portfolio/internal/page"
)

// rowHeight converts viewport rows to the pixel offsets the page's scroll
// threshold is expressed in.
const rowHeight = 16.0

const chromeHeight = 3 // two header lines and the help line

type list int

const (
	listExperience list = iota
	listEducation
)

type eventMsg page.Event

type closedMsg struct{}

// Model is the bubbletea model over one mounted page.
type Model struct {
	page        *page.PortfolioPage
	events      <-chan page.Event
	unsubscribe func()

	vp       viewport.Model
	sections map[string]int
	width    int
	height   int
	ready    bool
	quitting bool

	list  list
	focus int
	st    styles
}

// New subscribes to p's events. The caller owns p and disposes it after
// the program exits.
func New(p *page.PortfolioPage) Model {
	events, unsubscribe := p.Subscribe()
	vp := viewport.New(0, 0)
	vp.KeyMap = viewportKeys()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return Model{
		page:        p,
		events:      events,
		unsubscribe: unsubscribe,
		vp:          vp,
		sections:    make(map[string]int),
		st:          newStyles(),
	}
}

// viewportKeys leaves letter keys free for page commands.
func viewportKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}
}

func waitForEvent(ch <-chan page.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(1, msg.Height-chromeHeight)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.page.MovePointer(float64(msg.X), float64(msg.Y))
			return m, nil
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		m.syncScroll()
		return m, cmd

	case eventMsg:
		m.refresh()
		return m, waitForEvent(m.events)

	case closedMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		m.unsubscribe()
		return m, tea.Quit
	case "j", "down":
		m.focus = min(m.focus+1, m.listLen()-1)
	case "k", "up":
		m.focus = max(m.focus-1, 0)
	case "tab":
		if m.list == listExperience {
			m.list = listEducation
		} else {
			m.list = listExperience
		}
		m.focus = 0
	case "enter", " ":
		m.toggleFocused()
	case "m":
		m.page.ToggleMenu()
	case "i":
		m.page.ClickIcon()
	case "1", "2", "3", "4", "5":
		m.followLink(int(msg.Runes[0] - '1'))
	default:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		m.syncScroll()
		return m, cmd
	}
	m.refresh()
	return m, nil
}

func (m *Model) listLen() int {
	c := m.page.Content()
	if m.list == listEducation {
		return len(c.Education)
	}
	return len(c.Experience)
}

func (m *Model) toggleFocused() {
	var err error
	if m.list == listEducation {
		err = m.page.ToggleEducation(m.focus)
	} else {
		err = m.page.ToggleExperience(m.focus)
	}
	// Focus is clamped to the list, so this only fires on an empty list.
	if err != nil {
		m.focus = 0
	}
}

func (m *Model) followLink(i int) {
	if i < 0 || i >= len(content.Sections) {
		return
	}
	anchor := content.Sections[i]
	if err := m.page.FollowLink(anchor); err != nil {
		return
	}
	m.refresh()
	if line, ok := m.sections[anchor]; ok {
		m.vp.SetYOffset(line)
		m.syncScroll()
	}
}

func (m *Model) syncScroll() {
	m.page.Scroll(float64(m.vp.YOffset) * rowHeight)
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	body, sections := m.render(m.page.Snapshot())
	m.sections = sections
	m.vp.SetContent(body)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	v := m.page.Snapshot()
	return strings.Join([]string{
		m.header(v),
		m.menuLine(v),
		m.vp.View(),
		m.helpLine(v),
	}, "\n")
}

// Run drives the page in the terminal until the user quits or ctx is done.
func Run(ctx context.Context, p *page.PortfolioPage) error {
	prog := tea.NewProgram(New(p),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := prog.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
