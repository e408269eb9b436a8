package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/aperture/internal/apps"
	"github.com/1broseidon/aperture/internal/config"
	"github.com/1broseidon/aperture/internal/dock"
	"github.com/1broseidon/aperture/internal/palette"
	"github.com/1broseidon/aperture/internal/pointer"
	"github.com/1broseidon/aperture/internal/wm"
)

// doubleClickWindow is the longest gap between two presses on the same cell
// that still counts as a double-click.
const doubleClickWindow = 400 * time.Millisecond

type pressRecord struct {
	at       time.Time
	col, row int
	ok       bool
}

// model is the root bubbletea model for the desktop.
type model struct {
	deps    Deps
	router  *pointer.Router
	palette *palette.Palette
	query   textinput.Model

	styles   []lipgloss.Style
	layout   layout
	contents map[string]apps.Content

	settings  settingsForm
	lastPress pressRecord
	dockHover bool
	message   string
	now       func() time.Time

	// Terminal dimensions
	width  int
	height int
}

func newModel(deps Deps) model {
	if deps.Settings == nil {
		deps.Settings = config.NewStore(nil, "")
	}
	if deps.Dock == nil {
		deps.Dock = dock.New(deps.Catalog, deps.Registry, deps.Settings)
	}
	if deps.Viewport == nil {
		deps.Viewport = NewViewport(deps.Registry.Viewport())
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 64

	m := model{
		deps:     deps,
		router:   pointer.NewRouter(deps.Registry, deps.Settings, hitTester),
		palette:  palette.New(palette.AppCommands(deps.Catalog, deps.Dock.LaunchApp)),
		query:    ti,
		contents: make(map[string]apps.Content),
		now:      time.Now,
	}
	m.applySettings()
	return m
}

// applySettings recomputes styles and layout from the settings store and
// publishes the new desktop extent.
func (m *model) applySettings() {
	cfg := m.deps.Settings.Config()
	m.styles = buildStyles(cfg.Appearance)
	m.layout = computeLayout(m.width, m.height, cfg.Layout.Dock)
	if m.width > 0 && m.height > 0 {
		m.deps.Viewport.Set(m.layout.viewport())
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySettings()
		if m.settings.editing {
			var cmd tea.Cmd
			m.settings, cmd, _ = m.settings.update(msg)
			return m, cmd
		}
		m.settings.width, m.settings.height = msg.Width, msg.Height
		return m, nil
	case applyMsg:
		msg.fn()
		close(msg.done)
		m.applySettings()
		return m, nil
	}

	// The settings form captures all input while open; only ctrl+c escapes.
	if m.settings.editing {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var (
			cmd  tea.Cmd
			done bool
		)
		m.settings, cmd, done = m.settings.update(msg)
		if done {
			m.saveSettings()
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}

	if m.palette.IsOpen() {
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.palette.IsOpen() || key == "ctrl+k" {
		wasOpen := m.palette.IsOpen()
		consumed, err := m.palette.HandleKey(key)
		m.setError(err)
		if consumed {
			m.query.Reset()
			if m.palette.IsOpen() && !wasOpen {
				return m, m.query.Focus()
			}
			if !m.palette.IsOpen() {
				m.query.Blur()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		if m.query.Value() != m.palette.Query() {
			m.palette.SetQuery(m.query.Value())
		}
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "ctrl+s":
		m.message = ""
		m.settings.width, m.settings.height = m.width, m.height
		return m, m.settings.start(m.deps.Settings.Config())
	case "tab":
		// Raising the bottom-most visible window cycles through the stack.
		if render := m.deps.Registry.RenderList(); len(render) > 1 {
			m.deps.Registry.FocusWindow(render[0].ID)
		}
	case "ctrl+w":
		if w, ok := m.deps.Registry.Active(); ok && !w.IsMinimized {
			m.deps.Registry.CloseWindow(w.ID)
		}
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) model {
	m.dockHover = m.layout.dock.contains(msg.X, msg.Y)
	p := m.layout.deskPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.router.Capture().Active() {
			m.router.Move(p)
		}
	case tea.MouseActionRelease:
		if m.router.Capture().Active() {
			m.router.Up(p)
		}
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.press(msg.X, msg.Y)
		}
	}
	return m
}

// press handles a left-button press at a screen cell.
func (m *model) press(col, row int) {
	if m.palette.IsOpen() {
		g := layoutPalette(m.layout, m.palette)
		if i, ok := g.itemAt(col, row); ok {
			_, err := m.palette.ExecuteIndex(i)
			m.setError(err)
			m.query.Reset()
			m.query.Blur()
			return
		}
		if !g.box.contains(col, row) {
			m.palette.Close()
			m.query.Reset()
			m.query.Blur()
		}
		return
	}

	if m.dockVisible() && m.layout.dock.contains(col, row) {
		items := m.deps.Dock.Items()
		if i, ok := m.layout.dockSlot(col, row, len(items)); ok {
			_, err := m.deps.Dock.Launch(items[i].AppID)
			m.setError(err)
		}
		return
	}
	if !m.layout.desk.contains(col, row) {
		return
	}

	p := m.layout.deskPoint(col, row)
	now := m.now()
	last := m.lastPress
	if last.ok && last.col == col && last.row == row && now.Sub(last.at) <= doubleClickWindow {
		m.lastPress = pressRecord{}
		m.router.DoubleClick(p)
		return
	}
	m.lastPress = pressRecord{at: now, col: col, row: row, ok: true}
	m.router.Down(p)
}

func (m *model) saveSettings() {
	cfg := m.settings.apply(m.deps.Settings.Config())
	if err := cfg.Validate(); err != nil {
		m.setError(err)
		return
	}
	if m.deps.ConfigPath != "" {
		if err := config.SaveFileLayer(m.deps.ConfigPath, cfg); err != nil {
			m.setError(err)
			return
		}
	}
	m.deps.Settings.Set(cfg)
	m.applySettings()
}

func (m *model) setError(err error) {
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = ""
}

func (m model) dockVisible() bool {
	return !m.layout.dockCfg.AutoHide || m.dockHover
}

// linesFor returns the body text of w, creating its content on first use.
func (m model) linesFor(w wm.WindowInstance, cols, rows int) []string {
	content, ok := m.contents[w.ID]
	if !ok {
		if app, found := m.deps.Catalog.Lookup(w.AppID); found && app.Content != nil {
			content = app.Content()
		}
		m.contents[w.ID] = content
	}
	if content == nil {
		return nil
	}
	return content.Lines(cols, rows)
}

func (m model) pruneContents(windows []wm.WindowInstance) {
	live := make(map[string]bool, len(windows))
	for _, w := range windows {
		live[w.ID] = true
	}
	for id := range m.contents {
		if !live[id] {
			delete(m.contents, id)
		}
	}
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.settings.editing {
		return m.settings.View()
	}

	c := m.draw()
	lines := c.lines(m.styles)
	if len(lines) > 0 {
		lines[0] = renderStatusBar(m.statusInfo(), m.width)
	}
	return strings.Join(lines, "\n")
}

// draw composes windows, dock and palette onto a canvas.
func (m model) draw() *canvas {
	reg := m.deps.Registry
	c := newCanvas(m.width, m.height, styleDesktop)

	m.pruneContents(reg.Snapshot())
	viewport := m.layout.viewport()
	active, _ := reg.Active()
	for _, w := range reg.RenderList() {
		rect := wm.RenderGeometry(w, viewport)
		cols, rows := spanOf(rect).bodySize()
		drawWindow(c, m.layout, w, rect, w.ID == active.ID, m.linesFor(w, cols, rows))
	}

	if m.dockVisible() {
		drawDock(c, m.layout, m.deps.Dock.Items())
	}
	if m.palette.IsOpen() {
		drawPalette(c, m.layout, m.palette, m.query.Value(), m.query.Position())
	}
	return c
}

func (m model) statusInfo() statusInfo {
	reg := m.deps.Registry
	info := statusInfo{
		windows:      reg.Len(),
		visible:      len(reg.RenderList()),
		gridSnapping: m.deps.Settings.GridSnapping(),
		cursor:       m.router.Capture().Cursor(),
		message:      m.message,
	}
	if w, ok := reg.Active(); ok && !w.IsMinimized {
		info.activeTitle = w.Title
	}
	return info
}
