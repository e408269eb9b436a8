package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/aperture/internal/apps"
	"github.com/1broseidon/aperture/internal/config"
	"github.com/1broseidon/aperture/internal/platform"
	"github.com/1broseidon/aperture/internal/wm"
)

// newTestModel returns a 120x40 desktop: status row 0, desktop rows 1-38
// (1200x760 units) and the dock on row 39.
func newTestModel(t *testing.T) model {
	t.Helper()
	vp := NewViewport(platform.Size{})
	reg := wm.NewRegistry(vp)
	m := newModel(Deps{
		Registry: reg,
		Viewport: vp,
		Catalog:  apps.BuiltinRegistry(),
		Settings: config.NewStore(config.DefaultConfig(), ""),
	})
	clock := time.Unix(1000, 0)
	m.now = func() time.Time { return clock }
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

// openTerminal clicks the first dock entry. The terminal cascades to
// (80,80), 800x600: cells 8-87 x 4-33 on the desktop, header rows 4-5.
func openTerminal(t *testing.T, m model) (model, wm.WindowInstance) {
	t.Helper()
	m = send(t, m, press(3, 39))
	w, ok := m.deps.Registry.ByApp("terminal")
	if !ok {
		t.Fatal("dock click should open terminal")
	}
	return m, w
}

func TestViewportFollowsTerminalSize(t *testing.T) {
	m := newTestModel(t)
	got := m.deps.Registry.Viewport()
	if got != (platform.Size{Width: 1200, Height: 760}) {
		t.Fatalf("viewport = %+v", got)
	}
}

func TestDockClickOpensApp(t *testing.T) {
	m := newTestModel(t)
	m, w := openTerminal(t, m)
	if w.Position != (platform.Point{X: 80, Y: 80}) || w.Size != (platform.Size{Width: 800, Height: 600}) {
		t.Fatalf("terminal = %+v", w)
	}
	m = send(t, m, press(3, 39))
	if m.deps.Registry.Len() != 1 {
		t.Fatal("second dock click must not open another terminal")
	}
}

func TestHeaderDragMovesWindow(t *testing.T) {
	m := newTestModel(t)
	m, w := openTerminal(t, m)

	m = send(t, m, press(12, 5)) // desk (125,90), offset (45,10)
	if !m.router.Capture().Active() {
		t.Fatal("header press should start a drag")
	}
	m = send(t, m, motion(30, 10)) // desk (305,190) -> (260,180)
	m = send(t, m, release(30, 10))

	got, _ := m.deps.Registry.Window(w.ID)
	if got.Position != (platform.Point{X: 260, Y: 180}) {
		t.Fatalf("position = %+v, want (260,180)", got.Position)
	}
	if m.router.Capture().Active() {
		t.Fatal("release should end the drag")
	}
}

func TestMotionWithoutCaptureIsIgnored(t *testing.T) {
	m := newTestModel(t)
	m, w := openTerminal(t, m)
	before := m.deps.Registry.Revision()
	m = send(t, m, motion(50, 20))
	if m.deps.Registry.Revision() != before {
		t.Fatal("hover must not change state")
	}
	got, _ := m.deps.Registry.Window(w.ID)
	if got.Position != w.Position {
		t.Fatal("window moved without a press")
	}
}

func TestDoubleClickHeaderMaximizes(t *testing.T) {
	m := newTestModel(t)
	m, w := openTerminal(t, m)

	m = send(t, m, press(12, 5))
	m = send(t, m, release(12, 5))
	m = send(t, m, press(12, 5))
	m = send(t, m, release(12, 5))

	got, _ := m.deps.Registry.Window(w.ID)
	if !got.IsMaximized {
		t.Fatal("double-click on header should maximize")
	}
	if got.Position != w.Position || got.Size != w.Size {
		t.Fatal("maximize must keep stored geometry")
	}
}

func TestSlowClicksAreNotDoubleClick(t *testing.T) {
	m := newTestModel(t)
	m, w := openTerminal(t, m)
	clock := time.Unix(2000, 0)
	m.now = func() time.Time { return clock }

	m = send(t, m, press(12, 5))
	m = send(t, m, release(12, 5))
	clock = clock.Add(doubleClickWindow + time.Millisecond)
	m = send(t, m, press(12, 5))
	m = send(t, m, release(12, 5))

	if got, _ := m.deps.Registry.Window(w.ID); got.IsMaximized {
		t.Fatal("presses further apart than the window must not maximize")
	}
}

func TestCloseControl(t *testing.T) {
	m := newTestModel(t)
	m, _ = openTerminal(t, m)
	m = send(t, m, press(85, 5)) // close button spans x 850-879
	if m.deps.Registry.Len() != 0 {
		t.Fatal("close control should close the window")
	}
}

func TestResizeHandle(t *testing.T) {
	m := newTestModel(t)
	m, w := openTerminal(t, m)

	m = send(t, m, press(86, 34))    // desk (865,670), inside the handle
	m = send(t, m, motion(100, 36)) // desk (1005,710) -> 925x630 -> 920x640
	m = send(t, m, release(100, 36))

	got, _ := m.deps.Registry.Window(w.ID)
	if got.Size != (platform.Size{Width: 920, Height: 640}) {
		t.Fatalf("size = %+v, want 920x640", got.Size)
	}
	if got.Position != w.Position {
		t.Fatal("resize must not move the window")
	}
}

func TestPaletteOpensApp(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	if !m.palette.IsOpen() {
		t.Fatal("ctrl+k should open the palette")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("help")})
	if m.palette.Query() != "help" {
		t.Fatalf("query = %q", m.palette.Query())
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.palette.IsOpen() {
		t.Fatal("enter should close the palette")
	}
	if _, ok := m.deps.Registry.ByApp("help"); !ok {
		t.Fatal("enter should open help")
	}
}

func TestPaletteEscapeAndBackdrop(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.palette.IsOpen() {
		t.Fatal("esc should close the palette")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	m = send(t, m, press(1, 30))
	if m.palette.IsOpen() {
		t.Fatal("clicking outside should close the palette")
	}
	if m.deps.Registry.Len() != 0 {
		t.Fatal("backdrop click must not reach the desktop")
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should return tea.Quit")
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m := newTestModel(t)
	m, term := openTerminal(t, m)
	m = send(t, m, press(3+4*5, 39)) // scratchpad dock entry
	if m.deps.Registry.IsActive(term.ID) {
		t.Fatal("scratchpad should be on top")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.deps.Registry.IsActive(term.ID) {
		t.Fatal("tab should raise the bottom window")
	}
}

func TestDrawShowsTitleAndDock(t *testing.T) {
	m := newTestModel(t)
	m, _ = openTerminal(t, m)
	c := m.draw()
	if !strings.Contains(c.plain(5), "Terminal") {
		t.Fatalf("header row = %q", c.plain(5))
	}
	if !strings.Contains(c.plain(39), ">") {
		t.Fatalf("dock row = %q", c.plain(39))
	}
	if !strings.Contains(c.plain(7), "aperture:~$ help") {
		t.Fatalf("body row = %q", c.plain(7))
	}
	if v := m.View(); !strings.Contains(v, "1 windows") {
		t.Fatal("status bar should count windows")
	}
}

func TestMinimizedWindowIsNotDrawn(t *testing.T) {
	m := newTestModel(t)
	m, w := openTerminal(t, m)
	m = send(t, m, press(79, 5)) // minimize button spans x 790-819
	if got, _ := m.deps.Registry.Window(w.ID); !got.IsMinimized {
		t.Fatal("minimize control should minimize")
	}
	if strings.Contains(m.draw().plain(5), "Terminal") {
		t.Fatal("minimized window should not be drawn")
	}
}

func TestSettingsFormApply(t *testing.T) {
	base := config.DefaultConfig()
	var s settingsForm
	s.load(base)
	if s.fTheme != string(config.ThemeDark) || !s.fGridSnapping {
		t.Fatalf("load did not seed from config: %+v", s)
	}

	s.fTheme = string(config.ThemeMatrix)
	s.fDockPosition = string(config.DockLeft)
	s.fAutoHide = true
	s.fGridSnapping = false
	out := s.apply(base)

	if out.Appearance.Theme != config.ThemeMatrix || out.Layout.Dock.Position != config.DockLeft {
		t.Fatalf("apply = %+v", out)
	}
	if !out.Layout.Dock.AutoHide || out.System.GridSnapping {
		t.Fatalf("apply flags = %+v", out)
	}
	if base.Appearance.Theme != config.ThemeDark || !base.System.GridSnapping {
		t.Fatal("apply must not modify its input")
	}
}

func TestCtrlSOpensSettingsAndEscCloses(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !m.settings.editing {
		t.Fatal("ctrl+s should open the settings form")
	}
	if !strings.Contains(m.View(), "Theme") {
		t.Fatal("settings view should show the theme field")
	}
	// Keys go to the form while it is open.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !m.settings.editing {
		t.Fatal("q must not leave the form")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.settings.editing {
		t.Fatal("esc should close the settings form")
	}
}

func TestSaveSettingsWritesAndApplies(t *testing.T) {
	m := newTestModel(t)
	m.deps.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")
	m.settings.load(m.deps.Settings.Config())
	m.settings.fGridSnapping = false
	m.settings.fDockPosition = string(config.DockRight)

	m.saveSettings()

	if m.message != "" {
		t.Fatalf("unexpected error message %q", m.message)
	}
	if m.deps.Settings.GridSnapping() {
		t.Fatal("store should see grid snapping off")
	}
	res, err := config.LoadFromPath(m.deps.ConfigPath)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if res.Config.Layout.Dock.Position != config.DockRight {
		t.Fatalf("saved dock position = %q", res.Config.Layout.Dock.Position)
	}
}

func TestSaveSettingsLeavesEnvOverridesOutOfFile(t *testing.T) {
	t.Setenv("APERTURE_GRID_SNAPPING", "false")
	m := newTestModel(t)
	m.deps.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")
	cfg := m.deps.Settings.Config()
	cfg.System.GridSnapping = false
	m.deps.Settings.Set(cfg)

	m.settings.load(m.deps.Settings.Config())
	m.settings.fDockPosition = string(config.DockRight)
	m.saveSettings()

	if m.message != "" {
		t.Fatalf("unexpected error message %q", m.message)
	}
	if m.deps.Settings.GridSnapping() {
		t.Fatal("the running desktop should keep the environment value")
	}
	data, err := os.ReadFile(m.deps.ConfigPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "grid_snapping: true") {
		t.Fatalf("file should keep the non-env grid snapping value:\n%s", data)
	}
	if !strings.Contains(string(data), "position: right") {
		t.Fatalf("file should carry the edited dock position:\n%s", data)
	}
}

func TestSaveSettingsRejectsInvalid(t *testing.T) {
	m := newTestModel(t)
	m.settings.load(m.deps.Settings.Config())
	m.settings.fAccent = "not-a-color"

	m.saveSettings()

	if m.message == "" {
		t.Fatal("invalid accent should surface an error")
	}
	if m.deps.Settings.Config().Appearance.AccentColor == "not-a-color" {
		t.Fatal("invalid settings must not be applied")
	}
}

func TestApplyMsgRunsChangeInLoop(t *testing.T) {
	m := newTestModel(t)
	app, err := m.deps.Catalog.Resolve("terminal")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	done := make(chan struct{})
	var id string
	m = send(t, m, applyMsg{
		fn:   func() { id = m.deps.Registry.OpenWindow(app) },
		done: done,
	})
	select {
	case <-done:
	default:
		t.Fatal("done should be closed once the change has run")
	}
	if _, ok := m.deps.Registry.Window(id); !ok {
		t.Fatalf("window %q missing", id)
	}
	if !strings.Contains(m.View(), "1 windows") {
		t.Fatal("next frame should count the new window")
	}
}

func TestApplyMsgRunsWhileSettingsOpen(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	done := make(chan struct{})
	ran := false
	m = send(t, m, applyMsg{fn: func() { ran = true }, done: done})
	if !ran {
		t.Fatal("change should run while the form has focus")
	}
	if !m.settings.editing {
		t.Fatal("change must not close the form")
	}
}

func TestDoAfterStopRunsOnCaller(t *testing.T) {
	vp := NewViewport(platform.Size{Width: 1200, Height: 760})
	reg := wm.NewRegistry(vp)
	d := New(Deps{
		Registry: reg,
		Viewport: vp,
		Catalog:  apps.BuiltinRegistry(),
		Settings: config.NewStore(config.DefaultConfig(), ""),
	})
	// Test output is not a terminal, so Run returns at once.
	if err := d.Run(); err == nil {
		t.Fatal("Run should refuse a non-terminal")
	}

	calls := 0
	d.Do(func() { calls++ })
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
