package wm

import (
	"fmt"
	"testing"

	"github.com/1broseidon/aperture/internal/apps"
	"github.com/1broseidon/aperture/internal/platform"
)

var (
	terminalApp = apps.AppDefinition{ID: "terminal", Name: "Terminal", DefaultSize: &platform.Size{Width: 800, Height: 600}}
	notesApp    = apps.AppDefinition{ID: "scratchpad", Name: "Scratchpad"}
	helpApp     = apps.AppDefinition{ID: "help", Name: "Help", DefaultSize: &platform.Size{Width: 600, Height: 500}}
)

func newTestRegistry() *Registry {
	r := NewRegistry(platform.FixedViewport{Width: 1920, Height: 1080})
	n := 0
	r.newID = func() string {
		n++
		return fmt.Sprintf("win-%d", n)
	}
	return r
}

func mustWindow(t *testing.T, r *Registry, id string) WindowInstance {
	t.Helper()
	w, ok := r.Window(id)
	if !ok {
		t.Fatalf("window %q not found", id)
	}
	return w
}

func TestOpenWindow_FirstWindow(t *testing.T) {
	r := newTestRegistry()
	id := r.OpenWindow(terminalApp)

	if r.Len() != 1 {
		t.Fatalf("expected 1 window, got %d", r.Len())
	}
	w := mustWindow(t, r, id)
	if w.ZIndex != 101 {
		t.Fatalf("ZIndex = %d, want 101", w.ZIndex)
	}
	if w.IsMinimized || w.IsMaximized {
		t.Fatalf("unexpected flags: %+v", w)
	}
	if w.Size != (platform.Size{Width: 800, Height: 600}) {
		t.Fatalf("Size = %+v, want 800x600", w.Size)
	}
	if w.Position != (platform.Point{X: 80, Y: 80}) {
		t.Fatalf("Position = %+v, want {80 80}", w.Position)
	}
	if w.Title != "Terminal" || w.AppID != "terminal" {
		t.Fatalf("unexpected identity: %+v", w)
	}
}

func TestOpenWindow_DefaultSizeFallback(t *testing.T) {
	r := newTestRegistry()
	w := mustWindow(t, r, r.OpenWindow(notesApp))
	if w.Size != DefaultSize {
		t.Fatalf("Size = %+v, want %+v", w.Size, DefaultSize)
	}
}

func TestOpenWindow_SmallDefaultSizeIsFloored(t *testing.T) {
	r := newTestRegistry()
	tiny := apps.AppDefinition{ID: "tiny", Name: "Tiny", DefaultSize: &platform.Size{Width: 200, Height: 100}}
	w := mustWindow(t, r, r.OpenWindow(tiny))
	if w.Size != (platform.Size{Width: MinWidth, Height: MinHeight}) {
		t.Fatalf("Size = %+v, want %dx%d", w.Size, MinWidth, MinHeight)
	}

	narrow := apps.AppDefinition{ID: "narrow", Name: "Narrow", DefaultSize: &platform.Size{Width: 100, Height: 700}}
	w = mustWindow(t, r, r.OpenWindow(narrow))
	if w.Size != (platform.Size{Width: MinWidth, Height: 700}) {
		t.Fatalf("Size = %+v, want %dx700", w.Size, MinWidth)
	}
}

func TestOpenWindow_SingleInstancePerApp(t *testing.T) {
	r := newTestRegistry()
	first := r.OpenWindow(terminalApp)
	rev := r.Revision()
	for i := 0; i < 5; i++ {
		if id := r.OpenWindow(terminalApp); id != first {
			t.Fatalf("OpenWindow returned %q, want %q", id, first)
		}
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 window, got %d", r.Len())
	}
	if w := mustWindow(t, r, first); w.ZIndex != 101 {
		t.Fatalf("ZIndex changed to %d", w.ZIndex)
	}
	if r.Revision() != rev {
		t.Fatalf("reopening the top window should not change revision")
	}
}

func TestOpenWindow_RestoresMinimized(t *testing.T) {
	r := newTestRegistry()
	id := r.OpenWindow(terminalApp)
	r.OpenWindow(helpApp)
	r.Minimize(id)

	if len(r.RenderList()) != 1 {
		t.Fatalf("minimized window should leave the render list")
	}

	r.OpenWindow(terminalApp)
	w := mustWindow(t, r, id)
	if w.IsMinimized {
		t.Fatal("expected window restored")
	}
	if w.ZIndex != r.TopZIndex() {
		t.Fatalf("ZIndex = %d, want top %d", w.ZIndex, r.TopZIndex())
	}
	if len(r.RenderList()) != 2 {
		t.Fatal("window should reappear in the render list")
	}
}

func TestOpenWindow_RestoresMinimizedTopWindow(t *testing.T) {
	r := newTestRegistry()
	id := r.OpenWindow(terminalApp)
	r.Minimize(id)
	if w := mustWindow(t, r, id); w.ZIndex != 101 {
		t.Fatalf("minimize must not change ZIndex, got %d", w.ZIndex)
	}

	r.OpenWindow(terminalApp)
	w := mustWindow(t, r, id)
	if w.IsMinimized {
		t.Fatal("expected window restored")
	}
	if w.ZIndex != r.TopZIndex() {
		t.Fatal("expected window to hold the top ZIndex")
	}
}

func TestOpenWindow_Cascade(t *testing.T) {
	r := NewRegistry(platform.FixedViewport{Width: 400, Height: 400})
	defs := []apps.AppDefinition{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
	}
	want := []platform.Point{
		{X: 80, Y: 80},
		{X: 110, Y: 110},
		{X: 140, Y: 140},
		{X: 170, Y: 170},
		{X: 200, Y: 200},
	}
	for i, def := range defs {
		w := mustWindow(t, r, r.OpenWindow(def))
		if w.Position != want[i] {
			t.Fatalf("window %d Position = %+v, want %+v", i, w.Position, want[i])
		}
	}
	// 230 > 400/2 resets to the origin.
	w := mustWindow(t, r, r.OpenWindow(apps.AppDefinition{ID: "f"}))
	if w.Position != CascadeOrigin {
		t.Fatalf("Position = %+v, want origin %+v", w.Position, CascadeOrigin)
	}
	w = mustWindow(t, r, r.OpenWindow(apps.AppDefinition{ID: "g"}))
	if w.Position != (platform.Point{X: 80, Y: 80}) {
		t.Fatalf("Position after reset = %+v", w.Position)
	}
}

func TestOpenWindow_DegenerateViewportResetsCascade(t *testing.T) {
	r := NewRegistry(platform.FixedViewport{Width: 0, Height: -10})
	w := mustWindow(t, r, r.OpenWindow(terminalApp))
	if w.Position != CascadeOrigin {
		t.Fatalf("Position = %+v, want origin", w.Position)
	}

	r = NewRegistry(nil)
	w = mustWindow(t, r, r.OpenWindow(terminalApp))
	if w.Position != CascadeOrigin {
		t.Fatalf("nil viewport Position = %+v, want origin", w.Position)
	}
}

func TestOpenWindow_ReopenAfterCloseCreatesNewInstance(t *testing.T) {
	r := newTestRegistry()
	first := r.OpenWindow(terminalApp)
	r.CloseWindow(first)
	second := r.OpenWindow(terminalApp)
	if second == first {
		t.Fatal("expected a new window id after close")
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 window, got %d", r.Len())
	}
}

func TestFocusWindow_RaisesToTop(t *testing.T) {
	r := newTestRegistry()
	a := r.OpenWindow(terminalApp)
	b := r.OpenWindow(notesApp)
	c := r.OpenWindow(helpApp)

	for _, id := range []string{a, b, a, c, b} {
		r.FocusWindow(id)
		w := mustWindow(t, r, id)
		if w.ZIndex != r.TopZIndex() {
			t.Fatalf("after focus(%s) ZIndex = %d, top = %d", id, w.ZIndex, r.TopZIndex())
		}
		if !r.IsActive(id) {
			t.Fatalf("expected %s active", id)
		}
		assertDistinctZ(t, r)
	}
}

func TestFocusWindow_TopIsNoOp(t *testing.T) {
	r := newTestRegistry()
	r.OpenWindow(terminalApp)
	id := r.OpenWindow(notesApp)
	rev := r.Revision()
	before := mustWindow(t, r, id).ZIndex

	r.FocusWindow(id)
	if got := mustWindow(t, r, id).ZIndex; got != before {
		t.Fatalf("ZIndex changed from %d to %d", before, got)
	}
	if r.Revision() != rev {
		t.Fatal("focusing the top window must not change revision")
	}
}

func TestFocusWindow_ClearsMinimized(t *testing.T) {
	r := newTestRegistry()
	a := r.OpenWindow(terminalApp)
	r.OpenWindow(notesApp)
	r.Minimize(a)

	r.FocusWindow(a)
	if w := mustWindow(t, r, a); w.IsMinimized {
		t.Fatal("focus should restore a minimized window")
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	r := newTestRegistry()
	r.OpenWindow(terminalApp)
	rev := r.Revision()

	r.FocusWindow("missing")
	r.CloseWindow("missing")
	r.UpdateWindowState("missing", MovePatch(platform.Point{X: 1, Y: 1}))
	r.Minimize("missing")
	r.ToggleMaximize("missing")

	if r.Len() != 1 || r.Revision() != rev {
		t.Fatal("unknown ids must not change state")
	}
}

func TestCloseWindow_Removes(t *testing.T) {
	r := newTestRegistry()
	a := r.OpenWindow(terminalApp)
	b := r.OpenWindow(notesApp)
	r.CloseWindow(b)

	if _, ok := r.Window(b); ok {
		t.Fatal("window should be gone")
	}
	if _, ok := r.ByApp("scratchpad"); ok {
		t.Fatal("app index should be cleared")
	}
	active, ok := r.Active()
	if !ok || active.ID != a {
		t.Fatalf("expected %s active after close, got %+v", a, active)
	}
}

func TestUpdateWindowState_ShallowMerge(t *testing.T) {
	r := newTestRegistry()
	id := r.OpenWindow(terminalApp)
	before := mustWindow(t, r, id)

	r.UpdateWindowState(id, MovePatch(platform.Point{X: -500, Y: 9999}))
	after := mustWindow(t, r, id)
	if after.Position != (platform.Point{X: -500, Y: 9999}) {
		t.Fatalf("Position = %+v; registry must not clamp", after.Position)
	}
	if after.Size != before.Size || after.ZIndex != before.ZIndex || after.Title != before.Title {
		t.Fatalf("unrelated fields changed: %+v", after)
	}

	rev := r.Revision()
	r.UpdateWindowState(id, Patch{})
	r.UpdateWindowState(id, MovePatch(after.Position))
	if r.Revision() != rev {
		t.Fatal("no-op patches must not change revision")
	}
}

func TestToggleMaximize_PreservesGeometry(t *testing.T) {
	r := newTestRegistry()
	id := r.OpenWindow(terminalApp)
	r.UpdateWindowState(id, MovePatch(platform.Point{X: 200, Y: 140}))
	before := mustWindow(t, r, id)

	r.ToggleMaximize(id)
	maxed := mustWindow(t, r, id)
	if !maxed.IsMaximized {
		t.Fatal("expected maximized")
	}
	if maxed.Position != before.Position || maxed.Size != before.Size {
		t.Fatal("maximize must not touch stored geometry")
	}
	vp := platform.Size{Width: 1920, Height: 1080}
	if got := RenderGeometry(maxed, vp); got != (platform.Rect{Width: 1920, Height: 1080}) {
		t.Fatalf("RenderGeometry = %+v", got)
	}

	r.ToggleMaximize(id)
	restored := mustWindow(t, r, id)
	if restored.IsMaximized || restored.Bounds() != before.Bounds() {
		t.Fatalf("restore mismatch: %+v vs %+v", restored, before)
	}
	if RenderGeometry(restored, vp) != before.Bounds() {
		t.Fatal("restored render geometry should match stored bounds")
	}
}

func TestSnapshotAndRenderListOrdering(t *testing.T) {
	r := newTestRegistry()
	a := r.OpenWindow(terminalApp)
	b := r.OpenWindow(notesApp)
	c := r.OpenWindow(helpApp)
	r.FocusWindow(a)
	r.Minimize(b)

	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d", len(snap))
	}
	gotOrder := []string{snap[0].ID, snap[1].ID, snap[2].ID}
	wantOrder := []string{b, c, a}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("snapshot order = %v, want %v", gotOrder, wantOrder)
		}
	}

	render := r.RenderList()
	if len(render) != 2 || render[0].ID != c || render[1].ID != a {
		t.Fatalf("render list = %+v", render)
	}

	snap[0].Title = "mutated"
	if mustWindow(t, r, b).Title == "mutated" {
		t.Fatal("snapshot must be a copy")
	}
}

func TestActive_EmptyRegistry(t *testing.T) {
	r := newTestRegistry()
	if _, ok := r.Active(); ok {
		t.Fatal("expected no active window")
	}
	if r.TopZIndex() != BaseZIndex {
		t.Fatalf("TopZIndex = %d, want %d", r.TopZIndex(), BaseZIndex)
	}
}

func assertDistinctZ(t *testing.T, r *Registry) {
	t.Helper()
	seen := map[int]string{}
	for _, w := range r.Snapshot() {
		if other, dup := seen[w.ZIndex]; dup {
			t.Fatalf("windows %s and %s share ZIndex %d", other, w.ID, w.ZIndex)
		}
		seen[w.ZIndex] = w.ID
	}
}
