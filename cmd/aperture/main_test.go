package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/aperture/internal/apps"
	"github.com/1broseidon/aperture/internal/config"
	"github.com/1broseidon/aperture/internal/dock"
	"github.com/1broseidon/aperture/internal/ipc"
	"github.com/1broseidon/aperture/internal/platform"
	"github.com/1broseidon/aperture/internal/runtimepath"
	"github.com/1broseidon/aperture/internal/wm"
)

// runtimeDir points the socket lookup at a fresh short directory.
func runtimeDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "aperture-cmd")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	t.Setenv(runtimepath.EnvDir, dir)
	return dir
}

func startDesktop(t *testing.T) *wm.Registry {
	t.Helper()
	runtimeDir(t)
	registry := wm.NewRegistry(platform.FixedViewport(platform.Size{Width: 1920, Height: 1080}))
	store := config.NewStore(config.DefaultConfig(), "")
	d := dock.New(apps.BuiltinRegistry(), registry, store)
	server, err := ipc.NewServer(registry, d, store, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if err := server.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(server.Stop)
	return registry
}

func TestRunUsageAndUnknownCommand(t *testing.T) {
	if code := run(nil); code != 0 {
		t.Fatalf("run(nil) = %d, want 0", code)
	}
	if code := run([]string{"help"}); code != 0 {
		t.Fatalf("run(help) = %d, want 0", code)
	}
	if code := run([]string{"bogus"}); code != 2 {
		t.Fatalf("run(bogus) = %d, want 2", code)
	}
}

func TestArgumentErrorsExitTwo(t *testing.T) {
	cases := [][]string{
		{"open"},
		{"open", "terminal", "portal"},
		{"focus"},
		{"close", "a", "b"},
		{"status", "extra"},
		{"windows", "extra"},
		{"config"},
		{"config", "explain"},
		{"mcp"},
		{"mcp", "nope"},
		{"desktop", "--no-such-flag"},
	}
	for _, args := range cases {
		if code := run(args); code != 2 {
			t.Fatalf("run(%v) = %d, want 2", args, code)
		}
	}
}

func TestHelpFlagsExitZero(t *testing.T) {
	for _, args := range [][]string{
		{"status", "--help"},
		{"open", "-h"},
		{"maximize", "--help"},
		{"desktop", "--help"},
		{"mcp", "help"},
		{"mcp", "serve", "--help"},
	} {
		if code := run(args); code != 0 {
			t.Fatalf("run(%v) = %d, want 0", args, code)
		}
	}
}

func TestClientCommandsFailWithoutDesktop(t *testing.T) {
	runtimeDir(t)
	for _, args := range [][]string{
		{"status"},
		{"windows"},
		{"open", "terminal"},
		{"focus", "w1"},
	} {
		if code := run(args); code != 1 {
			t.Fatalf("run(%v) = %d, want 1", args, code)
		}
	}
}

func TestClientCommandsAgainstDesktop(t *testing.T) {
	registry := startDesktop(t)

	if code := run([]string{"open", "terminal"}); code != 0 {
		t.Fatalf("open = %d, want 0", code)
	}
	if code := run([]string{"open", "portal"}); code != 0 {
		t.Fatalf("open = %d, want 0", code)
	}
	if registry.Len() != 2 {
		t.Fatalf("registry has %d windows, want 2", registry.Len())
	}
	if code := run([]string{"open", "no-such-app"}); code != 1 {
		t.Fatalf("open unknown = %d, want 1", code)
	}

	term, ok := registry.ByApp("terminal")
	if !ok {
		t.Fatalf("terminal window missing")
	}
	if code := run([]string{"focus", term.ID}); code != 0 {
		t.Fatalf("focus = %d, want 0", code)
	}
	if active, _ := registry.Active(); active.ID != term.ID {
		t.Fatalf("active = %q, want %q", active.ID, term.ID)
	}

	if code := run([]string{"maximize", term.ID}); code != 0 {
		t.Fatalf("maximize = %d, want 0", code)
	}
	if w, _ := registry.Window(term.ID); !w.IsMaximized {
		t.Fatalf("window not maximized")
	}
	if code := run([]string{"minimize", term.ID}); code != 0 {
		t.Fatalf("minimize = %d, want 0", code)
	}
	if w, _ := registry.Window(term.ID); !w.IsMinimized {
		t.Fatalf("window not minimized")
	}

	for _, args := range [][]string{{"status"}, {"apps"}, {"apps", "--json"}, {"windows"}, {"windows", "--json"}} {
		if code := run(args); code != 0 {
			t.Fatalf("run(%v) = %d, want 0", args, code)
		}
	}

	if code := run([]string{"close", term.ID}); code != 0 {
		t.Fatalf("close = %d, want 0", code)
	}
	if _, ok := registry.Window(term.ID); ok {
		t.Fatalf("window still present after close")
	}
	if code := run([]string{"close", term.ID}); code != 1 {
		t.Fatalf("close of unknown window = %d, want 1", code)
	}
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("system:\n  grid_snapping: false\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if code := run([]string{"config", "validate", "--path", good}); code != 0 {
		t.Fatalf("validate good = %d, want 0", code)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("not_a_section: 1\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if code := run([]string{"config", "validate", "--path", bad}); code != 1 {
		t.Fatalf("validate bad = %d, want 1", code)
	}

	missing := filepath.Join(dir, "missing.yaml")
	if code := run([]string{"config", "validate", "--path", missing}); code != 0 {
		t.Fatalf("validate missing = %d, want 0 (defaults)", code)
	}
	if code := run([]string{"config", "print", "--path", good, "--sources"}); code != 0 {
		t.Fatalf("print = %d, want 0", code)
	}
	if code := run([]string{"config", "print", "--defaults"}); code != 0 {
		t.Fatalf("print --defaults = %d, want 0", code)
	}
}

func TestFormatSource(t *testing.T) {
	cases := map[string]config.Source{
		"default":          {Kind: config.SourceDefault},
		"env":              {Kind: config.SourceEnv},
		"file":             {Kind: config.SourceFile},
		"file:/tmp/a.yaml": {Kind: config.SourceFile, File: "/tmp/a.yaml"},
	}
	for want, src := range cases {
		if got := formatSource(src); got != want {
			t.Fatalf("formatSource(%+v) = %q, want %q", src, got, want)
		}
	}
}

func TestFormatWindow(t *testing.T) {
	w := wm.WindowInstance{
		ID:          "w1",
		AppID:       "terminal",
		Position:    platform.Point{X: 80, Y: 80},
		Size:        platform.Size{Width: 800, Height: 600},
		ZIndex:      101,
		IsMinimized: true,
	}
	line := formatWindow(w, true)
	if !strings.HasPrefix(line, "* w1") {
		t.Fatalf("line = %q, want active marker and id", line)
	}
	for _, part := range []string{"z=101", "80,80 800x600", "minimized"} {
		if !strings.Contains(line, part) {
			t.Fatalf("line = %q, missing %q", line, part)
		}
	}
}

func TestLogFileUnderRuntimeDir(t *testing.T) {
	dir := runtimeDir(t)
	f, err := openLogFile()
	if err != nil {
		t.Fatalf("openLogFile: %v", err)
	}
	f.Close()
	path, err := runtimepath.LogPath()
	if err != nil {
		t.Fatalf("LogPath: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("log path %q not under %q", path, dir)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}
