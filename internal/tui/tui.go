// Package tui draws the desktop in a terminal: windows from the registry's
// render list, a dock, a status bar and the command palette. Mouse input is
// converted to desktop units and handed to the pointer router.
package tui

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/aperture/internal/apps"
	"github.com/1broseidon/aperture/internal/config"
	"github.com/1broseidon/aperture/internal/dock"
	"github.com/1broseidon/aperture/internal/platform"
	"github.com/1broseidon/aperture/internal/wm"
)

// Viewport is the desktop area in units, updated by the UI on resize. It is
// the registry's viewport source while the terminal desktop runs.
type Viewport struct {
	mu   sync.RWMutex
	size platform.Size
}

// NewViewport creates a viewport with an initial extent.
func NewViewport(initial platform.Size) *Viewport {
	return &Viewport{size: initial}
}

// Viewport implements platform.ViewportSource.
func (v *Viewport) Viewport() (platform.Size, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.size, nil
}

// Set replaces the extent.
func (v *Viewport) Set(size platform.Size) {
	v.mu.Lock()
	v.size = size
	v.mu.Unlock()
}

// Deps are the shared objects the desktop UI drives.
type Deps struct {
	Registry   *wm.Registry
	Viewport   *Viewport
	Catalog    *apps.Registry
	Dock       *dock.Dock
	Settings   *config.Store
	ConfigPath string // where the settings form saves; empty disables saving
}

// applyMsg carries an out-of-band change (IPC) into the UI loop so it is
// ordered with keyboard and mouse input. done is closed once fn has run.
type applyMsg struct {
	fn   func()
	done chan struct{}
}

// Desktop is a running terminal desktop.
type Desktop struct {
	program  *tea.Program
	finished chan struct{}
}

// New builds the desktop program. Call Run to start it.
func New(deps Deps) *Desktop {
	m := newModel(deps)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	return &Desktop{program: p, finished: make(chan struct{})}
}

// Do runs fn on the UI goroutine between input events and redraws. It
// blocks until fn has run. Once the UI has stopped, fn runs on the caller.
// Safe to call from any goroutine; fn runs exactly once.
func (d *Desktop) Do(fn func()) {
	var once sync.Once
	run := func() { once.Do(fn) }
	done := make(chan struct{})
	go d.program.Send(applyMsg{fn: run, done: done})
	select {
	case <-done:
	case <-d.finished:
		run()
	}
}

// Run starts the UI loop and blocks until the user quits.
func (d *Desktop) Run() error {
	defer close(d.finished)
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("desktop requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	_, err := d.program.Run()
	return err
}
