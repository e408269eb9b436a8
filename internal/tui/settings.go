package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/aperture/internal/config"
)

// settingsForm edits the user-facing settings with a huh form.
type settingsForm struct {
	width  int
	height int

	editing bool
	form    *huh.Form

	// Form-bound values
	fTheme        string
	fAccent       string
	fBackground   string
	fDockPosition string
	fDockSize     string
	fAutoHide     bool
	fGridSnapping bool
}

func (s *settingsForm) load(cfg *config.Config) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s.fTheme = string(cfg.Appearance.Theme)
	s.fAccent = cfg.Appearance.AccentColor
	s.fBackground = cfg.Appearance.Background
	s.fDockPosition = string(cfg.Layout.Dock.Position)
	s.fDockSize = string(cfg.Layout.Dock.Size)
	s.fAutoHide = cfg.Layout.Dock.AutoHide
	s.fGridSnapping = cfg.System.GridSnapping
}

// build creates the form bound to s.
func (s *settingsForm) build() *huh.Form {
	w := s.width - 4
	if w < 40 {
		w = 40
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("theme").
				Title("Theme").
				Options(
					huh.NewOption("Dark", string(config.ThemeDark)),
					huh.NewOption("Light", string(config.ThemeLight)),
					huh.NewOption("Matrix", string(config.ThemeMatrix)),
				).
				Value(&s.fTheme),

			huh.NewInput().
				Key("accent_color").
				Title("Accent Color").
				Description("Active window header and dock highlight (#RRGGBB)").
				Validate(func(v string) error {
					if !config.IsHexColor(v) {
						return fmt.Errorf("expected #RRGGBB")
					}
					return nil
				}).
				Value(&s.fAccent),

			huh.NewInput().
				Key("background").
				Title("Background").
				Value(&s.fBackground),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("dock_position").
				Title("Dock Position").
				Options(
					huh.NewOption("Bottom", string(config.DockBottom)),
					huh.NewOption("Left", string(config.DockLeft)),
					huh.NewOption("Right", string(config.DockRight)),
				).
				Value(&s.fDockPosition),

			huh.NewSelect[string]().
				Key("dock_size").
				Title("Dock Size").
				Options(
					huh.NewOption("Small", string(config.DockSmall)),
					huh.NewOption("Medium", string(config.DockMedium)),
					huh.NewOption("Large", string(config.DockLarge)),
				).
				Value(&s.fDockSize),

			huh.NewConfirm().
				Key("auto_hide").
				Title("Auto-hide Dock").
				Value(&s.fAutoHide),

			huh.NewConfirm().
				Key("grid_snapping").
				Title("Grid Snapping").
				Description("Round drag and resize to a 20-unit grid").
				Value(&s.fGridSnapping),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)
}

// start enters edit mode seeded from cfg.
func (s *settingsForm) start(cfg *config.Config) tea.Cmd {
	s.load(cfg)
	s.form = s.build()
	s.editing = true
	return s.form.Init()
}

// update feeds msg to the form. done is true once the form was submitted.
func (s settingsForm) update(msg tea.Msg) (settingsForm, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			s.editing = false
			s.form = nil
			return s, nil, false
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	switch s.form.State {
	case huh.StateCompleted:
		s.editing = false
		s.form = nil
		return s, nil, true
	case huh.StateAborted:
		s.editing = false
		s.form = nil
		return s, nil, false
	}
	return s, cmd, false
}

// apply writes the form values over a copy of cfg.
func (s settingsForm) apply(cfg *config.Config) *config.Config {
	out := cfg.Clone()
	if out == nil {
		out = config.DefaultConfig()
	}
	if s.fTheme != "" {
		out.Appearance.Theme = config.Theme(s.fTheme)
	}
	if s.fAccent != "" {
		out.Appearance.AccentColor = s.fAccent
	}
	out.Appearance.Background = s.fBackground
	if s.fDockPosition != "" {
		out.Layout.Dock.Position = config.DockPosition(s.fDockPosition)
	}
	if s.fDockSize != "" {
		out.Layout.Dock.Size = config.DockSize(s.fDockSize)
	}
	out.Layout.Dock.AutoHide = s.fAutoHide
	out.System.GridSnapping = s.fGridSnapping
	return out
}

func (s settingsForm) View() string {
	if !s.editing || s.form == nil {
		return ""
	}
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Settings") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	content := header + "\n\n" + s.form.View()

	style := lipgloss.NewStyle().
		Width(s.width).
		Height(s.height).
		Padding(1, 2)

	return style.Render(content)
}

// EditSettings runs the settings form standalone and returns the edited copy
// of cfg. It returns huh.ErrUserAborted when the user cancels.
func EditSettings(cfg *config.Config) (*config.Config, error) {
	var s settingsForm
	s.load(cfg)
	s.width = 72
	if err := s.build().Run(); err != nil {
		return nil, err
	}
	return s.apply(cfg), nil
}
