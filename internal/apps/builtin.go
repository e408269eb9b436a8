package apps

import (
	"strings"

	"github.com/1broseidon/aperture/internal/platform"
)

func size(w, h int) *platform.Size {
	return &platform.Size{Width: w, Height: h}
}

// staticContent renders fixed text, truncated to the content area.
type staticContent []string

func (s staticContent) Lines(width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	out := make([]string, 0, height)
	for _, line := range s {
		if len(out) == height {
			break
		}
		r := []rune(line)
		if len(r) > width {
			r = r[:width]
		}
		out = append(out, string(r))
	}
	return out
}

func static(lines ...string) ContentFactory {
	return func() Content { return staticContent(lines) }
}

// Builtin returns the default catalog definitions in dock order.
func Builtin() []AppDefinition {
	return []AppDefinition{
		{
			ID:          "terminal",
			Name:        "Terminal",
			Icon:        ">",
			DefaultSize: size(800, 600),
			Content:     static("aperture:~$ help", "Available commands: help, clear, date, whoami", "aperture:~$ _"),
		},
		{
			ID:          "portal",
			Name:        "Portal",
			Icon:        "@",
			DefaultSize: size(1000, 700),
			Content:     static("[ about:blank ]", "", "Bookmarks", strings.Repeat("-", 9), "No bookmarks yet."),
		},
		{
			ID:          "axiom",
			Name:        "Axiom",
			Icon:        "*",
			DefaultSize: size(600, 700),
			Content:     static("Axiom concierge", "", "How can I help today?"),
		},
		{
			ID:      "settings",
			Name:    "Settings",
			Icon:    "#",
			Content: static("Appearance", "Layout", "System", "", "Edit with: aperture settings"),
		},
		{
			ID:          "scratchpad",
			Name:        "Scratchpad",
			Icon:        "~",
			DefaultSize: size(500, 400),
			Content:     static("Notes", "", "Start typing..."),
		},
		{
			ID:      "connector-hub",
			Name:    "Connector Hub",
			Icon:    "+",
			Content: static("Connectors", "", "No connectors configured."),
		},
		{
			ID:          "automaton",
			Name:        "Automaton",
			Icon:        "%",
			DefaultSize: size(1000, 640),
			Content:     static("Workflow designer", "", "trigger -> action -> output"),
		},
		{
			ID:          "help",
			Name:        "Help",
			Icon:        "?",
			DefaultSize: size(600, 500),
			Content: static(
				"Drag a window by its header.",
				"Resize from the bottom-right corner.",
				"Double-click the header to maximize.",
				"Ctrl+K opens the command palette.",
			),
		},
	}
}

// BuiltinRegistry returns a catalog of the builtin apps.
func BuiltinRegistry() *Registry {
	r, err := NewRegistry(Builtin()...)
	if err != nil {
		panic(err)
	}
	return r
}
