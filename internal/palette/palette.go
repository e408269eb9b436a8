package palette

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sahilm/fuzzy"

	"github.com/1broseidon/aperture/internal/apps"
)

// DefaultRecentSize is how many launched commands are ranked first.
const DefaultRecentSize = 5

// Command is one palette entry.
type Command struct {
	ID       string
	Title    string
	Category string
	Icon     string
	AppID    string
	Action   func() error
}

// LaunchFunc opens an app. Dock and daemon client both provide one.
type LaunchFunc func(app apps.AppDefinition) error

// AppCommands builds an "Open <name>" command per catalog entry.
func AppCommands(catalog *apps.Registry, launch LaunchFunc) []Command {
	defs := catalog.All()
	out := make([]Command, 0, len(defs))
	for _, app := range defs {
		app := app
		out = append(out, Command{
			ID:       "app-" + app.ID,
			Title:    "Open " + app.Name,
			Category: "Applications",
			Icon:     app.Icon,
			AppID:    app.ID,
			Action:   func() error { return launch(app) },
		})
	}
	return out
}

// Palette is the keyboard-driven command list. It is closed until toggled.
type Palette struct {
	commands []Command
	recent   *lru.Cache[string, struct{}]

	open     bool
	query    string
	selected int
	filtered []Command
}

// New creates a closed palette over commands.
func New(commands []Command) *Palette {
	recent, err := lru.New[string, struct{}](DefaultRecentSize)
	if err != nil {
		// Only fails for a non-positive size.
		panic(err)
	}
	p := &Palette{commands: commands, recent: recent}
	p.refilter()
	return p
}

// IsOpen reports whether the palette is shown.
func (p *Palette) IsOpen() bool { return p.open }

// Query returns the current search text.
func (p *Palette) Query() string { return p.query }

// Selected returns the highlighted index into Filtered.
func (p *Palette) Selected() int { return p.selected }

// Filtered returns the commands matching the query, best first.
func (p *Palette) Filtered() []Command {
	out := make([]Command, len(p.filtered))
	copy(out, p.filtered)
	return out
}

// Toggle opens a closed palette or closes an open one.
func (p *Palette) Toggle() {
	if p.open {
		p.Close()
		return
	}
	p.Open()
}

// Open shows the palette with an empty query.
func (p *Palette) Open() {
	p.open = true
	p.reset()
}

// Close hides the palette and clears the query and selection.
func (p *Palette) Close() {
	p.open = false
	p.reset()
}

func (p *Palette) reset() {
	p.query = ""
	p.selected = 0
	p.refilter()
}

// SetQuery updates the search text and resets the highlight.
func (p *Palette) SetQuery(q string) {
	p.query = q
	p.selected = 0
	p.refilter()
}

// Down moves the highlight down, stopping at the last entry.
func (p *Palette) Down() {
	if p.selected < len(p.filtered)-1 {
		p.selected++
	}
}

// Up moves the highlight up, stopping at the first entry.
func (p *Palette) Up() {
	if p.selected > 0 {
		p.selected--
	}
}

// Execute runs the highlighted command and closes the palette. It returns
// false when nothing was selected.
func (p *Palette) Execute() (bool, error) {
	if p.selected < 0 || p.selected >= len(p.filtered) {
		return false, nil
	}
	return true, p.run(p.filtered[p.selected])
}

// ExecuteIndex runs the command at index i of Filtered, as a click would.
func (p *Palette) ExecuteIndex(i int) (bool, error) {
	if i < 0 || i >= len(p.filtered) {
		return false, nil
	}
	return true, p.run(p.filtered[i])
}

func (p *Palette) run(cmd Command) error {
	p.recent.Add(cmd.ID, struct{}{})
	p.Close()
	if cmd.Action == nil {
		return nil
	}
	return cmd.Action()
}

// HandleKey applies a key binding and reports whether it was consumed.
// Names follow bubbletea key strings.
func (p *Palette) HandleKey(key string) (bool, error) {
	if key == "ctrl+k" {
		p.Toggle()
		return true, nil
	}
	if !p.open {
		return false, nil
	}
	switch key {
	case "esc":
		p.Close()
	case "down":
		p.Down()
	case "up":
		p.Up()
	case "enter":
		_, err := p.Execute()
		return true, err
	default:
		return false, nil
	}
	return true, nil
}

func (p *Palette) refilter() {
	q := strings.TrimSpace(p.query)
	if q == "" {
		p.filtered = p.recentFirst()
		return
	}
	titles := make([]string, len(p.commands))
	for i, cmd := range p.commands {
		titles[i] = cmd.Title
	}
	// Titles containing the query verbatim (any case) rank ahead of
	// scattered fuzzy matches; fuzzy order is kept within each group.
	lq := strings.ToLower(q)
	matches := fuzzy.Find(q, titles)
	exact := make([]Command, 0, len(matches))
	var loose []Command
	for _, m := range matches {
		cmd := p.commands[m.Index]
		if strings.Contains(strings.ToLower(cmd.Title), lq) {
			exact = append(exact, cmd)
		} else {
			loose = append(loose, cmd)
		}
	}
	p.filtered = append(exact, loose...)
}

// recentFirst lists recently run commands (newest first), then the rest in
// catalog order.
func (p *Palette) recentFirst() []Command {
	keys := p.recent.Keys() // oldest to newest
	byID := make(map[string]int, len(p.commands))
	for i, cmd := range p.commands {
		byID[cmd.ID] = i
	}
	out := make([]Command, 0, len(p.commands))
	seen := make(map[string]bool, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if idx, ok := byID[keys[i]]; ok {
			out = append(out, p.commands[idx])
			seen[keys[i]] = true
		}
	}
	for _, cmd := range p.commands {
		if !seen[cmd.ID] {
			out = append(out, cmd)
		}
	}
	return out
}
