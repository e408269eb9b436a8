package palette

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Item is a single selectable entry in an external menu.
type Item struct {
	Label  string
	Action string // returned on selection
	Icon   string
}

// Backend shows items in an external launcher and returns the chosen one.
type Backend interface {
	Show(prompt string, items []Item) (Item, error)
	Name() string
}

type backendKind int

const (
	kindRofi backendKind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

type dmenuLikeBackend struct {
	command string
	kind    backendKind
}

// DetectBackend returns the first available launcher found in PATH, in
// priority order: rofi, fuzzel, wofi, dmenu.
func DetectBackend() (string, error) {
	for _, name := range []string{"rofi", "fuzzel", "wofi", "dmenu"} {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: rofi, fuzzel, wofi, dmenu)")
}

// NewBackend creates a backend by name. Supported names: auto, rofi, fuzzel, wofi, dmenu.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		name = detected
	}
	var kind backendKind
	switch name {
	case "rofi":
		kind = kindRofi
	case "fuzzel":
		kind = kindFuzzel
	case "wofi":
		kind = kindWofi
	case "dmenu":
		kind = kindDmenu
	default:
		return nil, fmt.Errorf("unknown palette backend %q", name)
	}
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", name)
	}
	return &dmenuLikeBackend{command: name, kind: kind}, nil
}

func (b *dmenuLikeBackend) Name() string {
	return b.command
}

func (b *dmenuLikeBackend) Show(prompt string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	cmd := exec.Command(b.command, b.buildArgs(prompt)...)
	cmd.Stdin = strings.NewReader(b.formatInput(items))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Item{}, fmt.Errorf("%s failed: %s", b.command, msg)
		}
		return Item{}, fmt.Errorf("%s failed: %w", b.command, err)
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return b.parseSelection(selection, items)
}

func (b *dmenuLikeBackend) buildArgs(prompt string) []string {
	switch b.kind {
	case kindRofi:
		return []string{"-dmenu", "-i", "-p", prompt, "-format", "i", "-show-icons"}
	case kindFuzzel:
		return []string{"--dmenu", "--index", "--prompt", prompt + " "}
	case kindWofi:
		return []string{"--dmenu", "--insensitive", "--prompt", prompt}
	default:
		return []string{"-i", "-p", prompt}
	}
}

func (b *dmenuLikeBackend) formatInput(items []Item) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(sanitizeLabel(item.Label))
		if b.kind == kindRofi && item.Icon != "" {
			sb.WriteString("\x00icon\x1f")
			sb.WriteString(sanitizeRofiField(item.Icon))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *dmenuLikeBackend) parseSelection(selection string, items []Item) (Item, error) {
	if b.kind == kindRofi || b.kind == kindFuzzel {
		idx, err := strconv.Atoi(selection)
		if err != nil {
			return findByLabel(selection, items)
		}
		if idx < 0 || idx >= len(items) {
			return Item{}, fmt.Errorf("palette: index %d out of range", idx)
		}
		return items[idx], nil
	}
	return findByLabel(selection, items)
}

func findByLabel(selection string, items []Item) (Item, error) {
	for _, item := range items {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

// ItemsFromCommands converts palette commands for an external backend.
func ItemsFromCommands(cmds []Command) []Item {
	out := make([]Item, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, Item{Label: c.Title, Action: c.ID})
	}
	return out
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeRofiField(value string) string {
	// Avoid breaking the \0key\x1fvalue protocol with control separators.
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	// Rofi/dmenu/wofi typically use 1 for "no selection" and 130 for Ctrl+C.
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	default:
		return false
	}
}
