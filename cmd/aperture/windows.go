package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/aperture/internal/ipc"
	"github.com/1broseidon/aperture/internal/wm"
)

func encodeJSON(v interface{}) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runApps(args []string) int {
	fs := flag.NewFlagSet("apps", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Output as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: aperture apps [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List catalog apps with dock indicators.")
	}
	if code := parseNoArgs(fs, args); code >= 0 {
		return code
	}

	items, err := ipc.NewClient().ListApps()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return encodeJSON(items)
	}
	for _, it := range items {
		state := "-"
		switch {
		case it.Active:
			state = "active"
		case it.Minimized:
			state = "minimized"
		case it.Running:
			state = "running"
		}
		fmt.Printf("%-12s %-20s %-10s %s\n", it.AppID, it.Name, state, it.WindowID)
	}
	return 0
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Output as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: aperture windows [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List open windows in stacking order, bottom first.")
	}
	if code := parseNoArgs(fs, args); code >= 0 {
		return code
	}

	data, err := ipc.NewClient().ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return encodeJSON(data)
	}
	if len(data.Windows) == 0 {
		fmt.Println("no windows")
		return 0
	}
	for _, w := range data.Windows {
		fmt.Println(formatWindow(w, w.ID == data.ActiveID))
	}
	return 0
}

func formatWindow(w wm.WindowInstance, active bool) string {
	marker := " "
	if active {
		marker = "*"
	}
	flags := ""
	if w.IsMinimized {
		flags += " minimized"
	}
	if w.IsMaximized {
		flags += " maximized"
	}
	return fmt.Sprintf("%s %s  %-10s z=%d  %d,%d %dx%d%s",
		marker, w.ID, w.AppID, w.ZIndex,
		w.Position.X, w.Position.Y, w.Size.Width, w.Size.Height, flags)
}

func runOpen(args []string) int {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: aperture open <app>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open an app, or focus its window when already open.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "open requires exactly one app id")
		fs.Usage()
		return 2
	}

	id, err := ipc.NewClient().OpenApp(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(id)
	return 0
}

func runWindowOp(name string, args []string) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: aperture %s <window-id>\n", name)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "%s requires exactly one window id\n", name)
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	var op func(string) error
	switch name {
	case "focus":
		op = client.FocusWindow
	case "close":
		op = client.CloseWindow
	case "minimize":
		op = client.MinimizeWindow
	case "maximize":
		op = client.ToggleMaximize
	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n", name)
		return 2
	}
	if err := op(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
