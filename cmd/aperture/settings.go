package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/aperture/internal/config"
	"github.com/1broseidon/aperture/internal/ipc"
	"github.com/1broseidon/aperture/internal/tui"
)

func runSettings(args []string) int {
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/aperture/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: aperture settings [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Edit appearance, dock and system settings in a form. Saved settings")
		fmt.Fprintln(os.Stderr, "are reloaded by a running desktop.")
	}
	if code := parseNoArgs(fs, args); code >= 0 {
		return code
	}

	target, err := resolveConfigPath(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	res, err := config.LoadFromPath(target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	edited, err := tui.EditSettings(res.Config)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := config.SaveFileLayer(target, edited); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("saved %s\n", target)

	// Best effort: the desktop may not be running.
	if err := ipc.NewClient().Reload(); err == nil {
		fmt.Println("desktop reloaded")
	}
	return 0
}
