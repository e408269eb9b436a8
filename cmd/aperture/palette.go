package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/aperture/internal/apps"
	"github.com/1broseidon/aperture/internal/ipc"
	"github.com/1broseidon/aperture/internal/palette"
)

func runPalette(args []string) int {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	backendName := fs.String("backend", "auto", "Launcher backend: auto, rofi, fuzzel, wofi, dmenu")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: aperture palette [--backend NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Pick an app in an external launcher and open it in the running desktop.")
		fmt.Fprintln(os.Stderr, "Inside the terminal desktop, Ctrl+K opens the built-in palette instead.")
	}
	if code := parseNoArgs(fs, args); code >= 0 {
		return code
	}

	backend, err := palette.NewBackend(*backendName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	client := ipc.NewClient()
	if err := client.Ping(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cmds := palette.AppCommands(apps.BuiltinRegistry(), func(app apps.AppDefinition) error {
		_, err := client.OpenApp(app.ID)
		return err
	})

	choice, err := backend.Show("aperture", palette.ItemsFromCommands(cmds))
	if err != nil {
		if errors.Is(err, palette.ErrCancelled) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for _, c := range cmds {
		if c.ID != choice.Action {
			continue
		}
		if err := c.Action(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	fmt.Fprintf(os.Stderr, "palette: unknown command %q\n", choice.Action)
	return 1
}
