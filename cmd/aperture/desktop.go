package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/aperture/internal/apps"
	"github.com/1broseidon/aperture/internal/config"
	"github.com/1broseidon/aperture/internal/dock"
	"github.com/1broseidon/aperture/internal/ipc"
	"github.com/1broseidon/aperture/internal/platform"
	"github.com/1broseidon/aperture/internal/runtimepath"
	"github.com/1broseidon/aperture/internal/tui"
	"github.com/1broseidon/aperture/internal/wm"
)

func runDesktop(args []string) int {
	fs := flag.NewFlagSet("desktop", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/aperture/config.yaml)")
	headless := fs.Bool("headless", false, "Run without a UI; windows are driven over IPC only")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: aperture desktop [--path PATH] [--headless]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the desktop in this terminal. Other aperture commands and MCP")
		fmt.Fprintln(os.Stderr, "clients control it over the IPC socket.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  Ctrl+K    Toggle command palette")
		fmt.Fprintln(os.Stderr, "  Ctrl+S    Settings")
		fmt.Fprintln(os.Stderr, "  Tab       Raise the bottom window")
		fmt.Fprintln(os.Stderr, "  Ctrl+W    Close the active window")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C Quit")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "With --headless the viewport comes from viewport.source (fixed, terminal, x11).")
	}
	if code := parseNoArgs(fs, args); code >= 0 {
		return code
	}

	cfgPath, err := resolveConfigPath(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	res, err := config.LoadFromPath(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	store := config.NewStore(res.Config, cfgPath)

	if *headless {
		return runHeadless(store)
	}
	return runTerminalDesktop(store, cfgPath)
}

func runTerminalDesktop(store *config.Store, cfgPath string) int {
	// The UI owns stdout; logs go to a file in the runtime dir.
	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	cfg := store.Config()
	viewport := tui.NewViewport(platform.Size{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height})
	registry := wm.NewRegistry(viewport)
	catalog := apps.BuiltinRegistry()
	d := dock.New(catalog, registry, store)

	desk := tui.New(tui.Deps{
		Registry:   registry,
		Viewport:   viewport,
		Catalog:    catalog,
		Dock:       d,
		Settings:   store,
		ConfigPath: cfgPath,
	})

	server, err := ipc.NewServer(registry, d, store, desk.Do)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer server.Stop()

	log.Printf("desktop started (config: %s)", cfgPath)
	if err := desk.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log.Println("desktop stopped")
	return 0
}

func runHeadless(store *config.Store) int {
	cfg := store.Config()
	fallback := platform.Size{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}
	source, err := platform.ResolveViewport(string(cfg.Viewport.Source), fallback)
	if err != nil {
		log.Printf("Viewport source %q unavailable, using %dx%d: %v",
			cfg.Viewport.Source, fallback.Width, fallback.Height, err)
		source = platform.FixedViewport(fallback)
	}
	if closer, ok := source.(interface{ Close() }); ok {
		defer closer.Close()
	}

	registry := wm.NewRegistry(source)
	d := dock.New(apps.BuiltinRegistry(), registry, store)

	server, err := ipc.NewServer(registry, d, store, nil)
	if err != nil {
		log.Printf("Failed to create IPC server: %v", err)
		return 1
	}
	if err := server.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
		return 1
	}
	defer server.Stop()

	size := registry.Viewport()
	log.Printf("aperture desktop running headless (%s viewport %dx%d)", cfg.Viewport.Source, size.Width, size.Height)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for sig := range sigCh {
		if sig == syscall.SIGHUP {
			if err := store.Reload(); err != nil {
				log.Printf("Failed to reload configuration: %v", err)
				continue
			}
			log.Println("Configuration reloaded")
			continue
		}
		log.Printf("Received %v, shutting down", sig)
		break
	}
	return 0
}

func openLogFile() (io.WriteCloser, error) {
	path, err := runtimepath.LogPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
