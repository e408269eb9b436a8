package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/aperture/internal/config"
	"github.com/1broseidon/aperture/internal/ipc"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printMainUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "desktop":
		return runDesktop(args[1:])
	case "status":
		return runStatus(args[1:])
	case "apps":
		return runApps(args[1:])
	case "windows":
		return runWindows(args[1:])
	case "open":
		return runOpen(args[1:])
	case "focus", "close", "minimize", "maximize":
		return runWindowOp(args[0], args[1:])
	case "reload":
		return runReload(args[1:])
	case "config":
		return runConfig(args[1:])
	case "settings":
		return runSettings(args[1:])
	case "palette":
		return runPalette(args[1:])
	case "mcp":
		return runMCP(args[1:])
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(os.Stderr)
		return 2
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: aperture <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  desktop             Run the desktop (terminal UI, or --headless)")
	fmt.Fprintln(w, "  status              Show desktop status")
	fmt.Fprintln(w, "  reload              Reload settings in the running desktop")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  apps                List apps with running indicators")
	fmt.Fprintln(w, "  windows             List open windows, bottom first")
	fmt.Fprintln(w, "  open <app>          Open an app or focus its window")
	fmt.Fprintln(w, "  focus <id>          Bring a window to the front")
	fmt.Fprintln(w, "  close <id>          Close a window")
	fmt.Fprintln(w, "  minimize <id>       Minimize a window")
	fmt.Fprintln(w, "  maximize <id>       Toggle maximize on a window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  settings            Edit settings interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  palette             Launch an app from rofi/fuzzel/wofi/dmenu")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'aperture <command> --help' for command-specific options.")
}

// parseNoArgs handles a flag set for commands that take no positional args.
// It returns -1 when the caller should continue, or an exit code.
func parseNoArgs(fs *flag.FlagSet, args []string) int {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", fs.Name())
		fs.Usage()
		return 2
	}
	return -1
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: aperture status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show desktop status via IPC.")
	}
	if code := parseNoArgs(fs, args); code >= 0 {
		return code
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	active := status.ActiveWindow
	if active == "" {
		active = "-"
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("windows:        %d (%d visible)\n", status.WindowCount, status.VisibleCount)
	fmt.Printf("active_window:  %s\n", active)
	fmt.Printf("viewport:       %dx%d\n", status.Viewport.Width, status.Viewport.Height)
	fmt.Printf("grid_snapping:  %v\n", status.GridSnapping)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: aperture reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Re-read the settings file in the running desktop.")
	}
	if code := parseNoArgs(fs, args); code >= 0 {
		return code
	}
	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  aperture config validate [--path PATH]")
	fmt.Fprintln(w, "  aperture config print [--path PATH] [--defaults] [--sources]")
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/aperture/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/aperture/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printSources := fs.Bool("sources", false, "Print where each overridden value came from")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if *printDefaults {
			return printYAML(config.DefaultConfig())
		}

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if *printSources {
			for _, key := range sortedKeys(res.Sources) {
				fmt.Printf("# %s: %s\n", key, formatSource(res.Sources[key]))
			}
		}
		return printYAML(res.Config)

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func printYAML(v interface{}) int {
	data, err := yaml.Marshal(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Print(string(data))
	return 0
}

// resolveConfigPath returns path, or the default location when empty.
func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.DefaultConfigPath()
}

func loadConfig(path string) (*config.LoadResult, error) {
	resolved, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	return config.LoadFromPath(resolved)
}

func sortedKeys(m map[string]config.Source) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		return "file:" + src.File
	case config.SourceEnv:
		return "env"
	case config.SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}
