// Package mcp exposes the desktop's window operations as MCP tools over stdio.
package mcp

import (
	"context"
	"log/slog"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/aperture/internal/dock"
	"github.com/1broseidon/aperture/internal/ipc"
)

const (
	ServerName    = "aperture"
	ServerVersion = "0.1.0"
)

// Desktop is the running desktop as seen by the tools. *ipc.Client satisfies it.
type Desktop interface {
	ListApps() ([]dock.Indicator, error)
	ListWindows() (*ipc.WindowsData, error)
	OpenApp(appID string) (string, error)
	FocusWindow(id string) error
	CloseWindow(id string) error
	MinimizeWindow(id string) error
	ToggleMaximize(id string) error
}

var _ Desktop = (*ipc.Client)(nil)

// Server is the MCP server for aperture window control.
type Server struct {
	mcpServer *mcpsdk.Server
	desktop   Desktop
	logger    *slog.Logger
}

// NewServer creates a server backed by desktop. A nil logger writes JSON to
// stderr; stdout belongs to the protocol.
func NewServer(desktop Desktop, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	s := &Server{
		desktop: desktop,
		logger:  logger.With("component", "mcp"),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_apps",
		Description: "List every launchable app with its dock indicators: running, minimized, active and the window id when open.",
	}, s.handleListApps)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List open windows ordered by z-index, bottom first. The last entry with the highest z_index is the focused window.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_app",
		Description: "Open an app by id. If the app already has a window it is restored and focused instead of opening a second one.",
	}, s.handleOpenApp)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Raise a window to the top of the stack and restore it if minimized.",
	}, s.windowTool("focus", s.desktop.FocusWindow))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window. There is no confirmation and no undo.",
	}, s.windowTool("close", s.desktop.CloseWindow))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Hide a window from the desktop. Reopen the app or focus the window to restore it.",
	}, s.windowTool("minimize", s.desktop.MinimizeWindow))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_maximize",
		Description: "Maximize a window to fill the desktop, or restore its previous geometry.",
	}, s.windowTool("toggle_maximize", s.desktop.ToggleMaximize))
}
