package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/aperture/internal/wm"
)

func (s *Server) handleListApps(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListAppsInput) (*mcpsdk.CallToolResult, ListAppsOutput, error) {
	items, err := s.desktop.ListApps()
	if err != nil {
		return nil, ListAppsOutput{}, fmt.Errorf("list apps: %w", err)
	}
	return nil, ListAppsOutput{Apps: items}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.desktop.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("list windows: %w", err)
	}

	windows := data.Windows
	if args.VisibleOnly {
		windows = make([]wm.WindowInstance, 0, len(data.Windows))
		for _, w := range data.Windows {
			if !w.IsMinimized {
				windows = append(windows, w)
			}
		}
	}
	if windows == nil {
		windows = []wm.WindowInstance{}
	}
	return nil, ListWindowsOutput{Windows: windows, ActiveID: data.ActiveID}, nil
}

func (s *Server) handleOpenApp(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenAppInput) (*mcpsdk.CallToolResult, OpenAppOutput, error) {
	appID := strings.TrimSpace(args.AppID)
	if appID == "" {
		return nil, OpenAppOutput{}, fmt.Errorf("app_id is required")
	}
	id, err := s.desktop.OpenApp(appID)
	if err != nil {
		s.logger.Warn("open_app failed", "app_id", appID, "error", err)
		return nil, OpenAppOutput{}, fmt.Errorf("open %s: %w", appID, err)
	}
	s.logger.Info("open_app", "app_id", appID, "window_id", id)
	return nil, OpenAppOutput{WindowID: id, AppID: appID}, nil
}

type windowHandler func(context.Context, *mcpsdk.CallToolRequest, WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error)

// windowTool builds the handler for a tool that acts on a single window id.
func (s *Server) windowTool(action string, op func(id string) error) windowHandler {
	return func(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
		id := strings.TrimSpace(args.WindowID)
		if id == "" {
			return nil, WindowOutput{}, fmt.Errorf("window_id is required")
		}
		if err := op(id); err != nil {
			s.logger.Warn("window tool failed", "action", action, "window_id", id, "error", err)
			return nil, WindowOutput{}, fmt.Errorf("%s %s: %w", action, id, err)
		}
		s.logger.Info("window tool", "action", action, "window_id", id)
		return nil, WindowOutput{WindowID: id, Action: action}, nil
	}
}
