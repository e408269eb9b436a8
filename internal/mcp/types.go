package mcp

import (
	"github.com/1broseidon/aperture/internal/dock"
	"github.com/1broseidon/aperture/internal/wm"
)

// ListAppsInput is the input for the list_apps tool.
type ListAppsInput struct{}

// ListAppsOutput is the output for the list_apps tool.
type ListAppsOutput struct {
	Apps []dock.Indicator `json:"apps"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	VisibleOnly bool `json:"visible_only,omitempty" jsonschema:"When true, omit minimized windows"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows  []wm.WindowInstance `json:"windows"`
	ActiveID string              `json:"active_id,omitempty"`
}

// OpenAppInput is the input for the open_app tool.
type OpenAppInput struct {
	AppID string `json:"app_id" jsonschema:"required,App id from list_apps (e.g. terminal, help)"`
}

// OpenAppOutput is the output for the open_app tool.
type OpenAppOutput struct {
	WindowID string `json:"window_id"`
	AppID    string `json:"app_id"`
}

// WindowInput is the input shared by the per-window tools.
type WindowInput struct {
	WindowID string `json:"window_id" jsonschema:"required,Window id from list_windows"`
}

// WindowOutput is the output shared by the per-window tools.
type WindowOutput struct {
	WindowID string `json:"window_id"`
	Action   string `json:"action"`
}
