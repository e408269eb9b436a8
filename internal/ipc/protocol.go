package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/aperture/internal/dock"
	"github.com/1broseidon/aperture/internal/platform"
	"github.com/1broseidon/aperture/internal/wm"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload         CommandType = "RELOAD"
	CommandGetStatus      CommandType = "GET_STATUS"
	CommandListApps       CommandType = "LIST_APPS"
	CommandListWindows    CommandType = "LIST_WINDOWS"
	CommandOpenApp        CommandType = "OPEN_APP"
	CommandFocusWindow    CommandType = "FOCUS_WINDOW"
	CommandCloseWindow    CommandType = "CLOSE_WINDOW"
	CommandMinimizeWindow CommandType = "MINIMIZE_WINDOW"
	CommandToggleMaximize CommandType = "TOGGLE_MAXIMIZE"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	WindowCount   int           `json:"window_count"`
	VisibleCount  int           `json:"visible_count"`
	ActiveWindow  string        `json:"active_window,omitempty"`
	Viewport      platform.Size `json:"viewport"`
	GridSnapping  bool          `json:"grid_snapping"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	DaemonRunning bool          `json:"daemon_running"`
}

// AppsData represents the data returned by LIST_APPS
type AppsData struct {
	Apps []dock.Indicator `json:"apps"`
}

// WindowsData represents the data returned by LIST_WINDOWS. Windows are
// ordered by z-index, bottom first.
type WindowsData struct {
	Windows  []wm.WindowInstance `json:"windows"`
	ActiveID string              `json:"active_id,omitempty"`
}

// OpenAppPayload represents the payload for OPEN_APP
type OpenAppPayload struct {
	AppID string `json:"app_id"`
}

// OpenAppData is returned by OPEN_APP
type OpenAppData struct {
	WindowID string `json:"window_id"`
}

// WindowPayload is the payload for the per-window commands.
type WindowPayload struct {
	WindowID string `json:"window_id"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
