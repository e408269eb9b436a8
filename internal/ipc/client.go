package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/aperture/internal/dock"
	"github.com/1broseidon/aperture/internal/runtimepath"
)

// Client handles IPC communication with the desktop daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client on the default socket path
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for an explicit socket path.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to desktop: %w (is `aperture desktop` running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("desktop error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) call(cmd CommandType, payload interface{}, out interface{}) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// Reload asks the desktop to re-read its config file
func (c *Client) Reload() error {
	return c.call(CommandReload, nil, nil)
}

// GetStatus retrieves desktop status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListApps retrieves the catalog with running indicators.
func (c *Client) ListApps() ([]dock.Indicator, error) {
	var data AppsData
	if err := c.call(CommandListApps, nil, &data); err != nil {
		return nil, err
	}
	return data.Apps, nil
}

// ListWindows retrieves every open window, bottom of the stack first.
func (c *Client) ListWindows() (*WindowsData, error) {
	var data WindowsData
	if err := c.call(CommandListWindows, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// OpenApp opens or restores an app and returns its window id.
func (c *Client) OpenApp(appID string) (string, error) {
	var data OpenAppData
	if err := c.call(CommandOpenApp, OpenAppPayload{AppID: appID}, &data); err != nil {
		return "", err
	}
	return data.WindowID, nil
}

// FocusWindow raises a window.
func (c *Client) FocusWindow(id string) error {
	return c.call(CommandFocusWindow, WindowPayload{WindowID: id}, nil)
}

// CloseWindow closes a window.
func (c *Client) CloseWindow(id string) error {
	return c.call(CommandCloseWindow, WindowPayload{WindowID: id}, nil)
}

// MinimizeWindow hides a window from the desktop.
func (c *Client) MinimizeWindow(id string) error {
	return c.call(CommandMinimizeWindow, WindowPayload{WindowID: id}, nil)
}

// ToggleMaximize maximizes or restores a window.
func (c *Client) ToggleMaximize(id string) error {
	return c.call(CommandToggleMaximize, WindowPayload{WindowID: id}, nil)
}

// Ping checks if the desktop is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
