package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/aperture/internal/config"
	"github.com/1broseidon/aperture/internal/dock"
	"github.com/1broseidon/aperture/internal/runtimepath"
	"github.com/1broseidon/aperture/internal/wm"
)

// Executor runs fn in line with the desktop's own input handling and
// returns once fn has run. A nil Executor runs fn on the calling goroutine.
type Executor func(fn func())

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	registry     *wm.Registry
	dock         *dock.Dock
	settings     *config.Store
	exec         Executor
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server on the default socket path. Commands
// that change desktop state run through exec.
func NewServer(registry *wm.Registry, d *dock.Dock, settings *config.Store, exec Executor) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, registry, d, settings, exec), nil
}

// NewServerAt creates a server bound to an explicit socket path.
func NewServerAt(socketPath string, registry *wm.Registry, d *dock.Dock, settings *config.Store, exec Executor) *Server {
	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		registry:   registry,
		dock:       d,
		settings:   settings,
		exec:       exec,
		startTime:  time.Now(),
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// One JSON request per line.
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandListApps:
		return s.handleListApps()
	case CommandListWindows:
		return s.handleListWindows()
	case CommandOpenApp:
		return s.handleOpenApp(req.Payload)
	case CommandFocusWindow:
		return s.handleWindowOp(req.Payload, "focus", s.registry.FocusWindow)
	case CommandCloseWindow:
		return s.handleWindowOp(req.Payload, "close", s.registry.CloseWindow)
	case CommandMinimizeWindow:
		return s.handleWindowOp(req.Payload, "minimize", s.registry.Minimize)
	case CommandToggleMaximize:
		return s.handleWindowOp(req.Payload, "maximize", s.registry.ToggleMaximize)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	var err error
	s.apply(func() { err = s.settings.Reload() })
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		WindowCount:   s.registry.Len(),
		VisibleCount:  len(s.registry.RenderList()),
		Viewport:      s.registry.Viewport(),
		GridSnapping:  s.settings.GridSnapping(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	}
	if w, ok := s.registry.Active(); ok {
		status.ActiveWindow = w.ID
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleListApps() *Response {
	resp, _ := NewOKResponse(AppsData{Apps: s.dock.Items()})
	return resp
}

func (s *Server) handleListWindows() *Response {
	data := WindowsData{Windows: s.registry.Snapshot()}
	if w, ok := s.registry.Active(); ok {
		data.ActiveID = w.ID
	}
	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleOpenApp(payload json.RawMessage) *Response {
	var req OpenAppPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid open payload: %v", err))
	}
	if req.AppID == "" {
		return NewErrorResponse("app_id is required")
	}

	var (
		id  string
		err error
	)
	s.apply(func() { id, err = s.dock.Launch(req.AppID) })
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	log.Printf("IPC: Opened %s as %s", req.AppID, id)

	resp, _ := NewOKResponse(OpenAppData{WindowID: id})
	return resp
}

// handleWindowOp resolves the window id before applying op. The registry
// itself ignores unknown ids; over IPC the caller gets an error instead.
// Lookup and op run as one step so a pointer event cannot close the window
// in between.
func (s *Server) handleWindowOp(payload json.RawMessage, verb string, op func(id string)) *Response {
	var req WindowPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid %s payload: %v", verb, err))
	}
	if req.WindowID == "" {
		return NewErrorResponse("window_id is required")
	}
	found := false
	s.apply(func() {
		if _, found = s.registry.Window(req.WindowID); found {
			op(req.WindowID)
		}
	})
	if !found {
		return NewErrorResponse(fmt.Errorf("%s %s: %w", verb, req.WindowID, wm.ErrWindowNotFound).Error())
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) apply(fn func()) {
	if s.exec == nil {
		fn()
		return
	}
	s.exec(fn)
}

func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
