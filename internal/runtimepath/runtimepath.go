// Package runtimepath locates the per-user runtime files of a running
// desktop: the IPC socket and the log.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvDir overrides the runtime directory. It is created if missing.
const EnvDir = "APERTURE_RUNTIME_DIR"

const (
	socketName = "aperture.sock"
	logName    = "aperture.log"

	// maxSocketPath is the usable length of sockaddr_un.sun_path on Linux.
	maxSocketPath = 107
)

// Dir returns the runtime directory, picking the first of:
// $APERTURE_RUNTIME_DIR (created), $XDG_RUNTIME_DIR, /run/user/<uid>,
// /tmp/aperture-runtime-<uid> (created).
func Dir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return ensureDir(dir)
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := os.Getuid()
	runUserDir := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUserDir); err == nil && info.IsDir() {
		return runUserDir, nil
	}
	return ensureDir(fmt.Sprintf("/tmp/aperture-runtime-%d", uid))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("failed to stat runtime dir: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("runtime dir %s is not a directory", dir)
	}
	return dir, nil
}

// SocketPath returns the desktop IPC socket path. Paths too long to bind
// are rejected here rather than at listen time.
func SocketPath() (string, error) {
	path, err := file(socketName)
	if err != nil {
		return "", err
	}
	if len(path) > maxSocketPath {
		return "", fmt.Errorf("socket path %s is longer than %d bytes; set %s to a shorter directory", path, maxSocketPath, EnvDir)
	}
	return path, nil
}

// LogPath returns the desktop log file. The terminal belongs to the UI while
// the desktop runs, so log output goes here.
func LogPath() (string, error) {
	return file(logName)
}

func file(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
