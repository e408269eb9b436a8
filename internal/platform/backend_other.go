//go:build !linux

package platform

import "fmt"

// X11Viewport is only available on Linux.
type X11Viewport struct{}

// NewX11Viewport always fails on this platform.
func NewX11Viewport() (*X11Viewport, error) {
	return nil, fmt.Errorf("x11 viewport is only supported on linux")
}

// Viewport implements ViewportSource.
func (v *X11Viewport) Viewport() (Size, error) {
	return Size{}, fmt.Errorf("x11 viewport is only supported on linux")
}

// Close is a no-op.
func (v *X11Viewport) Close() {}
