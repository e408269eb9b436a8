//go:build linux

package platform

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// X11Viewport reports the size of the X11 root window.
type X11Viewport struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var _ ViewportSource = (*X11Viewport)(nil)

// NewX11Viewport opens a connection to the X server named by $DISPLAY.
func NewX11Viewport() (*X11Viewport, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &X11Viewport{xu: xu, root: xu.RootWin()}, nil
}

// Viewport implements ViewportSource.
func (v *X11Viewport) Viewport() (Size, error) {
	if v == nil || v.xu == nil {
		return Size{}, fmt.Errorf("x11 connection not available")
	}
	reply, err := xproto.GetGeometry(v.xu.Conn(), xproto.Drawable(v.root)).Reply()
	if err != nil {
		return Size{}, fmt.Errorf("failed to query root geometry: %w", err)
	}
	return Size{Width: int(reply.Width), Height: int(reply.Height)}, nil
}

// Close disconnects from the X server.
func (v *X11Viewport) Close() {
	if v != nil && v.xu != nil {
		v.xu.Conn().Close()
	}
}
