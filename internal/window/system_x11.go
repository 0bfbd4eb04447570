//go:build linux

package window

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/bryanchriswhite/WindowScout/internal/logger"
)

// stickyDesktop is the _NET_WM_DESKTOP value for windows shown on all desktops.
const stickyDesktop = 0xFFFFFFFF

// toolWindowTypes are window types that are never capture targets.
var toolWindowTypes = map[string]bool{
	"_NET_WM_WINDOW_TYPE_UTILITY":      true,
	"_NET_WM_WINDOW_TYPE_TOOLBAR":      true,
	"_NET_WM_WINDOW_TYPE_DOCK":         true,
	"_NET_WM_WINDOW_TYPE_MENU":         true,
	"_NET_WM_WINDOW_TYPE_SPLASH":       true,
	"_NET_WM_WINDOW_TYPE_DESKTOP":      true,
	"_NET_WM_WINDOW_TYPE_NOTIFICATION": true,
}

// X11System implements System on an X11 display. The desktop window is
// the root; find order is the EWMH client list and sibling order is the
// root's QueryTree stacking order.
type X11System struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var _ System = (*X11System)(nil)

// NewSystem returns the window system for this platform.
func NewSystem() (System, error) {
	return NewX11System()
}

// NewX11System connects to the display named by $DISPLAY.
func NewX11System() (*X11System, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	return &X11System{xu: xu, root: xu.RootWin()}, nil
}

func (s *X11System) Name() string {
	return "x11"
}

// Close closes the X11 connection
func (s *X11System) Close() error {
	s.xu.Conn().Close()
	return nil
}

func (s *X11System) DesktopWindow() Handle {
	return Handle(s.root)
}

func (s *X11System) FindChild(parent, after Handle) (Handle, error) {
	var list []xproto.Window
	if xproto.Window(parent) == s.root {
		clients, err := ewmh.ClientListGet(s.xu)
		if err != nil || len(clients) == 0 {
			logger.WithComponent("x11-system").Debug().Err(err).
				Msg("_NET_CLIENT_LIST unavailable")
			return 0, ErrUnsupported
		}
		list = clients
	} else {
		tree, err := xproto.QueryTree(s.xu.Conn(), xproto.Window(parent)).Reply()
		if err != nil {
			return 0, err
		}
		list = tree.Children
	}
	return windowAfter(list, xproto.Window(after)), nil
}

func (s *X11System) FirstChild(h Handle) (Handle, error) {
	tree, err := xproto.QueryTree(s.xu.Conn(), xproto.Window(h)).Reply()
	if err != nil {
		return 0, err
	}
	return windowAfter(tree.Children, 0), nil
}

func (s *X11System) NextSibling(h Handle) (Handle, error) {
	if h.IsZero() {
		return 0, fmt.Errorf("no window to step from")
	}
	self, err := xproto.QueryTree(s.xu.Conn(), xproto.Window(h)).Reply()
	if err != nil {
		return 0, err
	}
	tree, err := xproto.QueryTree(s.xu.Conn(), self.Parent).Reply()
	if err != nil {
		return 0, err
	}
	return windowAfter(tree.Children, xproto.Window(h)), nil
}

// windowAfter returns the entry following after in list, or the first
// entry when after is zero.
func windowAfter(list []xproto.Window, after xproto.Window) Handle {
	if after == 0 {
		if len(list) == 0 {
			return 0
		}
		return Handle(list[0])
	}
	for i, w := range list {
		if w == after {
			if i+1 < len(list) {
				return Handle(list[i+1])
			}
			return 0
		}
	}
	return 0
}

func (s *X11System) attributes(h Handle) (*xproto.GetWindowAttributesReply, error) {
	return xproto.GetWindowAttributes(s.xu.Conn(), xproto.Window(h)).Reply()
}

// IsVisible reports mapped windows, plus managed clients the window
// manager unmapped because they are iconified or on another desktop.
func (s *X11System) IsVisible(h Handle) bool {
	attrs, err := s.attributes(h)
	if err != nil {
		return false
	}
	if attrs.MapState == xproto.MapStateViewable {
		return true
	}

	win := xproto.Window(h)
	wmState, err := icccm.WmStateGet(s.xu, win)
	managed := err == nil
	iconic := managed && wmState.State == icccm.StateIconic
	states, _ := ewmh.WmStateGet(s.xu, win)
	cloaked, _ := s.Cloaked(h)
	return clientVisible(attrs.MapState, managed, iconic, hasHiddenState(states), cloaked != 0)
}

// clientVisible decides visibility from map state and window manager
// hints. Unmanaged windows are visible only when viewable.
func clientVisible(mapState byte, managed, iconic, hidden, offDesktop bool) bool {
	if mapState == xproto.MapStateViewable {
		return true
	}
	if !managed {
		return false
	}
	return iconic || hidden || offDesktop
}

func hasHiddenState(states []string) bool {
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

func (s *X11System) IsMinimized(h Handle) bool {
	states, err := ewmh.WmStateGet(s.xu, xproto.Window(h))
	if err != nil {
		return false
	}
	return hasHiddenState(states)
}

// Cloaked reports windows parked on another virtual desktop.
func (s *X11System) Cloaked(h Handle) (uint32, error) {
	desktop, err := ewmh.WmDesktopGet(s.xu, xproto.Window(h))
	if err != nil {
		return 0, err
	}
	current, err := ewmh.CurrentDesktopGet(s.xu)
	if err != nil {
		return 0, err
	}
	if offDesktop(desktop, current) {
		return 1, nil
	}
	return 0, nil
}

func offDesktop(desktop, current uint) bool {
	return desktop != stickyDesktop && desktop != current
}

// Styles synthesizes Win32-style bits: override-redirect windows are
// reported as children and utility-like window types as tool windows.
func (s *X11System) Styles(h Handle) (uint32, uint32, error) {
	attrs, err := s.attributes(h)
	if err != nil {
		return 0, 0, err
	}

	var style, exStyle uint32
	if attrs.OverrideRedirect {
		style |= StyleChild
	}
	if types, err := ewmh.WmWindowTypeGet(s.xu, xproto.Window(h)); err == nil {
		for _, t := range types {
			if toolWindowTypes[t] {
				exStyle |= ExStyleToolWindow
				break
			}
		}
	}
	return style, exStyle, nil
}

func (s *X11System) ClientRect(h Handle) (Rect, error) {
	geom, err := xproto.GetGeometry(s.xu.Conn(), xproto.Drawable(h)).Reply()
	if err != nil {
		return Rect{}, err
	}
	return Rect{Right: int32(geom.Width), Bottom: int32(geom.Height)}, nil
}

func (s *X11System) ProcessInfo(h Handle) (ProcessInfo, error) {
	pid, err := ewmh.WmPidGet(s.xu, xproto.Window(h))
	if err != nil {
		return ProcessInfo{}, err
	}
	return ProcessInfo{ProcessID: uint32(pid)}, nil
}

func (s *X11System) ClassName(h Handle) (string, error) {
	class, err := icccm.WmClassGet(s.xu, xproto.Window(h))
	if err != nil {
		return "", err
	}
	return class.Class, nil
}

func (s *X11System) Title(h Handle) (string, error) {
	title, err := ewmh.WmNameGet(s.xu, xproto.Window(h))
	if err == nil && title != "" {
		return title, nil
	}
	title, err = icccm.WmNameGet(s.xu, xproto.Window(h))
	if err != nil {
		return "", err
	}
	if title == "" {
		return "", fmt.Errorf("window %v has no title", h)
	}
	return title, nil
}

// ConsoleWindow returns the terminal window advertised in $WINDOWID.
func (s *X11System) ConsoleWindow() Handle {
	return parseWindowID(os.Getenv("WINDOWID"))
}

func parseWindowID(v string) Handle {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	id, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0
	}
	return Handle(id)
}
