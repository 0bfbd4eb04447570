//go:build windows

package window

import (
	"fmt"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procFindWindowExW        = user32.NewProc("FindWindowExW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetConsoleWindow     = kernel32.NewProc("GetConsoleWindow")
)

// Win32System implements System with user32 and DWM calls.
type Win32System struct{}

var _ System = (*Win32System)(nil)

// NewSystem returns the window system for this platform.
func NewSystem() (System, error) {
	if err := procFindWindowExW.Find(); err != nil {
		return nil, fmt.Errorf("failed to load user32: %w", err)
	}
	return &Win32System{}, nil
}

func (s *Win32System) Name() string {
	return "win32"
}

func (s *Win32System) Close() error {
	return nil
}

func (s *Win32System) DesktopWindow() Handle {
	return Handle(win.GetDesktopWindow())
}

// FindChild wraps FindWindowExW with no class or title filter.
func (s *Win32System) FindChild(parent, after Handle) (Handle, error) {
	if err := procFindWindowExW.Find(); err != nil {
		return 0, ErrUnsupported
	}
	r, _, _ := procFindWindowExW.Call(uintptr(parent), uintptr(after), 0, 0)
	return Handle(r), nil
}

func (s *Win32System) FirstChild(h Handle) (Handle, error) {
	return s.getWindow(h, win.GW_CHILD)
}

func (s *Win32System) NextSibling(h Handle) (Handle, error) {
	return s.getWindow(h, win.GW_HWNDNEXT)
}

func (s *Win32System) getWindow(h Handle, cmd uint32) (Handle, error) {
	if h.IsZero() {
		return 0, fmt.Errorf("GetWindow: %w", windows.ERROR_INVALID_WINDOW_HANDLE)
	}
	return Handle(win.GetWindow(win.HWND(h), cmd)), nil
}

func (s *Win32System) IsVisible(h Handle) bool {
	return win.IsWindowVisible(win.HWND(h))
}

func (s *Win32System) IsMinimized(h Handle) bool {
	return win.IsIconic(win.HWND(h))
}

// Cloaked reads DWMWA_CLOAKED into a zeroed DWORD, so a call that does
// not complete leaves the window reported as not cloaked.
func (s *Win32System) Cloaked(h Handle) (uint32, error) {
	var cloaked uint32
	err := windows.DwmGetWindowAttribute(
		windows.HWND(h),
		windows.DWMWA_CLOAKED,
		unsafe.Pointer(&cloaked),
		uint32(unsafe.Sizeof(cloaked)),
	)
	if err != nil {
		return 0, err
	}
	return cloaked, nil
}

func (s *Win32System) Styles(h Handle) (uint32, uint32, error) {
	if !win.IsWindow(win.HWND(h)) {
		return 0, 0, windows.ERROR_INVALID_WINDOW_HANDLE
	}
	style := uint32(win.GetWindowLongPtr(win.HWND(h), win.GWL_STYLE))
	exStyle := uint32(win.GetWindowLongPtr(win.HWND(h), win.GWL_EXSTYLE))
	return style, exStyle, nil
}

func (s *Win32System) ClientRect(h Handle) (Rect, error) {
	var rc win.RECT
	if !win.GetClientRect(win.HWND(h), &rc) {
		return Rect{}, fmt.Errorf("GetClientRect failed: %d", win.GetLastError())
	}
	return Rect{Left: rc.Left, Top: rc.Top, Right: rc.Right, Bottom: rc.Bottom}, nil
}

func (s *Win32System) ProcessInfo(h Handle) (ProcessInfo, error) {
	var pid uint32
	tid := win.GetWindowThreadProcessId(win.HWND(h), &pid)
	if tid == 0 {
		return ProcessInfo{}, fmt.Errorf("GetWindowThreadProcessId failed: %d", win.GetLastError())
	}
	return ProcessInfo{ProcessID: pid, ThreadID: tid}, nil
}

func (s *Win32System) ClassName(h Handle) (string, error) {
	buf := make([]uint16, windows.MAX_PATH+1)
	n, err := win.GetClassName(win.HWND(h), &buf[0], len(buf))
	if n == 0 {
		return "", fmt.Errorf("GetClassName failed: %w", err)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func (s *Win32System) Title(h Handle) (string, error) {
	n, _, err := procGetWindowTextLengthW.Call(uintptr(h))
	if n == 0 {
		return "", fmt.Errorf("GetWindowTextLength: %w", err)
	}

	buf := make([]uint16, n+1)
	copied, _, err := procGetWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if copied == 0 {
		return "", fmt.Errorf("GetWindowText: %w", err)
	}
	return windows.UTF16ToString(buf[:copied]), nil
}

func (s *Win32System) ConsoleWindow() Handle {
	r, _, _ := procGetConsoleWindow.Call()
	return Handle(r)
}
