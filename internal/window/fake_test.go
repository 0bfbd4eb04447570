package window

import (
	"errors"
	"fmt"
)

var errStale = errors.New("invalid window handle")

// fakeWindow is one node of a scripted desktop.
type fakeWindow struct {
	visible   bool
	minimized bool
	cloaked   uint32
	cloakErr  bool
	style     uint32
	exStyle   uint32
	rect      Rect
	pid       uint32
	class     string
	title     string
	children  []Handle
	// closed windows fail every query, like a handle that went stale.
	closed bool
}

// fakeSystem is an in-memory System over a fixed window graph. The flat
// desktop in windowtest covers consumers of this package; that package's
// tests run the same eligibility scenario through AllWindows.
type fakeSystem struct {
	desktop Handle
	// siblings is the sibling chain under the desktop (get-window order).
	siblings []Handle
	// findOrder overrides the desktop's find-window order when non-nil.
	findOrder []Handle
	windows   map[Handle]*fakeWindow
	console   Handle

	findUnsupported bool
	// loopAfter makes NextSibling of that handle return the first sibling.
	loopAfter Handle
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		desktop: 1,
		windows: make(map[Handle]*fakeWindow),
	}
}

// normal returns an eligible top-level window description.
func normal(title string, pid uint32) *fakeWindow {
	return &fakeWindow{
		visible: true,
		rect:    Rect{Right: 800, Bottom: 600},
		pid:     pid,
		class:   "AppWindow",
		title:   title,
	}
}

// add places w at the end of the desktop's top-level list.
func (f *fakeSystem) add(h Handle, w *fakeWindow) *fakeSystem {
	f.windows[h] = w
	f.siblings = append(f.siblings, h)
	return f
}

// addChild registers w as a child of parent without making it top-level.
func (f *fakeSystem) addChild(parent, h Handle, w *fakeWindow) *fakeSystem {
	f.windows[h] = w
	p := f.windows[parent]
	p.children = append(p.children, h)
	return f
}

func (f *fakeSystem) live(h Handle) (*fakeWindow, error) {
	w, ok := f.windows[h]
	if !ok || w.closed {
		return nil, errStale
	}
	return w, nil
}

func after(list []Handle, h Handle) Handle {
	if h == 0 {
		if len(list) == 0 {
			return 0
		}
		return list[0]
	}
	for i, cur := range list {
		if cur == h {
			if i+1 < len(list) {
				return list[i+1]
			}
			return 0
		}
	}
	return 0
}

func (f *fakeSystem) Name() string          { return "fake" }
func (f *fakeSystem) DesktopWindow() Handle { return f.desktop }
func (f *fakeSystem) ConsoleWindow() Handle { return f.console }
func (f *fakeSystem) Close() error          { return nil }

func (f *fakeSystem) FindChild(parent, afterHandle Handle) (Handle, error) {
	if parent == f.desktop {
		if f.findUnsupported {
			return 0, ErrUnsupported
		}
		order := f.siblings
		if f.findOrder != nil {
			order = f.findOrder
		}
		return after(order, afterHandle), nil
	}
	w, err := f.live(parent)
	if err != nil {
		return 0, err
	}
	return after(w.children, afterHandle), nil
}

func (f *fakeSystem) FirstChild(h Handle) (Handle, error) {
	if h == f.desktop {
		return after(f.siblings, 0), nil
	}
	w, err := f.live(h)
	if err != nil {
		return 0, err
	}
	return after(w.children, 0), nil
}

func (f *fakeSystem) NextSibling(h Handle) (Handle, error) {
	if h == 0 {
		return 0, errStale
	}
	if h == f.loopAfter {
		return after(f.siblings, 0), nil
	}
	return after(f.siblings, h), nil
}

func (f *fakeSystem) IsVisible(h Handle) bool {
	w, err := f.live(h)
	return err == nil && w.visible
}

func (f *fakeSystem) IsMinimized(h Handle) bool {
	w, err := f.live(h)
	return err == nil && w.minimized
}

func (f *fakeSystem) Cloaked(h Handle) (uint32, error) {
	w, err := f.live(h)
	if err != nil {
		return 0, err
	}
	if w.cloakErr {
		return 0, fmt.Errorf("dwm attribute query failed")
	}
	return w.cloaked, nil
}

func (f *fakeSystem) Styles(h Handle) (uint32, uint32, error) {
	w, err := f.live(h)
	if err != nil {
		return 0, 0, err
	}
	return w.style, w.exStyle, nil
}

func (f *fakeSystem) ClientRect(h Handle) (Rect, error) {
	w, err := f.live(h)
	if err != nil {
		return Rect{}, err
	}
	return w.rect, nil
}

func (f *fakeSystem) ProcessInfo(h Handle) (ProcessInfo, error) {
	w, err := f.live(h)
	if err != nil {
		return ProcessInfo{}, err
	}
	return ProcessInfo{ProcessID: w.pid, ThreadID: w.pid + 1}, nil
}

func (f *fakeSystem) ClassName(h Handle) (string, error) {
	w, err := f.live(h)
	if err != nil {
		return "", err
	}
	return w.class, nil
}

func (f *fakeSystem) Title(h Handle) (string, error) {
	w, err := f.live(h)
	if err != nil {
		return "", err
	}
	if w.title == "" {
		return "", errors.New("window has no title")
	}
	return w.title, nil
}

// titles returns the titles of infos in order.
func titles(infos []WindowInfo) []string {
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		out = append(out, info.Title)
	}
	return out
}
