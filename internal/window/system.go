package window

// System is the set of windowing queries the discovery engine needs.
// Implementations must treat a stale or zero handle as "not found"
// rather than failing hard: return zero values or an error.
type System interface {
	// Name returns the backend name (e.g., "win32", "x11")
	Name() string

	// DesktopWindow returns the root of the window graph.
	DesktopWindow() Handle

	// FindChild returns the child of parent that follows after in find
	// order, or the first child when after is zero. For the desktop the
	// search is restricted to unparented top-level windows. A zero handle
	// with a nil error means there are no more children.
	FindChild(parent, after Handle) (Handle, error)

	// FirstChild returns the first child of h in sibling order.
	FirstChild(h Handle) (Handle, error)

	// NextSibling returns the sibling following h.
	NextSibling(h Handle) (Handle, error)

	IsVisible(h Handle) bool
	IsMinimized(h Handle) bool

	// Cloaked returns the raw cloaking attribute; non-zero means cloaked.
	Cloaked(h Handle) (uint32, error)

	// Styles returns the basic and extended style bits.
	Styles(h Handle) (style, exStyle uint32, err error)

	ClientRect(h Handle) (Rect, error)
	ProcessInfo(h Handle) (ProcessInfo, error)
	ClassName(h Handle) (string, error)

	// Title returns the window's display title. An empty title is an error.
	Title(h Handle) (string, error)

	// ConsoleWindow returns the calling process's own console window, or zero.
	ConsoleWindow() Handle

	// Close releases any connection held by the backend.
	Close() error
}
