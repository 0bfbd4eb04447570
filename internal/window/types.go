package window

import (
	"errors"
	"fmt"
	"strings"
)

// Handle is an opaque OS-assigned window handle. The zero value means "no window".
// Handles are borrowed: the window behind one may close at any time.
type Handle uintptr

// IsZero reports whether h refers to no window.
func (h Handle) IsZero() bool {
	return h == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("0x%x", uintptr(h))
}

// SearchMode selects whether minimized windows are capture candidates.
type SearchMode int

const (
	ExcludeMinimized SearchMode = iota
	IncludeMinimized
)

func (m SearchMode) String() string {
	switch m {
	case ExcludeMinimized:
		return "exclude-minimized"
	case IncludeMinimized:
		return "include-minimized"
	default:
		return fmt.Sprintf("SearchMode(%d)", int(m))
	}
}

// ParseSearchMode accepts the String form of a mode. The empty string
// selects ExcludeMinimized.
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exclude-minimized", "exclude":
		return ExcludeMinimized, nil
	case "include-minimized", "include":
		return IncludeMinimized, nil
	default:
		return ExcludeMinimized, fmt.Errorf("invalid search mode %q (use exclude-minimized or include-minimized)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m SearchMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SearchMode) UnmarshalText(text []byte) error {
	parsed, err := ParseSearchMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Strategy selects the OS primitive used to step between top-level windows.
type Strategy int

const (
	// StrategyFindWindowEx asks the desktop for its next top-level child.
	StrategyFindWindowEx Strategy = iota
	// StrategyGetWindow follows the sibling chain from the desktop's first child.
	StrategyGetWindow
)

func (s Strategy) String() string {
	if s == StrategyGetWindow {
		return "get-window"
	}
	return "find-window-ex"
}

// Phase is the position of a traversal pass.
type Phase int

const (
	PhaseAtStart Phase = iota
	PhaseTraversing
	PhaseDone
)

// TraversalState is the cursor threaded through one enumeration pass.
// It must not be shared between passes.
type TraversalState struct {
	// Current is the last window returned to the caller.
	Current Handle
	// PendingParent holds a shell host whose content child is Current.
	// The next step resumes from it and clears it.
	PendingParent Handle
	// Strategy is decided by the first step and fixed afterwards.
	Strategy Strategy

	phase   Phase
	visited map[Handle]struct{}
}

// Phase returns where the pass currently is.
func (s *TraversalState) Phase() Phase {
	return s.phase
}

// Done reports whether the pass has run out of windows.
func (s *TraversalState) Done() bool {
	return s.phase == PhaseDone
}

// WindowInfo is one accepted capture candidate.
type WindowInfo struct {
	Title  string `json:"title" yaml:"title"`
	Handle Handle `json:"handle" yaml:"handle"`
}

// ProcessInfo identifies the process and thread that own a window.
type ProcessInfo struct {
	ProcessID uint32
	ThreadID  uint32
}

// Rect is a window client rectangle.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int32 {
	return r.Right - r.Left
}

// Height returns the vertical extent of r.
func (r Rect) Height() int32 {
	return r.Bottom - r.Top
}

// Style bits reported by System.Styles. Values match the Win32 definitions.
const (
	StyleChild        uint32 = 0x40000000
	ExStyleToolWindow uint32 = 0x00000080
)

// ShellHostClass is the window class of hosts whose content lives in a
// child window owned by another process.
const ShellHostClass = "ApplicationFrameWindow"

var (
	// ErrNotFound is returned when no eligible window exists at all.
	ErrNotFound = errors.New("no eligible window found")

	// ErrUnsupported is returned by a System when a traversal primitive is unavailable.
	ErrUnsupported = errors.New("traversal primitive unsupported")
)
