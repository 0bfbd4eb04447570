package window

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/bryanchriswhite/WindowScout/internal/logger"
	"github.com/shirou/gopsutil/v4/process"
)

// ErrNoMatch is returned by FindByTitle when no candidate title matches.
var ErrNoMatch = errors.New("no window title matches")

// Details is a WindowInfo with best-effort ownership data for display.
type Details struct {
	WindowInfo `yaml:",inline"`
	Class      string `json:"class,omitempty" yaml:"class,omitempty"`
	PID        uint32 `json:"pid,omitempty" yaml:"pid,omitempty"`
	Process    string `json:"process,omitempty" yaml:"process,omitempty"`
}

// Manager runs enumeration passes over a System and keeps the latest
// snapshot for subscribers.
type Manager struct {
	sys       System
	mu        sync.RWMutex
	mode      SearchMode
	current   []WindowInfo
	listeners []chan []WindowInfo

	procName func(pid uint32) string
}

// NewManager creates a new window manager
func NewManager(sys System, mode SearchMode) *Manager {
	return &Manager{
		sys:       sys,
		mode:      mode,
		listeners: make([]chan []WindowInfo, 0),
		procName:  processName,
	}
}

// System returns the backend the manager enumerates.
func (m *Manager) System() System {
	return m.sys
}

// Mode returns the search mode used by polling.
func (m *Manager) Mode() SearchMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// SetMode changes the search mode used by subsequent polls.
func (m *Manager) SetMode(mode SearchMode) {
	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()
}

// Snapshot runs one full enumeration pass with mode.
func (m *Manager) Snapshot(mode SearchMode) []WindowInfo {
	return AllWindows(m.sys, mode)
}

// Current returns the snapshot taken by the last poll.
func (m *Manager) Current() []WindowInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]WindowInfo, len(m.current))
	copy(out, m.current)
	return out
}

// Refresh takes a snapshot with the manager's mode, stores it and
// notifies subscribers if it differs from the previous one.
func (m *Manager) Refresh() []WindowInfo {
	windows := m.Snapshot(m.Mode())

	m.mu.Lock()
	changed := !reflect.DeepEqual(m.current, windows)
	m.current = windows
	m.mu.Unlock()

	if changed {
		logger.WithComponent("window-manager").Debug().
			Int("count", len(windows)).
			Msg("window list changed")
		m.notifyListeners(windows)
	}
	return windows
}

// Start polls every interval until ctx is cancelled.
func (m *Manager) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid poll interval %v", interval)
	}

	m.Refresh()
	go m.poll(ctx, interval)
	return nil
}

func (m *Manager) poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Refresh()
		}
	}
}

// FindByTitle returns the first candidate whose title contains substr,
// compared case-insensitively.
func (m *Manager) FindByTitle(mode SearchMode, substr string) (WindowInfo, error) {
	needle := strings.ToLower(substr)
	for _, w := range m.Snapshot(mode) {
		if strings.Contains(strings.ToLower(w.Title), needle) {
			return w, nil
		}
	}
	return WindowInfo{}, fmt.Errorf("%w: %q", ErrNoMatch, substr)
}

// Describe adds class, owning process id and executable name to info. Fields that cannot be
// queried are left empty.
func (m *Manager) Describe(info WindowInfo) Details {
	d := Details{WindowInfo: info}
	if class, err := m.sys.ClassName(info.Handle); err == nil {
		d.Class = class
	}
	if proc, err := m.sys.ProcessInfo(info.Handle); err == nil {
		d.PID = proc.ProcessID
		d.Process = m.procName(proc.ProcessID)
	}
	return d
}

// DescribeAll applies Describe to every window.
func (m *Manager) DescribeAll(infos []WindowInfo) []Details {
	out := make([]Details, 0, len(infos))
	for _, info := range infos {
		out = append(out, m.Describe(info))
	}
	return out
}

// Subscribe adds a listener for window list changes
func (m *Manager) Subscribe() chan []WindowInfo {
	ch := make(chan []WindowInfo, 10)
	m.mu.Lock()
	m.listeners = append(m.listeners, ch)
	m.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener
func (m *Manager) Unsubscribe(ch chan []WindowInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, listener := range m.listeners {
		if listener == ch {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			close(ch)
			break
		}
	}
}

// notifyListeners notifies all listeners of window changes
func (m *Manager) notifyListeners(windows []WindowInfo) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, listener := range m.listeners {
		select {
		case listener <- windows:
		default:
			// Skip if channel is full
		}
	}
}

// processName looks up the executable name of pid, or "" if the process
// has exited or cannot be inspected.
func processName(pid uint32) string {
	if pid == 0 {
		return ""
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, err := p.Name()
	if err != nil {
		return ""
	}
	return name
}
