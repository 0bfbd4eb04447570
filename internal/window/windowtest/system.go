// Package windowtest provides an in-memory window.System for tests of
// packages built on top of the window manager.
//
// It models a flat desktop only. The window package's own tests use a
// graph fake in fake_test.go instead: they cannot import this package
// (windowtest imports window) and they need nested children, failing
// primitives and sibling loops.
package windowtest

import (
	"errors"
	"sync"

	"github.com/bryanchriswhite/WindowScout/internal/window"
)

// Desktop is the handle returned by DesktopWindow.
const Desktop window.Handle = 1

var errNoWindow = errors.New("no such window")

// Window describes one top-level window on the fake desktop.
type Window struct {
	Title     string
	PID       uint32
	Class     string
	Minimized bool
	Hidden    bool
}

// System is a flat desktop whose top-level windows are kept in insertion
// order. It is safe for concurrent use.
type System struct {
	mu      sync.RWMutex
	windows map[window.Handle]Window
	order   []window.Handle
	console window.Handle
}

// New returns an empty desktop.
func New() *System {
	return &System{windows: make(map[window.Handle]Window)}
}

// Add appends a top-level window. Re-adding a handle replaces its attributes
// but keeps its position.
func (s *System) Add(h window.Handle, w Window) *System {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.Class == "" {
		w.Class = "AppWindow"
	}
	if _, ok := s.windows[h]; !ok {
		s.order = append(s.order, h)
	}
	s.windows[h] = w
	return s
}

// Remove closes a window.
func (s *System) Remove(h window.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, h)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// SetConsole marks h as the calling process's console window.
func (s *System) SetConsole(h window.Handle) {
	s.mu.Lock()
	s.console = h
	s.mu.Unlock()
}

func (s *System) lookup(h window.Handle) (Window, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.windows[h]
	return w, ok
}

func (s *System) Name() string                 { return "windowtest" }
func (s *System) Close() error                 { return nil }
func (s *System) DesktopWindow() window.Handle { return Desktop }

func (s *System) ConsoleWindow() window.Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.console
}

func (s *System) FindChild(parent, after window.Handle) (window.Handle, error) {
	if parent != Desktop {
		return 0, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if after == 0 {
		if len(s.order) == 0 {
			return 0, nil
		}
		return s.order[0], nil
	}
	for i, h := range s.order {
		if h == after && i+1 < len(s.order) {
			return s.order[i+1], nil
		}
	}
	return 0, nil
}

func (s *System) FirstChild(h window.Handle) (window.Handle, error) {
	return s.FindChild(h, 0)
}

func (s *System) NextSibling(h window.Handle) (window.Handle, error) {
	return s.FindChild(Desktop, h)
}

func (s *System) IsVisible(h window.Handle) bool {
	w, ok := s.lookup(h)
	return ok && !w.Hidden
}

func (s *System) IsMinimized(h window.Handle) bool {
	w, ok := s.lookup(h)
	return ok && w.Minimized
}

func (s *System) Cloaked(h window.Handle) (uint32, error) {
	if _, ok := s.lookup(h); !ok {
		return 0, errNoWindow
	}
	return 0, nil
}

func (s *System) Styles(h window.Handle) (uint32, uint32, error) {
	if _, ok := s.lookup(h); !ok {
		return 0, 0, errNoWindow
	}
	return 0, 0, nil
}

// ClientRect reports 800x600 for normal windows and an empty rect for
// minimized ones.
func (s *System) ClientRect(h window.Handle) (window.Rect, error) {
	w, ok := s.lookup(h)
	if !ok {
		return window.Rect{}, errNoWindow
	}
	if w.Minimized {
		return window.Rect{}, nil
	}
	return window.Rect{Right: 800, Bottom: 600}, nil
}

func (s *System) ProcessInfo(h window.Handle) (window.ProcessInfo, error) {
	w, ok := s.lookup(h)
	if !ok {
		return window.ProcessInfo{}, errNoWindow
	}
	return window.ProcessInfo{ProcessID: w.PID, ThreadID: w.PID + 1}, nil
}

func (s *System) ClassName(h window.Handle) (string, error) {
	w, ok := s.lookup(h)
	if !ok {
		return "", errNoWindow
	}
	return w.Class, nil
}

func (s *System) Title(h window.Handle) (string, error) {
	w, ok := s.lookup(h)
	if !ok || w.Title == "" {
		return "", errNoWindow
	}
	return w.Title, nil
}

var _ window.System = (*System)(nil)
