package window

import (
	"github.com/bryanchriswhite/WindowScout/internal/logger"
	"github.com/rs/zerolog"
)

// Enumerator walks the top-level windows in desktop order and yields the
// ones that are capture candidates for its search mode.
type Enumerator struct {
	sys  System
	mode SearchMode
	log  *zerolog.Logger
}

// NewEnumerator creates an enumerator over sys for one search mode.
func NewEnumerator(sys System, mode SearchMode) *Enumerator {
	return &Enumerator{
		sys:  sys,
		mode: mode,
		log:  logger.WithComponent("enumerator"),
	}
}

// Mode returns the search mode the enumerator filters with.
func (e *Enumerator) Mode() SearchMode {
	return e.mode
}

// First resets state and returns the first candidate of a new pass.
// It returns ErrNotFound when no eligible window exists at all.
func (e *Enumerator) First(state *TraversalState) (Handle, error) {
	*state = TraversalState{}
	visited := make(map[Handle]struct{})

	desktop := e.sys.DesktopWindow()
	h, err := e.sys.FindChild(desktop, 0)
	if err != nil || h.IsZero() {
		e.log.Debug().Err(err).Msg("find-window-ex unavailable, using get-window")
		state.Strategy = StrategyGetWindow
		h = e.firstChild(desktop)
	} else {
		state.Strategy = StrategyFindWindowEx
	}

	emit, pending, ok := e.start(h, state.Strategy, visited)
	if !ok && state.Strategy == StrategyFindWindowEx {
		e.log.Debug().Msg("find-window-ex exhausted without a candidate, retrying with get-window")
		state.Strategy = StrategyGetWindow
		visited = make(map[Handle]struct{})
		emit, pending, ok = e.start(e.firstChild(desktop), state.Strategy, visited)
	}

	if !ok {
		state.phase = PhaseDone
		return 0, ErrNotFound
	}

	state.Current = emit
	state.PendingParent = pending
	state.phase = PhaseTraversing
	state.visited = visited
	return emit, nil
}

// Next advances state to the following candidate. The second result is
// false once the pass is exhausted. Calling Next on a fresh state starts
// the pass as First would.
func (e *Enumerator) Next(state *TraversalState) (Handle, bool) {
	switch state.phase {
	case PhaseDone:
		return 0, false
	case PhaseAtStart:
		h, err := e.First(state)
		return h, err == nil
	}

	from := state.Current
	if !state.PendingParent.IsZero() {
		from = state.PendingParent
		state.PendingParent = 0
	}
	if state.visited == nil {
		state.visited = make(map[Handle]struct{})
	}

	emit, pending, ok := e.advance(from, state.Strategy, state.visited)
	if !ok {
		state.Current = 0
		state.phase = PhaseDone
		return 0, false
	}

	state.Current = emit
	state.PendingParent = pending
	return emit, true
}

// All runs one full pass and returns every titled candidate in
// enumeration order. The caller's own console window is never included.
func (e *Enumerator) All() []WindowInfo {
	out := make([]WindowInfo, 0)

	var state TraversalState
	h, err := e.First(&state)
	if err != nil {
		e.log.Debug().Str("mode", e.mode.String()).Msg("no eligible windows")
		return out
	}

	console := e.sys.ConsoleWindow()
	for ok := true; ok; h, ok = e.Next(&state) {
		if h == console {
			continue
		}
		title, err := e.sys.Title(h)
		if err != nil {
			e.log.Debug().Stringer("hwnd", h).Err(err).Msg("skipping window without title")
			continue
		}
		out = append(out, WindowInfo{Title: title, Handle: h})
	}

	e.log.Debug().
		Str("mode", e.mode.String()).
		Stringer("strategy", state.Strategy).
		Int("count", len(out)).
		Msg("enumeration pass complete")
	return out
}

// AllWindows runs one enumeration pass over sys.
func AllWindows(sys System, mode SearchMode) []WindowInfo {
	return NewEnumerator(sys, mode).All()
}

func (e *Enumerator) firstChild(h Handle) Handle {
	child, err := e.sys.FirstChild(h)
	if err != nil {
		return 0
	}
	return child
}

// step moves one window forward from h with the given primitive.
func (e *Enumerator) step(h Handle, strategy Strategy) Handle {
	var (
		next Handle
		err  error
	)
	if strategy == StrategyFindWindowEx {
		next, err = e.sys.FindChild(e.sys.DesktopWindow(), h)
	} else {
		next, err = e.sys.NextSibling(h)
	}
	if err != nil {
		return 0
	}
	return next
}

// accept validates h and applies shell-host substitution.
func (e *Enumerator) accept(h Handle) (emit, pending Handle, ok bool) {
	if !IsValid(e.sys, h, e.mode) {
		return 0, 0, false
	}
	emit, pending, ok = substitute(e.sys, h)
	if !ok {
		e.log.Debug().Stringer("hwnd", h).Msg("shell host has no external content window")
	}
	return emit, pending, ok
}

// start accepts h itself or advances past it.
func (e *Enumerator) start(h Handle, strategy Strategy, visited map[Handle]struct{}) (emit, pending Handle, ok bool) {
	if h.IsZero() {
		return 0, 0, false
	}
	visited[h] = struct{}{}
	if emit, pending, ok = e.accept(h); ok {
		return emit, pending, true
	}
	return e.advance(h, strategy, visited)
}

// advance steps forward from h until a candidate is accepted or the
// window list ends. Landing on an already visited window also ends the
// walk, so a z-order change mid-pass cannot produce duplicates or a loop.
func (e *Enumerator) advance(h Handle, strategy Strategy, visited map[Handle]struct{}) (emit, pending Handle, ok bool) {
	for {
		h = e.step(h, strategy)
		if h.IsZero() {
			return 0, 0, false
		}
		if _, seen := visited[h]; seen {
			e.log.Debug().Stringer("hwnd", h).Msg("traversal revisited a window, stopping")
			return 0, 0, false
		}
		visited[h] = struct{}{}

		if emit, pending, ok = e.accept(h); ok {
			return emit, pending, true
		}
	}
}
