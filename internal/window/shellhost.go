package window

// IsShellHost reports whether h belongs to the shell frame class whose
// content is drawn by a child window from another process.
func IsShellHost(sys System, h Handle) bool {
	if h.IsZero() {
		return false
	}
	class, err := sys.ClassName(h)
	if err != nil {
		return false
	}
	return class == ShellHostClass
}

// ResolveShellHost returns the first child of host that is owned by a
// different process than host itself. The second result is false when
// host has no such child or its ownership cannot be determined.
func ResolveShellHost(sys System, host Handle) (Handle, bool) {
	hostProc, err := sys.ProcessInfo(host)
	if err != nil {
		return 0, false
	}

	child, err := sys.FindChild(host, 0)
	for err == nil && !child.IsZero() {
		if proc, perr := sys.ProcessInfo(child); perr == nil && proc.ProcessID != hostProc.ProcessID {
			return child, true
		}
		child, err = sys.FindChild(host, child)
	}

	return 0, false
}

// substitute maps an accepted candidate to the window that should be
// emitted. A shell host maps to its content child and is returned as the
// pending parent. ok is false for a shell host with no content child.
func substitute(sys System, h Handle) (emit, pending Handle, ok bool) {
	if !IsShellHost(sys, h) {
		return h, 0, true
	}
	child, found := ResolveShellHost(sys, h)
	if !found {
		return 0, 0, false
	}
	return child, h, true
}
