package window

// IsCloaked reports whether the compositor is hiding h from every display.
// A failed query counts as not cloaked.
func IsCloaked(sys System, h Handle) bool {
	cloaked, err := sys.Cloaked(h)
	return err == nil && cloaked != 0
}

// IsValid reports whether h is an eligible capture target under mode.
// Any failed query makes the window ineligible.
func IsValid(sys System, h Handle, mode SearchMode) bool {
	if h.IsZero() || !sys.IsVisible(h) {
		return false
	}

	if mode == ExcludeMinimized && (sys.IsMinimized(h) || IsCloaked(sys, h)) {
		return false
	}

	style, exStyle, err := sys.Styles(h)
	if err != nil {
		return false
	}
	if exStyle&ExStyleToolWindow != 0 {
		return false
	}
	if style&StyleChild != 0 {
		return false
	}

	rect, err := sys.ClientRect(h)
	if err != nil {
		return false
	}
	if mode == ExcludeMinimized && (rect.Width() == 0 || rect.Height() == 0) {
		return false
	}

	return true
}
