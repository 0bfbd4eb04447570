package window

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		name    string
		window  *fakeWindow
		exclude bool // expected validity under ExcludeMinimized
		include bool // expected validity under IncludeMinimized
	}{
		{
			name:    "normal window",
			window:  normal("A", 10),
			exclude: true,
			include: true,
		},
		{
			name:   "invisible",
			window: func() *fakeWindow { w := normal("A", 10); w.visible = false; return w }(),
		},
		{
			name:    "minimized",
			window:  func() *fakeWindow { w := normal("A", 10); w.minimized = true; return w }(),
			include: true,
		},
		{
			name:    "cloaked",
			window:  func() *fakeWindow { w := normal("A", 10); w.cloaked = 2; return w }(),
			include: true,
		},
		{
			name:    "cloak query fails",
			window:  func() *fakeWindow { w := normal("A", 10); w.cloakErr = true; return w }(),
			exclude: true,
			include: true,
		},
		{
			name:   "tool window",
			window: func() *fakeWindow { w := normal("A", 10); w.exStyle = ExStyleToolWindow; return w }(),
		},
		{
			name:   "child style",
			window: func() *fakeWindow { w := normal("A", 10); w.style = StyleChild; return w }(),
		},
		{
			name:    "unrelated style bits",
			window:  func() *fakeWindow { w := normal("A", 10); w.style = 0x10CF0000; w.exStyle = 0x100; return w }(),
			exclude: true,
			include: true,
		},
		{
			name:    "zero width client",
			window:  func() *fakeWindow { w := normal("A", 10); w.rect = Rect{Bottom: 600}; return w }(),
			include: true,
		},
		{
			name:    "zero height client",
			window:  func() *fakeWindow { w := normal("A", 10); w.rect = Rect{Right: 800}; return w }(),
			include: true,
		},
		{
			name:   "closed window",
			window: func() *fakeWindow { w := normal("A", 10); w.closed = true; return w }(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newFakeSystem().add(10, tt.window)

			if got := IsValid(sys, 10, ExcludeMinimized); got != tt.exclude {
				t.Errorf("IsValid(ExcludeMinimized) = %v, want %v", got, tt.exclude)
			}
			if got := IsValid(sys, 10, IncludeMinimized); got != tt.include {
				t.Errorf("IsValid(IncludeMinimized) = %v, want %v", got, tt.include)
			}
		})
	}
}

func TestIsValidZeroHandle(t *testing.T) {
	sys := newFakeSystem()
	for _, mode := range []SearchMode{ExcludeMinimized, IncludeMinimized} {
		if IsValid(sys, 0, mode) {
			t.Errorf("IsValid(0, %v) = true, want false", mode)
		}
	}
}

func TestIsCloaked(t *testing.T) {
	tests := []struct {
		name   string
		window *fakeWindow
		want   bool
	}{
		{"zero attribute", normal("A", 1), false},
		{"non-zero attribute", func() *fakeWindow { w := normal("A", 1); w.cloaked = 1; return w }(), true},
		{"query fails", func() *fakeWindow { w := normal("A", 1); w.cloaked = 1; w.cloakErr = true; return w }(), false},
		{"closed window", func() *fakeWindow { w := normal("A", 1); w.cloaked = 1; w.closed = true; return w }(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newFakeSystem().add(10, tt.window)
			if got := IsCloaked(sys, 10); got != tt.want {
				t.Errorf("IsCloaked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSearchMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SearchMode
		wantErr bool
	}{
		{"", ExcludeMinimized, false},
		{"exclude-minimized", ExcludeMinimized, false},
		{"Include-Minimized", IncludeMinimized, false},
		{"include", IncludeMinimized, false},
		{"all", ExcludeMinimized, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSearchMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSearchMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSearchMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
