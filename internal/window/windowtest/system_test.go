package windowtest

import (
	"reflect"
	"testing"

	"github.com/bryanchriswhite/WindowScout/internal/window"
)

func titles(infos []window.WindowInfo) []string {
	out := make([]string, 0, len(infos))
	for _, w := range infos {
		out = append(out, w.Title)
	}
	return out
}

func TestAllWindowsOverDesktop(t *testing.T) {
	sys := New().
		Add(100, Window{Title: "Console", PID: 1}).
		Add(101, Window{Title: "A", PID: 10}).
		Add(102, Window{Title: "B", PID: 20, Minimized: true}).
		Add(103, Window{Title: "Hidden", PID: 30, Hidden: true}).
		Add(104, Window{PID: 40}).
		Add(105, Window{Title: "D", PID: 50})
	sys.SetConsole(100)

	tests := []struct {
		mode window.SearchMode
		want []string
	}{
		{window.ExcludeMinimized, []string{"A", "D"}},
		{window.IncludeMinimized, []string{"A", "B", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got := titles(window.AllWindows(sys, tt.mode))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AllWindows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrategiesAgree(t *testing.T) {
	sys := New().
		Add(10, Window{Title: "A"}).
		Add(11, Window{Title: "B"}).
		Add(12, Window{Title: "C"})

	var viaFind, viaSiblings []window.Handle
	for h, _ := sys.FindChild(Desktop, 0); h != 0; h, _ = sys.FindChild(Desktop, h) {
		viaFind = append(viaFind, h)
	}
	for h, _ := sys.FirstChild(Desktop); h != 0; h, _ = sys.NextSibling(h) {
		viaSiblings = append(viaSiblings, h)
	}

	want := []window.Handle{10, 11, 12}
	if !reflect.DeepEqual(viaFind, want) || !reflect.DeepEqual(viaSiblings, want) {
		t.Errorf("find order %v, sibling order %v, want %v", viaFind, viaSiblings, want)
	}
}

func TestRemoveAndStaleHandles(t *testing.T) {
	sys := New().
		Add(10, Window{Title: "A"}).
		Add(11, Window{Title: "B"})
	sys.Remove(10)

	if got := titles(window.AllWindows(sys, window.ExcludeMinimized)); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("AllWindows() after Remove = %v, want [B]", got)
	}
	if sys.IsVisible(10) {
		t.Error("IsVisible(removed) = true")
	}
	if _, err := sys.Title(10); err == nil {
		t.Error("Title(removed) returned nil error")
	}
	if _, _, err := sys.Styles(10); err == nil {
		t.Error("Styles(removed) returned nil error")
	}
}
