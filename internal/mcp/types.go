package mcp

import "github.com/bryanchriswhite/WindowScout/internal/window"

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Mode string `json:"mode,omitempty" jsonschema:"Search mode: exclude-minimized (default) or include-minimized"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Mode    string           `json:"mode"`
	Count   int              `json:"count"`
	Windows []window.Details `json:"windows"`
}

// FindWindowInput is the input for the find_window tool.
type FindWindowInput struct {
	Title string `json:"title" jsonschema:"required,Case-insensitive substring of the window title"`
	Mode  string `json:"mode,omitempty" jsonschema:"Search mode: exclude-minimized (default) or include-minimized"`
}

// FindWindowOutput is the output for the find_window tool.
type FindWindowOutput struct {
	Found  bool            `json:"found"`
	Window *window.Details `json:"window,omitempty"`
}
