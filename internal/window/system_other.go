//go:build !windows && !linux

package window

import (
	"fmt"
	"runtime"
)

// NewSystem returns the window system for this platform.
func NewSystem() (System, error) {
	return nil, fmt.Errorf("window discovery is not supported on %s", runtime.GOOS)
}
