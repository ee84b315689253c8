// Package clipboard copies highlighted output to the system clipboard by
// piping it into the platform's clipboard tool.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable is returned when no clipboard tool is installed.
var ErrUnavailable = errors.New("no clipboard tool found")

// tool is a clipboard command and its arguments.
type tool []string

// candidates lists the clipboard tools to try for goos, in order.
func candidates(goos string) []tool {
	switch goos {
	case "darwin":
		return []tool{{"pbcopy"}}
	case "windows":
		return []tool{{"cmd", "/c", "clip"}}
	default:
		return []tool{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}
}

// find returns the first candidate that lookPath resolves.
func find(goos string, lookPath func(string) (string, error)) (tool, bool) {
	for _, t := range candidates(goos) {
		if _, err := lookPath(t[0]); err == nil {
			return t, true
		}
	}
	return nil, false
}

// Write copies text to the system clipboard.
func Write(ctx context.Context, text string) error {
	t, ok := find(runtime.GOOS, exec.LookPath)
	if !ok {
		return ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, t[0], t[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %w: %s", t[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Available reports whether a clipboard tool is installed.
func Available() bool {
	_, ok := find(runtime.GOOS, exec.LookPath)
	return ok
}
