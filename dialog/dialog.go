// Package dialog presents the native "open file" picker.
package dialog

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/ncruces/zenity"
)

// ErrNoDisplay is the cause used when there is no graphical session to host a dialog.
var ErrNoDisplay = errors.New("no display available")

// DialogUnavailableError means the host could not present a file dialog.
type DialogUnavailableError struct {
	Err error
}

func (e *DialogUnavailableError) Error() string {
	return "file dialog unavailable: " + e.Err.Error()
}

func (e *DialogUnavailableError) Unwrap() error {
	return e.Err
}

// Picker asks the user for a single file. ok is false when the user cancelled.
type Picker interface {
	PickFile(ctx context.Context) (path string, ok bool, err error)
}

// Filters lists the selectable file types, markdown first.
var Filters = zenity.FileFilters{
	{Name: "Markdown", Patterns: []string{"*.md", "*.markdown"}},
	{Name: "All Files", Patterns: []string{"*"}},
}

// NativePicker shows the OS dialog through zenity.
type NativePicker struct {
	Title string

	// getenv is swapped in tests.
	getenv func(string) string
}

func NewNativePicker() *NativePicker {
	return &NativePicker{Title: "Open Markdown File", getenv: os.Getenv}
}

func (p *NativePicker) PickFile(ctx context.Context) (string, bool, error) {
	if !p.hasDisplay() {
		return "", false, &DialogUnavailableError{Err: ErrNoDisplay}
	}

	path, err := zenity.SelectFile(
		zenity.Context(ctx),
		zenity.Title(p.Title),
		Filters,
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &DialogUnavailableError{Err: err}
	}
	if path == "" {
		return "", false, nil
	}
	return path, true, nil
}

// hasDisplay only matters on X11/Wayland hosts; macOS and Windows always have one.
func (p *NativePicker) hasDisplay() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return true
	}
	getenv := p.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
}

// StaticPicker returns a fixed answer. An empty Path behaves like a cancelled dialog.
type StaticPicker struct {
	Path string
	Err  error
}

func (p StaticPicker) PickFile(ctx context.Context) (string, bool, error) {
	if p.Err != nil {
		return "", false, &DialogUnavailableError{Err: p.Err}
	}
	if p.Path == "" {
		return "", false, nil
	}
	return p.Path, true, nil
}
