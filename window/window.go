package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/slcam/session"
)

// Window provides platform windowing and input event delivery for a camera
// viewport host. Wraps the platform window with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetPointerMoveCallback sets the callback for pointer movement.
	//
	// Parameters:
	//   - callback: function receiving pointer x, y and the held modifiers
	SetPointerMoveCallback(callback func(x, y float32, mods session.Modifiers))

	// SetButtonCallback sets the callback for primary pointer button events.
	//
	// Parameters:
	//   - callback: function receiving pointer x, y, whether the button was
	//     pressed (true) or released (false), and the held modifiers
	SetButtonCallback(callback func(x, y float32, pressed bool, mods session.Modifiers))

	// SetModifierDownCallback sets the callback for modifier key presses.
	//
	// Parameters:
	//   - callback: function receiving the pressed modifier and the full
	//     held set including it
	SetModifierDownCallback(callback func(pressed, held session.Modifiers))

	// SetModifierUpCallback sets the callback for modifier key releases.
	//
	// Parameters:
	//   - callback: function receiving the released modifier and the
	//     modifiers still held
	SetModifierUpCallback(callback func(released, held session.Modifiers))

	// SetTitle sets the window title text.
	//
	// Parameters:
	//   - title: the title to display
	SetTitle(title string)

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each
	// iteration.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// hostWindow is the implementation of the Window interface.
// Holds window configuration, platform state, and event callbacks.
type hostWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	// onPointerMove is called when the pointer moves within the window.
	onPointerMove func(x, y float32, mods session.Modifiers)

	// onButton is called for primary pointer button presses and releases.
	onButton func(x, y float32, pressed bool, mods session.Modifiers)

	// onModifierDown is called when a modifier key is pressed.
	onModifierDown func(pressed, held session.Modifiers)

	// onModifierUp is called when a modifier key is released.
	onModifierUp func(released, held session.Modifiers)
}

var _ Window = &hostWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &hostWindow{
		title:  "slcam viewport",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *hostWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *hostWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *hostWindow) SetPointerMoveCallback(callback func(x, y float32, mods session.Modifiers)) {
	w.onPointerMove = callback
}

func (w *hostWindow) SetButtonCallback(callback func(x, y float32, pressed bool, mods session.Modifiers)) {
	w.onButton = callback
}

func (w *hostWindow) SetModifierDownCallback(callback func(pressed, held session.Modifiers)) {
	w.onModifierDown = callback
}

func (w *hostWindow) SetModifierUpCallback(callback func(released, held session.Modifiers)) {
	w.onModifierUp = callback
}

func (w *hostWindow) SetTitle(title string) {
	w.title = title
	platformSetTitle(w, title)
}

func (w *hostWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *hostWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *hostWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *hostWindow) Width() int {
	return w.width
}

func (w *hostWindow) Height() int {
	return w.height
}
