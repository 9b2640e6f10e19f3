package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Carmen-Shannon/slcam/common"
	"github.com/Carmen-Shannon/slcam/session"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *hostWindow
	window  *glfw.Window
	running bool
}

// modifiersFrom maps GLFW modifier bits to the controller's chord slots:
// Alt is the primary modifier, Ctrl the secondary, Shift the tertiary.
func modifiersFrom(mods glfw.ModifierKey) session.Modifiers {
	var m session.Modifiers
	if mods&glfw.ModAlt != 0 {
		m |= session.ModPrimary
	}
	if mods&glfw.ModControl != 0 {
		m |= session.ModSecondary
	}
	if mods&glfw.ModShift != 0 {
		m |= session.ModTertiary
	}
	return m
}

// modifierForKey maps a physical modifier key to its chord slot.
// Returns 0 for non-modifier keys.
func modifierForKey(key uint32) session.Modifiers {
	switch key {
	case common.KeyLeftAlt, common.KeyRightAlt:
		return session.ModPrimary
	case common.KeyLeftControl, common.KeyRightControl:
		return session.ModSecondary
	case common.KeyLeftShift, common.KeyRightShift:
		return session.ModTertiary
	default:
		return 0
	}
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it
// as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *hostWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// No rendering happens through this window, so skip context creation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if uint32(key) == common.KeyEsc && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		mod := modifierForKey(uint32(key))
		if mod == 0 {
			return
		}
		switch action {
		case glfw.Press:
			if w.onModifierDown != nil {
				// Platforms disagree on whether mods already includes the key
				// being pressed; or it in so held reflects the state after.
				w.onModifierDown(mod, modifiersFrom(mods)|mod)
			}
		case glfw.Release:
			if w.onModifierUp != nil {
				// Same disagreement on release; mask the bit out.
				w.onModifierUp(mod, modifiersFrom(mods)&^mod)
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || w.onButton == nil {
			return
		}
		xpos, ypos := win.GetCursorPos()
		switch action {
		case glfw.Press:
			w.onButton(float32(xpos), float32(ypos), true, modifiersFrom(mods))
		case glfw.Release:
			w.onButton(float32(xpos), float32(ypos), false, modifiersFrom(mods))
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onPointerMove != nil {
			w.onPointerMove(float32(xpos), float32(ypos), currentModifiers(win))
		}
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays the framebuffer size differs from the window size.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// currentModifiers polls the live modifier key state. Cursor position
// callbacks do not carry modifier bits, so they are polled per event.
func currentModifiers(win *glfw.Window) session.Modifiers {
	var m session.Modifiers
	if win.GetKey(glfw.KeyLeftAlt) == glfw.Press || win.GetKey(glfw.KeyRightAlt) == glfw.Press {
		m |= session.ModPrimary
	}
	if win.GetKey(glfw.KeyLeftControl) == glfw.Press || win.GetKey(glfw.KeyRightControl) == glfw.Press {
		m |= session.ModSecondary
	}
	if win.GetKey(glfw.KeyLeftShift) == glfw.Press || win.GetKey(glfw.KeyRightShift) == glfw.Press {
		m |= session.ModTertiary
	}
	return m
}

// platformSetTitle updates the native window's title bar text.
func platformSetTitle(w *hostWindow, title string) {
	if w.internalWindow == nil {
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.window.SetTitle(title)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared,
// or GLFW reports ShouldClose.
//
// Parameters:
//   - w: the hostWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *hostWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW
// library. Returns an error if the internal window has not been initialized.
//
// Parameters:
//   - w: the hostWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *hostWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *hostWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
