package window

import (
	"time"

	"github.com/Carmen-Shannon/slcam/logging"
	"github.com/Carmen-Shannon/slcam/session"
	"github.com/Carmen-Shannon/slcam/viewport"
)

// Host is the binding layer: it watches the window's input feed for the three
// mode chords and runs camera sessions over the viewport:
//
//	primary (Alt)                    → FOCUS
//	primary+secondary (Alt+Ctrl)     → ORBIT
//	all three (Alt+Ctrl+Shift)       → PAN
//
// A session starts either from a chorded button press, or from a chord formed
// while a drag is already underway; the latter raycasts from the original
// press point rather than the current pointer position.
type Host struct {
	win Window
	vp  viewport.Viewport
	cfg session.Config

	active session.Session

	// Physical button/gesture tracking across sessions.
	buttonDown     bool
	moved          bool
	pressX, pressY float32
	lastX, lastY   float32
}

// NewHost creates a binding host over the given window and viewport.
//
// Parameters:
//   - win: the window delivering input
//   - vp: the viewport sessions drive
//   - cfg: the preference tunables passed to each session
//
// Returns:
//   - *Host: the host, not yet running
func NewHost(win Window, vp viewport.Viewport, cfg session.Config) *Host {
	return &Host{
		win: win,
		vp:  vp,
		cfg: cfg,
	}
}

// Run installs the input callbacks and blocks in the window's message loop
// until the window closes. Any active session is stopped on the way out.
func (h *Host) Run() {
	h.win.SetButtonCallback(h.onButton)
	h.win.SetPointerMoveCallback(h.onPointerMove)
	h.win.SetModifierDownCallback(h.onModifierDown)
	h.win.SetModifierUpCallback(h.onModifierUp)
	h.win.SetUpdateCallback(h.onUpdate)

	h.win.ProcessMessages()

	// Window gone: same path as user-driven cancellation.
	if h.active != nil {
		h.active.HandleEvent(session.Event{Kind: session.EventViewportLost, Time: time.Now()})
		h.active = nil
	}
}

// chordMode resolves a modifier combination to the session mode it starts.
func chordMode(mods session.Modifiers) (session.Mode, bool) {
	switch {
	case mods.Has(session.ModPrimary | session.ModSecondary | session.ModTertiary):
		return session.ModePan, true
	case mods.Has(session.ModPrimary | session.ModSecondary):
		return session.ModeOrbit, true
	case mods.Has(session.ModPrimary):
		return session.ModeFocus, true
	default:
		return 0, false
	}
}

func (h *Host) onButton(x, y float32, pressed bool, mods session.Modifiers) {
	now := time.Now()

	if pressed {
		dragging := h.buttonDown && h.moved
		if !h.buttonDown {
			h.pressX, h.pressY = x, y
			h.moved = false
		}
		h.buttonDown = true
		h.lastX, h.lastY = x, y

		ev := session.Event{
			Kind:     session.EventButtonDown,
			X:        x,
			Y:        y,
			PressX:   h.pressX,
			PressY:   h.pressY,
			Dragging: dragging,
			Mods:     mods,
			Time:     now,
		}

		if h.active == nil {
			h.startSession(ev)
			return
		}

		h.forward(ev)
		return
	}

	h.buttonDown = false
	h.moved = false
	h.forward(session.Event{
		Kind: session.EventButtonUp,
		X:    x,
		Y:    y,
		Mods: mods,
		Time: now,
	})
}

func (h *Host) onPointerMove(x, y float32, mods session.Modifiers) {
	if h.buttonDown && (x != h.lastX || y != h.lastY) {
		h.moved = true
	}
	h.lastX, h.lastY = x, y

	h.forward(session.Event{
		Kind: session.EventPointerMove,
		X:    x,
		Y:    y,
		Mods: mods,
		Time: time.Now(),
	})
}

// onModifierDown fires when a modifier completes its chord. With the button
// already down and moved, the chord is a drag-in-progress invocation: the
// session starts immediately and raycasts from the original press point.
func (h *Host) onModifierDown(_, held session.Modifiers) {
	if h.active != nil || !h.buttonDown || !h.moved {
		return
	}
	h.startSession(session.Event{
		Kind:     session.EventButtonDown,
		X:        h.lastX,
		Y:        h.lastY,
		PressX:   h.pressX,
		PressY:   h.pressY,
		Dragging: true,
		Mods:     held,
		Time:     time.Now(),
	})
}

func (h *Host) onModifierUp(released, held session.Modifiers) {
	h.forward(session.Event{
		Kind: session.EventModifierUp,
		Mod:  released,
		Mods: held,
		Time: time.Now(),
	})
}

// onUpdate runs once per message loop iteration and delivers due timer ticks.
func (h *Host) onUpdate() {
	if h.active == nil {
		return
	}
	now := time.Now()
	if hv, ok := h.vp.(*hostViewport); ok && hv.tickDue(now) {
		h.forward(session.Event{Kind: session.EventTimerTick, Time: now})
	}
}

// startSession starts a session for the chord in ev.Mods, if the modifiers
// form one.
func (h *Host) startSession(ev session.Event) {
	mode, ok := chordMode(ev.Mods)
	if !ok {
		return
	}
	s := session.NewSession(h.vp,
		session.WithMode(mode),
		session.WithConfig(h.cfg),
	)
	if err := s.Start(ev); err != nil {
		logging.Warn("camera session failed to start", "error", err)
		return
	}
	h.active = s
}

// forward delivers an event to the active session and drops the session once
// it reports termination.
func (h *Host) forward(ev session.Event) {
	if h.active == nil {
		return
	}
	if !h.active.HandleEvent(ev) {
		h.active = nil
	}
}
