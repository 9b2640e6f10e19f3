package session

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode is the active interaction mode. Exactly one mode is active at a time,
// derived on every event from the held modifier combination.
type Mode int

const (
	// ModeFocus combines horizontal orbiting with drag zooming around a
	// raycast-picked focus point.
	ModeFocus Mode = iota

	// ModeOrbit orbits the focus point at a fixed distance, with elevation
	// limits.
	ModeOrbit

	// ModePan translates the whole camera rig along the view plane.
	ModePan
)

func (m Mode) String() string {
	switch m {
	case ModeFocus:
		return "FOCUS"
	case ModeOrbit:
		return "ORBIT"
	case ModePan:
		return "PAN"
	default:
		return "UNKNOWN"
	}
}

// resolveMode maps the held modifier combination to the desired mode.
// All three modifiers select pan, primary+secondary selects orbit, the
// primary alone selects focus. Any other combination keeps the current mode.
func resolveMode(current Mode, mods Modifiers) Mode {
	switch {
	case mods.Has(ModPrimary | ModSecondary | ModTertiary):
		return ModePan
	case mods.Has(ModPrimary | ModSecondary):
		return ModeOrbit
	case mods.Has(ModPrimary):
		return ModeFocus
	default:
		return current
	}
}

// modeHandler is the per-mode behavior table. Adding a mode means adding one
// variant here, not editing the session's click/drag/status plumbing.
type modeHandler interface {
	// Click handles the raycast outcome of a pointer press in this mode.
	Click(s *sessionImpl, hit bool, point mgl32.Vec3, now time.Time)

	// Drag applies a pointer delta in this mode. Callers guarantee no
	// transition is in flight.
	Drag(s *sessionImpl, dx, dy float32)

	// Status returns the status-bar hint line for this mode.
	Status() string
}

var modeHandlers = map[Mode]modeHandler{
	ModeFocus: focusHandler{},
	ModeOrbit: orbitHandler{},
	ModePan:   panHandler{},
}
