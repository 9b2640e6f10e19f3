package session

import "time"

// EventKind identifies the type of a host input event.
type EventKind int

const (
	// EventTimerTick is the periodic timer feed (~60 Hz). Carries the
	// timer's actual fire time.
	EventTimerTick EventKind = iota

	// EventPointerMove reports a region-relative pointer position.
	EventPointerMove

	// EventButtonDown reports the primary pointer button being pressed.
	EventButtonDown

	// EventButtonUp reports the primary pointer button being released.
	EventButtonUp

	// EventModifierUp reports a modifier key being released. The released
	// modifier is in Mod; releasing the primary modifier ends the session.
	EventModifierUp

	// EventViewportLost reports that the host viewport went away (e.g. the
	// area was closed). Terminates the session unconditionally.
	EventViewportLost
)

// Modifiers is a bitmask of held modifier keys. The controller is agnostic to
// which physical keys the host maps to each slot.
type Modifiers uint8

const (
	// ModPrimary is the modifier that keeps the session alive (e.g. Alt).
	ModPrimary Modifiers = 1 << iota

	// ModSecondary switches into orbit when held with the primary (e.g. Ctrl).
	ModSecondary

	// ModTertiary switches into pan when held with primary+secondary
	// (e.g. Shift).
	ModTertiary
)

// Has reports whether every modifier in mod is held.
//
// Parameters:
//   - mod: modifier set to test for
//
// Returns:
//   - bool: true if all modifiers in mod are held
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod == mod
}

// Event is one host input event delivered to a session. Every event carries
// the modifier state and a timestamp; the pointer fields are meaningful for
// pointer and button events.
type Event struct {
	// Kind is the event type.
	Kind EventKind

	// X, Y are the region-relative pointer coordinates in pixels.
	X, Y float32

	// PressX, PressY are the original press coordinates for gestures that
	// started with a drag already active. Used by Start for raycast accuracy.
	PressX, PressY float32

	// Dragging is true when the initiating gesture was a
	// press-with-drag-already-active rather than a simple click.
	Dragging bool

	// Mods is the modifier state at the time of the event.
	Mods Modifiers

	// Mod is the released modifier for EventModifierUp events.
	Mod Modifiers

	// Time is the event's timestamp. For timer ticks this is the actual
	// fire time, so transition progress is insensitive to timer jitter.
	Time time.Time
}
