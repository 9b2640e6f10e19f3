package viewport

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/slcam/camera"
)

// Raycaster resolves a 2D region coordinate to a world-space hit point.
// A miss is a valid, expected outcome, not an error.
type Raycaster interface {
	// Raycast casts a ray through the region coordinate into the scene.
	//
	// Parameters:
	//   - x, y: region-relative pointer coordinates in pixels
	//
	// Returns:
	//   - hit: true if the ray struck scene geometry
	//   - point: world-space hit point (zero when hit is false)
	Raycast(x, y float32) (hit bool, point mgl32.Vec3)
}

// Timer is a periodic tick source armed for the lifetime of one session.
// Release must be called exactly once per session on every exit path; calling
// it more than once is safe.
type Timer interface {
	// Release stops the timer. Idempotent.
	Release()
}

// Viewport is the host surface a camera session drives. It provides ray
// casting against scene geometry, access to the authoritative pose source,
// redraw and status-text hooks, and a periodic timer feed.
type Viewport interface {
	Raycaster

	// Source returns the active pose source (virtual view state or a locked
	// camera object), selected once for the viewport's lifetime.
	//
	// Returns:
	//   - PoseSource: the pose source
	Source() PoseSource

	// Size returns the region dimensions in pixels.
	//
	// Returns:
	//   - width, height: region size in pixels
	Size() (width, height int)

	// ArmTimer starts a periodic tick at the given interval and returns a
	// handle used to release it when the session ends.
	//
	// Parameters:
	//   - interval: tick cadence (typically ~16ms)
	//
	// Returns:
	//   - Timer: handle releasing the timer
	ArmTimer(interval time.Duration) Timer

	// RequestRedraw asks the host to repaint the region.
	RequestRedraw()

	// SetStatusText displays text in the host's status area. An empty string
	// clears it.
	//
	// Parameters:
	//   - text: status line to display, or "" to clear
	SetStatusText(text string)
}

// PoseSource abstracts where the camera pose lives. The virtual-view variant
// reads and writes an ephemeral view state; the camera-lock variant drives a
// persistent scene object's world transform. All controller math is written
// once against this interface.
type PoseSource interface {
	// Pose returns the authoritative current pose. It must reflect the true
	// current state — even across an indirection layer such as a locked
	// external camera object — not merely the last value written through
	// this source.
	//
	// Returns:
	//   - camera.Pose: the current pose
	Pose() camera.Pose

	// WritePose applies a fully resolved pose.
	//
	// Parameters:
	//   - pose: the pose to apply
	WritePose(pose camera.Pose)

	// Translate rigidly moves the whole camera rig — physical position and
	// look-at point together — without changing orientation or distance.
	// Used by panning.
	//
	// Parameters:
	//   - delta: world-space translation
	Translate(delta mgl32.Vec3)
}

// WrapRegion wraps a pointer coordinate into [0, width) × [0, height).
// Cursor-wrap emulation during drags can report positions outside the region;
// wrapping keeps raycast coordinates valid without retrying.
//
// Parameters:
//   - x, y: reported pointer coordinates
//   - width, height: region size in pixels
//
// Returns:
//   - wx, wy: wrapped coordinates inside the region
func WrapRegion(x, y float32, width, height int) (wx, wy float32) {
	w, h := float32(width), float32(height)
	if w <= 0 || h <= 0 {
		return x, y
	}
	wx = math32.Mod(x, w)
	if wx < 0 {
		wx += w
	}
	wy = math32.Mod(y, h)
	if wy < 0 {
		wy += h
	}
	return wx, wy
}
