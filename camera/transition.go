package camera

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultTransitionDuration is how long a recenter transition runs.
const DefaultTransitionDuration = 150 * time.Millisecond

// Transition smoothly re-aims the camera at a new target while holding the
// physical camera position fixed. A Transition exists only while a recenter is
// in flight; when Tick reports completion the owner converts it back into
// Spherical state via Finish and discards it.
//
// Progress advances only when Tick is called, so a Transition is driven
// entirely by an external timer feed and is insensitive to timer jitter.
type Transition struct {
	startRotation mgl32.Quat
	endRotation   mgl32.Quat
	startTarget   mgl32.Vec3
	endTarget     mgl32.Vec3

	// position is the physical camera position, captured once at Begin and
	// held constant for the whole transition.
	position mgl32.Vec3

	startTime time.Time
	duration  time.Duration
}

// BeginTransition captures the interpolation endpoints for a recenter onto
// newTarget. The current pose must be an authoritative read from the pose
// source — the host may not reflect earlier writes synchronously, so the last
// written pose is not assumed.
//
// Parameters:
//   - current: authoritative current pose (its Target is the transition's starting look-at point)
//   - newTarget: world-space point to recenter on
//   - now: the transition's start timestamp
//
// Returns:
//   - *Transition: the in-flight transition
func BeginTransition(current Pose, newTarget mgl32.Vec3, now time.Time) *Transition {
	end := current.Rotation
	if newTarget.Sub(current.Position).Len() > 1e-8 {
		end = LookAt(current.Position, newTarget)
	}
	return &Transition{
		startRotation: current.Rotation,
		endRotation:   end,
		startTarget:   current.Target,
		endTarget:     newTarget,
		position:      current.Position,
		startTime:     now,
		duration:      DefaultTransitionDuration,
	}
}

// Ease applies a symmetric quadratic in/out curve to linear progress.
// Ease(0) = 0, Ease(0.5) = 0.5, Ease(1) = 1, monotonically increasing.
//
// Parameters:
//   - p: linear progress in [0, 1]
//
// Returns:
//   - float32: eased progress in [0, 1]
func Ease(p float32) float32 {
	if p < 0.5 {
		return 2 * p * p
	}
	return 1 - math32.Pow(-2*p+2, 2)/2
}

// Tick advances the transition to the timer's fire time and returns the
// interpolated pose. Rotation is slerped, the target is lerped, and the
// distance is recomputed from the fixed physical position so the emitted pose
// stays internally consistent.
//
// Parameters:
//   - now: the timer's actual fire time
//
// Returns:
//   - Pose: interpolated pose with the position held at the captured physical point
//   - bool: true once progress has reached 1, meaning the owner should call Finish
func (t *Transition) Tick(now time.Time) (Pose, bool) {
	progress := mgl32.Clamp(float32(now.Sub(t.startTime))/float32(t.duration), 0, 1)
	eased := Ease(progress)

	rotation := mgl32.QuatSlerp(t.startRotation, t.endRotation, eased)
	target := t.startTarget.Add(t.endTarget.Sub(t.startTarget).Mul(eased))

	return Pose{
		Position: t.position,
		Rotation: rotation,
		Target:   target,
		Distance: t.position.Sub(target).Len(),
	}, progress >= 1
}

// Finish converts the completed transition back into spherical state: the
// target locks to the end value and the angles and distance are re-derived
// from the fixed physical position. If the final direction is degenerate the
// current angles are kept.
//
// Parameters:
//   - current: the spherical state to carry angles forward from on a degenerate direction
//
// Returns:
//   - Spherical: state consistent with the physical position and final target
func (t *Transition) Finish(current Spherical) Spherical {
	next := current
	next.Target = t.endTarget

	dir := t.position.Sub(t.endTarget)
	next.Distance = dir.Len()
	if next.Distance > 0 {
		next.Theta, next.Phi = FromDirection(dir)
	}
	return next
}
