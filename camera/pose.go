package camera

import "github.com/go-gl/mathgl/mgl32"

// Pose is a fully resolved camera placement: world position, orientation,
// the look-at target, and the scalar distance between them. Poses are always
// derived — either from a Spherical state or from an in-flight Transition —
// and are never mutated field-by-field.
type Pose struct {
	// Position is the camera's world-space position.
	Position mgl32.Vec3

	// Rotation is the camera's orientation as a unit quaternion. The camera
	// looks down its local -Z axis with local +Y as up.
	Rotation mgl32.Quat

	// Target is the world-space look-at point.
	Target mgl32.Vec3

	// Distance is the scalar distance from Position to Target.
	Distance float32
}
