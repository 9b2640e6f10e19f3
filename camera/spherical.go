package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Fallback angles used when a view direction is degenerate (zero length) and
// no previous angles are available.
const (
	DefaultTheta = math32.Pi / 4
	DefaultPhi   = math32.Pi / 4
)

// worldUp is the Z-up convention used throughout the controller.
var worldUp = mgl32.Vec3{0, 0, 1}

// Spherical holds the camera's position relative to its look-at target in
// spherical coordinates. This is the single source of truth for camera
// placement while orbiting; a Pose is recomputed from it after every mutation.
type Spherical struct {
	// Target is the world-space point the camera orbits around.
	Target mgl32.Vec3

	// Theta is the azimuth angle in radians, measured in the XY ground plane
	// from the +X axis.
	Theta float32

	// Phi is the polar angle in radians, measured from the +Z (up) axis.
	// Callers clamp Phi so the camera never points straight up or down.
	Phi float32

	// Distance is the camera's distance from Target.
	Distance float32
}

// Position converts the spherical coordinates to a world-space camera position.
//
// Returns:
//   - mgl32.Vec3: the camera position for the current target, angles, and distance
func (s Spherical) Position() mgl32.Vec3 {
	sinPhi := math32.Sin(s.Phi)
	return mgl32.Vec3{
		s.Target.X() + s.Distance*sinPhi*math32.Cos(s.Theta),
		s.Target.Y() + s.Distance*sinPhi*math32.Sin(s.Theta),
		s.Target.Z() + s.Distance*math32.Cos(s.Phi),
	}
}

// Pose resolves the spherical state into a full camera pose, oriented to look
// at the target.
//
// Returns:
//   - Pose: position, look-at rotation, target, and distance
func (s Spherical) Pose() Pose {
	pos := s.Position()
	return Pose{
		Position: pos,
		Rotation: LookAt(pos, s.Target),
		Target:   s.Target,
		Distance: s.Distance,
	}
}

// LookAt returns the orientation that aims a camera at center from eye using
// the world up axis. The result is the camera's own orientation (not a view
// rotation): it maps camera-local -Z onto the view direction and keeps local
// +Y as close to world up as the direction allows. If eye and center coincide
// the identity rotation is returned.
//
// Parameters:
//   - eye: camera position in world space
//   - center: point the camera should face
//
// Returns:
//   - mgl32.Quat: unit quaternion rotating camera-local -Z onto the view direction
func LookAt(eye, center mgl32.Vec3) mgl32.Quat {
	dir := center.Sub(eye)
	if dir.Len() < 1e-8 {
		return mgl32.QuatIdent()
	}
	forward := dir.Normalize()

	// Looking straight along the up axis leaves the roll unconstrained; any
	// horizontal right axis works.
	right := forward.Cross(worldUp)
	if right.Len() < 1e-6 {
		right = mgl32.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	up := right.Cross(forward)

	// Camera basis as matrix columns: local +X, +Y, +Z in world space.
	m := mgl32.Mat4{
		right.X(), right.Y(), right.Z(), 0,
		up.X(), up.Y(), up.Z(), 0,
		-forward.X(), -forward.Y(), -forward.Z(), 0,
		0, 0, 0, 1,
	}
	return mgl32.Mat4ToQuat(m).Normalize()
}

// FromDirection derives the azimuth and polar angles of a target-to-camera
// direction vector. The direction must be non-zero; callers holding a
// degenerate vector must fall back to their previous angles (or DefaultTheta
// and DefaultPhi) instead of calling this.
//
// Parameters:
//   - dir: non-zero vector from the target toward the camera
//
// Returns:
//   - theta: azimuth in radians
//   - phi: polar angle in radians, clamped into [0, π]
func FromDirection(dir mgl32.Vec3) (theta, phi float32) {
	n := dir.Normalize()
	theta = math32.Atan2(n.Y(), n.X())
	phi = math32.Acos(mgl32.Clamp(n.Z(), -1, 1))
	return theta, phi
}
