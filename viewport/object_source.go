package viewport

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/slcam/camera"
)

// CameraObject is a persistent scene camera whose world transform the
// camera-lock variant drives. Reads must reflect the object's true current
// transform, including changes made by the host between frames.
type CameraObject interface {
	// WorldPosition returns the object's current world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	WorldPosition() mgl32.Vec3

	// WorldRotation returns the object's current world-space orientation.
	//
	// Returns:
	//   - mgl32.Quat: unit quaternion orientation
	WorldRotation() mgl32.Quat

	// SetWorldTransform applies a new world-space position and orientation.
	//
	// Parameters:
	//   - position: new world-space position
	//   - rotation: new orientation (unit quaternion)
	SetWorldTransform(position mgl32.Vec3, rotation mgl32.Quat)
}

// objectSource is the camera-lock PoseSource variant. Position and rotation
// live on the scene object and are read back live on every Pose call; only
// the look-at distance is tracked here, updated on each write.
type objectSource struct {
	mu *sync.Mutex

	object   CameraObject
	distance float32
}

var _ PoseSource = &objectSource{}

// NewObjectSource creates a camera-lock pose source driving the given scene
// object. The look-at target is derived as the point distance units in front
// of the object along its view direction.
//
// Parameters:
//   - object: the scene camera object to drive
//   - distance: initial distance to the look-at point
//
// Returns:
//   - PoseSource: the camera-lock pose source
func NewObjectSource(object CameraObject, distance float32) PoseSource {
	return &objectSource{
		mu:       &sync.Mutex{},
		object:   object,
		distance: distance,
	}
}

func (o *objectSource) Pose() camera.Pose {
	o.mu.Lock()
	defer o.mu.Unlock()
	pos := o.object.WorldPosition()
	rot := o.object.WorldRotation()
	return camera.Pose{
		Position: pos,
		Rotation: rot,
		Target:   pos.Add(rot.Rotate(mgl32.Vec3{0, 0, -o.distance})),
		Distance: o.distance,
	}
}

func (o *objectSource) WritePose(pose camera.Pose) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.object.SetWorldTransform(pose.Position, pose.Rotation)
	o.distance = pose.Distance
}

func (o *objectSource) Translate(delta mgl32.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	pos := o.object.WorldPosition()
	rot := o.object.WorldRotation()
	o.object.SetWorldTransform(pos.Add(delta), rot)
}
