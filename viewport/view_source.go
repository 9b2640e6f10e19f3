package viewport

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/slcam/camera"
)

// viewSource is the virtual-view PoseSource variant. It stores the host's
// ephemeral view parameters — look-at location, rotation, and distance — and
// derives the camera position from them, the way a viewport's region view
// state works.
type viewSource struct {
	mu *sync.Mutex

	location mgl32.Vec3 // look-at point
	rotation mgl32.Quat
	distance float32
}

var _ PoseSource = &viewSource{}

// NewViewSource creates a virtual-view pose source seeded with the given view
// state. The camera position is derived: it sits distance units behind the
// location along the rotated +Z axis (the camera looks down local -Z).
//
// Parameters:
//   - location: initial look-at point
//   - rotation: initial view rotation (unit quaternion)
//   - distance: initial distance from the look-at point
//
// Returns:
//   - PoseSource: the virtual-view pose source
func NewViewSource(location mgl32.Vec3, rotation mgl32.Quat, distance float32) PoseSource {
	return &viewSource{
		mu:       &sync.Mutex{},
		location: location,
		rotation: rotation,
		distance: distance,
	}
}

func (v *viewSource) Pose() camera.Pose {
	v.mu.Lock()
	defer v.mu.Unlock()
	return camera.Pose{
		Position: v.location.Add(v.rotation.Rotate(mgl32.Vec3{0, 0, v.distance})),
		Rotation: v.rotation,
		Target:   v.location,
		Distance: v.distance,
	}
}

func (v *viewSource) WritePose(pose camera.Pose) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.location = pose.Target
	v.rotation = pose.Rotation
	v.distance = pose.Distance
}

func (v *viewSource) Translate(delta mgl32.Vec3) {
	v.mu.Lock()
	defer v.mu.Unlock()
	// Position is derived from the location, so shifting the location moves
	// the whole rig.
	v.location = v.location.Add(delta)
}
