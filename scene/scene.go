package scene

import (
	"sync"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// objectCount is an atomic counter used to assign unique ids to scene objects.
var objectCount atomic.Uint64

// Scene is a minimal raycastable world: a set of spheres and an optional
// ground plane. It exists to give the camera controller a real ray-cast
// primitive to pick focus points from. Thread-safe for concurrent access.
type Scene interface {
	// Add registers a sphere and returns its assigned id.
	//
	// Parameters:
	//   - center: sphere center in world space
	//   - radius: sphere radius (must be > 0)
	//
	// Returns:
	//   - uint64: the assigned object id
	Add(center mgl32.Vec3, radius float32) uint64

	// Remove removes a sphere by id. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the object's unique id
	Remove(id uint64)

	// Count returns the number of registered spheres.
	//
	// Returns:
	//   - int: sphere count
	Count() int

	// SetGround enables or disables the ground plane at the given height
	// (a horizontal plane z = height).
	//
	// Parameters:
	//   - enabled: whether rays can hit the ground
	//   - height: plane height on the Z axis
	SetGround(enabled bool, height float32)

	// Intersect finds the nearest intersection of the ray with the scene.
	// A miss is a normal outcome, not an error.
	//
	// Parameters:
	//   - origin: ray origin in world space
	//   - dir: ray direction (need not be normalized, must be non-zero)
	//
	// Returns:
	//   - hit: true if the ray struck geometry
	//   - point: world-space point of the nearest hit
	Intersect(origin, dir mgl32.Vec3) (hit bool, point mgl32.Vec3)
}

type sphere struct {
	center mgl32.Vec3
	radius float32
}

type sceneImpl struct {
	mu *sync.Mutex

	spheres map[uint64]sphere

	groundEnabled bool
	groundHeight  float32
}

var _ Scene = &sceneImpl{}

// NewScene creates an empty scene with the ground plane enabled at z = 0.
//
// Returns:
//   - Scene: the new scene
func NewScene() Scene {
	return &sceneImpl{
		mu:            &sync.Mutex{},
		spheres:       make(map[uint64]sphere),
		groundEnabled: true,
	}
}

func (s *sceneImpl) Add(center mgl32.Vec3, radius float32) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := objectCount.Add(1)
	s.spheres[id] = sphere{center: center, radius: radius}
	return id
}

func (s *sceneImpl) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.spheres, id)
}

func (s *sceneImpl) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spheres)
}

func (s *sceneImpl) SetGround(enabled bool, height float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groundEnabled = enabled
	s.groundHeight = height
}

func (s *sceneImpl) Intersect(origin, dir mgl32.Vec3) (bool, mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir.Len() < 1e-8 {
		return false, mgl32.Vec3{}
	}
	d := dir.Normalize()

	nearest := float32(math32.MaxFloat32)
	found := false

	for _, sp := range s.spheres {
		if t, ok := intersectSphere(origin, d, sp); ok && t < nearest {
			nearest = t
			found = true
		}
	}

	if s.groundEnabled {
		if t, ok := intersectPlaneZ(origin, d, s.groundHeight); ok && t < nearest {
			nearest = t
			found = true
		}
	}

	if !found {
		return false, mgl32.Vec3{}
	}
	return true, origin.Add(d.Mul(nearest))
}

// intersectSphere solves the quadratic for a ray/sphere intersection and
// returns the nearest positive parameter along the ray.
func intersectSphere(origin, dir mgl32.Vec3, sp sphere) (float32, bool) {
	oc := origin.Sub(sp.center)
	halfB := oc.Dot(dir)
	c := oc.Dot(oc) - sp.radius*sp.radius

	disc := halfB*halfB - c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := math32.Sqrt(disc)
	t := -halfB - sqrtDisc
	if t < 1e-4 {
		t = -halfB + sqrtDisc
	}
	if t < 1e-4 {
		return 0, false
	}
	return t, true
}

// intersectPlaneZ intersects a ray with the horizontal plane z = height.
func intersectPlaneZ(origin, dir mgl32.Vec3, height float32) (float32, bool) {
	if math32.Abs(dir.Z()) < 1e-8 {
		return 0, false
	}
	t := (height - origin.Z()) / dir.Z()
	if t < 1e-4 {
		return 0, false
	}
	return t, true
}
