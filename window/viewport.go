package window

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/slcam/camera"
	"github.com/Carmen-Shannon/slcam/scene"
	"github.com/Carmen-Shannon/slcam/viewport"
)

// hostViewport couples a Window, a raycastable Scene, and a PoseSource into a
// viewport.Viewport. Picking uses perspective unprojection through the
// authoritative pose, so rays stay correct mid-transition and under camera
// lock.
type hostViewport struct {
	mu *sync.Mutex

	win    Window
	scene  scene.Scene
	source viewport.PoseSource

	fov  float32 // vertical field of view in radians
	near float32
	far  float32

	baseTitle string

	// Timer state; ticks are emitted by the host's pump loop.
	timerArmed   bool
	tickInterval time.Duration
	lastTick     time.Time

	redrawWanted bool
}

var _ viewport.Viewport = &hostViewport{}

// NewViewport creates a viewport over the given window, scene, and pose
// source.
//
// Parameters:
//   - win: the host window delivering input and sizing
//   - sc: the scene rays are cast against
//   - source: the pose source (virtual view or locked camera object)
//
// Returns:
//   - viewport.Viewport: the coupled viewport
func NewViewport(win Window, sc scene.Scene, source viewport.PoseSource) viewport.Viewport {
	return &hostViewport{
		mu:        &sync.Mutex{},
		win:       win,
		scene:     sc,
		source:    source,
		fov:       mgl32.DegToRad(45),
		near:      0.1,
		far:       1000,
		baseTitle: "slcam viewport",
	}
}

func (v *hostViewport) Raycast(x, y float32) (bool, mgl32.Vec3) {
	w, h := v.win.Width(), v.win.Height()
	if w <= 0 || h <= 0 {
		return false, mgl32.Vec3{}
	}

	pose := v.source.Pose()
	view := viewMatrix(pose)
	proj := mgl32.Perspective(v.fov, float32(w)/float32(h), v.near, v.far)

	// Unprojection expects a bottom-left origin; pointer coordinates arrive
	// top-left.
	winY := float32(h) - y

	nearPt, err := mgl32.UnProject(mgl32.Vec3{x, winY, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return false, mgl32.Vec3{}
	}
	farPt, err := mgl32.UnProject(mgl32.Vec3{x, winY, 1}, view, proj, 0, 0, w, h)
	if err != nil {
		return false, mgl32.Vec3{}
	}

	return v.scene.Intersect(pose.Position, farPt.Sub(nearPt))
}

func (v *hostViewport) Source() viewport.PoseSource {
	return v.source
}

func (v *hostViewport) Size() (int, int) {
	return v.win.Width(), v.win.Height()
}

func (v *hostViewport) ArmTimer(interval time.Duration) viewport.Timer {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.timerArmed = true
	v.tickInterval = interval
	v.lastTick = time.Now()

	t := &pumpTimer{}
	t.stop = func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.timerArmed = false
	}
	return t
}

func (v *hostViewport) RequestRedraw() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.redrawWanted = true
}

func (v *hostViewport) SetStatusText(text string) {
	if text == "" {
		v.win.SetTitle(v.baseTitle)
		return
	}
	v.win.SetTitle(v.baseTitle + " - " + text)
}

// TakeRedraw reports and clears the pending-redraw flag. Render loops call
// this once per frame.
//
// Returns:
//   - bool: true if a redraw was requested since the last call
func (v *hostViewport) TakeRedraw() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	wanted := v.redrawWanted
	v.redrawWanted = false
	return wanted
}

// tickDue reports whether the armed timer should fire at now, and advances
// the timer's schedule if so.
func (v *hostViewport) tickDue(now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.timerArmed || now.Sub(v.lastTick) < v.tickInterval {
		return false
	}
	v.lastTick = now
	return true
}

// pumpTimer releases a viewport timer at most once.
type pumpTimer struct {
	once sync.Once
	stop func()
}

func (t *pumpTimer) Release() {
	t.once.Do(t.stop)
}

// viewMatrix builds the world-to-view matrix for a pose. The pose rotation is
// the camera's orientation, so the view rotation is its inverse.
func viewMatrix(pose camera.Pose) mgl32.Mat4 {
	r := pose.Rotation.Inverse().Mat4()
	t := mgl32.Translate3D(-pose.Position.X(), -pose.Position.Y(), -pose.Position.Z())
	return r.Mul4(t)
}
