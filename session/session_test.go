package session

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/slcam/camera"
	"github.com/Carmen-Shannon/slcam/viewport"
)

const floatTolerance = 5e-4

func floatEquals(a, b float32) bool {
	return math32.Abs(a-b) < floatTolerance
}

func vecEquals(a, b mgl32.Vec3) bool {
	return floatEquals(a.X(), b.X()) && floatEquals(a.Y(), b.Y()) && floatEquals(a.Z(), b.Z())
}

// fakeTimer counts releases so tests can assert the timer is released
// exactly once on every exit path.
type fakeTimer struct {
	releases int
}

func (t *fakeTimer) Release() { t.releases++ }

// fakeViewport is a scripted host: raycasts return a configured outcome and
// record their coordinates, the pose source is a real virtual-view source.
type fakeViewport struct {
	source viewport.PoseSource

	hit   bool
	point mgl32.Vec3

	width, height int

	lastRayX, lastRayY float32
	raycasts           int

	timer    *fakeTimer
	armed    int
	statuses []string
	redraws  int
}

var _ viewport.Viewport = &fakeViewport{}

func (v *fakeViewport) Raycast(x, y float32) (bool, mgl32.Vec3) {
	v.raycasts++
	v.lastRayX, v.lastRayY = x, y
	return v.hit, v.point
}

func (v *fakeViewport) Source() viewport.PoseSource { return v.source }

func (v *fakeViewport) Size() (int, int) { return v.width, v.height }

func (v *fakeViewport) ArmTimer(time.Duration) viewport.Timer {
	v.armed++
	v.timer = &fakeTimer{}
	return v.timer
}

func (v *fakeViewport) RequestRedraw() { v.redraws++ }

func (v *fakeViewport) SetStatusText(text string) { v.statuses = append(v.statuses, text) }

// startSpherical is the view state every test session starts from.
var startSpherical = camera.Spherical{
	Target:   mgl32.Vec3{0, 0, 0},
	Theta:    camera.DefaultTheta,
	Phi:      camera.DefaultPhi,
	Distance: 14,
}

func newFakeViewport(hit bool, point mgl32.Vec3) *fakeViewport {
	pose := startSpherical.Pose()
	return &fakeViewport{
		source: viewport.NewViewSource(pose.Target, pose.Rotation, pose.Distance),
		hit:    hit,
		point:  point,
		width:  800,
		height: 600,
	}
}

func pressEvent(x, y float32, mods Modifiers, at time.Time) Event {
	return Event{Kind: EventButtonDown, X: x, Y: y, Mods: mods, Time: at}
}

func moveEvent(x, y float32, mods Modifiers, at time.Time) Event {
	return Event{Kind: EventPointerMove, X: x, Y: y, Mods: mods, Time: at}
}

func tickEvent(at time.Time) Event {
	return Event{Kind: EventTimerTick, Time: at}
}

func TestStart_NoViewport(t *testing.T) {
	s := NewSession(nil)
	if err := s.Start(pressEvent(0, 0, ModPrimary, time.Now())); err != ErrNoViewport {
		t.Fatalf("got %v, want ErrNoViewport", err)
	}
	if s.Running() {
		t.Error("session running after failed start")
	}
}

func TestStart_DegenerateRegion(t *testing.T) {
	vp := newFakeViewport(false, mgl32.Vec3{})
	vp.width, vp.height = 0, 0
	s := NewSession(vp)
	if err := s.Start(pressEvent(0, 0, ModPrimary, time.Now())); err != ErrNoViewport {
		t.Fatalf("got %v, want ErrNoViewport", err)
	}
	if vp.armed != 0 {
		t.Error("timer armed despite failed start")
	}
}

func TestStart_TwiceFails(t *testing.T) {
	vp := newFakeViewport(false, mgl32.Vec3{})
	s := NewSession(vp)
	if err := s.Start(pressEvent(0, 0, ModPrimary, time.Now())); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := s.Start(pressEvent(0, 0, ModPrimary, time.Now())); err != ErrAlreadyRunning {
		t.Fatalf("second start: got %v, want ErrAlreadyRunning", err)
	}
}

func TestStart_PublishesStatusAndArmsTimer(t *testing.T) {
	vp := newFakeViewport(false, mgl32.Vec3{})
	s := NewSession(vp, WithMode(ModeOrbit))
	if err := s.Start(pressEvent(10, 10, ModPrimary|ModSecondary, time.Now())); err != nil {
		t.Fatal(err)
	}
	if vp.armed != 1 {
		t.Errorf("timer armed %d times, want 1", vp.armed)
	}
	if len(vp.statuses) == 0 || vp.statuses[0] != (orbitHandler{}).Status() {
		t.Errorf("status: got %v", vp.statuses)
	}
}

func TestStart_DragActiveUsesPressCoordinates(t *testing.T) {
	vp := newFakeViewport(true, mgl32.Vec3{1, 2, 0})
	s := NewSession(vp)
	ev := Event{
		Kind:     EventButtonDown,
		X:        300,
		Y:        300,
		PressX:   120,
		PressY:   80,
		Dragging: true,
		Mods:     ModPrimary,
		Time:     time.Now(),
	}
	if err := s.Start(ev); err != nil {
		t.Fatal(err)
	}
	if vp.lastRayX != 120 || vp.lastRayY != 80 {
		t.Errorf("raycast at (%v, %v), want the press coordinates (120, 80)",
			vp.lastRayX, vp.lastRayY)
	}
}

func TestStart_ClickWrapsRegionCoordinates(t *testing.T) {
	vp := newFakeViewport(false, mgl32.Vec3{})
	s := NewSession(vp)
	if err := s.Start(pressEvent(810, -10, ModPrimary, time.Now())); err != nil {
		t.Fatal(err)
	}
	if vp.lastRayX != 10 || vp.lastRayY != 590 {
		t.Errorf("raycast at (%v, %v), want wrapped (10, 590)", vp.lastRayX, vp.lastRayY)
	}
}

func TestFocusClickHit_TransitionRecentersExactly(t *testing.T) {
	target := mgl32.Vec3{5, -3, 1}
	vp := newFakeViewport(true, target)
	s := NewSession(vp)

	t0 := time.Now()
	startPose := vp.source.Pose()
	if err := s.Start(pressEvent(400, 300, ModPrimary, t0)); err != nil {
		t.Fatal(err)
	}

	// Mid-flight: target strictly between the endpoints, position near the
	// captured physical point. The derived position can drift a little while
	// the rotation slerps, but it never swings.
	s.HandleEvent(tickEvent(t0.Add(50 * time.Millisecond)))
	mid := vp.source.Pose()
	if mid.Position.Sub(startPose.Position).Len() > 1 {
		t.Errorf("position swung mid-transition: %v -> %v", startPose.Position, mid.Position)
	}
	if vecEquals(mid.Target, startPose.Target) || vecEquals(mid.Target, target) {
		t.Errorf("mid-transition target %v not strictly between endpoints", mid.Target)
	}

	// Completion: target equals the picked point exactly and the spherical
	// state is consistent with the fixed position.
	s.HandleEvent(tickEvent(t0.Add(camera.DefaultTransitionDuration)))
	final := vp.source.Pose()
	if !vecEquals(final.Target, target) {
		t.Errorf("final target: got %v, want %v", final.Target, target)
	}
	if !vecEquals(final.Position, startPose.Position) {
		t.Errorf("final position: got %v, want %v", final.Position, startPose.Position)
	}
	if !floatEquals(final.Distance, startPose.Position.Sub(target).Len()) {
		t.Errorf("final distance: got %v", final.Distance)
	}
}

func TestFocusClickMiss_ClearsTargetAndSuppressesDrag(t *testing.T) {
	vp := newFakeViewport(false, mgl32.Vec3{})
	s := NewSession(vp)

	t0 := time.Now()
	if err := s.Start(pressEvent(400, 300, ModPrimary, t0)); err != nil {
		t.Fatal(err)
	}
	before := vp.source.Pose()

	// Dragging with no target must not move the camera.
	s.HandleEvent(moveEvent(450, 320, ModPrimary, t0.Add(time.Millisecond)))
	after := vp.source.Pose()
	if !vecEquals(after.Position, before.Position) || !vecEquals(after.Target, before.Target) {
		t.Error("pose changed after a drag with no target")
	}
}

func TestOrbitDrag_ExactThetaDelta(t *testing.T) {
	vp := newFakeViewport(true, startSpherical.Target)
	s := NewSession(vp, WithMode(ModeOrbit))

	t0 := time.Now()
	mods := ModPrimary | ModSecondary
	if err := s.Start(pressEvent(100, 100, mods, t0)); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(tickEvent(t0.Add(camera.DefaultTransitionDuration)))

	// dx=10, invertHorizontal=false, orbitSensitivity=0.004: theta falls by
	// exactly 0.04 radians and phi is unchanged.
	settled := vp.source.Pose()
	theta, phi := camera.FromDirection(settled.Position.Sub(settled.Target))
	s.HandleEvent(moveEvent(110, 100, mods, t0.Add(200*time.Millisecond)))

	got := vp.source.Pose()
	want := camera.Spherical{
		Target:   settled.Target,
		Theta:    theta - 0.04,
		Phi:      phi,
		Distance: settled.Distance,
	}.Pose()
	if !vecEquals(got.Position, want.Position) {
		t.Errorf("position after orbit drag: got %v, want %v", got.Position, want.Position)
	}
}

func TestOrbitDrag_PhiStaysWithinElevationLimits(t *testing.T) {
	vp := newFakeViewport(true, mgl32.Vec3{0, 0, 0})
	s := NewSession(vp, WithMode(ModeOrbit))

	t0 := time.Now()
	mods := ModPrimary | ModSecondary
	if err := s.Start(pressEvent(100, 100, mods, t0)); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(tickEvent(t0.Add(camera.DefaultTransitionDuration)))

	minPhi := mgl32.DegToRad(90 - DefaultOrbitElevationLimit)

	// An absurdly large upward then downward drag must stay clamped.
	for _, dy := range []float32{1e6, -2e6} {
		s.HandleEvent(moveEvent(100, 100+dy, mods, t0.Add(200*time.Millisecond)))
		pose := vp.source.Pose()
		_, phi := camera.FromDirection(pose.Position.Sub(pose.Target))
		if phi < minPhi-floatTolerance || phi > math32.Pi-minPhi+floatTolerance {
			t.Errorf("phi %v escaped [%v, %v] after dy=%v", phi, minPhi, math32.Pi-minPhi, dy)
		}
	}
}

func TestFocusDrag_DistanceStaysWithinZoomLimits(t *testing.T) {
	vp := newFakeViewport(true, mgl32.Vec3{0, 0, 0})
	s := NewSession(vp)

	t0 := time.Now()
	if err := s.Start(pressEvent(100, 100, ModPrimary, t0)); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(tickEvent(t0.Add(camera.DefaultTransitionDuration)))

	// Dragging down zooms in; all the way in, then all the way back out.
	s.HandleEvent(moveEvent(100, 100+1e7, ModPrimary, t0.Add(200*time.Millisecond)))
	if d := vp.source.Pose().Distance; d < DefaultMinZoomDistance-floatTolerance {
		t.Errorf("distance %v below min %v", d, float32(DefaultMinZoomDistance))
	}
	s.HandleEvent(moveEvent(100, 100-2e7, ModPrimary, t0.Add(201*time.Millisecond)))
	if d := vp.source.Pose().Distance; d > DefaultMaxZoomDistance+floatTolerance {
		t.Errorf("distance %v exceeds max %v", d, float32(DefaultMaxZoomDistance))
	}
}

func TestModeSwitch_DiscardsTransitionAndPansFromThere(t *testing.T) {
	target := mgl32.Vec3{6, 6, 0}
	vp := newFakeViewport(true, target)
	s := NewSession(vp)

	t0 := time.Now()
	if err := s.Start(pressEvent(100, 100, ModPrimary, t0)); err != nil {
		t.Fatal(err)
	}

	// Halfway through the recenter, switch to PAN.
	s.HandleEvent(tickEvent(t0.Add(75 * time.Millisecond)))
	interrupted := vp.source.Pose()

	allMods := ModPrimary | ModSecondary | ModTertiary
	s.HandleEvent(moveEvent(100, 100, allMods, t0.Add(80*time.Millisecond)))
	if s.Mode() != ModePan {
		t.Fatalf("mode: got %v, want PAN", s.Mode())
	}

	// Later ticks must not resume the discarded transition.
	s.HandleEvent(tickEvent(t0.Add(400 * time.Millisecond)))
	settled := vp.source.Pose()
	if !vecEquals(settled.Target, interrupted.Target) || !vecEquals(settled.Position, interrupted.Position) {
		t.Error("discarded transition kept advancing the pose")
	}

	// A pan drag operates from the interrupted pose.
	s.HandleEvent(moveEvent(120, 100, allMods, t0.Add(500*time.Millisecond)))
	after := vp.source.Pose()
	if vecEquals(after.Position, settled.Position) {
		t.Error("pan drag did not move the camera")
	}
	if !floatEquals(after.Distance, settled.Distance) {
		t.Errorf("pan changed the distance: %v -> %v", settled.Distance, after.Distance)
	}
}

func TestPanDrag_MovesRigTogether(t *testing.T) {
	vp := newFakeViewport(true, mgl32.Vec3{0, 0, 0})
	s := NewSession(vp, WithMode(ModePan))

	t0 := time.Now()
	allMods := ModPrimary | ModSecondary | ModTertiary
	if err := s.Start(pressEvent(100, 100, allMods, t0)); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(tickEvent(t0.Add(camera.DefaultTransitionDuration)))

	before := vp.source.Pose()
	s.HandleEvent(moveEvent(130, 90, allMods, t0.Add(200*time.Millisecond)))
	after := vp.source.Pose()

	shift := after.Target.Sub(before.Target)
	if shift.Len() < 1e-6 {
		t.Fatal("pan did not move the target")
	}
	if !vecEquals(after.Position.Sub(before.Position), shift) {
		t.Error("position and target did not move by the same pan vector")
	}
}

func TestPanClickMiss_KeepsTarget(t *testing.T) {
	vp := newFakeViewport(false, mgl32.Vec3{})
	s := NewSession(vp, WithMode(ModePan))

	t0 := time.Now()
	allMods := ModPrimary | ModSecondary | ModTertiary
	if err := s.Start(pressEvent(100, 100, allMods, t0)); err != nil {
		t.Fatal(err)
	}

	// Unlike FOCUS, a miss in PAN keeps the target; dragging still works.
	before := vp.source.Pose()
	s.HandleEvent(moveEvent(140, 100, allMods, t0.Add(time.Millisecond)))
	after := vp.source.Pose()
	if vecEquals(after.Position, before.Position) {
		t.Error("pan drag after a miss did not move the camera")
	}
}

func TestPrimaryModifierRelease_Terminates(t *testing.T) {
	vp := newFakeViewport(false, mgl32.Vec3{})
	s := NewSession(vp)

	if err := s.Start(pressEvent(0, 0, ModPrimary, time.Now())); err != nil {
		t.Fatal(err)
	}

	running := s.HandleEvent(Event{Kind: EventModifierUp, Mod: ModPrimary, Time: time.Now()})
	if running {
		t.Error("session still running after primary modifier release")
	}
	if vp.timer.releases != 1 {
		t.Errorf("timer released %d times, want 1", vp.timer.releases)
	}
	if last := vp.statuses[len(vp.statuses)-1]; last != "" {
		t.Errorf("status not cleared: %q", last)
	}
}

func TestSecondaryModifierRelease_DoesNotTerminate(t *testing.T) {
	vp := newFakeViewport(false, mgl32.Vec3{})
	s := NewSession(vp, WithMode(ModeOrbit))

	if err := s.Start(pressEvent(0, 0, ModPrimary|ModSecondary, time.Now())); err != nil {
		t.Fatal(err)
	}

	// Ctrl release drops back to FOCUS but keeps the session alive.
	running := s.HandleEvent(Event{Kind: EventModifierUp, Mod: ModSecondary, Mods: ModPrimary, Time: time.Now()})
	if !running {
		t.Fatal("session terminated on secondary modifier release")
	}
	if s.Mode() != ModeFocus {
		t.Errorf("mode: got %v, want FOCUS", s.Mode())
	}
}

func TestViewportLost_TerminatesImmediately(t *testing.T) {
	vp := newFakeViewport(false, mgl32.Vec3{})
	s := NewSession(vp)

	if err := s.Start(pressEvent(0, 0, ModPrimary, time.Now())); err != nil {
		t.Fatal(err)
	}
	if s.HandleEvent(Event{Kind: EventViewportLost, Time: time.Now()}) {
		t.Error("session survived viewport loss")
	}
	if vp.timer.releases != 1 {
		t.Errorf("timer released %d times, want 1", vp.timer.releases)
	}
}

func TestStop_Idempotent(t *testing.T) {
	vp := newFakeViewport(false, mgl32.Vec3{})
	s := NewSession(vp)

	if err := s.Start(pressEvent(0, 0, ModPrimary, time.Now())); err != nil {
		t.Fatal(err)
	}
	s.Stop()
	s.Stop()
	if vp.timer.releases != 1 {
		t.Errorf("timer released %d times, want 1", vp.timer.releases)
	}
	if s.HandleEvent(tickEvent(time.Now())) {
		t.Error("stopped session still handling events")
	}
}

func TestDragSuppressedWhileTransitioning(t *testing.T) {
	vp := newFakeViewport(true, mgl32.Vec3{4, 4, 0})
	s := NewSession(vp)

	t0 := time.Now()
	if err := s.Start(pressEvent(100, 100, ModPrimary, t0)); err != nil {
		t.Fatal(err)
	}

	// A drag mid-transition must not orbit; only the transition moves the
	// pose.
	s.HandleEvent(tickEvent(t0.Add(50 * time.Millisecond)))
	mid := vp.source.Pose()
	s.HandleEvent(moveEvent(200, 100, ModPrimary, t0.Add(60*time.Millisecond)))
	after := vp.source.Pose()
	if !vecEquals(after.Position, mid.Position) || !vecEquals(after.Target, mid.Target) {
		t.Error("drag moved the pose while a transition was in flight")
	}
}

func TestNewClickRestartsTransition(t *testing.T) {
	first := mgl32.Vec3{3, 0, 0}
	vp := newFakeViewport(true, first)
	s := NewSession(vp)

	t0 := time.Now()
	if err := s.Start(pressEvent(100, 100, ModPrimary, t0)); err != nil {
		t.Fatal(err)
	}
	s.HandleEvent(tickEvent(t0.Add(50 * time.Millisecond)))

	// A second pick overwrites the in-flight transition; the old end target
	// is never reached.
	second := mgl32.Vec3{0, 9, 2}
	vp.point = second
	t1 := t0.Add(60 * time.Millisecond)
	s.HandleEvent(pressEvent(100, 100, ModPrimary, t1))

	s.HandleEvent(tickEvent(t1.Add(camera.DefaultTransitionDuration)))
	final := vp.source.Pose()
	if !vecEquals(final.Target, second) {
		t.Errorf("final target: got %v, want the second pick %v", final.Target, second)
	}
}
