package session

import (
	"errors"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/slcam/camera"
	"github.com/Carmen-Shannon/slcam/logging"
	"github.com/Carmen-Shannon/slcam/viewport"
)

// ErrNoViewport is returned by Start when the session has no usable viewport
// to drive. No state is mutated in that case.
var ErrNoViewport = errors.New("session: no viewport available")

// ErrAlreadyRunning is returned by Start when the session was already started.
var ErrAlreadyRunning = errors.New("session: already running")

// DefaultTickInterval is the periodic timer cadence armed at session start.
const DefaultTickInterval = 16 * time.Millisecond

// Session drives one interactive camera-control cycle over a host viewport:
// one invocation-to-finish lifetime of focus/orbit/pan navigation. A session
// exclusively owns its spherical state, transition state, and mode; none of
// that state survives past session end.
type Session interface {
	// Start begins the session from the initiating input event. It validates
	// the viewport, snapshots the current view into spherical state, arms
	// the periodic timer, dispatches the initiating click, and publishes the
	// initial status text.
	//
	// For gestures that began with a drag already active, the original press
	// coordinates (Event.PressX/PressY with Event.Dragging set) are used for
	// the raycast instead of the current pointer position.
	//
	// Parameters:
	//   - ev: the initiating press event
	//
	// Returns:
	//   - error: ErrNoViewport if the session cannot start, ErrAlreadyRunning
	//     if it already has, nil otherwise
	Start(ev Event) error

	// HandleEvent processes one host event to completion. Exactly one event
	// is admitted at a time; no handler suspends mid-event.
	//
	// Parameters:
	//   - ev: the event to process
	//
	// Returns:
	//   - bool: false once the session has terminated
	HandleEvent(ev Event) bool

	// Stop terminates the session: clears status text and releases the
	// timer. Idempotent, and safe on every exit path.
	Stop()

	// Mode returns the active interaction mode.
	//
	// Returns:
	//   - Mode: the current mode
	Mode() Mode

	// Running reports whether the session is active.
	//
	// Returns:
	//   - bool: true while the session is running
	Running() bool
}

// sessionImpl is the single implementation of Session. All session state
// lives here, owned exclusively for the session's lifetime, so independent
// sessions (e.g. one per viewport) never interact.
type sessionImpl struct {
	mu *sync.Mutex

	vp  viewport.Viewport
	cfg Config

	mode Mode

	// spherical is authoritative for camera placement in FOCUS/ORBIT;
	// hasTarget tracks whether its target point is currently defined.
	spherical camera.Spherical
	hasTarget bool

	// transition is non-nil exactly while a smooth recenter is in flight.
	transition *camera.Transition

	tickInterval time.Duration
	timer        viewport.Timer

	lastX, lastY float32
	mouseDown    bool

	running bool
}

var _ Session = &sessionImpl{}

// NewSession creates a session over the given viewport with default
// configuration. The session does nothing until Start is called.
//
// Parameters:
//   - vp: the host viewport to drive (may be nil; Start will then fail)
//   - options: functional options to configure the session
//
// Returns:
//   - Session: the configured session
func NewSession(vp viewport.Viewport, options ...SessionOption) Session {
	s := &sessionImpl{
		mu:           &sync.Mutex{},
		vp:           vp,
		cfg:          DefaultConfig(),
		mode:         ModeFocus,
		tickInterval: DefaultTickInterval,
	}
	for _, option := range options {
		option(s)
	}
	s.cfg = s.cfg.Clamped()
	return s
}

func (s *sessionImpl) Start(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.vp == nil {
		return ErrNoViewport
	}
	if w, h := s.vp.Size(); w <= 0 || h <= 0 {
		return ErrNoViewport
	}
	if s.running {
		return ErrAlreadyRunning
	}

	// For a press that arrived with a drag already active, the pointer has
	// moved since the press; raycast from where the press actually happened.
	clickX, clickY := ev.X, ev.Y
	if ev.Dragging {
		clickX, clickY = ev.PressX, ev.PressY
	}

	s.mouseDown = true
	s.lastX, s.lastY = ev.X, ev.Y

	// Snapshot the current view into spherical state.
	pose := s.vp.Source().Pose()
	s.spherical = camera.Spherical{
		Target:   pose.Target,
		Theta:    camera.DefaultTheta,
		Phi:      camera.DefaultPhi,
		Distance: pose.Distance,
	}
	if dir := pose.Position.Sub(pose.Target); dir.Len() > 0 {
		s.spherical.Theta, s.spherical.Phi = camera.FromDirection(dir)
	}
	s.hasTarget = true

	s.timer = s.vp.ArmTimer(s.tickInterval)
	s.running = true

	logging.Debug("camera session started", "mode", s.mode.String())

	s.handleClick(clickX, clickY, ev.Time)
	s.vp.SetStatusText(modeHandlers[s.mode].Status())
	return nil
}

func (s *sessionImpl) HandleEvent(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return false
	}

	switch ev.Kind {
	case EventViewportLost:
		s.finish()
		return false

	case EventTimerTick:
		if s.transition != nil {
			pose, done := s.transition.Tick(ev.Time)
			s.vp.Source().WritePose(pose)
			if done {
				s.spherical = s.transition.Finish(s.spherical)
				s.transition = nil
			}
			s.vp.RequestRedraw()
		}
		return true

	case EventModifierUp:
		if ev.Mod.Has(ModPrimary) {
			s.finish()
			return false
		}
	}

	// Every remaining event re-resolves the mode from the held modifiers.
	if next := resolveMode(s.mode, ev.Mods); next != s.mode {
		s.setMode(next)
	}

	switch ev.Kind {
	case EventButtonDown:
		s.mouseDown = true
		s.lastX, s.lastY = ev.X, ev.Y
		s.handleClick(ev.X, ev.Y, ev.Time)

	case EventButtonUp:
		s.mouseDown = false

	case EventPointerMove:
		dx := ev.X - s.lastX
		dy := ev.Y - s.lastY
		if s.mouseDown && s.transition == nil && (dx != 0 || dy != 0) {
			modeHandlers[s.mode].Drag(s, dx, dy)
			s.vp.RequestRedraw()
		}
		// Always record the position so the next delta is correct even when
		// the drag itself was suppressed.
		s.lastX, s.lastY = ev.X, ev.Y
	}

	return true
}

func (s *sessionImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finish()
}

func (s *sessionImpl) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *sessionImpl) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// --- internal helpers ---

// handleClick raycasts the (wrapped) click coordinate and dispatches the
// outcome to the active mode's handler. Caller must hold the mutex.
func (s *sessionImpl) handleClick(x, y float32, now time.Time) {
	w, h := s.vp.Size()
	wx, wy := viewport.WrapRegion(x, y, w, h)
	hit, point := s.vp.Raycast(wx, wy)
	modeHandlers[s.mode].Click(s, hit, point, now)
}

// startTransition begins a smooth recenter onto point, holding the physical
// camera position fixed. The current pose is read from the authoritative
// source; the spherical target becomes the new point immediately while the
// view interpolates toward it. Caller must hold the mutex.
func (s *sessionImpl) startTransition(point mgl32.Vec3, now time.Time) {
	pose := s.vp.Source().Pose()

	// With no previous target, the transition starts from the view's current
	// look-at point.
	if !s.hasTarget {
		s.spherical.Target = pose.Target
		s.hasTarget = true
	}

	start := pose
	start.Target = s.spherical.Target
	s.transition = camera.BeginTransition(start, point, now)
	s.spherical.Target = point
	s.vp.RequestRedraw()
}

// applySpherical recomputes the pose from spherical state and writes it
// through the pose source. Caller must hold the mutex.
func (s *sessionImpl) applySpherical() {
	s.vp.Source().WritePose(s.spherical.Pose())
}

// setMode switches the interaction mode, cancelling any in-flight transition
// without finalizing it and seeding a target point for modes that need one.
// Caller must hold the mutex.
func (s *sessionImpl) setMode(next Mode) {
	if next == s.mode {
		return
	}
	s.mode = next

	// A mode change discards an in-flight transition; the pose stays at its
	// last interpolated value.
	s.transition = nil

	if (next == ModeOrbit || next == ModePan) && !s.hasTarget {
		s.spherical.Target = s.vp.Source().Pose().Target
		s.hasTarget = true
	}

	s.vp.SetStatusText(modeHandlers[s.mode].Status())
}

// finish terminates the session exactly once: clears status text and
// releases the timer. Caller must hold the mutex.
func (s *sessionImpl) finish() {
	if !s.running {
		return
	}
	s.running = false
	s.transition = nil

	s.vp.SetStatusText("")
	if s.timer != nil {
		s.timer.Release()
		s.timer = nil
	}
	logging.Debug("camera session ended")
}
