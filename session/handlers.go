package session

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// focusHandler implements FOCUS mode: horizontal orbit plus drag zoom around
// the picked focus point.
type focusHandler struct{}

func (focusHandler) Click(s *sessionImpl, hit bool, point mgl32.Vec3, now time.Time) {
	if hit {
		s.startTransition(point, now)
		return
	}
	// A miss clears the target so the camera stops following until a new hit.
	s.hasTarget = false
}

func (focusHandler) Drag(s *sessionImpl, dx, dy float32) {
	if !s.hasTarget {
		return
	}

	thetaDelta := -dx
	if s.cfg.InvertHorizontal {
		thetaDelta = dx
	}
	s.spherical.Theta += thetaDelta * s.cfg.OrbitSensitivity

	// Zoom direction is never affected by the vertical inversion setting.
	if dy != 0 {
		// Smooth distance-based compensation: fine control near the target,
		// coarser control far away, with no abrupt threshold.
		base := s.spherical.Distance * 0.1
		fine := 0.01 + (base-0.01)*(s.spherical.Distance/(s.spherical.Distance+0.5))
		factor := math32.Max(0.01, fine)

		next := s.spherical.Distance - dy*s.cfg.ZoomSensitivity*factor
		s.spherical.Distance = mgl32.Clamp(next, s.cfg.MinZoomDistance, s.cfg.MaxZoomDistance)
	}

	s.applySpherical()
}

func (focusHandler) Status() string {
	return "SL Camera: FOCUS mode - Drag to orbit/zoom | Hold Ctrl for orbit-only | Hold Ctrl+Shift to pan"
}

// orbitHandler implements ORBIT mode: orbiting at a fixed distance with
// elevation limits.
type orbitHandler struct{}

func (orbitHandler) Click(s *sessionImpl, hit bool, point mgl32.Vec3, now time.Time) {
	if hit {
		s.startTransition(point, now)
		return
	}
	s.hasTarget = false
}

func (orbitHandler) Drag(s *sessionImpl, dx, dy float32) {
	if !s.hasTarget {
		return
	}

	thetaDelta := -dx
	if s.cfg.InvertHorizontal {
		thetaDelta = dx
	}
	phiDelta := -dy
	if s.cfg.InvertVertical {
		phiDelta = dy
	}

	s.spherical.Theta += thetaDelta * s.cfg.OrbitSensitivity

	// Keep phi away from the poles so the camera never points straight up
	// or down.
	minPhi := mgl32.DegToRad(90 - s.cfg.OrbitElevationLimitDegrees)
	s.spherical.Phi = mgl32.Clamp(
		s.spherical.Phi-phiDelta*s.cfg.OrbitSensitivity,
		minPhi,
		math32.Pi-minPhi,
	)

	s.applySpherical()
}

func (orbitHandler) Status() string {
	return "SL Camera: ORBIT mode - Drag to orbit at fixed distance | Release Ctrl for focus/zoom | Hold Shift to pan"
}

// panHandler implements PAN mode: rigid translation of the whole camera rig
// along the view plane.
type panHandler struct{}

func (panHandler) Click(s *sessionImpl, hit bool, point mgl32.Vec3, now time.Time) {
	if hit {
		s.startTransition(point, now)
	}
	// A miss keeps the current target; panning continues from where it was.
}

func (panHandler) Drag(s *sessionImpl, dx, dy float32) {
	if !s.hasTarget {
		return
	}

	pdx := -dx
	if s.cfg.InvertHorizontal {
		pdx = dx
	}
	pdy := -dy
	if s.cfg.InvertVertical {
		pdy = dy
	}

	// Right/up axes come from the authoritative pose, not from spherical
	// state, so panning works mid-arc and under camera lock alike.
	pose := s.vp.Source().Pose()
	right := pose.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
	up := pose.Rotation.Rotate(mgl32.Vec3{0, 1, 0})

	// Distance-proportional so pan speed feels constant in screen space.
	sensitivity := s.cfg.PanSensitivity * math32.Max(0.01, s.spherical.Distance)
	pan := right.Mul(pdx).Add(up.Mul(pdy)).Mul(sensitivity)

	// Pan moves the whole rig: the focus point and the physical camera
	// position shift together, bypassing the spherical recompute.
	s.spherical.Target = s.spherical.Target.Add(pan)
	s.vp.Source().Translate(pan)
}

func (panHandler) Status() string {
	return "SL Camera: PAN mode - Drag to pan view | Release Shift for orbit | Release Ctrl+Shift for focus/zoom"
}
