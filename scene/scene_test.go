package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const floatTolerance = 1e-4

func vecEquals(a, b mgl32.Vec3) bool {
	return math32.Abs(a.X()-b.X()) < floatTolerance &&
		math32.Abs(a.Y()-b.Y()) < floatTolerance &&
		math32.Abs(a.Z()-b.Z()) < floatTolerance
}

func TestScene_SphereHit(t *testing.T) {
	s := NewScene()
	s.SetGround(false, 0)
	s.Add(mgl32.Vec3{0, 0, 5}, 1)

	hit, point := s.Intersect(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})
	if !hit {
		t.Fatal("expected a hit on the sphere")
	}
	if !vecEquals(point, mgl32.Vec3{0, 0, 4}) {
		t.Errorf("hit point: got %v, want (0, 0, 4)", point)
	}
}

func TestScene_NearestHitWins(t *testing.T) {
	s := NewScene()
	s.SetGround(false, 0)
	s.Add(mgl32.Vec3{0, 0, 10}, 1)
	s.Add(mgl32.Vec3{0, 0, 5}, 1)

	hit, point := s.Intersect(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})
	if !hit {
		t.Fatal("expected a hit")
	}
	if !vecEquals(point, mgl32.Vec3{0, 0, 4}) {
		t.Errorf("nearest hit: got %v, want (0, 0, 4)", point)
	}
}

func TestScene_GroundPlane(t *testing.T) {
	s := NewScene() // ground enabled at z = 0

	origin := mgl32.Vec3{0, 0, 10}
	dir := mgl32.Vec3{1, 0, -1}
	hit, point := s.Intersect(origin, dir)
	if !hit {
		t.Fatal("expected a ground hit")
	}
	if !vecEquals(point, mgl32.Vec3{10, 0, 0}) {
		t.Errorf("ground hit: got %v, want (10, 0, 0)", point)
	}
}

func TestScene_MissIsNotAnError(t *testing.T) {
	s := NewScene()
	s.SetGround(false, 0)
	s.Add(mgl32.Vec3{0, 0, 5}, 1)

	// Looking away from everything.
	hit, _ := s.Intersect(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	if hit {
		t.Error("expected a miss")
	}

	// Ray parallel to the (disabled) ground.
	hit, _ = s.Intersect(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0})
	if hit {
		t.Error("expected a miss for a parallel ray")
	}
}

func TestScene_AddRemoveCount(t *testing.T) {
	s := NewScene()
	id1 := s.Add(mgl32.Vec3{0, 0, 0}, 1)
	id2 := s.Add(mgl32.Vec3{1, 1, 1}, 1)
	if id1 == id2 {
		t.Error("expected unique object ids")
	}
	if s.Count() != 2 {
		t.Errorf("count: got %d, want 2", s.Count())
	}
	s.Remove(id1)
	if s.Count() != 1 {
		t.Errorf("count after remove: got %d, want 1", s.Count())
	}
	s.Remove(id1) // unknown ids are ignored
	if s.Count() != 1 {
		t.Errorf("count after duplicate remove: got %d, want 1", s.Count())
	}
}

func TestScene_InsideSphereExitHit(t *testing.T) {
	s := NewScene()
	s.SetGround(false, 0)
	s.Add(mgl32.Vec3{0, 0, 0}, 2)

	hit, point := s.Intersect(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})
	if !hit {
		t.Fatal("expected the exit-side hit from inside the sphere")
	}
	if !vecEquals(point, mgl32.Vec3{2, 0, 0}) {
		t.Errorf("exit hit: got %v, want (2, 0, 0)", point)
	}
}
