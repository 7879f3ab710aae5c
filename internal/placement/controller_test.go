package placement

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"sketch-anchor/internal/rig"
	"sketch-anchor/internal/scene"
	"sketch-anchor/internal/tracking"
	"sketch-anchor/pkg/geometry"
)

func newFixture(t *testing.T, script [][]tracking.Hit) (*Controller, *rig.Object, *tracking.Tracker) {
	t.Helper()
	s := scene.NewMemory()
	obj := rig.DefaultObject(s)
	tr := tracking.NewTracker(tracking.NewScriptedSource(script))
	ctrl := NewControllerWithRand(tr, obj, rand.New(rand.NewSource(1)))
	return ctrl, obj, tr
}

func update(tr *tracking.Tracker, index int) {
	tr.Update(tracking.Frame{Index: uint64(index)}, tracking.ReferenceSpace{Origin: geometry.IdentityPose()})
}

func TestCommitNoOpWhileReticleHidden(t *testing.T) {
	ctrl, obj, tr := newFixture(t, [][]tracking.Hit{nil})
	update(tr, 0)

	before := *obj.Root
	if ctrl.Commit(time.Now()) {
		t.Fatal("commit must not fire while the reticle is hidden")
	}
	after := *obj.Root

	if before.Position != after.Position || before.Visible != after.Visible ||
		before.Scale != after.Scale || before.Yaw != after.Yaw {
		t.Errorf("no-op commit mutated the rig: before %+v, after %+v", before, after)
	}
	if ctrl.Placed() {
		t.Error("state must remain UNPLACED")
	}
}

func TestCommitCopiesPositionOnly(t *testing.T) {
	hitPos := geometry.Vec3{X: 0.3, Y: -0.5, Z: -1.1}
	// The hit pose carries a yaw rotation; placement must ignore it.
	world := geometry.TranslationPose(hitPos).Mul(geometry.YawPose(1.25))
	ctrl, obj, tr := newFixture(t, [][]tracking.Hit{
		{tracking.SimHit{World: world, Resolvable: true}},
	})
	update(tr, 0)

	if !ctrl.Commit(time.Now()) {
		t.Fatal("commit should fire while the reticle is visible")
	}

	if obj.Root.Position != hitPos {
		t.Errorf("position: got %+v, want %+v", obj.Root.Position, hitPos)
	}
	if !obj.Root.Visible {
		t.Error("rig must be visible after placement")
	}
	if obj.Root.Yaw < 0 || obj.Root.Yaw >= 2*math.Pi {
		t.Errorf("yaw out of [0, 2pi): %v", obj.Root.Yaw)
	}
	if obj.Root.Scale >= 0.1 {
		t.Errorf("scale must start near zero, got %v", obj.Root.Scale)
	}
	if !ctrl.Placed() {
		t.Error("state must be PLACED")
	}
}

func TestPopInReachesFullScaleAtDuration(t *testing.T) {
	ctrl, obj, tr := newFixture(t, [][]tracking.Hit{
		{tracking.HitAt(geometry.Vec3{Y: -0.5})},
	})
	update(tr, 0)

	start := time.Unix(100, 0)
	if !ctrl.Commit(start) {
		t.Fatal("commit should fire")
	}

	// Mid-animation: strictly between seed and 1, monotonically increasing.
	last := obj.Root.Scale
	for _, frac := range []float64{0.25, 0.5, 0.75} {
		now := start.Add(time.Duration(frac * float64(PopInDuration)))
		ctrl.TickAnimations(now)
		s := obj.Root.Scale
		if s <= last || s >= 1.0 {
			t.Errorf("scale at %.0f%%: got %v (last %v)", frac*100, s, last)
		}
		last = s
	}

	// At duration: exactly 1.0 and the animation terminates.
	if active := ctrl.TickAnimations(start.Add(PopInDuration)); active != 0 {
		t.Errorf("animation still active at duration: %d", active)
	}
	if obj.Root.Scale != 1.0 {
		t.Errorf("final scale: got %v, want exactly 1.0", obj.Root.Scale)
	}
}

func TestPopInEaseOutCurve(t *testing.T) {
	ctrl, obj, tr := newFixture(t, [][]tracking.Hit{
		{tracking.HitAt(geometry.Vec3{})},
	})
	update(tr, 0)

	start := time.Unix(0, 0)
	ctrl.Commit(start)
	seed := obj.Root.Scale

	frac := 0.5
	ctrl.TickAnimations(start.Add(time.Duration(frac * float64(PopInDuration))))
	want := seed + (1-seed)*(1-math.Pow(1-frac, 3))
	if math.Abs(obj.Root.Scale-want) > 1e-9 {
		t.Errorf("ease-out at 50%%: got %v, want %v", obj.Root.Scale, want)
	}
}

func TestStaleGenerationTickIsNoOp(t *testing.T) {
	ctrl, obj, tr := newFixture(t, [][]tracking.Hit{
		{tracking.HitAt(geometry.Vec3{X: 1})},
		{tracking.HitAt(geometry.Vec3{X: 2})},
	})

	start := time.Unix(100, 0)
	update(tr, 0)
	ctrl.Commit(start)

	// Re-placement mid-animation: the first animation's generation goes
	// stale and must stop mutating scale.
	update(tr, 1)
	second := start.Add(PopInDuration / 4)
	ctrl.Commit(second)

	// Tick at a time where the first animation would be near completion but
	// the second has barely started. Scale must follow the second.
	now := second.Add(PopInDuration / 100)
	active := ctrl.TickAnimations(now)
	if active != 1 {
		t.Errorf("active animations: got %d, want 1 (stale one terminated)", active)
	}
	if obj.Root.Scale > 0.2 {
		t.Errorf("scale follows the stale animation: %v", obj.Root.Scale)
	}

	// The second animation still completes normally.
	ctrl.TickAnimations(second.Add(PopInDuration))
	if obj.Root.Scale != 1.0 {
		t.Errorf("final scale after re-placement: got %v, want 1.0", obj.Root.Scale)
	}
}

func TestRePlacementMovesObject(t *testing.T) {
	ctrl, obj, tr := newFixture(t, [][]tracking.Hit{
		{tracking.HitAt(geometry.Vec3{X: 1})},
		{tracking.HitAt(geometry.Vec3{X: 5})},
	})

	update(tr, 0)
	ctrl.Commit(time.Unix(100, 0))
	update(tr, 1)
	ctrl.Commit(time.Unix(101, 0))

	if obj.Root.Position.X != 5 {
		t.Errorf("re-placement position: got %v, want X=5", obj.Root.Position)
	}
	if !obj.Root.Visible {
		t.Error("rig stays visible across re-placement")
	}
}

func TestSetObjectResetsPlacedState(t *testing.T) {
	ctrl, _, tr := newFixture(t, [][]tracking.Hit{
		{tracking.HitAt(geometry.Vec3{X: 1})},
	})
	update(tr, 0)
	ctrl.Commit(time.Now())
	if !ctrl.Placed() {
		t.Fatal("expected PLACED before replacement")
	}

	s := scene.NewMemory()
	ctrl.SetObject(rig.DefaultObject(s))
	if ctrl.Placed() {
		t.Error("replacement rig arrives hidden; state must be UNPLACED")
	}
}

func TestYawUniformRange(t *testing.T) {
	// Many commits with one rand stream: all yaws inside [0, 2pi) and not
	// all identical.
	ctrl, obj, tr := newFixture(t, [][]tracking.Hit{
		{tracking.HitAt(geometry.Vec3{})},
	})
	update(tr, 0)

	seen := map[float64]bool{}
	for i := 0; i < 50; i++ {
		ctrl.Commit(time.Unix(int64(i), 0))
		yaw := obj.Root.Yaw
		if yaw < 0 || yaw >= 2*math.Pi {
			t.Fatalf("yaw out of range: %v", yaw)
		}
		seen[yaw] = true
	}
	if len(seen) < 2 {
		t.Error("yaw never varied across commits")
	}
}
